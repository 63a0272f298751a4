package syntax

import (
	"fmt"

	"lukechampine.com/blake3"
)

const HashIDLength = 26

// Represents a content-derived identifier: the first 16 bytes of a BLAKE3 digest in [Crockford] base32.
//
// Tags, bookmarks, feeds, and blobs are keyed by HashID. Each kind defines which bytes are hashed.
type HashID string

func NewHashID(data []byte) HashID {
	sum := blake3.Sum256(data)
	return HashID(crockford.EncodeToString(sum[:16]))
}

func NewHashIDFromString(s string) HashID {
	return NewHashID([]byte(s))
}

// ParseHashID checks identifier syntax only. Whether the identifier matches some content is checked by [ValidateHashID].
func ParseHashID(raw string) (HashID, error) {
	if len(raw) != HashIDLength {
		return "", fmt.Errorf("%w: invalid ID length: must be %d characters", ErrInvalidIdentifier, HashIDLength)
	}
	b, err := crockford.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode Crockford Base32: %w", ErrInvalidIdentifier, err)
	}
	if len(b) != 16 {
		return "", fmt.Errorf("%w: decoded ID must be 16 bytes", ErrInvalidIdentifier)
	}
	return HashID(raw), nil
}

// ValidateHashID checks that raw is exactly the identifier recomputed from the object's content.
func ValidateHashID(expected HashID, raw string) error {
	if raw != string(expected) {
		return fmt.Errorf("%w: expected %s, found %s", ErrInvalidIdentifier, expected, raw)
	}
	return nil
}

func (h HashID) String() string {
	return string(h)
}
