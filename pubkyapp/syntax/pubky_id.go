package syntax

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
)

const PubkyIDLength = 52

// Represents the owner of a pubky namespace: an ed25519 public key in z-base-32 encoding.
//
// Always use [ParsePubkyID] instead of wrapping strings directly, especially when working with network input.
type PubkyID string

// ParsePubkyID checks syntax only: 52 characters which decode to 32 bytes. Use [PubkyID.VerifyKey] to also require a point on the curve.
func ParsePubkyID(raw string) (PubkyID, error) {
	if len(raw) != PubkyIDLength {
		return "", fmt.Errorf("%w: the string is not %d utf chars", ErrInvalidIdentifier, PubkyIDLength)
	}
	b, err := zbase32.DecodeString(raw)
	if err != nil || len(b) != ed25519.PublicKeySize {
		return "", fmt.Errorf("%w: invalid public key encoding", ErrInvalidIdentifier)
	}
	return PubkyID(raw), nil
}

// VerifyKey checks that the identifier encodes a valid ed25519 point.
func (p PubkyID) VerifyKey() error {
	pub := p.PublicKey()
	if pub == nil {
		return fmt.Errorf("%w: invalid public key encoding", ErrInvalidIdentifier)
	}
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return fmt.Errorf("%w: not an ed25519 public key", ErrInvalidIdentifier)
	}
	return nil
}

// Encodes an ed25519 public key as a PubkyID.
func NewPubkyID(pub ed25519.PublicKey) (PubkyID, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("%w: public key is %d bytes", ErrInvalidIdentifier, len(pub))
	}
	return ParsePubkyID(zbase32.EncodeToString(pub))
}

// Decodes the public key. Returns nil if the identifier was not created with [ParsePubkyID].
func (p PubkyID) PublicKey() ed25519.PublicKey {
	b, err := zbase32.DecodeString(string(p))
	if err != nil || len(b) != ed25519.PublicKeySize {
		return nil
	}
	return ed25519.PublicKey(b)
}

func (p PubkyID) String() string {
	return string(p)
}

func (p PubkyID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PubkyID) UnmarshalText(text []byte) error {
	id, err := ParsePubkyID(string(text))
	if err != nil {
		return err
	}
	*p = id
	return nil
}
