package syntax

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
)

const TimestampIDLength = 13

// Represents a time-derived identifier: a big-endian microsecond UNIX timestamp in [Crockford] base32.
//
// Posts and files are keyed by TimestampID. Two identifiers generated within the same microsecond are identical; there is no clock sequence.
type TimestampID string

// Generates a TimestampID from the current wall-clock time.
func NewTimestampID() TimestampID {
	return NewTimestampIDFromMicros(time.Now().UnixMicro())
}

func NewTimestampIDFromTime(t time.Time) TimestampID {
	return NewTimestampIDFromMicros(t.UnixMicro())
}

func NewTimestampIDFromMicros(micros int64) TimestampID {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(micros))
	return TimestampID(crockford.EncodeToString(b[:]))
}

// Checks length and encoding, but not the time bounds. Use [ValidateTimestampID] for untrusted input.
func ParseTimestampID(raw string) (TimestampID, error) {
	if _, err := decodeTimestamp(raw); err != nil {
		return "", err
	}
	return TimestampID(raw), nil
}

func decodeTimestamp(raw string) (int64, error) {
	if len(raw) != TimestampIDLength {
		return 0, fmt.Errorf("%w: invalid ID length: must be %d characters", ErrInvalidIdentifier, TimestampIDLength)
	}
	b, err := crockford.DecodeString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to decode Crockford Base32: %w", ErrInvalidIdentifier, err)
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: decoded ID must be 8 bytes", ErrInvalidIdentifier)
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ValidateTimestampID checks that raw is a well-formed TimestampID whose time falls between the protocol epoch and the current time plus the allowed clock skew. The current time comes from the config's timestamp clock.
func ValidateTimestampID(cfg *config.Config, raw string) error {
	cfg = config.OrDefault(cfg)
	return ValidateTimestampIDAt(cfg, raw, cfg.Timestamp.Now())
}

// ValidateTimestampIDAt is [ValidateTimestampID] with an explicit current time.
func ValidateTimestampIDAt(cfg *config.Config, raw string, now time.Time) error {
	cfg = config.OrDefault(cfg)
	micros, err := decodeTimestamp(raw)
	if err != nil {
		return err
	}
	if micros < cfg.Timestamp.EpochMicros {
		return fmt.Errorf("%w: timestamp must be after %s", ErrInvalidIdentifier, time.UnixMicro(cfg.Timestamp.EpochMicros).UTC().Format(time.DateOnly))
	}
	if micros > now.Add(cfg.Timestamp.MaxSkew).UnixMicro() {
		return fmt.Errorf("%w: timestamp is too far in the future", ErrInvalidIdentifier)
	}
	return nil
}

// Returns the timestamp encoded in this identifier, in microseconds. Returns 0 if the identifier does not decode.
func (t TimestampID) Micros() int64 {
	micros, err := decodeTimestamp(string(t))
	if err != nil {
		return 0
	}
	return micros
}

// Returns the golang [time.Time] corresponding to this identifier.
func (t TimestampID) Time() time.Time {
	return time.UnixMicro(t.Micros()).UTC()
}

func (t TimestampID) String() string {
	return string(t)
}

func (t TimestampID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimestampID) UnmarshalText(text []byte) error {
	id, err := ParseTimestampID(string(text))
	if err != nil {
		return err
	}
	*t = id
	return nil
}
