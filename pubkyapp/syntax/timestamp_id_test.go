package syntax

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"

	"github.com/stretchr/testify/assert"
)

func TestInteropTimestampIDs(t *testing.T) {
	assert := assert.New(t)
	file, err := os.Open("testdata/timestamp_id_vectors.txt")
	assert.NoError(err)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		micros, err := strconv.ParseInt(parts[1], 10, 64)
		assert.NoError(err)

		assert.Equal(TimestampID(parts[0]), NewTimestampIDFromMicros(micros))
		id, err := ParseTimestampID(parts[0])
		assert.NoError(err)
		assert.Equal(micros, id.Micros())
		assert.Equal(micros, NewTimestampIDFromTime(id.Time()).Micros())
	}
	assert.NoError(scanner.Err())
}

func TestTimestampIDNow(t *testing.T) {
	assert := assert.New(t)

	before := time.Now().UnixMicro()
	id := NewTimestampID()
	after := time.Now().UnixMicro()

	assert.Len(id.String(), TimestampIDLength)
	assert.NoError(ValidateTimestampID(nil, id.String()))
	assert.GreaterOrEqual(id.Micros(), before)
	assert.LessOrEqual(id.Micros(), after)
}

func TestTimestampIDSameMicrosecond(t *testing.T) {
	assert := assert.New(t)

	ts := time.Date(2025, 3, 1, 12, 0, 0, 1000, time.UTC)
	assert.Equal(NewTimestampIDFromTime(ts), NewTimestampIDFromTime(ts))
	assert.Equal(NewTimestampIDFromTime(ts), NewTimestampIDFromTime(ts.Add(500*time.Nanosecond)))
}

func TestTimestampIDBounds(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	epoch := time.UnixMicro(config.EpochMicros)
	assert.NoError(ValidateTimestampIDAt(nil, NewTimestampIDFromTime(epoch).String(), now))

	err := ValidateTimestampIDAt(nil, NewTimestampIDFromTime(epoch.Add(-time.Microsecond)).String(), now)
	assert.ErrorIs(err, ErrInvalidIdentifier)
	assert.ErrorContains(err, "timestamp must be after 2024-10-01")

	assert.NoError(ValidateTimestampIDAt(nil, NewTimestampIDFromTime(now.Add(2*time.Hour)).String(), now))
	err = ValidateTimestampIDAt(nil, NewTimestampIDFromTime(now.Add(2*time.Hour+time.Microsecond)).String(), now)
	assert.ErrorIs(err, ErrInvalidIdentifier)
	assert.ErrorContains(err, "too far in the future")

	// a tighter skew from configuration
	cfg := config.Default()
	cfg.Timestamp.MaxSkew = time.Minute
	assert.Error(ValidateTimestampIDAt(cfg, NewTimestampIDFromTime(now.Add(time.Hour)).String(), now))
}

func TestTimestampIDConfigClock(t *testing.T) {
	assert := assert.New(t)

	ahead := time.Now().Add(24 * time.Hour)
	id := NewTimestampIDFromTime(ahead).String()
	assert.ErrorIs(ValidateTimestampID(nil, id), ErrInvalidIdentifier)

	cfg := config.Default()
	cfg.Timestamp.Clock = func() time.Time { return ahead }
	assert.NoError(ValidateTimestampID(cfg, id))

	cfg.Timestamp.Clock = func() time.Time { return time.UnixMicro(config.EpochMicros) }
	assert.ErrorIs(ValidateTimestampID(cfg, "0032X1AHXAH40"), ErrInvalidIdentifier)
}

func TestTimestampIDMalformed(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"",
		"0032X1AHXAH4",
		"0032X1AHXAH400",
		"0032X1AHXAH4U",
		"0032X1AHXAH4!",
		"0032X1AHXAH4O",
	} {
		err := ValidateTimestampIDAt(nil, raw, now)
		assert.ErrorIs(err, ErrInvalidIdentifier, raw)
		_, err = ParseTimestampID(raw)
		assert.Error(err, raw)
	}

	err := ValidateTimestampIDAt(nil, "0032X1AHXAH4", now)
	assert.ErrorContains(err, "must be 13 characters")

	// lower case decodes to the same value
	assert.NoError(ValidateTimestampIDAt(nil, "0032x1ahxah40", now))
	assert.Equal(int64(1740000000123456), TimestampID("0032x1ahxah40").Micros())
}

func TestTimestampIDNoPanic(t *testing.T) {
	for _, s := range []string{"", "a", "ZZZZZZZZZZZZZ", "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"} {
		bad := TimestampID(s)
		_ = bad.Micros()
		_ = bad.Time()
		_ = ValidateTimestampID(nil, s)
	}
}
