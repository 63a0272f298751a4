package syntax

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestInteropHashIDs(t *testing.T) {
	assert := assert.New(t)
	file, err := os.Open("testdata/hash_id_vectors.txt")
	assert.NoError(err)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		id := NewHashIDFromString(parts[1])
		assert.Equal(parts[0], id.String(), parts[1])
		assert.NoError(ValidateHashID(id, parts[0]))
	}
	assert.NoError(scanner.Err())
}

func TestHashIDBytes(t *testing.T) {
	assert := assert.New(t)

	id := NewHashID([]byte{1, 2})
	assert.Equal(HashID("PZBQ010FF079VVZPQG1RNFN6DR"), id)
	assert.Len(id.String(), HashIDLength)

	err := ValidateHashID(id, "PZBQ010FF079VVZPQG1RNFN6DS")
	assert.ErrorIs(err, ErrInvalidIdentifier)
	assert.ErrorContains(err, "expected PZBQ010FF079VVZPQG1RNFN6DR, found PZBQ010FF079VVZPQG1RNFN6DS")
}

func TestHashIDSensitivity(t *testing.T) {
	assert := assert.New(t)
	faker := gofakeit.New(7)

	seen := map[HashID]string{}
	for i := 0; i < 500; i++ {
		data := []byte(faker.Sentence(8))
		id := NewHashID(data)
		assert.Equal(id, NewHashID(data))

		flipped := append([]byte{}, data...)
		flipped[faker.Number(0, len(data)-1)] ^= 0x01
		assert.NotEqual(id, NewHashID(flipped))

		if prev, ok := seen[id]; ok {
			assert.Equal(prev, string(data))
		}
		seen[id] = string(data)
	}
}

func TestCrockford(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("04106105", Crockford().EncodeToString([]byte{1, 2, 3, 4, 5}))
	b, err := Crockford().DecodeString("04106105")
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4, 5}, b)

	_, err = Crockford().DecodeString("0410610U")
	assert.Error(err)
}

func TestParseHashID(t *testing.T) {
	assert := assert.New(t)

	for _, good := range []string{"PZBQ010FF079VVZPQG1RNFN6DR", "pzbq010ff079vvzpqg1rnfn6dr", "00000000000000000000000000"} {
		id, err := ParseHashID(good)
		assert.NoError(err, good)
		assert.Equal(good, id.String())
	}
	for _, bad := range []string{"", "PZBQ010FF079VVZPQG1RNFN6D", "PZBQ010FF079VVZPQG1RNFN6DRX", "PZBQ010FF079VVZPQG1RNFN6DU", "0032X1AHXAH40"} {
		_, err := ParseHashID(bad)
		assert.ErrorIs(err, ErrInvalidIdentifier, bad)
	}
}
