package syntax

import (
	"github.com/multiformats/go-base32"
)

const (
	// Crockford's base32 alphabet, upper case, without I, L, O, or U.
	CrockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// Human-oriented z-base-32, used for public keys.
	ZBase32Alphabet = "ybndrfg8ejkmcpqxot1uwisza345h769"
)

var (
	crockford = base32.NewEncodingCI(CrockfordAlphabet).WithPadding(base32.NoPadding)
	zbase32   = base32.NewEncoding(ZBase32Alphabet).WithPadding(base32.NoPadding)
)

// Crockford returns the unpadded encoding used for timestamp and hash identifiers.
//
// Decoding accepts lower case input. The I, L, and O aliases of the original Crockford scheme are not accepted.
func Crockford() *base32.Encoding {
	return crockford
}

// ZBase32 returns the unpadded, case-sensitive encoding used for [PubkyID].
func ZBase32() *base32.Encoding {
	return zbase32
}
