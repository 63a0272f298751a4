// Package syntax provides the identifier types used by pubky.app resources.
//
// There are three: [PubkyID] names the owner of a namespace (a z-base-32 encoded ed25519 public key), [TimestampID] is derived from a wall-clock microsecond timestamp, and [HashID] is derived from the content of an object. These are string alias types; construct them with the Parse and New functions rather than by wrapping strings directly.
package syntax

import (
	"errors"
)

// ErrInvalidIdentifier is wrapped by every error returned when an identifier fails to parse or validate.
var ErrInvalidIdentifier = errors.New("invalid identifier")
