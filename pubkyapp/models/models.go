// Package models defines the pubky.app object kinds and their decode, sanitize, and validate pipeline.
//
// Every kind follows the same three steps:
//
//   - Sanitize never fails. It trims, truncates, case-folds, and drops sub-values it cannot repair, and is idempotent.
//   - Validate checks field rules and, when an identifier is supplied, that the identifier matches the object.
//   - [DecodeAndValidate] parses JSON bytes, then sanitizes, then validates, returning the first failure.
//
// Methods take a *[config.Config]; nil means [config.Default].
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
)

var (
	// ErrMalformedInput means the payload did not decode into the expected structure.
	ErrMalformedInput = errors.New("malformed input")

	// ErrFieldValidation is wrapped by every [FieldError].
	ErrFieldValidation = errors.New("validation error")

	// ErrReservedKeyword is returned for content reserved by clients, such as "[DELETED]".
	ErrReservedKeyword = errors.New("reserved keyword")
)

// FieldError reports the first rule violated by an object, and the field it was violated on.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrFieldValidation, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrFieldValidation, e.Err}
}

// Object is implemented by every kind. The importer returns an Object; callers use a type switch to get the concrete value.
type Object interface {
	ResourceKind() resource.Kind
}

// Record is the pipeline contract shared by all kinds. T is the implementing type itself.
type Record[T any] interface {
	Object
	Sanitize(cfg *config.Config) T
	// Validate checks a sanitized value. An empty id means no identifier is checked.
	Validate(cfg *config.Config, id string) error
}

// DecodeAndValidate parses a JSON payload into T, sanitizes it, and validates it against id.
//
// Blob payloads are raw bytes rather than JSON; use [DecodeBlob] for those.
func DecodeAndValidate[T Record[T]](cfg *config.Config, raw []byte, id string) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	v = v.Sanitize(cfg)
	if err := v.Validate(cfg, id); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// requireFields fails if any of the named keys is absent from the JSON object, or null.
func requireFields(raw []byte, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	if obj == nil {
		return errors.New("expected a JSON object")
	}
	for _, f := range fields {
		v, ok := obj[f]
		if !ok {
			return fmt.Errorf("missing field `%s`", f)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("field `%s` must not be null", f)
		}
	}
	return nil
}

func DecodeUser(cfg *config.Config, raw []byte) (User, error) {
	return DecodeAndValidate[User](cfg, raw, "")
}

func DecodePost(cfg *config.Config, raw []byte, id string) (Post, error) {
	return DecodeAndValidate[Post](cfg, raw, id)
}

func DecodeTag(cfg *config.Config, raw []byte, id string) (Tag, error) {
	return DecodeAndValidate[Tag](cfg, raw, id)
}

func DecodeBookmark(cfg *config.Config, raw []byte, id string) (Bookmark, error) {
	return DecodeAndValidate[Bookmark](cfg, raw, id)
}

func DecodeFollow(cfg *config.Config, raw []byte, id string) (Follow, error) {
	return DecodeAndValidate[Follow](cfg, raw, id)
}

func DecodeMute(cfg *config.Config, raw []byte, id string) (Mute, error) {
	return DecodeAndValidate[Mute](cfg, raw, id)
}

func DecodeFile(cfg *config.Config, raw []byte, id string) (File, error) {
	return DecodeAndValidate[File](cfg, raw, id)
}

func DecodeFeed(cfg *config.Config, raw []byte, id string) (Feed, error) {
	return DecodeAndValidate[Feed](cfg, raw, id)
}

func DecodeLastRead(cfg *config.Config, raw []byte) (LastRead, error) {
	return DecodeAndValidate[LastRead](cfg, raw, "")
}
