package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// check validates one field and wraps the first failure in a [FieldError].
func check(field string, value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &FieldError{Field: field, Err: err}
	}
	return nil
}

func maxRunes(n int, what string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("%s exceeds maximum length of %d characters", what, n)
		}
		return nil
	})
}

func maxItems(n int, msg string) validation.Rule {
	return validation.By(func(v any) error {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.Len() > n {
			return errors.New(msg)
		}
		return nil
	})
}

func minRunes(n int, what string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if utf8.RuneCountInString(s) < n {
			return fmt.Errorf("%s is shorter than minimum length of %d characters", what, n)
		}
		return nil
	})
}

var urlRule = validation.By(func(v any) error {
	s, _ := v.(string)
	if !isURL(s) {
		return fmt.Errorf("invalid URI format: %s", s)
	}
	return nil
})

func schemeRule(allowed []string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		u, ok := parseURL(s)
		if !ok {
			return fmt.Errorf("invalid URI format: %s", s)
		}
		for _, a := range allowed {
			if strings.EqualFold(u.Scheme, a) {
				return nil
			}
		}
		return fmt.Errorf("scheme %q is not allowed", u.Scheme)
	})
}

var notReserved = validation.By(func(v any) error {
	if s, _ := v.(string); s == deletedKeyword {
		return fmt.Errorf("%w %s", ErrReservedKeyword, deletedKeyword)
	}
	return nil
})

var positive = validation.By(func(v any) error {
	if n, _ := v.(int64); n <= 0 {
		return errors.New("must be a positive integer")
	}
	return nil
})

// ValidateTagLabel checks a sanitized tag label: its length, and that it has no whitespace or reserved separator characters.
func ValidateTagLabel(cfg *config.Config, label string) error {
	return validateTagLabel(config.OrDefault(cfg), "label", label)
}

func validateTagLabel(cfg *config.Config, field, label string) error {
	lim := cfg.Tag
	return check(field, label,
		maxRunes(lim.MaxLabelLength, fmt.Sprintf("tag %q", label)),
		minRunes(lim.MinLabelLength, fmt.Sprintf("tag %q", label)),
		validation.By(func(any) error {
			if strings.IndexFunc(label, unicode.IsSpace) >= 0 {
				return fmt.Errorf("tag %q contains whitespace characters", label)
			}
			if i := strings.IndexAny(label, lim.InvalidChars); i >= 0 {
				r, _ := utf8.DecodeRuneInString(label[i:])
				return fmt.Errorf("tag %q contains invalid character: %c", label, r)
			}
			return nil
		}),
	)
}
