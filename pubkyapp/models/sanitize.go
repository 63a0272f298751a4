package models

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/purell"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const deletedKeyword = "[DELETED]"

func truncateRunes(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// trimTruncate trims surrounding whitespace and keeps at most n runes. Whitespace exposed by the cut is trimmed too, so the result is stable.
func trimTruncate(s string, n int) string {
	return strings.TrimRightFunc(truncateRunes(strings.TrimSpace(s), n), unicode.IsSpace)
}

func sanitizeOptional(s *string, n int) *string {
	if s == nil {
		return nil
	}
	out := trimTruncate(*s, n)
	return &out
}

// Schemes where an absolute URL must carry a host, and where an empty path is written as "/".
var hierarchicalSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// parseURL accepts absolute URLs only.
func parseURL(s string) (*url.URL, bool) {
	if s == "" {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	if hierarchicalSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return nil, false
	}
	return u, true
}

func isURL(s string) bool {
	_, ok := parseURL(s)
	return ok
}

// normalizeURL returns the canonical form of an absolute URL.
func normalizeURL(s string) (string, bool) {
	u, ok := parseURL(s)
	if !ok {
		return "", false
	}
	if hierarchicalSchemes[strings.ToLower(u.Scheme)] && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return purell.NormalizeURL(u, purell.FlagsSafe), true
}

// normalizeOrTrim is used for references which are hashed into identifiers: valid URLs are normalized, anything else is only trimmed so validation can report it.
func normalizeOrTrim(s string) string {
	s = strings.TrimSpace(s)
	if n, ok := normalizeURL(s); ok {
		return n
	}
	return s
}

// sanitizeURL normalizes and truncates. Returns "" when the input is not a URL, or when truncation broke it.
func sanitizeURL(s string, n int) string {
	norm, ok := normalizeURL(strings.TrimSpace(s))
	if !ok {
		return ""
	}
	norm = truncateRunes(norm, n)
	if again, ok := normalizeURL(norm); !ok || again != norm {
		return ""
	}
	return norm
}

// SanitizeTagLabel trims and lower-cases a tag label.
func SanitizeTagLabel(label string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(label))
}
