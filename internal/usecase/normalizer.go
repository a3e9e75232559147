package usecase

import (
	"html"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	currencyPrefixRegex = regexp.MustCompile(`^[\$€£\s]+`)
)

// NormalizeText canonicalizes a raw string for comparison and display:
// HTML entities decoded, unicode compatibility-folded (NFKD), all whitespace
// runs collapsed to single spaces, ends trimmed. Casing is preserved; callers
// that want equality semantics use FoldText.
// Idempotent: NormalizeText(NormalizeText(s)) == NormalizeText(s).
func NormalizeText(raw string) string {
	// Feed HTML escapes entities more than once (&amp;amp;), so decode
	// until stable.
	s := raw
	for {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	s = norm.NFKD.String(s)
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldText normalizes and lower-cases a string for equality-style comparison
func FoldText(raw string) string {
	return strings.ToLower(NormalizeText(raw))
}

// NormalizeCurrency strips leading currency symbols and thousands separators
// from a price string and parses the remainder as an exact decimal.
// Returns ok=false when the value is not parseable; the caller records an
// Unparseable verdict instead of failing the run.
func NormalizeCurrency(raw string) (decimal.Decimal, bool) {
	s := NormalizeText(raw)
	s = currencyPrefixRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// containsAnyFold reports whether s contains any of the markers,
// case-insensitively. An empty marker never matches.
func containsAnyFold(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
