// Package ponente turns the free-text author field of a decision into a
// canonical lowercase key that can be matched against the justice roster.
package ponente

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

var (
	perCuriam   = regexp.MustCompile(`(?i)per\s+curiam`)
	annotations = regexp.MustCompile(`\[?(\*)+\]?`)
	concurrence = regexp.MustCompile(`\s*,?\s*with\s+whom.*$`)
)

const (
	minKeyLen = 4
	maxKeyLen = 20
	edgeChars = ",.: "
)

// RawPonente is the author of a decision as extracted from its metadata.
// Exactly one of PerCuriam or a non-empty Writer holds for a usable value.
type RawPonente struct {
	Writer    string
	PerCuriam bool
}

// Usable reports whether the value names a writer or is per curiam
func (r RawPonente) Usable() bool {
	return r.PerCuriam || r.Writer != ""
}

// IsPerCuriam reports whether text marks an opinion issued by the court
func IsPerCuriam(text string) bool {
	return perCuriam.MatchString(text)
}

// Extract returns nil for empty text. An empty Writer on a non per curiam
// result means the text could not be reduced to a plausible name.
func Extract(text string) *RawPonente {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if IsPerCuriam(text) {
		return &RawPonente{PerCuriam: true}
	}
	key, _ := Clean(text)
	return &RawPonente{Writer: key}
}

// Clean canonicalizes a raw ponente string. The boolean is false when the
// result falls outside the accepted length window.
func Clean(text string) (string, bool) {
	candidate := annotations.ReplaceAllString(text, "")
	candidate = fold(candidate)
	candidate = strings.Trim(concurrence.ReplaceAllString(candidate, ""), edgeChars)
	candidate = strings.TrimSpace(stripSuffix(candidate))
	candidate = strings.TrimSpace(fixTypo(candidate))
	if strings.HasSuffix(candidate, " jr") || strings.HasSuffix(candidate, " sr") {
		candidate += "."
	}
	if n := len(candidate); n <= minKeyLen || n >= maxKeyLen {
		return "", false
	}
	return candidate, true
}

// fold transliterates to ASCII, lowercases and trims enclosing punctuation.
func fold(text string) string {
	text = unidecode.Unidecode(text)
	return strings.Trim(strings.ToLower(text), edgeChars)
}
