// Package decision defines the decision entity, its validation and the
// derivation of its stable identifier.
package decision

import (
	"fmt"
	"regexp"
	"time"

	"github.com/cognicore/corpus/pkg/corpus/citation"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/justice"
)

// Source is the provenance of a case folder.
type Source string

const (
	SourceSC     Source = "sc"
	SourceLegacy Source = "legacy"
)

// ParseSource accepts the folder names used for each provenance.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceSC, SourceLegacy:
		return Source(s), nil
	}
	return "", fmt.Errorf("source %q: %w", s, internalerr.ErrInvalidInput)
}

// Category is the kind of issuance.
type Category string

const (
	CategoryDecision    Category = "Decision"
	CategoryResolution  Category = "Resolution"
	CategoryUnspecified Category = "Unspecified"
)

// Composition is the court sitting that issued the decision.
type Composition string

const (
	CompositionEnBanc      Composition = "En Banc"
	CompositionDivision    Composition = "Division"
	CompositionUnspecified Composition = "Unspecified"
)

var (
	startsDecision   = regexp.MustCompile(`(?i)d\s*e\s*c`)
	startsResolution = regexp.MustCompile(`(?i)r\s*e\s*s`)
	startsDivision   = regexp.MustCompile(`(?i)div`)
	startsEnBanc     = regexp.MustCompile(`(?i)en`)
)

// CategoryFromText classifies free text; "dec" wins over "res".
func CategoryFromText(text string) Category {
	switch {
	case startsDecision.MatchString(text):
		return CategoryDecision
	case startsResolution.MatchString(text):
		return CategoryResolution
	}
	return CategoryUnspecified
}

// CompositionFromText classifies free text; "div" wins over "en".
func CompositionFromText(text string) Composition {
	switch {
	case startsDivision.MatchString(text):
		return CompositionDivision
	case startsEnBanc.MatchString(text):
		return CompositionEnBanc
	}
	return CompositionUnspecified
}

// LegacyCutoff is the last date a legacy decision may carry.
var LegacyCutoff = time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC)

// DefaultEmail is credited when a metadata document names no author.
const DefaultEmail = "bot@lawsql.com"

// Decision is the central record of a case. It is not modified after
// creation; corrections require re-ingestion.
type Decision struct {
	ID          string
	Origin      string
	Source      Source
	Created     time.Time
	Modified    time.Time
	Title       string
	Description string
	Date        time.Time
	Emails      []string
	Category    Category
	Composition Composition
	Fallo       string
	Voting      string
	Ponente     justice.Attribution
}

// Validate checks the decision against its citation.
func (d Decision) Validate(c citation.Citation) error {
	if d.Date.IsZero() {
		return fmt.Errorf("decision %s: missing date: %w", d.ID, internalerr.ErrBadDate)
	}
	if !c.DocketDate.IsZero() && !c.DocketDate.Equal(d.Date) {
		return fmt.Errorf("decision %s: docket %s vs promulgated %s: %w",
			d.ID, c.DocketDate.Format("2006-01-02"), d.Date.Format("2006-01-02"), internalerr.ErrDateMismatch)
	}
	if d.Source == SourceLegacy && d.Date.After(LegacyCutoff) {
		return fmt.Errorf("decision %s: dated %s: %w", d.ID, d.Date.Format("2006-01-02"), internalerr.ErrLegacyDateRange)
	}
	return nil
}
