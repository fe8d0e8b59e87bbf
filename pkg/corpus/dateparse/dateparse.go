// Package dateparse reads the handful of date spellings found in case
// metadata and the justice roster.
package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// Layout is the storage format for calendar dates.
const Layout = "2006-01-02"

var layouts = []string{
	Layout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan. 2, 2006",
	"Jan 2, 2006",
	"Jan. 2 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
}

// Parse returns the calendar date in text at UTC midnight.
func Parse(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", internalerr.ErrBadDate)
	}
	// "Sept." is the one month abbreviation Go's layouts do not know.
	s = strings.Replace(s, "Sept.", "Sep.", 1)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", text, internalerr.ErrBadDate)
}

// Optional parses text, treating an empty string as "no date".
func Optional(text string) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, nil
	}
	return Parse(text)
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders t as YYYY-MM-DD, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// AddYears adds whole calendar years; Feb 29 rolls to Mar 1 in non-leap years.
func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}
