// Package citation reads the docket and report references of a decision
// from its metadata document.
package citation

import (
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/cognicore/corpus/pkg/corpus/dateparse"
)

// DocketLayout renders the date part of a docket. May is written
// without a period; see DocketDate.
const DocketLayout = "Jan. 2, 2006"

var (
	docketPattern = regexp.MustCompile(`(?i)^\s*(g\.?\s*r\.?|a\.?\s*m\.?|a\.?\s*c\.?|b\.?\s*m\.?)\s*(?:nos?\.?\s*)?([a-z]*-?\d[\w.-]*)\s*(?:,\s*(.+?))?\s*$`)
	letters       = regexp.MustCompile(`[^A-Za-z]`)
	space         = regexp.MustCompile(`\s+`)
)

// Fields are the citation-relevant values of a metadata document.
type Fields struct {
	Docket string
	Scra   string
	Phil   string
	Offg   string
	Date   string // promulgation date, used when the docket carries none
}

// Citation identifies a decision by docket and by the report series
// (SCRA, Philippine Reports, Official Gazette) that published it.
type Citation struct {
	Docket         string
	DocketCategory string
	DocketSerial   string
	DocketDate     time.Time
	Scra           string
	Phil           string
	Offg           string
}

// Extract builds a Citation. A docket that cannot be read is dropped; the
// report references are kept as written.
func Extract(f Fields) Citation {
	c := Citation{
		Scra: clean(f.Scra),
		Phil: clean(f.Phil),
		Offg: clean(f.Offg),
	}

	m := docketPattern.FindStringSubmatch(f.Docket)
	if m == nil {
		return c
	}
	date := m[3]
	if date == "" {
		date = f.Date
	}
	d, err := dateparse.Parse(date)
	if err != nil {
		return c
	}
	c.DocketCategory = strings.ToUpper(letters.ReplaceAllString(m[1], ""))
	c.DocketSerial = strings.ToUpper(m[2])
	c.DocketDate = d
	c.Docket = c.DocketCategory + " " + c.DocketSerial + ", " + DocketDate(d)
	return c
}

// DocketDate formats d the way dockets abbreviate months.
func DocketDate(d time.Time) string {
	if d.Month() == time.May {
		return d.Format("Jan 2, 2006")
	}
	return d.Format(DocketLayout)
}

func clean(s string) string {
	return space.ReplaceAllString(strings.TrimSpace(s), " ")
}

// HasCitation reports whether any docket or report reference is present
func (c Citation) HasCitation() bool {
	return c.Docket != "" || c.Scra != "" || c.Phil != "" || c.Offg != ""
}

// Report returns the preferred published report: SCRA, then Phil.
func (c Citation) Report() string {
	if c.Scra != "" {
		return c.Scra
	}
	return c.Phil
}

// Display joins the present references, docket first.
func (c Citation) Display() string {
	var parts []string
	for _, p := range []string{c.Docket, c.Scra, c.Phil, c.Offg} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Slug is the URL-safe form of Display, or "" without any reference.
func (c Citation) Slug() string {
	if !c.HasCitation() {
		return ""
	}
	return slug.Make(c.Display())
}
