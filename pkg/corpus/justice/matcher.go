package justice

import (
	"fmt"
	"time"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/ponente"
)

// Attribution is the resolved authorship of a decision.
type Attribution struct {
	JusticeID   int // 0 when unattributed
	RawPonente  string
	PerCuriam   bool
	Designation string
}

// Attributed reports whether a justice was found
func (a Attribution) Attributed() bool { return a.JusticeID > 0 }

// Matcher resolves a canonical name key on a date.
type Matcher interface {
	Match(key string, date time.Time) (Attribution, error)
}

// Match finds the unique justice sitting on date whose alias or surname
// equals key. Zero candidates yield ErrNoMatch and several ErrAmbiguous;
// the returned Attribution still carries the key in both cases.
func (r *Roster) Match(key string, date time.Time) (Attribution, error) {
	att := Attribution{RawPonente: key}
	if key == "" {
		return att, fmt.Errorf("empty name: %w", internalerr.ErrNoMatch)
	}

	var candidates []Justice
	for _, j := range r.ActiveOn(date) {
		if j.Matches(key) {
			candidates = append(candidates, j)
		}
	}

	switch len(candidates) {
	case 0:
		return att, fmt.Errorf("%q on %s: %w", key, date.Format("2006-01-02"), internalerr.ErrNoMatch)
	case 1:
		att.JusticeID = candidates[0].ID
		att.Designation = candidates[0].Designation(date)
		return att, nil
	default:
		ids := make([]int, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
		}
		return att, fmt.Errorf("%q on %s matches justices %v: %w", key, date.Format("2006-01-02"), ids, internalerr.ErrAmbiguous)
	}
}

// Attribute resolves an extracted ponente through m. Per curiam and missing
// ponente values never consult the matcher.
func Attribute(m Matcher, raw *ponente.RawPonente, date time.Time) (Attribution, error) {
	if raw == nil {
		return Attribution{}, nil
	}
	if raw.PerCuriam {
		return Attribution{PerCuriam: true}, nil
	}
	if raw.Writer == "" {
		return Attribution{}, fmt.Errorf("unusable ponente: %w", internalerr.ErrNoMatch)
	}
	if date.IsZero() {
		return Attribution{RawPonente: raw.Writer}, fmt.Errorf("%q without a date: %w", raw.Writer, internalerr.ErrBadDate)
	}
	return m.Match(raw.Writer, date)
}
