// Package justice holds the roster of justices and attributes decisions to
// the justice sitting on the promulgation date.
package justice

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/corpus/pkg/corpus/dateparse"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// MaxAge is the mandatory retirement age.
const MaxAge = 70

// Justice is an immutable roster entry. Zero dates mean unknown.
type Justice struct {
	ID           int
	FirstName    string
	LastName     string
	Suffix       string
	FullName     string
	Gender       string
	Alias        string
	BirthDate    time.Time
	StartTerm    time.Time
	EndTerm      time.Time
	ChiefDate    time.Time
	RetireDate   time.Time
	InactiveDate time.Time
}

// Surname returns the lowercased last name used for matching
func (j Justice) Surname() string {
	return strings.ToLower(strings.TrimSpace(j.LastName))
}

// ActiveOn reports whether date falls strictly inside [StartTerm, InactiveDate).
// Both ends are exclusive and a justice without either bound is never active.
func (j Justice) ActiveOn(date time.Time) bool {
	if j.StartTerm.IsZero() || j.InactiveDate.IsZero() {
		return false
	}
	d := dateparse.Day(date)
	return j.StartTerm.Before(d) && d.Before(j.InactiveDate)
}

// Designation returns "C.J." when date falls strictly between the chief
// appointment and the inactive date, else "J."
func (j Justice) Designation(date time.Time) string {
	d := dateparse.Day(date)
	if !j.ChiefDate.IsZero() && !j.InactiveDate.IsZero() &&
		j.ChiefDate.Before(d) && d.Before(j.InactiveDate) {
		return "C.J."
	}
	return "J."
}

// Matches reports whether key equals the alias or the surname
func (j Justice) Matches(key string) bool {
	if j.Alias != "" && j.Alias == key {
		return true
	}
	return j.Surname() == key
}

func (j Justice) validate() error {
	if j.ID < 1 {
		return fmt.Errorf("justice %q: id %d: %w", j.FullName, j.ID, internalerr.ErrInvalidInput)
	}
	if !j.BirthDate.IsZero() && !j.RetireDate.IsZero() &&
		!dateparse.AddYears(j.BirthDate, MaxAge).Equal(j.RetireDate) {
		return fmt.Errorf("justice %d: retire date must be %d years from birth: %w", j.ID, MaxAge, internalerr.ErrInvalidInput)
	}
	return nil
}

// Record is one row of the upstream roster listing.
type Record struct {
	Number         int    `yaml:"#"`
	FirstName      string `yaml:"First Name"`
	LastName       string `yaml:"Last Name"`
	Suffix         string `yaml:"Suffix"`
	FullName       string `yaml:"Justice"`
	Gender         string `yaml:"Gender"`
	Alias          string `yaml:"Alias"`
	Born           string `yaml:"Born"`
	StartOfTerm    string `yaml:"Start of term"`
	EndOfTerm      string `yaml:"End of term"`
	AppointedChief string `yaml:"Appointed chief"`
}

// FromRecord derives a Justice, computing its retire and inactive dates.
func FromRecord(r Record) (Justice, error) {
	j := Justice{
		ID:        r.Number,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Suffix:    strings.TrimSpace(r.Suffix),
		FullName:  strings.TrimSpace(r.FullName),
		Gender:    strings.TrimSpace(r.Gender),
		Alias:     strings.TrimSpace(r.Alias),
	}
	if j.Alias == "" && j.LastName != "" && j.Suffix != "" {
		j.Alias = strings.ToLower(j.LastName + " " + j.Suffix)
	}

	var err error
	fields := []struct {
		name string
		raw  string
		dst  *time.Time
	}{
		{"born", r.Born, &j.BirthDate},
		{"start of term", r.StartOfTerm, &j.StartTerm},
		{"end of term", r.EndOfTerm, &j.EndTerm},
		{"appointed chief", r.AppointedChief, &j.ChiefDate},
	}
	for _, f := range fields {
		if *f.dst, err = dateparse.Optional(f.raw); err != nil {
			return Justice{}, fmt.Errorf("justice %d %s: %w", r.Number, f.name, err)
		}
	}

	if !j.BirthDate.IsZero() {
		j.RetireDate = dateparse.AddYears(j.BirthDate, MaxAge)
	}
	j.InactiveDate = j.RetireDate
	if !j.EndTerm.IsZero() {
		j.InactiveDate = j.EndTerm
	}
	return j, j.validate()
}

// Roster is the read-only list of justices for a run, ordered by id.
type Roster struct {
	justices []Justice
	byID     map[int]int
}

// NewRoster validates the justices and indexes them by id.
func NewRoster(justices []Justice) (*Roster, error) {
	sorted := make([]Justice, len(justices))
	copy(sorted, justices)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].ID < sorted[b].ID })

	r := &Roster{justices: sorted, byID: make(map[int]int, len(sorted))}
	for i, j := range sorted {
		if err := j.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[j.ID]; dup {
			return nil, fmt.Errorf("justice id %d: %w", j.ID, internalerr.ErrDuplicate)
		}
		r.byID[j.ID] = i
	}
	return r, nil
}

// LoadRoster reads a YAML list of upstream roster records.
func LoadRoster(rd io.Reader) (*Roster, error) {
	var records []Record
	if err := yaml.NewDecoder(rd).Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	justices := make([]Justice, 0, len(records))
	for _, rec := range records {
		j, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		justices = append(justices, j)
	}
	return NewRoster(justices)
}

// Len returns the number of justices
func (r *Roster) Len() int { return len(r.justices) }

// All returns a copy of the roster in id order
func (r *Roster) All() []Justice {
	out := make([]Justice, len(r.justices))
	copy(out, r.justices)
	return out
}

// Get looks up a justice by id
func (r *Roster) Get(id int) (Justice, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Justice{}, false
	}
	return r.justices[i], true
}

// ActiveOn lists the justices sitting on date, most recently appointed first.
func (r *Roster) ActiveOn(date time.Time) []Justice {
	var active []Justice
	for _, j := range r.justices {
		if j.ActiveOn(date) {
			active = append(active, j)
		}
	}
	sort.SliceStable(active, func(a, b int) bool {
		return active[a].StartTerm.After(active[b].StartTerm)
	})
	return active
}

// Chiefs lists justices appointed chief, ordered by chief date.
func (r *Roster) Chiefs() []Justice {
	var chiefs []Justice
	for _, j := range r.justices {
		if !j.ChiefDate.IsZero() {
			chiefs = append(chiefs, j)
		}
	}
	sort.SliceStable(chiefs, func(a, b int) bool {
		return chiefs[a].ChiefDate.Before(chiefs[b].ChiefDate)
	})
	return chiefs
}
