package ingest

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/corpus/pkg/corpus/citation"
	"github.com/cognicore/corpus/pkg/corpus/dateparse"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// Details is the metadata document (details.yaml) of a case folder
type Details struct {
	Title       string   `yaml:"case_title"`
	DateProm    string   `yaml:"date_prom"`
	Ponente     string   `yaml:"ponente"`
	Composition string   `yaml:"composition"`
	Category    string   `yaml:"category"`
	Voting      string   `yaml:"voting"`
	Emails      []string `yaml:"emails"`
	Docket      string   `yaml:"docket"`
	Scra        string   `yaml:"scra"`
	Phil        string   `yaml:"phil"`
	Offg        string   `yaml:"offg"`
}

// ParseDetails decodes a metadata document
func ParseDetails(raw []byte) (Details, error) {
	var d Details
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Details{}, fmt.Errorf("decode details: %w: %v", internalerr.ErrInvalidInput, err)
	}
	d.Title = strings.TrimSpace(d.Title)
	return d, nil
}

// Validate checks if the document has the fields every case needs
func (d Details) Validate() error {
	if strings.TrimSpace(d.DateProm) == "" {
		return fmt.Errorf("details: promulgation date is required: %w", internalerr.ErrBadDate)
	}
	if _, err := d.Date(); err != nil {
		return fmt.Errorf("details: %w", err)
	}
	return nil
}

// Date parses the promulgation date
func (d Details) Date() (time.Time, error) {
	t, err := dateparse.Parse(d.DateProm)
	if err != nil {
		return time.Time{}, fmt.Errorf("date_prom: %w", err)
	}
	return t, nil
}

// CitationFields returns the values the citation is read from
func (d Details) CitationFields() citation.Fields {
	return citation.Fields{
		Docket: d.Docket,
		Scra:   d.Scra,
		Phil:   d.Phil,
		Offg:   d.Offg,
		Date:   d.DateProm,
	}
}

// AuthorEmails returns the listed emails or the default author
func (d Details) AuthorEmails(fallback string) []string {
	var out []string
	for _, e := range d.Emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 && fallback != "" {
		out = []string{fallback}
	}
	return out
}
