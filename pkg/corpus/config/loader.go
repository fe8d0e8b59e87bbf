package config

import (
	"fmt"
	"os"

	"github.com/cognicore/corpus/pkg/corpus/ingest"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/justice"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	RosterPath   string
	TaxonomyPath string
}

// Components holds all loaded configuration components
type Components struct {
	Roster   *justice.Roster
	Taxonomy *ingest.Taxonomy
}

// NewLoader builds a loader from settings
func NewLoader(s *Settings) *Loader {
	return &Loader{RosterPath: s.Roster, TaxonomyPath: s.Taxonomy}
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load roster
	if l.RosterPath == "" {
		return nil, fmt.Errorf("roster path: %w", internalerr.ErrInvalidConfig)
	}
	f, err := os.Open(l.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	defer f.Close()
	comp.Roster, err = justice.LoadRoster(f)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", l.RosterPath, err)
	}

	// Load taxonomy
	if l.TaxonomyPath != "" {
		taxConfig, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		comp.Taxonomy = ingest.NewTaxonomy()
		for _, c := range taxConfig.Categories {
			comp.Taxonomy.AddCategory(c.Name, c.Keywords)
		}
	} else {
		comp.Taxonomy = ingest.DefaultTaxonomy()
	}

	return comp, nil
}
