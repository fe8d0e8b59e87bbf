package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// Taxonomy represents the subject vocabulary configuration. Categories
// keep file order, which is the order tags are emitted in.
type Taxonomy struct {
	Categories []TaxonomyCategory `yaml:"categories"`
}

// TaxonomyCategory is one subject tag and its trigger keywords
type TaxonomyCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadTaxonomy loads taxonomy from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
	}

	for i, c := range tax.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("taxonomy %s: category %d has no name: %w", path, i, internalerr.ErrInvalidConfig)
		}
	}
	return &tax, nil
}
