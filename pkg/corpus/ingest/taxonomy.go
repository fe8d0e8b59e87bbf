package ingest

import "strings"

// Category is one subject label with the title phrases that imply it
type Category struct {
	Name     string
	Keywords []string // lowercase
}

// Taxonomy tags decision titles by keyword containment
type Taxonomy struct {
	categories []Category
	index      map[string]int // name → position in categories
}

// NewTaxonomy creates an empty taxonomy
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{index: make(map[string]int)}
}

// AddCategory adds a category with its keywords. Adding an existing name
// replaces its keywords and keeps its position.
func (t *Taxonomy) AddCategory(name string, keywords []string) {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(kw); strings.TrimSpace(kw) != "" {
			normalized = append(normalized, kw)
		}
	}
	if i, ok := t.index[name]; ok {
		t.categories[i].Keywords = normalized
		return
	}
	t.index[name] = len(t.categories)
	t.categories = append(t.categories, Category{Name: name, Keywords: normalized})
}

// Categories returns a copy of the vocabulary in order
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Tags returns every category with a keyword contained in title, each
// once, in vocabulary order
func (t *Taxonomy) Tags(title string) []string {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	lower := strings.ToLower(title)

	var tags []string
	for _, c := range t.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, c.Name)
				break
			}
		}
	}
	return tags
}

// DefaultTaxonomy returns the built-in subject vocabulary
func DefaultTaxonomy() *Taxonomy {
	t := NewTaxonomy()
	t.AddCategory("Special Proceeding", []string{
		"habeas corpus", "guardianship of", "writ of amparo", "habeas data",
		"change of name", "correction of entries", "escheat",
	})
	t.AddCategory("Succession", []string{"matter of the will", "testamentary proceedings", "probate"})
	t.AddCategory("Legal Ethics", []string{
		"disbarment", "practice of law", "office of the court administrator",
		"disciplinary action against atty.",
	})
	t.AddCategory("Immigration", []string{
		"for naturalization", "certificate of naturalization", "petition for naturalization",
		"citizen of the philippines", "commissioner of immigration",
		"commissioners of immigration", "philippine citizenship",
	})
	t.AddCategory("Banking", []string{"central bank of the philippines", "bangko sentral ng pilipinas"})
	t.AddCategory("Spanish", []string{
		"el pueblo de filipinas", "el pueblo de las islas filipinas", "los estados unidos", "testamentaria",
	})
	t.AddCategory("United States", []string{"the united states, plaintiff "})
	t.AddCategory("Crime", []string{
		"people of the philipppines", "people of the philippines", "people  of the philippines",
		"people of the  philippines", "people of the philipines", "people of the philippine islands",
		"people philippines, of the", "sandiganbayan", "tanodbayan", "ombudsman",
	})
	t.AddCategory("Property", []string{"director of lands", "land registration", "register of deeds"})
	t.AddCategory("Agrarian Reform", []string{"agrarian reform", "darab"})
	t.AddCategory("Taxation", []string{
		"collector of internal revenue", "commissioner of internal revenue",
		"bureau of internal revenue", "court of tax appeals",
	})
	t.AddCategory("Customs", []string{"collector of customs", "commissioner of customs"})
	t.AddCategory("Elections", []string{"commission on elections", "comelec", "electoral tribunal"})
	t.AddCategory("Labor", []string{
		"workmen's compensation commission", "employees' compensation commission",
		"national labor relations commission", "bureau of labor relations", "nlrc",
		"labor union", "court of industrial relations",
	})
	return t
}
