package ingest

import (
	"fmt"
	"slices"

	"github.com/cognicore/corpus/pkg/corpus/convert"
)

// Pipeline derives the records attached to a decision:
// voting → vote lines, title → tags, html → opinions → segments
type Pipeline struct {
	taxonomy  *Taxonomy
	segmenter Segmenter
	converter *convert.Converter
	voting    markdowner
}

// NewPipeline creates an ingestion pipeline with the given components
func NewPipeline(taxonomy *Taxonomy, segmenter Segmenter, converter *convert.Converter) *Pipeline {
	return &Pipeline{
		taxonomy:  taxonomy,
		segmenter: segmenter,
		converter: converter,
		voting:    converter,
	}
}

// Taxonomy returns the subject vocabulary in use
func (p *Pipeline) Taxonomy() *Taxonomy { return p.taxonomy }

// Case is the committed decision plus the raw material for its records
type Case struct {
	DecisionID    string
	Title         string
	Voting        string // already cleaned
	MainJusticeID int
	Main          convert.Parts
	Separate      []Opinion
}

// ProcessedCase holds the records derived from a Case. Warnings list
// enrichment steps that failed without invalidating the decision.
type ProcessedCase struct {
	VoteLines []VoteLine
	Tags      []string
	Opinions  []Opinion
	Segments  []Segment
	Warnings  []error
}

// Fallo converts the dispositive portion of a decision
func (p *Pipeline) Fallo(html string) (string, error) {
	return p.converter.ToMarkdown(html)
}

// Process runs a case through vote line extraction, tagging and opinion
// segmentation
func (p *Pipeline) Process(c Case) ProcessedCase {
	var out ProcessedCase

	// 1. Vote lines
	if c.Voting != "" {
		out.VoteLines = slices.Collect(VoteLines(c.DecisionID, c.Voting))
	}

	// 2. Title tags
	if c.Title != "" {
		out.Tags = p.taxonomy.Tags(c.Title)
	}

	// 3. Opinions: the ponencia first, then separate opinions
	text, err := p.converter.Ponencia(c.Main)
	if err != nil {
		out.Warnings = append(out.Warnings, fmt.Errorf("main opinion of %s: %w", c.DecisionID, err))
	} else {
		out.Opinions = append(out.Opinions, NewMainOpinion(c.DecisionID, c.MainJusticeID, text))
	}
	out.Opinions = append(out.Opinions, c.Separate...)

	// 4. Segments
	for _, op := range out.Opinions {
		out.Segments = slices.AppendSeq(out.Segments, op.Segments(p.segmenter))
	}
	return out
}
