package ingest

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/corpus/pkg/corpus/convert"
)

// MinSegmentChars is the length a line must exceed to be kept.
const MinSegmentChars = 10

var (
	blockBreak = regexp.MustCompile(`\s*\n\s*\n\s*`)
	lineBreak  = regexp.MustCompile(`\s*\n\s*`)

	standardizer = strings.NewReplacer(
		"\u00a0", "",
		"\u00ad", "-",
		"\u201c", `"`,
		"\u201d", `"`,
		"\u2018", "'",
		"\u2019", "'",
	)
)

// Segment is one addressable line of an opinion. Position is
// "{block}-{line}" where blocks are separated by blank lines.
type Segment struct {
	ID         string
	OpinionID  string
	DecisionID string
	Position   string
	CharCount  int
	Text       string
}

// Standardize drops the opinion header and replaces typographic
// characters with their ASCII forms.
func Standardize(text string) string {
	text = strings.TrimPrefix(text, convert.Header)
	return strings.TrimSpace(standardizer.Replace(text))
}

// Segmenter splits opinion text into segments.
type Segmenter struct {
	MinChars int
}

// NewSegmenter returns a Segmenter with the default length threshold
func NewSegmenter() Segmenter {
	return Segmenter{MinChars: MinSegmentChars}
}

// Segments yields the lines of text longer than MinChars. Nothing at or
// after a footnote boundary line is yielded. The sequence may be ranged
// over any number of times.
func (s Segmenter) Segments(text string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		cleaned := Standardize(text)
		if cleaned == "" {
			return
		}
		for b, block := range blockBreak.Split(cleaned, -1) {
			for l, line := range lineBreak.Split(block, -1) {
				if line == convert.FootnoteBoundary {
					return
				}
				n := utf8.RuneCountInString(line)
				if n <= s.MinChars {
					continue
				}
				seg := Segment{Position: position(b, l), CharCount: n, Text: line}
				if !yield(seg) {
					return
				}
			}
		}
	}
}

func position(block, line int) string {
	return strconv.Itoa(block) + "-" + strconv.Itoa(line)
}
