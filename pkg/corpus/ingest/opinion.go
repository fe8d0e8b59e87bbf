package ingest

import (
	"bytes"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// MainOpinion is the suffix of the ponencia's opinion id.
const MainOpinion = "main"

// Opinion is one authored text of a decision. Its id is
// "{decision_id}-{justice_id}" or "{decision_id}-main".
type Opinion struct {
	ID         string
	DecisionID string
	JusticeID  int // 0 when unattributed
	Title      string
	Tags       []string
	Remark     string
	Concurs    []map[string]any
	Text       string
}

// IsMain reports whether this is the ponencia
func (o Opinion) IsMain() bool {
	return o.ID == o.DecisionID+"-"+MainOpinion
}

// Segments yields the opinion's segments with their ids filled in.
func (o Opinion) Segments(s Segmenter) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for seg := range s.Segments(o.Text) {
			seg.ID = o.ID + "-" + seg.Position
			seg.OpinionID = o.ID
			seg.DecisionID = o.DecisionID
			if !yield(seg) {
				return
			}
		}
	}
}

// NewMainOpinion returns the ponencia of a decision
func NewMainOpinion(decisionID string, justiceID int, text string) Opinion {
	return Opinion{
		ID:         decisionID + "-" + MainOpinion,
		DecisionID: decisionID,
		JusticeID:  justiceID,
		Title:      "Ponencia",
		Tags:       []string{MainOpinion},
		Text:       text,
	}
}

type opinionHeader struct {
	Title  string           `yaml:"title"`
	Tags   []string         `yaml:"tags"`
	Remark string           `yaml:"remark"`
	Concur []map[string]any `yaml:"concur"`
}

// ParseOpinion reads a separate opinion file named "<justice_id>.md": a
// YAML front matter block followed by the opinion text.
func ParseOpinion(decisionID, stem string, raw []byte) (Opinion, error) {
	id, err := strconv.Atoi(stem)
	if err != nil || id < 1 {
		return Opinion{}, fmt.Errorf("opinion %q: not a justice id: %w", stem, internalerr.ErrInvalidInput)
	}

	head, body, err := splitFrontMatter(raw)
	if err != nil {
		return Opinion{}, fmt.Errorf("opinion %s: %w", stem, err)
	}
	var h opinionHeader
	if len(head) > 0 {
		if err := yaml.Unmarshal(head, &h); err != nil {
			return Opinion{}, fmt.Errorf("opinion %s front matter: %w: %v", stem, internalerr.ErrInvalidInput, err)
		}
	}

	tags := h.Tags
	if tags == nil {
		tags = []string{}
	}
	return Opinion{
		ID:         decisionID + "-" + stem,
		DecisionID: decisionID,
		JusticeID:  id,
		Title:      strings.TrimSpace(h.Title),
		Tags:       tags,
		Remark:     strings.TrimSpace(h.Remark),
		Concurs:    h.Concur,
		Text:       strings.TrimSpace(string(body)),
	}, nil
}

// splitFrontMatter separates a leading "---" delimited block. Text without
// one is all body.
func splitFrontMatter(raw []byte) (head, body []byte, err error) {
	raw = bytes.TrimLeft(raw, "\ufeff \t\r\n")
	if !bytes.HasPrefix(raw, []byte("---")) {
		return nil, raw, nil
	}
	rest := raw[3:]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || strings.TrimSpace(string(rest[:nl])) != "" {
		return nil, raw, nil
	}
	rest = rest[nl+1:]
	for off := 0; off <= len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		if end >= 0 {
			line = rest[off : off+end]
		}
		if strings.TrimRight(string(line), " \t\r") == "---" {
			if end < 0 {
				return rest[:off], nil, nil
			}
			return rest[:off], rest[off+end+1:], nil
		}
		if end < 0 {
			break
		}
		off += end + 1
	}
	return nil, nil, fmt.Errorf("unterminated front matter: %w", internalerr.ErrInvalidInput)
}
