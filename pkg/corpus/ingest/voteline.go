package ingest

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minVotingChars   = 20
	minVoteLineChars = 15
	maxVoteLineChars = 1000
)

var (
	votingWhitelist = regexp.MustCompile(`[^\p{L}\p{N}_,.\s()\-]+`)
	chairperson     = regexp.MustCompile(`(?i)[,\s;]*\(\s*(acting|working)?\s*chair(man|person)\s*\)`)
	multilines      = regexp.MustCompile(`\s*\n+\s*`)
	startPunct      = regexp.MustCompile(`^[.,\s]`)
	trailingDashes  = regexp.MustCompile(`-+$`)
	justiceMarker   = regexp.MustCompile(`(C\.|J\.)?J\.`)
	capitalStart    = regexp.MustCompile(`^[A-Z]`)
)

// markdowner renders the HTML of a voting block.
type markdowner interface {
	ToMarkdown(fragment string) (string, error)
}

// VoteLine is one line of a voting block naming how a justice voted.
type VoteLine struct {
	DecisionID string
	Text       string
}

// CleanVoting normalizes the voting block of a metadata document. It
// returns "" when the block is too short to hold a vote.
func (p *Pipeline) CleanVoting(text string) (string, error) {
	text = strings.TrimRightFunc(strings.TrimLeft(text, ". "), unicode.IsSpace)
	if utf8.RuneCountInString(text) < minVotingChars {
		return "", nil
	}
	md, err := p.voting.ToMarkdown(text)
	if err != nil {
		return "", fmt.Errorf("voting: %w", err)
	}
	md = strings.TrimSpace(strings.ReplaceAll(md, "*", ""))
	md = votingWhitelist.ReplaceAllString(md, "")
	md = strings.ReplaceAll(md, "concur.", "concur.\n")
	md = chairperson.ReplaceAllString(md, "")
	md = multilines.ReplaceAllString(md, "\n")
	md = startPunct.ReplaceAllString(md, "")
	md = trailingDashes.ReplaceAllString(md, "")
	return strings.TrimSpace(md), nil
}

// IsVoteLine reports whether line plausibly records a justice's vote.
func IsVoteLine(line string) bool {
	n := utf8.RuneCountInString(line)
	if n <= minVoteLineChars || n >= maxVoteLineChars {
		return false
	}
	return justiceMarker.MatchString(line) && !isUpper(line) && capitalStart.MatchString(line)
}

// isUpper mirrors a check for text whose cased letters are all upper case.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// VoteLines yields the accepted lines of a cleaned voting block.
func VoteLines(decisionID, text string) iter.Seq[VoteLine] {
	return func(yield func(VoteLine) bool) {
		lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
		for _, line := range lines {
			if !IsVoteLine(line) {
				continue
			}
			if !yield(VoteLine{DecisionID: decisionID, Text: line}) {
				return
			}
		}
	}
}
