package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/store"
)

// Store is an in-memory implementation of store.Store for tests. It
// enforces the same parent links as the SQLite schema.
type Store struct {
	mu        sync.RWMutex
	justices  map[int]store.Justice
	decisions map[string]store.Decision
	citations map[string]store.Citation
	voteLines map[string][]store.VoteLine
	titleTags map[string][]store.TitleTag
	opinions  map[string]store.Opinion
	byCase    map[string][]string
	segments  map[string][]store.Segment
}

// New creates a new in-memory store.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.justices = make(map[int]store.Justice)
	s.decisions = make(map[string]store.Decision)
	s.citations = make(map[string]store.Citation)
	s.voteLines = make(map[string][]store.VoteLine)
	s.titleTags = make(map[string][]store.TitleTag)
	s.opinions = make(map[string]store.Opinion)
	s.byCase = make(map[string][]string)
	s.segments = make(map[string][]store.Segment)
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Reset drops every record.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

// UpsertJustices inserts or replaces roster entries, keyed by id.
func (s *Store) UpsertJustices(ctx context.Context, justices []store.Justice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range justices {
		s.justices[j.ID] = j
	}
	return nil
}

// GetJustice returns a roster entry by id.
func (s *Store) GetJustice(ctx context.Context, id int) (store.Justice, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.justices[id]
	return j, ok, nil
}

// InsertDecision adds a decision; a known id is ErrDuplicate.
func (s *Store) InsertDecision(ctx context.Context, d store.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.decisions[d.ID]; ok {
		return fmt.Errorf("decision %s: %w", d.ID, internalerr.ErrDuplicate)
	}
	if err := s.checkJustice(d.JusticeID); err != nil {
		return fmt.Errorf("decision %s: %w", d.ID, err)
	}
	s.decisions[d.ID] = copyDecision(d)
	return nil
}

// GetDecision returns a decision by id.
func (s *Store) GetDecision(ctx context.Context, id string) (store.Decision, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decisions[id]
	if !ok {
		return store.Decision{}, false, nil
	}
	return copyDecision(d), true, nil
}

// InsertCitation attaches a citation to its decision.
func (s *Store) InsertCitation(ctx context.Context, c store.Citation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDecision(c.DecisionID); err != nil {
		return err
	}
	if _, ok := s.citations[c.DecisionID]; ok {
		return fmt.Errorf("citation of %s: %w", c.DecisionID, internalerr.ErrDuplicate)
	}
	s.citations[c.DecisionID] = c
	return nil
}

// GetCitation returns the citation of a decision.
func (s *Store) GetCitation(ctx context.Context, decisionID string) (store.Citation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.citations[decisionID]
	return c, ok, nil
}

// InsertVoteLines appends vote lines.
func (s *Store) InsertVoteLines(ctx context.Context, lines []store.VoteLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lines {
		if err := s.checkDecision(l.DecisionID); err != nil {
			return err
		}
	}
	for _, l := range lines {
		s.voteLines[l.DecisionID] = append(s.voteLines[l.DecisionID], l)
	}
	return nil
}

// InsertTitleTags adds tags, ignoring repeats.
func (s *Store) InsertTitleTags(ctx context.Context, tags []store.TitleTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tags {
		if err := s.checkDecision(t.DecisionID); err != nil {
			return err
		}
	}
	for _, t := range tags {
		if slices.Contains(s.titleTags[t.DecisionID], t) {
			continue
		}
		s.titleTags[t.DecisionID] = append(s.titleTags[t.DecisionID], t)
	}
	return nil
}

// InsertOpinion adds an opinion; a known id is ErrDuplicate.
func (s *Store) InsertOpinion(ctx context.Context, o store.Opinion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDecision(o.DecisionID); err != nil {
		return err
	}
	if err := s.checkJustice(o.JusticeID); err != nil {
		return fmt.Errorf("opinion %s: %w", o.ID, err)
	}
	if _, ok := s.opinions[o.ID]; ok {
		return fmt.Errorf("opinion %s: %w", o.ID, internalerr.ErrDuplicate)
	}
	s.opinions[o.ID] = copyOpinion(o)
	s.byCase[o.DecisionID] = append(s.byCase[o.DecisionID], o.ID)
	return nil
}

// InsertSegments adds opinion segments.
func (s *Store) InsertSegments(ctx context.Context, segs []store.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sg := range segs {
		if _, ok := s.opinions[sg.OpinionID]; !ok {
			return fmt.Errorf("opinion %s: %w", sg.OpinionID, internalerr.ErrNotFound)
		}
	}
	for _, sg := range segs {
		s.segments[sg.OpinionID] = append(s.segments[sg.OpinionID], sg)
	}
	return nil
}

// ListVoteLines returns a decision's vote lines in insertion order.
func (s *Store) ListVoteLines(ctx context.Context, decisionID string) ([]store.VoteLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.voteLines[decisionID]), nil
}

// ListTitleTags returns a decision's tags in insertion order.
func (s *Store) ListTitleTags(ctx context.Context, decisionID string) ([]store.TitleTag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.titleTags[decisionID]), nil
}

// ListOpinions returns a decision's opinions in insertion order.
func (s *Store) ListOpinions(ctx context.Context, decisionID string) ([]store.Opinion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Opinion
	for _, id := range s.byCase[decisionID] {
		out = append(out, copyOpinion(s.opinions[id]))
	}
	return out, nil
}

// ListSegments returns an opinion's segments in insertion order.
func (s *Store) ListSegments(ctx context.Context, opinionID string) ([]store.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.segments[opinionID]), nil
}

// Counts reports the number of records per kind.
func (s *Store) Counts(ctx context.Context) (store.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := store.Counts{
		Justices:  len(s.justices),
		Decisions: len(s.decisions),
		Citations: len(s.citations),
		Opinions:  len(s.opinions),
	}
	for _, l := range s.voteLines {
		c.VoteLines += len(l)
	}
	for _, t := range s.titleTags {
		c.TitleTags += len(t)
	}
	for _, sg := range s.segments {
		c.Segments += len(sg)
	}
	return c, nil
}

func (s *Store) checkDecision(id string) error {
	if _, ok := s.decisions[id]; !ok {
		return fmt.Errorf("decision %s: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

func (s *Store) checkJustice(id int) error {
	if id == 0 {
		return nil
	}
	if _, ok := s.justices[id]; !ok {
		return fmt.Errorf("justice %d: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

func copyDecision(d store.Decision) store.Decision {
	d.Emails = slices.Clone(d.Emails)
	return d
}

func copyOpinion(o store.Opinion) store.Opinion {
	o.Tags = slices.Clone(o.Tags)
	return o
}
