package store

import (
	"context"
	"time"
)

// Store persists the normalized record graph of the corpus. Decision ids
// are unique; every other record hangs off a decision by foreign key.
type Store interface {
	Close() error

	// Reset drops and recreates every table
	Reset(ctx context.Context) error

	// Justices
	UpsertJustices(ctx context.Context, justices []Justice) error
	GetJustice(ctx context.Context, id int) (Justice, bool, error)

	// Decisions; InsertDecision fails with internalerr.ErrDuplicate on a
	// known id
	InsertDecision(ctx context.Context, d Decision) error
	GetDecision(ctx context.Context, id string) (Decision, bool, error)

	// Records attached to a decision
	InsertCitation(ctx context.Context, c Citation) error
	InsertVoteLines(ctx context.Context, lines []VoteLine) error
	InsertTitleTags(ctx context.Context, tags []TitleTag) error
	InsertOpinion(ctx context.Context, o Opinion) error
	InsertSegments(ctx context.Context, segs []Segment) error

	GetCitation(ctx context.Context, decisionID string) (Citation, bool, error)
	ListVoteLines(ctx context.Context, decisionID string) ([]VoteLine, error)
	ListTitleTags(ctx context.Context, decisionID string) ([]TitleTag, error)
	ListOpinions(ctx context.Context, decisionID string) ([]Opinion, error)
	ListSegments(ctx context.Context, opinionID string) ([]Segment, error)

	Counts(ctx context.Context) (Counts, error)
}

// Justice is a stored roster entry. Zero dates are stored as NULL.
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

// Decision is a stored decision. JusticeID 0 is stored as NULL.
type Decision struct {
	ID          string
	Origin      string
	Source      string
	Created     time.Time
	Modified    time.Time
	Title       string
	Description string
	Date        time.Time
	Emails      []string
	Category    string
	Composition string
	Fallo       string
	Voting      string
	RawPonente  string
	JusticeID   int
	PerCuriam   bool
	Designation string
}

// Citation links a decision to its docket and reports
type Citation struct {
	DecisionID     string
	Docket         string
	DocketCategory string
	DocketSerial   string
	DocketDate     time.Time
	Scra           string
	Phil           string
	Offg           string
}

// VoteLine is one line of a decision's voting block
type VoteLine struct {
	DecisionID string
	Text       string
}

// TitleTag is one subject tag of a decision
type TitleTag struct {
	DecisionID string
	Tag        string
}

// Opinion is a stored opinion. Concurs holds the JSON-encoded
// concurrence list of its front matter.
type Opinion struct {
	ID         string
	DecisionID string
	JusticeID  int
	Title      string
	Tags       []string
	Remark     string
	Concurs    string
	Text       string
}

// Segment is a stored opinion segment
type Segment struct {
	ID         string
	OpinionID  string
	DecisionID string
	Position   string
	CharCount  int
	Text       string
}

// Counts reports table sizes
type Counts struct {
	Justices  int
	Decisions int
	Citations int
	VoteLines int
	TitleTags int
	Opinions  int
	Segments  int
}
