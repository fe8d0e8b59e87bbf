package corpus

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/corpus/internal/logging"
	"github.com/cognicore/corpus/pkg/corpus/casesource"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/store"
)

// SkipReason classifies why a case was not stored
type SkipReason string

const (
	SkipDuplicate    SkipReason = "duplicate"
	SkipDateMismatch SkipReason = "date_mismatch"
	SkipLegacyRange  SkipReason = "legacy_range"
	SkipBadDate      SkipReason = "bad_date"
	SkipParseFailure SkipReason = "parse_failure"
	SkipStoreFailure SkipReason = "store_failure"
)

// Classify maps a case error to its skip reason
func Classify(err error) SkipReason {
	switch {
	case errors.Is(err, internalerr.ErrDuplicate):
		return SkipDuplicate
	case errors.Is(err, internalerr.ErrDateMismatch):
		return SkipDateMismatch
	case errors.Is(err, internalerr.ErrLegacyDateRange):
		return SkipLegacyRange
	case errors.Is(err, internalerr.ErrBadDate):
		return SkipBadDate
	case errors.Is(err, internalerr.ErrInvalidInput):
		return SkipParseFailure
	default:
		return SkipStoreFailure
	}
}

// Skip records a case that was not stored
type Skip struct {
	Folder string
	Reason SkipReason
	Err    error
}

// Report summarizes an ingestion run
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time

	Seen     int
	Ingested int
	Skips    []Skip

	// Attribution outcomes of stored decisions
	Attributed   int
	PerCuriam    int
	NoMatch      int
	Ambiguous    int
	Unattributed int

	Warnings int
	Records  store.Counts

	metrics *Metrics
}

// Skipped returns the number of skipped cases per reason
func (r *Report) Skipped() map[SkipReason]int {
	out := make(map[SkipReason]int)
	for _, s := range r.Skips {
		out[s.Reason]++
	}
	return out
}

// Metrics returns the Prometheus collectors of the run
func (r *Report) Metrics() *Metrics { return r.metrics }

// WriteMetrics writes the run counters in the Prometheus text format
func (r *Report) WriteMetrics(path string) error {
	return r.metrics.WriteToTextfile(path)
}

func (r *Report) add(out Outcome) {
	r.Ingested++
	r.Warnings += len(out.Warnings)
	r.Records.Decisions += out.Records.Decisions
	r.Records.Citations += out.Records.Citations
	r.Records.VoteLines += out.Records.VoteLines
	r.Records.TitleTags += out.Records.TitleTags
	r.Records.Opinions += out.Records.Opinions
	r.Records.Segments += out.Records.Segments

	result := attributionResult(out)
	switch result {
	case "matched":
		r.Attributed++
	case "per_curiam":
		r.PerCuriam++
	case "ambiguous":
		r.Ambiguous++
	case "no_match":
		r.NoMatch++
	default:
		r.Unattributed++
	}
	r.metrics.observeCase(out, result)
}

func attributionResult(out Outcome) string {
	switch {
	case out.Attribution.Attributed():
		return "matched"
	case out.Attribution.PerCuriam:
		return "per_curiam"
	case errors.Is(out.AttributionErr, internalerr.ErrAmbiguous):
		return "ambiguous"
	case errors.Is(out.AttributionErr, internalerr.ErrNoMatch):
		return "no_match"
	default:
		return "none"
	}
}

func newRunID() string {
	return ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
}

// Run ingests every folder of src in traversal order, one case at a time.
// A limit above zero stops the run after that many folders. A failing
// case is recorded in the report and never aborts the batch; only listing
// the source, loading the roster or cancellation end the run early.
func (c *Corpus) Run(ctx context.Context, src casesource.Source, limit int) (Report, error) {
	rep := Report{
		RunID:   newRunID(),
		Started: time.Now(),
		metrics: NewMetrics(),
	}
	ctx = logging.WithRunID(ctx, rep.RunID)

	if err := c.LoadRoster(ctx); err != nil {
		rep.Finished = time.Now()
		return rep, err
	}

	folders, err := src.Folders(ctx)
	if err != nil {
		rep.Finished = time.Now()
		return rep, fmt.Errorf("list cases: %w", err)
	}
	if limit > 0 && len(folders) > limit {
		folders = folders[:limit]
	}

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			rep.Finished = time.Now()
			return rep, err
		}
		rep.Seen++

		out, err := c.ingestCase(ctx, folder)
		if err != nil {
			reason := Classify(err)
			rep.Skips = append(rep.Skips, Skip{Folder: folder.Location, Reason: reason, Err: err})
			rep.metrics.observeSkip(reason)
			c.log.Error(logging.WithCase(ctx, folder.Location), "case skipped",
				zap.String("reason", string(reason)),
				zap.Error(err))
			continue
		}
		rep.add(out)
	}

	rep.Finished = time.Now()
	c.log.Info(ctx, "run finished",
		zap.Int("seen", rep.Seen),
		zap.Int("ingested", rep.Ingested),
		zap.Int("skipped", len(rep.Skips)),
		zap.Int("ambiguous", rep.Ambiguous),
		zap.Int("no_match", rep.NoMatch),
		zap.Int("warnings", rep.Warnings),
		zap.Duration("elapsed", rep.Finished.Sub(rep.Started)))
	return rep, nil
}
