// Package corpus ingests case folders into a normalized, attributed
// record store.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/cognicore/corpus/internal/logging"
	"github.com/cognicore/corpus/pkg/corpus/casesource"
	"github.com/cognicore/corpus/pkg/corpus/citation"
	"github.com/cognicore/corpus/pkg/corpus/convert"
	"github.com/cognicore/corpus/pkg/corpus/decision"
	"github.com/cognicore/corpus/pkg/corpus/ingest"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/justice"
	"github.com/cognicore/corpus/pkg/corpus/ponente"
	"github.com/cognicore/corpus/pkg/corpus/store"
)

// Corpus is the ingestion facade: it reads case folders, attributes them
// against the roster and writes the record graph to the store.
type Corpus struct {
	store    store.Store
	roster   *justice.Roster
	matcher  justice.Matcher
	pipeline *ingest.Pipeline
	log      *logging.Logger
}

// Options configures a Corpus instance
type Options struct {
	Store    store.Store
	Roster   *justice.Roster
	Pipeline *ingest.Pipeline
	// Matcher defaults to the roster itself
	Matcher justice.Matcher
	// Logger defaults to a no-op logger
	Logger *logging.Logger
}

// New creates a Corpus instance with the given dependencies
func New(opts Options) *Corpus {
	c := &Corpus{
		store:    opts.Store,
		roster:   opts.Roster,
		matcher:  opts.Matcher,
		pipeline: opts.Pipeline,
		log:      opts.Logger,
	}
	if c.matcher == nil {
		c.matcher = opts.Roster
	}
	if c.pipeline == nil {
		c.pipeline = ingest.NewPipeline(ingest.DefaultTaxonomy(), ingest.NewSegmenter(), convert.New())
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	return c
}

// Close cleanly shuts down the Corpus instance
func (c *Corpus) Close() error {
	return c.store.Close()
}

// Store returns the destination store
func (c *Corpus) Store() store.Store { return c.store }

// Roster returns the justice roster in use
func (c *Corpus) Roster() *justice.Roster { return c.roster }

// LoadRoster writes the roster to the store. Decisions and opinions
// reference justices by id, so this runs before any case.
func (c *Corpus) LoadRoster(ctx context.Context) error {
	all := c.roster.All()
	rows := make([]store.Justice, len(all))
	for i, j := range all {
		rows[i] = store.Justice{
			ID:           j.ID,
			FirstName:    j.FirstName,
			LastName:     j.LastName,
			Suffix:       j.Suffix,
			FullName:     j.FullName,
			Gender:       j.Gender,
			Alias:        j.Alias,
			BirthDate:    j.BirthDate,
			StartTerm:    j.StartTerm,
			EndTerm:      j.EndTerm,
			ChiefDate:    j.ChiefDate,
			RetireDate:   j.RetireDate,
			InactiveDate: j.InactiveDate,
		}
	}
	if err := c.store.UpsertJustices(ctx, rows); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	return nil
}

// Outcome describes a stored case
type Outcome struct {
	DecisionID  string
	Attribution justice.Attribution
	// AttributionErr is ErrNoMatch or ErrAmbiguous when the ponente could
	// not be resolved to one justice
	AttributionErr error
	Warnings       []error
	Records        store.Counts
}

// IngestCase reads one case folder and stores its decision and every
// record derived from it. Errors up to and including the decision insert
// abort the case; later failures are logged and reported as warnings.
func (c *Corpus) IngestCase(ctx context.Context, folder casesource.Folder) (string, error) {
	out, err := c.ingestCase(ctx, folder)
	return out.DecisionID, err
}

func (c *Corpus) ingestCase(ctx context.Context, folder casesource.Folder) (Outcome, error) {
	var out Outcome
	ctx = logging.WithCase(ctx, folder.Location)

	// 1. Metadata and citation
	raw, err := folder.ReadFile(ctx, casesource.DetailsFile)
	if err != nil {
		return out, fmt.Errorf("%s: read %s: %w: %v", folder.Location, casesource.DetailsFile, internalerr.ErrInvalidInput, err)
	}
	details, err := ingest.ParseDetails(raw)
	if err != nil {
		return out, fmt.Errorf("%s: %w", folder.Location, err)
	}
	if err := details.Validate(); err != nil {
		return out, fmt.Errorf("%s: %w", folder.Location, err)
	}
	date, _ := details.Date()

	src, err := decision.ParseSource(folder.Source)
	if err != nil {
		return out, fmt.Errorf("%s: %w", folder.Location, err)
	}
	cite := citation.Extract(details.CitationFields())

	// 2. Identity
	id := decision.ResolveID(folder.Name, src, cite)

	// 3. Attribution, never fatal
	att, err := justice.Attribute(c.matcher, ponente.Extract(details.Ponente), date)
	if err != nil {
		out.AttributionErr = err
		att.JusticeID, att.Designation = 0, ""
		c.log.Warn(ctx, "ponente not attributed",
			zap.String("decision.id", id),
			zap.String("ponente", details.Ponente),
			zap.Error(err))
	}
	out.Attribution = att

	fallo, err := c.readFallo(ctx, folder)
	if err != nil {
		out.Warnings = append(out.Warnings, err)
		c.log.Warn(ctx, "fallo skipped", zap.String("decision.id", id), zap.Error(err))
	}

	voting, err := c.pipeline.CleanVoting(details.Voting)
	if err != nil {
		out.Warnings = append(out.Warnings, err)
		c.log.Warn(ctx, "voting skipped", zap.String("decision.id", id), zap.Error(err))
	}

	d := decision.Decision{
		ID:          id,
		Origin:      folder.Name,
		Source:      src,
		Created:     folder.Created,
		Modified:    folder.Modified,
		Title:       details.Title,
		Description: cite.Display(),
		Date:        date,
		Emails:      details.AuthorEmails(decision.DefaultEmail),
		Category:    decision.CategoryFromText(details.Category),
		Composition: decision.CompositionFromText(details.Composition),
		Fallo:       fallo,
		Voting:      voting,
		Ponente:     att,
	}
	if err := d.Validate(cite); err != nil {
		return out, fmt.Errorf("%s: %w", folder.Location, err)
	}

	// 4. Commit the decision
	if err := c.store.InsertDecision(ctx, decisionRow(d)); err != nil {
		if !errors.Is(err, internalerr.ErrDuplicate) {
			err = fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
		}
		return out, fmt.Errorf("%s: %w", folder.Location, err)
	}
	out.DecisionID = id
	out.Records.Decisions = 1

	warn := func(msg string, err error) {
		out.Warnings = append(out.Warnings, err)
		c.log.Warn(ctx, msg, zap.String("decision.id", id), zap.Error(err))
	}

	// 5. Citation
	if cite.HasCitation() {
		if err := c.store.InsertCitation(ctx, citationRow(id, cite)); err != nil {
			warn("citation not stored", err)
		} else {
			out.Records.Citations = 1
		}
	}

	// 6. Derived records
	main, err := c.readMain(ctx, folder)
	if err != nil {
		warn("main opinion skipped", err)
	}
	separate := c.readSeparate(ctx, folder, id, warn)

	processed := c.pipeline.Process(ingest.Case{
		DecisionID:    id,
		Title:         d.Title,
		Voting:        d.Voting,
		MainJusticeID: att.JusticeID,
		Main:          main,
		Separate:      separate,
	})
	for _, w := range processed.Warnings {
		warn("opinion skipped", w)
	}

	c.storeRecords(ctx, id, processed, &out, warn)

	c.log.Debug(ctx, "case stored",
		zap.String("decision.id", id),
		zap.Int("justice.id", att.JusticeID),
		zap.Int("opinions", out.Records.Opinions),
		zap.Int("segments", out.Records.Segments))
	return out, nil
}

func (c *Corpus) storeRecords(ctx context.Context, id string, p ingest.ProcessedCase, out *Outcome, warn func(string, error)) {
	if len(p.VoteLines) > 0 {
		rows := make([]store.VoteLine, len(p.VoteLines))
		for i, v := range p.VoteLines {
			rows[i] = store.VoteLine{DecisionID: v.DecisionID, Text: v.Text}
		}
		if err := c.store.InsertVoteLines(ctx, rows); err != nil {
			warn("vote lines not stored", err)
		} else {
			out.Records.VoteLines = len(rows)
		}
	}

	if len(p.Tags) > 0 {
		rows := make([]store.TitleTag, len(p.Tags))
		for i, t := range p.Tags {
			rows[i] = store.TitleTag{DecisionID: id, Tag: t}
		}
		if err := c.store.InsertTitleTags(ctx, rows); err != nil {
			warn("tags not stored", err)
		} else {
			out.Records.TitleTags = len(rows)
		}
	}

	stored := make(map[string]bool, len(p.Opinions))
	for _, op := range p.Opinions {
		row, err := opinionRow(op)
		if err == nil {
			err = c.store.InsertOpinion(ctx, row)
		}
		if err != nil {
			warn("opinion not stored", err)
			continue
		}
		stored[op.ID] = true
		out.Records.Opinions++
	}

	var segs []store.Segment
	for _, s := range p.Segments {
		if !stored[s.OpinionID] {
			continue
		}
		segs = append(segs, store.Segment{
			ID:         s.ID,
			OpinionID:  s.OpinionID,
			DecisionID: s.DecisionID,
			Position:   s.Position,
			CharCount:  s.CharCount,
			Text:       s.Text,
		})
	}
	if len(segs) > 0 {
		if err := c.store.InsertSegments(ctx, segs); err != nil {
			warn("segments not stored", err)
		} else {
			out.Records.Segments = len(segs)
		}
	}
}

// readFallo converts fallo.html; a missing file is an empty fallo
func (c *Corpus) readFallo(ctx context.Context, folder casesource.Folder) (string, error) {
	raw, err := readOptional(ctx, folder, casesource.FalloFile)
	if err != nil || raw == "" {
		return "", err
	}
	return c.pipeline.Fallo(raw)
}

func (c *Corpus) readMain(ctx context.Context, folder casesource.Folder) (convert.Parts, error) {
	var (
		p   convert.Parts
		err error
	)
	if p.Ponencia, err = readOptional(ctx, folder, casesource.PonenciaFile); err != nil {
		return convert.Parts{}, err
	}
	if p.Fallo, err = readOptional(ctx, folder, casesource.FalloFile); err != nil {
		return convert.Parts{}, err
	}
	if p.Annex, err = readOptional(ctx, folder, casesource.AnnexFile); err != nil {
		return convert.Parts{}, err
	}
	return p, nil
}

// readSeparate parses opinions/<justice_id>.md files. An id outside the
// roster keeps the opinion with a null justice.
func (c *Corpus) readSeparate(ctx context.Context, folder casesource.Folder, id string, warn func(string, error)) []ingest.Opinion {
	stems, err := folder.OpinionStems(ctx)
	if err != nil {
		warn("separate opinions not listed", err)
		return nil
	}

	var ops []ingest.Opinion
	for _, stem := range stems {
		raw, err := folder.ReadFile(ctx, casesource.OpinionPath(stem))
		if err != nil {
			warn("separate opinion unreadable", err)
			continue
		}
		op, err := ingest.ParseOpinion(id, stem, raw)
		if err != nil {
			warn("separate opinion invalid", err)
			continue
		}
		if _, ok := c.roster.Get(op.JusticeID); !ok {
			warn("separate opinion justice unknown", fmt.Errorf("opinion %s: justice %d: %w", op.ID, op.JusticeID, internalerr.ErrNotFound))
			op.JusticeID = 0
		}
		ops = append(ops, op)
	}
	return ops
}

func readOptional(ctx context.Context, folder casesource.Folder, name string) (string, error) {
	raw, err := folder.ReadFile(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(raw), nil
}

func decisionRow(d decision.Decision) store.Decision {
	return store.Decision{
		ID:          d.ID,
		Origin:      d.Origin,
		Source:      string(d.Source),
		Created:     d.Created,
		Modified:    d.Modified,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Emails:      d.Emails,
		Category:    string(d.Category),
		Composition: string(d.Composition),
		Fallo:       d.Fallo,
		Voting:      d.Voting,
		RawPonente:  d.Ponente.RawPonente,
		JusticeID:   d.Ponente.JusticeID,
		PerCuriam:   d.Ponente.PerCuriam,
		Designation: d.Ponente.Designation,
	}
}

func citationRow(id string, c citation.Citation) store.Citation {
	return store.Citation{
		DecisionID:     id,
		Docket:         c.Docket,
		DocketCategory: c.DocketCategory,
		DocketSerial:   c.DocketSerial,
		DocketDate:     c.DocketDate,
		Scra:           c.Scra,
		Phil:           c.Phil,
		Offg:           c.Offg,
	}
}

func opinionRow(o ingest.Opinion) (store.Opinion, error) {
	row := store.Opinion{
		ID:         o.ID,
		DecisionID: o.DecisionID,
		JusticeID:  o.JusticeID,
		Title:      o.Title,
		Tags:       o.Tags,
		Remark:     o.Remark,
		Text:       o.Text,
	}
	if len(o.Concurs) > 0 {
		raw, err := json.Marshal(o.Concurs)
		if err != nil {
			return store.Opinion{}, fmt.Errorf("opinion %s concurs: %w", o.ID, err)
		}
		row.Concurs = string(raw)
	}
	return row, nil
}
