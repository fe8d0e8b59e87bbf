package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
	"github.com/cognicore/corpus/pkg/corpus/store"
)

const dateLayout = "2006-01-02"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode and foreign keys
// enabled, creating the schema when missing.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}
	// one writer; pragmas are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS justices (
	id INTEGER PRIMARY KEY,
	first_name TEXT,
	last_name TEXT,
	suffix TEXT,
	full_name TEXT,
	gender TEXT,
	alias TEXT,
	birth_date TEXT,
	start_term TEXT,
	end_term TEXT,
	chief_date TEXT,
	retire_date TEXT,
	inactive_date TEXT
);
CREATE INDEX IF NOT EXISTS idx_justices_match ON justices(last_name, alias, start_term, inactive_date);

CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	origin TEXT NOT NULL,
	source TEXT NOT NULL,
	created TEXT,
	modified TEXT,
	title TEXT,
	description TEXT,
	date TEXT NOT NULL,
	emails TEXT,
	category TEXT,
	composition TEXT,
	fallo TEXT,
	voting TEXT,
	raw_ponente TEXT,
	justice_id INTEGER,
	per_curiam INTEGER NOT NULL DEFAULT 0,
	designation TEXT,
	FOREIGN KEY(justice_id) REFERENCES justices(id)
);
CREATE INDEX IF NOT EXISTS idx_decisions_ponente ON decisions(date, justice_id, raw_ponente, per_curiam);
CREATE INDEX IF NOT EXISTS idx_decisions_origin ON decisions(source, origin);

CREATE TABLE IF NOT EXISTS decision_citations (
	decision_id TEXT PRIMARY KEY,
	docket TEXT,
	docket_category TEXT,
	docket_serial TEXT,
	docket_date TEXT,
	scra TEXT,
	phil TEXT,
	offg TEXT,
	FOREIGN KEY(decision_id) REFERENCES decisions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS decision_votelines (
	decision_id TEXT NOT NULL,
	text TEXT NOT NULL,
	FOREIGN KEY(decision_id) REFERENCES decisions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS decision_titletags (
	decision_id TEXT NOT NULL,
	tag TEXT NOT NULL,
	UNIQUE(decision_id, tag),
	FOREIGN KEY(decision_id) REFERENCES decisions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS opinions (
	id TEXT PRIMARY KEY,
	decision_id TEXT NOT NULL,
	justice_id INTEGER,
	title TEXT,
	tags TEXT,
	remark TEXT,
	concurs TEXT,
	text TEXT NOT NULL,
	FOREIGN KEY(decision_id) REFERENCES decisions(id) ON DELETE CASCADE,
	FOREIGN KEY(justice_id) REFERENCES justices(id)
);

CREATE TABLE IF NOT EXISTS opinion_segments (
	id TEXT PRIMARY KEY,
	opinion_id TEXT NOT NULL,
	decision_id TEXT NOT NULL,
	position TEXT NOT NULL,
	char_count INTEGER NOT NULL,
	segment TEXT NOT NULL,
	FOREIGN KEY(opinion_id) REFERENCES opinions(id) ON DELETE CASCADE,
	FOREIGN KEY(decision_id) REFERENCES decisions(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_segments_opinion ON opinion_segments(opinion_id, decision_id);
`

// tables in drop order, children first
var tables = []string{
	"opinion_segments",
	"opinions",
	"decision_titletags",
	"decision_votelines",
	"decision_citations",
	"decisions",
	"justices",
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Reset drops every table and recreates the schema
func (s *sqliteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return err
	}
	return tx.Commit()
}

// UpsertJustices inserts or replaces roster entries
func (s *sqliteStore) UpsertJustices(ctx context.Context, justices []store.Justice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO justices (id, first_name, last_name, suffix, full_name, gender, alias,
	birth_date, start_term, end_term, chief_date, retire_date, inactive_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	first_name=excluded.first_name,
	last_name=excluded.last_name,
	suffix=excluded.suffix,
	full_name=excluded.full_name,
	gender=excluded.gender,
	alias=excluded.alias,
	birth_date=excluded.birth_date,
	start_term=excluded.start_term,
	end_term=excluded.end_term,
	chief_date=excluded.chief_date,
	retire_date=excluded.retire_date,
	inactive_date=excluded.inactive_date;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, j := range justices {
		if _, err := stmt.ExecContext(ctx,
			j.ID, nullString(j.FirstName), nullString(j.LastName), nullString(j.Suffix),
			nullString(j.FullName), nullString(j.Gender), nullString(j.Alias),
			nullDate(j.BirthDate), nullDate(j.StartTerm), nullDate(j.EndTerm),
			nullDate(j.ChiefDate), nullDate(j.RetireDate), nullDate(j.InactiveDate),
		); err != nil {
			return fmt.Errorf("justice %d: %w", j.ID, err)
		}
	}
	return tx.Commit()
}

// GetJustice retrieves a roster entry by id
func (s *sqliteStore) GetJustice(ctx context.Context, id int) (store.Justice, bool, error) {
	var (
		j                                         store.Justice
		first, last, suffix, full, gender, alias  sql.NullString
		born, start, end, chief, retire, inactive sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, suffix, full_name, gender, alias,
	birth_date, start_term, end_term, chief_date, retire_date, inactive_date
FROM justices WHERE id = ?`, id).Scan(
		&j.ID, &first, &last, &suffix, &full, &gender, &alias,
		&born, &start, &end, &chief, &retire, &inactive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Justice{}, false, nil
	}
	if err != nil {
		return store.Justice{}, false, err
	}
	j.FirstName, j.LastName, j.Suffix = first.String, last.String, suffix.String
	j.FullName, j.Gender, j.Alias = full.String, gender.String, alias.String
	j.BirthDate = parseDate(born)
	j.StartTerm = parseDate(start)
	j.EndTerm = parseDate(end)
	j.ChiefDate = parseDate(chief)
	j.RetireDate = parseDate(retire)
	j.InactiveDate = parseDate(inactive)
	return j, true, nil
}

// InsertDecision inserts a decision; an existing id is ErrDuplicate
func (s *sqliteStore) InsertDecision(ctx context.Context, d store.Decision) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM decisions WHERE id = ?`, d.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("decision %s: %w", d.ID, internalerr.ErrDuplicate)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	emails, err := json.Marshal(d.Emails)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO decisions (id, origin, source, created, modified, title, description, date,
	emails, category, composition, fallo, voting, raw_ponente, justice_id, per_curiam, designation)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Origin, d.Source, nullTime(d.Created), nullTime(d.Modified),
		nullString(d.Title), nullString(d.Description), d.Date.Format(dateLayout),
		string(emails), nullString(d.Category), nullString(d.Composition),
		nullString(d.Fallo), nullString(d.Voting), nullString(d.RawPonente),
		nullInt(d.JusticeID), d.PerCuriam, nullString(d.Designation),
	)
	if err != nil {
		return fmt.Errorf("decision %s: %w", d.ID, err)
	}
	return tx.Commit()
}

// GetDecision retrieves a decision by id
func (s *sqliteStore) GetDecision(ctx context.Context, id string) (store.Decision, bool, error) {
	var (
		d                                                   store.Decision
		created, modified, title, desc, date, emails        sql.NullString
		category, composition, fallo, voting, raw, designat sql.NullString
		justiceID                                           sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, origin, source, created, modified, title, description, date, emails,
	category, composition, fallo, voting, raw_ponente, justice_id, per_curiam, designation
FROM decisions WHERE id = ?`, id).Scan(
		&d.ID, &d.Origin, &d.Source, &created, &modified, &title, &desc, &date, &emails,
		&category, &composition, &fallo, &voting, &raw, &justiceID, &d.PerCuriam, &designat,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Decision{}, false, nil
	}
	if err != nil {
		return store.Decision{}, false, err
	}

	d.Created = parseTime(created)
	d.Modified = parseTime(modified)
	d.Title, d.Description = title.String, desc.String
	d.Date = parseDate(date)
	if emails.Valid && emails.String != "" {
		if err := json.Unmarshal([]byte(emails.String), &d.Emails); err != nil {
			return store.Decision{}, false, fmt.Errorf("decision %s emails: %w", id, err)
		}
	}
	d.Category, d.Composition = category.String, composition.String
	d.Fallo, d.Voting = fallo.String, voting.String
	d.RawPonente, d.Designation = raw.String, designat.String
	d.JusticeID = int(justiceID.Int64)
	return d, true, nil
}

// InsertCitation attaches a citation to its decision
func (s *sqliteStore) InsertCitation(ctx context.Context, c store.Citation) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO decision_citations (decision_id, docket, docket_category, docket_serial, docket_date, scra, phil, offg)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.DecisionID, nullString(c.Docket), nullString(c.DocketCategory), nullString(c.DocketSerial),
		nullDate(c.DocketDate), nullString(c.Scra), nullString(c.Phil), nullString(c.Offg),
	)
	if err != nil {
		return fmt.Errorf("citation of %s: %w", c.DecisionID, err)
	}
	return nil
}

// GetCitation retrieves the citation of a decision
func (s *sqliteStore) GetCitation(ctx context.Context, decisionID string) (store.Citation, bool, error) {
	var (
		c                                              store.Citation
		docket, category, serial, date, scra, phil, og sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT decision_id, docket, docket_category, docket_serial, docket_date, scra, phil, offg
FROM decision_citations WHERE decision_id = ?`, decisionID).Scan(
		&c.DecisionID, &docket, &category, &serial, &date, &scra, &phil, &og,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Citation{}, false, nil
	}
	if err != nil {
		return store.Citation{}, false, err
	}
	c.Docket, c.DocketCategory, c.DocketSerial = docket.String, category.String, serial.String
	c.DocketDate = parseDate(date)
	c.Scra, c.Phil, c.Offg = scra.String, phil.String, og.String
	return c, true, nil
}

// InsertVoteLines appends vote lines
func (s *sqliteStore) InsertVoteLines(ctx context.Context, lines []store.VoteLine) error {
	return s.insertMany(ctx, `INSERT INTO decision_votelines (decision_id, text) VALUES (?, ?)`, len(lines),
		func(i int) []any { return []any{lines[i].DecisionID, lines[i].Text} })
}

// InsertTitleTags adds tags, ignoring repeats
func (s *sqliteStore) InsertTitleTags(ctx context.Context, tags []store.TitleTag) error {
	return s.insertMany(ctx, `INSERT OR IGNORE INTO decision_titletags (decision_id, tag) VALUES (?, ?)`, len(tags),
		func(i int) []any { return []any{tags[i].DecisionID, tags[i].Tag} })
}

// InsertSegments adds opinion segments
func (s *sqliteStore) InsertSegments(ctx context.Context, segs []store.Segment) error {
	return s.insertMany(ctx, `
INSERT INTO opinion_segments (id, opinion_id, decision_id, position, char_count, segment)
VALUES (?, ?, ?, ?, ?, ?)`, len(segs),
		func(i int) []any {
			sg := segs[i]
			return []any{sg.ID, sg.OpinionID, sg.DecisionID, sg.Position, sg.CharCount, sg.Text}
		})
}

func (s *sqliteStore) insertMany(ctx context.Context, query string, n int, args func(int) []any) error {
	if n == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertOpinion adds an opinion; an existing id is ErrDuplicate
func (s *sqliteStore) InsertOpinion(ctx context.Context, o store.Opinion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM opinions WHERE id = ?`, o.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("opinion %s: %w", o.ID, internalerr.ErrDuplicate)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	tags, err := json.Marshal(o.Tags)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO opinions (id, decision_id, justice_id, title, tags, remark, concurs, text)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.DecisionID, nullInt(o.JusticeID), nullString(o.Title), string(tags),
		nullString(o.Remark), nullString(o.Concurs), o.Text,
	)
	if err != nil {
		return fmt.Errorf("opinion %s: %w", o.ID, err)
	}
	return tx.Commit()
}

// ListVoteLines returns a decision's vote lines in insertion order
func (s *sqliteStore) ListVoteLines(ctx context.Context, decisionID string) ([]store.VoteLine, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT decision_id, text FROM decision_votelines WHERE decision_id = ? ORDER BY rowid`, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.VoteLine
	for rows.Next() {
		var v store.VoteLine
		if err := rows.Scan(&v.DecisionID, &v.Text); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListTitleTags returns a decision's tags in insertion order
func (s *sqliteStore) ListTitleTags(ctx context.Context, decisionID string) ([]store.TitleTag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT decision_id, tag FROM decision_titletags WHERE decision_id = ? ORDER BY rowid`, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TitleTag
	for rows.Next() {
		var t store.TitleTag
		if err := rows.Scan(&t.DecisionID, &t.Tag); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListOpinions returns a decision's opinions in insertion order
func (s *sqliteStore) ListOpinions(ctx context.Context, decisionID string) ([]store.Opinion, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, decision_id, justice_id, title, tags, remark, concurs, text
FROM opinions WHERE decision_id = ? ORDER BY rowid`, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Opinion
	for rows.Next() {
		var (
			o                           store.Opinion
			justiceID                   sql.NullInt64
			title, tags, remark, concur sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.DecisionID, &justiceID, &title, &tags, &remark, &concur, &o.Text); err != nil {
			return nil, err
		}
		o.JusticeID = int(justiceID.Int64)
		o.Title, o.Remark, o.Concurs = title.String, remark.String, concur.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &o.Tags); err != nil {
				return nil, fmt.Errorf("opinion %s tags: %w", o.ID, err)
			}
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListSegments returns an opinion's segments in position order
func (s *sqliteStore) ListSegments(ctx context.Context, opinionID string) ([]store.Segment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, opinion_id, decision_id, position, char_count, segment
FROM opinion_segments WHERE opinion_id = ? ORDER BY rowid`, opinionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Segment
	for rows.Next() {
		var sg store.Segment
		if err := rows.Scan(&sg.ID, &sg.OpinionID, &sg.DecisionID, &sg.Position, &sg.CharCount, &sg.Text); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

// Counts reports the number of rows per table
func (s *sqliteStore) Counts(ctx context.Context) (store.Counts, error) {
	var c store.Counts
	targets := []struct {
		table string
		dst   *int
	}{
		{"justices", &c.Justices},
		{"decisions", &c.Decisions},
		{"decision_citations", &c.Citations},
		{"decision_votelines", &c.VoteLines},
		{"decision_titletags", &c.TitleTags},
		{"opinions", &c.Opinions},
		{"opinion_segments", &c.Segments},
	}
	for _, t := range targets {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.table).Scan(t.dst); err != nil {
			return store.Counts{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return c, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, _ := time.Parse(dateLayout, s.String)
	return t
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s.String)
	return t
}
