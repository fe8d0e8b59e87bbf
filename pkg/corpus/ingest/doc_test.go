package ingest

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

const detailsYAML = `
case_title: " Jocelyn S. Limkaichong, Petitioner, Vs. Land Bank Of The Philippines, Respondents. "
date_prom: 2016-08-02
ponente: BERSAMIN, J.
composition: EN BANC
category: DECISION
voting: Sereno, C.J., Carpio, JJ., concur.
phil: 792 Phil. 133
`

func TestParseDetails(t *testing.T) {
	d, err := ParseDetails([]byte(detailsYAML))
	if err != nil {
		t.Fatalf("ParseDetails: %v", err)
	}
	if d.Title != "Jocelyn S. Limkaichong, Petitioner, Vs. Land Bank Of The Philippines, Respondents." {
		t.Errorf("title = %q", d.Title)
	}
	if d.Ponente != "BERSAMIN, J." || d.Phil != "792 Phil. 133" {
		t.Errorf("details = %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	date, err := d.Date()
	if err != nil || !date.Equal(time.Date(2016, 8, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, %v", date, err)
	}
	f := d.CitationFields()
	if f.Phil != "792 Phil. 133" || f.Date != "2016-08-02" {
		t.Errorf("citation fields = %+v", f)
	}
}

func TestParseDetailsInvalidYAML(t *testing.T) {
	if _, err := ParseDetails([]byte("case_title: [unterminated")); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDetailsValidateMissingDate(t *testing.T) {
	d := Details{Title: "Some case"}
	if err := d.Validate(); !errors.Is(err, internalerr.ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
	d.DateProm = "sometime"
	if err := d.Validate(); !errors.Is(err, internalerr.ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

func TestAuthorEmails(t *testing.T) {
	d := Details{}
	if got := d.AuthorEmails("bot@lawsql.com"); !slices.Equal(got, []string{"bot@lawsql.com"}) {
		t.Errorf("default emails = %v", got)
	}
	d.Emails = []string{" a@b.c ", ""}
	if got := d.AuthorEmails("bot@lawsql.com"); !slices.Equal(got, []string{"a@b.c"}) {
		t.Errorf("emails = %v", got)
	}
}
