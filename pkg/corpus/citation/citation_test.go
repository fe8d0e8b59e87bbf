package citation

import (
	"testing"
	"time"
)

func TestExtractLegacyDocket(t *testing.T) {
	c := Extract(Fields{Docket: "G.R. No. L-7529, October 31, 1955", Phil: "97 Phil. 825"})

	if c.Docket != "GR L-7529, Oct. 31, 1955" {
		t.Errorf("docket = %q", c.Docket)
	}
	if c.DocketCategory != "GR" || c.DocketSerial != "L-7529" {
		t.Errorf("category/serial = %q/%q", c.DocketCategory, c.DocketSerial)
	}
	if !c.DocketDate.Equal(time.Date(1955, 10, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("docket date = %v", c.DocketDate)
	}
	if got := c.Display(); got != "GR L-7529, Oct. 31, 1955, 97 Phil. 825" {
		t.Errorf("display = %q", got)
	}
	if got := c.Slug(); got != "gr-l-7529-oct-31-1955-97-phil-825" {
		t.Errorf("slug = %q", got)
	}
}

func TestExtractDocketWithoutDate(t *testing.T) {
	c := Extract(Fields{Docket: "GR 123", Date: "2016-08-02", Scra: "45  SCRA 6"})
	if c.Docket != "GR 123, Aug. 2, 2016" {
		t.Errorf("docket = %q", c.Docket)
	}
	if c.Scra != "45 SCRA 6" {
		t.Errorf("scra = %q", c.Scra)
	}
	if c.Report() != "45 SCRA 6" {
		t.Errorf("report = %q", c.Report())
	}
}

func TestExtractMayDocket(t *testing.T) {
	c := Extract(Fields{Docket: "G.R. No. 200, May 5, 2011", Scra: "650 SCRA 10"})
	if c.Docket != "GR 200, May 5, 2011" {
		t.Errorf("docket = %q", c.Docket)
	}
	if got := c.Display(); got != "GR 200, May 5, 2011, 650 SCRA 10" {
		t.Errorf("display = %q", got)
	}
	if got := c.Slug(); got != "gr-200-may-5-2011-650-scra-10" {
		t.Errorf("slug = %q", got)
	}
}

func TestDocketDate(t *testing.T) {
	tests := map[time.Month]string{
		time.January:   "Jan. 9, 2020",
		time.May:       "May 9, 2020",
		time.September: "Sep. 9, 2020",
	}
	for m, want := range tests {
		if got := DocketDate(time.Date(2020, m, 9, 0, 0, 0, 0, time.UTC)); got != want {
			t.Errorf("DocketDate(%s) = %q, want %q", m, got, want)
		}
	}
}

func TestExtractUnreadableDocket(t *testing.T) {
	c := Extract(Fields{Docket: "unknown", Phil: "792 Phil. 133"})
	if c.Docket != "" || !c.DocketDate.IsZero() {
		t.Errorf("docket should be dropped, got %+v", c)
	}
	if !c.HasCitation() || c.Display() != "792 Phil. 133" {
		t.Errorf("report should survive, got %+v", c)
	}

	c = Extract(Fields{Docket: "GR 1"})
	if c.Docket != "" {
		t.Errorf("docket without any date should be dropped, got %q", c.Docket)
	}
}

func TestEmptyCitation(t *testing.T) {
	c := Extract(Fields{})
	if c.HasCitation() || c.Slug() != "" || c.Display() != "" {
		t.Errorf("empty citation = %+v", c)
	}
}

func TestReportPrefersScra(t *testing.T) {
	c := Citation{Scra: "1 SCRA 2", Phil: "3 Phil. 4"}
	if c.Report() != "1 SCRA 2" {
		t.Errorf("report = %q", c.Report())
	}
	c.Scra = ""
	if c.Report() != "3 Phil. 4" {
		t.Errorf("report = %q", c.Report())
	}
}

func TestExtractAdministrativeDocket(t *testing.T) {
	c := Extract(Fields{Docket: "A.M. No. RTJ-05-1932, Sept. 5, 2006"})
	if c.DocketCategory != "AM" || c.DocketSerial != "RTJ-05-1932" {
		t.Errorf("category/serial = %q/%q", c.DocketCategory, c.DocketSerial)
	}
	if c.Docket != "AM RTJ-05-1932, Sep. 5, 2006" {
		t.Errorf("docket = %q", c.Docket)
	}
}
