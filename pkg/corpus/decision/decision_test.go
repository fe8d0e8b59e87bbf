package decision

import (
	"errors"
	"testing"
	"time"

	"github.com/cognicore/corpus/pkg/corpus/citation"
	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveID(t *testing.T) {
	legacy := citation.Citation{
		Docket:     "GR L-7529, Oct. 31, 1955",
		DocketDate: date(1955, 10, 31),
		Phil:       "97 Phil. 825",
	}

	tests := []struct {
		name   string
		folder string
		src    Source
		cite   citation.Citation
		want   string
	}{
		{"legacy uses citation slug", "c343d", SourceLegacy, legacy, "gr-l-7529-oct-31-1955-97-phil-825"},
		{"docket with phil", "1", SourceSC, citation.Citation{Docket: "GR 123", Phil: "45 Phil 6"}, "gr-123-45-phil-6"},
		{"scra preferred over phil", "1", SourceSC, citation.Citation{Docket: "GR 123", Scra: "7 SCRA 8", Phil: "45 Phil 6"}, "gr-123-7-scra-8"},
		{"docket alone", "1", SourceSC, citation.Citation{Docket: "GR 123"}, "gr-123"},
		{"report without docket", "62206", SourceSC, citation.Citation{Phil: "792 Phil. 133"}, "62206"},
		{"no citation", "62055", SourceSC, citation.Citation{}, "62055"},
		{"legacy without citation", "c343d", SourceLegacy, citation.Citation{}, "c343d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveID(tt.folder, tt.src, tt.cite); got != tt.want {
				t.Errorf("ResolveID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Decision
		cite citation.Citation
		want error
	}{
		{"consistent", Decision{Source: SourceSC, Date: date(2016, 8, 2)}, citation.Citation{DocketDate: date(2016, 8, 2)}, nil},
		{"no docket date", Decision{Source: SourceSC, Date: date(2016, 8, 2)}, citation.Citation{}, nil},
		{"mismatch", Decision{Source: SourceSC, Date: date(2016, 8, 2)}, citation.Citation{DocketDate: date(2016, 8, 3)}, internalerr.ErrDateMismatch},
		{"legacy cutoff inclusive", Decision{Source: SourceLegacy, Date: date(1995, 12, 31)}, citation.Citation{}, nil},
		{"legacy past cutoff", Decision{Source: SourceLegacy, Date: date(1996, 1, 15)}, citation.Citation{}, internalerr.ErrLegacyDateRange},
		{"modern past cutoff", Decision{Source: SourceSC, Date: date(1996, 1, 15)}, citation.Citation{}, nil},
		{"missing date", Decision{Source: SourceSC}, citation.Citation{}, internalerr.ErrBadDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate(tt.cite)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCategoryFromText(t *testing.T) {
	tests := map[string]Category{
		"Decision":            CategoryDecision,
		"D E C I S I O N":     CategoryDecision,
		"resolution":          CategoryResolution,
		"R E S O L U T I O N": CategoryResolution,
		"":                    CategoryUnspecified,
		"order":               CategoryUnspecified,
	}
	for in, want := range tests {
		if got := CategoryFromText(in); got != want {
			t.Errorf("CategoryFromText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompositionFromText(t *testing.T) {
	tests := map[string]Composition{
		"En Banc":         CompositionEnBanc,
		"EN BANC":         CompositionEnBanc,
		"Second Division": CompositionDivision,
		"":                CompositionUnspecified,
		"special":         CompositionUnspecified,
	}
	for in, want := range tests {
		if got := CompositionFromText(in); got != want {
			t.Errorf("CompositionFromText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSource(t *testing.T) {
	if s, err := ParseSource("legacy"); err != nil || s != SourceLegacy {
		t.Fatalf("ParseSource(legacy) = %q, %v", s, err)
	}
	if _, err := ParseSource("other"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
