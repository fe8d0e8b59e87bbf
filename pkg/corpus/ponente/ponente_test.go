package ponente

import "testing"

func TestCleanKnownVariants(t *testing.T) {
	cases := map[string][]string{
		"avancena": {
			"AVACEÑA, J.",
			"AVANCEÑA J., with whom concurs MALCOLM, J.",
			"AVANCEÑA, J.",
			"AVANCEÃ'A, C.J.",
			"AVANCEÃ'A, J.",
		},
		"melencio-herrera": {
			"MELENCIO HERRERA, J.",
			"MELENCIO-HERRERA. J.",
			"MELENCIO-HERRRERA, J.",
			"MELENCIO-HERERRA, J.",
			"MELENCIO-HERERA, J.",
		},
		"reyes, j.b.l.": {
			"REYES, J, B. L. J.",
			"REYES, J. B. L., Actg. C.J.",
			"Reyes, J. B. L. J.",
			"REYES, J. B. L., .J.",
			"REYES , J.B.L, Acting C.J.",
			"REYES, J, B. L., J.",
			"REYES, J.B.L., Actg. C.J.",
		},
		"ynares-santiago": {
			"Ynares-Santiago",
			"Ynares-Santiago, J.",
			"Ynares-Satiago",
			"Ynares_Santiago",
		},
	}
	for want, inputs := range cases {
		for _, in := range inputs {
			got, ok := Clean(in)
			if !ok {
				t.Errorf("Clean(%q) reported unusable, want %q", in, want)
				continue
			}
			if got != want {
				t.Errorf("Clean(%q) = %q, want %q", in, got, want)
			}
		}
	}
}

func TestCleanSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BERSAMIN, J.", "bersamin"},
		{"Panganiban, C.J.", "panganiban"},
		{"CARPIO, Acting C.J.", "carpio"},
		{"CARPIO, Working C.J.", "carpio"},
		{"*Bersamin, J.", "bersamin"},
		{"[*]Peralta, J.:", "peralta"},
		{"DAVIDE, JR., C.J.", "davide jr."},
		{"Velasco, Jr., J.", "velasco jr."},
		{"VILLARAMA, JR., J.", "villarama jr."},
		{"BERSAMIN, J., with whom concurs PERALTA, J.", "bersamin"},
	}
	for _, tt := range tests {
		got, ok := Clean(tt.in)
		if !ok || got != tt.want {
			t.Errorf("Clean(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}
}

func TestCleanLengthWindow(t *testing.T) {
	for _, in := range []string{"", "  ", "Cruz, J.", "ABAD", "A Very Long Name Indeed That Overflows, J."} {
		if got, ok := Clean(in); ok {
			t.Errorf("Clean(%q) = %q, want unusable", in, got)
		}
	}
	if got, ok := Clean("Abad, J."); ok {
		t.Errorf("four letter key should be rejected, got %q", got)
	}
	if got, ok := Clean("Tinga, J."); !ok || got != "tinga" {
		t.Errorf("Clean(Tinga) = %q, %v", got, ok)
	}
}

func TestCleanIdempotent(t *testing.T) {
	keys := []string{
		"avancena", "melencio-herrera", "reyes, j.b.l.", "reyes, a. jr.", "reyes, r.t.",
		"ynares-santiago", "leonardo-de castro", "campos jr.", "de leon jr.",
		"del castillo", "bautista angelo", "villa-real", "gaerlan", "bersamin",
	}
	for _, key := range keys {
		got, ok := Clean(key)
		if !ok || got != key {
			t.Errorf("Clean(%q) = %q, %v; want unchanged", key, got, ok)
		}
	}
}

func TestExtract(t *testing.T) {
	if Extract("") != nil {
		t.Fatal("empty text should yield nil")
	}
	if Extract("   ") != nil {
		t.Fatal("blank text should yield nil")
	}

	r := Extract("PER  CURIAM:")
	if r == nil || !r.PerCuriam || r.Writer != "" {
		t.Fatalf("per curiam not detected: %+v", r)
	}

	r = Extract("Per Curiam")
	if r == nil || !r.PerCuriam {
		t.Fatalf("mixed case per curiam not detected: %+v", r)
	}

	r = Extract("GUTIERREZ, JR., J.")
	if r == nil || r.PerCuriam || r.Writer != "gutierrez jr." {
		t.Fatalf("unexpected writer: %+v", r)
	}
	if !r.Usable() {
		t.Fatal("writer should be usable")
	}

	r = Extract("Cruz, J.")
	if r == nil || r.Writer != "" || r.Usable() {
		t.Fatalf("short name should be unusable: %+v", r)
	}
}
