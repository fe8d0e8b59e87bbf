package convert

import "testing"

func TestToMarkdown(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  ", ""},
		{"paragraphs", "<p>First paragraph.</p><p>Second <em>emphasis</em> here<sup>1</sup>.</p>", "First paragraph.\n\nSecond *emphasis* here[^1]."},
		{"strong", "<p><strong>WHEREFORE</strong>, the petition is GRANTED.</p>", "**WHEREFORE**, the petition is GRANTED."},
		{"line break", "<p>line one<br>line two</p>", "line one\nline two"},
		{"script dropped", "<script>alert(1)</script><p>Safe text</p>", "Safe text"},
		{"bracketed footnote", "<p>See note<sup>[12]</sup></p>", "See note[^12]"},
		{"non numeric sup", "<p>x<sup>th</sup></p>", "x^th^"},
		{"heading", "<h2>Facts</h2><p>Body</p>", "## Facts\n\nBody"},
		{"rule", "<p>Body</p><hr><p>Note</p>", "Body\n\n---\n\nNote"},
		{"whitespace", "<p>  spread \n  across\tlines </p>", "spread across lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ToMarkdown(tt.in)
			if err != nil {
				t.Fatalf("ToMarkdown: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPonencia(t *testing.T) {
	c := New()
	got, err := c.Ponencia(Parts{
		Ponencia: "<p>The facts.<sup>1</sup></p>",
		Fallo:    "<p><strong>WHEREFORE</strong>, denied.</p>",
		Annex:    "<p><sup>[1]</sup> Rollo, p. 5.</p>",
	})
	if err != nil {
		t.Fatalf("Ponencia: %v", err)
	}
	want := "# Ponencia\n\nThe facts.[^1]\n\n**WHEREFORE**, denied.\n\n---\n\n[^1]: Rollo, p. 5."
	if got != want {
		t.Errorf("Ponencia =\n%q\nwant\n%q", got, want)
	}
}

func TestPonenciaWithoutAnnex(t *testing.T) {
	got, err := New().Ponencia(Parts{Ponencia: "<p>Only the body.</p>"})
	if err != nil {
		t.Fatalf("Ponencia: %v", err)
	}
	if got != "# Ponencia\n\nOnly the body." {
		t.Errorf("Ponencia = %q", got)
	}
}

func TestPonenciaAnnexWithRule(t *testing.T) {
	got, err := New().Ponencia(Parts{
		Ponencia: "<p>Body.</p>",
		Annex:    "<hr><p><sup>2</sup> Id.</p>",
	})
	if err != nil {
		t.Fatalf("Ponencia: %v", err)
	}
	if got != "# Ponencia\n\nBody.\n\n---\n\n[^2]: Id." {
		t.Errorf("Ponencia = %q", got)
	}
}
