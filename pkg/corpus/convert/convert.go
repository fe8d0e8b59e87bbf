// Package convert renders the HTML fragments of a case folder as the
// markdown-like text stored for opinions, fallos and voting blocks.
package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Header opens the text of every main opinion.
const Header = "# Ponencia"

// FootnoteBoundary separates an opinion body from its footnotes.
const FootnoteBoundary = "---"

var (
	footnoteRef   = regexp.MustCompile(`^\[?(\d{1,3})\]?$`)
	footnoteDef   = regexp.MustCompile(`(\[\^\d{1,3}\])[ \t]+`)
	spaces        = regexp.MustCompile(`[ \t\r\f\v]+`)
	spaceAtBreaks = regexp.MustCompile(` *\n *`)
	manyBreaks    = regexp.MustCompile(`\n{3,}`)
)

// Converter sanitizes fragments before rendering them.
type Converter struct {
	policy *bluemonday.Policy
}

// New returns a Converter using the user-generated-content policy, which
// drops scripts, styles and attributes while keeping structural markup.
func New() *Converter {
	return &Converter{policy: bluemonday.UGCPolicy()}
}

// ToMarkdown converts an HTML fragment. Footnote references rendered as
// superscript numbers become "[^N]".
func (c *Converter) ToMarkdown(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}
	clean := c.policy.Sanitize(fragment)
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(clean), body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var r renderer
	for _, n := range nodes {
		r.node(n)
	}
	return tidy(r.buf.String()), nil
}

// Parts are the HTML files making up a main opinion.
type Parts struct {
	Ponencia string
	Fallo    string
	Annex    string
}

// Ponencia assembles the main opinion: header, body, fallo and footnote
// annex. The annex follows a FootnoteBoundary line and its footnotes are
// written as "[^N]: text" definitions.
func (c *Converter) Ponencia(p Parts) (string, error) {
	var b strings.Builder
	b.WriteString(Header + "\n\n")

	body, err := c.ToMarkdown(p.Ponencia)
	if err != nil {
		return "", fmt.Errorf("ponencia: %w", err)
	}
	b.WriteString(body)

	fallo, err := c.ToMarkdown(p.Fallo)
	if err != nil {
		return "", fmt.Errorf("fallo: %w", err)
	}
	if fallo != "" {
		b.WriteString("\n\n" + fallo)
	}

	annex, err := c.ToMarkdown(p.Annex)
	if err != nil {
		return "", fmt.Errorf("annex: %w", err)
	}
	if annex != "" {
		annex = footnoteDef.ReplaceAllString(annex, "$1: ")
		if !strings.HasPrefix(annex, FootnoteBoundary) {
			b.WriteString("\n\n" + FootnoteBoundary)
		}
		b.WriteString("\n\n" + annex)
	}
	return strings.TrimSpace(b.String()), nil
}

type renderer struct {
	buf strings.Builder
}

func (r *renderer) block() {
	r.buf.WriteString("\n\n")
}

func (r *renderer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(c)
	}
}

func (r *renderer) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.buf.WriteString(spaces.ReplaceAllString(strings.ReplaceAll(n.Data, "\n", " "), " "))
		return
	case html.ElementNode:
	default:
		r.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Br:
		r.buf.WriteString("\n")
	case atom.Hr:
		r.block()
		r.buf.WriteString(FootnoteBoundary)
		r.block()
	case atom.P, atom.Div, atom.Blockquote, atom.Table, atom.Tr, atom.Ul, atom.Ol, atom.Pre:
		r.block()
		r.children(n)
		r.block()
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		r.block()
		r.buf.WriteString(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		r.children(n)
		r.block()
	case atom.Li:
		r.buf.WriteString("\n- ")
		r.children(n)
		r.buf.WriteString("\n")
	case atom.Td, atom.Th:
		r.children(n)
		r.buf.WriteString(" ")
	case atom.Em, atom.I:
		r.wrap(n, "*")
	case atom.Strong, atom.B:
		r.wrap(n, "**")
	case atom.Sup:
		r.sup(n)
	default:
		r.children(n)
	}
}

func (r *renderer) wrap(n *html.Node, mark string) {
	var inner renderer
	inner.children(n)
	text := inner.buf.String()
	if strings.TrimSpace(text) == "" {
		r.buf.WriteString(text)
		return
	}
	// keep surrounding spaces outside the markers
	lead := text[:len(text)-len(strings.TrimLeft(text, " "))]
	trail := text[len(strings.TrimRight(text, " ")):]
	r.buf.WriteString(lead + mark + strings.TrimSpace(text) + mark + trail)
}

func (r *renderer) sup(n *html.Node) {
	var inner renderer
	inner.children(n)
	text := strings.TrimSpace(inner.buf.String())
	if m := footnoteRef.FindStringSubmatch(text); m != nil {
		r.buf.WriteString("[^" + m[1] + "]")
		return
	}
	if text != "" {
		r.buf.WriteString("^" + text + "^")
	}
}

func tidy(s string) string {
	s = spaceAtBreaks.ReplaceAllString(s, "\n")
	s = manyBreaks.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
