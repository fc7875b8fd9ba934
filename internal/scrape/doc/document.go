// Package doc wraps a parsed HTML page as a queryable node tree.
package doc

import (
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is one parsed HTML body.
type Document struct {
	gq  *goquery.Document
	raw string
}

// Element is a handle to a single node of a Document.
type Element struct {
	sel *goquery.Selection
}

func Parse(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(b))
}

func ParseString(body string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{gq: gq, raw: body}, nil
}

// Raw returns the HTML the document was parsed from.
func (d *Document) Raw() string { return d.raw }

// Query returns every element matching expr in document order. An expression
// that fails to compile matches nothing.
func (d *Document) Query(expr string) []Element {
	return query(d.gq.Selection, expr)
}

// Query searches the descendants of e.
func (e Element) Query(expr string) []Element {
	if e.sel == nil {
		return nil
	}
	return query(e.sel, expr)
}

// First returns the first descendant matching expr.
func (e Element) First(expr string) (Element, bool) {
	els := e.Query(expr)
	if len(els) == 0 {
		return Element{}, false
	}
	return els[0], true
}

// Text concatenates all descendant text nodes. Whitespace is left untouched.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return e.sel.Text()
}

// SpacedText is Text with a separator at every element boundary: a newline
// around block elements and a space around the rest, so text from sibling
// elements never runs together. Script and style bodies are dropped.
func (e Element) SpacedText() string {
	n := e.Node()
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeSpaced(&b, n)
	return b.String()
}

var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true,
	atom.Ul: true,
}

func writeSpaced(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	case html.DocumentNode:
	default:
		return
	}
	sep := " "
	if blockTags[n.DataAtom] {
		sep = "\n"
	}
	b.WriteString(sep)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeSpaced(b, c)
	}
	b.WriteString(sep)
}

func (e Element) Attr(name string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	return e.sel.Attr(name)
}

// Tag is the lowercase element name.
func (e Element) Tag() string {
	if n := e.Node(); n != nil {
		return strings.ToLower(n.Data)
	}
	return ""
}

// Node exposes the underlying node; handles to the same node compare equal on it.
func (e Element) Node() *html.Node {
	if e.sel == nil || len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

func query(from *goquery.Selection, expr string) []Element {
	m := compile(expr)
	if m == nil {
		return nil
	}
	found := from.FindMatcher(m)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

var selectors sync.Map // expr -> cascadia.Selector (nil on compile failure)

func compile(expr string) goquery.Matcher {
	if v, ok := selectors.Load(expr); ok {
		if v == nil {
			return nil
		}
		return v.(cascadia.Selector)
	}
	sel, err := cascadia.Compile(expr)
	if err != nil {
		log.Debug().Err(err).Str("selector", expr).Msg("selector rejected")
		selectors.Store(expr, nil)
		return nil
	}
	selectors.Store(expr, sel)
	return sel
}
