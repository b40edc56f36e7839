// Package markup exposes parsed HTML documents as a small, library-neutral
// tree capability used by the extraction layer.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is a navigable markup tree node.
type Node interface {
	// Name is the lower-case tag name, or "#text" for text nodes.
	Name() string
	IsText() bool
	IsElement() bool
	// Text is the concatenated text content of the node and its descendants.
	Text() string
	Attr(name string) (string, bool)
	// Children returns all direct children, text nodes included.
	Children() []Node
}

type selectionNode struct {
	sel *goquery.Selection
}

// Parse reads an HTML document.
func Parse(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return selectionNode{sel: doc.Selection}, nil
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (Node, error) {
	return Parse(strings.NewReader(s))
}

func (n selectionNode) raw() *html.Node {
	return n.sel.Get(0)
}

func (n selectionNode) Name() string {
	return goquery.NodeName(n.sel)
}

func (n selectionNode) IsText() bool {
	return n.raw().Type == html.TextNode
}

func (n selectionNode) IsElement() bool {
	return n.raw().Type == html.ElementNode
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n selectionNode) Children() []Node {
	contents := n.sel.Contents()
	out := make([]Node, 0, contents.Length())
	contents.Each(func(_ int, s *goquery.Selection) {
		out = append(out, selectionNode{sel: s})
	})
	return out
}

// Outer renders the node back to HTML, mostly for error messages and logs.
func Outer(n Node) string {
	sn, ok := n.(selectionNode)
	if !ok {
		return "<" + n.Name() + ">"
	}
	s, err := goquery.OuterHtml(sn.sel)
	if err != nil {
		return "<" + n.Name() + ">"
	}
	return s
}
