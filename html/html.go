// Package html parses embedded markup islands into a small element tree.
//
// Parsing goes through the HTML5 tokenizer, which never loads a DTD and
// never resolves external entities; only the fixed set of named character
// references is decoded.
package html

import (
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type HTMLElement struct {
	Tag        string
	Content    string
	Attributes map[string]string
	Children   []*HTMLElement
}

func NewHTMLElement(tag string) *HTMLElement {
	return &HTMLElement{
		Tag:        tag,
		Content:    "",
		Attributes: make(map[string]string),
		Children:   make([]*HTMLElement, 0),
	}
}

func (e *HTMLElement) Append(elem *HTMLElement) {
	e.Children = append(e.Children, elem)
}

func (e *HTMLElement) AppendText(text string) *HTMLElement {
	elem := &HTMLElement{
		Tag:     "",
		Content: text,
	}
	e.Children = append(e.Children, elem)
	return elem
}

// Parse reads a markup fragment as if it appeared inside <body>. The returned
// root is a synthetic "body" element.
func Parse(fragment string) (*HTMLElement, error) {
	context := &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := xhtml.ParseFragmentWithOptions(
		strings.NewReader(fragment),
		context,
		xhtml.ParseOptionEnableScripting(false),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing markup fragment: %w", err)
	}
	root := NewHTMLElement("body")
	for _, n := range nodes {
		convert(n, root)
	}
	return root, nil
}

func convert(n *xhtml.Node, parent *HTMLElement) {
	switch n.Type {
	case xhtml.TextNode:
		parent.AppendText(n.Data)
	case xhtml.ElementNode:
		elem := NewHTMLElement(strings.ToLower(n.Data))
		for _, a := range n.Attr {
			elem.Attributes[strings.ToLower(a.Key)] = a.Val
		}
		parent.Append(elem)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convert(c, elem)
		}
	}
	// comments and doctypes carry nothing renderable
}

func (e *HTMLElement) IsText() bool {
	return e.Tag == ""
}

// Attr returns the trimmed value of an attribute.
func (e *HTMLElement) Attr(name string) (string, bool) {
	if e.Attributes == nil {
		return "", false
	}
	v, ok := e.Attributes[name]
	return strings.TrimSpace(v), ok
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the children of that element.
func (e *HTMLElement) Walk(fn func(*HTMLElement) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant element with the given tag, outermost first.
func (e *HTMLElement) Find(tag string) []*HTMLElement {
	var out []*HTMLElement
	for _, c := range e.Children {
		c.Walk(func(n *HTMLElement) bool {
			if n.Tag == tag {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// ChildrenByTag returns the direct children whose tag is one of tags.
func (e *HTMLElement) ChildrenByTag(tags ...string) []*HTMLElement {
	var out []*HTMLElement
	for _, c := range e.Children {
		for _, t := range tags {
			if c.Tag == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// VisibleText flattens the subtree to the text a reader would see.
func (e *HTMLElement) VisibleText() string {
	var b strings.Builder
	e.visibleText(&b)
	return strings.TrimSpace(b.String())
}

func (e *HTMLElement) visibleText(b *strings.Builder) {
	if e.IsText() {
		b.WriteString(e.Content)
		return
	}
	switch e.Tag {
	case "br":
		b.WriteByte('\n')
		return
	case "script", "style", "template":
		return
	}
	for _, c := range e.Children {
		c.visibleText(b)
	}
}
