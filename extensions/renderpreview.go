package extensions

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"slackmark.site/slackmark/util"
)

// Preview returns the text of the first paragraph, cut to limit characters,
// for use as a notification fallback. Headings are skipped unless the
// document has no paragraph at all.
func Preview(doc ast.Node, source []byte, limit int) string {
	var (
		b       strings.Builder
		heading string
	)
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := node.(type) {
		case *ast.Paragraph:
			if !entering {
				return ast.WalkStop, nil
			}
		case *ast.Heading:
			if entering && heading == "" {
				heading = previewText(n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.String:
			if entering && inParagraph(n) {
				b.Write(n.Value)
			}
		case *ast.Text:
			if entering && inParagraph(n) {
				b.WriteString(EscapedText(n, source))
			}
		}
		return ast.WalkContinue, nil
	})
	text := strings.Join(strings.Fields(b.String()), " ")
	if text == "" {
		text = heading
	}
	return util.Truncate(text, limit)
}

func inParagraph(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindParagraph {
			return true
		}
	}
	return false
}

func previewText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.String:
			b.Write(v.Value)
		case *ast.Text:
			b.WriteString(EscapedText(v, source))
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
