package extensions

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	gmutil "github.com/yuin/goldmark/util"

	"slackmark.site/slackmark/util"
)

// mrkdwnEscapeTransformer replaces every text leaf with a string node holding
// its final value: backslash escapes and entity references resolved, then
// &, < and > re-escaped for the platform. Line breaks are folded into the
// value as "\n".
type mrkdwnEscapeTransformer struct{}

func (t mrkdwnEscapeTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var leaves []*ast.Text
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindText {
			leaves = append(leaves, n.(*ast.Text))
		}
		return ast.WalkContinue, nil
	})
	for _, leaf := range leaves {
		parent := leaf.Parent()
		if parent == nil {
			continue
		}
		str := ast.NewString([]byte(EscapedText(leaf, source)))
		str.SetRaw(true)
		str.SetCode(parent.Kind() == ast.KindCodeSpan)
		parent.ReplaceChild(parent, leaf, str)
	}
}

// EscapedText is the value the escape transformer gives a text leaf.
func EscapedText(leaf *ast.Text, source []byte) string {
	value := leaf.Segment.Value(source)
	if !leaf.IsRaw() {
		value = gmutil.UnescapePunctuations(value)
		value = gmutil.ResolveNumericReferences(value)
		value = gmutil.ResolveEntityNames(value)
	}
	s := util.EscapeMrkdwn(string(value))
	if leaf.SoftLineBreak() || leaf.HardLineBreak() {
		s += "\n"
	}
	return s
}

type mrkdwnEscape struct{}

func (e *mrkdwnEscape) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			gmutil.Prioritized(mrkdwnEscapeTransformer{}, priorityEscapeTransformer),
		),
	)
}

// MrkdwnEscape makes every text leaf carry platform-escaped text.
func MrkdwnEscape() goldmark.Extender {
	return &mrkdwnEscape{}
}
