package extensions

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var blockIDAttr = []byte("block_id")

type attribListParser struct{}

func NewAttribListParser() *attribListParser {
	return &attribListParser{}
}

var (
	_open  = []byte("{:")
	_close = []byte("}")
)

func (p *attribListParser) Trigger() []byte {
	return []byte{'{'}
}

type attrNode struct {
	ast.BaseInline
	id string
}

var KindAttrList = ast.NewNodeKind("AttrList")

func (n *attrNode) Kind() ast.NodeKind {
	return KindAttrList
}
func (n *attrNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": n.id}, nil)
}

// parseAttrList reads "#id .class" selectors. Only the last id is kept;
// classes have no meaning for message blocks and are skipped.
func parseAttrList(attrstr []byte) *attrNode {
	result := &attrNode{}
	for _, field := range strings.Fields(string(attrstr)) {
		if id, ok := strings.CutPrefix(field, "#"); ok && id != "" {
			result.id = id
		}
	}
	return result
}

func (p *attribListParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	stop := bytes.Index(line, _close)
	if stop < 0 {
		return nil
	}
	if !bytes.HasPrefix(line, _open) {
		return nil
	}
	block.Advance(stop + 1)
	return parseAttrList(line[len(_open):stop])
}

type attribListTransformer struct{}

func (r attribListTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var found []*attrNode
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == KindAttrList) {
			found = append(found, n.(*attrNode))
		}
		return ast.WalkContinue, nil
	})
	for _, n := range found {
		parent := n.Parent()
		if n.id != "" {
			if owner := enclosingBlock(parent); owner != nil {
				owner.SetAttribute(blockIDAttr, n.id)
			}
		}
		if prev, ok := n.PreviousSibling().(*ast.Text); ok && n.NextSibling() == nil {
			prev.Segment = prev.Segment.TrimRightSpace(source)
		}
		parent.RemoveChild(parent, n)
	}
}

func enclosingBlock(n ast.Node) ast.Node {
	for ; n != nil; n = n.Parent() {
		if n.Type() == ast.TypeBlock {
			return n
		}
	}
	return nil
}

// BlockID returns the id an attribute list assigned to a block node.
func BlockID(n ast.Node) (string, bool) {
	v, ok := n.AttributeString(string(blockIDAttr))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

type attribList struct{}

func (e *attribList) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewAttribListParser(), priorityAttribListParser),
		),
		parser.WithASTTransformers(
			util.Prioritized(attribListTransformer{}, priorityAttribListTransformer),
		),
	)
}

func AttributeList() goldmark.Extender {
	return &attribList{}
}
