package extensions

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Alert kinds recognised after "[!" at the start of a blockquote.
const (
	AlertNote      = "NOTE"
	AlertTip       = "TIP"
	AlertImportant = "IMPORTANT"
	AlertWarning   = "WARNING"
	AlertCaution   = "CAUTION"
)

var alertAttr = []byte("alert")

type alertParser struct{}

func (p *alertParser) Trigger() []byte {
	return []byte{'['}
}

func newAlertParser() *alertParser {
	return &alertParser{}
}

type alertFlagNode struct {
	ast.BaseInline
	flag string
}

var KindAlertFlag = ast.NewNodeKind("AlertFlag")

func (n *alertFlagNode) Kind() ast.NodeKind {
	return KindAlertFlag
}

// Dump implements Node.Dump.
func (n *alertFlagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Flag": n.flag}, nil)
}

func NewAlertFlag(f string) *alertFlagNode {
	return &alertFlagNode{
		flag: f,
	}
}

func (p *alertParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	var (
		_open  = []byte("[!")
		_close = []byte("]")
	)
	// only the very start of the first paragraph of a blockquote
	if _, ok := parent.Parent().(*ast.Blockquote); !ok || parent.HasChildren() || parent.PreviousSibling() != nil {
		return nil
	}
	line, seg := block.PeekLine()
	stop := bytes.Index(line, _close)
	if stop < 0 {
		return nil
	}
	if !bytes.HasPrefix(line, _open) {
		return nil
	}
	alertName := string(bytes.ToUpper(block.Value(text.NewSegment(seg.Start+len(_open), seg.Start+stop))))
	switch alertName {
	case AlertNote, AlertTip, AlertImportant, AlertWarning, AlertCaution:
	default:
		return nil
	}
	out := NewAlertFlag(alertName)
	out.AppendChild(out, ast.NewTextSegment(text.NewSegment(seg.Start, seg.Start+stop+len(_close))))
	block.Advance(stop + 1)
	return out
}

type alertTransformer struct{}

func (t alertTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if bq, ok := n.(*ast.Blockquote); ok && entering {
			if para, ok := bq.FirstChild().(*ast.Paragraph); ok {
				if flag, ok := para.FirstChild().(*alertFlagNode); ok {
					bq.SetAttribute(alertAttr, flag.flag)
					para.RemoveChild(para, flag)
					trimLeadingBreak(para, source)
					if !para.HasChildren() {
						bq.RemoveChild(bq, para)
					}
				}
			}
		}
		return ast.WalkContinue, nil
	})
}

// trimLeadingBreak drops the remainder of the marker line so the quote body
// starts on the next line.
func trimLeadingBreak(para ast.Node, source []byte) {
	first, ok := para.FirstChild().(*ast.Text)
	if !ok {
		return
	}
	first.Segment = first.Segment.TrimLeftSpace(source)
	if first.Segment.IsEmpty() && (first.SoftLineBreak() || first.HardLineBreak() || first.NextSibling() == nil) {
		para.RemoveChild(para, first)
	}
}

// AlertKind reports the alert a blockquote was marked with, if any.
func AlertKind(n ast.Node) (string, bool) {
	v, ok := n.AttributeString(string(alertAttr))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

type alertExtension struct{}

func (e *alertExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(alertTransformer{}, priorityAlertTransformer),
		),
		parser.WithInlineParsers(
			util.Prioritized(newAlertParser(), priorityAlertParser),
		),
	)
}

func AlertExtension() goldmark.Extender {
	return &alertExtension{}
}
