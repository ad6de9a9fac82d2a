package slackmark

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
)

// buildList turns a list into one rich_text list. Lists nested inside an
// item are not carried over.
func (c *converter) buildList(list *ast.List) ([]blockkit.Block, error) {
	style := blockkit.ListBullet
	offset := 0
	if list.IsOrdered() {
		style = blockkit.ListOrdered
		if list.Start > 1 {
			offset = list.Start - 1
		}
	}
	var items [][]blockkit.RichTextInline
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		if elements := c.listItem(item); len(elements) > 0 {
			items = append(items, elements)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}
	block, err := blockkit.NewRichTextList(style, offset, items...)
	if err != nil {
		return nil, err
	}
	return []blockkit.Block{block}, nil
}

func (c *converter) listItem(item *ast.ListItem) []blockkit.RichTextInline {
	var out []blockkit.RichTextInline
	if checked, ok := taskState(item); ok {
		out = append(out, blockkit.Text(c.opts.checkbox(checked)+" "))
	}
	content := false
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		var elements []blockkit.RichTextInline
		switch node := child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			elements = c.richInline(node)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if code := codeText(node, c.source); code != "" {
				elements = textElement("\n"+code+"\n", blockkit.TextStyle{Code: true})
			}
		case *extensions.Media:
			elements = textElement(node.Alt, blockkit.TextStyle{})
		}
		if len(elements) == 0 {
			continue
		}
		if content {
			out = append(out, blockkit.Text("\n"))
		}
		out = append(out, elements...)
		content = true
	}
	return out
}

func taskState(item *ast.ListItem) (checked, ok bool) {
	first := item.FirstChild()
	if first == nil {
		return false, false
	}
	box, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return false, false
	}
	return box.IsChecked, true
}
