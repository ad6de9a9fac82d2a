package slackmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
	"slackmark.site/slackmark/util"
)

// richInline converts the inline children of parent to rich text elements.
func (c *converter) richInline(parent ast.Node) []blockkit.RichTextInline {
	var out []blockkit.RichTextInline
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.richElements(child)...)
	}
	return out
}

// richElements converts one inline node. Only the outermost style is kept;
// the text inside is flattened.
func (c *converter) richElements(n ast.Node) []blockkit.RichTextInline {
	switch node := n.(type) {
	case *ast.String:
		return textElement(string(node.Value), blockkit.TextStyle{})
	case *ast.Text:
		return textElement(extensions.EscapedText(node, c.source), blockkit.TextStyle{})
	case *ast.Emphasis:
		style := blockkit.TextStyle{Italic: true}
		if node.Level >= 2 {
			style = blockkit.TextStyle{Bold: true}
		}
		return textElement(c.flatten(node), style)
	case *extast.Strikethrough:
		return textElement(c.flatten(node), blockkit.TextStyle{Strike: true})
	case *ast.CodeSpan:
		return textElement(c.flatten(node), blockkit.TextStyle{Code: true})
	case *ast.Link:
		url := string(node.Destination)
		if !util.IsValidURL(url) {
			return textElement(c.flatten(node), blockkit.TextStyle{})
		}
		return []blockkit.RichTextInline{blockkit.Link(url, c.flatten(node))}
	case *ast.AutoLink:
		url, label := c.autoLink(node)
		if !util.IsValidURL(url) {
			return textElement(label, blockkit.TextStyle{})
		}
		return []blockkit.RichTextInline{blockkit.Link(url, label)}
	case *ast.Image:
		return textElement(c.imageStandIn(node), blockkit.TextStyle{})
	case *extensions.Media:
		return textElement(node.Alt, blockkit.TextStyle{})
	case *ast.RawHTML:
		raw := c.rawHTML(node)
		if lineBreakTag.MatchString(strings.TrimSpace(raw)) {
			return textElement("\n", blockkit.TextStyle{})
		}
		return textElement(util.EscapeMrkdwn(raw), blockkit.TextStyle{})
	case *extast.TaskCheckBox:
		// the list builder supplies the glyph
		return nil
	}
	return textElement(c.flatten(n), blockkit.TextStyle{})
}

func (c *converter) flatten(n ast.Node) string {
	return strings.Join(extractPlain(n, c.source), "")
}

func textElement(s string, style blockkit.TextStyle) []blockkit.RichTextInline {
	if s == "" {
		return nil
	}
	return []blockkit.RichTextInline{blockkit.StyledText(s, style)}
}

// hasFormatting reports whether any direct child of n carries styling.
func hasFormatting(n ast.Node) bool {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Emphasis, *extast.Strikethrough, *ast.CodeSpan, *ast.Link, *ast.AutoLink:
			return true
		}
	}
	return false
}
