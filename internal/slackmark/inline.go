package slackmark

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
	"slackmark.site/slackmark/util"
)

var lineBreakTag = regexp.MustCompile(`(?i)^<br\s*/?>$`)

// accumulate folds the inline children of parent into out. Images and file
// links become their own blocks; everything else is rendered to mrkdwn and
// merged into the trailing section.
func (c *converter) accumulate(parent ast.Node, out []blockkit.Block) ([]blockkit.Block, error) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Image:
			if img := c.buildImage(node); img != nil {
				out = append(out, img)
			}
			continue
		case *extensions.Media:
			if video := c.buildVideo(node); video != nil {
				out = append(out, video)
			}
			continue
		case *ast.Link:
			if file, ok := c.fileBlock(node); ok {
				out = append(out, file)
				continue
			}
		}
		text, err := c.render(child)
		if err != nil {
			return nil, err
		}
		out, err = appendSectionText(out, text)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func appendSectionText(out []blockkit.Block, text string) ([]blockkit.Block, error) {
	if text == "" {
		return out, nil
	}
	if n := len(out); n > 0 {
		if last, ok := out[n-1].(*blockkit.SectionBlock); ok {
			merged, err := blockkit.NewSection(last.Text.Text + text)
			if err != nil {
				return nil, err
			}
			out[n-1] = merged
			return out, nil
		}
	}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}
	section, err := blockkit.NewSection(text)
	if err != nil {
		return nil, err
	}
	return append(out, section), nil
}

func (c *converter) enter() error {
	c.depth++
	if c.depth > c.opts.MaxDepth {
		c.depth--
		return fmt.Errorf("%w: more than %d levels", ErrRecursionLimit, c.opts.MaxDepth)
	}
	return nil
}

func (c *converter) leave() {
	c.depth--
}

// render turns one inline node into platform mrkdwn.
func (c *converter) render(n ast.Node) (string, error) {
	switch node := n.(type) {
	case *ast.String:
		return string(node.Value), nil
	case *ast.Text:
		return extensions.EscapedText(node, c.source), nil
	case *ast.CodeSpan:
		return "`" + c.plain(node) + "`", nil
	case *ast.Emphasis:
		if node.Level >= 2 {
			return c.wrap(node, "*")
		}
		return c.wrap(node, "_")
	case *extast.Strikethrough:
		return c.wrap(node, "~")
	case *ast.Link:
		return c.renderLink(node)
	case *ast.AutoLink:
		url, label := c.autoLink(node)
		if !util.IsValidURL(url) {
			return label, nil
		}
		if label == "" || label == url {
			return "<" + url + "> ", nil
		}
		return "<" + url + "|" + label + "> ", nil
	case *ast.RawHTML:
		raw := c.rawHTML(node)
		if lineBreakTag.MatchString(strings.TrimSpace(raw)) {
			return "\n", nil
		}
		return util.EscapeMrkdwn(raw), nil
	case *ast.Image:
		return c.imageStandIn(node), nil
	case *extensions.Media:
		return node.Alt, nil
	case *extast.TaskCheckBox:
		return c.opts.checkbox(node.IsChecked) + " ", nil
	}
	if n.HasChildren() {
		return c.renderChildren(n)
	}
	return "", nil
}

func (c *converter) renderChildren(n ast.Node) (string, error) {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		s, err := c.render(child)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (c *converter) wrap(n ast.Node, mark string) (string, error) {
	if err := c.enter(); err != nil {
		return "", err
	}
	defer c.leave()
	inner, err := c.renderChildren(n)
	if err != nil {
		return "", err
	}
	return mark + inner + mark, nil
}

func (c *converter) renderLink(link *ast.Link) (string, error) {
	if err := c.enter(); err != nil {
		return "", err
	}
	defer c.leave()
	url := string(link.Destination)
	if !util.IsValidURL(url) {
		return c.plain(link), nil
	}
	inner, err := c.renderChildren(link)
	if err != nil {
		return "", err
	}
	if inner == "" {
		return "<" + url + "> ", nil
	}
	return "<" + url + "|" + inner + "> ", nil
}

func (c *converter) autoLink(n *ast.AutoLink) (url, label string) {
	url = string(n.URL(c.source))
	label = util.EscapeMrkdwn(string(n.Label(c.source)))
	if n.AutoLinkType == ast.AutoLinkURL && !strings.Contains(url, "://") {
		// linkify leaves www. links without a scheme
		url = "http://" + url
	}
	return url, label
}

func (c *converter) rawHTML(n *ast.RawHTML) string {
	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

// imageStandIn is the text an image contributes where it cannot be a block.
func (c *converter) imageStandIn(img *ast.Image) string {
	if alt := c.plain(img); alt != "" {
		return alt
	}
	if len(img.Title) > 0 {
		return util.EscapeMrkdwn(string(img.Title))
	}
	return string(img.Destination)
}

func (c *converter) plain(n ast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		for _, s := range extractPlain(child, c.source) {
			b.WriteString(s)
		}
	}
	return b.String()
}

// extractPlain collects the unstyled text of n. Images contribute their
// title, or their URL when untitled.
func extractPlain(n ast.Node, source []byte) []string {
	var out []string
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.String:
			out = append(out, string(v.Value))
		case *ast.Text:
			out = append(out, extensions.EscapedText(v, source))
		case *ast.AutoLink:
			out = append(out, util.EscapeMrkdwn(string(v.Label(source))))
		case *ast.Image:
			if len(v.Title) > 0 {
				out = append(out, util.EscapeMrkdwn(string(v.Title)))
			} else {
				out = append(out, string(v.Destination))
			}
			return ast.WalkSkipChildren, nil
		case *extensions.Media:
			out = append(out, v.Alt)
		case *ast.RawHTML, *extast.TaskCheckBox:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}
