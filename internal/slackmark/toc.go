package slackmark

import (
	"log"
	"strings"

	"github.com/yuin/goldmark/ast"
	"go.abhg.dev/goldmark/toc"

	"slackmark.site/slackmark/blockkit"
)

type tocEntry struct {
	indent int
	title  string
}

func tocFlatten(items toc.Items, indent int, out []tocEntry) []tocEntry {
	for _, item := range items {
		if title := strings.TrimSpace(string(item.Title)); title != "" {
			out = append(out, tocEntry{indent: indent, title: title})
		}
		if len(item.Items) > 0 {
			out = tocFlatten(item.Items, indent+1, out)
		}
	}
	return out
}

// tableOfContents renders the document headings as nested bullet lists.
// It returns nil when the document has no headings.
func tableOfContents(doc ast.Node, source []byte) blockkit.Block {
	tree, err := toc.Inspect(doc, source, toc.MinDepth(1), toc.MaxDepth(6), toc.Compact(true))
	if err != nil {
		log.Printf("WARN: could not build table of contents: %s\n", err)
		return nil
	}
	entries := tocFlatten(tree.Items, 0, nil)
	if len(entries) == 0 {
		return nil
	}
	var lists []blockkit.RichTextElement
	var current *blockkit.RichTextList
	for _, e := range entries {
		if current == nil || current.Indent != e.indent {
			current = &blockkit.RichTextList{
				Type:   "rich_text_list",
				Style:  blockkit.ListBullet,
				Indent: e.indent,
			}
			lists = append(lists, current)
		}
		current.Elements = append(current.Elements, blockkit.NewRichTextSection(blockkit.Text(e.title)))
	}
	block, err := blockkit.NewRichText(lists...)
	if err != nil {
		log.Printf("WARN: could not build table of contents: %s\n", err)
		return nil
	}
	return block
}
