///////////////////////////////////////////////////////////////////////////////////////////////////
//                                                                                               //
//                                                                                               //
//         oooooo   oooooo     oooo           oooooo   oooooo     oooo         .o8               //
//          `888.    `888.     .8'             `888.    `888.     .8'         "888               //
//           `888.   .8888.   .8' oooo    ooo   `888.   .8888.   .8' .ooooo.   888oooo.          //
//            `888  .8'`888. .8'   `88.  .8'     `888  .8'`888. .8' d88' `88b  d88' `88b         //
//             `888.8'  `888.8'     `88..8'       `888.8'  `888.8'  888ooo888  888   888         //
//              `888'    `888'       `888'         `888'    `888'   888    .o  888   888         //
//               `8'      `8'         .8'           `8'      `8'    `Y8bod8P'  `Y8bod8P'         //
//                                .o..P'                                                         //
//                                `Y8P'                                                          //
//                                                                                               //
//                                                                                               //
//                              Copyright (C) 2024  Wyatt Sheffield                              //
//                                                                                               //
//                 This program is free software: you can redistribute it and/or                 //
//                 modify it under the terms of the GNU General Public License as                //
//                 published by the Free Software Foundation, either version 3 of                //
//                      the License, or (at your option) any later version.                      //
//                                                                                               //
//                This program is distributed in the hope that it will be useful,                //
//                 but WITHOUT ANY WARRANTY; without even the implied warranty of                //
//                 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the                 //
//                          GNU General Public License for more details.                         //
//                                                                                               //
//                   You should have received a copy of the GNU General Public                   //
//                         License along with this program.  If not, see                         //
//                                <https://www.gnu.org/licenses/>.                               //
//                                                                                               //
//                                                                                               //
///////////////////////////////////////////////////////////////////////////////////////////////////

package slackmark

import (
	"log"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
	"slackmark.site/slackmark/util"
)

// converter carries the state of one Transform call. It is not safe for
// concurrent use; every call builds its own.
type converter struct {
	source []byte
	opts   Options
	files  []string
	depth  int
}

func newConverter(source []byte, opts Options) *converter {
	opts = opts.withDefaults()
	return &converter{
		source: source,
		opts:   opts,
		files:  opts.fileExtensions(),
	}
}

// Transform converts the top-level children of doc into blocks, in order.
// Node kinds without a handler are skipped.
func Transform(doc ast.Node, source []byte, opts Options) ([]blockkit.Block, error) {
	c := newConverter(source, opts)
	var out []blockkit.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks, err := c.route(n)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks...)
	}
	return out, nil
}

func (c *converter) route(n ast.Node) ([]blockkit.Block, error) {
	blocks, err := c.dispatch(n)
	if err != nil || len(blocks) == 0 {
		return blocks, err
	}
	if id, ok := extensions.BlockID(n); ok {
		blockkit.SetBlockID(blocks[0], id)
	}
	return blocks, nil
}

func (c *converter) dispatch(n ast.Node) ([]blockkit.Block, error) {
	switch node := n.(type) {
	case *ast.Heading:
		return c.buildHeading(node)
	case *ast.Paragraph, *ast.TextBlock:
		return c.accumulate(node, nil)
	case *ast.List:
		return c.buildList(node)
	case *extast.Table:
		return c.buildTable(node)
	case *ast.Blockquote:
		return c.buildQuote(node)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return c.buildCode(node)
	case *ast.ThematicBreak:
		return []blockkit.Block{blockkit.NewDivider()}, nil
	case *ast.HTMLBlock:
		return c.extractEmbedded(htmlBlockText(node, c.source)), nil
	case *extensions.Media:
		if video := c.buildVideo(node); video != nil {
			return []blockkit.Block{video}, nil
		}
	}
	return nil, nil
}

func (c *converter) buildHeading(h *ast.Heading) ([]blockkit.Block, error) {
	text := strings.TrimSpace(strings.Join(extractPlain(h, c.source), ""))
	if text == "" {
		return nil, nil
	}
	header, err := blockkit.NewHeader(text)
	if err != nil {
		return nil, err
	}
	return []blockkit.Block{header}, nil
}

func (c *converter) buildCode(n ast.Node) ([]blockkit.Block, error) {
	code := codeText(n, c.source)
	if code == "" {
		return nil, nil
	}
	block, err := blockkit.NewRichTextCode(code)
	if err != nil {
		return nil, err
	}
	return []blockkit.Block{block}, nil
}

// codeText is the literal content of a code block without its final newline.
func codeText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	if n.HasClosure() {
		b.Write(n.ClosureLine.Value(source))
	}
	return b.String()
}

func (c *converter) buildImage(img *ast.Image) blockkit.Block {
	url := string(img.Destination)
	if !util.IsValidURL(url) {
		return nil
	}
	title := util.EscapeMrkdwn(string(img.Title))
	alt := c.plain(img)
	if alt == "" {
		alt = title
	}
	if alt == "" {
		alt = "Image"
	}
	block, err := blockkit.NewImage(url, alt, title)
	if err != nil {
		log.Printf("WARN: dropping image %s: %s\n", url, err)
		return nil
	}
	return block
}

func (c *converter) buildVideo(m *extensions.Media) blockkit.Block {
	url := string(m.Destination)
	if !util.IsValidURL(url) {
		return nil
	}
	title := util.EscapeMrkdwn(string(m.Title))
	if title == "" {
		title = m.Alt
	}
	if title == "" {
		title = "Video"
	}
	alt := m.Alt
	if alt == "" {
		alt = title
	}
	block, err := blockkit.NewVideo(blockkit.VideoOptions{
		URL:     url,
		Title:   title,
		AltText: alt,
	})
	if err != nil {
		log.Printf("WARN: dropping video %s: %s\n", url, err)
		return nil
	}
	return block
}
