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
	"strings"

	"github.com/yuin/goldmark/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
)

var alertLabels = map[string]string{
	extensions.AlertNote:      "ℹ️ Note",
	extensions.AlertTip:       "💡 Tip",
	extensions.AlertImportant: "❗ Important",
	extensions.AlertWarning:   "⚠️ Warning",
	extensions.AlertCaution:   "🛑 Caution",
}

// buildQuote emits a single rich_text quote when every child is plain text.
// Quotes holding anything else (lists, code, nested quotes, file links) are
// emitted as their child blocks with "> " prefixed to each section.
func (c *converter) buildQuote(bq *ast.Blockquote) ([]blockkit.Block, error) {
	label := ""
	if kind, ok := extensions.AlertKind(bq); ok {
		label = alertLabels[kind]
	}
	simple, err := c.isSimpleQuote(bq)
	if err != nil {
		return nil, err
	}
	if simple {
		return c.simpleQuote(bq, label)
	}
	return c.complexQuote(bq, label)
}

func (c *converter) isSimpleQuote(bq *ast.Blockquote) (bool, error) {
	for child := bq.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
		default:
			return false, nil
		}
		trial, err := c.accumulate(child, nil)
		if err != nil {
			return false, err
		}
		for _, b := range trial {
			if b.BlockType() == blockkit.TypeFile {
				return false, nil
			}
		}
	}
	return true, nil
}

func (c *converter) simpleQuote(bq *ast.Blockquote, label string) ([]blockkit.Block, error) {
	var elements []blockkit.RichTextInline
	if label != "" {
		elements = append(elements, blockkit.StyledText(label, blockkit.TextStyle{Bold: true}), blockkit.Text("\n"))
	}
	first := true
	for child := bq.FirstChild(); child != nil; child = child.NextSibling() {
		inline := c.richInline(child)
		if len(inline) == 0 {
			continue
		}
		if !first {
			elements = append(elements, blockkit.Text("\n"))
		}
		elements = append(elements, inline...)
		first = false
	}
	if len(elements) == 0 {
		return nil, nil
	}
	block, err := blockkit.NewRichTextQuote(elements...)
	if err != nil {
		return nil, err
	}
	return []blockkit.Block{block}, nil
}

func (c *converter) complexQuote(bq *ast.Blockquote, label string) ([]blockkit.Block, error) {
	var blocks []blockkit.Block
	if label != "" {
		section, err := blockkit.NewSection("*" + label + "*")
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, section)
	}
	for child := bq.FirstChild(); child != nil; child = child.NextSibling() {
		bs, err := c.route(child)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, bs...)
	}
	for i, b := range blocks {
		section, ok := b.(*blockkit.SectionBlock)
		if !ok {
			continue
		}
		quoted, err := blockkit.NewSection("> " + strings.ReplaceAll(section.Text.Text, "\n", "\n> "))
		if err != nil {
			return nil, err
		}
		blockkit.SetBlockID(quoted, section.BlockID)
		blocks[i] = quoted
	}
	return blocks, nil
}
