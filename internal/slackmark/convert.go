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
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/extensions"
	"slackmark.site/slackmark/util"
)

var (
	// ErrRecursionLimit is returned when inline formatting nests deeper
	// than Options.MaxDepth.
	ErrRecursionLimit = errors.New("inline nesting limit exceeded")
	// ErrBlockLimit is returned when a message would carry more blocks than
	// Options.BlockLimit.
	ErrBlockLimit = errors.New("block limit exceeded")
	// ErrInputTooLarge is returned before parsing when the markdown is
	// longer than Options.MaxInputBytes.
	ErrInputTooLarge = errors.New("input too large")
)

// Message is a complete chat message: the blocks plus the plain text shown
// in notifications.
type Message struct {
	Text   string           `json:"text,omitempty"`
	Blocks []blockkit.Block `json:"blocks"`
}

func newMarkdown(opts Options) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			meta.Meta,
			extensions.LinkRewrite(opts.BaseURL),
			extensions.AlertExtension(),
			extensions.AttributeList(),
			extensions.EmbedMedia(),
			extensions.MrkdwnEscape(),
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// Lex parses markdown into a token tree. The returned source is the
// normalised text the tree's segments point into.
func Lex(markdown string, opts Options) (ast.Node, []byte, parser.Context) {
	source := []byte(norm.NFC.String(markdown))
	pc := parser.NewContext()
	doc := newMarkdown(opts).Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	return doc, source, pc
}

// Convert turns markdown into message blocks.
func Convert(markdown string, opts Options) ([]blockkit.Block, error) {
	msg, err := ConvertMessage(markdown, opts)
	if err != nil {
		return nil, err
	}
	return msg.Blocks, nil
}

// ConvertMessage turns markdown into a message with a notification preview.
func ConvertMessage(markdown string, opts Options) (*Message, error) {
	opts = opts.withDefaults()
	if len(markdown) > opts.MaxInputBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(markdown), opts.MaxInputBytes)
	}
	doc, source, pc := Lex(markdown, opts)

	var blocks []blockkit.Block
	if opts.FrontMatterTitle {
		if title := frontMatterTitle(pc); title != "" {
			header, err := blockkit.NewHeader(title)
			if err == nil {
				blocks = append(blocks, header)
			}
		}
	}
	if opts.TableOfContents {
		if contents := tableOfContents(doc, source); contents != nil {
			blocks = append(blocks, contents)
		}
	}
	body, err := Transform(doc, source, opts)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, body...)
	if len(blocks) > opts.BlockLimit {
		return nil, fmt.Errorf("%w: %d blocks, limit %d", ErrBlockLimit, len(blocks), opts.BlockLimit)
	}
	return &Message{
		Text:   extensions.Preview(doc, source, opts.PreviewLength),
		Blocks: blocks,
	}, nil
}

func frontMatterTitle(pc parser.Context) string {
	data, err := meta.TryGet(pc)
	if err != nil || data == nil {
		return ""
	}
	title, ok := data["title"]
	if !ok || title == nil {
		return ""
	}
	return util.EscapeMrkdwn(strings.TrimSpace(fmt.Sprint(title)))
}
