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
	"strconv"
	"strings"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/html"
	"slackmark.site/slackmark/util"
)

// extractEmbedded pulls tables, images and videos out of a raw markup block.
// Everything else in the block is ignored. A failure to parse the block
// yields no blocks; a failure to build one element drops only that element.
func (c *converter) extractEmbedded(raw string) []blockkit.Block {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	root, err := html.Parse(raw)
	if err != nil {
		log.Printf("WARN: skipping embedded markup: %s\n", err)
		return nil
	}
	var out []blockkit.Block
	root.Walk(func(e *html.HTMLElement) bool {
		var (
			block blockkit.Block
			err   error
		)
		switch e.Tag {
		case "table":
			block, err = buildHTMLTable(e)
		case "img":
			block, err = htmlImage(e)
		case "video":
			block, err = htmlVideo(e)
		default:
			return true
		}
		if err != nil {
			log.Printf("WARN: dropping embedded <%s>: %s\n", e.Tag, err)
		} else if block != nil {
			out = append(out, block)
		}
		return false
	})
	return out
}

func htmlImage(e *html.HTMLElement) (blockkit.Block, error) {
	src, _ := e.Attr("src")
	title, _ := e.Attr("title")
	title = util.EscapeMrkdwn(title)
	alt, _ := e.Attr("alt")
	alt = util.EscapeMrkdwn(alt)
	if alt == "" {
		alt = title
	}
	if alt == "" {
		alt = "Image"
	}
	return blockkit.NewImage(src, alt, title)
}

func htmlVideo(e *html.HTMLElement) (blockkit.Block, error) {
	src, _ := e.Attr("src")
	for _, s := range e.Find("source") {
		if src != "" {
			break
		}
		src, _ = s.Attr("src")
	}
	title, _ := e.Attr("title")
	title = util.EscapeMrkdwn(title)
	if title == "" {
		title = "Video"
	}
	alt, ok := e.Attr("alt")
	if !ok || alt == "" {
		alt, _ = e.Attr("aria-label")
	}
	alt = util.EscapeMrkdwn(alt)
	if alt == "" {
		alt = title
	}
	poster, _ := e.Attr("poster")
	return blockkit.NewVideo(blockkit.VideoOptions{
		URL:          src,
		ThumbnailURL: poster,
		Title:        title,
		AltText:      alt,
		Description:  util.EscapeMrkdwn(fallbackText(e)),
	})
}

// fallbackText is the text a player-less reader would see inside <video>.
func fallbackText(video *html.HTMLElement) string {
	var parts []string
	for _, child := range video.Children {
		if !child.IsText() && (child.Tag == "source" || child.Tag == "track") {
			continue
		}
		if t := child.VisibleText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// buildHTMLTable reads the header from the first row of <thead>, or failing
// that the first row made only of <th> cells. Every other row, in document
// order, becomes a body row.
func buildHTMLTable(table *html.HTMLElement) (blockkit.Block, error) {
	all := tableRows(table)
	header := headerRow(table, all)
	var rows [][]blockkit.TableCell
	if header != nil {
		rows = append(rows, rowCells(header))
	}
	for _, tr := range all {
		if tr == header {
			continue
		}
		if cells := rowCells(tr); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return blockkit.NewTable(rows, blockkit.ColumnSettings(colAligns(table)))
}

func tableRows(table *html.HTMLElement) []*html.HTMLElement {
	var rows []*html.HTMLElement
	for _, child := range table.Children {
		switch child.Tag {
		case "tr":
			rows = append(rows, child)
		case "thead", "tbody", "tfoot":
			rows = append(rows, child.ChildrenByTag("tr")...)
		}
	}
	return rows
}

func headerRow(table *html.HTMLElement, rows []*html.HTMLElement) *html.HTMLElement {
	for _, thead := range table.ChildrenByTag("thead") {
		if trs := thead.ChildrenByTag("tr"); len(trs) > 0 {
			return trs[0]
		}
	}
	for _, tr := range rows {
		cells := tr.ChildrenByTag("td", "th")
		if len(cells) > 0 && len(tr.ChildrenByTag("th")) == len(cells) {
			return tr
		}
	}
	return nil
}

func rowCells(tr *html.HTMLElement) []blockkit.TableCell {
	var cells []blockkit.TableCell
	for _, cell := range tr.ChildrenByTag("td", "th") {
		cells = append(cells, blockkit.RawText(util.EscapeMrkdwn(cell.VisibleText())))
	}
	return cells
}

// colAligns reads column alignment from <colgroup>/<col>, honouring span.
func colAligns(table *html.HTMLElement) []blockkit.Align {
	var aligns []blockkit.Align
	for _, group := range table.ChildrenByTag("colgroup") {
		cols := group.ChildrenByTag("col")
		if len(cols) == 0 {
			cols = []*html.HTMLElement{group}
		}
		for _, col := range cols {
			a := alignOf(col)
			for range span(col) {
				if len(aligns) >= blockkit.MaxColumnSettings {
					return aligns
				}
				aligns = append(aligns, a)
			}
		}
	}
	return aligns
}

func span(e *html.HTMLElement) int {
	s, ok := e.Attr("span")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, blockkit.MaxColumnSettings)
}

func alignOf(e *html.HTMLElement) blockkit.Align {
	value, _ := e.Attr("align")
	if style, ok := e.Attr("style"); ok {
		for _, decl := range strings.Split(style, ";") {
			key, val, found := strings.Cut(decl, ":")
			if found && strings.EqualFold(strings.TrimSpace(key), "text-align") {
				value = val
			}
		}
	}
	switch blockkit.Align(strings.ToLower(strings.TrimSpace(value))) {
	case blockkit.AlignLeft:
		return blockkit.AlignLeft
	case blockkit.AlignCenter:
		return blockkit.AlignCenter
	case blockkit.AlignRight:
		return blockkit.AlignRight
	}
	return blockkit.AlignDefault
}
