package slackmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
)

// buildTable keeps cells without formatting as raw text and gives the rest
// rich text content.
func (c *converter) buildTable(table *extast.Table) ([]blockkit.Block, error) {
	var rows [][]blockkit.TableCell
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *extast.TableHeader, *extast.TableRow:
		default:
			continue
		}
		var cells []blockkit.TableCell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, c.tableCell(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	block, err := blockkit.NewTable(rows, blockkit.ColumnSettings(columnAligns(table.Alignments)))
	if err != nil {
		return nil, err
	}
	return []blockkit.Block{block}, nil
}

func (c *converter) tableCell(cell ast.Node) blockkit.TableCell {
	if hasFormatting(cell) {
		if elements := c.richInline(cell); len(elements) > 0 {
			return blockkit.RichCell(elements...)
		}
	}
	return blockkit.RawText(strings.TrimSpace(c.flatten(cell)))
}

func columnAligns(alignments []extast.Alignment) []blockkit.Align {
	aligns := make([]blockkit.Align, len(alignments))
	for i, a := range alignments {
		switch a {
		case extast.AlignLeft:
			aligns[i] = blockkit.AlignLeft
		case extast.AlignCenter:
			aligns[i] = blockkit.AlignCenter
		case extast.AlignRight:
			aligns[i] = blockkit.AlignRight
		}
	}
	return aligns
}
