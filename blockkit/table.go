package blockkit

type Align string

const (
	AlignDefault Align = ""
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
)

// TableCell is either a RawTextCell or a RichTextCell.
type TableCell interface {
	tableCell()
}

type RawTextCell struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type RichTextCell struct {
	Type     string            `json:"type"`
	Elements []RichTextElement `json:"elements"`
}

func (*RawTextCell) tableCell()  {}
func (*RichTextCell) tableCell() {}

func RawText(s string) *RawTextCell {
	return &RawTextCell{Type: "raw_text", Text: s}
}

// RichCell wraps inline elements in a single rich_text_section.
func RichCell(elements ...RichTextInline) *RichTextCell {
	return &RichTextCell{
		Type:     "rich_text",
		Elements: []RichTextElement{NewRichTextSection(elements...)},
	}
}

type ColumnSetting struct {
	Align     Align `json:"align,omitempty"`
	IsWrapped bool  `json:"is_wrapped,omitempty"`
}

// ColumnSettings encodes per-column alignment positionally. Only center and
// right produce a setting; earlier default columns become empty placeholders
// and trailing default columns are left out entirely.
func ColumnSettings(aligns []Align) []ColumnSetting {
	var out []ColumnSetting
	for i, a := range aligns {
		if i >= MaxColumnSettings {
			break
		}
		if a != AlignCenter && a != AlignRight {
			continue
		}
		for len(out) < i {
			out = append(out, ColumnSetting{})
		}
		out = append(out, ColumnSetting{Align: a})
	}
	return out
}
