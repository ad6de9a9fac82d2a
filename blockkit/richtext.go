package blockkit

type ListStyle string

const (
	ListBullet  ListStyle = "bullet"
	ListOrdered ListStyle = "ordered"
)

// RichTextElement is a container inside a rich_text block: a section, list,
// quote or preformatted run.
type RichTextElement interface {
	richTextElement()
}

// RichTextInline is a styled unit inside a RichTextElement.
type RichTextInline interface {
	richTextInline()
}

type RichTextSection struct {
	Type     string           `json:"type"`
	Elements []RichTextInline `json:"elements"`
}

type RichTextList struct {
	Type     string             `json:"type"`
	Style    ListStyle          `json:"style"`
	Indent   int                `json:"indent,omitempty"`
	Offset   int                `json:"offset,omitempty"`
	Elements []*RichTextSection `json:"elements"`
}

type RichTextQuote struct {
	Type     string           `json:"type"`
	Elements []RichTextInline `json:"elements"`
}

type RichTextPreformatted struct {
	Type     string           `json:"type"`
	Elements []RichTextInline `json:"elements"`
}

func (*RichTextSection) richTextElement()      {}
func (*RichTextList) richTextElement()         {}
func (*RichTextQuote) richTextElement()        {}
func (*RichTextPreformatted) richTextElement() {}

type TextStyle struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Strike bool `json:"strike,omitempty"`
	Code   bool `json:"code,omitempty"`
}

type RichTextText struct {
	Type  string     `json:"type"`
	Text  string     `json:"text"`
	Style *TextStyle `json:"style,omitempty"`
}

type RichTextLink struct {
	Type  string     `json:"type"`
	URL   string     `json:"url"`
	Text  string     `json:"text,omitempty"`
	Style *TextStyle `json:"style,omitempty"`
}

func (*RichTextText) richTextInline() {}
func (*RichTextLink) richTextInline() {}

func Text(s string) *RichTextText {
	return &RichTextText{Type: "text", Text: s}
}

// StyledText returns a text element, dropping the style object when no flag is set.
func StyledText(s string, style TextStyle) *RichTextText {
	t := Text(s)
	if style != (TextStyle{}) {
		t.Style = &style
	}
	return t
}

func Link(url, text string) *RichTextLink {
	return &RichTextLink{Type: "link", URL: url, Text: text}
}

func NewRichTextSection(elements ...RichTextInline) *RichTextSection {
	return &RichTextSection{Type: "rich_text_section", Elements: elements}
}
