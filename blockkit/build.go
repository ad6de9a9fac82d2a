package blockkit

import (
	"strings"

	"slackmark.site/slackmark/util"
)

func NewSection(text string) (*SectionBlock, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalid(TypeSection, "text", "is empty")
	}
	return &SectionBlock{
		Type: TypeSection,
		Text: mrkdwnText(util.Truncate(text, MaxSectionText)),
	}, nil
}

// NewHeader builds a header block. Headers carry plain text on a single line.
func NewHeader(text string) (*HeaderBlock, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return nil, invalid(TypeHeader, "text", "is empty")
	}
	return &HeaderBlock{
		Type: TypeHeader,
		Text: plainText(util.Truncate(text, MaxHeaderText)),
	}, nil
}

func NewDivider() *DividerBlock {
	return &DividerBlock{Type: TypeDivider}
}

func NewImage(url, altText, title string) (*ImageBlock, error) {
	if !util.IsValidURL(url) {
		return nil, invalid(TypeImage, "image_url", "is not a valid URL")
	}
	if strings.TrimSpace(altText) == "" {
		return nil, invalid(TypeImage, "alt_text", "is empty")
	}
	img := &ImageBlock{
		Type:     TypeImage,
		ImageURL: url,
		AltText:  util.Truncate(altText, MaxImageText),
	}
	if title != "" {
		img.Title = plainText(util.Truncate(title, MaxImageText))
	}
	return img, nil
}

func NewFile(externalID string) (*FileBlock, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, invalid(TypeFile, "external_id", "is empty")
	}
	return &FileBlock{
		Type:       TypeFile,
		ExternalID: externalID,
		Source:     "remote",
	}, nil
}

type VideoOptions struct {
	URL          string
	ThumbnailURL string
	Title        string
	AltText      string
	Description  string
	Author       string
}

// NewVideo builds a video block. The thumbnail falls back to the video URL.
func NewVideo(opts VideoOptions) (*VideoBlock, error) {
	if opts.URL == "" {
		return nil, invalid(TypeVideo, "video_url", "is empty")
	}
	if !util.IsValidURL(opts.URL) {
		return nil, invalid(TypeVideo, "video_url", "is not a valid URL")
	}
	if strings.TrimSpace(opts.Title) == "" {
		return nil, invalid(TypeVideo, "title", "is empty")
	}
	if strings.TrimSpace(opts.AltText) == "" {
		return nil, invalid(TypeVideo, "alt_text", "is empty")
	}
	thumb := opts.ThumbnailURL
	if thumb == "" {
		thumb = opts.URL
	}
	if !util.IsValidURL(thumb) {
		return nil, invalid(TypeVideo, "thumbnail_url", "is not a valid URL")
	}
	v := &VideoBlock{
		Type:         TypeVideo,
		VideoURL:     opts.URL,
		ThumbnailURL: thumb,
		AltText:      util.Truncate(opts.AltText, MaxVideoText),
		Title:        plainText(util.Truncate(opts.Title, MaxVideoText)),
		AuthorName:   util.Truncate(opts.Author, MaxVideoAuthor),
	}
	if opts.Description != "" {
		v.Description = plainText(util.Truncate(opts.Description, MaxVideoText))
	}
	return v, nil
}

// NewTable drops rows beyond MaxTableRows and cells beyond MaxTableCells.
func NewTable(rows [][]TableCell, settings []ColumnSetting) (*TableBlock, error) {
	if len(rows) == 0 {
		return nil, invalid(TypeTable, "rows", "is empty")
	}
	if len(rows) > MaxTableRows {
		rows = rows[:MaxTableRows]
	}
	kept := make([][]TableCell, 0, len(rows))
	for _, row := range rows {
		if len(row) > MaxTableCells {
			row = row[:MaxTableCells]
		}
		kept = append(kept, row)
	}
	if len(settings) > MaxColumnSettings {
		settings = settings[:MaxColumnSettings]
	}
	return &TableBlock{
		Type:           TypeTable,
		Rows:           kept,
		ColumnSettings: settings,
	}, nil
}

func NewRichText(elements ...RichTextElement) (*RichTextBlock, error) {
	if len(elements) == 0 {
		return nil, invalid(TypeRichText, "elements", "is empty")
	}
	return &RichTextBlock{Type: TypeRichText, Elements: elements}, nil
}

// NewRichTextList builds a rich_text block holding one list; each item is
// one rich_text_section.
func NewRichTextList(style ListStyle, offset int, items ...[]RichTextInline) (*RichTextBlock, error) {
	if len(items) == 0 {
		return nil, invalid(TypeRichText, "rich_text_list", "has no items")
	}
	list := &RichTextList{Type: "rich_text_list", Style: style, Offset: offset}
	for _, item := range items {
		list.Elements = append(list.Elements, NewRichTextSection(item...))
	}
	return NewRichText(list)
}

func NewRichTextQuote(elements ...RichTextInline) (*RichTextBlock, error) {
	if len(elements) == 0 {
		return nil, invalid(TypeRichText, "rich_text_quote", "is empty")
	}
	return NewRichText(&RichTextQuote{Type: "rich_text_quote", Elements: elements})
}

func NewRichTextCode(code string) (*RichTextBlock, error) {
	if code == "" {
		return nil, invalid(TypeRichText, "rich_text_preformatted", "is empty")
	}
	return NewRichText(&RichTextPreformatted{
		Type:     "rich_text_preformatted",
		Elements: []RichTextInline{Text(code)},
	})
}

// SetBlockID assigns a block_id, truncated to the platform ceiling.
func SetBlockID(b Block, id string) {
	if b == nil || id == "" {
		return
	}
	b.setBlockID(util.Truncate(id, MaxBlockID))
}
