// Package blockkit holds the closed set of message blocks the chat platform
// accepts and the constructors that validate and truncate them.
//
// Every struct marshals one-to-one onto the platform's JSON block schema.
package blockkit

import "fmt"

type BlockType string

const (
	TypeSection  BlockType = "section"
	TypeHeader   BlockType = "header"
	TypeDivider  BlockType = "divider"
	TypeImage    BlockType = "image"
	TypeTable    BlockType = "table"
	TypeFile     BlockType = "file"
	TypeVideo    BlockType = "video"
	TypeRichText BlockType = "rich_text"
)

// Platform ceilings.
const (
	MaxBlocks         = 50
	MaxSectionText    = 3000
	MaxHeaderText     = 150
	MaxImageText      = 2000
	MaxVideoText      = 200
	MaxVideoAuthor    = 50
	MaxTableRows      = 100
	MaxTableCells     = 20
	MaxColumnSettings = 20
	MaxBlockID        = 255
)

const (
	textPlain  = "plain_text"
	textMrkdwn = "mrkdwn"
)

// Block is implemented only by the block types in this package.
type Block interface {
	BlockType() BlockType
	setBlockID(id string)
}

type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func plainText(s string) *TextObject {
	return &TextObject{Type: textPlain, Text: s, Emoji: true}
}

func mrkdwnText(s string) *TextObject {
	return &TextObject{Type: textMrkdwn, Text: s}
}

type SectionBlock struct {
	Type    BlockType   `json:"type"`
	Text    *TextObject `json:"text"`
	BlockID string      `json:"block_id,omitempty"`
}

type HeaderBlock struct {
	Type    BlockType   `json:"type"`
	Text    *TextObject `json:"text"`
	BlockID string      `json:"block_id,omitempty"`
}

type DividerBlock struct {
	Type    BlockType `json:"type"`
	BlockID string    `json:"block_id,omitempty"`
}

type ImageBlock struct {
	Type     BlockType   `json:"type"`
	ImageURL string      `json:"image_url"`
	AltText  string      `json:"alt_text"`
	Title    *TextObject `json:"title,omitempty"`
	BlockID  string      `json:"block_id,omitempty"`
}

// FileBlock references a remote file by its external identifier.
type FileBlock struct {
	Type       BlockType `json:"type"`
	ExternalID string    `json:"external_id"`
	Source     string    `json:"source"`
	BlockID    string    `json:"block_id,omitempty"`
}

type VideoBlock struct {
	Type         BlockType   `json:"type"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	AltText      string      `json:"alt_text"`
	Title        *TextObject `json:"title"`
	Description  *TextObject `json:"description,omitempty"`
	AuthorName   string      `json:"author_name,omitempty"`
	BlockID      string      `json:"block_id,omitempty"`
}

type TableBlock struct {
	Type           BlockType       `json:"type"`
	Rows           [][]TableCell   `json:"rows"`
	ColumnSettings []ColumnSetting `json:"column_settings,omitempty"`
	BlockID        string          `json:"block_id,omitempty"`
}

type RichTextBlock struct {
	Type     BlockType         `json:"type"`
	Elements []RichTextElement `json:"elements"`
	BlockID  string            `json:"block_id,omitempty"`
}

func (b *SectionBlock) BlockType() BlockType  { return TypeSection }
func (b *HeaderBlock) BlockType() BlockType   { return TypeHeader }
func (b *DividerBlock) BlockType() BlockType  { return TypeDivider }
func (b *ImageBlock) BlockType() BlockType    { return TypeImage }
func (b *FileBlock) BlockType() BlockType     { return TypeFile }
func (b *VideoBlock) BlockType() BlockType    { return TypeVideo }
func (b *TableBlock) BlockType() BlockType    { return TypeTable }
func (b *RichTextBlock) BlockType() BlockType { return TypeRichText }

func (b *SectionBlock) setBlockID(id string)  { b.BlockID = id }
func (b *HeaderBlock) setBlockID(id string)   { b.BlockID = id }
func (b *DividerBlock) setBlockID(id string)  { b.BlockID = id }
func (b *ImageBlock) setBlockID(id string)    { b.BlockID = id }
func (b *FileBlock) setBlockID(id string)     { b.BlockID = id }
func (b *VideoBlock) setBlockID(id string)    { b.BlockID = id }
func (b *TableBlock) setBlockID(id string)    { b.BlockID = id }
func (b *RichTextBlock) setBlockID(id string) { b.BlockID = id }

// ValidationError reports a field a constructor refused.
type ValidationError struct {
	Block  BlockType
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s block: %s %s", e.Block, e.Field, e.Reason)
}

func invalid(block BlockType, field, reason string) error {
	return &ValidationError{Block: block, Field: field, Reason: reason}
}
