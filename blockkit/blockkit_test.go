package blockkit

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return string(b)
}

func TestBlockJSON(t *testing.T) {
	section, _ := NewSection("*hi*")
	header, _ := NewHeader("Title")
	image, _ := NewImage("https://example.com/a.png", "a cat", "Cat")
	file, _ := NewFile("report.pdf")
	list, _ := NewRichTextList(ListOrdered, 2, []RichTextInline{Text("one")})
	quote, _ := NewRichTextQuote(StyledText("q", TextStyle{Italic: true}), Link("https://example.com", "site"))
	code, _ := NewRichTextCode("x := 1")
	table, _ := NewTable([][]TableCell{{RawText("a"), RichCell(StyledText("b", TextStyle{Bold: true}))}},
		ColumnSettings([]Align{AlignDefault, AlignRight}))

	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"section", section, `{"type":"section","text":{"type":"mrkdwn","text":"*hi*"}}`},
		{"header", header, `{"type":"header","text":{"type":"plain_text","text":"Title","emoji":true}}`},
		{"divider", NewDivider(), `{"type":"divider"}`},
		{"image", image, `{"type":"image","image_url":"https://example.com/a.png","alt_text":"a cat","title":{"type":"plain_text","text":"Cat","emoji":true}}`},
		{"file", file, `{"type":"file","external_id":"report.pdf","source":"remote"}`},
		{"list", list, `{"type":"rich_text","elements":[{"type":"rich_text_list","style":"ordered","offset":2,"elements":[{"type":"rich_text_section","elements":[{"type":"text","text":"one"}]}]}]}`},
		{"quote", quote, `{"type":"rich_text","elements":[{"type":"rich_text_quote","elements":[{"type":"text","text":"q","style":{"italic":true}},{"type":"link","url":"https://example.com","text":"site"}]}]}`},
		{"code", code, `{"type":"rich_text","elements":[{"type":"rich_text_preformatted","elements":[{"type":"text","text":"x := 1"}]}]}`},
		{"table", table, `{"type":"table","rows":[[{"type":"raw_text","text":"a"},{"type":"rich_text","elements":[{"type":"rich_text_section","elements":[{"type":"text","text":"b","style":{"bold":true}}]}]}]],"column_settings":[{},{"align":"right"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustJSON(t, tt.block); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestConstructorValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		field string
	}{
		{"empty section", func() error { _, err := NewSection("  "); return err }, "text"},
		{"empty header", func() error { _, err := NewHeader(""); return err }, "text"},
		{"bad image url", func() error { _, err := NewImage("javascript:x", "alt", ""); return err }, "image_url"},
		{"empty image alt", func() error { _, err := NewImage("a.png", "", ""); return err }, "alt_text"},
		{"empty file id", func() error { _, err := NewFile(""); return err }, "external_id"},
		{"empty video url", func() error { _, err := NewVideo(VideoOptions{Title: "t", AltText: "a"}); return err }, "video_url"},
		{"empty video title", func() error { _, err := NewVideo(VideoOptions{URL: "https://x.io/v.mp4", AltText: "a"}); return err }, "title"},
		{"empty video alt", func() error { _, err := NewVideo(VideoOptions{URL: "https://x.io/v.mp4", Title: "t"}); return err }, "alt_text"},
		{"empty table", func() error { _, err := NewTable(nil, nil); return err }, "rows"},
		{"empty code", func() error { _, err := NewRichTextCode(""); return err }, "rich_text_preformatted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestTruncation(t *testing.T) {
	header, err := NewHeader(strings.Repeat("🎉", 400))
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(header.Text.Text); n != MaxHeaderText {
		t.Errorf("header length = %d, want %d", n, MaxHeaderText)
	}

	section, err := NewSection(strings.Repeat("a", MaxSectionText+10))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(section.Text.Text); n != MaxSectionText {
		t.Errorf("section length = %d, want %d", n, MaxSectionText)
	}

	video, err := NewVideo(VideoOptions{
		URL:     "https://example.com/v.mp4",
		Title:   strings.Repeat("t", 500),
		AltText: "alt",
		Author:  strings.Repeat("ü", 80),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(video.Title.Text); n != MaxVideoText {
		t.Errorf("video title length = %d, want %d", n, MaxVideoText)
	}
	if n := utf8.RuneCountInString(video.AuthorName); n != MaxVideoAuthor {
		t.Errorf("video author length = %d, want %d", n, MaxVideoAuthor)
	}
	if video.ThumbnailURL != video.VideoURL {
		t.Errorf("thumbnail = %q, want video url", video.ThumbnailURL)
	}
}

func TestNewTableCeilings(t *testing.T) {
	var rows [][]TableCell
	for i := 0; i < MaxTableRows+5; i++ {
		var row []TableCell
		for j := 0; j < MaxTableCells+3; j++ {
			row = append(row, RawText("x"))
		}
		rows = append(rows, row)
	}
	table, err := NewTable(rows, make([]ColumnSetting, 30))
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != MaxTableRows {
		t.Errorf("rows = %d, want %d", len(table.Rows), MaxTableRows)
	}
	for i, row := range table.Rows {
		if len(row) != MaxTableCells {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), MaxTableCells)
		}
	}
	if len(table.ColumnSettings) != MaxColumnSettings {
		t.Errorf("column settings = %d, want %d", len(table.ColumnSettings), MaxColumnSettings)
	}
}

func TestColumnSettings(t *testing.T) {
	tests := []struct {
		name   string
		aligns []Align
		want   []ColumnSetting
	}{
		{"none", []Align{AlignDefault, AlignLeft}, nil},
		{"center second", []Align{AlignDefault, AlignCenter, AlignDefault}, []ColumnSetting{{}, {Align: AlignCenter}}},
		{"first right", []Align{AlignRight}, []ColumnSetting{{Align: AlignRight}}},
		{"holes kept", []Align{AlignLeft, AlignDefault, AlignRight, AlignLeft}, []ColumnSetting{{}, {}, {Align: AlignRight}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ColumnSettings(tt.aligns)); diff != "" {
				t.Errorf("ColumnSettings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColumnSettingsCap(t *testing.T) {
	aligns := make([]Align, 25)
	aligns[24] = AlignCenter
	aligns[3] = AlignRight
	got := ColumnSettings(aligns)
	if len(got) != 4 {
		t.Errorf("len = %d, want 4 (column 25 is beyond the cap)", len(got))
	}
}

func TestSetBlockID(t *testing.T) {
	section, _ := NewSection("x")
	SetBlockID(section, strings.Repeat("i", 300))
	if len(section.BlockID) != MaxBlockID {
		t.Errorf("block id length = %d, want %d", len(section.BlockID), MaxBlockID)
	}
	SetBlockID(nil, "x")
}
