package slackmark

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"slackmark.site/slackmark/blockkit"
)

// nestedEmphasis builds a paragraph holding levels of nested emphasis
// around a single string.
func nestedEmphasis(levels int) *ast.Document {
	doc := ast.NewDocument()
	para := ast.NewParagraph()
	doc.AppendChild(doc, para)
	var parent ast.Node = para
	for range levels {
		em := ast.NewEmphasis(1)
		parent.AppendChild(parent, em)
		parent = em
	}
	parent.AppendChild(parent, ast.NewString([]byte("x")))
	return doc
}

func TestTransformRecursionLimit(t *testing.T) {
	opts := Options{MaxDepth: 3}
	got, err := Transform(nestedEmphasis(3), nil, opts)
	if err != nil {
		t.Fatalf("at the limit: %v", err)
	}
	if diff := cmp.Diff([]blockkit.Block{section("___x___")}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := Transform(nestedEmphasis(4), nil, opts); !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("past the limit: err = %v, want ErrRecursionLimit", err)
	}
}

func TestTransformDepthIsPerCall(t *testing.T) {
	opts := Options{MaxDepth: 40}
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = Transform(nestedEmphasis(40), nil, opts)
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("call %d: %v", i, err)
		}
	}
}

func TestTransformSkipsUnknownNodes(t *testing.T) {
	doc := ast.NewDocument()
	doc.AppendChild(doc, extast.NewFootnoteList())
	para := ast.NewParagraph()
	para.AppendChild(para, ast.NewString([]byte("kept")))
	doc.AppendChild(doc, para)
	got, err := Transform(doc, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]blockkit.Block{section("kept")}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractPlain(t *testing.T) {
	doc, source, _ := Lex("a *b* [c](https://example.com) ![d](https://example.com/d.png) ![e](e.png \"E\")", Options{})
	got := strings.Join(extractPlain(doc.FirstChild(), source), "")
	if want := "a b c https://example.com/d.png E"; got != want {
		t.Errorf("extractPlain() = %q, want %q", got, want)
	}
}

func TestExtractEmbedded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []blockkit.Block
	}{
		{
			name: "header row of th cells",
			raw:  `<table><colgroup><col><col align="right"></colgroup><tr><th>a</th><th>b</th></tr><tr><td>1</td><td>x &lt; <em>y</em></td></tr></table>`,
			want: []blockkit.Block{must(blockkit.NewTable(
				[][]blockkit.TableCell{
					{blockkit.RawText("a"), blockkit.RawText("b")},
					{blockkit.RawText("1"), blockkit.RawText("x &lt; y")},
				},
				[]blockkit.ColumnSetting{{}, {Align: blockkit.AlignRight}},
			))},
		},
		{
			name: "style alignment and span",
			raw:  `<table><colgroup><col span="2"><col style="color: red; text-align: Center"></colgroup><tr><td>1</td><td>2</td><td>3</td></tr></table>`,
			want: []blockkit.Block{must(blockkit.NewTable(
				[][]blockkit.TableCell{
					{blockkit.RawText("1"), blockkit.RawText("2"), blockkit.RawText("3")},
				},
				[]blockkit.ColumnSetting{{}, {}, {Align: blockkit.AlignCenter}},
			))},
		},
		{
			name: "image",
			raw:  `<p align="center"><img src="https://example.com/a.png" alt="A"></p>`,
			want: []blockkit.Block{must(blockkit.NewImage("https://example.com/a.png", "A", ""))},
		},
		{
			name: "video with source",
			raw:  `<video title="Demo"><source src="https://example.com/v.webm">Your browser lacks video</video>`,
			want: []blockkit.Block{must(blockkit.NewVideo(blockkit.VideoOptions{
				URL:         "https://example.com/v.webm",
				Title:       "Demo",
				AltText:     "Demo",
				Description: "Your browser lacks video",
			}))},
		},
		{
			name: "video title defaults",
			raw:  `<video src="https://example.com/v.mp4"></video>`,
			want: []blockkit.Block{must(blockkit.NewVideo(blockkit.VideoOptions{
				URL:     "https://example.com/v.mp4",
				Title:   "Video",
				AltText: "Video",
			}))},
		},
		{
			name: "poster becomes thumbnail",
			raw:  `<video src="https://example.com/v.mp4" poster="https://example.com/p.png" title="Launch"></video>`,
			want: []blockkit.Block{must(blockkit.NewVideo(blockkit.VideoOptions{
				URL:          "https://example.com/v.mp4",
				ThumbnailURL: "https://example.com/p.png",
				Title:        "Launch",
				AltText:      "Launch",
			}))},
		},
		{
			name: "invalid image url is filtered",
			raw:  `<img src="javascript:x"><img src="https://example.com/ok.png" alt="ok">`,
			want: []blockkit.Block{must(blockkit.NewImage("https://example.com/ok.png", "ok", ""))},
		},
		{
			name: "bad poster drops only the video",
			raw:  `<video src="https://example.com/v.mp4" poster="javascript:x"></video><img src="https://example.com/b.png">`,
			want: []blockkit.Block{must(blockkit.NewImage("https://example.com/b.png", "Image", ""))},
		},
		{
			name: "nothing usable",
			raw:  `<div><script>alert(1)</script><p>text only</p></div>`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(nil, Options{})
			got := c.extractEmbedded(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("extractEmbedded() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyFileLink(t *testing.T) {
	allowed := DefaultOptions().fileExtensions()
	tests := []struct {
		link, text string
		want       string
		ok         bool
	}{
		{"https://example.com/files/q3.pdf", "report.pdf", "report.pdf", true},
		{"https://example.com/a/Q3%20deck.pptx", "the deck", "Q3 deck.pptx", true},
		{"https://example.com/download", "notes.txt", "notes.txt", true},
		{"https://example.com/a.PDF?dl=1", "get it", "a.PDF", true},
		{"https://example.com/", "bundle.zip", "bundle.zip", true},
		{"https://example.com/page.html", "page", "", false},
		{"https://example.com/v1.2", "v1.2", "", false},
	}
	for _, tt := range tests {
		got, ok := classifyFileLink(tt.link, tt.text, allowed)
		if got != tt.want || ok != tt.ok {
			t.Errorf("classifyFileLink(%q, %q) = %q, %v; want %q, %v", tt.link, tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFileExtensionsFromOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.FileExtensions = []string{"sketch"}
	got, err := Convert("[design](https://example.com/app.sketch)", opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]blockkit.Block{must(blockkit.NewFile("app.sketch"))}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
