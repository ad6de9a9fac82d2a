package extensions

import (
	"bytes"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	gmutil "github.com/yuin/goldmark/util"

	"slackmark.site/slackmark/util"
)

var VideoExt = []string{"webm", "mp4", "mkv", "ogv", "mov"}

// Media is a video referenced with image syntax, e.g. ![Demo](demo.mp4).
type Media struct {
	ast.BaseBlock
	Destination []byte
	Title       []byte
	// Alt is the escaped alt text of the original image.
	Alt string
}

var KindMedia = ast.NewNodeKind("Media")

func (n *Media) Kind() ast.NodeKind {
	return KindMedia
}

// Dump implements Node.Dump.
func (n *Media) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Destination": string(n.Destination),
		"Alt":         n.Alt,
	}, nil)
}

func NewMedia(img *ast.Image, source []byte) *Media {
	return &Media{
		Destination: img.Destination,
		Title:       img.Title,
		Alt:         util.EscapeMrkdwn(rawText(img, source)),
	}
}

func rawText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(rawText(c, source))
		}
	}
	return buf.String()
}

// mediaExt returns the lowercased extension of a destination, ignoring any
// query or fragment.
func mediaExt(dest []byte) string {
	s := string(dest)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(s), "."))
}

type mediaTransformer struct{}

func (r mediaTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var images []*ast.Image
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindImage {
			img := n.(*ast.Image)
			if slices.Contains(VideoExt, mediaExt(img.Destination)) {
				images = append(images, img)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, img := range images {
		media := NewMedia(img, source)
		parent := img.Parent()
		// If the media is the only child of a paragraph, replace the paragraph with the media.
		if parent.Kind() == ast.KindParagraph && parent.ChildCount() == 1 && parent.Parent() != nil {
			parent.Parent().ReplaceChild(parent.Parent(), parent, media)
			continue
		}
		parent.ReplaceChild(parent, img, media)
	}
}

type mediaEmbed struct{}

func (e *mediaEmbed) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			gmutil.Prioritized(mediaTransformer{}, priorityMediaTransformer),
		),
	)
}

func EmbedMedia() goldmark.Extender {
	return &mediaEmbed{}
}
