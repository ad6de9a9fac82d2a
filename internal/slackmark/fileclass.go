package slackmark

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"

	"slackmark.site/slackmark/blockkit"
	"slackmark.site/slackmark/util"
)

var defaultFileExtensions = []string{
	// documents
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "txt", "md",
	// archives
	"zip", "rar", "7z", "tar", "gz", "tgz", "bz2", "xz",
	// images
	"png", "jpg", "jpeg", "gif", "bmp", "svg", "webp", "tif", "tiff", "heic",
	// data
	"csv", "tsv", "json", "xml", "yaml", "yml",
}

func fileExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// urlFilename returns the last path segment of a URL, unescaped.
func urlFilename(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

// classifyFileLink decides whether a link points at a file. The URL
// extension is checked first, then the link text. When the text itself looks
// like a filename it is used as the name.
func classifyFileLink(link, text string, allowed []string) (string, bool) {
	name := urlFilename(link)
	text = strings.TrimSpace(text)
	textIsFile := text != "" && slices.Contains(allowed, fileExt(text))
	if !textIsFile && !slices.Contains(allowed, fileExt(name)) {
		return "", false
	}
	if textIsFile {
		return text, true
	}
	if name == "" {
		return "Document", true
	}
	return name, true
}

// fileBlock returns a file block for links to documents. Anything that
// cannot become a file block is left to the phrase renderer.
func (c *converter) fileBlock(link *ast.Link) (blockkit.Block, bool) {
	dest := string(link.Destination)
	if !util.IsValidURL(dest) {
		return nil, false
	}
	name, ok := classifyFileLink(dest, c.flatten(link), c.files)
	if !ok {
		return nil, false
	}
	file, err := blockkit.NewFile(name)
	if err != nil {
		return nil, false
	}
	return file, true
}
