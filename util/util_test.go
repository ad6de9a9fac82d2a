package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a.pdf", true},
		{"http://example.com", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"docs/report.pdf", true},
		{"/static/logo.png", true},
		{"./relative/файл.txt", true},
		{"#section", true},
		{"", false},
		{" https://example.com", false},
		{"https://", false},
		{"ftp://example.com/file", false},
		{"javascript:alert(1)", false},
		{"mailto:someone@example.com", false},
		{"//cdn.example.com/x.js", false},
		{"has space.png", false},
		{"data:", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsValidURL(tt.url); got != tt.want {
				t.Errorf("IsValidURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		base    string
		want    string
		wantErr bool
	}{
		{"no base", "img/a.png", "", "img/a.png", false},
		{"relative", "img/a.png", "https://example.com/docs/", "https://example.com/docs/img/a.png", false},
		{"rooted", "/img/a.png", "https://example.com/docs/", "https://example.com/img/a.png", false},
		{"absolute untouched", "https://other.org/x", "https://example.com/", "https://other.org/x", false},
		{"fragment untouched", "#top", "https://example.com/", "#top", false},
		{"relative base", "a.png", "docs/", "a.png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.ref, tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeMrkdwn(t *testing.T) {
	got := EscapeMrkdwn(`a & b <c> 'd' "e"`)
	want := `a &amp; b &lt;c&gt; 'd' "e"`
	if got != want {
		t.Errorf("EscapeMrkdwn() = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ascii", "hello world", 5, "hello"},
		{"multibyte", "héllo", 2, "hé"},
		{"combining mark kept whole", "e\u0301e\u0301e\u0301", 3, "e\u0301"},
		{"zero", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTruncateFourByteRunes(t *testing.T) {
	in := strings.Repeat("😀", 200)
	got := Truncate(in, 150)
	if n := utf8.RuneCountInString(got); n != 150 {
		t.Errorf("got %d runes, want 150", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated string is not valid UTF-8")
	}
}

func TestConcatUnique(t *testing.T) {
	got := ConcatUnique([]string{"pdf", "zip"}, []string{"zip", "epub", "epub"})
	want := []string{"pdf", "zip", "epub"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConcatUnique() mismatch (-want +got):\n%s", diff)
	}
}
