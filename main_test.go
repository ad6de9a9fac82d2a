package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slackmark.site/slackmark/internal/slackmark"
)

func TestRunStdin(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, strings.NewReader("# Hi\n\nSome *text*\n"), &out); err != nil {
		t.Fatal(err)
	}
	want := `[{"type":"header","text":{"type":"plain_text","text":"Hi","emoji":true}},{"type":"section","text":{"type":"mrkdwn","text":"Some _text_"}}]` + "\n"
	if got := out.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunMessage(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--message"}, strings.NewReader("a < b\n"), &out); err != nil {
		t.Fatal(err)
	}
	want := `{"text":"a &lt; b","blocks":[{"type":"section","text":{"type":"mrkdwn","text":"a &lt; b"}}]}` + "\n"
	if got := out.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunConfigAndFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "slackmark.yaml"), []byte("block_limit: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "in.md")
	if err := os.WriteFile(input, []byte("one\n\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run([]string{"-c", dir, input}, strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, slackmark.ErrBlockLimit) {
		t.Errorf("err = %v, want ErrBlockLimit", err)
	}

	output := filepath.Join(dir, "out.json")
	if err := run([]string{"-o", output, input}, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"text":"two"`) {
		t.Errorf("output file = %s", data)
	}
}

func TestRunRejectsExtraArgs(t *testing.T) {
	if err := run([]string{"a.md", "b.md"}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected an error for two inputs")
	}
}
