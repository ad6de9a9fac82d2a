package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTable(t *testing.T) {
	root, err := Parse(`<table><thead><tr><th>A</th><th>B</th></tr></thead><tr><td><em>x</em> &amp; y</td><td>2</td></tr></table>`)
	if err != nil {
		t.Fatal(err)
	}
	tables := root.Find("table")
	if len(tables) != 1 {
		t.Fatalf("found %d tables, want 1", len(tables))
	}
	var got []string
	for _, cell := range tables[0].Find("td") {
		got = append(got, cell.VisibleText())
	}
	want := []string{"x & y", "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell text mismatch (-want +got):\n%s", diff)
	}
	// the HTML5 parser wraps bare rows in tbody
	if len(tables[0].ChildrenByTag("tbody")) != 1 {
		t.Errorf("expected an implied tbody")
	}
}

func TestAttrAndWalk(t *testing.T) {
	root, err := Parse(`<div><IMG SRC=" a.png " alt="A"><video src="v.mp4"></video></div>`)
	if err != nil {
		t.Fatal(err)
	}
	var tags []string
	root.Walk(func(e *HTMLElement) bool {
		if !e.IsText() {
			tags = append(tags, e.Tag)
		}
		return e.Tag != "div"
	})
	if diff := cmp.Diff([]string{"body", "div"}, tags); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
	img := root.Find("img")[0]
	if src, ok := img.Attr("src"); !ok || src != "a.png" {
		t.Errorf("src = %q, %v", src, ok)
	}
	if _, ok := img.Attr("title"); ok {
		t.Error("unexpected title attribute")
	}
}

func TestVisibleTextSkipsScripts(t *testing.T) {
	root, err := Parse(`<p>one<br>two<script>alert(1)</script><style>p{}</style></p>`)
	if err != nil {
		t.Fatal(err)
	}
	if got := root.VisibleText(); got != "one\ntwo" {
		t.Errorf("VisibleText() = %q", got)
	}
}

func TestExternalEntitiesIgnored(t *testing.T) {
	root, err := Parse(`<!DOCTYPE x [<!ENTITY e SYSTEM "file:///etc/passwd">]><p>&e;</p>`)
	if err != nil {
		t.Fatal(err)
	}
	if got := root.VisibleText(); got != "]>&e;" && got != "&e;" {
		t.Errorf("VisibleText() = %q, entity must stay unresolved", got)
	}
}
