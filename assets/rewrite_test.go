package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/assets"
)

func TestRewriteFileBaseReferences(t *testing.T) {
	in := `<img src="$IMS-CC-FILEBASE$/images/logo.png">`
	got := assets.RewriteReferences(in)
	want := `<img src="/static/images/logo.png">`
	if got != want {
		t.Errorf("RewriteReferences() = %q, want %q", got, want)
	}
}

func TestRewriteFileBaseDecodesEscapes(t *testing.T) {
	in := `<a href="$IMS-CC-FILEBASE$/docs/week%201.pdf">PDF</a>`
	got := assets.RewriteReferences(in)
	want := `<a href="/static/docs/week 1.pdf">PDF</a>`
	if got != want {
		t.Errorf("RewriteReferences() = %q, want %q", got, want)
	}
}

func TestRewriteInternalAnchorsBecomeSpans(t *testing.T) {
	in := `<p>See <a title="Syllabus" href="$WIKI_REFERENCE$/pages/syllabus">the syllabus</a>.</p>`
	got := assets.RewriteReferences(in)
	want := `<p>See <span class="canvas-internal-link">the syllabus</span>.</p>`
	if got != want {
		t.Errorf("RewriteReferences() = %q, want %q", got, want)
	}
}

func TestRewriteLooseInternalReferences(t *testing.T) {
	in := `<img src="$CANVAS_COURSE_REFERENCE$/file_ref/abc123">`
	got := assets.RewriteReferences(in)
	want := `<img src="#">`
	if got != want {
		t.Errorf("RewriteReferences() = %q, want %q", got, want)
	}
}

func TestRewriteLeavesPlainHTMLAlone(t *testing.T) {
	in := `<p>Nothing to see <a href="https://example.com">here</a>.</p>`
	if got := assets.RewriteReferences(in); got != in {
		t.Errorf("RewriteReferences() = %q, want unchanged", got)
	}
}

func TestCopyWebResources(t *testing.T) {
	extractDir := t.TempDir()
	outDir := t.TempDir()
	files := map[string]string{
		"web_resources/images/logo.png":   "png-bytes",
		"web_resources/docs/syllabus.pdf": "pdf-bytes",
	}
	for rel, body := range files {
		path := filepath.Join(extractDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	copied, err := assets.CopyWebResources(extractDir, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if copied != 2 {
		t.Errorf("copied = %d, want 2", copied)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "static", "images", "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("copied content = %q", data)
	}
}

func TestCopyWebResourcesMissingDir(t *testing.T) {
	copied, err := assets.CopyWebResources(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if copied != 0 {
		t.Errorf("copied = %d, want 0", copied)
	}
}
