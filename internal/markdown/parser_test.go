package markdown

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

func TestParseFrontMatterYAML(t *testing.T) {
	data := readFixture(t, "testdata/sep-1.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta["title"] != "SEP Purpose and Guidelines" {
		t.Fatalf("title mismatch, got %#v", meta["title"])
	}
	if meta["sep"] != 1 {
		t.Fatalf("expected integer sep, got %#v (%T)", meta["sep"], meta["sep"])
	}
	requires, ok := meta["requires"].([]any)
	if !ok || len(requires) != 2 {
		t.Fatalf("expected requires list, got %#v", meta["requires"])
	}
	if _, ok := meta["created"]; !ok {
		t.Fatalf("expected created to be present: %#v", meta)
	}
	if !strings.Contains(string(body), "# SEP Purpose") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
	if strings.Contains(string(body), "title:") {
		t.Fatalf("expected frontmatter to be stripped from body: %q", string(body))
	}
}

func TestParseFrontMatterTOML(t *testing.T) {
	data := readFixture(t, "testdata/sccp-toml.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta["network"] != "Optimism" {
		t.Fatalf("network mismatch, got %#v", meta["network"])
	}
	if _, ok := meta["sccp"]; !ok {
		t.Fatalf("expected sccp key: %#v", meta)
	}
	if strings.TrimSpace(string(body)) != "Body text" {
		t.Fatalf("unexpected body %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("# Just a heading\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty frontmatter, got %#v", meta)
	}
	if string(body) != "# Just a heading\n" {
		t.Fatalf("expected full source as body, got %q", string(body))
	}
}

func TestParseFrontMatterInvalidYAML(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\n"))
	if !errors.Is(err, ErrFrontMatterMalformed) {
		t.Fatalf("expected ErrFrontMatterMalformed, got %v", err)
	}
}

func TestNormalizeValueConvertsInterfaceKeyedMaps(t *testing.T) {
	got := normalizeValue(map[any]any{"a": []any{map[any]any{1: "x"}}})

	outer, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", got)
	}
	inner := outer["a"].([]any)[0].(map[string]any)
	if inner["1"] != "x" {
		t.Fatalf("expected stringified key, got %#v", inner)
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/sep-1.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("content/seps/sep-1.md", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.FilePath != "content/seps/sep-1.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 || len(doc.BodyHTML) != 0 {
		t.Fatalf("expected raw body only, got body=%q html=%q", doc.Body, doc.BodyHTML)
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_SafeModeOmitsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	html, err := parser.Parse([]byte("<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", string(html))
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "emoji", ""})
	if len(exts) != 1 {
		t.Fatalf("expected a single extension, got %d", len(exts))
	}
	if got := collectExtensions(nil); len(got) != 1 {
		t.Fatalf("expected GFM default, got %d extensions", len(got))
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
