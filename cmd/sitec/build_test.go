package main

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"sitec/archive"
	"sitec/config"
	"sitec/state"
)

const testSite = `
id: Spring Sale
theme:
  rounded: md
  shadows: sm
  colors: {primary: "#0a0", primaryText: "#fff", background: "#fff", surface: "#eee", text: "#111", mutedText: "#666", border: "#ddd", link: "#00f"}
  spacing: {elements: md, sections: md, align: {desktop: left, mobile: center}}
  typography:
    bodyFont: {type: native, name: system-ui}
    sizing: md
  animations:
    reveal: {type: fade}
blocks:
  - id: h1
    type: hero
    fields: {title: Spring is here}
`

func testLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.html":                  `<!doctype html><html lang="{{ .Lang }}"><head>{{ range .Head }}{{ . }}{{ end }}</head><body>{{ .Body }}<script src="{{ .Script }}"></script></body></html>`,
		"blocks/hero/template.html": `<h1 class="p-4">{{ .Fields.title }}</h1>`,
		"blocks/hero/style.css":     `.hero-title { color: var(--color-primary); }`,
		"blocks/hero/enhance.ts":    `export function enhance(ctx: any) { ctx.el.dataset.ready = "1"; }`,
	}
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Compile.Blocks.Path = testLibrary(t)
	cfg.Compile.Script.Href = "/js/app.js"
	return &state.LocalEnv{Cfg: cfg, Log: zaptest.NewLogger(t)}
}

func writeSite(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "spring.yaml")
	if err := os.WriteFile(name, []byte(testSite), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestBuild(t *testing.T) {
	env := testEnv(t)
	c, out, err := build(context.Background(), env, writeSite(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if !strings.Contains(out.HTML, "Spring is here") || !strings.Contains(out.HTML, `src="/js/app.js"`) {
		t.Errorf("HTML = %s", out.HTML)
	}
	if !strings.Contains(out.CSS, ".p-4") || !strings.Contains(out.CSS, ".hero-title") {
		t.Errorf("CSS = %s", out.CSS)
	}
	if !strings.Contains(out.JS, "ready") {
		t.Errorf("JS does not contain enhancement")
	}

	var names []string
	for _, e := range c.Entries(out) {
		names = append(names, e.Name)
	}
	if got := strings.Join(names, ","); got != "index.html,styles.css,js/app.js" {
		t.Errorf("Entries() = %s", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	env := testEnv(t)
	if _, _, err := build(context.Background(), env, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("build() with missing site expected error")
	}

	env.Cfg.Compile.Blocks.Path = filepath.Join(t.TempDir(), "nowhere")
	if _, _, err := build(context.Background(), env, writeSite(t)); err == nil {
		t.Error("build() with missing library expected error")
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		dest, site, id string
		want           string
	}{
		{"out/site.ZIP", "a.json", "x", "out/site.ZIP"},
		{"out", "a.json", "Spring Sale", filepath.Join("out", "spring-sale.zip")},
		{"out", "dir/My Page.yaml", "", filepath.Join("out", "my-page.zip")},
		{"out", "dir/!!!.yaml", "", filepath.Join("out", "site.zip")},
	}
	for _, tt := range tests {
		if got := archiveName(tt.dest, tt.site, tt.id); got != tt.want {
			t.Errorf("archiveName(%q, %q, %q) = %q, want %q", tt.dest, tt.site, tt.id, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	entries := []archive.Entry{
		{Name: "index.html", Data: []byte("<html>")},
		{Name: "assets/app.js", Data: []byte("js")},
	}
	if err := writeArtifacts(dir, entries, false); err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "assets", "app.js"))
	if err != nil || string(data) != "js" {
		t.Errorf("assets/app.js = %q, %v", data, err)
	}

	entries[0].Data = []byte("<html>v2")
	if err := writeArtifacts(dir, entries, false); err == nil {
		t.Error("writeArtifacts() over existing files expected error")
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "index.html")); string(data) != "<html>" {
		t.Errorf("index.html changed without overwrite: %q", data)
	}
	if err := writeArtifacts(dir, entries, true); err != nil {
		t.Fatalf("writeArtifacts() with overwrite error = %v", err)
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "index.html")); string(data) != "<html>v2" {
		t.Errorf("index.html = %q", data)
	}
}

func TestBuild_Archive(t *testing.T) {
	env := testEnv(t)
	c, out, err := build(context.Background(), env, writeSite(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	name := archiveName(t.TempDir(), "spring.yaml", out.Plan.Site)
	if err := archive.WriteBundle(name, out.Stamp, c.Entries(out)...); err != nil {
		t.Fatalf("WriteBundle() error = %v", err)
	}
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	if len(zr.File) != 3 || zr.File[0].Name != "index.html" {
		t.Errorf("archive files = %d, first %s", len(zr.File), zr.File[0].Name)
	}
}
