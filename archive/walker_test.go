package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

type zipEntry struct {
	name    string
	content string
}

func writeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	for _, f := range entries {
		fw, err := w.Create(f.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", f.name, err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", f.name, err)
		}
	}
	w.Close()
	zipFile.Close()
	return zipPath
}

func openZip(t *testing.T, path string) *zip.ReadCloser {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open zip: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestFiles(t *testing.T) {
	r := openZip(t, writeZip(t, []zipEntry{
		{"blocks/hero/template.html", "hero"},
		{"blocks/hero/style.css", "css"},
		{"blocks/faq/template.html", "faq"},
		{"blocks/.DS_Store", ""},
		{"__MACOSX/blocks/._hero", ""},
		{"app.html", "shell"},
		{"icons/star.svg", "<svg/>"},
	}))

	tests := []struct {
		prefix string
		want   int
	}{
		{"blocks/", 3},
		{"blocks/hero/", 2},
		{"icons/", 1},
		{"nonexistent/", 0},
		{"", 5},
	}
	for _, tt := range tests {
		var visited []string
		for f, err := range files(&r.Reader, tt.prefix) {
			if err != nil {
				t.Fatalf("files(%q) error = %v", tt.prefix, err)
			}
			visited = append(visited, f.Name)
		}
		if len(visited) != tt.want {
			t.Errorf("files(%q) visited %v, want %d", tt.prefix, visited, tt.want)
		}
	}

	// early stop
	n := 0
	for range files(&r.Reader, "blocks/") {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterations after break = %d", n)
	}
}

func TestFiles_UnsafePath(t *testing.T) {
	r, err := zip.OpenReader(writeZip(t, []zipEntry{
		{"blocks/ok.html", "ok"},
		{"../evil.html", "evil"},
	}))
	if err != nil {
		// rejected by archive/zip itself (GODEBUG zipinsecurepath=0)
		return
	}
	defer r.Close()

	var last error
	for _, err := range files(&r.Reader, "") {
		last = err
	}
	if last == nil {
		t.Error("Expected error for path traversal entry")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"blocks/hero/template.html", true},
		{"a/b/../c", false},
		{"/etc/passwd", false},
		{`\windows`, false},
		{"..", false},
		{"dots..in/name", true},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		lib, err := Open(writeZip(t, []zipEntry{
			{"app.html", "shell"},
			{"blocks/hero/template.html", "hero"},
		}))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer lib.Close()

		if lib.Root() != "" {
			t.Errorf("Root() = %q, want empty", lib.Root())
		}
		data, err := fs.ReadFile(lib, "blocks/hero/template.html")
		if err != nil || string(data) != "hero" {
			t.Errorf("ReadFile() = %q, %v", data, err)
		}
	})

	t.Run("blocks only", func(t *testing.T) {
		lib, err := Open(writeZip(t, []zipEntry{
			{"blocks/hero/template.html", "hero"},
		}))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer lib.Close()

		if lib.Root() != "" {
			t.Errorf("Root() = %q, want empty", lib.Root())
		}
	})

	t.Run("nested", func(t *testing.T) {
		lib, err := Open(writeZip(t, []zipEntry{
			{"__MACOSX/mysite/._app.html", ""},
			{"mysite/app.html", "shell"},
			{"mysite/blocks/faq/template.html", "faq"},
			{"mysite/blocks/hero/template.html", "hero"},
		}))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer lib.Close()

		if lib.Root() != "mysite" {
			t.Errorf("Root() = %q, want mysite", lib.Root())
		}
		data, err := fs.ReadFile(lib, "app.html")
		if err != nil || string(data) != "shell" {
			t.Errorf("ReadFile() = %q, %v", data, err)
		}
		names, err := lib.Files("blocks")
		if err != nil {
			t.Fatalf("Files() error = %v", err)
		}
		want := []string{"blocks/faq/template.html", "blocks/hero/template.html"}
		if !slices.Equal(names, want) {
			t.Errorf("Files() = %v, want %v", names, want)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(bad, []byte("not a zip file"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(bad); err == nil {
			t.Error("Expected error for invalid zip file")
		}
		if _, err := Open("/nonexistent/file.zip"); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})
}

func TestWriteBundle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist", "site.zip")
	stamp := time.Date(2025, 12, 6, 12, 0, 0, 0, time.UTC)

	err := WriteBundle(out, stamp,
		Entry{Name: "index.html", Data: []byte("<html></html>")},
		Entry{Name: "base.css", Data: []byte("body{}")},
		Entry{Name: "runtime.js", Data: bytes.Repeat([]byte("x"), 4096)},
	)
	if err != nil {
		t.Fatalf("WriteBundle() error = %v", err)
	}

	r := openZip(t, out)
	if len(r.File) != 3 {
		t.Fatalf("entries = %d, want 3", len(r.File))
	}
	if r.File[0].Name != "index.html" || r.File[2].Name != "runtime.js" {
		t.Errorf("entry order = %s, %s", r.File[0].Name, r.File[2].Name)
	}
	for _, f := range r.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("%s has data descriptor flag set", f.Name)
		}
	}
	rc, err := r.File[1].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "body{}" {
		t.Errorf("base.css = %q", data)
	}

	left, _ := filepath.Glob(filepath.Join(filepath.Dir(out), ".bundle-*"))
	if len(left) != 0 {
		t.Errorf("temporary files left behind: %v", left)
	}
}

func TestWriteBundle_UnsafeName(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site.zip")
	if err := WriteBundle(out, time.Now(), Entry{Name: "../x", Data: nil}); err == nil {
		t.Error("expected error for unsafe entry name")
	}
}
