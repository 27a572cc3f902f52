package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"sitec/compile"
)

// smallest valid png
var pngData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func testServer(t *testing.T) *Server {
	t.Helper()
	out := &compile.Output{
		HTML:      "<!doctype html><p>page</p>",
		CSS:       ":root{--x:1}",
		JS:        "(()=>{})();",
		SourceMap: `{"version":3}`,
		BuildID:   uuid.Must(uuid.NewV7()),
		Stamp:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	return New(out, Options{
		StylesheetHref: "/styles.css?v=2",
		ScriptHref:     "assets/app.js",
		Static: fstest.MapFS{
			"img/logo":      &fstest.MapFile{Data: pngData},
			"img/icon.svg":  &fstest.MapFile{Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
			"docs/note.txt": &fstest.MapFile{Data: []byte("hello")},
		},
	}, zaptest.NewLogger(t))
}

func get(t *testing.T, h http.Handler, target string, hdr ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestServer(t *testing.T) {
	h := testServer(t).Handler()
	tests := []struct {
		path        string
		status      int
		contentType string
		body        string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8", "<!doctype html><p>page</p>"},
		{"/styles.css", http.StatusOK, "text/css; charset=utf-8", ":root{--x:1}"},
		{"/assets/app.js", http.StatusOK, "text/javascript; charset=utf-8", "(()=>{})();"},
		{"/assets/app.js.map", http.StatusOK, "application/json", `{"version":3}`},
		{"/img/logo", http.StatusOK, "image/png", string(pngData)},
		{"/img/icon.svg", http.StatusOK, "image/svg+xml", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
		{"/img", http.StatusNotFound, "", ""},
		{"/missing.css", http.StatusNotFound, "", ""},
		{"/../docs/note.txt", http.StatusOK, "text/plain; charset=utf-8", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := get(t, h, tt.path)
			defer res.Body.Close()
			if res.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if got := res.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			body, _ := io.ReadAll(res.Body)
			if string(body) != tt.body {
				t.Errorf("body = %q", body)
			}
		})
	}
}

func TestServer_NotModified(t *testing.T) {
	s := testServer(t)
	res := get(t, s.Handler(), "/")
	etag := res.Header.Get("ETag")
	res.Body.Close()
	if !strings.Contains(etag, s.out.BuildID.String()) {
		t.Fatalf("ETag = %q", etag)
	}
	res = get(t, s.Handler(), "/", "If-None-Match", etag)
	res.Body.Close()
	if res.StatusCode != http.StatusNotModified {
		t.Errorf("status = %d, want 304", res.StatusCode)
	}
}

func TestServer_NoStatic(t *testing.T) {
	s := New(&compile.Output{HTML: "x"}, Options{StylesheetHref: "/s.css", ScriptHref: "/a.js"}, nil)
	for _, p := range []string{"/img/logo", "/a.js.map"} {
		res := get(t, s.Handler(), p)
		res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d", p, res.StatusCode)
		}
	}
}

func TestListenAndServe(t *testing.T) {
	s := testServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"logo.bin", pngData, "image/png"},
		{"style.css", []byte("body{}"), "text/css; charset=utf-8"},
		{"data", []byte("plain words"), "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.name, tt.data); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
