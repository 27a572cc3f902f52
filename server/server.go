// Package server serves compiled site artifacts and static assets.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"sitec/compile"
)

const shutdownTimeout = 5 * time.Second

// Options configures artifact locations.
type Options struct {
	StylesheetHref string
	ScriptHref     string
	// Static assets, nil disables static hosting.
	Static fs.FS
}

// Server serves single compile output.
type Server struct {
	out    *compile.Output
	opts   Options
	router chi.Router
	log    *zap.Logger
}

// New creates server for compile output.
func New(out *compile.Output, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{out: out, opts: opts, log: log.Named("server")}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.artifact("text/html; charset=utf-8", out.HTML))
	r.Get(route(opts.StylesheetHref), s.artifact("text/css; charset=utf-8", out.CSS))
	r.Get(route(opts.ScriptHref), s.artifact("text/javascript; charset=utf-8", out.JS))
	if out.SourceMap != "" {
		r.Get(route(opts.ScriptHref)+".map", s.artifact("application/json", out.SourceMap))
	}
	if opts.Static != nil {
		r.Get("/*", s.static)
	}
	s.router = r
	return s
}

// Handler returns request router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("Serving site", zap.String("addr", addr), zap.Stringer("build", s.out.BuildID))

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("unable to shutdown server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("Server stopped")
	return nil
}

func (s *Server) artifact(contentType, body string) http.HandlerFunc {
	etag := `"` + s.out.BuildID.String() + `"`
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("ETag", etag)
		http.ServeContent(w, r, "", s.out.Stamp, strings.NewReader(body))
	}
}

func (s *Server) static(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	info, err := fs.Stat(s.opts.Static, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	data, err := fs.ReadFile(s.opts.Static, name)
	if err != nil {
		s.log.Warn("Unable to read static file", zap.String("file", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentType(name, data))
	http.ServeContent(w, r, name, info.ModTime(), bytes.NewReader(data))
}

// ContentType detects media type of static file: by content signature for
// binary formats, by extension otherwise.
func ContentType(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("size", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// route turns href into router path dropping query and fragment.
func route(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return "/" + strings.TrimLeft(href, "/")
}
