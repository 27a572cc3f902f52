// Package resolve locates per block type artifacts (template, style,
// enhancement script, manifest) and the page shell.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"sitec/archive"
	"sitec/common"
)

// ErrNotFound is returned when optional artifact does not exist.
var ErrNotFound = errors.New("not found")

// Source is a loaded artifact. Name is used in diagnostics only.
type Source struct {
	Name string
	Data []byte
}

func (s Source) String() string { return string(s.Data) }

// Resolver is everything compile stages know about where block artifacts
// come from. Missing artifacts are reported with errors satisfying
// errors.Is(err, ErrNotFound).
type Resolver interface {
	Template(ctx context.Context, blockType string) (Source, error)
	Style(ctx context.Context, blockType string) (Source, error)
	Script(ctx context.Context, blockType string) (Source, error)
	Manifest(ctx context.Context, blockType string) (Source, error)
	Shell(ctx context.Context) (Source, error)
}

// Layout names artifact files inside a block directory.
type Layout struct {
	Dir      string
	Template string
	Style    string
	Script   string
	Manifest string
	Shell    string
}

// LayoutFor returns file naming convention for the library layout.
func LayoutFor(l common.Layout) (Layout, error) {
	switch l {
	case common.LayoutCurrent:
		return Layout{
			Dir:      "blocks",
			Template: "template.html",
			Style:    "style.css",
			Script:   "enhance.ts",
			Manifest: "schema.json",
			Shell:    "app.html",
		}, nil
	case common.LayoutLegacy:
		return Layout{
			Dir:      "blocks",
			Template: "template.tmpl",
			Style:    "template.css",
			Script:   "template.ts",
			Manifest: "schema.json",
			Shell:    "app.tmpl",
		}, nil
	default:
		return Layout{}, fmt.Errorf("unknown library layout %q", l)
	}
}

// FS resolves artifacts from a file system using fixed layout.
type FS struct {
	fsys   fs.FS
	layout Layout
	closer io.Closer
	log    *zap.Logger
}

// NewFS creates resolver over fsys.
func NewFS(fsys fs.FS, layout common.Layout, log *zap.Logger) (*FS, error) {
	l, err := LayoutFor(layout)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FS{fsys: fsys, layout: l, log: log.Named("resolve")}, nil
}

// Open creates resolver for block library at path, which could be either a
// directory or a zip archive.
func Open(name string, layout common.Layout, log *zap.Logger) (*FS, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("unable to access block library: %w", err)
	}

	var (
		fsys   fs.FS
		closer io.Closer
	)
	switch {
	case fi.IsDir():
		fsys = os.DirFS(name)
	case strings.EqualFold(path.Ext(name), ".zip"):
		lib, err := archive.Open(name)
		if err != nil {
			return nil, err
		}
		fsys, closer = lib, lib
	default:
		return nil, fmt.Errorf("block library %s must be a directory or a zip archive", name)
	}

	r, err := NewFS(fsys, layout, log)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	r.closer = closer
	r.log.Debug("Block library opened", zap.String("path", name), zap.Stringer("layout", layout))
	return r, nil
}

// Close releases underlying archive if any.
func (r *FS) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// FS returns underlying file system.
func (r *FS) FS() fs.FS {
	return r.fsys
}

func (r *FS) Template(ctx context.Context, blockType string) (Source, error) {
	return r.block(ctx, blockType, r.layout.Template)
}

func (r *FS) Style(ctx context.Context, blockType string) (Source, error) {
	return r.block(ctx, blockType, r.layout.Style)
}

func (r *FS) Script(ctx context.Context, blockType string) (Source, error) {
	return r.block(ctx, blockType, r.layout.Script)
}

func (r *FS) Manifest(ctx context.Context, blockType string) (Source, error) {
	return r.block(ctx, blockType, r.layout.Manifest)
}

func (r *FS) Shell(ctx context.Context) (Source, error) {
	return r.read(ctx, r.layout.Shell)
}

// Types lists block types present in the library.
func (r *FS) Types() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, r.layout.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var types []string
	for _, e := range entries {
		if e.IsDir() && validType(e.Name()) {
			types = append(types, e.Name())
		}
	}
	return types, nil
}

func (r *FS) block(ctx context.Context, blockType, file string) (Source, error) {
	if !validType(blockType) {
		return Source{}, fmt.Errorf("block type %q: %w", blockType, ErrNotFound)
	}
	return r.read(ctx, path.Join(r.layout.Dir, blockType, file))
}

func (r *FS) read(ctx context.Context, name string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Source{}, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return Source{}, fmt.Errorf("unable to read %s: %w", name, err)
	}
	r.log.Debug("Artifact loaded", zap.String("name", name), zap.Int("size", len(data)))
	return Source{Name: name, Data: data}, nil
}

// block types are used as path elements.
func validType(t string) bool {
	return t != "" && t != "." && t != ".." && !strings.ContainsAny(t, `/\`) && fs.ValidPath(t)
}
