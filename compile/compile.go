// Package compile runs the whole site pipeline: block types are deduplicated,
// instances rendered into the page, the stylesheet compiled against rendered
// markup and block enhancement scripts bundled into the client runtime.
package compile

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"

	"sitec/archive"
	"sitec/compile/bundle"
	"sitec/compile/render"
	"sitec/compile/stylesheet"
	"sitec/icons"
	"sitec/jsonld"
	"sitec/resolve"
	"sitec/site"
	"sitec/theme"
)

// Options controls all compile stages.
type Options struct {
	StylesheetHref string
	ScriptHref     string
	CacheBust      bool
	MinifyHTML     bool
	Stylesheet     stylesheet.Options
	Script         bundle.Options
}

// Compiler is reusable, every Compile call is independent.
type Compiler struct {
	opts    Options
	render  *render.Renderer
	styles  *stylesheet.Compiler
	bundler *bundle.Bundler
	log     *zap.Logger

	// clock, replaced in tests
	now func() time.Time
}

// New creates compiler over block artifacts supplied by resolver.
func New(r resolve.Resolver, set *icons.Set, opts Options, log *zap.Logger) (*Compiler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.StylesheetHref == "" {
		opts.StylesheetHref = "/styles.css"
	}
	if opts.ScriptHref == "" {
		opts.ScriptHref = "/app.js"
	}
	if opts.Script.Name == "" {
		opts.Script.Name = path.Base(artifactName(opts.ScriptHref))
	}

	bundler, err := bundle.New(r, opts.Script, log)
	if err != nil {
		return nil, err
	}
	return &Compiler{
		opts:    opts,
		render:  render.New(r, set, log),
		styles:  stylesheet.New(r, opts.Stylesheet, log),
		bundler: bundler,
		log:     log.Named("compile"),
		now:     time.Now,
	}, nil
}

// Output is result of a single compile run.
type Output struct {
	HTML      string
	CSS       string
	JS        string
	SourceMap string
	BuildID   uuid.UUID
	Stamp     time.Time
	Plan      *Plan
}

// Compile produces page, stylesheet and script for site. Authoring problems
// with individual blocks are logged and absorbed, invalid enhancement
// scripts, theme errors and transform failures are returned.
func (c *Compiler) Compile(ctx context.Context, s *site.Site) (*Output, error) {
	start := c.now()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate build id: %w", err)
	}
	out := &Output{BuildID: id, Stamp: start}

	types := s.Types()
	c.log.Debug("Block types collected", zap.Strings("types", types), zap.Int("instances", len(s.Blocks)))

	structured, err := jsonld.Head(s.Blocks)
	if err != nil {
		return nil, err
	}

	page, err := c.render.Render(ctx, render.Page{
		Site:           s,
		Types:          types,
		FontLinks:      theme.FontLinks(&s.Theme.Typography),
		StructuredData: structured,
		Stylesheet:     c.opts.StylesheetHref,
		Script:         c.opts.ScriptHref,
		CacheBust:      c.opts.CacheBust,
		Stamp:          start,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to render page: %w", err)
	}

	styles, err := c.styles.Compile(ctx, s, types, page.HTML)
	if err != nil {
		return nil, fmt.Errorf("unable to compile stylesheet: %w", err)
	}

	script, err := c.bundler.Bundle(ctx, s, types)
	if err != nil {
		return nil, fmt.Errorf("unable to bundle script: %w", err)
	}

	out.HTML = page.HTML
	if c.opts.MinifyHTML && page.Shell {
		if out.HTML, err = MinifyHTML(out.HTML); err != nil {
			return nil, err
		}
	}
	out.CSS = styles.CSS
	out.JS = script.JS
	out.SourceMap = script.SourceMap
	out.Plan = newPlan(s, types, page, styles, script)
	out.Plan.BuildID = id
	out.Plan.Stamp = start

	c.log.Debug("Site compiled",
		zap.Stringer("build", id),
		zap.Int("html", len(out.HTML)),
		zap.Int("css", len(out.CSS)),
		zap.Int("js", len(out.JS)),
		zap.Duration("elapsed", c.now().Sub(start)))
	return out, nil
}

// MinifyHTML minifies page keeping document structure, end tags and
// attribute quotes intact.
func MinifyHTML(src string) (string, error) {
	m := minify.New()
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	out, err := m.String("text/html", src)
	if err != nil {
		return "", fmt.Errorf("unable to minify page: %w", err)
	}
	return out, nil
}

// Entries returns artifacts as they are laid out for deployment, named after
// configured hrefs.
func (c *Compiler) Entries(out *Output) []archive.Entry {
	js := artifactName(c.opts.ScriptHref)
	entries := []archive.Entry{
		{Name: "index.html", Data: []byte(out.HTML)},
		{Name: artifactName(c.opts.StylesheetHref), Data: []byte(out.CSS)},
		{Name: js, Data: []byte(out.JS)},
	}
	if out.SourceMap != "" {
		entries = append(entries, archive.Entry{Name: js + ".map", Data: []byte(out.SourceMap)})
	}
	return entries
}

// Options returns effective options.
func (c *Compiler) Options() Options {
	return c.opts
}

// artifactName turns href into relative file name dropping query.
func artifactName(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.TrimLeft(href, "/")
}
