// Package render produces page HTML: every block instance is rendered with
// its type template, wrapped into a container and placed into the page shell.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"sitec/icons"
	"sitec/resolve"
	"sitec/site"
)

// ShellMissing is returned as page HTML when shell template does not exist.
const ShellMissing = "App shell not found"

// Renderer renders pages using templates supplied by resolver.
type Renderer struct {
	resolver resolve.Resolver
	icons    *icons.Set
	md       goldmark.Markdown
	log      *zap.Logger
}

// New creates renderer. Icon set may be nil, icon helper emits nothing then.
func New(r resolve.Resolver, set *icons.Set, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		resolver: r,
		icons:    set,
		md:       newMarkdown(),
		log:      log.Named("render"),
	}
}

// Page is everything needed to render a site besides templates.
type Page struct {
	Site  *site.Site
	Types []string // distinct block types in order of first appearance
	// Head snippets contributed by other stages, injected as is.
	FontLinks      []string
	StructuredData string
	Stylesheet     string // stylesheet href
	Script         string // script href, exposed to shell
	CacheBust      bool
	Stamp          time.Time
}

// Instance is block template context.
type Instance struct {
	ID       string
	Type     string
	Fields   map[string]any
	Data     map[string]any
	Manifest any
}

// Shell is page shell template context.
type Shell struct {
	Body   template.HTML
	Head   []template.HTML
	Date   int64 // compile time, unix milliseconds
	Stamp  time.Time
	Lang   string
	Script string
	Header map[string]any
	Footer map[string]any
}

// Result is rendered page with per type details for build plan.
type Result struct {
	HTML string
	// Types which had a usable template.
	Templates []string
	// Instances dropped because their render failed.
	Failed []string
	// Rendered instance count.
	Rendered int
	// Shell was found.
	Shell bool
}

type blockTemplate struct {
	tmpl     *template.Template
	manifest any
}

// Render renders page. Problems with individual block types and instances are
// logged and skipped, a missing shell degrades output to ShellMissing. Shell
// which fails to parse or execute is an error.
func (r *Renderer) Render(ctx context.Context, p Page) (*Result, error) {
	start := time.Now()
	funcs := r.funcs()
	res := &Result{}

	templates := make(map[string]blockTemplate, len(p.Types))
	for _, t := range p.Types {
		bt, err := r.load(ctx, t, funcs)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log.Warn("Block type excluded", zap.String("block", t), zap.Error(err))
			continue
		}
		templates[t] = bt
		res.Templates = append(res.Templates, t)
	}

	var body strings.Builder
	for _, b := range p.Site.Blocks {
		bt, ok := templates[b.Type]
		if !ok {
			continue
		}
		markup, err := r.instance(bt, b)
		if err != nil {
			r.log.Warn("Block instance skipped", zap.String("block", b.Type), zap.String("id", b.ID), zap.Error(err))
			res.Failed = append(res.Failed, b.ID)
			continue
		}
		body.WriteString(Wrap(b, markup))
		res.Rendered++
	}

	src, err := r.resolver.Shell(ctx)
	if err != nil {
		if !errors.Is(err, resolve.ErrNotFound) {
			return nil, fmt.Errorf("unable to load shell: %w", err)
		}
		r.log.Warn("Page shell not found", zap.Error(err))
		res.HTML = ShellMissing
		return res, nil
	}
	res.Shell = true

	shell, err := template.New("shell").Funcs(funcs).Parse(src.String())
	if err != nil {
		return nil, fmt.Errorf("unable to parse shell %s: %w", src.Name, err)
	}

	data := Shell{
		Body:   template.HTML(body.String()),
		Head:   Head(p),
		Date:   p.Stamp.UnixMilli(),
		Stamp:  p.Stamp,
		Lang:   p.Site.Language().String(),
		Script: p.Script,
		Header: p.Site.Header.Native(),
		Footer: p.Site.Footer.Native(),
	}
	var out bytes.Buffer
	if err := shell.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("unable to render shell %s: %w", src.Name, err)
	}
	res.HTML = out.String()

	r.log.Debug("Page rendered",
		zap.Int("types", len(res.Templates)),
		zap.Int("instances", res.Rendered),
		zap.Int("failed", len(res.Failed)),
		zap.Int("size", len(res.HTML)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (r *Renderer) load(ctx context.Context, blockType string, funcs template.FuncMap) (blockTemplate, error) {
	src, err := r.resolver.Template(ctx, blockType)
	if err != nil {
		return blockTemplate{}, err
	}
	tmpl, err := template.New(blockType).Funcs(funcs).Parse(src.String())
	if err != nil {
		return blockTemplate{}, fmt.Errorf("unable to parse %s: %w", src.Name, err)
	}

	bt := blockTemplate{tmpl: tmpl}
	m, err := r.resolver.Manifest(ctx, blockType)
	switch {
	case err == nil:
		if err := json.Unmarshal(m.Data, &bt.manifest); err != nil {
			r.log.Warn("Bad block manifest ignored", zap.String("block", blockType), zap.Error(err))
			bt.manifest = nil
		}
	case errors.Is(err, resolve.ErrNotFound):
		r.log.Debug("Block manifest not found", zap.String("block", blockType))
	default:
		return blockTemplate{}, err
	}
	return bt, nil
}

// instance renders single block. Helper panics are turned into errors.
func (r *Renderer) instance(bt blockTemplate, b site.Block) (markup string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("template panic: %v", p)
		}
	}()
	var buf bytes.Buffer
	err = bt.tmpl.Execute(&buf, Instance{
		ID:       b.ID,
		Type:     b.Type,
		Fields:   b.Fields.Native(),
		Data:     b.Data.Native(),
		Manifest: bt.manifest,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Wrap places rendered instance markup into its container. Both attributes
// are needed: type attribute drives styles and behavior lookup, id attribute
// makes every instance addressable.
func Wrap(b site.Block, markup string) string {
	return `<section data-block-id="` + html.EscapeString(b.ID) + `" data-block="` + html.EscapeString(b.Type) + `">` +
		"\n" + markup + "\n</section>\n\n"
}

// Head returns ordered head snippets: font links, stylesheet link and
// structured data.
func Head(p Page) []template.HTML {
	var head []template.HTML
	for _, l := range p.FontLinks {
		if strings.TrimSpace(l) != "" {
			head = append(head, template.HTML(l))
		}
	}
	if p.Stylesheet != "" {
		href := p.Stylesheet
		if p.CacheBust {
			sep := "?"
			if strings.Contains(href, "?") {
				sep = "&"
			}
			href += sep + "m=" + strconv.FormatInt(p.Stamp.UnixMilli(), 10)
		}
		head = append(head, template.HTML(`<link rel="stylesheet" href="`+html.EscapeString(href)+`">`))
	}
	if p.StructuredData != "" {
		head = append(head, template.HTML(p.StructuredData))
	}
	return head
}
