// Package bundle builds the client runtime: enhancement scripts of used
// block types are served to esbuild as virtual modules together with the
// embedded mount and reveal runtime, and bundled into a single script.
package bundle

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sitec/resolve"
	"sitec/reveal"
	"sitec/site"
)

//go:embed runtime/*.ts
var runtimeFS embed.FS

const (
	namespace = "sitec"

	mainModule     = "sitec:main"
	pageModule     = "sitec:page"
	handlersModule = "sitec:handlers"
	revealModule   = "sitec:reveal"
	runtimePrefix  = "sitec:runtime/"
	blockPrefix    = "sitec:block/"
)

// DefaultTarget is language level of produced script.
const DefaultTarget = "es2019"

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// Options controls script generation.
type Options struct {
	// Output file name, source map is named after it.
	Name      string
	Target    string
	Minify    bool
	SourceMap bool
	// When set runtime exposes page data and handler table on window.
	Global string
}

// Bundler produces client runtime script.
type Bundler struct {
	resolver resolve.Resolver
	opts     Options
	target   api.Target
	log      *zap.Logger
}

// New creates bundler.
func New(r resolve.Resolver, opts Options, log *zap.Logger) (*Bundler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Name == "" {
		opts.Name = "app.js"
	}
	if opts.Target == "" {
		opts.Target = DefaultTarget
	}
	target, ok := targets[strings.ToLower(strings.TrimSpace(opts.Target))]
	if !ok {
		return nil, fmt.Errorf("unknown script target %q", opts.Target)
	}
	return &Bundler{
		resolver: r,
		opts:     opts,
		target:   target,
		log:      log.Named("bundle"),
	}, nil
}

// Result is bundled script.
type Result struct {
	JS        string
	SourceMap string
	// Types whose enhancement scripts were bundled.
	Scripts []string
}

// Program loads enhancement scripts for types and describes runtime. Types
// without script are skipped. Any invalid script fails the whole program.
func (b *Bundler) Program(ctx context.Context, s *site.Site, types []string) (*Program, error) {
	p := &Program{Blocks: s.Blocks, Global: b.opts.Global}

	var errs error
	for _, t := range types {
		src, err := b.resolver.Script(ctx, t)
		if err != nil {
			if errors.Is(err, resolve.ErrNotFound) {
				b.log.Debug("Block script not found", zap.String("block", t))
				continue
			}
			return nil, fmt.Errorf("block %s: %w", t, err)
		}
		if err := CheckScript(src.String()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("block %s (%s): %w", t, src.Name, err))
			continue
		}
		p.Handlers = append(p.Handlers, Handler{Type: t, Module: blockPrefix + t, Source: src.String()})
	}
	if errs != nil {
		return nil, errs
	}

	r := s.Theme.Animations.Reveal
	params, err := reveal.New(r.Type, r.Length, r.Emphasis)
	if err != nil {
		return nil, err
	}
	if params.Enabled() {
		rt := params.Runtime()
		p.Reveal = &rt
	}
	return p, nil
}

// Build bundles program into single browser script.
func (b *Bundler) Build(p *Program) (*Result, error) {
	sourcemap := api.SourceMapNone
	if b.opts.SourceMap {
		sourcemap = api.SourceMapLinked
	}
	res := api.Build(api.BuildOptions{
		EntryPoints:       []string{mainModule},
		Outfile:           b.opts.Name,
		Bundle:            true,
		Write:             false,
		Platform:          api.PlatformBrowser,
		Format:            api.FormatIIFE,
		Target:            b.target,
		Charset:           api.CharsetUTF8,
		MinifyWhitespace:  b.opts.Minify,
		MinifyIdentifiers: b.opts.Minify,
		MinifySyntax:      b.opts.Minify,
		Sourcemap:         sourcemap,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{b.plugin(p)},
	})
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("unable to bundle script: %s", messages(res.Errors))
	}
	for _, w := range res.Warnings {
		b.log.Warn("Bundler warning", zap.String("warning", messages([]api.Message{w})))
	}

	out := &Result{Scripts: p.Types()}
	for _, f := range res.OutputFiles {
		switch path.Ext(f.Path) {
		case ".js":
			out.JS = string(f.Contents)
		case ".map":
			out.SourceMap = string(f.Contents)
		}
	}
	return out, nil
}

// Bundle loads scripts of types and builds runtime.
func (b *Bundler) Bundle(ctx context.Context, s *site.Site, types []string) (*Result, error) {
	start := time.Now()
	p, err := b.Program(ctx, s, types)
	if err != nil {
		return nil, err
	}
	res, err := b.Build(p)
	if err != nil {
		return nil, err
	}
	b.log.Debug("Script bundled",
		zap.Strings("scripts", res.Scripts),
		zap.Bool("reveal", p.Reveal != nil),
		zap.Int("size", len(res.JS)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// plugin serves every module of the program from memory.
func (b *Bundler) plugin(p *Program) api.Plugin {
	return api.Plugin{
		Name: "sitec-virtual",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `^sitec:`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: args.Path, Namespace: namespace}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: namespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents, loader, err := b.load(p, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					return api.OnLoadResult{Contents: &contents, Loader: loader}, nil
				})
		},
	}
}

func (b *Bundler) load(p *Program, module string) (string, api.Loader, error) {
	switch {
	case module == mainModule:
		return embedded("main")
	case module == pageModule:
		data, err := p.pageData()
		return data, api.LoaderJSON, err
	case module == handlersModule:
		return p.handlersModule(), api.LoaderTS, nil
	case module == revealModule:
		if p.Reveal == nil {
			return embedded("noreveal")
		}
		return embedded("reveal")
	case strings.HasPrefix(module, runtimePrefix):
		return embedded(strings.TrimPrefix(module, runtimePrefix))
	case strings.HasPrefix(module, blockPrefix):
		if h, ok := p.handler(module); ok {
			return h.Source, api.LoaderTS, nil
		}
	}
	return "", api.LoaderNone, fmt.Errorf("unknown module %q", module)
}

func embedded(name string) (string, api.Loader, error) {
	data, err := runtimeFS.ReadFile("runtime/" + name + ".ts")
	if err != nil {
		return "", api.LoaderNone, fmt.Errorf("runtime module %s: %w", name, err)
	}
	return string(data), api.LoaderTS, nil
}

func messages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
		} else {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "; ")
}
