// Package stylesheet compiles the single page stylesheet: theme variables and
// base rules, reveal rules, block styles and utilities used by rendered
// markup, then vendor prefixes and minification.
package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sitec/css"
	"sitec/css/utility"
	"sitec/resolve"
	"sitec/reveal"
	"sitec/site"
	"sitec/theme"
)

// Directives bootstrap utility layers, expanded against rendered markup.
const Directives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;"

// Options controls stylesheet post-processing.
type Options struct {
	// Browser targets for vendor prefixing, css.DefaultTargets when empty.
	Targets []string
	Minify  bool
	// Force block styles under their container attribute.
	ScopeBlocks bool
}

// Compiler builds page stylesheet.
type Compiler struct {
	resolver resolve.Resolver
	opts     Options
	scoper   *css.Rewriter
	log      *zap.Logger
}

// New creates compiler.
func New(r resolve.Resolver, opts Options, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.Targets) == 0 {
		opts.Targets = css.DefaultTargets
	}
	return &Compiler{
		resolver: r,
		opts:     opts,
		scoper:   css.NewRewriter(log),
		log:      log.Named("stylesheet"),
	}
}

// Result is compiled stylesheet with per type details for build plan.
type Result struct {
	CSS string
	// Types which contributed style source.
	Styles []string
	// Utility classes found in markup.
	Classes int
}

// Source assembles stylesheet source before utility expansion: font faces,
// root variables, base and reveal rules, utility directives, global helper
// classes and block styles in type order. Missing block styles are skipped.
func (c *Compiler) Source(ctx context.Context, s *site.Site, types []string) (*css.Stylesheet, []string, error) {
	sheet := &css.Stylesheet{}
	sheet.Append(theme.FontFaces(&s.Theme.Typography))

	root, err := theme.Root(&s.Theme)
	if err != nil {
		return nil, nil, err
	}
	sheet.Append(root)
	sheet.Append(theme.BaseRules())

	r := s.Theme.Animations.Reveal
	p, err := reveal.New(r.Type, r.Length, r.Emphasis)
	if err != nil {
		return nil, nil, err
	}
	sheet.Append(p.Rules())

	sheet.AddRaw(Directives)
	sheet.Append(theme.Globals())

	var styles []string
	for _, t := range types {
		src, err := c.resolver.Style(ctx, t)
		if err != nil {
			if errors.Is(err, resolve.ErrNotFound) {
				c.log.Debug("Block style not found", zap.String("block", t))
				continue
			}
			return nil, nil, fmt.Errorf("block %s: %w", t, err)
		}
		text := src.String()
		if c.opts.ScopeBlocks {
			scoped, err := c.scoper.Scope(src.Data, t)
			if err != nil {
				c.log.Warn("Block style left unscoped", zap.String("block", t), zap.Error(err))
			} else {
				text = scoped
			}
		}
		sheet.AddRaw(text)
		styles = append(styles, t)
	}
	return sheet, styles, nil
}

// Compile produces final stylesheet. Utilities are generated only for class
// names present in html.
func (c *Compiler) Compile(ctx context.Context, s *site.Site, types []string, html string) (*Result, error) {
	start := time.Now()

	sheet, styles, err := c.Source(ctx, s, types)
	if err != nil {
		return nil, err
	}

	classes, err := css.ExtractClasses(html)
	if err != nil {
		return nil, fmt.Errorf("unable to collect classes: %w", err)
	}

	gen := utility.New(theme.Tokens(), c.log)
	out, err := gen.Expand(sheet.String(), classes)
	if err != nil {
		return nil, err
	}

	if out, err = css.Prefix(out, c.opts.Targets); err != nil {
		return nil, err
	}
	if c.opts.Minify {
		if out, err = css.Minify(out); err != nil {
			return nil, err
		}
	}

	c.log.Debug("Stylesheet compiled",
		zap.Int("styles", len(styles)),
		zap.Int("classes", len(classes)),
		zap.Int("size", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return &Result{CSS: out, Styles: styles, Classes: len(classes)}, nil
}
