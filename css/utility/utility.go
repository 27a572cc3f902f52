// Package utility generates utility classes (p-4, md:flex, bg-primary/50)
// for class names actually present in rendered markup. Design tokens come
// from the site theme so utilities and theme variables stay consistent.
package utility

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sitec/css"
)

//go:embed preflight.css
var preflight string

// Screen is a responsive breakpoint.
type Screen struct {
	Name string
	Min  string
}

// Container configures the .container component.
type Container struct {
	Center bool
	// Padding per screen name, "DEFAULT" applies below the first screen.
	Padding map[string]string
}

// Tokens is the design-token mapping utilities resolve names against.
type Tokens struct {
	Colors     map[string]string
	FontSize   map[string]string
	FontFamily map[string]string
	Radius     map[string]string
	Shadow     map[string]string
	Screens    []Screen
	Container  Container
}

// DefaultScreens are the standard breakpoints.
func DefaultScreens() []Screen {
	return []Screen{
		{"sm", "640px"},
		{"md", "768px"},
		{"lg", "1024px"},
		{"xl", "1280px"},
		{"2xl", "1536px"},
	}
}

// Generator produces utility rules for a set of class names.
type Generator struct {
	tokens  Tokens
	screens map[string]int
	log     *zap.Logger
}

// New creates generator. Missing screens are filled with defaults.
func New(tokens Tokens, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if len(tokens.Screens) == 0 {
		tokens.Screens = DefaultScreens()
	}
	g := &Generator{tokens: tokens, screens: make(map[string]int), log: log.Named("utility")}
	for i, s := range tokens.Screens {
		g.screens[s.Name] = i
	}
	return g
}

var directiveRe = regexp.MustCompile(`@tailwind\s+([A-Za-z-]+)\s*;?`)

// Expand replaces @tailwind base, components and utilities directives in src
// with generated CSS. Each layer is emitted once, at its first directive.
func (g *Generator) Expand(src string, classes []string) (string, error) {
	var (
		err  error
		done = make(map[string]bool)
	)
	out := directiveRe.ReplaceAllStringFunc(src, func(m string) string {
		name := directiveRe.FindStringSubmatch(m)[1]
		if done[name] {
			return ""
		}
		done[name] = true
		switch name {
		case "base":
			return preflight
		case "components":
			return g.Components(classes).String()
		case "utilities":
			return g.Generate(classes).String()
		default:
			err = fmt.Errorf("unknown directive @tailwind %s", name)
			return m
		}
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Preflight returns base reset rules.
func Preflight() string {
	return preflight
}

// Components returns component rules used by classes.
func (g *Generator) Components(classes []string) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	if !contains(classes, "container") {
		return sheet
	}

	c := g.tokens.Container
	decls := []css.Declaration{css.Decl("width", "100%")}
	if c.Center {
		decls = append(decls, css.Decl("margin-right", "auto"), css.Decl("margin-left", "auto"))
	}
	if p, ok := c.Padding["DEFAULT"]; ok {
		decls = append(decls, css.Decl("padding-right", p), css.Decl("padding-left", p))
	}
	sheet.AddRule(".container", decls...)

	for _, s := range g.tokens.Screens {
		decls := []css.Declaration{css.Decl("max-width", s.Min)}
		if p, ok := c.Padding[s.Name]; ok {
			decls = append(decls, css.Decl("padding-right", p), css.Decl("padding-left", p))
		}
		sheet.AddAtBlock(minWidth(s.Min), css.Rule{Selectors: []string{".container"}, Decls: decls})
	}
	return sheet
}

type generated struct {
	class       string
	media       string
	mediaRank   int
	variantRank int
	order       int
	rule        css.Rule
}

// Generate returns utility rules for every recognized class. Unknown
// classes are ignored, they belong to block stylesheets. Output order does
// not depend on order of classes.
func (g *Generator) Generate(classes []string) *css.Stylesheet {
	var (
		rules   []generated
		unknown int
	)
	for _, class := range classes {
		r, ok := g.compile(class)
		if !ok {
			unknown++
			continue
		}
		rules = append(rules, r)
	}

	sort.Slice(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		switch {
		case a.mediaRank != b.mediaRank:
			return a.mediaRank < b.mediaRank
		case a.media != b.media:
			return a.media < b.media
		case a.variantRank != b.variantRank:
			return a.variantRank < b.variantRank
		case a.order != b.order:
			return a.order < b.order
		default:
			return a.class < b.class
		}
	})

	sheet := &css.Stylesheet{}
	for i := 0; i < len(rules); {
		media := rules[i].media
		j := i
		for j < len(rules) && rules[j].media == media {
			j++
		}
		if media == "" {
			for _, r := range rules[i:j] {
				sheet.AddGroup(r.rule.Selectors, r.rule.Decls...)
			}
		} else {
			group := make([]css.Rule, 0, j-i)
			for _, r := range rules[i:j] {
				group = append(group, r.rule)
			}
			sheet.AddAtBlock(media, group...)
		}
		i = j
	}

	g.log.Debug("Utilities generated",
		zap.Int("classes", len(classes)),
		zap.Int("rules", len(rules)),
		zap.Int("ignored", unknown))
	return sheet
}

func (g *Generator) compile(class string) (generated, bool) {
	c, ok := parseCandidate(class)
	if !ok {
		return generated{}, false
	}
	decls, child, order, ok := g.resolve(c.utility, c.negative)
	if !ok {
		return generated{}, false
	}
	v, ok := g.applyVariants(c.variants)
	if !ok {
		return generated{}, false
	}
	if c.important {
		for i := range decls {
			decls[i].Value += " !important"
		}
	}
	selector := v.selector("." + css.EscapeIdent(class))
	return generated{
		class:       class,
		media:       v.media(),
		mediaRank:   v.mediaRank,
		variantRank: v.count,
		order:       order,
		rule:        css.Rule{Selectors: []string{selector + child}, Decls: decls},
	}, true
}

func minWidth(v string) string {
	return "@media (min-width: " + v + ")"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == s {
			return true
		}
	}
	return false
}
