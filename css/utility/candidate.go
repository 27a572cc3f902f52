package utility

import (
	"strings"

	"sitec/css"
)

type candidate struct {
	variants  []string
	utility   string
	important bool
	negative  bool
}

// parseCandidate splits "md:hover:!-mt-2" into variants and utility.
func parseCandidate(class string) (candidate, bool) {
	parts := splitTop(class, ':')
	if len(parts) == 0 {
		return candidate{}, false
	}
	c := candidate{variants: parts[:len(parts)-1], utility: parts[len(parts)-1]}
	for _, v := range c.variants {
		if v == "" {
			return candidate{}, false
		}
	}
	if strings.HasPrefix(c.utility, "!") {
		c.important, c.utility = true, c.utility[1:]
	} else if strings.HasSuffix(c.utility, "!") {
		c.important, c.utility = true, c.utility[:len(c.utility)-1]
	}
	if strings.HasPrefix(c.utility, "-") {
		c.negative, c.utility = true, c.utility[1:]
	}
	return c, c.utility != ""
}

// splitTop splits s on sep outside of square brackets and parentheses.
func splitTop(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

var pseudoVariants = map[string]string{
	"hover":         ":hover",
	"focus":         ":focus",
	"focus-visible": ":focus-visible",
	"focus-within":  ":focus-within",
	"active":        ":active",
	"visited":       ":visited",
	"disabled":      ":disabled",
	"checked":       ":checked",
	"first":         ":first-child",
	"last":          ":last-child",
	"odd":           ":nth-child(odd)",
	"even":          ":nth-child(even)",
	"open":          "[open]",
	"placeholder":   "::placeholder",
	"before":        "::before",
	"after":         "::after",
}

var groupVariants = map[string]string{
	"group-hover":        ".group:hover",
	"group-focus":        ".group:focus",
	"group-focus-within": ".group:focus-within",
	"peer-checked":       ".peer:checked ~",
}

var mediaVariants = map[string]struct {
	query string
	rank  int
}{
	"motion-safe":   {"(prefers-reduced-motion: no-preference)", 1},
	"motion-reduce": {"(prefers-reduced-motion: reduce)", 2},
}

type variants struct {
	screen    string
	extra     []string
	mediaRank int
	count     int
	suffix    string
	prefix    string
}

func (v variants) selector(base string) string {
	s := base + v.suffix
	if v.prefix != "" {
		s = v.prefix + " " + s
	}
	return s
}

func (v variants) media() string {
	var conds []string
	if v.screen != "" {
		conds = append(conds, "(min-width: "+v.screen+")")
	}
	conds = append(conds, v.extra...)
	if len(conds) == 0 {
		return ""
	}
	return "@media " + strings.Join(conds, " and ")
}

// applyVariants resolves variant chain, unknown variant invalidates the
// class.
func (g *Generator) applyVariants(names []string) (variants, bool) {
	var v variants
	for _, name := range names {
		if i, ok := g.screens[name]; ok {
			if v.screen != "" {
				return variants{}, false
			}
			v.screen = g.tokens.Screens[i].Min
			v.mediaRank += (i + 1) * 10
			continue
		}
		if m, ok := mediaVariants[name]; ok {
			v.extra = append(v.extra, m.query)
			v.mediaRank += m.rank
			continue
		}
		v.count++
		if p, ok := pseudoVariants[name]; ok {
			v.suffix += p
			continue
		}
		if p, ok := groupVariants[name]; ok {
			if v.prefix != "" {
				return variants{}, false
			}
			v.prefix = p
			continue
		}
		if sel, ok := attributeVariant(name); ok {
			v.suffix += sel
			continue
		}
		return variants{}, false
	}
	return v, true
}

// attributeVariant handles data-[state=open] and aria-[expanded=true].
func attributeVariant(name string) (string, bool) {
	for _, prefix := range []string{"data-", "aria-"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		inner, ok := arbitrary(rest)
		if !ok {
			return "", false
		}
		key, val, hasVal := strings.Cut(inner, "=")
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \"'[]") {
			return "", false
		}
		if !hasVal {
			return "[" + prefix + key + "]", true
		}
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		return "[" + prefix + key + "=" + css.Quote(val) + "]", true
	}
	return "", false
}
