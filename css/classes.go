package css

import (
	"errors"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ExtractClasses returns sorted unique utility class candidates found in
// markup. Class attributes are split on white space. Any other attribute
// value and text, inline scripts included, is split into candidate tokens, so
// classes toggled by scripts or kept in data attributes are generated too.
// Candidates that name no utility are dropped by the generator.
func ExtractClasses(markup string) ([]string, error) {
	seen := make(map[string]struct{})
	add := func(tokens []string) {
		for _, c := range tokens {
			if c = strings.TrimRight(c, ".,:;?"); c != "" {
				seen[c] = struct{}{}
			}
		}
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			classes := make([]string, 0, len(seen))
			for c := range seen {
				classes = append(classes, c)
			}
			sort.Strings(classes)
			return classes, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			for {
				key, val, more := z.TagAttr()
				if string(key) == "class" {
					add(strings.Fields(string(val)))
				} else {
					add(candidates(string(val)))
				}
				if !more {
					break
				}
			}

		case html.TextToken:
			add(candidates(string(z.Text())))
		}
	}
}

// candidates splits free text on anything that cannot be part of a class
// name. Brackets, slashes, dots and colons stay for arbitrary values,
// opacity modifiers and variants.
func candidates(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', '\f', '"', '\'', '`', '<', '>', '=', ',', ';', '(', ')', '{', '}', '+', '|', '&':
			return true
		}
		return false
	})
}
