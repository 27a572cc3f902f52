package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
// Line breaks are not allowed in CSS strings and are written as code points.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, "\"\\\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quote returns s as a double quoted CSS string.
func Quote(s string) string {
	return `"` + cssEscapeDoubleQuoted(s) + `"`
}

// EscapeIdent escapes s so it could be used as a class name or identifier in
// a selector: ".md\:p-4", ".w-1\/2", ".\32 xl".
func EscapeIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + ` `)
		case i == 0 && r >= '0' && r <= '9':
			b.WriteString(`\3` + string(r) + ` `)
		case i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			b.WriteString(`\3` + string(r) + ` `)
		case i == 0 && r == '-' && len(s) == 1:
			b.WriteString(`\-`)
		case r >= 0x80, r == '-', r == '_',
			r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Declaration is a single property: value pair.
type Declaration struct {
	Name  string
	Value string
}

// Decl is shorthand for building declaration lists.
func Decl(name, value string) Declaration {
	return Declaration{Name: name, Value: value}
}

// Rule is a qualified rule: selector list and its declarations, kept in
// insertion order.
type Rule struct {
	Selectors []string
	Decls     []Declaration
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family  string // font-family value, written quoted
	Src     string // font URL, written as url("...")
	Format  string // format hint, omitted when empty
	Weight  string
	Style   string
	Display string
}

// AtBlock is an at-rule with a block of nested rules, @media or @supports.
type AtBlock struct {
	Prelude string // "@media (min-width: 640px)"
	Rules   []Rule
}

// Item is a single top-level item in a stylesheet.
// Exactly one of Rule, AtBlock, FontFace or Raw is set.
type Item struct {
	Rule     *Rule
	AtBlock  *AtBlock
	FontFace *FontFace
	Raw      *string // verbatim text, block styles and framework directives
}

// Stylesheet is an ordered list of items written in insertion order.
type Stylesheet struct {
	Items []Item
}

// AddRule appends rule with a single selector. Rules without declarations
// are dropped.
func (s *Stylesheet) AddRule(selector string, decls ...Declaration) {
	s.AddGroup([]string{selector}, decls...)
}

// AddGroup appends rule with a selector list.
func (s *Stylesheet) AddGroup(selectors []string, decls ...Declaration) {
	if len(decls) == 0 || len(selectors) == 0 {
		return
	}
	s.Items = append(s.Items, Item{Rule: &Rule{Selectors: selectors, Decls: decls}})
}

// AddAtBlock appends at-rule block, empty blocks are dropped.
func (s *Stylesheet) AddAtBlock(prelude string, rules ...Rule) {
	if len(rules) == 0 {
		return
	}
	s.Items = append(s.Items, Item{AtBlock: &AtBlock{Prelude: prelude, Rules: rules}})
}

// AddFontFace appends @font-face.
func (s *Stylesheet) AddFontFace(ff FontFace) {
	s.Items = append(s.Items, Item{FontFace: &ff})
}

// AddRaw appends text as is.
func (s *Stylesheet) AddRaw(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.Items = append(s.Items, Item{Raw: &text})
}

// Append copies all items of other to the end of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
}

// Len returns number of top-level items.
func (s *Stylesheet) Len() int {
	return len(s.Items)
}

// WriteTo writes the stylesheet to w in insertion order, implementing
// io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Raw != nil:
			n, err = fmt.Fprintf(w, "%s\n", strings.TrimSpace(*item.Raw))
		case item.FontFace != nil:
			n, err = writeFontFace(w, item.FontFace)
		case item.AtBlock != nil:
			n, err = writeAtBlock(w, item.AtBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, strings.Join(rule.Selectors, ",\n"+indent))
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Decls {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Name, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeFontFace writes an @font-face block to w.
func writeFontFace(w io.Writer, ff *FontFace) (int, error) {
	src := "url(" + Quote(ff.Src) + ")"
	if ff.Format != "" {
		src += " format(" + Quote(ff.Format) + ")"
	}
	decls := []Declaration{
		{"font-family", Quote(ff.Family)},
		{"src", src},
	}
	for _, d := range []Declaration{
		{"font-weight", ff.Weight},
		{"font-style", ff.Style},
		{"font-display", ff.Display},
	} {
		if d.Value != "" {
			decls = append(decls, d)
		}
	}
	return writeRule(w, &Rule{Selectors: []string{"@font-face"}, Decls: decls}, "")
}

// writeAtBlock writes an @media like block to w.
func writeAtBlock(w io.Writer, ab *AtBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", ab.Prelude)
	total += n
	if err != nil {
		return total, err
	}

	for i := range ab.Rules {
		n, err = writeRule(w, &ab.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
