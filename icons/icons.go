// Package icons is the icon lookup service used by block templates. Icons are
// plain 24x24 stroke SVG files, file name in kebab case becomes icon name in
// Pascal case ("alarm-clock.svg" is "AlarmClock").
package icons

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
)

//go:embed svg/*.svg
var embedded embed.FS

// Set maps normalized icon names to inner SVG bodies.
type Set struct {
	bodies map[string]string
	folded map[string]string
}

// Default returns set with embedded icons only.
func Default() (*Set, error) {
	return New()
}

// New builds set from embedded icons overlaid with *.svg files found at the
// root of each of extra file systems. Later sources win.
func New(extra ...fs.FS) (*Set, error) {
	s := &Set{bodies: make(map[string]string), folded: make(map[string]string)}

	sub, err := fs.Sub(embedded, "svg")
	if err != nil {
		return nil, err
	}
	for _, fsys := range append([]fs.FS{sub}, extra...) {
		if err := s.load(fsys); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) load(fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.svg")
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("unable to read icon %s: %w", name, err)
		}
		body, err := extractBody(data)
		if err != nil {
			return fmt.Errorf("icon %s: %w", name, err)
		}
		s.add(PascalCase(strings.TrimSuffix(path.Base(name), path.Ext(name))), body)
	}
	return nil
}

func (s *Set) add(name, body string) {
	if name == "" {
		return
	}
	s.bodies[name] = body
	s.folded[strings.ToLower(name)] = name
}

// extractBody returns serialized children of the svg root element.
func extractBody(data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", err
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("not an svg document")
	}
	body := etree.NewDocument()
	for _, child := range root.ChildElements() {
		body.AddChild(child.Copy())
	}
	out, err := body.WriteToString()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Len returns number of known icons.
func (s *Set) Len() int {
	return len(s.bodies)
}

// Names returns all icon names in natural order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.bodies))
	for name := range s.bodies {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Lookup finds icon body by name in any casing: "alarm-clock", "alarm_clock",
// "alarmClock" and "AlarmClock" are the same icon. Empty name and "none"
// never match.
func (s *Set) Lookup(name string) (string, bool) {
	raw := strings.TrimSpace(name)
	if raw == "" || strings.EqualFold(raw, "none") {
		return "", false
	}
	for _, key := range []string{raw, PascalCase(raw), capitalize(raw)} {
		if body, ok := s.bodies[key]; ok {
			return body, true
		}
	}
	if key, ok := s.folded[strings.ToLower(PascalCase(raw))]; ok {
		return s.bodies[key], true
	}
	return "", false
}

// Options controls rendered svg element.
type Options struct {
	Size   float64
	Stroke float64
	Class  string
}

const (
	DefaultSize   = 20
	DefaultStroke = 2
)

// Render returns complete inline svg element or empty string for unknown
// icons.
func (s *Set) Render(name string, opts Options) string {
	body, ok := s.Lookup(name)
	if !ok {
		return ""
	}
	size, stroke := opts.Size, opts.Stroke
	if size <= 0 {
		size = DefaultSize
	}
	if stroke <= 0 {
		stroke = DefaultStroke
	}
	w := strconv.FormatFloat(size, 'f', -1, 64)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	b.WriteString(w)
	b.WriteString(`" height="`)
	b.WriteString(w)
	b.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="`)
	b.WriteString(strconv.FormatFloat(stroke, 'f', -1, 64))
	b.WriteString(`" stroke-linecap="round" stroke-linejoin="round" class="`)
	b.WriteString(html.EscapeString(opts.Class))
	b.WriteString(`" aria-hidden="true" focusable="false">`)
	b.WriteString(body)
	b.WriteString(`</svg>`)
	return b.String()
}

// PascalCase converts kebab, snake, space separated and camel case names.
// Names which already look like Pascal case are returned unchanged.
func PascalCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isPascal(s) {
		return s
	}

	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isPascal(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
