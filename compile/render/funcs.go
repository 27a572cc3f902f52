package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"reflect"
	"strconv"
	"strings"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"sitec/icons"
	"sitec/site/fields"
)

// funcs returns helpers available to block and shell templates: slim-sprig
// generic map with lenient comparison, arithmetic and size helpers on top.
func (r *Renderer) funcs() template.FuncMap {
	fm := template.FuncMap(sprig.FuncMap())

	fm["eq"] = func(a, b any) bool { return compare(a, b) == 0 }
	fm["neq"] = func(a, b any) bool { return compare(a, b) != 0 }
	fm["ne"] = fm["neq"]
	fm["gt"] = func(a, b any) bool { return compare(a, b) > 0 }
	fm["lt"] = func(a, b any) bool { return compare(a, b) < 0 }
	fm["gte"] = func(a, b any) bool { return compare(a, b) >= 0 }
	fm["ge"] = fm["gte"]
	fm["lte"] = func(a, b any) bool { return compare(a, b) <= 0 }
	fm["le"] = fm["lte"]

	fm["includes"] = includes
	fm["uppercase"] = func(v any) string { return strings.ToUpper(text(v)) }
	fm["lowercase"] = func(v any) string { return strings.ToLower(text(v)) }
	fm["trim"] = func(v any) string { return strings.TrimSpace(text(v)) }
	fm["concat"] = func(args ...any) string {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(text(a))
		}
		return b.String()
	}
	fm["replace"] = func(s, search, repl any) string {
		return strings.ReplaceAll(text(s), text(search), text(repl))
	}

	fm["len"] = size
	fm["isEmpty"] = isEmpty
	fm["json"] = func(v any) (string, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	fm["add"] = func(a, b any) float64 { return number(a) + number(b) }
	fm["sub"] = func(a, b any) float64 { return number(a) - number(b) }
	fm["mult"] = func(a, b any) float64 { return number(a) * number(b) }
	fm["div"] = func(a, b any) float64 {
		d := number(b)
		if d == 0 {
			return 0
		}
		return number(a) / d
	}

	fm["icon"] = r.icon
	fm["linkHref"] = func(v any) template.URL { return template.URL(link(v).Href()) }
	fm["linkTarget"] = func(v any) string { return link(v).Target() }
	fm["linkRel"] = func(v any) string { return link(v).Rel() }
	fm["field"] = field
	fm["visible"] = visible
	fm["markdown"] = r.markdown
	fm["raw"] = func(v any) template.HTML { return template.HTML(text(v)) }
	fm["slugify"] = func(v any) string { return slug.Make(text(v)) }
	return fm
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// markdown renders rich text field. Raw HTML in the source is not passed
// through.
func (r *Renderer) markdown(v any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text(v)), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// icon renders inline svg: {{ icon "arrow-right" "size" 16 "class" "ml-1" }}.
// Unknown names produce nothing.
func (r *Renderer) icon(name any, opts ...any) (template.HTML, error) {
	if r.icons == nil {
		return "", nil
	}
	if len(opts)%2 != 0 {
		return "", fmt.Errorf("icon %v: options must be key value pairs", name)
	}
	var o icons.Options
	for i := 0; i < len(opts); i += 2 {
		switch key := text(opts[i]); key {
		case "size":
			o.Size = number(opts[i+1])
		case "stroke", "strokeWidth", "stroke-width":
			o.Stroke = number(opts[i+1])
		case "class":
			o.Class = text(opts[i+1])
		default:
			return "", fmt.Errorf("icon %v: unknown option %q", name, key)
		}
	}
	return template.HTML(r.icons.Render(text(name), o)), nil
}

func link(v any) fields.Link {
	fv, err := fields.FromNative(v)
	if err != nil {
		return fields.LinkFrom(fields.Null())
	}
	return fields.LinkFrom(fv)
}

// field looks up dot separated path, nil when absent.
func field(m any, path string) any {
	fv, err := fields.FromNative(m)
	if err != nil {
		return nil
	}
	v, ok := fv.Lookup(path)
	if !ok {
		return nil
	}
	return v.Native()
}

// visible evaluates conditional visibility rule against fields.
func visible(m any, cond any) (bool, error) {
	fv, err := fields.FromNative(m)
	if err != nil {
		return false, err
	}
	cv, err := fields.FromNative(cond)
	if err != nil {
		return false, err
	}
	c, err := fields.ParseConditional(cv)
	if err != nil {
		return false, fmt.Errorf("visible: %w", err)
	}
	return c.Active(fv.Map()), nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case template.HTML:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// toNumber converts numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return 0, false
}

func number(v any) float64 {
	f, _ := toNumber(v)
	return f
}

// compare orders numerically when both sides are numbers, by string form
// otherwise. nil equals only nil.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if an, ok := toNumber(a); ok {
		if bn, ok := toNumber(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(text(a), text(b))
}

func includes(haystack, needle any) bool {
	switch h := haystack.(type) {
	case nil:
		return false
	case string:
		return strings.Contains(h, text(needle))
	case []any:
		for _, item := range h {
			if compare(item, needle) == 0 {
				return true
			}
		}
		return false
	case map[string]any:
		_, ok := h[text(needle)]
		return ok
	}
	rv := reflect.ValueOf(haystack)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if compare(rv.Index(i).Interface(), needle) == 0 {
				return true
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return rv.MapIndex(reflect.ValueOf(text(needle)).Convert(rv.Type().Key())).IsValid()
		}
	}
	return false
}

func size(v any) int {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		return len([]rune(s))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	}
	return 0
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
