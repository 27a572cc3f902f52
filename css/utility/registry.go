package utility

import (
	"sort"
	"strconv"
	"strings"

	"sitec/css"
)

// valueFunc resolves value part of a functional utility. child is appended
// to the class selector.
type valueFunc func(g *Generator, v string, neg bool) (decls []css.Declaration, child string, ok bool)

type entry struct {
	name     string
	decls    []css.Declaration
	fn       valueFunc
	negative bool
}

func static(name string, decls ...css.Declaration) entry {
	return entry{name: name, decls: decls}
}

func functional(root string, fn valueFunc) entry {
	return entry{name: root, fn: fn}
}

func signed(root string, fn valueFunc) entry {
	return entry{name: root, fn: fn, negative: true}
}

func d(name, value string) css.Declaration { return css.Decl(name, value) }

var registry = []entry{
	static("sr-only",
		d("position", "absolute"), d("width", "1px"), d("height", "1px"), d("padding", "0"),
		d("margin", "-1px"), d("overflow", "hidden"), d("clip", "rect(0, 0, 0, 0)"),
		d("white-space", "nowrap"), d("border-width", "0")),
	static("not-sr-only",
		d("position", "static"), d("width", "auto"), d("height", "auto"), d("padding", "0"),
		d("margin", "0"), d("overflow", "visible"), d("clip", "auto"), d("white-space", "normal")),
	static("pointer-events-none", d("pointer-events", "none")),
	static("pointer-events-auto", d("pointer-events", "auto")),
	static("visible", d("visibility", "visible")),
	static("invisible", d("visibility", "hidden")),
	static("static", d("position", "static")),
	static("fixed", d("position", "fixed")),
	static("absolute", d("position", "absolute")),
	static("relative", d("position", "relative")),
	static("sticky", d("position", "sticky")),
	signed("inset-x", insetFn("left", "right")),
	signed("inset-y", insetFn("top", "bottom")),
	signed("inset", insetFn("inset")),
	signed("top", insetFn("top")),
	signed("right", insetFn("right")),
	signed("bottom", insetFn("bottom")),
	signed("left", insetFn("left")),
	static("isolate", d("isolation", "isolate")),
	signed("z", func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		if v == "auto" && !neg {
			return []css.Declaration{d("z-index", "auto")}, "", true
		}
		return intDecl("z-index", v, neg)
	}),
	signed("order", func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		switch {
		case neg && (v == "first" || v == "last" || v == "none"):
			return nil, "", false
		case v == "first":
			return []css.Declaration{d("order", "-9999")}, "", true
		case v == "last":
			return []css.Declaration{d("order", "9999")}, "", true
		case v == "none":
			return []css.Declaration{d("order", "0")}, "", true
		}
		return intDecl("order", v, neg)
	}),
	functional("col-span", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "full" {
			return []css.Declaration{d("grid-column", "1 / -1")}, "", true
		}
		n, ok := integer(v)
		if !ok || n == 0 {
			return nil, "", false
		}
		s := strconv.Itoa(n)
		return []css.Declaration{d("grid-column", "span "+s+" / span "+s)}, "", true
	}),
	functional("col-start", gridLine("grid-column-start")),
	functional("col-end", gridLine("grid-column-end")),
	functional("row-span", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "full" {
			return []css.Declaration{d("grid-row", "1 / -1")}, "", true
		}
		n, ok := integer(v)
		if !ok || n == 0 {
			return nil, "", false
		}
		s := strconv.Itoa(n)
		return []css.Declaration{d("grid-row", "span "+s+" / span "+s)}, "", true
	}),
	signed("m", lengthFn(true, "margin")),
	signed("mx", lengthFn(true, "margin-left", "margin-right")),
	signed("my", lengthFn(true, "margin-top", "margin-bottom")),
	signed("mt", lengthFn(true, "margin-top")),
	signed("mr", lengthFn(true, "margin-right")),
	signed("mb", lengthFn(true, "margin-bottom")),
	signed("ml", lengthFn(true, "margin-left")),
	signed("space-x", spaceFn("margin-left")),
	signed("space-y", spaceFn("margin-top")),
	static("block", d("display", "block")),
	static("inline-block", d("display", "inline-block")),
	static("inline", d("display", "inline")),
	static("flex", d("display", "flex")),
	static("inline-flex", d("display", "inline-flex")),
	static("grid", d("display", "grid")),
	static("inline-grid", d("display", "inline-grid")),
	static("contents", d("display", "contents")),
	static("table", d("display", "table")),
	static("hidden", d("display", "none")),
	functional("aspect", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		val, ok := map[string]string{"auto": "auto", "square": "1 / 1", "video": "16 / 9"}[v]
		if !ok {
			if val, ok = arbitrary(v); !ok {
				return nil, "", false
			}
		}
		return []css.Declaration{d("aspect-ratio", val)}, "", true
	}),
	functional("size", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		val, ok := size(v, "")
		if !ok {
			return nil, "", false
		}
		return []css.Declaration{d("width", val), d("height", val)}, "", true
	}),
	functional("h", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "svh" || v == "dvh" || v == "lvh" {
			return []css.Declaration{d("height", "100"+v)}, "", true
		}
		return sizeDecl("height", v, "100vh")
	}),
	functional("max-h", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "none" {
			return []css.Declaration{d("max-height", "none")}, "", true
		}
		return sizeDecl("max-height", v, "100vh")
	}),
	functional("min-h", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		return sizeDecl("min-height", v, "100vh")
	}),
	functional("w", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		return sizeDecl("width", v, "100vw")
	}),
	functional("min-w", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		return sizeDecl("min-width", v, "")
	}),
	functional("max-w", maxWidth),
	static("flex-1", d("flex", "1 1 0%")),
	static("flex-auto", d("flex", "1 1 auto")),
	static("flex-initial", d("flex", "0 1 auto")),
	static("flex-none", d("flex", "none")),
	static("shrink", d("flex-shrink", "1")),
	static("shrink-0", d("flex-shrink", "0")),
	static("grow", d("flex-grow", "1")),
	static("grow-0", d("flex-grow", "0")),
	functional("basis", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		return sizeDecl("flex-basis", v, "")
	}),
	signed("translate-x", translateFn("--tw-translate-x")),
	signed("translate-y", translateFn("--tw-translate-y")),
	signed("rotate", func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		val, ok := arbitrary(v)
		if !ok {
			n, isInt := integer(v)
			if !isInt {
				return nil, "", false
			}
			val = strconv.Itoa(n) + "deg"
		}
		if neg {
			val = negate(val)
		}
		return []css.Declaration{d("rotate", val)}, "", true
	}),
	signed("scale", func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		n, ok := integer(v)
		if !ok {
			return nil, "", false
		}
		f := float64(n) / 100
		if neg {
			f = -f
		}
		return []css.Declaration{d("scale", num(f))}, "", true
	}),
	static("cursor-pointer", d("cursor", "pointer")),
	static("cursor-default", d("cursor", "default")),
	static("cursor-not-allowed", d("cursor", "not-allowed")),
	static("select-none", d("user-select", "none")),
	static("select-text", d("user-select", "text")),
	static("list-none", d("list-style-type", "none")),
	static("list-disc", d("list-style-type", "disc")),
	static("list-decimal", d("list-style-type", "decimal")),
	functional("grid-cols", gridTemplate("grid-template-columns")),
	functional("grid-rows", gridTemplate("grid-template-rows")),
	static("flex-row", d("flex-direction", "row")),
	static("flex-row-reverse", d("flex-direction", "row-reverse")),
	static("flex-col", d("flex-direction", "column")),
	static("flex-col-reverse", d("flex-direction", "column-reverse")),
	static("flex-wrap", d("flex-wrap", "wrap")),
	static("flex-wrap-reverse", d("flex-wrap", "wrap-reverse")),
	static("flex-nowrap", d("flex-wrap", "nowrap")),
	static("place-items-center", d("place-items", "center")),
	static("content-center", d("align-content", "center")),
	static("content-between", d("align-content", "space-between")),
	static("items-start", d("align-items", "flex-start")),
	static("items-end", d("align-items", "flex-end")),
	static("items-center", d("align-items", "center")),
	static("items-baseline", d("align-items", "baseline")),
	static("items-stretch", d("align-items", "stretch")),
	static("justify-start", d("justify-content", "flex-start")),
	static("justify-end", d("justify-content", "flex-end")),
	static("justify-center", d("justify-content", "center")),
	static("justify-between", d("justify-content", "space-between")),
	static("justify-around", d("justify-content", "space-around")),
	static("justify-evenly", d("justify-content", "space-evenly")),
	static("justify-items-center", d("justify-items", "center")),
	functional("gap-x", lengthFn(false, "column-gap")),
	functional("gap-y", lengthFn(false, "row-gap")),
	functional("gap", lengthFn(false, "gap")),
	static("self-auto", d("align-self", "auto")),
	static("self-start", d("align-self", "flex-start")),
	static("self-end", d("align-self", "flex-end")),
	static("self-center", d("align-self", "center")),
	static("self-stretch", d("align-self", "stretch")),
	static("overflow-auto", d("overflow", "auto")),
	static("overflow-hidden", d("overflow", "hidden")),
	static("overflow-clip", d("overflow", "clip")),
	static("overflow-visible", d("overflow", "visible")),
	static("overflow-scroll", d("overflow", "scroll")),
	static("overflow-x-auto", d("overflow-x", "auto")),
	static("overflow-y-auto", d("overflow-y", "auto")),
	static("overflow-x-hidden", d("overflow-x", "hidden")),
	static("overflow-y-hidden", d("overflow-y", "hidden")),
	static("scroll-smooth", d("scroll-behavior", "smooth")),
	static("truncate", d("overflow", "hidden"), d("text-overflow", "ellipsis"), d("white-space", "nowrap")),
	static("whitespace-normal", d("white-space", "normal")),
	static("whitespace-nowrap", d("white-space", "nowrap")),
	static("whitespace-pre-line", d("white-space", "pre-line")),
	static("whitespace-pre-wrap", d("white-space", "pre-wrap")),
	static("break-words", d("overflow-wrap", "break-word")),
	static("break-all", d("word-break", "break-all")),
	functional("rounded-tl", radiusFn("border-top-left-radius")),
	functional("rounded-tr", radiusFn("border-top-right-radius")),
	functional("rounded-br", radiusFn("border-bottom-right-radius")),
	functional("rounded-bl", radiusFn("border-bottom-left-radius")),
	functional("rounded-t", radiusFn("border-top-left-radius", "border-top-right-radius")),
	functional("rounded-r", radiusFn("border-top-right-radius", "border-bottom-right-radius")),
	functional("rounded-b", radiusFn("border-bottom-right-radius", "border-bottom-left-radius")),
	functional("rounded-l", radiusFn("border-top-left-radius", "border-bottom-left-radius")),
	functional("rounded", radiusFn("border-radius")),
	functional("border-x", borderWidthFn("border-left-width", "border-right-width")),
	functional("border-y", borderWidthFn("border-top-width", "border-bottom-width")),
	functional("border-t", borderWidthFn("border-top-width")),
	functional("border-r", borderWidthFn("border-right-width")),
	functional("border-b", borderWidthFn("border-bottom-width")),
	functional("border-l", borderWidthFn("border-left-width")),
	static("border-solid", d("border-style", "solid")),
	static("border-dashed", d("border-style", "dashed")),
	static("border-dotted", d("border-style", "dotted")),
	static("border-none", d("border-style", "none")),
	functional("border", func(g *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		if decls, _, ok := borderWidthFn("border-width")(g, v, neg); ok {
			return decls, "", true
		}
		return colorDecl(g, "border-color", v)
	}),
	functional("bg", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if a, ok := arbitrary(v); ok && strings.HasPrefix(a, "url(") {
			return []css.Declaration{d("background-image", a)}, "", true
		}
		return colorDecl(g, "background-color", v)
	}),
	static("bg-cover", d("background-size", "cover")),
	static("bg-contain", d("background-size", "contain")),
	static("bg-center", d("background-position", "center")),
	static("bg-top", d("background-position", "top")),
	static("bg-fixed", d("background-attachment", "fixed")),
	static("bg-no-repeat", d("background-repeat", "no-repeat")),
	static("bg-none", d("background-image", "none")),
	functional("fill", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "none" {
			return []css.Declaration{d("fill", "none")}, "", true
		}
		return colorDecl(g, "fill", v)
	}),
	functional("stroke", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if n, ok := integer(v); ok {
			return []css.Declaration{d("stroke-width", strconv.Itoa(n))}, "", true
		}
		return colorDecl(g, "stroke", v)
	}),
	static("object-contain", d("object-fit", "contain")),
	static("object-cover", d("object-fit", "cover")),
	static("object-fill", d("object-fit", "fill")),
	static("object-center", d("object-position", "center")),
	functional("p", lengthFn(false, "padding")),
	functional("px", lengthFn(false, "padding-left", "padding-right")),
	functional("py", lengthFn(false, "padding-top", "padding-bottom")),
	functional("pt", lengthFn(false, "padding-top")),
	functional("pr", lengthFn(false, "padding-right")),
	functional("pb", lengthFn(false, "padding-bottom")),
	functional("pl", lengthFn(false, "padding-left")),
	static("text-left", d("text-align", "left")),
	static("text-center", d("text-align", "center")),
	static("text-right", d("text-align", "right")),
	static("text-justify", d("text-align", "justify")),
	static("align-middle", d("vertical-align", "middle")),
	static("align-top", d("vertical-align", "top")),
	functional("font", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		val, ok := g.tokens.FontFamily[v]
		if !ok {
			val, ok = fontFamilies[v]
		}
		if !ok {
			if val, ok = arbitrary(v); !ok {
				return nil, "", false
			}
		}
		return []css.Declaration{d("font-family", val)}, "", true
	}),
	functional("text", text),
	static("font-thin", d("font-weight", "100")),
	static("font-light", d("font-weight", "300")),
	static("font-normal", d("font-weight", "400")),
	static("font-medium", d("font-weight", "500")),
	static("font-semibold", d("font-weight", "600")),
	static("font-bold", d("font-weight", "700")),
	static("font-extrabold", d("font-weight", "800")),
	static("font-black", d("font-weight", "900")),
	static("uppercase", d("text-transform", "uppercase")),
	static("lowercase", d("text-transform", "lowercase")),
	static("capitalize", d("text-transform", "capitalize")),
	static("normal-case", d("text-transform", "none")),
	static("italic", d("font-style", "italic")),
	static("not-italic", d("font-style", "normal")),
	functional("leading", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		val, ok := map[string]string{
			"none": "1", "tight": "1.25", "snug": "1.375", "normal": "1.5", "relaxed": "1.625", "loose": "2",
		}[v]
		if !ok {
			if val, ok = spacing(v); !ok {
				return nil, "", false
			}
		}
		return []css.Declaration{d("line-height", val)}, "", true
	}),
	functional("tracking", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		val, ok := map[string]string{
			"tighter": "-0.05em", "tight": "-0.025em", "normal": "0em",
			"wide": "0.025em", "wider": "0.05em", "widest": "0.1em",
		}[v]
		if !ok {
			if val, ok = arbitrary(v); !ok {
				return nil, "", false
			}
		}
		return []css.Declaration{d("letter-spacing", val)}, "", true
	}),
	static("underline", d("text-decoration-line", "underline")),
	static("line-through", d("text-decoration-line", "line-through")),
	static("no-underline", d("text-decoration-line", "none")),
	functional("underline-offset", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "auto" {
			return []css.Declaration{d("text-underline-offset", "auto")}, "", true
		}
		n, ok := integer(v)
		if !ok {
			return nil, "", false
		}
		return []css.Declaration{d("text-underline-offset", strconv.Itoa(n)+"px")}, "", true
	}),
	static("antialiased", d("-webkit-font-smoothing", "antialiased"), d("-moz-osx-font-smoothing", "grayscale")),
	functional("line-clamp", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "none" {
			return []css.Declaration{
				d("overflow", "visible"), d("display", "block"),
				d("-webkit-box-orient", "horizontal"), d("-webkit-line-clamp", "none"),
			}, "", true
		}
		n, ok := integer(v)
		if !ok || n == 0 {
			return nil, "", false
		}
		return []css.Declaration{
			d("overflow", "hidden"), d("display", "-webkit-box"),
			d("-webkit-box-orient", "vertical"), d("-webkit-line-clamp", strconv.Itoa(n)),
		}, "", true
	}),
	functional("opacity", func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		n, ok := integer(v)
		if !ok || n > 100 {
			return nil, "", false
		}
		return []css.Declaration{d("opacity", num(float64(n)/100))}, "", true
	}),
	functional("shadow", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		key := v
		if key == "" {
			key = "DEFAULT"
		}
		val, ok := g.tokens.Shadow[key]
		if !ok {
			val, ok = shadows[key]
		}
		if !ok {
			if val, ok = arbitrary(v); !ok {
				return nil, "", false
			}
		}
		return []css.Declaration{d("box-shadow", val)}, "", true
	}),
	functional("ring", func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		width := "3"
		if v != "" {
			n, ok := integer(v)
			if !ok {
				return colorDecl(g, "--tw-ring-color", v)
			}
			width = strconv.Itoa(n)
		}
		return []css.Declaration{d("box-shadow", "0 0 0 "+width+"px var(--tw-ring-color, currentColor)")}, "", true
	}),
	static("outline-none", d("outline", "2px solid transparent"), d("outline-offset", "2px")),
	static("transition-none", d("transition-property", "none")),
	static("transition", append([]css.Declaration{
		d("transition-property", "color, background-color, border-color, text-decoration-color, fill, stroke, opacity, box-shadow, transform, translate, scale, rotate"),
	}, timing...)...),
	static("transition-all", append([]css.Declaration{d("transition-property", "all")}, timing...)...),
	static("transition-colors", append([]css.Declaration{
		d("transition-property", "color, background-color, border-color, text-decoration-color, fill, stroke"),
	}, timing...)...),
	static("transition-opacity", append([]css.Declaration{d("transition-property", "opacity")}, timing...)...),
	static("transition-transform", append([]css.Declaration{
		d("transition-property", "transform, translate, scale, rotate"),
	}, timing...)...),
	functional("duration", msFn("transition-duration")),
	functional("delay", msFn("transition-delay")),
	static("ease-linear", d("transition-timing-function", "linear")),
	static("ease-in", d("transition-timing-function", "cubic-bezier(0.4, 0, 1, 1)")),
	static("ease-out", d("transition-timing-function", "cubic-bezier(0, 0, 0.2, 1)")),
	static("ease-in-out", d("transition-timing-function", "cubic-bezier(0.4, 0, 0.2, 1)")),
}

var timing = []css.Declaration{
	d("transition-timing-function", "cubic-bezier(0.4, 0, 0.2, 1)"),
	d("transition-duration", "150ms"),
}

var fontFamilies = map[string]string{
	"sans":  `ui-sans-serif, system-ui, sans-serif, "Apple Color Emoji", "Segoe UI Emoji"`,
	"serif": `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`,
	"mono":  `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace`,
}

var fontSizes = map[string][2]string{
	"xs":   {"0.75rem", "1rem"},
	"sm":   {"0.875rem", "1.25rem"},
	"base": {"1rem", "1.5rem"},
	"lg":   {"1.125rem", "1.75rem"},
	"xl":   {"1.25rem", "1.75rem"},
	"2xl":  {"1.5rem", "2rem"},
	"3xl":  {"1.875rem", "2.25rem"},
	"4xl":  {"2.25rem", "2.5rem"},
	"5xl":  {"3rem", "1"},
	"6xl":  {"3.75rem", "1"},
}

var radii = map[string]string{
	"none":    "0px",
	"sm":      "0.125rem",
	"DEFAULT": "0.25rem",
	"md":      "0.375rem",
	"lg":      "0.5rem",
	"xl":      "0.75rem",
	"2xl":     "1rem",
	"3xl":     "1.5rem",
	"full":    "9999px",
}

var shadows = map[string]string{
	"sm":      "0 1px 2px 0 rgb(0 0 0 / 0.05)",
	"DEFAULT": "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)",
	"md":      "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
	"lg":      "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
	"xl":      "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)",
	"2xl":     "0 25px 50px -12px rgb(0 0 0 / 0.25)",
	"inner":   "inset 0 2px 4px 0 rgb(0 0 0 / 0.05)",
	"none":    "none",
}

var maxWidths = map[string]string{
	"none":  "none",
	"xs":    "20rem",
	"sm":    "24rem",
	"md":    "28rem",
	"lg":    "32rem",
	"xl":    "36rem",
	"2xl":   "42rem",
	"3xl":   "48rem",
	"4xl":   "56rem",
	"5xl":   "64rem",
	"6xl":   "72rem",
	"7xl":   "80rem",
	"prose": "65ch",
}

type index struct {
	statics map[string]int
	// functional roots, longest first
	roots []int
}

var lookup = func() index {
	ix := index{statics: make(map[string]int)}
	for i, e := range registry {
		if e.fn == nil {
			ix.statics[e.name] = i
			continue
		}
		ix.roots = append(ix.roots, i)
	}
	sort.SliceStable(ix.roots, func(a, b int) bool {
		return len(registry[ix.roots[a]].name) > len(registry[ix.roots[b]].name)
	})
	return ix
}()

// resolve maps utility (without variants, important and negative markers) to
// declarations. order is a stable position used to sort output.
func (g *Generator) resolve(utility string, neg bool) ([]css.Declaration, string, int, bool) {
	if i, ok := lookup.statics[utility]; ok && !neg {
		return append([]css.Declaration(nil), registry[i].decls...), "", i, true
	}

	if decl, ok := arbitraryProperty(utility); ok && !neg {
		return []css.Declaration{decl}, "", len(registry), true
	}

	for _, i := range lookup.roots {
		e := registry[i]
		var value string
		switch {
		case utility == e.name:
		case strings.HasPrefix(utility, e.name+"-"):
			value = utility[len(e.name)+1:]
			if value == "" {
				continue
			}
		default:
			continue
		}
		if neg && !e.negative {
			continue
		}
		decls, child, ok := e.fn(g, value, neg)
		if ok {
			return decls, child, i, true
		}
	}
	return nil, "", 0, false
}

// arbitraryProperty handles [mask-type:luminance].
func arbitraryProperty(utility string) (css.Declaration, bool) {
	inner, ok := arbitrary(utility)
	if !ok {
		return css.Declaration{}, false
	}
	prop, value, ok := strings.Cut(inner, ":")
	prop = strings.TrimSpace(prop)
	value = strings.TrimSpace(value)
	if !ok || prop == "" || value == "" || strings.ContainsAny(prop, " ;{}") {
		return css.Declaration{}, false
	}
	return d(prop, value), true
}

func decls(props []string, val string) []css.Declaration {
	out := make([]css.Declaration, 0, len(props))
	for _, p := range props {
		out = append(out, d(p, val))
	}
	return out
}

func lengthFn(auto bool, props ...string) valueFunc {
	return func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		if v == "" {
			return nil, "", false
		}
		if v == "auto" {
			if !auto || neg {
				return nil, "", false
			}
			return decls(props, "auto"), "", true
		}
		val, ok := spacing(v)
		if !ok {
			return nil, "", false
		}
		if neg {
			val = negate(val)
		}
		return decls(props, val), "", true
	}
}

func spaceFn(prop string) valueFunc {
	return func(g *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		out, _, ok := lengthFn(false, prop)(g, v, neg)
		return out, " > :not([hidden]) ~ :not([hidden])", ok
	}
}

func insetFn(props ...string) valueFunc {
	return func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		var (
			val string
			ok  bool
		)
		switch v {
		case "":
			return nil, "", false
		case "auto":
			if neg {
				return nil, "", false
			}
			val, ok = "auto", true
		case "full":
			val, ok = "100%", true
		default:
			if val, ok = fraction(v); !ok {
				val, ok = spacing(v)
			}
		}
		if !ok {
			return nil, "", false
		}
		if neg {
			val = negate(val)
		}
		return decls(props, val), "", true
	}
}

func translateFn(variable string) valueFunc {
	return func(_ *Generator, v string, neg bool) ([]css.Declaration, string, bool) {
		val, ok := "100%", v == "full"
		if !ok {
			if val, ok = fraction(v); !ok {
				if val, ok = spacing(v); !ok {
					return nil, "", false
				}
			}
		}
		if neg {
			val = negate(val)
		}
		return []css.Declaration{
			d(variable, val),
			d("translate", "var(--tw-translate-x, 0) var(--tw-translate-y, 0)"),
		}, "", true
	}
}

func sizeDecl(prop, v, screen string) ([]css.Declaration, string, bool) {
	if v == "" {
		return nil, "", false
	}
	val, ok := size(v, screen)
	if !ok {
		return nil, "", false
	}
	return []css.Declaration{d(prop, val)}, "", true
}

func maxWidth(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
	if val, ok := maxWidths[v]; ok {
		return []css.Declaration{d("max-width", val)}, "", true
	}
	if name, ok := strings.CutPrefix(v, "screen-"); ok {
		i, ok := g.screens[name]
		if !ok {
			return nil, "", false
		}
		return []css.Declaration{d("max-width", g.tokens.Screens[i].Min)}, "", true
	}
	return sizeDecl("max-width", v, "")
}

func intDecl(prop, v string, neg bool) ([]css.Declaration, string, bool) {
	n, ok := integer(v)
	if !ok {
		return nil, "", false
	}
	if neg {
		n = -n
	}
	return []css.Declaration{d(prop, strconv.Itoa(n))}, "", true
}

func gridLine(prop string) valueFunc {
	return func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "auto" {
			return []css.Declaration{d(prop, "auto")}, "", true
		}
		n, ok := integer(v)
		if !ok || n == 0 {
			return nil, "", false
		}
		return []css.Declaration{d(prop, strconv.Itoa(n))}, "", true
	}
}

func gridTemplate(prop string) valueFunc {
	return func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "none" {
			return []css.Declaration{d(prop, "none")}, "", true
		}
		if a, ok := arbitrary(v); ok {
			return []css.Declaration{d(prop, a)}, "", true
		}
		n, ok := integer(v)
		if !ok || n == 0 {
			return nil, "", false
		}
		return []css.Declaration{d(prop, "repeat("+strconv.Itoa(n)+", minmax(0, 1fr))")}, "", true
	}
}

func radiusFn(props ...string) valueFunc {
	return func(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		key := v
		if key == "" {
			key = "DEFAULT"
		}
		val, ok := g.tokens.Radius[key]
		if !ok {
			val, ok = radii[key]
		}
		if !ok {
			if val, ok = arbitrary(v); !ok {
				return nil, "", false
			}
		}
		return decls(props, val), "", true
	}
}

func borderWidthFn(props ...string) valueFunc {
	return func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if v == "" {
			return decls(props, "1px"), "", true
		}
		if n, ok := integer(v); ok {
			return decls(props, strconv.Itoa(n)+"px"), "", true
		}
		if a, ok := arbitrary(v); ok && looksLikeLength(a) {
			return decls(props, strings.TrimPrefix(a, "length:")), "", true
		}
		return nil, "", false
	}
}

func colorDecl(g *Generator, prop, v string) ([]css.Declaration, string, bool) {
	val, ok := g.color(v)
	if !ok {
		return nil, "", false
	}
	return []css.Declaration{d(prop, val)}, "", true
}

func msFn(prop string) valueFunc {
	return func(_ *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
		if a, ok := arbitrary(v); ok {
			return []css.Declaration{d(prop, a)}, "", true
		}
		n, ok := integer(v)
		if !ok {
			return nil, "", false
		}
		return []css.Declaration{d(prop, strconv.Itoa(n)+"ms")}, "", true
	}
}

// text is either font size or color.
func text(g *Generator, v string, _ bool) ([]css.Declaration, string, bool) {
	if v == "" {
		return nil, "", false
	}
	if val, ok := g.tokens.FontSize[v]; ok {
		return []css.Declaration{d("font-size", val)}, "", true
	}
	if fs, ok := fontSizes[v]; ok {
		return []css.Declaration{d("font-size", fs[0]), d("line-height", fs[1])}, "", true
	}
	if a, ok := arbitrary(v); ok && looksLikeLength(a) {
		return []css.Declaration{d("font-size", strings.TrimPrefix(a, "length:"))}, "", true
	}
	return colorDecl(g, "color", v)
}
