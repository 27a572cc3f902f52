package utility

import (
	"strconv"
	"strings"
)

// arbitrary unwraps "[...]" values, underscores become spaces unless
// escaped.
func arbitrary(v string) (string, bool) {
	if len(v) < 3 || v[0] != '[' || v[len(v)-1] != ']' {
		return "", false
	}
	inner := v[1 : len(v)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '_':
			b.WriteByte('_')
			i++
		case inner[i] == '_':
			b.WriteByte(' ')
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String(), true
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// spacing resolves spacing scale: 4 is 1rem, px is 1px, 0 is 0px.
func spacing(v string) (string, bool) {
	switch v {
	case "px":
		return "1px", true
	case "0":
		return "0px", true
	}
	if a, ok := arbitrary(v); ok {
		return a, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f*4 != float64(int(f*4)) || strings.HasPrefix(v, "+") {
		return "", false
	}
	return num(f*0.25) + "rem", true
}

// fraction resolves "1/2" to "50%".
func fraction(v string) (string, bool) {
	n, d, ok := strings.Cut(v, "/")
	if !ok {
		return "", false
	}
	a, err1 := strconv.Atoi(n)
	b, err2 := strconv.Atoi(d)
	if err1 != nil || err2 != nil || b <= 0 || a < 0 {
		return "", false
	}
	return strconv.FormatFloat(float64(a)*100/float64(b), 'f', -1, 64) + "%", true
}

func integer(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || strings.HasPrefix(v, "+") {
		return 0, false
	}
	return n, true
}

// negate turns length into its negative.
func negate(v string) string {
	switch {
	case v == "0" || v == "0px":
		return v
	case strings.HasPrefix(v, "-"):
		return v[1:]
	case v != "" && (v[0] == '.' || (v[0] >= '0' && v[0] <= '9')):
		return "-" + v
	default:
		return "calc(" + v + " * -1)"
	}
}

var builtinColors = map[string]string{
	"inherit":     "inherit",
	"current":     "currentColor",
	"transparent": "transparent",
	"black":       "#000",
	"white":       "#fff",
}

// color resolves theme color with optional opacity modifier: primary,
// primary/50, [#0af], [#0af]/25.
func (g *Generator) color(v string) (string, bool) {
	base, mod := v, ""
	if parts := splitTop(v, '/'); len(parts) == 2 {
		base, mod = parts[0], parts[1]
	}

	val, ok := g.tokens.Colors[base]
	if !ok {
		val, ok = builtinColors[base]
	}
	if !ok {
		a, isArb := arbitrary(base)
		if !isArb || !looksLikeColor(a) {
			return "", false
		}
		val, ok = strings.TrimPrefix(a, "color:"), true
	}
	if mod == "" {
		return val, true
	}

	pct, isInt := integer(mod)
	if !isInt || pct > 100 {
		return "", false
	}
	return "color-mix(in srgb, " + val + " " + strconv.Itoa(pct) + "%, transparent)", true
}

func looksLikeColor(v string) bool {
	v = strings.ToLower(v)
	if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "var(--color") {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "oklch(", "oklab(", "color-mix(", "color:"} {
		if strings.HasPrefix(v, fn) {
			return true
		}
	}
	return false
}

// looksLikeLength reports whether arbitrary value is a size, not a color.
func looksLikeLength(v string) bool {
	v = strings.ToLower(v)
	if v == "" {
		return false
	}
	if v[0] == '.' || (v[0] >= '0' && v[0] <= '9') {
		return true
	}
	for _, fn := range []string{"calc(", "clamp(", "min(", "max(", "var(--font", "length:"} {
		if strings.HasPrefix(v, fn) {
			return true
		}
	}
	return false
}

// size resolves width-like values.
func size(v string, screen string) (string, bool) {
	switch v {
	case "full":
		return "100%", true
	case "auto":
		return "auto", true
	case "min":
		return "min-content", true
	case "max":
		return "max-content", true
	case "fit":
		return "fit-content", true
	case "screen":
		if screen == "" {
			return "", false
		}
		return screen, true
	}
	if f, ok := fraction(v); ok {
		return f, true
	}
	return spacing(v)
}
