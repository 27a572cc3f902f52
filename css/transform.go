package css

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
)

// DefaultTargets are browsers vendor prefixes are generated for.
var DefaultTargets = []string{"chrome90", "edge90", "firefox90", "safari14", "ios14"}

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

// ParseTargets converts browser targets like "safari14" or "chrome 90.1"
// into engine list.
func ParseTargets(targets []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(targets))
	for _, t := range targets {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		i := strings.IndexFunc(t, func(r rune) bool { return unicode.IsDigit(r) })
		if i <= 0 {
			return nil, fmt.Errorf("browser target %q has no version", t)
		}
		name, ok := engineNames[strings.TrimSpace(t[:i])]
		if !ok {
			return nil, fmt.Errorf("unknown browser in target %q", t)
		}
		engines = append(engines, api.Engine{Name: name, Version: t[i:]})
	}
	return engines, nil
}

// Prefix adds vendor prefixes needed by targets and lowers syntax the
// targets do not understand.
func Prefix(src string, targets []string) (string, error) {
	engines, err := ParseTargets(targets)
	if err != nil {
		return "", err
	}
	res := api.Transform(src, api.TransformOptions{
		Loader:   api.LoaderCSS,
		Engines:  engines,
		LogLevel: api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		return "", messagesError("vendor prefixing failed", res.Errors)
	}
	return string(res.Code), nil
}

// Minify minifies stylesheet.
func Minify(src string) (string, error) {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	out, err := m.String("text/css", src)
	if err != nil {
		return "", fmt.Errorf("unable to minify stylesheet: %w", err)
	}
	return out, nil
}

func messagesError(what string, msgs []api.Message) error {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
		} else {
			parts = append(parts, m.Text)
		}
	}
	return fmt.Errorf("%s: %s", what, strings.Join(parts, "; "))
}
