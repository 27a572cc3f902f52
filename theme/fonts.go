package theme

import (
	"html"
	"net/url"
	"path"
	"strings"

	"sitec/common"
	"sitec/css"
	"sitec/site"
)

const (
	googleCSS    = "https://fonts.googleapis.com"
	googleStatic = "https://fonts.gstatic.com"
)

// FontFormat guesses format hint from font source extension ignoring query
// and fragment. Unknown extensions produce no hint.
func FontFormat(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	switch strings.ToLower(strings.TrimPrefix(path.Ext(src), ".")) {
	case "woff2":
		return "woff2"
	case "woff":
		return "woff"
	case "ttf", "ttc":
		return "truetype"
	case "otf":
		return "opentype"
	}
	return ""
}

// FontFaces returns @font-face rules for custom fonts with source. Native
// and google fonts produce nothing, google ones are linked from the page head.
func FontFaces(t *site.Typography) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	var seen []site.Font
	for _, f := range []*site.Font{t.HeaderFont, &t.BodyFont} {
		if f == nil || f.Type != common.FontTypeCustom || strings.TrimSpace(f.Source) == "" {
			continue
		}
		if containsFont(seen, *f) {
			continue
		}
		seen = append(seen, *f)
		sheet.AddFontFace(css.FontFace{
			Family:  strings.TrimSpace(f.Name),
			Src:     f.Source,
			Format:  FontFormat(f.Source),
			Weight:  "400",
			Style:   "normal",
			Display: "swap",
		})
	}
	return sheet
}

// FontLinks returns head snippets for google fonts: preconnect hints followed
// by one stylesheet link per family. Nothing when no google font is used.
func FontLinks(t *site.Typography) []string {
	var links []string
	seen := make(map[string]bool)
	for _, f := range []*site.Font{t.HeaderFont, &t.BodyFont} {
		if f == nil || f.Type != common.FontTypeGoogle {
			continue
		}
		family := strings.TrimSpace(f.Name)
		if family == "" || seen[family] {
			continue
		}
		seen[family] = true
		href := googleCSS + "/css2?family=" + url.QueryEscape(family) + "&display=swap"
		links = append(links, `<link href="`+html.EscapeString(href)+`" rel="stylesheet"/>`)
	}
	if len(links) == 0 {
		return nil
	}
	return append([]string{
		`<link rel="preconnect" href="` + googleCSS + `"/>`,
		`<link rel="preconnect" href="` + googleStatic + `" crossorigin/>`,
	}, links...)
}

func containsFont(list []site.Font, f site.Font) bool {
	for _, v := range list {
		if v == f {
			return true
		}
	}
	return false
}
