// Package theme turns site theme settings into CSS: root custom properties,
// base element rules, font faces and the design-token mapping used by the
// utility generator. Every enumerated setting maps through a fixed table,
// unknown values are reported as errors.
package theme

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"sitec/common"
	"sitec/css"
	"sitec/css/utility"
	"sitec/reveal"
	"sitec/site"
)

var spaceScale = []css.Declaration{
	{Name: "--space-1", Value: ".25rem"},
	{Name: "--space-2", Value: ".5rem"},
	{Name: "--space-3", Value: ".75rem"},
	{Name: "--space-4", Value: "1rem"},
	{Name: "--space-6", Value: "1.5rem"},
	{Name: "--space-8", Value: "2rem"},
	{Name: "--space-12", Value: "3rem"},
}

var sectionSpace = map[common.Spacing]string{
	common.SpacingSm: "3rem",
	common.SpacingMd: "4.5rem",
	common.SpacingLg: "6rem",
}

var elementSpace = map[common.Spacing]string{
	common.SpacingSm: ".75rem",
	common.SpacingMd: "1rem",
	common.SpacingLg: "1.5rem",
}

var fontSizeNames = []string{"sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl"}

// px per fontSizeNames entry
var fontSizes = map[common.Sizing][]int{
	common.SizingSm: {13, 15, 17, 19, 22, 28, 34, 44, 56, 68, 88, 112},
	common.SizingMd: {14, 16, 18, 20, 24, 30, 36, 48, 60, 72, 96, 128},
	common.SizingLg: {15, 18, 20, 22, 28, 36, 44, 56, 72, 88, 112, 144},
}

var radiusNames = []string{"xs", "sm", "md", "lg", "xl", "2xl", "3xl", "4xl"}

// px per radiusNames entry
var radii = map[common.Rounded][]int{
	common.RoundedNone: {0, 0, 0, 0, 0, 0, 0, 0},
	common.RoundedSm:   {2, 4, 6, 8, 10, 12, 14, 16},
	common.RoundedMd:   {3, 6, 10, 14, 18, 22, 28, 36},
	common.RoundedLg:   {4, 10, 16, 22, 28, 36, 44, 56},
	common.RoundedXl:   {6, 14, 22, 32, 44, 56, 72, 96},
}

const (
	shadowNone = "0 0 #0000"
	shadow1    = "0 1px 2px 0 rgb(0 0 0 / 0.05)"
	shadow2    = "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)"
	shadow3    = "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)"
	shadow4    = "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)"
	shadow5    = "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)"
)

// --shadow, --shadow-sm, --shadow-lg
var shadows = map[common.Shadows][3]string{
	common.ShadowsNone: {shadowNone, shadowNone, shadowNone},
	common.ShadowsSm:   {shadow2, shadow1, shadow3},
	common.ShadowsMd:   {shadow3, shadow2, shadow4},
	common.ShadowsLg:   {shadow4, shadow3, shadow5},
}

// Vars returns custom properties of the root block in emission order:
// colors, spacing, fonts, font sizes, radii, shadows and reveal settings.
func Vars(t *site.Theme) ([]css.Declaration, error) {
	var (
		errs error
		out  []css.Declaration
	)

	for _, c := range colorVars(&t.Colors) {
		if err := checkValue(c.Value); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("color %s: %w", strings.TrimPrefix(c.Name, "--color-"), err))
		}
		out = append(out, c)
	}

	out = append(out, spaceScale...)
	section, ok := sectionSpace[t.Spacing.Sections]
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("unknown sections spacing %q", t.Spacing.Sections))
	}
	element, ok := elementSpace[t.Spacing.Elements]
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("unknown elements spacing %q", t.Spacing.Elements))
	}
	if !t.Spacing.Align.Desktop.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("unknown desktop alignment %q", t.Spacing.Align.Desktop))
	}
	if !t.Spacing.Align.Mobile.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("unknown mobile alignment %q", t.Spacing.Align.Mobile))
	}
	out = append(out,
		css.Decl("--space-section", section),
		css.Decl("--space-element", element),
		css.Decl("--align-desktop", t.Spacing.Align.Desktop.String()),
		css.Decl("--align-mobile", t.Spacing.Align.Mobile.String()),
	)

	body := t.Typography.BodyFont
	header := t.Typography.Header()
	for _, f := range []site.Font{body, header} {
		if err := checkValue(f.Name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("font %q: %w", f.Name, err))
		}
	}
	out = append(out,
		css.Decl("--font-body", Family(body)),
		css.Decl("--font-header", Family(header)),
	)

	sizes, ok := fontSizes[t.Typography.Sizing]
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("unknown typography sizing %q", t.Typography.Sizing))
	}
	for i, px := range sizes {
		out = append(out, css.Decl("--font-"+fontSizeNames[i], fmt.Sprintf("%dpx", px)))
	}

	rs, ok := radii[t.Rounded]
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("unknown rounded preset %q", t.Rounded))
	}
	for i, px := range rs {
		out = append(out, css.Decl("--rounded-"+radiusNames[i], fmt.Sprintf("%dpx", px)))
	}
	if ok {
		out = append(out, css.Decl("--rounded-none", "0px"), css.Decl("--rounded-full", "9999px"))
	}

	if sh, ok := shadows[t.Shadows]; ok {
		out = append(out,
			css.Decl("--shadow", sh[0]),
			css.Decl("--shadow-sm", sh[1]),
			css.Decl("--shadow-lg", sh[2]),
		)
	} else {
		errs = multierr.Append(errs, fmt.Errorf("unknown shadows preset %q", t.Shadows))
	}

	r := t.Animations.Reveal
	p, err := reveal.New(r.Type, r.Length, r.Emphasis)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	out = append(out, p.Vars()...)

	if errs != nil {
		return nil, fmt.Errorf("theme: %w", errs)
	}
	return out, nil
}

func colorVars(c *site.Colors) []css.Declaration {
	return []css.Declaration{
		css.Decl("--color-background", c.Background),
		css.Decl("--color-text", c.Text),
		css.Decl("--color-primary", c.Primary),
		css.Decl("--color-primary-text", c.PrimaryText),
		css.Decl("--color-border", c.Border),
		css.Decl("--color-link", c.Link),
		css.Decl("--color-surface", c.Surface),
		css.Decl("--color-muted-text", c.MutedText),
	}
}

// checkValue rejects values which would terminate declaration or rule.
func checkValue(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("empty value")
	}
	if strings.ContainsAny(v, ";{}<>\n\r") {
		return fmt.Errorf("value %q is not allowed", v)
	}
	return nil
}

// Family returns font-family value. Native fonts are used as named (they may
// be generic keywords such as system-ui), others are quoted.
func Family(f site.Font) string {
	name := strings.TrimSpace(f.Name)
	if f.Type == common.FontTypeNative {
		return name
	}
	return css.Quote(name)
}

// Root returns ":root" rule with all theme custom properties.
func Root(t *site.Theme) (*css.Stylesheet, error) {
	vars, err := Vars(t)
	if err != nil {
		return nil, err
	}
	sheet := &css.Stylesheet{}
	sheet.AddRule(":root", vars...)
	return sheet, nil
}

// BaseRules returns element rules applying theme variables globally.
func BaseRules() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	sheet.AddGroup([]string{"html", "body"},
		css.Decl("font-family", "var(--font-body)"),
		css.Decl("color", "var(--color-text)"),
		css.Decl("background", "var(--color-background)"),
	)
	sheet.AddRule("a", css.Decl("color", "var(--color-link)"))
	sheet.AddRule("*", css.Decl("border-color", "var(--color-border)"))
	sheet.AddGroup([]string{"h1", "h2", "h3", "h4", "h5", "h6"},
		css.Decl("font-family", "var(--font-header)"),
	)
	return sheet
}

// Globals returns layout helper classes available to every block template.
func Globals() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	sheet.AddRule(".section-space",
		css.Decl("padding-top", "var(--space-section)"),
		css.Decl("padding-bottom", "var(--space-section)"),
	)
	sheet.AddRule(".element-gap", css.Decl("gap", "var(--space-element)"))
	sheet.AddRule(".element-stack > * + *", css.Decl("margin-top", "var(--space-element)"))
	sheet.AddRule(".align-content", css.Decl("text-align", "var(--align-mobile)"))
	sheet.AddAtBlock("@media (min-width: 768px)", css.Rule{
		Selectors: []string{".align-content"},
		Decls:     []css.Declaration{css.Decl("text-align", "var(--align-desktop)")},
	})
	return sheet
}

// Tokens returns design-token mapping for the utility generator. Names refer
// to custom properties produced by Vars.
func Tokens() utility.Tokens {
	t := utility.Tokens{
		Colors: map[string]string{
			"primary":      "var(--color-primary)",
			"primary-text": "var(--color-primary-text)",
			"background":   "var(--color-background)",
			"border":       "var(--color-border)",
			"link":         "var(--color-link)",
			"surface":      "var(--color-surface)",
			"text":         "var(--color-text)",
			"muted-text":   "var(--color-muted-text)",
		},
		FontSize: make(map[string]string, len(fontSizeNames)),
		FontFamily: map[string]string{
			"body":   "var(--font-body)",
			"header": "var(--font-header)",
		},
		Radius: map[string]string{
			"none": "var(--rounded-none)",
			"full": "var(--rounded-full)",
		},
		Shadow: map[string]string{
			"DEFAULT": "var(--shadow)",
			"sm":      "var(--shadow-sm)",
			"lg":      "var(--shadow-lg)",
		},
		Screens: utility.DefaultScreens(),
		Container: utility.Container{
			Center: true,
			Padding: map[string]string{
				"DEFAULT": "1rem",
				"sm":      "2rem",
				"lg":      "4rem",
				"xl":      "5rem",
				"2xl":     "6rem",
			},
		},
	}
	for _, n := range fontSizeNames {
		t.FontSize[n] = "var(--font-" + n + ")"
	}
	for _, n := range radiusNames {
		t.Radius[n] = "var(--rounded-" + n + ")"
	}
	return t
}
