// Package reveal keeps entrance animation parameters. A single Params value
// produces both CSS custom properties with reveal rules and the runtime
// configuration for the browser controller, so the two never disagree.
package reveal

import (
	"fmt"
	"strconv"

	"sitec/common"
	"sitec/css"
)

const (
	Ease    = "cubic-bezier(0.2, 0.8, 0.2, 1)"
	Stagger = 60 // ms, exposed as --reveal-stagger

	StaggerBase = 120 // ms, delay of the first element in a visible batch
	StaggerStep = 70  // ms added per element of the batch
	StaggerMax  = 420 // ms, cap of the per element part
	Threshold   = 0.25
	FailSafe    = 1500 // ms, everything is revealed after this no matter what
)

// Params are resolved animation settings.
type Params struct {
	Type        common.RevealType
	DurationMs  int
	FromOpacity float64
	FromY       float64 // px
	FromScale   float64
	StaggerMs   int
	Ease        string
}

// New resolves reveal settings. Empty values take defaults: fade, default
// length and default emphasis.
func New(typ common.RevealType, length common.RevealLength, emphasis common.RevealEmphasis) (Params, error) {
	if typ == "" {
		typ = common.RevealTypeFade
	}
	if length == "" {
		length = common.RevealLengthDefault
	}
	if emphasis == "" {
		emphasis = common.RevealEmphasisDefault
	}

	p := Params{Type: typ, StaggerMs: Stagger, Ease: Ease, FromScale: 1}

	switch length {
	case common.RevealLengthShort:
		p.DurationMs = 300
	case common.RevealLengthDefault:
		p.DurationMs = 600
	case common.RevealLengthLong:
		p.DurationMs = 1000
	default:
		return Params{}, fmt.Errorf("unknown reveal length %q", length)
	}

	var flyY, scaleFrom float64
	switch emphasis {
	case common.RevealEmphasisLow:
		flyY, scaleFrom = 6, 0.99
	case common.RevealEmphasisDefault:
		flyY, scaleFrom = 10, 0.97
	case common.RevealEmphasisExtra:
		flyY, scaleFrom = 18, 0.94
	default:
		return Params{}, fmt.Errorf("unknown reveal emphasis %q", emphasis)
	}

	switch typ {
	case common.RevealTypeFade:
	case common.RevealTypeFly:
		p.FromY = flyY
	case common.RevealTypeScale:
		p.FromScale = scaleFrom
	case common.RevealTypeNone:
		p.FromOpacity = 1
	default:
		return Params{}, fmt.Errorf("unknown reveal type %q", typ)
	}
	return p, nil
}

// Enabled reports whether anything has to be emitted.
func (p Params) Enabled() bool {
	return p.Type.Enabled()
}

// Vars returns custom properties for the root variable block, nothing when
// animation is disabled.
func (p Params) Vars() []css.Declaration {
	if !p.Enabled() {
		return nil
	}
	return []css.Declaration{
		css.Decl("--reveal-type", p.Type.String()),
		css.Decl("--reveal-duration", strconv.Itoa(p.DurationMs)+"ms"),
		css.Decl("--reveal-ease", p.Ease),
		css.Decl("--reveal-from-opacity", num(p.FromOpacity)),
		css.Decl("--reveal-from-y", num(p.FromY)+"px"),
		css.Decl("--reveal-from-scale", num(p.FromScale)),
		css.Decl("--reveal-stagger", strconv.Itoa(p.StaggerMs)+"ms"),
	}
}

const (
	container = "[data-block-id]"
	running   = `html[data-js="true"] [data-block-id]`
	revealed  = `html[data-js="true"] [data-block-id][data-revealed="true"]`
)

// Rules returns reveal rules. Containers are visible by default, hidden only
// while the runtime marker is present, and never animated when reduced
// motion is requested.
func (p Params) Rules() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	if !p.Enabled() {
		return sheet
	}
	sheet.AddRule(container,
		css.Decl("opacity", "1"),
		css.Decl("transform", "none"),
		css.Decl("transition", "none"),
	)
	sheet.AddRule(running,
		css.Decl("opacity", "var(--reveal-from-opacity, 0)"),
		css.Decl("transform", "translateY(var(--reveal-from-y, 10px)) scale(var(--reveal-from-scale, 1))"),
		css.Decl("transition", "opacity var(--reveal-duration, 450ms) var(--reveal-ease, ease), transform var(--reveal-duration, 450ms) var(--reveal-ease, ease)"),
		css.Decl("will-change", "opacity, transform"),
	)
	sheet.AddRule(revealed,
		css.Decl("opacity", "1"),
		css.Decl("transform", "translateY(0) scale(1)"),
	)
	sheet.AddAtBlock("@media (prefers-reduced-motion: reduce)", css.Rule{
		Selectors: []string{container},
		Decls: []css.Declaration{
			css.Decl("opacity", "1 !important"),
			css.Decl("transform", "none !important"),
			css.Decl("transition", "none !important"),
		},
	})
	return sheet
}

// Runtime is configuration of the browser reveal controller. Field names are
// part of the runtime contract.
type Runtime struct {
	Type        string  `json:"type"`
	DurationMs  int     `json:"durationMs"`
	Threshold   float64 `json:"threshold"`
	StaggerBase int     `json:"staggerBase"`
	StaggerStep int     `json:"staggerStep"`
	StaggerMax  int     `json:"staggerMax"`
	FailSafeMs  int     `json:"failSafeMs"`
}

// Runtime returns controller configuration, used as fallback when live
// custom properties can not be read.
func (p Params) Runtime() Runtime {
	return Runtime{
		Type:        p.Type.String(),
		DurationMs:  p.DurationMs,
		Threshold:   Threshold,
		StaggerBase: StaggerBase,
		StaggerStep: StaggerStep,
		StaggerMax:  StaggerMax,
		FailSafeMs:  FailSafe,
	}
}

// Delay returns reveal delay of i-th element of a visible batch.
func Delay(i int) int {
	return StaggerBase + min(i*StaggerStep, StaggerMax)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
