// Package common keeps closed value sets shared by the site model, the
// configuration and the compile stages. Enumerations are generated with
// go-enum, do not edit enums_enum.go directly.
package common

//go:generate go tool go-enum --marshal --names --values

// How a font is delivered to the browser.
// ENUM(native, google, custom)
type FontType string

// Corner radius preset.
// ENUM(none, sm, md, lg, xl)
type Rounded string

// Shadow preset.
// ENUM(none, sm, md, lg)
type Shadows string

// Typography sizing scale.
// ENUM(sm, md, lg)
type Sizing string

// Spacing scale for sections and elements.
// ENUM(sm, md, lg)
type Spacing string

// Content alignment.
// ENUM(left, center, right)
type Align string

// Entrance animation applied to block containers.
// ENUM(fade, scale, fly, none)
type RevealType string

// Entrance animation duration class.
// ENUM(short, default, long)
type RevealLength string

// Entrance animation emphasis class.
// ENUM(low, default, extra)
type RevealEmphasis string

// Kind of link value produced by the authoring system.
// ENUM(none, url, internal, anchor, tel, mailto)
type LinkKind string

// How a list of visibility conditions is combined.
// ENUM(all, any)
type ConditionMode string

// File naming convention of a block library.
// ENUM(current, legacy)
type Layout string

// Enabled reports whether containers are animated at all.
func (r RevealType) Enabled() bool {
	return r != RevealTypeNone
}
