// Package site holds compile input: theme and ordered block instances as
// produced by the authoring system.
package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"sitec/common"
	"sitec/site/fields"
)

// ErrInvalidSite is returned when site document breaks input invariants.
var ErrInvalidSite = errors.New("invalid site")

// Site is immutable input of a single compile run.
type Site struct {
	ID     string       `json:"id,omitempty" yaml:"id,omitempty"`
	Lang   string       `json:"lang,omitempty" yaml:"lang,omitempty"`
	Theme  Theme        `json:"theme" yaml:"theme"`
	Blocks []Block      `json:"blocks" yaml:"blocks"`
	Header fields.Map   `json:"header,omitempty" yaml:"header,omitempty"`
	Footer fields.Map   `json:"footer,omitempty" yaml:"footer,omitempty"`
	lang   language.Tag
}

// Block is a single placed block instance.
type Block struct {
	ID     string     `json:"id" yaml:"id"`
	Type   string     `json:"type" yaml:"type"`
	Fields fields.Map `json:"fields" yaml:"fields"`
	Data   fields.Map `json:"data,omitempty" yaml:"data,omitempty"`
}

type Theme struct {
	Colors     Colors         `json:"colors" yaml:"colors"`
	Rounded    common.Rounded `json:"rounded" yaml:"rounded"`
	Shadows    common.Shadows `json:"shadows" yaml:"shadows"`
	Spacing    Spacing        `json:"spacing" yaml:"spacing"`
	Typography Typography     `json:"typography" yaml:"typography"`
	Animations Animations     `json:"animations" yaml:"animations"`
}

type Colors struct {
	Primary     string `json:"primary" yaml:"primary"`
	PrimaryText string `json:"primaryText" yaml:"primaryText"`
	Background  string `json:"background" yaml:"background"`
	Surface     string `json:"surface" yaml:"surface"`
	Text        string `json:"text" yaml:"text"`
	MutedText   string `json:"mutedText" yaml:"mutedText"`
	Border      string `json:"border" yaml:"border"`
	Link        string `json:"link" yaml:"link"`
}

type Spacing struct {
	Elements common.Spacing `json:"elements" yaml:"elements"`
	Sections common.Spacing `json:"sections" yaml:"sections"`
	Align    Align          `json:"align" yaml:"align"`
}

type Align struct {
	Desktop common.Align `json:"desktop" yaml:"desktop"`
	Mobile  common.Align `json:"mobile" yaml:"mobile"`
}

type Typography struct {
	HeaderFont *Font         `json:"headerFont,omitempty" yaml:"headerFont,omitempty"`
	BodyFont   Font          `json:"bodyFont" yaml:"bodyFont"`
	Sizing     common.Sizing `json:"sizing" yaml:"sizing"`
}

// Font describes font family and how it gets loaded.
type Font struct {
	Type   common.FontType `json:"type" yaml:"type"`
	Name   string          `json:"name" yaml:"name"`
	Source string          `json:"source,omitempty" yaml:"source,omitempty"`
}

type Animations struct {
	Reveal Reveal `json:"reveal" yaml:"reveal"`
}

type Reveal struct {
	Type     common.RevealType     `json:"type" yaml:"type"`
	Length   common.RevealLength   `json:"length,omitempty" yaml:"length,omitempty"`
	Emphasis common.RevealEmphasis `json:"emphasis,omitempty" yaml:"emphasis,omitempty"`
}

// Header returns header font falling back to body font.
func (t *Typography) Header() Font {
	if t.HeaderFont != nil && t.HeaderFont.Name != "" {
		return *t.HeaderFont
	}
	return t.BodyFont
}

// Language returns parsed site language, English when unset.
func (s *Site) Language() language.Tag {
	if s.lang == language.Und {
		if tag, err := language.Parse(s.Lang); err == nil {
			return tag
		}
		return language.English
	}
	return s.lang
}

var blockTypeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Normalize fills optional values with their defaults and checks input
// invariants. All problems found are reported together.
func (s *Site) Normalize() error {
	var errs error

	s.lang = language.English
	if s.Lang != "" {
		tag, err := language.Parse(s.Lang)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("lang %q: %w", s.Lang, err))
		} else {
			s.lang = tag
		}
	}

	r := &s.Theme.Animations.Reveal
	if r.Type == "" {
		r.Type = common.RevealTypeFade
	}
	if r.Length == "" {
		r.Length = common.RevealLengthDefault
	}
	if r.Emphasis == "" {
		r.Emphasis = common.RevealEmphasisDefault
	}

	errs = multierr.Append(errs, s.Theme.validate())

	seen := make(map[string]int, len(s.Blocks))
	for i, b := range s.Blocks {
		if b.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("block %d: empty id", i))
		} else if prev, ok := seen[b.ID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("block %d: id %q already used by block %d", i, b.ID, prev))
		} else {
			seen[b.ID] = i
		}
		if !blockTypeRe.MatchString(b.Type) {
			errs = multierr.Append(errs, fmt.Errorf("block %d: bad type %q", i, b.Type))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSite, errs)
	}
	return nil
}

func (t *Theme) validate() error {
	var errs error
	check := func(name string, valid bool, value any) {
		if !valid {
			errs = multierr.Append(errs, fmt.Errorf("theme %s: unknown value %q", name, value))
		}
	}
	check("rounded", t.Rounded.IsValid(), t.Rounded)
	check("shadows", t.Shadows.IsValid(), t.Shadows)
	check("spacing.elements", t.Spacing.Elements.IsValid(), t.Spacing.Elements)
	check("spacing.sections", t.Spacing.Sections.IsValid(), t.Spacing.Sections)
	check("spacing.align.desktop", t.Spacing.Align.Desktop.IsValid(), t.Spacing.Align.Desktop)
	check("spacing.align.mobile", t.Spacing.Align.Mobile.IsValid(), t.Spacing.Align.Mobile)
	check("typography.sizing", t.Typography.Sizing.IsValid(), t.Typography.Sizing)
	check("animations.reveal.type", t.Animations.Reveal.Type.IsValid(), t.Animations.Reveal.Type)
	check("animations.reveal.length", t.Animations.Reveal.Length.IsValid(), t.Animations.Reveal.Length)
	check("animations.reveal.emphasis", t.Animations.Reveal.Emphasis.IsValid(), t.Animations.Reveal.Emphasis)

	errs = multierr.Append(errs, t.Typography.BodyFont.validate("bodyFont"))
	if t.Typography.HeaderFont != nil {
		errs = multierr.Append(errs, t.Typography.HeaderFont.validate("headerFont"))
	}
	return errs
}

func (f *Font) validate(name string) error {
	if !f.Type.IsValid() {
		return fmt.Errorf("typography %s: unknown font type %q", name, f.Type)
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("typography %s: empty font name", name)
	}
	if f.Type == common.FontTypeCustom && strings.TrimSpace(f.Source) == "" {
		return fmt.Errorf("typography %s: custom font %q requires source", name, f.Name)
	}
	return nil
}

// Decode reads site document. Format is selected by ext (".json", ".yaml" or
// ".yml"). Unknown keys are rejected. Decoded site is normalized.
func Decode(data []byte, ext string) (*Site, error) {
	var s Site
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("unable to decode site json: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("unable to decode site yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported site document format %q", ext)
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads site document from file.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read site: %w", err)
	}
	s, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}
