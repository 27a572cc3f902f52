package compile

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"sitec/compile/bundle"
	"sitec/compile/render"
	"sitec/compile/stylesheet"
	"sitec/site"
	"sitec/utils/debug"
)

// TypePlan records what a block type contributed to the build.
type TypePlan struct {
	Type      string
	Instances int
	Template  bool
	Style     bool
	Script    bool
}

// Plan describes a compile run, it is dumped into debug reports.
type Plan struct {
	Site     string
	BuildID  uuid.UUID
	Stamp    time.Time
	Types    []TypePlan
	Rendered int
	Failed   []string // instance ids dropped from page
	Shell    bool
	Classes  int
}

func newPlan(s *site.Site, types []string, page *render.Result, styles *stylesheet.Result, script *bundle.Result) *Plan {
	counts := make(map[string]int, len(types))
	for _, b := range s.Blocks {
		counts[b.Type]++
	}
	p := &Plan{
		Site:     s.ID,
		Rendered: page.Rendered,
		Failed:   slices.Clone(page.Failed),
		Shell:    page.Shell,
		Classes:  styles.Classes,
	}
	for _, t := range types {
		p.Types = append(p.Types, TypePlan{
			Type:      t,
			Instances: counts[t],
			Template:  slices.Contains(page.Templates, t),
			Style:     slices.Contains(styles.Styles, t),
			Script:    slices.Contains(script.Scripts, t),
		})
	}
	return p
}

// String returns readable plan tree.
func (p *Plan) String() string {
	if p == nil {
		return "<nil Plan>"
	}
	tw := debug.NewTreeWriter()
	tw.TextBlock(0, "Site", p.Site)
	tw.Line(0, "Build %s at %s", p.BuildID, p.Stamp.Format(time.RFC3339))
	tw.Line(0, "Block types: %d", len(p.Types))
	for _, t := range p.Types {
		tw.Line(1, "Type=%q instances[%d]", t.Type, t.Instances)
		tw.Flags(2, map[string]bool{
			"template": t.Template,
			"style":    t.Style,
			"script":   t.Script,
		})
	}
	tw.Line(0, "Rendered instances: %d", p.Rendered)
	if len(p.Failed) > 0 {
		failed := slices.Clone(p.Failed)
		sort.Sort(natural.StringSlice(failed))
		tw.Line(0, "Failed instances: %d", len(failed))
		for _, id := range failed {
			tw.Line(1, "ID=%q", id)
		}
	}
	tw.Line(0, "Shell found: %t", p.Shell)
	tw.Line(0, "Utility candidates: %d", p.Classes)
	return tw.String()
}
