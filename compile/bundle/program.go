package bundle

import (
	"encoding/json"
	"fmt"
	"strings"

	"sitec/reveal"
	"sitec/site"
)

// Handler addresses enhancement module of one block type.
type Handler struct {
	Type   string
	Module string // virtual module path
	Source string
}

// Program describes client runtime to generate: handlers in type order,
// embedded instance list, reveal controller configuration and optional debug
// global. Code is produced from it by the bundler, nothing is interpolated
// into the runtime itself.
type Program struct {
	Handlers []Handler
	Blocks   []site.Block
	// Nil when reveal animation is disabled, controller is not bundled then.
	Reveal *reveal.Runtime
	Global string
}

// Types returns block types which have handlers.
func (p *Program) Types() []string {
	out := make([]string, 0, len(p.Handlers))
	for _, h := range p.Handlers {
		out = append(out, h.Type)
	}
	return out
}

func (p *Program) handler(module string) (Handler, bool) {
	for _, h := range p.Handlers {
		if h.Module == module {
			return h, true
		}
	}
	return Handler{}, false
}

// pageData is inert JSON module consumed by the runtime.
func (p *Program) pageData() (string, error) {
	blocks := p.Blocks
	if blocks == nil {
		blocks = []site.Block{}
	}
	data, err := json.Marshal(struct {
		Blocks []site.Block    `json:"blocks"`
		Reveal *reveal.Runtime `json:"reveal"`
		Global string          `json:"global,omitempty"`
	}{blocks, p.Reveal, p.Global})
	if err != nil {
		return "", fmt.Errorf("unable to encode page data: %w", err)
	}
	return string(data), nil
}

// handlersModule imports every enhancement module and exports table keyed by
// block type.
func (p *Program) handlersModule() string {
	var b strings.Builder
	for i, h := range p.Handlers {
		fmt.Fprintf(&b, "import { enhance as h%d } from %s;\n", i, quote(h.Module))
	}
	b.WriteString("\nconst handlers: Record<string, any> = Object.create(null);\n")
	for i, h := range p.Handlers {
		fmt.Fprintf(&b, "handlers[%s] = h%d;\n", quote(h.Type), i)
	}
	b.WriteString("export default handlers;\n")
	return b.String()
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
