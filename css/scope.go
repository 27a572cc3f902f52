package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// BlockAttr is the container attribute carrying block type.
const BlockAttr = "data-block"

// ScopeSelector returns attribute selector matching containers of
// blockType: [data-block="hero"].
func ScopeSelector(blockType string) string {
	return "[" + BlockAttr + "=" + Quote(blockType) + "]"
}

// Rewriter rewrites block stylesheets.
type Rewriter struct {
	log *zap.Logger
}

// NewRewriter creates a new stylesheet rewriter.
func NewRewriter(log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{log: log.Named("css-scope")}
}

// at-rules whose nested rules are not selectors or must stay global.
var verbatimAtRules = map[string]bool{
	"@keyframes":     true,
	"@font-face":     true,
	"@page":          true,
	"@counter-style": true,
	"@property":      true,
}

// Scope prefixes every selector of src with :where([data-block="type"]) so
// the rules only apply inside containers of that block type. Selectors
// already starting with the scope are kept, leading html, body and :root are
// replaced by the scope, selectors starting with :global(x) are unwrapped to x
// and left global, and rules nested in @keyframes or @font-face are left
// alone. Comments are dropped.
func (r *Rewriter) Scope(src []byte, blockType string) (string, error) {
	if blockType == "" {
		return "", errors.New("block type is required for scoping")
	}
	sc := newScope(blockType)

	var (
		out bytes.Buffer
		// one entry per open at-rule block, true when nested rules are kept
		// as is
		stack []bool
		rules int
	)
	verbatim := func() bool {
		return len(stack) > 0 && stack[len(stack)-1]
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(src)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("unable to scope stylesheet for %q: %w", blockType, err)
			}
			r.log.Debug("Stylesheet scoped", zap.String("block", blockType), zap.Int("rules", rules))
			return out.String(), nil

		case css.CommentGrammar:
			// dropped

		case css.AtRuleGrammar:
			out.Write(data)
			out.WriteString(tokensText(parser.Values()))
			out.WriteString(";")

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			out.Write(data)
			out.WriteString(tokensText(parser.Values()))
			out.WriteString("{")
			stack = append(stack, verbatim() || verbatimAtRules[unprefixAtRule(name)])

		case css.EndAtRuleGrammar:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			out.WriteString("}")

		case css.BeginRulesetGrammar:
			selector := strings.TrimSpace(tokensText(parser.Values()))
			if verbatim() {
				out.WriteString(selector)
			} else {
				out.WriteString(strings.Join(sc.apply(splitSelectors(selector)), ","))
				rules++
			}
			out.WriteString("{")

		case css.EndRulesetGrammar:
			out.WriteString("}")

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			out.Write(data)
			out.WriteString(":")
			out.WriteString(tokensText(parser.Values()))
			out.WriteString(";")

		case css.TokenGrammar:
			out.Write(data)
		}
	}
}

// Scope is a convenience wrapper without logging.
func Scope(src []byte, blockType string) (string, error) {
	return NewRewriter(nil).Scope(src, blockType)
}

// unprefixAtRule strips vendor prefix: @-webkit-keyframes is @keyframes.
func unprefixAtRule(name string) string {
	if strings.HasPrefix(name, "@-") {
		if i := strings.IndexByte(name[2:], '-'); i != -1 {
			return "@" + name[i+3:]
		}
	}
	return name
}

func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return sb.String()
}

// splitSelectors splits selector list on top level commas.
func splitSelectors(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))

	res := parts[:0]
	for _, p := range parts {
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

var (
	globalRe = regexp.MustCompile(`:global\((.*?)\)`)
	rootRe   = regexp.MustCompile(`^(html|body|:root)\b`)
)

type scope struct {
	plain string
	where string
}

func newScope(blockType string) scope {
	plain := ScopeSelector(blockType)
	return scope{plain: plain, where: ":where(" + plain + ")"}
}

func (s scope) apply(selectors []string) []string {
	res := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		res = append(res, s.one(sel))
	}
	return res
}

func (s scope) one(sel string) string {
	if strings.HasPrefix(sel, ":global(") {
		// explicit opt out
		return strings.TrimSpace(globalRe.ReplaceAllString(sel, "$1"))
	}
	sel = strings.TrimSpace(globalRe.ReplaceAllString(sel, "$1"))
	if strings.HasPrefix(sel, s.plain) || strings.HasPrefix(sel, s.where) {
		return sel
	}
	if loc := rootRe.FindStringIndex(sel); loc != nil {
		rest := sel[loc[1]:]
		if rest == "" || rest[0] == ' ' || rest[0] == '>' || rest[0] == '+' || rest[0] == '~' {
			return s.where + rest
		}
		// html.dark, body[data-x]: compound selector on the root element
		return s.where + " " + sel
	}
	return s.where + " " + sel
}
