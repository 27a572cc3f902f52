package bundle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidScript is returned for enhancement scripts which import modules
// at runtime or do not export enhance.
var ErrInvalidScript = errors.New("invalid enhancement script")

var (
	enhanceExport = regexp.MustCompile(`\bexport\s+(?:async\s+)?function\s*\*?\s*enhance\s*[(<]|\bexport\s+(?:const|let|var)\s+enhance\b|\bexport\s*\{[^}]*\benhance\b[^}]*\}`)
	importKeyword = regexp.MustCompile(`\bimport\b`)
	reexport      = regexp.MustCompile(`\bexport\s+(type\s+)?(?:\*|\{[^}]*\})\s*(?:as\s+[\w$]+\s*)?from\b`)
)

// CheckScript inspects enhancement script source. Only type imports are
// allowed since every script is bundled as an isolated module.
func CheckScript(src string) error {
	code := stripLiterals(src)

	for _, loc := range importKeyword.FindAllStringIndex(code, -1) {
		if loc[0] > 0 && strings.ContainsRune(".$", rune(code[loc[0]-1])) {
			continue
		}
		if stmt, ok := valueImport(code[loc[1]:]); ok {
			return fmt.Errorf("%w: runtime import at line %d (%s), use \"import type\"",
				ErrInvalidScript, line(code, loc[0]), stmt)
		}
	}
	for _, m := range reexport.FindAllStringSubmatchIndex(code, -1) {
		if m[2] < 0 {
			return fmt.Errorf("%w: re-export at line %d pulls module in at runtime", ErrInvalidScript, line(code, m[0]))
		}
	}
	if !enhanceExport.MatchString(code) {
		return fmt.Errorf("%w: function enhance is not exported", ErrInvalidScript)
	}
	return nil
}

// valueImport classifies text following import keyword.
func valueImport(rest string) (string, bool) {
	rest = strings.TrimLeft(rest, " \t\r\n")
	switch {
	case rest == "":
		return "", false
	case rest[0] == '.':
		// import.meta
		return "", false
	case rest[0] == '(':
		return "dynamic import", true
	case rest[0] == '"' || rest[0] == '\'':
		return "side effect import", true
	case rest[0] == '{':
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "named import", true
		}
		for _, spec := range strings.Split(rest[1:end], ",") {
			spec = strings.TrimSpace(spec)
			if spec != "" && !strings.HasPrefix(spec, "type ") {
				return "named import", true
			}
		}
		return "", false
	}
	if len(rest) > 4 && strings.HasPrefix(rest, "type") && !isIdent(rest[4]) {
		after := strings.TrimLeft(rest[4:], " \t\r\n")
		switch {
		case after == "" || after[0] == ',':
			// "import type, { x }" is default import named type plus more
			return "default import", true
		case strings.HasPrefix(after, "from") && (len(after) == 4 || !isIdent(after[4])):
			// "import type from" is default import named type too, unless
			// "from" is the imported name
			next := strings.TrimLeft(after[4:], " \t\r\n")
			if strings.HasPrefix(next, "from") && (len(next) == 4 || !isIdent(next[4])) {
				return "", false
			}
			return "default import", true
		}
		return "", false
	}
	return "import", true
}

func line(s string, off int) int {
	return strings.Count(s[:off], "\n") + 1
}

// stripLiterals blanks out comments and contents of string, template and
// regular expression literals keeping offsets and line breaks. Quotes are
// kept so side effect imports stay recognizable.
func stripLiterals(src string) string {
	out := []byte(src)
	blank := func(from, to int) {
		for i := from; i < to && i < len(out); i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}

	var prev byte // last significant character
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			blank(i, i+end)
			i += end
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src) - i - 2
			} else {
				end += 2
			}
			blank(i, i+2+end)
			i += 2 + end
			continue
		case c == '\'' || c == '"' || c == '`':
			end := literalEnd(src, i+1, c)
			blank(i+1, end)
			i = end + 1
			prev = c
			continue
		case c == '/' && regexAllowed(prev, src[:i]):
			end := literalEnd(src, i+1, '/')
			blank(i+1, end)
			i = end + 1
			prev = 'a'
			continue
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			prev = c
		}
		i++
	}
	return string(out)
}

// literalEnd returns offset of closing quote or end of input. Single and
// double quoted strings and regular expressions end at line break.
func literalEnd(src string, i int, quote byte) int {
	inClass := false
	for ; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case c == '\n' && quote != '`':
			return i
		case quote == '/' && c == '[':
			inClass = true
		case quote == '/' && c == ']':
			inClass = false
		case c == quote && !inClass:
			return i
		}
	}
	return len(src)
}

func regexAllowed(prev byte, before string) bool {
	if prev == 0 || strings.IndexByte("(,=:[!&|?{};+-*%<>~^", prev) >= 0 {
		return true
	}
	before = strings.TrimRight(before, " \t\r\n")
	for _, kw := range []string{"return", "typeof", "case", "do", "else", "in", "of", "void", "yield", "await"} {
		if strings.HasSuffix(before, kw) {
			rest := before[:len(before)-len(kw)]
			if rest == "" || !isIdent(rest[len(rest)-1]) {
				return true
			}
		}
	}
	return false
}

func isIdent(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
