package productpage

import (
	"regexp"
	"strings"

	"github.com/usestring/easyeda-mcp/pkg/jsliteral"
)

// MaxPlaceholders is the number of single-letter placeholder names
// (a..z then A..Z). Argument values past this index have no placeholder.
const MaxPlaceholders = 52

const placeholderAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// invocationClose matches the close of the self-invoking wrapper at the end
// of the script, with an optional statement terminator.
var invocationClose = regexp.MustCompile(`\)\)\s*;?\s*$`)

// PlaceholderName returns the placeholder letter for argument index i.
func PlaceholderName(i int) (byte, bool) {
	if i < 0 || i >= MaxPlaceholders {
		return 0, false
	}
	return placeholderAlphabet[i], true
}

// Reconstruct decodes a self-invoking state script into its literal value.
//
// The script has the shape `<prefix>{skeleton}(arg0, arg1, ...))` where the
// skeleton uses `:a`, `:b`, ... as property values standing for the
// arguments. Each placeholder is replaced by its argument rendered as a
// quoted string, then the skeleton is parsed.
func Reconstruct(script string) (jsliteral.Value, error) {
	skeleton, args, err := SplitPayload(script)
	if err != nil {
		return jsliteral.Value{}, err
	}

	values, err := ParseArguments(args)
	if err != nil {
		return jsliteral.Value{}, err
	}

	root, err := jsliteral.Parse(Substitute(skeleton, values))
	if err != nil {
		return jsliteral.Value{}, malformed("parsing substituted skeleton", err)
	}
	return root, nil
}

// SplitPayload separates a state script into the skeleton literal and the
// raw argument list text.
func SplitPayload(script string) (skeleton, args string, err error) {
	start := strings.IndexByte(script, '{')
	if start < 0 {
		return "", "", malformed("no opening brace in script", nil)
	}
	body := script[start:]

	loc := invocationClose.FindStringIndex(body)
	if loc == nil {
		return "", "", malformed("script does not end with an invocation close", nil)
	}
	body = body[:loc[0]]

	// The skeleton may itself contain "}(", so only the last one separates
	// it from the arguments.
	split := strings.LastIndex(body, "}(")
	if split < 0 {
		return "", "", malformed("no argument list after skeleton", nil)
	}

	return unwrapReturn(body[:split+1]), body[split+2:], nil
}

// unwrapReturn turns a function body `{return <literal>}` into `<literal>`.
// Anything else is returned unchanged.
func unwrapReturn(skeleton string) string {
	inner := strings.TrimSpace(skeleton[1 : len(skeleton)-1])
	rest, ok := strings.CutPrefix(inner, "return")
	if !ok || rest == "" || jsliteral.IsIdentPart(rest[0]) {
		return skeleton
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ";")
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "{") {
		return skeleton
	}
	return rest
}

// ParseArguments parses the argument list text as an array literal. A
// list holding a single array literal, as in `(["R1","100k"])`, is that
// array's elements.
func ParseArguments(args string) ([]jsliteral.Value, error) {
	arr, err := jsliteral.Parse("[" + args + "]")
	if err != nil {
		return nil, malformed("parsing argument list", err)
	}
	items := arr.Items()
	if len(items) == 1 && items[0].Kind() == jsliteral.Array {
		return items[0].Items(), nil
	}
	return items, nil
}

// Substitute replaces placeholder tokens in skeleton with the string form of
// the matching values in a single scan. At most MaxPlaceholders values are
// used; the placeholders of any further values stay in the text.
//
// A placeholder is either a bare `:<letter>` token, where letter is not
// followed by another identifier character, or a property value string
// literal whose whole content is `:<letter>`. Other string contents and
// comments are left alone.
func Substitute(skeleton string, values []jsliteral.Value) string {
	n := min(len(values), MaxPlaceholders)
	if n == 0 {
		return skeleton
	}
	quoted := make([]string, n)
	for i := range quoted {
		quoted[i] = jsliteral.Quote(values[i].String())
	}
	lookup := func(letter byte) (string, bool) {
		idx := strings.IndexByte(placeholderAlphabet, letter)
		if idx < 0 || idx >= n {
			return "", false
		}
		return quoted[idx], true
	}

	s := skeleton
	var sb strings.Builder
	sb.Grow(len(s))

	last := 0
	var prev byte // last significant byte outside strings and comments
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			end, ok := stringEnd(s, i)
			if !ok {
				i = len(s)
				continue
			}
			if prev == ':' && end == i+3 && s[i+1] == ':' {
				if q, ok := lookup(s[i+2]); ok {
					sb.WriteString(s[last:i])
					sb.WriteString(q)
					last = end + 1
				}
			}
			prev = c
			i = end + 1
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			nl := strings.IndexByte(s[i:], '\n')
			if nl < 0 {
				i = len(s)
			} else {
				i += nl + 1
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 4
			}
		case c == ':' && i+1 < len(s) && (i+2 == len(s) || !jsliteral.IsIdentPart(s[i+2])):
			q, ok := lookup(s[i+1])
			if !ok {
				prev = c
				i++
				continue
			}
			sb.WriteString(s[last : i+1])
			sb.WriteString(q)
			last = i + 2
			prev = '"'
			i += 2
		default:
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				prev = c
			}
			i++
		}
	}

	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// stringEnd returns the index of the quote closing the string literal that
// opens at start.
func stringEnd(s string, start int) (int, bool) {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i, true
		}
	}
	return 0, false
}
