package jsliteral

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// MaxDepth bounds container nesting.
const MaxDepth = 512

// SyntaxError describes a parse failure at a byte offset of the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsliteral: %s at offset %d", e.Msg, e.Offset)
}

// Parse parses a single relaxed literal. Leading and trailing whitespace and
// comments are allowed; anything else after the value is an error.
func Parse(src string) (Value, error) {
	p := &parser{src: src}
	p.skipSpace()
	v, err := p.parseValue(0)
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return Value{}, p.errorf("unexpected %q after value", p.peekRune())
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekRune() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

// skipSpace skips whitespace and JS comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
			} else {
				p.pos += end + 1
			}
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
			} else {
				p.pos += end + 4
			}
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r != '\u00a0' && r != '\ufeff' && r != '\u2028' && r != '\u2029' {
				return
			}
			p.pos += size
		default:
			return
		}
	}
}

func (p *parser) parseValue(depth int) (Value, error) {
	if p.eof() {
		return Value{}, p.errorf("unexpected end of input")
	}
	c := p.src[p.pos]
	switch {
	case c == '{':
		return p.parseObject(depth + 1)
	case c == '[':
		return p.parseArray(depth + 1)
	case c == '"' || c == '\'':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseKeyword()
	default:
		return Value{}, p.errorf("unexpected %q", p.peekRune())
	}
}

func (p *parser) parseObject(depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, p.errorf("nesting deeper than %d", MaxDepth)
	}
	p.pos++ // {
	obj := Value{kind: Object, members: []Member{}, index: map[string]int{}}
	for {
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated object")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return Value{}, err
		}
		p.skipSpace()
		if p.eof() || p.src[p.pos] != ':' {
			return Value{}, p.errorf("expected ':' after key %q", key)
		}
		p.pos++
		p.skipSpace()
		val, err := p.parseValue(depth)
		if err != nil {
			return Value{}, err
		}
		obj.set(key, val)

		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return Value{}, p.errorf("expected ',' or '}' in object, got %q", p.peekRune())
		}
	}
}

func (p *parser) parseKey() (string, error) {
	c := p.src[p.pos]
	switch {
	case c == '"' || c == '\'':
		return p.parseString()
	case isIdentStart(c):
		return p.parseIdent(), nil
	case isDigit(c):
		start := p.pos
		for !p.eof() && (isIdentPart(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		return p.src[start:p.pos], nil
	default:
		return "", p.errorf("expected object key, got %q", p.peekRune())
	}
}

func (p *parser) parseArray(depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, p.errorf("nesting deeper than %d", MaxDepth)
	}
	p.pos++ // [
	items := []Value{}
	for {
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated array")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return ArrayValue(items...), nil
		}

		val, err := p.parseValue(depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)

		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return ArrayValue(items...), nil
		default:
			return Value{}, p.errorf("expected ',' or ']' in array, got %q", p.peekRune())
		}
	}
}

func (p *parser) parseString() (string, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++

	var sb strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		case c == '\n' || c == '\r':
			return "", p.errorf("newline in string")
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if !p.eof() && p.src[p.pos] == '\n' {
			p.pos++
		}
	case 'x':
		n, err := p.readHex(2)
		if err != nil {
			return err
		}
		sb.WriteRune(rune(n))
	case 'u':
		r, err := p.readUnicodeEscape()
		if err != nil {
			return err
		}
		sb.WriteRune(r)
	default:
		// JS keeps the character for unknown escapes (\', \", \/, \\ ...).
		p.pos--
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		sb.WriteRune(r)
		p.pos += size
	}
	return nil
}

func (p *parser) readUnicodeEscape() (rune, error) {
	if !p.eof() && p.src[p.pos] == '{' {
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return 0, p.errorf("unterminated \\u{...} escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos+1:p.pos+end], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, p.errorf("invalid \\u{...} escape")
		}
		p.pos += end + 1
		return rune(n), nil
	}

	n, err := p.readHex(4)
	if err != nil {
		return 0, err
	}
	r := rune(n)
	if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
		save := p.pos
		p.pos += 2
		lo, err := p.readHex(4)
		if err == nil {
			if dec := utf16.DecodeRune(r, rune(lo)); dec != utf8.RuneError {
				return dec, nil
			}
		}
		p.pos = save
	}
	return r, nil
}

func (p *parser) readHex(n int) (uint64, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("short hex escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+n])
	}
	p.pos += n
	return v, nil
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	neg := false
	if c := p.src[p.pos]; c == '-' || c == '+' {
		neg = c == '-'
		p.pos++
	}
	if p.eof() {
		return Value{}, p.errorf("unexpected end of number")
	}

	// Infinity after a sign.
	if strings.HasPrefix(p.src[p.pos:], "Infinity") {
		p.pos += len("Infinity")
		if neg {
			return NumberValue(math.Inf(-1), "-Infinity"), nil
		}
		return NumberValue(math.Inf(1), "Infinity"), nil
	}

	if strings.HasPrefix(p.src[p.pos:], "0x") || strings.HasPrefix(p.src[p.pos:], "0X") {
		digits := p.pos + 2
		p.pos = digits
		for !p.eof() && isHexDigit(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == digits {
			return Value{}, p.errorf("invalid hex number")
		}
		n, err := strconv.ParseUint(p.src[digits:p.pos], 16, 64)
		if err != nil {
			return Value{}, p.errorf("invalid hex number: %v", err)
		}
		f := float64(n)
		if neg {
			f = -f
		}
		return NumberValue(f, ""), nil
	}

	digitsStart := p.pos
	for !p.eof() && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if !p.eof() && p.src[p.pos] == '.' {
		p.pos++
		for !p.eof() && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if p.pos == digitsStart || p.src[digitsStart:p.pos] == "." {
		p.pos = start
		return Value{}, p.errorf("invalid number")
	}
	if !p.eof() && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if !p.eof() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		expStart := p.pos
		for !p.eof() && isDigit(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == expStart {
			return Value{}, p.errorf("invalid exponent")
		}
	}
	if !p.eof() && isIdentPart(p.src[p.pos]) {
		return Value{}, p.errorf("unexpected %q in number", p.peekRune())
	}

	literal := p.src[start:p.pos]
	literal = strings.TrimPrefix(literal, "+")
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Value{}, p.errorf("invalid number %q", literal)
	}
	return NumberValue(f, literal), nil
}

func (p *parser) parseKeyword() (Value, error) {
	start := p.pos
	word := p.parseIdent()
	switch word {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	case "null", "undefined":
		return NullValue(), nil
	case "NaN":
		return NumberValue(math.NaN(), "NaN"), nil
	case "Infinity":
		return NumberValue(math.Inf(1), "Infinity"), nil
	case "void":
		// `void <number>` is how minifiers spell undefined.
		p.skipSpace()
		if p.eof() || !isDigit(p.src[p.pos]) {
			return Value{}, p.errorf("expected operand after void")
		}
		if _, err := p.parseNumber(); err != nil {
			return Value{}, err
		}
		return NullValue(), nil
	default:
		p.pos = start
		return Value{}, p.errorf("unexpected identifier %q", word)
	}
}

func (p *parser) parseIdent() string {
	start := p.pos
	for !p.eof() && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

// IsIdentPart reports whether c may continue a JS identifier (ASCII only).
func IsIdentPart(c byte) bool { return isIdentPart(c) }

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
