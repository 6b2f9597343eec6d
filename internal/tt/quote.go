package tt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuoteString returns a DelimNone subtree holding one string literal whose
// value is s.
func QuoteString(s string) Subtree {
	return Subtree{TokenTrees: []TokenTree{Literal{Text: EscapeString(s)}}}
}

// QuoteInt returns a DelimNone subtree holding one unsuffixed integer literal.
func QuoteInt(n uint64) Subtree {
	return Subtree{TokenTrees: []TokenTree{Literal{Text: strconv.FormatUint(n, 10)}}}
}

// EscapeString renders s as a double-quoted literal. Quotes, backslashes and
// control characters are escaped; other printable text is kept as is. Bytes
// that are not valid UTF-8 become \xNN so the literal still carries them.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if !unicode.IsPrint(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// StringValue decodes a plain string literal leaf. Raw, byte and suffixed
// literals are not decoded and report false.
func (l Literal) StringValue() (string, bool) {
	return UnescapeString(l.Text)
}

// IntValue decodes an unsuffixed decimal integer literal leaf.
func (l Literal) IntValue() (uint64, bool) {
	n, err := strconv.ParseUint(strings.ReplaceAll(l.Text, "_", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnescapeString is the inverse of EscapeString. It also accepts \', line
// continuations and \x escapes; \x80 to \xff decode to that single byte.
func UnescapeString(lit string) (string, bool) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", false
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c == '"' {
			return "", false
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", false
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(esc)
		case 'x':
			if i+2 > len(body) {
				return "", false
			}
			v, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteByte(byte(v))
			i += 2
		case 'u':
			if i >= len(body) || body[i] != '{' {
				return "", false
			}
			end := strings.IndexByte(body[i:], '}')
			if end < 0 {
				return "", false
			}
			digits := strings.ReplaceAll(body[i+1:i+end], "_", "")
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || digits == "" || !utf8.ValidRune(rune(v)) {
				return "", false
			}
			b.WriteRune(rune(v))
			i += end + 1
		case '\n':
			// продолжение строки: пропускаем ведущие пробелы
			for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
				i++
			}
		default:
			return "", false
		}
	}
	return b.String(), true
}
