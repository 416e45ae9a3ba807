package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokString
	tokIdent  // g, method, phase, and, or, not, in, true, false
	tokOp // == != < <= > >= && || !
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source
	num  int // value for tokInt
}

// lex splits the expression source into tokens. Identifiers are not
// classified here; the parser decides which are keywords and which are
// symbols.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			text := src[start:i]
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("bad integer %q at position %d: %w", text, start, ErrInvalidFilter)
			}
			toks = append(toks, token{kind: tokInt, text: text, pos: start, num: n})
		case c == '\'' || c == '"':
			quote := c
			start := i
			i++
			j := strings.IndexByte(src[i:], quote)
			if j < 0 {
				return nil, fmt.Errorf("unterminated string at position %d: %w", start, ErrInvalidFilter)
			}
			toks = append(toks, token{kind: tokString, text: src[i : i+j], pos: start})
			i += j + 1
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case isIdentStart(rune(c)):
			start := i
			for i < len(src) && isIdentPart(rune(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: start})
		default:
			op, n := lexOperator(src[i:])
			if n == 0 {
				return nil, fmt.Errorf("unexpected character %q at position %d: %w", string(c), i, ErrInvalidFilter)
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += n
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// lexOperator matches the longest operator at the start of s.
func lexOperator(s string) (string, int) {
	for _, op := range []string{"==", "!=", "<=", ">=", "&&", "||", "<", ">", "!"} {
		if strings.HasPrefix(s, op) {
			return op, len(op)
		}
	}
	return "", 0
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
