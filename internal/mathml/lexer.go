package mathml

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokLetter
	tokOperator
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokAlign
	tokPrime
)

type token struct {
	kind tokenKind
	val  string
	pos  int
}

// lex splits a formula into tokens. Whitespace and % comments are dropped;
// offsets point into src so verbatim arguments can be recovered later.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		start := i
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case r == '\\':
			i++
			if i >= len(src) {
				return nil, errorf(start, "trailing backslash")
			}
			if isASCIILetter(src[i]) {
				for i < len(src) && isASCIILetter(src[i]) {
					i++
				}
			} else {
				_, n := utf8.DecodeRuneInString(src[i:])
				i += n
			}
			toks = append(toks, token{kind: tokCommand, val: src[start+1 : i], pos: start})
		case r == '{':
			toks = append(toks, token{kind: tokOpen, val: "{", pos: start})
			i++
		case r == '}':
			toks = append(toks, token{kind: tokClose, val: "}", pos: start})
			i++
		case r == '^':
			toks = append(toks, token{kind: tokSup, val: "^", pos: start})
			i++
		case r == '_':
			toks = append(toks, token{kind: tokSub, val: "_", pos: start})
			i++
		case r == '&':
			toks = append(toks, token{kind: tokAlign, val: "&", pos: start})
			i++
		case r == '\'':
			toks = append(toks, token{kind: tokPrime, val: "′", pos: start})
			i++
		case r == '$':
			return nil, errorf(start, "math shift $ inside formula")
		case r >= '0' && r <= '9':
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			toks = append(toks, token{kind: tokNumber, val: src[start:i], pos: start})
		case unicode.IsLetter(r):
			toks = append(toks, token{kind: tokLetter, val: string(r), pos: start})
			i += size
		default:
			toks = append(toks, token{kind: tokOperator, val: string(r), pos: start})
			i += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
