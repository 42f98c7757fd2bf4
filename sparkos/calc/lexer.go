package calc

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokSqrt
	tokPi
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) {
		r, sz := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += sz
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	r, sz := utf8.DecodeRuneInString(l.s[l.i:])
	single := func(k tokenKind) token {
		l.i += sz
		return token{kind: k, text: l.s[start:l.i], pos: start}
	}

	switch r {
	case '+':
		return single(tokPlus)
	case '-', '−':
		return single(tokMinus)
	case '*', '×':
		if r == '*' && l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokCaret, text: "**", pos: start}
		}
		return single(tokStar)
	case '/', '÷':
		return single(tokSlash)
	case '%':
		return single(tokPercent)
	case '^':
		return single(tokCaret)
	case '√':
		return single(tokSqrt)
	case 'π':
		return single(tokPi)
	case '(':
		return single(tokLParen)
	case ')':
		return single(tokRParen)
	}

	if r == '.' || isDigit(r) {
		l.i = scanNumber(l.s, l.i)
		if l.i == start {
			return single(tokInvalid)
		}
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			// ParseFloat reports ErrRange with ±Inf for huge literals; anything else is malformed.
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return token{kind: tokNumber, text: txt, num: f, pos: start}
			}
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, num: f, pos: start}
	}
	if unicode.IsLetter(r) {
		for l.i < len(l.s) {
			r, sz := utf8.DecodeRuneInString(l.s[l.i:])
			if !unicode.IsLetter(r) && !isDigit(r) && r != '_' {
				break
			}
			l.i += sz
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}

	return single(tokInvalid)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber returns the end of the number literal starting at i, or i if there is none.
func scanNumber(s string, i int) int {
	start := i
	digits := 0
	for i < len(s) && isDigit(rune(s[i])) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}
