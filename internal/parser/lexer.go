package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const eof = -1

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenNumber
	tokenName
	tokenPlus
	tokenMinus
	tokenMult
	tokenDiv
	tokenPow
	tokenParenOpen
	tokenParenClose
	tokenComma
)

var tokenNames = map[tokenType]string{
	tokenEOF:        "end of input",
	tokenNumber:     "number",
	tokenName:       "name",
	tokenPlus:       "'+'",
	tokenMinus:      "'-'",
	tokenMult:       "'*'",
	tokenDiv:        "'/'",
	tokenPow:        "'^'",
	tokenParenOpen:  "'('",
	tokenParenClose: "')'",
	tokenComma:      "','",
}

func (t tokenType) String() string {
	return tokenNames[t]
}

type token struct {
	typ   tokenType
	value string
	pos   int
}

// lexer splits an expression into tokens, scanning one rune at a time.
type lexer struct {
	input   string
	start   int
	current int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// next returns the next token, or an error for a character that starts no token.
func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	l.start = l.current

	ch := l.nextRune()
	switch {
	case ch == eof:
		return l.emit(tokenEOF), nil
	case ch == '+':
		return l.emit(tokenPlus), nil
	case ch == '-':
		return l.emit(tokenMinus), nil
	case ch == '*':
		if l.acceptRune('*') {
			return l.emit(tokenPow), nil
		}
		return l.emit(tokenMult), nil
	case ch == '/':
		return l.emit(tokenDiv), nil
	case ch == '^':
		return l.emit(tokenPow), nil
	case ch == '(':
		return l.emit(tokenParenOpen), nil
	case ch == ')':
		return l.emit(tokenParenClose), nil
	case ch == ',':
		return l.emit(tokenComma), nil
	case isDigit(ch) || ch == '.':
		return l.scanNumber(), nil
	case isNameStart(ch):
		return l.scanName(), nil
	default:
		return token{}, syntaxError(l.start, fmt.Sprintf("unexpected character %q", ch))
	}
}

func (l *lexer) scanNumber() token {
	for isDigit(l.peek()) {
		l.nextRune()
	}
	if l.acceptRune('.') {
		for isDigit(l.peek()) {
			l.nextRune()
		}
	}
	// Only consume an exponent when digits follow, so "2e" stays 2 then e.
	if r := l.peek(); r == 'e' || r == 'E' {
		save := l.current
		l.nextRune()
		if !l.acceptRune('+') {
			l.acceptRune('-')
		}
		if !isDigit(l.peek()) {
			l.current = save
			return l.emit(tokenNumber)
		}
		for isDigit(l.peek()) {
			l.nextRune()
		}
	}
	return l.emit(tokenNumber)
}

func (l *lexer) scanName() token {
	for r := l.peek(); isNameStart(r) || isDigit(r); r = l.peek() {
		l.nextRune()
	}
	return l.emit(tokenName)
}

func (l *lexer) emit(t tokenType) token {
	tok := token{typ: t, value: l.input[l.start:l.current], pos: l.start}
	l.start = l.current
	return tok
}

func (l *lexer) nextRune() rune {
	if l.current >= len(l.input) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.current += w
	return r
}

func (l *lexer) peek() rune {
	if l.current >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current:])
	return r
}

func (l *lexer) acceptRune(r rune) bool {
	if l.peek() == r {
		l.nextRune()
		return true
	}
	return false
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.peek()) {
		l.nextRune()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
