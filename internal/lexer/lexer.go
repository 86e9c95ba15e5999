// Package lexer converts tape program source into a stream of tokens.
//
// Only the nine meaningful symbols produce tokens. Every other character is
// a comment and is skipped without affecting the lexer state, so lexing
// never fails.
package lexer

import (
	"iter"

	"github.com/deepnoodle-ai/brainvm/internal/token"
)

// Lexer produces tokens from source code on demand. A Lexer is consumed as
// it is read and cannot be restarted.
type Lexer struct {
	input  []rune
	pos    int // offset of the next character to read
	line   int
	column int
}

// New returns a Lexer for the given source.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Next returns the next token. The second return value is false once the
// input is exhausted.
func (l *Lexer) Next() (token.Token, bool) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		position := token.Position{Char: l.pos, Line: l.line, Column: l.column}
		l.advance(ch)
		if typ, ok := token.Lookup(ch); ok {
			return token.Token{Type: typ, Position: position}, true
		}
	}
	return token.Token{}, false
}

func (l *Lexer) advance(ch rune) {
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// All returns an iterator over the remaining tokens. Iterating drains the
// lexer.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize lexes the complete input and returns the tokens as a slice.
func Tokenize(input string) []token.Token {
	var tokens []token.Token
	for tok := range New(input).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}
