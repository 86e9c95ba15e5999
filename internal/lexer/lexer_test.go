package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/brainvm/internal/token"
	"github.com/stretchr/testify/require"
)

func types(input string) []token.Type {
	var result []token.Type
	for _, tok := range Tokenize(input) {
		result = append(result, tok.Type)
	}
	return result
}

func TestNextToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Type
	}{
		{"all symbols", "><+-.,[]#", []token.Type{
			token.RIGHT, token.LEFT, token.INCREMENT, token.DECREMENT,
			token.OUTPUT, token.INPUT, token.LBRACKET, token.RBRACKET, token.DEBUG,
		}},
		{"unbalanced", "]][[[", []token.Type{
			token.RBRACKET, token.RBRACKET, token.LBRACKET, token.LBRACKET, token.LBRACKET,
		}},
		{"cat", ",[.,]", []token.Type{
			token.INPUT, token.LBRACKET, token.OUTPUT, token.INPUT, token.RBRACKET,
		}},
		{"comments", "ab, a Z[ 12*3 . 1a :; , ''`]&", []token.Type{
			token.INPUT, token.LBRACKET, token.OUTPUT, token.INPUT, token.RBRACKET,
		}},
		{"empty", "", nil},
		{"only comments", "hello world", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, types(tt.input))
		})
	}
}

func TestPositions(t *testing.T) {
	var positions []int
	for _, tok := range Tokenize("  [abc+]-") {
		positions = append(positions, tok.Pos())
	}
	require.Equal(t, []int{2, 6, 7, 8}, positions)
}

func TestPositionsCountCharacters(t *testing.T) {
	// Each 'é' and '→' is a single character but multiple bytes
	tokens := Tokenize("é→+\n ü]")
	require.Len(t, tokens, 2)
	require.Equal(t, token.Position{Char: 2, Line: 0, Column: 2}, tokens[0].Position)
	require.Equal(t, token.Position{Char: 6, Line: 1, Column: 2}, tokens[1].Position)
}

func TestLexerIsNotRestartable(t *testing.T) {
	l := New("+-")
	tok, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, token.INCREMENT, tok.Type)

	var rest []token.Type
	for tok := range l.All() {
		rest = append(rest, tok.Type)
	}
	require.Equal(t, []token.Type{token.DECREMENT}, rest)

	_, ok = l.Next()
	require.False(t, ok)
}

func TestAllStopsEarly(t *testing.T) {
	l := New("+++")
	for range l.All() {
		break
	}
	var remaining int
	for range l.All() {
		remaining++
	}
	require.Equal(t, 2, remaining)
}
