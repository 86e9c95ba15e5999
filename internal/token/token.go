// Package token defines the tokens produced when lexing tape program source.
package token

// Type describes the type of a token. The value of each type is the source
// symbol it was lexed from.
type Type string

// Position points to a particular location in an input string. All offsets
// count characters (runes), not bytes.
type Position struct {
	Char   int // 0-indexed character offset within the source
	Line   int // 0-indexed line number
	Column int // 0-indexed column number, in characters
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type     Type
	Position Position
}

// Pos returns the 0-indexed character offset of the token.
func (t Token) Pos() int {
	return t.Position.Char
}

// Token types
const (
	RIGHT     Type = ">"
	LEFT      Type = "<"
	INCREMENT Type = "+"
	DECREMENT Type = "-"
	OUTPUT    Type = "."
	INPUT     Type = ","
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	DEBUG     Type = "#"
)

var symbols = map[rune]Type{
	'>': RIGHT,
	'<': LEFT,
	'+': INCREMENT,
	'-': DECREMENT,
	'.': OUTPUT,
	',': INPUT,
	'[': LBRACKET,
	']': RBRACKET,
	'#': DEBUG,
}

// Lookup returns the token type for the given character. The second return
// value is false for characters that carry no meaning, which the lexer
// treats as comments.
func Lookup(ch rune) (Type, bool) {
	tok, ok := symbols[ch]
	return tok, ok
}
