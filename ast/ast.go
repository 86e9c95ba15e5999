// Package ast defines the tree representation of tape program source.
//
// The tree has only three kinds of nodes: primitive operations, debug
// breakpoints and loops. A Loop owns the nodes of its body, so the nesting
// of brackets in the source is the nesting of the tree.
package ast

import (
	"strings"

	"github.com/deepnoodle-ai/brainvm/internal/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns the canonical source for the node, with all comments
	// removed.
	String() string
}

// Program is the root of a parsed source file.
type Program struct {
	Body []Node
}

func (p *Program) Pos() token.Position {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	return joinNodes(p.Body)
}

// Op is one of the six primitive operations: a pointer move, a cell
// increment or decrement, or a byte of input or output.
type Op struct {
	OpPos token.Position
	Op    token.Type
}

func (x *Op) Pos() token.Position { return x.OpPos }
func (x *Op) String() string      { return string(x.Op) }

// Breakpoint is a debug marker. It carries no behavior of its own and only
// survives compilation in debug mode.
type Breakpoint struct {
	Hash token.Position
}

func (x *Breakpoint) Pos() token.Position { return x.Hash }
func (x *Breakpoint) String() string      { return string(token.DEBUG) }

// Loop repeats its body while the current cell is nonzero.
type Loop struct {
	Lbrack token.Position // position of "["
	Rbrack token.Position // position of "]"
	Body   []Node
}

func (x *Loop) Pos() token.Position { return x.Lbrack }

func (x *Loop) String() string {
	return string(token.LBRACKET) + joinNodes(x.Body) + string(token.RBRACKET)
}

func joinNodes(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.String())
	}
	return b.String()
}
