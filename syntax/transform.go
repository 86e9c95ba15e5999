package syntax

import "github.com/deepnoodle-ai/brainvm/ast"

// Transformer modifies an AST before compilation.
// Transformers receive ownership of the AST and return a (possibly new) AST.
type Transformer interface {
	// Transform processes the AST and returns the result.
	// The returned AST may be the same instance (modified in place)
	// or a completely new AST.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}

// FlattenNestedLoops replaces a loop whose whole body is another loop with
// the inner loop. The inner loop only exits on a zero cell, which ends the
// outer loop too.
var FlattenNestedLoops Transformer = TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
	p.Body = flatten(p.Body)
	return p, nil
})

func flatten(nodes []ast.Node) []ast.Node {
	for i, node := range nodes {
		loop, ok := node.(*ast.Loop)
		if !ok {
			continue
		}
		loop.Body = flatten(loop.Body)
		for len(loop.Body) == 1 {
			inner, ok := loop.Body[0].(*ast.Loop)
			if !ok {
				break
			}
			loop = inner
		}
		nodes[i] = loop
	}
	return nodes
}
