package syntax

import (
	"fmt"

	"github.com/deepnoodle-ai/brainvm/ast"
	"github.com/deepnoodle-ai/brainvm/internal/token"
)

// SyntaxValidator validates an AST against a SyntaxConfig.
type SyntaxValidator struct {
	config SyntaxConfig
}

// NewSyntaxValidator creates a validator for the given configuration.
func NewSyntaxValidator(config SyntaxConfig) *SyntaxValidator {
	return &SyntaxValidator{config: config}
}

// Validate checks the AST against the syntax configuration.
func (v *SyntaxValidator) Validate(program *ast.Program) []ValidationError {
	var errors []ValidationError
	v.walk(program.Body, 0, &errors)
	return errors
}

func (v *SyntaxValidator) walk(nodes []ast.Node, depth int, errors *[]ValidationError) {
	for _, node := range nodes {
		if err := v.checkNode(node, depth); err != nil {
			*errors = append(*errors, *err)
		}
		if loop, ok := node.(*ast.Loop); ok {
			v.walk(loop.Body, depth+1, errors)
		}
	}
}

// checkNode checks a single node found inside depth enclosing loops.
func (v *SyntaxValidator) checkNode(node ast.Node, depth int) *ValidationError {
	switch n := node.(type) {
	case *ast.Breakpoint:
		if v.config.DisallowBreakpoints {
			return &ValidationError{
				Message:  "breakpoints are not allowed",
				Node:     node,
				Position: node.Pos(),
			}
		}

	case *ast.Op:
		switch n.Op {
		case token.INPUT:
			if v.config.DisallowInput {
				return &ValidationError{
					Message:  "input is not allowed",
					Node:     node,
					Position: node.Pos(),
				}
			}
		case token.OUTPUT:
			if v.config.DisallowOutput {
				return &ValidationError{
					Message:  "output is not allowed",
					Node:     node,
					Position: node.Pos(),
				}
			}
		}

	case *ast.Loop:
		if limit := v.config.MaxLoopDepth; limit > 0 && depth+1 > limit {
			return &ValidationError{
				Message:  fmt.Sprintf("loop nesting exceeds the maximum depth of %d", limit),
				Node:     node,
				Position: node.Pos(),
			}
		}
		if v.config.DisallowEmptyLoops && len(n.Body) == 0 {
			return &ValidationError{
				Message:  "empty loops are not allowed",
				Node:     node,
				Position: node.Pos(),
			}
		}
	}

	return nil
}
