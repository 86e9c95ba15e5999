package compiler

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/deepnoodle-ai/brainvm/ast"
	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/errors"
	"github.com/deepnoodle-ai/brainvm/internal/token"
	"github.com/deepnoodle-ai/brainvm/parser"
	"github.com/deepnoodle-ai/brainvm/syntax"
	"github.com/deepnoodle-ai/brainvm/tape"
	"github.com/stretchr/testify/require"
)

func emitSource(t *testing.T, source string) []bytecode.Instruction {
	t.Helper()
	tree, err := parser.ParseSource(context.Background(), source)
	require.NoError(t, err)
	code, err := Emit(tree)
	require.NoError(t, err)
	return code
}

func TestEmitLeaves(t *testing.T) {
	code := emitSource(t, "><+-.,#")
	require.Equal(t, []bytecode.Instruction{
		bytecode.MovePointer(1),
		bytecode.MovePointer(-1),
		bytecode.MutateCell(1),
		bytecode.MutateCell(-1),
		bytecode.Output(),
		bytecode.Input(),
		bytecode.Breakpoint(6),
	}, code)
}

func TestEmitLoop(t *testing.T) {
	code := emitSource(t, ",[.,]")
	require.Equal(t, []bytecode.Instruction{
		bytecode.Input(),
		bytecode.JumpIfZero(3),
		bytecode.Output(),
		bytecode.Input(),
		bytecode.JumpIfNonZero(3),
	}, code)
}

func TestEmitEmptyLoop(t *testing.T) {
	code := emitSource(t, "[]")
	require.Equal(t, []bytecode.Instruction{
		bytecode.JumpIfZero(1),
		bytecode.JumpIfNonZero(1),
	}, code)
}

func TestEmitNestedLoops(t *testing.T) {
	code := emitSource(t, "[>[-]<]")
	require.Equal(t, []bytecode.Instruction{
		bytecode.JumpIfZero(6),
		bytecode.MovePointer(1),
		bytecode.JumpIfZero(2),
		bytecode.MutateCell(-1),
		bytecode.JumpIfNonZero(2),
		bytecode.MovePointer(-1),
		bytecode.JumpIfNonZero(6),
	}, code)
	require.NoError(t, bytecode.NewProgram(code).ValidateJumps())
}

func TestEmitPreservesSourceCorrespondence(t *testing.T) {
	source := "+[->+<]>.#"
	code := emitSource(t, source)
	require.Equal(t, source, bytecode.NewProgram(code).String())
}

func TestEmitUnknownOperation(t *testing.T) {
	_, err := Emit(&ast.Program{Body: []ast.Node{&ast.Op{Op: token.LBRACKET}}})
	require.EqualError(t, err, `compile error: unknown operation "["`)
}

func TestCompileOptimizes(t *testing.T) {
	program, err := Compile(context.Background(), "[-]", tape.DefaultSettings())
	require.NoError(t, err)
	require.Equal(t, []bytecode.Instruction{bytecode.SetCell(0)}, program.Instructions())
}

func TestCompileDebugKeepsBreakpoints(t *testing.T) {
	settings := tape.DefaultSettings().WithDebug(true)
	program, err := Compile(context.Background(), "++#[-]", settings)
	require.NoError(t, err)
	require.Equal(t, "++#[-]", program.String())
	require.Equal(t, 6, program.Len())
}

func TestCompileParseErrors(t *testing.T) {
	tests := []struct {
		source string
		code   errors.ErrorCode
		pos    int
	}{
		{"]", errors.E1001, 0},
		{"[", errors.E1002, 0},
		{"+[[-]", errors.E1002, 1},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Compile(context.Background(), tt.source, tape.DefaultSettings(), WithFilename("test.b"))
			var parseErr *errors.ParseError
			require.True(t, goerrors.As(err, &parseErr))
			require.Equal(t, tt.code, parseErr.Code)
			require.Equal(t, tt.pos, parseErr.Position)
			require.Equal(t, "test.b", parseErr.Location.Filename)
			require.Equal(t, tt.source, parseErr.Location.Source)
		})
	}
}

func TestCompileValidators(t *testing.T) {
	_, err := Compile(context.Background(), "+[]#", tape.DefaultSettings(),
		WithFilename("test.b"),
		WithValidators(syntax.NewSyntaxValidator(syntax.Release)))
	var validationErrs *syntax.ValidationErrors
	require.True(t, goerrors.As(err, &validationErrs))
	require.Len(t, validationErrs.Errors, 2)
	require.Equal(t, "empty loops are not allowed at test.b:1:2", validationErrs.Errors[0].Error())
	require.Equal(t, "breakpoints are not allowed at test.b:1:4", validationErrs.Errors[1].Error())

	program, err := Compile(context.Background(), "+[-]", tape.DefaultSettings(),
		WithValidators(syntax.NewSyntaxValidator(syntax.Release)))
	require.NoError(t, err)
	require.Equal(t, 1, program.Len())
}

func TestCompileTransformers(t *testing.T) {
	settings := tape.DefaultSettings().WithDebug(true)
	program, err := Compile(context.Background(), "+[[-]]", settings,
		WithTransformers(syntax.FlattenNestedLoops))
	require.NoError(t, err)
	require.Equal(t, "+[-]", program.String())

	_, err = Compile(context.Background(), "+", settings,
		WithTransformers(syntax.TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
			return nil, goerrors.New("boom")
		})))
	require.EqualError(t, err, "transform: boom")
}
