// Package compiler turns a syntax tree into flat bytecode and runs the full
// compile pipeline: lexing, parsing, emission and optimization.
package compiler

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/brainvm/ast"
	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/internal/token"
	"github.com/deepnoodle-ai/brainvm/optimizer"
	"github.com/deepnoodle-ai/brainvm/parser"
	"github.com/deepnoodle-ai/brainvm/syntax"
	"github.com/deepnoodle-ai/brainvm/tape"
)

// Placeholder is a temporary jump offset written during emission, which is
// always replaced once the loop body has been emitted.
const Placeholder = uint32(math.MaxUint32)

// Compiler emits bytecode for a syntax tree.
type Compiler struct {
	instructions []bytecode.Instruction
}

// New returns an empty Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Emit compiles the tree into bytecode. Leaves map one to one onto
// instructions. A loop with an N-instruction body becomes
// JumpIfZero(N+1), the body, JumpIfNonZero(N+1).
//
// The tree is already valid, so the only failure is a loop body too large
// for a 32-bit jump offset.
func Emit(node ast.Node) ([]bytecode.Instruction, error) {
	c := New()
	if err := c.compile(node); err != nil {
		return nil, err
	}
	return c.instructions, nil
}

// Instructions returns the instructions emitted so far.
func (c *Compiler) Instructions() []bytecode.Instruction {
	return c.instructions
}

func (c *Compiler) compile(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Program:
		return c.compileNodes(node.Body)
	case *ast.Loop:
		return c.compileLoop(node)
	case *ast.Breakpoint:
		c.emit(bytecode.Breakpoint(node.Pos().Char))
	case *ast.Op:
		return c.compileOp(node)
	default:
		return fmt.Errorf("compile error: unknown ast node type: %T", node)
	}
	return nil
}

func (c *Compiler) compileNodes(nodes []ast.Node) error {
	for _, child := range nodes {
		if err := c.compile(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileOp(node *ast.Op) error {
	switch node.Op {
	case token.RIGHT:
		c.emit(bytecode.MovePointer(1))
	case token.LEFT:
		c.emit(bytecode.MovePointer(-1))
	case token.INCREMENT:
		c.emit(bytecode.MutateCell(1))
	case token.DECREMENT:
		c.emit(bytecode.MutateCell(-1))
	case token.OUTPUT:
		c.emit(bytecode.Output())
	case token.INPUT:
		c.emit(bytecode.Input())
	default:
		return fmt.Errorf("compile error: unknown operation %q", node.Op)
	}
	return nil
}

func (c *Compiler) compileLoop(node *ast.Loop) error {
	startPos := c.emit(bytecode.JumpIfZero(Placeholder))
	if err := c.compileNodes(node.Body); err != nil {
		return err
	}
	delta, err := c.calculateDelta(startPos)
	if err != nil {
		return err
	}
	c.changeOperand(startPos, delta)
	c.emit(bytecode.JumpIfNonZero(delta))
	return nil
}

// emit appends an instruction and returns its index.
func (c *Compiler) emit(instr bytecode.Instruction) int {
	c.instructions = append(c.instructions, instr)
	return len(c.instructions) - 1
}

// calculateDelta returns the offset from the jump at pos to the closing
// jump that is about to be emitted.
func (c *Compiler) calculateDelta(pos int) (uint32, error) {
	delta := len(c.instructions) - pos
	if delta >= math.MaxUint32 {
		return 0, fmt.Errorf("compile error: loop body is too large")
	}
	return uint32(delta), nil
}

func (c *Compiler) changeOperand(instructionIndex int, offset uint32) {
	c.instructions[instructionIndex] = c.instructions[instructionIndex].WithOffset(offset)
}

// Option is a configuration function for Compile.
type Option func(*config)

type config struct {
	filename     string
	logger       zerolog.Logger
	validators   []syntax.Validator
	transformers []syntax.Transformer
}

// WithFilename sets the file name reported in parse errors.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// WithLogger sets the logger passed to the optimizer.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithValidators adds validators that must accept the parsed tree before
// any code is emitted.
func WithValidators(validators ...syntax.Validator) Option {
	return func(c *config) {
		c.validators = append(c.validators, validators...)
	}
}

// WithTransformers adds transformers applied, in order, to the validated
// tree.
func WithTransformers(transformers ...syntax.Transformer) Option {
	return func(c *config) {
		c.transformers = append(c.transformers, transformers...)
	}
}

// Compile runs the whole pipeline on source and returns an immutable
// program. Parse errors are returned as *errors.ParseError with their
// source location filled in; rejections by validators as
// *syntax.ValidationErrors.
func Compile(ctx context.Context, source string, settings tape.Settings, options ...Option) (*bytecode.Program, error) {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(cfg)
	}
	tree, err := parser.ParseSource(ctx, source, parser.WithFilename(cfg.filename))
	if err != nil {
		return nil, err
	}
	if errs := syntax.Validate(tree, cfg.validators...); errs != nil {
		for i := range errs.Errors {
			errs.Errors[i].Filename = cfg.filename
		}
		return nil, errs
	}
	for _, t := range cfg.transformers {
		if tree, err = t.Transform(tree); err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
	}
	code, err := Emit(tree)
	if err != nil {
		return nil, err
	}
	code = optimizer.Optimize(code, settings, optimizer.WithLogger(cfg.logger))
	return bytecode.NewProgram(code), nil
}
