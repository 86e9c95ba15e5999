// Package parser builds the syntax tree for a tape program.
//
// Parsing is recursive descent over two contexts: the root of the program,
// where a loop end is an error, and the inside of a loop, where running out
// of tokens is an error. Parsing stops at the first error.
package parser

import (
	"context"
	"iter"

	"github.com/deepnoodle-ai/brainvm/ast"
	"github.com/deepnoodle-ai/brainvm/errors"
	"github.com/deepnoodle-ai/brainvm/internal/lexer"
	"github.com/deepnoodle-ai/brainvm/internal/token"
)

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in parse errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithSource sets the source text used to attach the offending line to
// parse errors. ParseSource sets it automatically.
func WithSource(source string) Option {
	return func(p *Parser) {
		p.source = source
	}
}

// Parser consumes a token sequence once and produces a Program.
type Parser struct {
	ctx      context.Context
	tokens   iter.Seq[token.Token]
	next     func() (token.Token, bool)
	filename string
	source   string
}

// New returns a Parser reading from the given tokens.
func New(tokens iter.Seq[token.Token], options ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse the provided tokens and return the tree. The error, if any, is an
// *errors.ParseError or the context's error.
func Parse(ctx context.Context, tokens iter.Seq[token.Token], options ...Option) (*ast.Program, error) {
	return New(tokens, options...).Parse(ctx)
}

// ParseSource lexes and parses the given source. This is shorthand for
// creating a Lexer and Parser and then calling Parse.
func ParseSource(ctx context.Context, source string, options ...Option) (*ast.Program, error) {
	options = append([]Option{WithSource(source)}, options...)
	return Parse(ctx, lexer.New(source).All(), options...)
}

// Parse reads all tokens and returns the tree.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	next, stop := iter.Pull(p.tokens)
	defer stop()
	p.next = next

	body, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

func (p *Parser) parseRoot() ([]ast.Node, error) {
	var body []ast.Node
	for {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}
		tok, ok := p.next()
		if !ok {
			return body, nil
		}
		switch tok.Type {
		case token.RBRACKET:
			return nil, p.newError(errors.NewUnexpectedLoopEnd(tok.Pos()), tok.Position)
		case token.LBRACKET:
			loop, err := p.parseLoop(tok)
			if err != nil {
				return nil, err
			}
			body = append(body, loop)
		default:
			body = append(body, leaf(tok))
		}
	}
}

// parseLoop parses the body of a loop whose opening bracket has already
// been consumed, up to and including the matching closing bracket.
func (p *Parser) parseLoop(open token.Token) (*ast.Loop, error) {
	loop := &ast.Loop{Lbrack: open.Position}
	for {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}
		tok, ok := p.next()
		if !ok {
			return nil, p.newError(errors.NewMissingLoopEnd(open.Pos()), open.Position)
		}
		switch tok.Type {
		case token.RBRACKET:
			loop.Rbrack = tok.Position
			return loop, nil
		case token.LBRACKET:
			inner, err := p.parseLoop(tok)
			if err != nil {
				return nil, err
			}
			loop.Body = append(loop.Body, inner)
		default:
			loop.Body = append(loop.Body, leaf(tok))
		}
	}
}

func leaf(tok token.Token) ast.Node {
	if tok.Type == token.DEBUG {
		return &ast.Breakpoint{Hash: tok.Position}
	}
	return &ast.Op{OpPos: tok.Position, Op: tok.Type}
}

func (p *Parser) newError(err *errors.ParseError, pos token.Position) *errors.ParseError {
	err.Location = errors.SourceLocation{
		Filename: p.filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   errors.SourceLine(p.source, pos.LineNumber()),
	}
	return err
}
