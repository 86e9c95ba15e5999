// Package errors defines the two error taxonomies of the toolchain: parse
// errors produced while compiling source, and runtime errors produced while
// executing bytecode. The two are never mixed.
package errors

import (
	"fmt"
	"strings"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number, in characters
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// SourceLine returns the source code line at the given 1-based line number.
// If the line is out of range, an empty string is returned.
func SourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[lineNum-1], "\r")
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// ParseError reports a bracket mismatch found while parsing. Compilation
// stops at the first one; there is no partial result.
type ParseError struct {
	// Code is E1001 for a stray loop end, E1002 for an unclosed loop start.
	Code ErrorCode

	// Position is the 0-based character offset of the offending bracket.
	// For E1002 this is the loop start that was never closed.
	Position int

	// Location is filled in when the source is known.
	Location SourceLocation
}

// NewUnexpectedLoopEnd returns the error for a loop end at the given
// character offset with no open loop.
func NewUnexpectedLoopEnd(pos int) *ParseError {
	return &ParseError{Code: E1001, Position: pos}
}

// NewMissingLoopEnd returns the error for a loop opened at the given
// character offset and never closed.
func NewMissingLoopEnd(pos int) *ParseError {
	return &ParseError{Code: E1002, Position: pos}
}

func (e *ParseError) Error() string {
	switch e.Code {
	case E1001:
		return fmt.Sprintf("unexpected loop end at position %d", e.Position)
	case E1002:
		return fmt.Sprintf("missing loop end for the loop opened at position %d", e.Position)
	default:
		return fmt.Sprintf("%s at position %d", e.Code.Description(), e.Position)
	}
}

// FriendlyErrorMessage returns a human-friendly error message.
func (e *ParseError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (e *ParseError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     e.Code,
		Kind:     "parse error",
		Message:  e.Error(),
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
	}
	if e.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	switch e.Code {
	case E1001:
		fe.Hint = "remove this ']' or add a matching '[' before it"
	case E1002:
		fe.Hint = "add a matching ']' after the loop body"
	}
	return fe
}

// RuntimeError reports a fatal condition raised while executing an
// instruction. The machine that raised it is left intact and may be
// inspected or stepped further by the caller.
type RuntimeError struct {
	// Code identifies the kind of failure (E3001-E3004).
	Code ErrorCode

	// Pointer is the tape position the instruction operated from.
	Pointer uint32

	// Value is the cell value before a failed cell mutation.
	Value uint8

	// Delta is the change that was attempted.
	Delta int32

	// PC is the index of the instruction that failed.
	PC int

	// Err is the underlying I/O failure for E3001 and E3002.
	Err error
}

// NewInputError wraps a failure of the input handle.
func NewInputError(err error) *RuntimeError {
	return &RuntimeError{Code: E3001, Err: err}
}

// NewOutputError wraps a failure of the output handle.
func NewOutputError(err error) *RuntimeError {
	return &RuntimeError{Code: E3002, Err: err}
}

// NewTapeOverflow reports a pointer move out of the tape in strict mode.
func NewTapeOverflow(from uint32, by int32) *RuntimeError {
	return &RuntimeError{Code: E3003, Pointer: from, Delta: by}
}

// NewCellOverflow reports a cell leaving the 0..255 range in strict mode.
func NewCellOverflow(at uint32, from uint8, by int8) *RuntimeError {
	return &RuntimeError{Code: E3004, Pointer: at, Value: from, Delta: int32(by)}
}

func (e *RuntimeError) Error() string {
	switch e.Code {
	case E3001, E3002:
		if e.Err == nil {
			return e.Code.Description()
		}
		return fmt.Sprintf("%s: %v", e.Code.Description(), e.Err)
	case E3003:
		return fmt.Sprintf("tape overflow when changing %d by %d", e.Pointer, e.Delta)
	case E3004:
		return fmt.Sprintf("cell overflow when changing %d by %d at %d", e.Value, e.Delta, e.Pointer)
	default:
		return e.Code.Description()
	}
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true. Runtime errors always stop execution.
func (e *RuntimeError) IsFatal() bool {
	return true
}

// FriendlyErrorMessage returns a human-friendly error message.
func (e *RuntimeError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (e *RuntimeError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:    e.Code,
		Kind:    "runtime error",
		Message: e.Error(),
	}
	switch e.Code {
	case E3003, E3004:
		fe.Note = fmt.Sprintf("instruction %d, pointer %d", e.PC, e.Pointer)
		fe.Hint = "run without --strict to let values wrap around"
	}
	return fe
}
