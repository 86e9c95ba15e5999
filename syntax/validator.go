package syntax

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/brainvm/ast"
	"github.com/deepnoodle-ai/brainvm/errors"
	"github.com/deepnoodle-ai/brainvm/internal/token"
)

// ValidationError represents a syntax restriction violation.
type ValidationError struct {
	Message  string         // description of the violation
	Node     ast.Node       // the offending node
	Position token.Position // source location
	Filename string         // set by the compiler when known
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if e.Filename != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, e.Filename, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ToFormatted converts to the FormattedError type for display.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	return &errors.FormattedError{
		Kind:     "syntax error",
		Message:  e.Message,
		Filename: e.Filename,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
	}
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}

// ToFormattedMultiple converts every error for display.
func (e *ValidationErrors) ToFormattedMultiple() []*errors.FormattedError {
	result := make([]*errors.FormattedError, 0, len(e.Errors))
	for i := range e.Errors {
		result = append(result, e.Errors[i].ToFormatted())
	}
	return result
}

// Validator inspects an AST and returns validation errors.
// Validators should not modify the AST.
type Validator interface {
	// Validate checks the AST and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}

// Validate runs each validator over the program and combines the
// violations. It returns nil when there are none.
func Validate(program *ast.Program, validators ...Validator) *ValidationErrors {
	var errs []ValidationError
	for _, v := range validators {
		errs = append(errs, v.Validate(program)...)
	}
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}
