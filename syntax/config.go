// Package syntax provides AST validation and transformation.
package syntax

// SyntaxConfig controls which language features are disallowed.
// Zero value allows all features (full language).
type SyntaxConfig struct {
	// I/O
	DisallowInput  bool // ,
	DisallowOutput bool // .

	// Debugging
	DisallowBreakpoints bool // #

	// Loops
	DisallowEmptyLoops bool // [] never terminates once entered
	MaxLoopDepth       int  // 0 means unlimited
}

// Presets for common use cases.
var (
	// Pure restricts programs to tape computation: no input, no output.
	// The final tape is the only result.
	Pure = SyntaxConfig{
		DisallowInput:  true,
		DisallowOutput: true,
	}

	// Release rejects leftovers of debugging sessions: breakpoints and
	// loops that hang as soon as they are entered.
	Release = SyntaxConfig{
		DisallowBreakpoints: true,
		DisallowEmptyLoops:  true,
	}

	// FullLanguage allows all features (zero value, default behavior).
	FullLanguage = SyntaxConfig{}
)
