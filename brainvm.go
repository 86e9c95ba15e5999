// Package brainvm compiles and runs programs written in a minimal tape
// language of eight symbols: > < + - . , [ ] plus the # breakpoint.
//
// Compile parses and optimizes source into an immutable program; Run
// executes a program on a fresh virtual machine; Eval does both:
//
//	machine, err := brainvm.Eval(ctx, ",[.,]",
//		brainvm.WithInput(strings.NewReader("hi")),
//		brainvm.WithOutput(os.Stdout))
package brainvm

import (
	"context"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/compiler"
	"github.com/deepnoodle-ai/brainvm/vm"
)

// Compile parses and compiles source code into an executable program.
// The returned Program is immutable and safe for concurrent use.
func Compile(source string, opts ...Option) (*bytecode.Program, error) {
	o := collectOptions(opts...)
	settings, err := o.resolveSettings()
	if err != nil {
		return nil, err
	}
	return compiler.Compile(context.Background(), source, settings, o.compilerOpts()...)
}

// Run executes a compiled program on a new virtual machine and returns the
// machine, whose tape holds the final state. The machine is also returned
// alongside a runtime error so the caller can inspect where it stopped.
// Each call creates fresh runtime state, allowing concurrent execution of
// the same Program.
func Run(ctx context.Context, program *bytecode.Program, opts ...Option) (*vm.VirtualMachine, error) {
	o := collectOptions(opts...)
	settings, err := o.resolveSettings()
	if err != nil {
		return nil, err
	}
	return vm.Run(ctx, program, settings, o.vmOpts()...)
}

// Eval is a convenience function that compiles and runs source code.
// It is equivalent to Compile() followed by Run().
func Eval(ctx context.Context, source string, opts ...Option) (*vm.VirtualMachine, error) {
	program, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, program, opts...)
}
