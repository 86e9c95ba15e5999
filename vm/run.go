package vm

import (
	"bufio"
	"bytes"
	"context"
	"os"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/tape"
)

// Run the given program in a new Virtual Machine and return the machine,
// which holds the final tape. The machine is returned even on error so the
// caller can inspect where execution stopped.
func Run(ctx context.Context, program *bytecode.Program, settings tape.Settings, options ...Option) (*VirtualMachine, error) {
	machine := New(program, settings, options...)
	if err := machine.RunContext(ctx); err != nil {
		return machine, err
	}
	return machine, nil
}

// NewStd creates a Virtual Machine reading from stdin and writing to
// stdout. Output is buffered and flushed after every byte.
func NewStd(program *bytecode.Program, settings tape.Settings, options ...Option) *VirtualMachine {
	options = append([]Option{
		WithInput(bufio.NewReader(os.Stdin)),
		WithOutput(bufio.NewWriter(os.Stdout)),
	}, options...)
	return New(program, settings, options...)
}

// NewBytes creates a Virtual Machine reading from input and appending its
// output to output.
func NewBytes(program *bytecode.Program, settings tape.Settings, input []byte, output *bytes.Buffer, options ...Option) *VirtualMachine {
	options = append([]Option{
		WithInput(bytes.NewReader(input)),
		WithOutput(output),
	}, options...)
	return New(program, settings, options...)
}
