// Package vm provides a VirtualMachine that executes compiled tape programs.
//
// The machine owns a zeroed tape of Settings.TapeLength() cells and a single
// pointer into it. It can be stepped one instruction at a time, which is
// what debuggers build on, or run to completion.
package vm

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	brainerrors "github.com/deepnoodle-ai/brainvm/errors"
	"github.com/deepnoodle-ai/brainvm/op"
	"github.com/deepnoodle-ai/brainvm/tape"
)

// DefaultContextCheckInterval is the number of instructions between checks
// of ctx.Done() in RunContext.
const DefaultContextCheckInterval = 1000

var (
	// ErrHalted is returned by Step once the program counter is past the
	// last instruction.
	ErrHalted = errors.New("program halted")

	// ErrObserverHalt is returned when an observer stops execution.
	ErrObserverHalt = errors.New("execution halted by observer")
)

type VirtualMachine struct {
	program  *bytecode.Program
	settings tape.Settings
	pc       int
	pointer  uint32
	memory   []byte
	steps    int64

	input  io.Reader
	output io.Writer
	logger zerolog.Logger

	// contextCheckInterval is the number of instructions between checks of
	// ctx.Done() in RunContext. A value of 0 disables checking.
	contextCheckInterval int

	observer       Observer
	observerConfig ObserverConfig
}

// New creates a new Virtual Machine for the given program. The program is
// shared, not copied; programs are immutable.
func New(program *bytecode.Program, settings tape.Settings, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		program:              program,
		settings:             settings,
		memory:               make([]byte, settings.TapeLength()),
		input:                bytes.NewReader(nil),
		output:               io.Discard,
		logger:               zerolog.Nop(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.observer != nil {
		vm.observerConfig = NormalizeConfig(vm.observer.Config())
	}
	return vm
}

// Program returns the program being executed.
func (vm *VirtualMachine) Program() *bytecode.Program {
	return vm.program
}

// PC returns the index of the next instruction to run.
func (vm *VirtualMachine) PC() int {
	return vm.pc
}

// Pointer returns the current tape position.
func (vm *VirtualMachine) Pointer() uint32 {
	return vm.pointer
}

// Memory returns a copy of the tape.
func (vm *VirtualMachine) Memory() []byte {
	result := make([]byte, len(vm.memory))
	copy(result, vm.memory)
	return result
}

// Cell returns the value under the pointer.
func (vm *VirtualMachine) Cell() uint8 {
	return vm.memory[vm.pointer]
}

// Settings returns the settings the machine runs with.
func (vm *VirtualMachine) Settings() tape.Settings {
	return vm.settings
}

// Steps returns the number of instructions executed so far.
func (vm *VirtualMachine) Steps() int64 {
	return vm.steps
}

// Halted reports whether the program counter is past the last instruction.
func (vm *VirtualMachine) Halted() bool {
	return vm.pc >= vm.program.Len()
}

// Step executes a single instruction and returns it. It returns ErrHalted
// once the program has finished.
//
// The program counter advances before the instruction runs, so after a
// runtime error it points at the instruction following the failed one; the
// error's PC field holds the failed index. The machine stays usable and
// may be stepped again.
func (vm *VirtualMachine) Step() (bytecode.Instruction, error) {
	if vm.Halted() {
		return bytecode.Instruction{}, ErrHalted
	}
	instr := vm.program.At(vm.pc)
	if vm.shouldObserve(instr) {
		event := StepEvent{
			PC:          vm.pc,
			Instruction: instr,
			Opcode:      instr.Op(),
			OpcodeName:  instr.Op().String(),
			Pointer:     vm.pointer,
			Cell:        vm.Cell(),
			Steps:       vm.steps,
		}
		if !vm.observer.OnStep(event) {
			vm.logger.Debug().Int("pc", vm.pc).Msg("halted by observer")
			return instr, ErrObserverHalt
		}
	}
	pc := vm.pc
	vm.pc++
	vm.steps++
	if err := vm.exec(instr); err != nil {
		err.PC = pc
		vm.logger.Debug().
			Err(err).
			Str("code", string(err.Code)).
			Int("pc", pc).
			Uint32("pointer", vm.pointer).
			Msg("runtime error")
		return instr, err
	}
	return instr, nil
}

func (vm *VirtualMachine) exec(instr bytecode.Instruction) *brainerrors.RuntimeError {
	switch instr.Op() {
	case op.MovePointer:
		delta := instr.PointerDelta()
		pointer, ok := vm.settings.MovePointer(vm.pointer, delta)
		if !ok {
			return brainerrors.NewTapeOverflow(vm.pointer, delta)
		}
		vm.pointer = pointer
	case op.MutateCell:
		delta := instr.CellDelta()
		previous := vm.memory[vm.pointer]
		value, ok := vm.settings.MutateCell(previous, delta)
		if !ok {
			return brainerrors.NewCellOverflow(vm.pointer, previous, delta)
		}
		vm.memory[vm.pointer] = value
	case op.SetCell:
		vm.memory[vm.pointer] = instr.Value()
	case op.JumpIfZero:
		if vm.memory[vm.pointer] == 0 {
			vm.pc += int(instr.Offset())
		}
	case op.JumpIfNonZero:
		if vm.memory[vm.pointer] != 0 {
			vm.pc -= int(instr.Offset())
		}
	case op.Input:
		value, err := ReadByte(vm.input)
		if err != nil {
			return brainerrors.NewInputError(err)
		}
		vm.memory[vm.pointer] = value
	case op.Output:
		if err := WriteByte(vm.output, vm.memory[vm.pointer]); err != nil {
			return brainerrors.NewOutputError(err)
		}
	case op.Breakpoint:
		vm.logger.Debug().
			Int("position", instr.Position()).
			Uint32("pointer", vm.pointer).
			Msg("breakpoint")
	}
	return nil
}

// Run steps the machine until the program halts or an error occurs.
func (vm *VirtualMachine) Run() error {
	return vm.RunContext(context.Background())
}

// RunContext is like Run but stops with the context's error once ctx is
// done. The context is checked every contextCheckInterval instructions.
func (vm *VirtualMachine) RunContext(ctx context.Context) error {
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	for {
		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}
		if _, err := vm.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				vm.logger.Debug().Int64("steps", vm.steps).Msg("program halted")
				return nil
			}
			return err
		}
	}
}
