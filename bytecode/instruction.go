package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/brainvm/op"
)

// Instruction is a single bytecode operation. The zero value is invalid;
// use one of the constructors.
type Instruction struct {
	code op.Code
	arg  int64
}

// MovePointer returns an instruction that moves the pointer by delta.
func MovePointer(delta int32) Instruction {
	return Instruction{code: op.MovePointer, arg: int64(delta)}
}

// MutateCell returns an instruction that adds delta to the current cell.
func MutateCell(delta int8) Instruction {
	return Instruction{code: op.MutateCell, arg: int64(delta)}
}

// SetCell returns an instruction that writes value to the current cell.
func SetCell(value uint8) Instruction {
	return Instruction{code: op.SetCell, arg: int64(value)}
}

// JumpIfZero returns the opening jump of a loop. If the current cell is
// zero, execution continues offset instructions after the jump.
func JumpIfZero(offset uint32) Instruction {
	return Instruction{code: op.JumpIfZero, arg: int64(offset)}
}

// JumpIfNonZero returns the closing jump of a loop. If the current cell is
// nonzero, execution continues offset instructions before the jump.
func JumpIfNonZero(offset uint32) Instruction {
	return Instruction{code: op.JumpIfNonZero, arg: int64(offset)}
}

// Input returns an instruction that reads one byte into the current cell.
func Input() Instruction {
	return Instruction{code: op.Input}
}

// Output returns an instruction that writes the current cell.
func Output() Instruction {
	return Instruction{code: op.Output}
}

// Breakpoint returns a debug marker for the given source character offset.
func Breakpoint(pos int) Instruction {
	return Instruction{code: op.Breakpoint, arg: int64(pos)}
}

// Op returns the opcode of the instruction.
func (i Instruction) Op() op.Code {
	return i.code
}

// Arg returns the raw operand of the instruction.
func (i Instruction) Arg() int64 {
	return i.arg
}

// PointerDelta returns the operand of a MovePointer instruction.
func (i Instruction) PointerDelta() int32 {
	return int32(i.arg)
}

// CellDelta returns the operand of a MutateCell instruction.
func (i Instruction) CellDelta() int8 {
	return int8(i.arg)
}

// Value returns the operand of a SetCell instruction.
func (i Instruction) Value() uint8 {
	return uint8(i.arg)
}

// Offset returns the operand of a jump instruction.
func (i Instruction) Offset() uint32 {
	return uint32(i.arg)
}

// Position returns the source character offset of a Breakpoint.
func (i Instruction) Position() int {
	return int(i.arg)
}

// IsJump reports whether the instruction is one of the two loop jumps.
func (i Instruction) IsJump() bool {
	return i.code == op.JumpIfZero || i.code == op.JumpIfNonZero
}

// WithOffset returns a copy of a jump instruction with a new offset.
func (i Instruction) WithOffset(offset uint32) Instruction {
	i.arg = int64(offset)
	return i
}

// String renders the instruction as the source symbol it was compiled from.
// Instructions without a single-symbol form render as "?".
func (i Instruction) String() string {
	switch i.code {
	case op.MovePointer:
		switch i.arg {
		case 1:
			return ">"
		case -1:
			return "<"
		}
	case op.MutateCell:
		switch i.arg {
		case 1:
			return "+"
		case -1:
			return "-"
		}
	case op.Output, op.Input, op.JumpIfZero, op.JumpIfNonZero, op.Breakpoint:
		return op.GetInfo(i.code).Symbol
	}
	return "?"
}

// Describe renders the instruction with its opcode name and operand, for
// example "MUTATE_CELL -3".
func (i Instruction) Describe() string {
	switch i.code {
	case op.Input, op.Output:
		return i.code.String()
	case op.Invalid:
		return "INVALID"
	}
	return fmt.Sprintf("%s %d", i.code, i.arg)
}
