// Package op defines the opcodes used by the compiler, optimizer and
// virtual machine.
//
// The instruction set is closed: every consumer switches exhaustively over
// these codes.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Tape
	MovePointer Code = 1 // Move the pointer by a signed delta, modulo tape length
	MutateCell  Code = 2 // Add a signed delta to the current cell
	SetCell     Code = 3 // Write an absolute value to the current cell

	// Jump
	JumpIfZero    Code = 10 // Jump forward by offset if the current cell is zero
	JumpIfNonZero Code = 11 // Jump backward by offset if the current cell is nonzero

	// I/O
	Input  Code = 20
	Output Code = 21

	// Debugging
	Breakpoint Code = 30
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string

	// Symbol is the source character that compiles to this opcode, or the
	// empty string if the opcode is only produced by the optimizer.
	Symbol string

	// IsJump is true for the two relative jump opcodes.
	IsJump bool
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op     Code
		name   string
		symbol string
		jump   bool
	}
	ops := []opInfo{
		{Breakpoint, "BREAKPOINT", "#", false},
		{Input, "INPUT", ",", false},
		{JumpIfNonZero, "JUMP_IF_NONZERO", "]", true},
		{JumpIfZero, "JUMP_IF_ZERO", "[", true},
		{MovePointer, "MOVE_POINTER", "", false},
		{MutateCell, "MUTATE_CELL", "", false},
		{Output, "OUTPUT", ".", false},
		{SetCell, "SET_CELL", "", false},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:   o.op,
			Name:   o.name,
			Symbol: o.symbol,
			IsJump: o.jump,
		}
	}
}

// GetInfo returns information about the given opcode. Unknown opcodes
// return an Info with an empty Name.
func GetInfo(op Code) Info {
	return infos[op]
}

// String returns the opcode name, e.g. "MOVE_POINTER".
func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "INVALID"
}
