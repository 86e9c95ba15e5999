package bytecode

import "github.com/deepnoodle-ai/brainvm/op"

// Stats contains statistics about compiled bytecode.
// This is useful for auditing programs before execution.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int `json:"instruction_count"`

	// LoopCount is the number of JumpIfZero / JumpIfNonZero pairs.
	LoopCount int `json:"loop_count"`

	// MaxLoopDepth is the deepest loop nesting.
	MaxLoopDepth int `json:"max_loop_depth"`

	// BreakpointCount is the number of breakpoints left in the program.
	BreakpointCount int `json:"breakpoint_count"`

	// IOCount is the number of Input and Output instructions.
	IOCount int `json:"io_count"`

	// Opcodes counts instructions by opcode name.
	Opcodes map[string]int `json:"opcodes"`
}

// Stats returns statistics about the program.
func (p *Program) Stats() Stats {
	stats := Stats{
		InstructionCount: len(p.instructions),
		Opcodes:          map[string]int{},
	}
	depth := 0
	for _, instr := range p.instructions {
		stats.Opcodes[instr.Op().String()]++
		switch instr.Op() {
		case op.JumpIfZero:
			stats.LoopCount++
			depth++
			if depth > stats.MaxLoopDepth {
				stats.MaxLoopDepth = depth
			}
		case op.JumpIfNonZero:
			depth--
		case op.Breakpoint:
			stats.BreakpointCount++
		case op.Input, op.Output:
			stats.IOCount++
		}
	}
	return stats
}
