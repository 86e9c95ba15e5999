package bytecode

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/deepnoodle-ai/brainvm/op"
)

// Program is an immutable compiled program. It is safe for concurrent use.
type Program struct {
	instructions []Instruction
}

// NewProgram creates a Program from the given instructions. The slice is
// copied.
func NewProgram(instructions []Instruction) *Program {
	var copied []Instruction
	if len(instructions) > 0 {
		copied = make([]Instruction, len(instructions))
		copy(copied, instructions)
	}
	return &Program{instructions: copied}
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.instructions)
}

// At returns the instruction at the given index. It panics if the index is
// out of range.
func (p *Program) At(index int) Instruction {
	return p.instructions[index]
}

// Instructions returns a copy of the instruction sequence.
func (p *Program) Instructions() []Instruction {
	result := make([]Instruction, len(p.instructions))
	copy(result, p.instructions)
	return result
}

// All returns an iterator over the index and instruction pairs.
func (p *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(int, Instruction) bool) {
		for i, instr := range p.instructions {
			if !yield(i, instr) {
				return
			}
		}
	}
}

// String renders the program as source symbols. See Instruction.String.
func (p *Program) String() string {
	var b strings.Builder
	for _, instr := range p.instructions {
		b.WriteString(instr.String())
	}
	return b.String()
}

// ValidateJumps checks that every JumpIfZero at index i with offset k is
// matched by a JumpIfNonZero at index i+k with the same offset, and that
// the pairs nest properly.
func (p *Program) ValidateJumps() error {
	var open []int
	for i, instr := range p.instructions {
		switch instr.Op() {
		case op.JumpIfZero:
			if instr.Offset() == 0 {
				return fmt.Errorf("jump at %d has a zero offset", i)
			}
			open = append(open, i)
		case op.JumpIfNonZero:
			if len(open) == 0 {
				return fmt.Errorf("jump back at %d has no matching jump forward", i)
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			want := uint32(i - start)
			if got := p.instructions[start].Offset(); got != want {
				return fmt.Errorf("jump forward at %d has offset %d, want %d", start, got, want)
			}
			if got := instr.Offset(); got != want {
				return fmt.Errorf("jump back at %d has offset %d, want %d", i, got, want)
			}
		}
	}
	if len(open) > 0 {
		return fmt.Errorf("jump forward at %d has no matching jump back", open[len(open)-1])
	}
	return nil
}

type jsonInstruction struct {
	Op  string `json:"op"`
	Arg *int64 `json:"arg,omitempty"`
}

// MarshalJSON encodes the program as a list of {"op", "arg"} objects.
func (p *Program) MarshalJSON() ([]byte, error) {
	out := make([]jsonInstruction, 0, len(p.instructions))
	for _, instr := range p.instructions {
		entry := jsonInstruction{Op: instr.Op().String()}
		switch instr.Op() {
		case op.Input, op.Output:
		default:
			arg := instr.Arg()
			entry.Arg = &arg
		}
		out = append(out, entry)
	}
	return json.Marshal(out)
}
