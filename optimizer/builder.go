package optimizer

import (
	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/op"
)

// jumpEntry is a JumpIfZero that has been written to the output but whose
// matching JumpIfNonZero has not been reached yet.
type jumpEntry struct {
	index   int    // output index of the JumpIfZero
	offset  uint32 // offset recorded in the input
	changed int64  // net instructions inserted (+) or removed (-) since
}

func (e jumpEntry) newOffset() uint32 {
	return uint32(int64(e.offset) + e.changed)
}

// Builder accumulates the output of one optimizer pass and keeps loop jump
// offsets correct while instructions are removed and inserted.
//
// Offsets are not updated eagerly. Each open loop records how many
// instructions its body gained or lost, and both ends of the loop are
// patched when the closing jump is preserved.
type Builder struct {
	out   []bytecode.Instruction
	jumps []jumpEntry
}

// NewBuilder returns a Builder with room for capacity instructions.
func NewBuilder(capacity int) *Builder {
	return &Builder{out: make([]bytecode.Instruction, 0, capacity)}
}

// Preserve copies an input instruction to the output. Loop jumps are
// patched here: a JumpIfZero opens a stack entry and the matching
// JumpIfNonZero closes it, rewriting both offsets.
func (b *Builder) Preserve(instr bytecode.Instruction) {
	b.out = append(b.out, instr)
	last := len(b.out) - 1
	switch instr.Op() {
	case op.JumpIfZero:
		b.jumps = append(b.jumps, jumpEntry{index: last, offset: instr.Offset()})
	case op.JumpIfNonZero:
		entry := b.pop()
		b.patch(entry.index, last, entry.newOffset())
	}
}

// Include writes an instruction that was not present in the input.
func (b *Builder) Include(instr bytecode.Instruction) {
	b.out = append(b.out, instr)
	for i := range b.jumps {
		b.jumps[i].changed++
	}
}

// Omit records that count input instructions were dropped.
func (b *Builder) Omit(count int) {
	for i := range b.jumps {
		b.jumps[i].changed -= int64(count)
	}
}

// Build returns the output of the pass.
func (b *Builder) Build() []bytecode.Instruction {
	return b.out
}

// Trap writes the strict-mode overflow trap: a SetCell(255) followed by
// MutateCell(+1), which always fails at runtime.
func (b *Builder) Trap() {
	b.Include(bytecode.SetCell(255))
	b.Include(bytecode.MutateCell(1))
}

// Depth returns the number of loops opened in the output and not yet
// closed.
func (b *Builder) Depth() int {
	return len(b.jumps)
}

func (b *Builder) pop() jumpEntry {
	entry := b.jumps[len(b.jumps)-1]
	b.jumps = b.jumps[:len(b.jumps)-1]
	return entry
}

func (b *Builder) patch(start, end int, offset uint32) {
	b.out[start] = bytecode.JumpIfZero(offset)
	b.out[end] = bytecode.JumpIfNonZero(offset)
}
