// Package optimizer rewrites emitted bytecode into shorter, equivalent
// bytecode.
//
// Optimization runs four passes in a fixed order:
//
//  1. RemoveBreakpoints drops every Breakpoint.
//  2. MergeRuns collapses runs of MovePointer and runs of MutateCell.
//     Skipped in strict mode, where every intermediate value is observed.
//  3. CreateSets replaces the clear idiom "[-]" (or "[+]") with SetCell(0).
//  4. ReduceCellChains folds runs of SetCell and MutateCell on one cell.
//
// Every pass writes through a Builder, which keeps loop jump offsets
// consistent as the instruction count changes. In debug mode the optimizer
// returns its input unchanged.
package optimizer

import (
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/op"
	"github.com/deepnoodle-ai/brainvm/tape"
)

// Option is a configuration function for Optimize.
type Option func(*config)

type config struct {
	logger zerolog.Logger
}

// WithLogger sets a logger that receives per-pass instruction counts at
// debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Pass is a single rewrite of a bytecode sequence.
type Pass struct {
	Name string
	Run  func(code []bytecode.Instruction, settings tape.Settings) []bytecode.Instruction
}

// Passes lists the optimizer passes in the order they run.
var Passes = []Pass{
	{Name: "remove_breakpoints", Run: RemoveBreakpoints},
	{Name: "merge_runs", Run: MergeRuns},
	{Name: "create_sets", Run: CreateSets},
	{Name: "reduce_cell_chains", Run: ReduceCellChains},
}

// Optimize returns bytecode equivalent to code under the given settings.
// It never fails: a strict-mode program that must overflow is rewritten to
// end in an overflow trap instead. The input slice is not modified.
func Optimize(code []bytecode.Instruction, settings tape.Settings, options ...Option) []bytecode.Instruction {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(cfg)
	}
	if settings.Debug() {
		cfg.logger.Debug().Int("instructions", len(code)).Msg("debug mode, optimizer skipped")
		return code
	}
	for _, pass := range Passes {
		before := len(code)
		code = pass.Run(code, settings)
		cfg.logger.Debug().
			Str("pass", pass.Name).
			Int("before", before).
			Int("after", len(code)).
			Msg("optimizer pass")
	}
	return code
}

// RemoveBreakpoints drops every Breakpoint instruction.
func RemoveBreakpoints(code []bytecode.Instruction, _ tape.Settings) []bytecode.Instruction {
	b := NewBuilder(len(code))
	for _, instr := range code {
		if instr.Op() == op.Breakpoint {
			b.Omit(1)
		} else {
			b.Preserve(instr)
		}
	}
	return b.Build()
}

// MergeRuns collapses each run of consecutive MovePointer instructions into
// one, summed modulo the tape length, and each run of consecutive
// MutateCell instructions into one, summed with 8-bit wraparound. A run
// that sums to zero still produces one instruction. In strict mode the
// input is returned unchanged.
func MergeRuns(code []bytecode.Instruction, settings tape.Settings) []bytecode.Instruction {
	if settings.Strict() {
		return code
	}
	length := int64(settings.TapeLength())
	b := NewBuilder(len(code))
	for i := 0; i < len(code); i++ {
		instr := code[i]
		switch instr.Op() {
		case op.MovePointer:
			b.Omit(1)
			delta := int64(instr.PointerDelta())
			for i+1 < len(code) && code[i+1].Op() == op.MovePointer {
				i++
				b.Omit(1)
				delta = tape.Mod(delta+int64(code[i].PointerDelta()), length)
			}
			b.Include(bytecode.MovePointer(int32(delta)))
		case op.MutateCell:
			b.Omit(1)
			delta := instr.CellDelta()
			for i+1 < len(code) && code[i+1].Op() == op.MutateCell {
				i++
				b.Omit(1)
				delta += code[i].CellDelta()
			}
			b.Include(bytecode.MutateCell(delta))
		default:
			b.Preserve(instr)
		}
	}
	return b.Build()
}

// CreateSets replaces every loop whose body is a single MutateCell(+1) or
// MutateCell(-1) with SetCell(0). In strict mode a +1 loop is kept, since
// it must overflow at runtime rather than clear the cell. Loops with any
// other single delta are kept as they are.
func CreateSets(code []bytecode.Instruction, settings tape.Settings) []bytecode.Instruction {
	b := NewBuilder(len(code))
	window := make([]bytecode.Instruction, 0, 3)
	for _, instr := range code {
		if len(window) == 3 {
			b.Preserve(window[0])
			window = append(window[:0], window[1:]...)
		}
		window = append(window, instr)
		if len(window) < 3 || !isSingleMutationLoop(window) {
			continue
		}
		delta := window[1].CellDelta()
		if (delta == 1 && !settings.Strict()) || delta == -1 {
			b.Omit(3)
			b.Include(bytecode.SetCell(0))
		} else {
			for _, kept := range window {
				b.Preserve(kept)
			}
		}
		window = window[:0]
	}
	for _, instr := range window {
		b.Preserve(instr)
	}
	return b.Build()
}

func isSingleMutationLoop(window []bytecode.Instruction) bool {
	return window[0].Op() == op.JumpIfZero &&
		window[1].Op() == op.MutateCell &&
		window[2].Op() == op.JumpIfNonZero
}

// cellChain is a run of SetCell and MutateCell instructions acting on the
// same cell. hasSet is true once a SetCell has anchored the chain to a known
// value; changes are the MutateCell deltas seen after it.
type cellChain struct {
	hasSet  bool
	value   uint8
	changes []int8
}

// apply returns the value after applying every change to the anchored
// value, or false if strict arithmetic overflows on the way.
func (c cellChain) apply(settings tape.Settings) (uint8, bool) {
	value := c.value
	for _, change := range c.changes {
		next, ok := settings.MutateCell(value, change)
		if !ok {
			return value, false
		}
		value = next
	}
	return value, true
}

// ReduceCellChains folds each run of SetCell and MutateCell instructions.
// A run anchored by a SetCell becomes a single SetCell with the final
// value. A run with no SetCell becomes a single wrapping MutateCell, or in
// strict mode keeps its nonzero deltas one by one so each can still
// overflow at runtime. MutateCells before a SetCell are dead and dropped,
// except in strict mode where they may overflow.
//
// If strict folding proves an overflow, the chain is replaced with the
// overflow trap (see Builder.Trap). Outside any loop the trap always runs,
// so the rest of the program is discarded. Inside a loop the body may never
// execute, so the pass keeps going after the trap.
func ReduceCellChains(code []bytecode.Instruction, settings tape.Settings) []bytecode.Instruction {
	b := NewBuilder(len(code))
	var chain cellChain

	// trap writes the overflow trap and reports whether it ends the program.
	trap := func() bool {
		b.Trap()
		return b.Depth() == 0
	}

	includeChanges := func(changes []int8) {
		for _, change := range changes {
			if change != 0 {
				b.Include(bytecode.MutateCell(change))
			}
		}
	}

	// finish writes the pending chain and reports false if it overflowed.
	finish := func() bool {
		current := chain
		chain = cellChain{}
		switch {
		case current.hasSet:
			value, ok := current.apply(settings)
			if !ok {
				return false
			}
			b.Include(bytecode.SetCell(value))
		case settings.Strict():
			includeChanges(current.changes)
		default:
			var sum int8
			for _, change := range current.changes {
				sum += change
			}
			if sum != 0 {
				b.Include(bytecode.MutateCell(sum))
			}
		}
		return true
	}

	for _, instr := range code {
		switch instr.Op() {
		case op.SetCell:
			b.Omit(1)
			if settings.Strict() {
				if chain.hasSet {
					// The pending chain's value is dead, since this set
					// overwrites it, but its arithmetic still runs: "[-]-[-]"
					// overflows before the second clear.
					if _, ok := chain.apply(settings); !ok && trap() {
						return b.Build()
					}
				} else {
					includeChanges(chain.changes)
				}
			}
			chain = cellChain{hasSet: true, value: instr.Value()}
		case op.MutateCell:
			b.Omit(1)
			chain.changes = append(chain.changes, instr.CellDelta())
		default:
			if !finish() && trap() {
				return b.Build()
			}
			b.Preserve(instr)
		}
	}
	if !finish() {
		b.Trap()
	}
	return b.Build()
}
