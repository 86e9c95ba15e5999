package vm

import (
	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/op"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	// Use for: detailed tracing, instruction-level debugging.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	StepNone

	// StepSampled calls OnStep every N instructions.
	// Use for: statistical profiling of long-running programs.
	StepSampled

	// StepOnBreakpoint calls OnStep only for Breakpoint instructions.
	// Use for: tape dumps and breakpoint-based debuggers.
	StepOnBreakpoint
)

// ObserverConfig specifies what events an observer wants to receive.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int
}

// NormalizeConfig validates and clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer is an interface for observing execution. Implementations can be
// used for tracing, profiling or debugging without modifying the VM.
//
// Observer methods are called synchronously, before the instruction they
// describe is executed.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when the observer is attached to the VM.
	Config() ObserverConfig

	// OnStep is called based on the StepMode in the observer's config.
	// Returns false to halt execution before the instruction runs.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// PC is the index of the instruction about to run.
	PC int

	// Instruction is the instruction about to run.
	Instruction bytecode.Instruction

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// Pointer is the current tape position.
	Pointer uint32

	// Cell is the value under the pointer.
	Cell uint8

	// Steps is the number of instructions executed so far.
	Steps int64
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to get the default StepAll config.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return ObserverConfig{StepMode: StepAll}
}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}

// ObserverFunc adapts a function to an Observer with the given config.
type ObserverFunc struct {
	Cfg  ObserverConfig
	Func func(StepEvent) bool
}

func (o ObserverFunc) Config() ObserverConfig  { return o.Cfg }
func (o ObserverFunc) OnStep(e StepEvent) bool { return o.Func(e) }

// shouldObserve reports whether the configured observer wants an event for
// the given instruction.
func (vm *VirtualMachine) shouldObserve(instr bytecode.Instruction) bool {
	if vm.observer == nil {
		return false
	}
	switch vm.observerConfig.StepMode {
	case StepAll:
		return true
	case StepSampled:
		return vm.steps%int64(vm.observerConfig.SampleInterval) == 0
	case StepOnBreakpoint:
		return instr.Op() == op.Breakpoint
	default:
		return false
	}
}
