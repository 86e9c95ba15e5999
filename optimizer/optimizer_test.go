package optimizer

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/tape"
	"github.com/deepnoodle-ai/brainvm/vm"
)

type I = bytecode.Instruction

var (
	mov = bytecode.MovePointer
	mut = bytecode.MutateCell
	set = bytecode.SetCell
	jz  = bytecode.JumpIfZero
	jnz = bytecode.JumpIfNonZero
)

func defaultSettings() tape.Settings {
	return tape.DefaultSettings()
}

func strictSettings() tape.Settings {
	return tape.DefaultSettings().WithStrict(true)
}

func bothModes() map[string]tape.Settings {
	return map[string]tape.Settings{
		"without strict": defaultSettings(),
		"with strict":    strictSettings(),
	}
}

func TestMergesMutCellsWithoutStrict(t *testing.T) {
	require.Equal(t,
		[]I{mut(2)},
		Optimize([]I{mut(3), mut(127), mut(-128)}, defaultSettings()))

	require.Equal(t,
		[]I{mut(-128), mov(1), mut(-13)},
		Optimize([]I{mut(127), mut(1), mov(1), mut(-13)}, defaultSettings()))
}

func TestDoesNotMergeMutCellsWithStrict(t *testing.T) {
	require.Equal(t,
		[]I{set(255), mut(1)},
		Optimize([]I{set(250), mut(10), mut(-9)}, strictSettings()))
}

func TestEditsJumps(t *testing.T) {
	for name, settings := range bothModes() {
		t.Run(name, func(t *testing.T) {
			require.Equal(t,
				[]I{jz(3), set(3), mov(1), jnz(3)},
				Optimize([]I{jz(5), set(1), set(2), set(3), mov(1), jnz(5)}, settings))
		})
	}
}

func TestMergesAndCreatesSetsWithoutStrict(t *testing.T) {
	require.Equal(t,
		[]I{mov(5), set(0), mov(-5)},
		Optimize([]I{mov(5), jz(3), mut(3), mut(-4), jnz(3), mov(-5)}, defaultSettings()))
}

func TestCreatesSets(t *testing.T) {
	for name, settings := range bothModes() {
		t.Run(name, func(t *testing.T) {
			require.Equal(t,
				[]I{set(0)},
				Optimize([]I{jz(3), mut(-1), jnz(3)}, settings))
		})
	}
	require.Equal(t,
		[]I{set(0)},
		Optimize([]I{jz(3), mut(1), jnz(3)}, defaultSettings()))
}

func TestPreservesLoopOverflowWithStrict(t *testing.T) {
	code := []I{jz(3), mut(1), jnz(3), mov(3)}
	require.Equal(t, code, Optimize(code, strictSettings()))
}

func TestPreservesLoopsWithOtherDeltas(t *testing.T) {
	code := []I{jz(3), mut(2), jnz(3), mov(1)}
	for name, settings := range bothModes() {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, code, Optimize(code, settings))
		})
	}
}

func TestRemovesLeadingMutsWithoutStrict(t *testing.T) {
	require.Equal(t,
		[]I{set(8)},
		Optimize([]I{mut(5), mut(-3), set(10), mut(-2)}, defaultSettings()))
}

func TestDoesNotRemoveLeadingMutsWithStrict(t *testing.T) {
	require.Equal(t,
		[]I{mut(5), mut(-3), set(8)},
		Optimize([]I{mut(5), mut(-3), set(10), mut(-2)}, strictSettings()))
}

func TestRemovesInstructionsAfterOverflow(t *testing.T) {
	require.Equal(t,
		[]I{mov(-3), set(255), mut(1)},
		Optimize([]I{mov(-3), set(200), mut(100), mov(3), jz(2), mut(-1), jnz(2)}, strictSettings()))
}

func TestOverflowInsideLoopKeepsFollowingCode(t *testing.T) {
	out := Optimize([]I{
		jz(7), mov(1), jz(4), set(200), mut(100), mov(1), jnz(4), jnz(7), mov(2),
	}, strictSettings())
	require.Equal(t, []I{
		jz(7), mov(1), jz(4), set(255), mut(1), mov(1), jnz(4), jnz(7), mov(2),
	}, out)
	require.NoError(t, bytecode.NewProgram(out).ValidateJumps())
}

func TestOverflowInSkippedLoopWithStrict(t *testing.T) {
	// "[[-]-]+." after the clear idiom has been recognized.
	code := []I{jz(5), jz(2), mut(-1), jnz(2), mut(-1), jnz(5), mut(1), bytecode.Output()}
	out := Optimize(code, strictSettings())
	require.Equal(t, []I{jz(3), set(255), mut(1), jnz(3), mut(1), bytecode.Output()}, out)

	var before, after bytes.Buffer
	require.NoError(t, vm.NewBytes(bytecode.NewProgram(code), strictSettings(), nil, &before).Run())
	require.NoError(t, vm.NewBytes(bytecode.NewProgram(out), strictSettings(), nil, &after).Run())
	require.Equal(t, []byte{1}, before.Bytes())
	require.Equal(t, before.Bytes(), after.Bytes())
}

func TestOverflowFromDeadChainWithStrict(t *testing.T) {
	// "[-]-[-]" after the clear idiom has been recognized.
	require.Equal(t,
		[]I{set(255), mut(1)},
		Optimize([]I{jz(2), mut(-1), jnz(2), mut(-1), jz(2), mut(-1), jnz(2), mov(1)}, strictSettings()))
}

func TestKeepsZeroDeltaMerges(t *testing.T) {
	require.Equal(t,
		[]I{mov(0), bytecode.Output()},
		Optimize([]I{mov(1), mov(-1), bytecode.Output()}, defaultSettings()))
}

func TestMergesPointerModuloTapeLength(t *testing.T) {
	settings, err := tape.NewSettings(10, false, false)
	require.NoError(t, err)
	require.Equal(t, []I{mov(8)}, MergeRuns([]I{mov(-1), mov(-1)}, settings))
	require.Equal(t, []I{mov(3)}, MergeRuns([]I{mov(7), mov(6)}, settings))
	require.Equal(t, []I{mov(-4)}, MergeRuns([]I{mov(-4)}, settings))
}

func TestDebugIsIdentity(t *testing.T) {
	code := []I{mut(1), mut(1), bytecode.Breakpoint(2), jz(3), mut(-1), jnz(3)}
	settings := defaultSettings().WithDebug(true)
	require.Equal(t, code, Optimize(code, settings))
}

func TestRemoveBreakpointsPatchesJumps(t *testing.T) {
	out := RemoveBreakpoints([]I{
		jz(4), bytecode.Breakpoint(1), bytecode.Output(), bytecode.Breakpoint(3), jnz(4),
	}, defaultSettings())
	require.Equal(t, []I{jz(2), bytecode.Output(), jnz(2)}, out)
}

func TestOptimizeDoesNotModifyInput(t *testing.T) {
	code := []I{mut(1), mut(1), jz(3), mut(-1), jnz(3)}
	original := append([]I(nil), code...)
	Optimize(code, defaultSettings())
	require.Equal(t, original, code)
}

func TestOptimizeLogsPasses(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	Optimize([]I{mut(1), mut(1)}, defaultSettings(), WithLogger(logger))
	require.Contains(t, buf.String(), `"pass":"merge_runs"`)
	require.Contains(t, buf.String(), `"before":2`)
	require.Contains(t, buf.String(), `"after":1`)
}
