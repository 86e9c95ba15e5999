package brainvm

import (
	"bytes"
	"context"
	goerrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/errors"
	"github.com/deepnoodle-ai/brainvm/syntax"
	"github.com/deepnoodle-ai/brainvm/tape"
	"github.com/deepnoodle-ai/brainvm/vm"
)

func TestBasicUsage(t *testing.T) {
	var out bytes.Buffer
	machine, err := Eval(context.Background(), ",[.,]",
		WithInput(strings.NewReader("Hello, world!")),
		WithOutput(&out))
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", out.String())
	require.True(t, machine.Halted())
}

func TestCompileClearIdiom(t *testing.T) {
	program, err := Compile("[-]")
	require.NoError(t, err)
	require.Equal(t, []bytecode.Instruction{bytecode.SetCell(0)}, program.Instructions())
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("]", WithFilename("x.b"))
	var parseErr *errors.ParseError
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, errors.E1001, parseErr.Code)
	require.Equal(t, 0, parseErr.Position)
	require.Equal(t, "x.b", parseErr.Location.Filename)

	_, err = Compile("[")
	require.True(t, goerrors.As(err, &parseErr))
	require.Equal(t, errors.E1002, parseErr.Code)
	require.Equal(t, 0, parseErr.Position)
}

func TestTapeLength(t *testing.T) {
	machine, err := Eval(context.Background(), "<", WithTapeLength(100))
	require.NoError(t, err)
	require.Equal(t, uint32(99), machine.Pointer())

	machine, err = Eval(context.Background(), "<")
	require.NoError(t, err)
	require.Equal(t, tape.DefaultLength-1, machine.Pointer())
}

func TestInvalidTapeLength(t *testing.T) {
	_, err := Compile("+", WithTapeLength(2))
	require.Error(t, err)
	_, err = Run(context.Background(), bytecode.NewProgram(nil), WithTapeLength(2))
	require.Error(t, err)
}

func TestStrict(t *testing.T) {
	machine, err := Eval(context.Background(), "-", WithStrict(true))
	var runtimeErr *errors.RuntimeError
	require.True(t, goerrors.As(err, &runtimeErr))
	require.Equal(t, errors.E3004, runtimeErr.Code)
	require.NotNil(t, machine)

	machine, err = Eval(context.Background(), "-")
	require.NoError(t, err)
	require.Equal(t, uint8(255), machine.Cell())
}

func TestSettingsOverrides(t *testing.T) {
	base, err := tape.NewSettings(50, true, false)
	require.NoError(t, err)

	o := collectOptions(WithStrict(false), WithSettings(base), WithDebug(true))
	settings, err := o.resolveSettings()
	require.NoError(t, err)
	require.Equal(t, uint32(50), settings.TapeLength())
	require.False(t, settings.Strict())
	require.True(t, settings.Debug())
}

func TestDebugKeepsBreakpoints(t *testing.T) {
	var positions []int
	observer := vm.ObserverFunc{
		Cfg: vm.ObserverConfig{StepMode: vm.StepOnBreakpoint},
		Func: func(e vm.StepEvent) bool {
			positions = append(positions, e.Instruction.Position())
			return true
		},
	}
	_, err := Eval(context.Background(), "+#+#", WithDebug(true), WithObserver(observer))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, positions)

	positions = nil
	_, err = Eval(context.Background(), "+#+#", WithObserver(observer))
	require.NoError(t, err)
	require.Empty(t, positions)
}

func TestConcurrentRuns(t *testing.T) {
	program, err := Compile("++++++++[>++++++++<-]>+.")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out bytes.Buffer
			_, err := Run(context.Background(), program, WithOutput(&out))
			if err == nil {
				results[i] = out.String()
			}
		}(i)
	}
	wg.Wait()
	for _, result := range results {
		require.Equal(t, "A", result)
	}
}

func TestRunCancelled(t *testing.T) {
	program, err := Compile("+[]")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, program)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSyntaxRestrictions(t *testing.T) {
	_, err := Compile(",[.,]", WithSyntax(syntax.Pure), WithFilename("cat.b"))
	var validationErrs *syntax.ValidationErrors
	require.True(t, goerrors.As(err, &validationErrs))
	require.Len(t, validationErrs.Errors, 3)
	require.Equal(t, "cat.b", validationErrs.Errors[0].Filename)

	_, err = Compile("+[>+<-]", WithSyntax(syntax.Pure), WithSyntax(syntax.Release))
	require.NoError(t, err)

	_, err = Compile("[[[-]]]", WithSyntax(syntax.SyntaxConfig{MaxLoopDepth: 2}))
	require.Error(t, err)
}

func TestTransformers(t *testing.T) {
	program, err := Compile("+[[>+<-]]", WithDebug(true), WithTransformers(syntax.FlattenNestedLoops))
	require.NoError(t, err)
	require.Equal(t, "+[>+<-]", program.String())

	machine, err := Run(context.Background(), program)
	require.NoError(t, err)
	require.Equal(t, uint8(1), machine.Memory()[1])
}
