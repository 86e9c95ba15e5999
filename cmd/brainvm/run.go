package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/brainvm"
	"github.com/deepnoodle-ai/brainvm/vm"
)

// dumpRadius is the number of cells shown on each side of the pointer in a
// breakpoint dump.
const dumpRadius = 8

func (c *cli) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Compile and run a program",
		Long: `Compile and run a program, reading program input from stdin.

With --debug every # in the source prints a dump of the tape around the
pointer to stderr before execution continues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runProgram,
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("timing", false, "show execution time")
	return cmd
}

func (c *cli) runProgram(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	settings, err := c.settings()
	if err != nil {
		return err
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	logger := c.logger.With().Str("run_id", runID.String()).Logger()
	logger.Debug().
		Str("file", src.filename).
		Stringer("settings", settings).
		Msg("compiling")

	program, err := brainvm.Compile(src.code,
		brainvm.WithSettings(settings),
		brainvm.WithFilename(src.filename),
		brainvm.WithLogger(logger))
	if err != nil {
		return err
	}

	opts := []vm.Option{
		vm.WithInput(src.input),
		vm.WithOutput(cmd.OutOrStdout()),
		vm.WithLogger(logger),
	}
	dumper := &tapeDumper{w: cmd.ErrOrStderr(), code: src.code}
	if settings.Debug() {
		opts = append(opts, vm.WithObserver(dumper))
	}
	machine := vm.New(program, settings, opts...)
	dumper.machine = machine

	start := time.Now()
	err = machine.RunContext(cmd.Context())
	dt := time.Since(start)
	logger.Debug().
		Int64("steps", machine.Steps()).
		Dur("elapsed", dt).
		Msg("run finished")
	if err != nil {
		return err
	}
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", dt)
	}
	return nil
}

// tapeDumper prints the tape around the pointer whenever a breakpoint is
// reached.
type tapeDumper struct {
	w       io.Writer
	code    string
	machine *vm.VirtualMachine
}

func (d *tapeDumper) Config() vm.ObserverConfig {
	return vm.ObserverConfig{StepMode: vm.StepOnBreakpoint}
}

func (d *tapeDumper) OnStep(e vm.StepEvent) bool {
	line, col := lineCol(d.code, e.Instruction.Position())
	header := color.New(color.FgYellow).Sprintf("breakpoint at %d:%d", line, col)
	fmt.Fprintf(d.w, "%s (instruction %d, step %d)\n", header, e.PC, e.Steps)
	fmt.Fprintf(d.w, "  pointer %d: %s\n", e.Pointer, dumpCells(d.machine.Memory(), e.Pointer, dumpRadius))
	return true
}

// dumpCells renders the cells within radius of pointer, with the cell
// under the pointer in brackets.
func dumpCells(memory []byte, pointer uint32, radius int) string {
	lo := int(pointer) - radius
	if lo < 0 {
		lo = 0
	}
	hi := int(pointer) + radius
	if hi > len(memory)-1 {
		hi = len(memory) - 1
	}
	cells := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if i == int(pointer) {
			cells = append(cells, fmt.Sprintf("[%d]", memory[i]))
		} else {
			cells = append(cells, fmt.Sprintf("%d", memory[i]))
		}
	}
	return strings.Join(cells, " ")
}

// lineCol converts a 0-based character offset into a 1-based line and
// column.
func lineCol(code string, pos int) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, ch := range code {
		if i == pos {
			break
		}
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return line, col
}
