package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/brainvm"
	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/internal/table"
)

func (c *cli) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print statistics about a compiled program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.printStats,
	}
	addSourceFlags(cmd)
	addOutputFlag(cmd)
	return cmd
}

func (c *cli) printStats(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	settings, err := c.settings()
	if err != nil {
		return err
	}
	program, err := brainvm.Compile(src.code,
		brainvm.WithSettings(settings),
		brainvm.WithFilename(src.filename),
		brainvm.WithLogger(c.logger))
	if err != nil {
		return err
	}
	stats := program.Stats()

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("output"); strings.ToLower(format) {
	case "", "text":
		printStatsTable(cmd, stats)
	case "json":
		data, err := getOutputJSON(out, stats)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func printStatsTable(cmd *cobra.Command, stats bytecode.Stats) {
	tbl := table.NewTable(cmd.OutOrStdout()).
		WithHeader([]string{"METRIC", "VALUE"}).
		WithHeaderAlignment([]table.Alignment{table.AlignCenter, table.AlignCenter}).
		WithColumnAlignment([]table.Alignment{table.AlignLeft, table.AlignRight})
	tbl.Append([]string{"instructions", strconv.Itoa(stats.InstructionCount)})
	tbl.Append([]string{"loops", strconv.Itoa(stats.LoopCount)})
	tbl.Append([]string{"max loop depth", strconv.Itoa(stats.MaxLoopDepth)})
	tbl.Append([]string{"breakpoints", strconv.Itoa(stats.BreakpointCount)})
	tbl.Append([]string{"io", strconv.Itoa(stats.IOCount)})

	names := make([]string, 0, len(stats.Opcodes))
	for name := range stats.Opcodes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tbl.Append([]string{name, strconv.Itoa(stats.Opcodes[name])})
	}
	tbl.Render()
}
