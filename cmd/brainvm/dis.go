package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/brainvm"
	"github.com/deepnoodle-ai/brainvm/dis"
)

func (c *cli) newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble a program",
		Long: `Compile a program and print its bytecode. Use --debug to see the
unoptimized instructions with breakpoints kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.disassemble,
	}
	addSourceFlags(cmd)
	addOutputFlag(cmd)
	return cmd
}

func (c *cli) disassemble(cmd *cobra.Command, args []string) error {
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
	instructions, err := dis.Disassemble(program)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("output"); strings.ToLower(format) {
	case "", "text":
		dis.Print(instructions, out)
	case "json":
		if instructions == nil {
			instructions = []dis.Instruction{}
		}
		data, err := getOutputJSON(out, instructions)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "text", "output format (json, text)")
	_ = cmd.RegisterFlagCompletionFunc("output",
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
		})
}
