package main

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/brainvm"
	"github.com/deepnoodle-ai/brainvm/syntax"
	"github.com/deepnoodle-ai/brainvm/tape"
)

func (c *cli) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check file...",
		Short: "Check that programs compile",
		Long: `Parse and compile each file without running it. Every file is
checked; all failures are reported together.

The restriction flags reject programs that use the named features.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.check,
	}
	cmd.Flags().Int("max-depth", 0, "maximum loop nesting depth (0 for unlimited)")
	cmd.Flags().Bool("no-breakpoints", false, "reject # breakpoints")
	cmd.Flags().Bool("no-io", false, "reject input and output")
	cmd.Flags().Bool("no-empty-loops", false, "reject [] loops")
	return cmd
}

func getSyntaxConfig(cmd *cobra.Command) syntax.SyntaxConfig {
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	noBreakpoints, _ := cmd.Flags().GetBool("no-breakpoints")
	noIO, _ := cmd.Flags().GetBool("no-io")
	noEmptyLoops, _ := cmd.Flags().GetBool("no-empty-loops")
	return syntax.SyntaxConfig{
		DisallowInput:       noIO,
		DisallowOutput:      noIO,
		DisallowBreakpoints: noBreakpoints,
		DisallowEmptyLoops:  noEmptyLoops,
		MaxLoopDepth:        maxDepth,
	}
}

func (c *cli) check(cmd *cobra.Command, args []string) error {
	settings, err := c.settings()
	if err != nil {
		return err
	}
	config := getSyntaxConfig(cmd)
	var result *multierror.Error
	for _, path := range args {
		if err := c.checkFile(path, settings, config); err != nil {
			c.logger.Debug().Str("file", path).Err(err).Msg("check failed")
			var validationErrs *syntax.ValidationErrors
			if goerrors.As(err, &validationErrs) {
				for i := range validationErrs.Errors {
					result = multierror.Append(result, &validationErrs.Errors[i])
				}
				continue
			}
			result = multierror.Append(result, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	return result.ErrorOrNil()
}

func (c *cli) checkFile(path string, settings tape.Settings, config syntax.SyntaxConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = brainvm.Compile(string(data),
		brainvm.WithSettings(settings),
		brainvm.WithSyntax(config),
		brainvm.WithFilename(path),
		brainvm.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
