package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("output")
			switch strings.ToLower(format) {
			case "", "text":
				fmt.Fprintf(out, "brainvm %s\ncommit: %s\nbuilt at: %s\n", version, commit, date)
			case "json":
				info, err := getOutputJSON(out, map[string]any{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(info))
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}
			return nil
		},
	}
	addOutputFlag(cmd)
	return cmd
}
