package main

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// source is the program text to compile along with the input handle the
// program reads from when it runs.
type source struct {
	code     string
	filename string
	input    io.Reader
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "code to evaluate")
	cmd.Flags().Bool("stdin", false, "read code from stdin; a '!' or NUL byte separates the code from program input")
}

func getSource(cmd *cobra.Command, args []string) (*source, error) {
	// Determine what code is to be executed. There three possibilities:
	// 1. --code <code>
	// 2. --stdin (read code from stdin)
	// 3. path as args[0]
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet, _ = cmd.Flags().GetBool("stdin")
	}
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		code, input := splitStdin(data)
		return &source{code: string(code), input: bytes.NewReader(input)}, nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return &source{code: string(data), filename: args[0], input: cmd.InOrStdin()}, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return &source{code: code, input: cmd.InOrStdin()}, nil
	}
	return nil, errors.New("no input provided")
}

// splitStdin separates program code from program input at the first '!' or
// NUL byte. Without a separator everything is code and the input is empty.
func splitStdin(data []byte) (code, input []byte) {
	if i := bytes.IndexAny(data, "!\x00"); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, nil
}
