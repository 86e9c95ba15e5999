package main

import (
	"encoding/json"
	goerrors "errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/deepnoodle-ai/brainvm/errors"
)

var outputFormatsCompletion = []string{"json", "text"}

// isTerminal reports whether w is a terminal, either native or Cygwin.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colorized.
func useColor(w io.Writer) bool {
	return !color.NoColor && isTerminal(w)
}

func getOutputJSON(w io.Writer, result any) ([]byte, error) {
	if useColor(w) {
		return prettyjson.Marshal(result)
	}
	return json.MarshalIndent(result, "", "  ")
}

// formatError renders err for display on a terminal. Parse and runtime
// errors get the full treatment with source context; an aggregate of
// errors is rendered one by one with a count.
func formatError(err error, useColor bool) string {
	formatter := errors.NewFormatter(useColor)

	var merr *multierror.Error
	if goerrors.As(err, &merr) && len(merr.Errors) > 0 {
		formatted := make([]*errors.FormattedError, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			formatted = append(formatted, toFormatted(e))
		}
		return strings.TrimRight(formatter.FormatMultiple(formatted), "\n")
	}

	// Errors that carry several violations, such as syntax restrictions
	var multi interface {
		ToFormattedMultiple() []*errors.FormattedError
	}
	if goerrors.As(err, &multi) {
		return strings.TrimRight(formatter.FormatMultiple(multi.ToFormattedMultiple()), "\n")
	}

	var formattable errors.FormattableError
	if goerrors.As(err, &formattable) {
		return strings.TrimRight(formatter.Format(formattable.ToFormatted()), "\n")
	}
	if useColor {
		return red("%s", err.Error())
	}
	return err.Error()
}

func toFormatted(err error) *errors.FormattedError {
	var formattable errors.FormattableError
	if goerrors.As(err, &formattable) {
		return formattable.ToFormatted()
	}
	return &errors.FormattedError{Message: err.Error()}
}
