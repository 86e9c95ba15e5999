package errors

import (
	goerrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{"with filename", SourceLocation{Filename: "hello.bf", Line: 10, Column: 5}, "hello.bf:10:5"},
		{"without filename", SourceLocation{Line: 10, Column: 5}, "10:5"},
		{"zero location", SourceLocation{}, "0:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
	require.True(t, SourceLocation{}.IsZero())
	require.False(t, SourceLocation{Line: 1}.IsZero())
}

func TestSourceLine(t *testing.T) {
	source := "+++\r\n[-]\n>>"
	require.Equal(t, "+++", SourceLine(source, 1))
	require.Equal(t, "[-]", SourceLine(source, 2))
	require.Equal(t, ">>", SourceLine(source, 3))
	require.Equal(t, "", SourceLine(source, 4))
	require.Equal(t, "", SourceLine(source, 0))
	require.Equal(t, "", SourceLine("", 1))
}

func TestErrorCodes(t *testing.T) {
	require.Equal(t, "parse", E1001.Category())
	require.Equal(t, "parse", E1002.Category())
	require.Equal(t, "runtime", E3004.Category())
	require.Equal(t, "unknown", ErrorCode("X").Category())
	require.Equal(t, "cell overflow", E3004.Description())
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
}

func TestParseErrorMessages(t *testing.T) {
	require.Equal(t, "unexpected loop end at position 3", NewUnexpectedLoopEnd(3).Error())
	require.Equal(t, "missing loop end for the loop opened at position 0", NewMissingLoopEnd(0).Error())
}

func TestRuntimeErrorMessages(t *testing.T) {
	require.Equal(t, "tape overflow when changing 3 by -5", NewTapeOverflow(3, -5).Error())
	require.Equal(t, "cell overflow when changing 0 by -1 at 7", NewCellOverflow(7, 0, -1).Error())
	require.Equal(t, "input error: unexpected EOF", NewInputError(io.ErrUnexpectedEOF).Error())
	require.Equal(t, "output error", NewOutputError(nil).Error())
}

func TestRuntimeErrorUnwrap(t *testing.T) {
	cause := goerrors.New("broken pipe")
	err := NewOutputError(cause)
	require.ErrorIs(t, err, cause)

	var wrapped error = err
	var rerr *RuntimeError
	require.True(t, goerrors.As(wrapped, &rerr))
	require.Equal(t, E3002, rerr.Code)
	require.True(t, rerr.IsFatal())
}

func TestFormatParseError(t *testing.T) {
	err := NewUnexpectedLoopEnd(5)
	err.Location = SourceLocation{Filename: "x.bf", Line: 2, Column: 3, Source: "+-]"}

	expected := strings.Join([]string{
		"parse error[E1001]: unexpected loop end at position 5",
		"  --> x.bf:2:3",
		"   |",
		" 2 | +-]",
		"   |   ^",
		"   = hint: remove this ']' or add a matching '[' before it",
		"",
	}, "\n")
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestFormatParseErrorWithoutSource(t *testing.T) {
	out := NewMissingLoopEnd(0).FriendlyErrorMessage()
	require.Equal(t, "parse error[E1002]: missing loop end for the loop opened at position 0\n"+
		"   = hint: add a matching ']' after the loop body\n", out)
}

func TestFormatRuntimeError(t *testing.T) {
	err := NewCellOverflow(4, 255, 1)
	err.PC = 9
	out := err.FriendlyErrorMessage()
	require.Contains(t, out, "runtime error[E3004]: cell overflow when changing 255 by 1 at 4")
	require.Contains(t, out, "note: instruction 9, pointer 4")
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	out := f.FormatMultiple([]*FormattedError{
		NewUnexpectedLoopEnd(1).ToFormatted(),
		NewMissingLoopEnd(2).ToFormatted(),
	})
	require.Contains(t, out, "parse error[1/2]: unexpected loop end at position 1")
	require.Contains(t, out, "parse error[2/2]: missing loop end")
	require.True(t, strings.HasSuffix(out, "found 2 errors\n"))
	require.Equal(t, "", f.FormatMultiple(nil))
}

func TestCaretPaddingKeepsTabs(t *testing.T) {
	require.Equal(t, "\t ", caretPadding("\t+]", 3))
	require.Equal(t, "", caretPadding("]", 1))
	require.Equal(t, "    ", caretPadding("", 5))
}
