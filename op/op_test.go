package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(JumpIfZero)
	require.Equal(t, "JUMP_IF_ZERO", info.Name)
	require.Equal(t, "[", info.Symbol)
	require.True(t, info.IsJump)
	require.Equal(t, JumpIfZero, info.Code)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code   Code
		name   string
		symbol string
		jump   bool
	}{
		{MovePointer, "MOVE_POINTER", "", false},
		{MutateCell, "MUTATE_CELL", "", false},
		{SetCell, "SET_CELL", "", false},
		{JumpIfZero, "JUMP_IF_ZERO", "[", true},
		{JumpIfNonZero, "JUMP_IF_NONZERO", "]", true},
		{Input, "INPUT", ",", false},
		{Output, "OUTPUT", ".", false},
		{Breakpoint, "BREAKPOINT", "#", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.code, info.Code)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.symbol, info.Symbol)
			require.Equal(t, tt.jump, info.IsJump)
			require.Equal(t, tt.name, tt.code.String())
		})
	}
}

func TestInvalidOpcode(t *testing.T) {
	require.Equal(t, "", GetInfo(Invalid).Name)
	require.Equal(t, "INVALID", Invalid.String())
	require.Equal(t, "INVALID", Code(200).String())
}
