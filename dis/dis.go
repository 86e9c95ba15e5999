// Package dis disassembles compiled programs into a readable listing.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/brainvm/bytecode"
	"github.com/deepnoodle-ai/brainvm/internal/table"
	"github.com/deepnoodle-ai/brainvm/op"
)

// Instruction is one disassembled instruction.
type Instruction struct {
	Offset   int                  `json:"offset"`
	Opcode   op.Code              `json:"-"`
	Name     string               `json:"opcode"`
	Operands []int64              `json:"operands,omitempty"`
	Info     string               `json:"info,omitempty"`
	Raw      bytecode.Instruction `json:"-"`
}

var opcodeColor = color.New(color.FgCyan)

// Disassemble returns the instructions of the program with their jump
// targets resolved. It fails on invalid opcodes and inconsistent jumps.
func Disassemble(program *bytecode.Program) ([]Instruction, error) {
	if err := program.ValidateJumps(); err != nil {
		return nil, err
	}
	var instructions []Instruction
	for offset, instr := range program.All() {
		info := op.GetInfo(instr.Op())
		if info.Name == "" {
			return nil, fmt.Errorf("invalid opcode %d at offset %d", instr.Op(), offset)
		}
		entry := Instruction{
			Offset: offset,
			Opcode: instr.Op(),
			Name:   info.Name,
			Raw:    instr,
		}
		switch instr.Op() {
		case op.Input, op.Output:
		default:
			entry.Operands = []int64{instr.Arg()}
		}
		entry.Info = describe(offset, instr)
		instructions = append(instructions, entry)
	}
	return instructions, nil
}

// describe returns the annotation shown in the INFO column.
func describe(offset int, instr bytecode.Instruction) string {
	switch instr.Op() {
	case op.JumpIfZero:
		return fmt.Sprintf("-> %d", offset+int(instr.Offset())+1)
	case op.JumpIfNonZero:
		return fmt.Sprintf("-> %d", offset-int(instr.Offset())+1)
	case op.Breakpoint:
		return fmt.Sprintf("source %d", instr.Position())
	case op.SetCell:
		if v := instr.Value(); strconv.IsPrint(rune(v)) && v < 128 {
			return strconv.QuoteRune(rune(v))
		}
	}
	return instr.String()
}

// Print writes the instructions as a table.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		var operands string
		for i, operand := range instr.Operands {
			if i > 0 {
				operands += " "
			}
			operands += strconv.FormatInt(operand, 10)
		}
		info := instr.Info
		if info == "?" {
			info = ""
		}
		lines = append(lines, []string{
			strconv.Itoa(instr.Offset),
			opcodeColor.Sprint(instr.Name),
			operands,
			info,
		})
	}
	tbl := table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithHeaderAlignment([]table.Alignment{table.AlignCenter, table.AlignCenter, table.AlignCenter, table.AlignCenter}).
		WithColumnAlignment([]table.Alignment{table.AlignRight, table.AlignLeft, table.AlignRight, table.AlignLeft})
	for _, line := range lines {
		tbl.Append(line)
	}
	tbl.Render()
}
