// Package bytecode provides the immutable representation of compiled tape
// programs.
//
// This package defines the output of compilation: an [Instruction] value
// type and a [Program], an immutable sequence of instructions. A Program is
// created once by the compiler and may be shared safely across goroutines
// and virtual machines.
//
// # Key Types
//
//   - [Instruction]: One operation with its operand (value type)
//   - [Program]: An immutable, index-addressed instruction sequence
//   - [Stats]: Instruction counts used for auditing and reporting
//
// # Immutability Guarantees
//
//   - No mutation methods exist on Program
//   - All fields are unexported
//   - NewProgram copies its input slice
//   - Instructions returns a copy; At returns a value
//
// # Jumps
//
// Loops are encoded with relative jumps. A JumpIfZero at index i with
// offset k is paired with a JumpIfNonZero at index i+k carrying the same
// offset. [Program.ValidateJumps] checks this pairing.
package bytecode
