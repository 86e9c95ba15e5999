// Package tape defines the Settings shared by the compiler, optimizer and
// virtual machine, and the wrap-or-fail arithmetic they all agree on.
package tape

import "fmt"

const (
	// DefaultLength is the number of cells on the tape by default.
	DefaultLength uint32 = 30_000

	// MinLength and MaxLength bound the accepted tape length.
	MinLength uint32 = 3
	MaxLength uint32 = 1_000_000_000
)

// Settings is an immutable configuration for one compile or execution
// session. The zero value is not valid; use DefaultSettings or NewSettings.
type Settings struct {
	tapeLength uint32
	strict     bool
	debug      bool
}

// NewSettings returns Settings with the given values, or an error if the
// tape length is outside MinLength..MaxLength.
func NewSettings(tapeLength uint32, strict, debug bool) (Settings, error) {
	if tapeLength < MinLength || tapeLength > MaxLength {
		return Settings{}, fmt.Errorf("invalid tape length %d: must be between %d and %d",
			tapeLength, MinLength, MaxLength)
	}
	return Settings{tapeLength: tapeLength, strict: strict, debug: debug}, nil
}

// DefaultSettings returns non-strict, non-debug settings with a tape of
// DefaultLength cells.
func DefaultSettings() Settings {
	return Settings{tapeLength: DefaultLength}
}

// TapeLength returns the number of cells on the tape.
func (s Settings) TapeLength() uint32 {
	return s.tapeLength
}

// Strict reports whether overflowing a cell or the tape is fatal instead of
// wrapping around.
func (s Settings) Strict() bool {
	return s.strict
}

// Debug reports whether breakpoints are kept and optimization is skipped.
func (s Settings) Debug() bool {
	return s.debug
}

// WithStrict returns a copy of s with strict mode set to the given value.
func (s Settings) WithStrict(strict bool) Settings {
	s.strict = strict
	return s
}

// WithDebug returns a copy of s with debug mode set to the given value.
func (s Settings) WithDebug(debug bool) Settings {
	s.debug = debug
	return s
}

func (s Settings) String() string {
	return fmt.Sprintf("tape_length=%d strict=%t debug=%t", s.tapeLength, s.strict, s.debug)
}

// MutateCell applies delta to a cell value. Outside strict mode the result
// wraps modulo 256 and ok is always true. In strict mode ok is false when
// the unwrapped result would leave 0..255.
func (s Settings) MutateCell(cell uint8, delta int8) (result uint8, ok bool) {
	sum := int(cell) + int(delta)
	if s.strict && (sum < 0 || sum > 255) {
		return cell, false
	}
	return uint8(sum), true
}

// MovePointer applies delta to a tape position. Outside strict mode the
// result wraps modulo the tape length and ok is always true. In strict mode
// ok is false when the unwrapped result would leave the tape.
func (s Settings) MovePointer(pointer uint32, delta int32) (result uint32, ok bool) {
	length := int64(s.tapeLength)
	sum := int64(pointer) + int64(delta)
	if s.strict && (sum < 0 || sum >= length) {
		return pointer, false
	}
	return uint32(Mod(sum, length)), true
}

// Mod returns the Euclidean remainder of a divided by n, which is always in
// 0..n-1 for positive n.
func Mod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
