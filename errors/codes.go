package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E3xxx: Runtime errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected loop end
	E1002 ErrorCode = "E1002" // Missing loop end

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Input failure
	E3002 ErrorCode = "E3002" // Output failure
	E3003 ErrorCode = "E3003" // Tape overflow
	E3004 ErrorCode = "E3004" // Cell overflow
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected loop end",
	E1002: "missing loop end",

	E3001: "input error",
	E3002: "output error",
	E3003: "tape overflow",
	E3004: "cell overflow",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '3':
		return "runtime"
	default:
		return "unknown"
	}
}
