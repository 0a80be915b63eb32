package compile

import "fmt"

// ErrorKind classifies a compile failure.
type ErrorKind int

const (
	// ToolFailure means the compiler ran and exited non-zero.
	ToolFailure ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case ToolFailure:
		return "ToolFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by Compile when the compiler fails.  It is fatal to the
// build step and never retried.
type Error struct {
	Kind       ErrorKind
	ExitCode   int
	Executable string
}

func (e *Error) Error() string {
	return fmt.Sprintf("compilation failed: %s exited with code %d", e.Executable, e.ExitCode)
}
