package archive

import "fmt"

// ErrorKind classifies an archive failure.
type ErrorKind int

const (
	// ToolFailure means the external archiver exited non-zero.
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

// Error is returned when an archive could not be produced by the archiver.
type Error struct {
	Kind       ErrorKind
	ExitCode   int
	Executable string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("archive %s failed: %s exited with code %d", e.Path, e.Executable, e.ExitCode)
}
