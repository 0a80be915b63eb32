package procutil

import (
	"errors"
	"os/exec"
)

// CmdExitCode reports the exit status of a finished command.  A command that
// could not be started at all (e.g. the executable is missing) reports -1.
func CmdExitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		if cmd.ProcessState == nil {
			return -1
		}
		return cmd.ProcessState.ExitCode()
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode()
	}

	// This will happen if the executable is not available or not runnable,
	// in which case no process state exists.
	return -1
}
