package procutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Command describes a single process invocation.
type Command struct {
	// Path is the executable to run.
	Path string
	// Args excludes the executable itself.
	Args []string
	// Env holds overrides applied on top of the current environment.
	Env map[EnvVar]string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Stdout and Stderr receive the process output as it is produced.  A nil
	// writer discards the stream.
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode    int
	StdoutBytes int64
	StderrBytes int64
}

// Launcher starts a process and blocks until it exits.
type Launcher interface {
	Launch(cmd *Command) (*Result, error)
}

// ExecLauncher is the Launcher backed by os/exec.
type ExecLauncher struct{}

// Launch runs the command to completion.  A non-zero exit status is not an
// error; it is reported in the Result.  Errors are returned only when the
// process could not be started or its output could not be read.
//
// There is no timeout: a hung process blocks until it is killed externally.
func (ExecLauncher) Launch(c *Command) (*Result, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = MergeEnv(os.Environ(), c.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting process %s: %w", c.Path, err)
	}

	result := &Result{}
	var stdoutErr, stderrErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.StdoutBytes, stdoutErr = drain(c.Stdout, stdout)
	}()
	go func() {
		defer wg.Done()
		result.StderrBytes, stderrErr = drain(c.Stderr, stderr)
	}()

	// Wait closes the pipes, so both readers have to hit EOF first.
	wg.Wait()
	err = cmd.Wait()
	result.ExitCode = CmdExitCode(cmd, err)

	if err != nil {
		var exitError *exec.ExitError
		if !errors.As(err, &exitError) {
			return result, fmt.Errorf("waiting for %s: %w", c.Path, err)
		}
	}
	if err := errors.Join(stdoutErr, stderrErr); err != nil {
		return result, fmt.Errorf("reading output of %s: %w", c.Path, err)
	}

	return result, nil
}

// drain copies r to w until EOF.  If w fails, the rest of r is still read so
// the child never blocks on a full pipe.
func drain(w io.Writer, r io.Reader) (int64, error) {
	if w == nil {
		w = io.Discard
	}
	n, err := io.Copy(w, r)
	if err != nil {
		m, _ := io.Copy(io.Discard, r)
		n += m
	}
	return n, err
}
