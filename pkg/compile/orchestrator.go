// Package compile runs the compiler over exactly the stale sources of a
// source tree.
package compile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/stackb/groovy-build/pkg/procutil"
)

// State is the position of a compile in its lifecycle:
//
//	NotStarted -> FilesEnumerated -> Skipped
//	                              -> Invoked -> Succeeded | Failed
type State int

const (
	NotStarted State = iota
	FilesEnumerated
	Skipped
	Invoked
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case FilesEnumerated:
		return "FilesEnumerated"
	case Skipped:
		return "Skipped"
	case Invoked:
		return "Invoked"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Skipped || s == Succeeded || s == Failed
}

// Outcome describes how a Compile call ended.
type Outcome struct {
	State State
	// Files is the number of sources handed to the compiler.
	Files int
	// Result is nil unless the compiler was launched.
	Result *procutil.Result
}

type OrchestratorOption func(*Orchestrator) *Orchestrator

// WithOutput streams the compiler's stdout and stderr to the given writers.
// Both streams are copied concurrently, so a writer passed as both must be
// safe for concurrent use.
func WithOutput(stdout, stderr io.Writer) OrchestratorOption {
	return func(o *Orchestrator) *Orchestrator {
		o.stdout = stdout
		o.stderr = stderr
		return o
	}
}

// Orchestrator launches the compiler for a Request.
type Orchestrator struct {
	launcher procutil.Launcher
	logger   zerolog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// NewOrchestrator constructs an Orchestrator.  By default compiler output goes
// to os.Stdout and os.Stderr.
func NewOrchestrator(launcher procutil.Launcher, logger zerolog.Logger, options ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		launcher: launcher,
		logger:   logger,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range options {
		o = opt(o)
	}
	return o
}

// Compile runs the compiler over the request's files.  An empty file list
// launches nothing and ends Skipped.  A non-zero exit ends Failed with an
// *Error of kind ToolFailure.
func (o *Orchestrator) Compile(req *Request) (*Outcome, error) {
	outcome := &Outcome{State: NotStarted}

	files := req.Files()
	outcome.State = FilesEnumerated
	outcome.Files = len(files)

	if len(files) == 0 {
		outcome.State = Skipped
		o.logger.Info().Msgf("Skipping compilation of [%s], all files are up to date", req.SourceRoot())
		return outcome, nil
	}

	if err := os.MkdirAll(req.OutputRoot(), os.ModePerm); err != nil {
		outcome.State = Failed
		return outcome, fmt.Errorf("creating output directory %s: %w", req.OutputRoot(), err)
	}

	cmd := &procutil.Command{
		Path:   req.Executable(),
		Args:   CommandLine(req),
		Env:    req.Env(),
		Stdout: o.stdout,
		Stderr: o.stderr,
	}

	o.logger.Info().Msgf("Compiling [%d] files from [%s] to [%s]", len(files), req.SourceRoot(), req.OutputRoot())
	o.logger.Debug().Msgf("%s %s", cmd.Path, strings.Join(cmd.Args, " "))
	if e := o.logger.Debug(); e.Enabled() {
		e.Msg(spew.Sdump(req))
	}

	outcome.State = Invoked
	result, err := o.launcher.Launch(cmd)
	outcome.Result = result
	if err != nil {
		outcome.State = Failed
		return outcome, fmt.Errorf("running %s: %w", req.Executable(), err)
	}
	if result.ExitCode != 0 {
		outcome.State = Failed
		return outcome, &Error{
			Kind:       ToolFailure,
			ExitCode:   result.ExitCode,
			Executable: req.Executable(),
		}
	}

	outcome.State = Succeeded
	return outcome, nil
}

// CommandLine renders the compiler arguments of req, excluding the
// executable: extra arguments, classpath, source path, output directory and
// then each file.
func CommandLine(req *Request) []string {
	args := make([]string, 0, len(req.extraArgs)+len(req.cpArgs)+4+len(req.files))
	args = append(args, req.extraArgs...)
	args = append(args, req.cpArgs...)
	args = append(args, "-sourcepath", req.sourceRoot)
	args = append(args, "-d", req.outputRoot)
	for _, file := range req.files {
		args = append(args, filepath.Join(req.sourceRoot, file))
	}
	return args
}
