// Package starlarkeval evaluates Starlark build definitions.
package starlarkeval

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Interpreter struct {
	// Global state
	globals starlark.StringDict
	// Builtins visible to every file
	predeclared starlark.StringDict
	// Thread context
	thread *starlark.Thread
	// Last eval error
	evalErr *starlark.EvalError
}

// NewInterpreter constructs an interpreter whose print() goes to logger.
func NewInterpreter(logger zerolog.Logger, predeclared starlark.StringDict) *Interpreter {
	return &Interpreter{
		predeclared: predeclared,
		globals:     starlark.StringDict{},
		thread: &starlark.Thread{
			Name: "main",
			Print: func(_ *starlark.Thread, msg string) {
				logger.Info().Msg(msg)
			},
		},
	}
}

func (i *Interpreter) GetGlobal(name string) starlark.Value {
	return i.globals[name]
}

// EvalError returns the error of the last Exec if it failed during
// evaluation rather than parsing.
func (i *Interpreter) EvalError() *starlark.EvalError {
	return i.evalErr
}

func (i *Interpreter) Exec(filename string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, i.thread, filename, bytes.NewReader(data), i.predeclared)
	if globals != nil {
		i.globals = globals
	}
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		i.evalErr = evalErr
		return fmt.Errorf("%s", evalErr.Backtrace())
	}
	return err
}
