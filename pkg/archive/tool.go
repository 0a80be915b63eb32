package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/stackb/groovy-build/pkg/procutil"
)

// ToolArchiver writes jars with the JDK's jar tool.
type ToolArchiver struct {
	// Executable is the resolved jar binary.
	Executable string
	Launcher   procutil.Launcher
	Env        map[procutil.EnvVar]string
	// Stdout and Stderr receive the tool's output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Archive implements Archiver.  A manifest is always passed to the tool so
// an archive with no entries can still be created.
func (a *ToolArchiver) Archive(path string, manifest *Manifest, entries []Entry) error {
	mf, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.mf")
	if err != nil {
		return err
	}
	defer os.Remove(mf.Name())
	if _, err := manifest.WriteTo(mf); err != nil {
		mf.Close()
		return err
	}
	if err := mf.Close(); err != nil {
		return err
	}

	args := []string{"cfm", path, mf.Name()}
	for _, entry := range entries {
		args = append(args, "-C", entry.Dir, filepath.FromSlash(entry.Name))
	}

	result, err := a.Launcher.Launch(&procutil.Command{
		Path:   a.Executable,
		Args:   args,
		Env:    a.Env,
		Stdout: a.Stdout,
		Stderr: a.Stderr,
	})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &Error{
			Kind:       ToolFailure,
			ExitCode:   result.ExitCode,
			Executable: a.Executable,
			Path:       path,
		}
	}
	return nil
}
