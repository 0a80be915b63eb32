package plugin

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stackb/groovy-build/pkg/staleness"
)

// CopyResources copies every resource under resourceDir that is missing or
// older in outputDir and returns how many were copied.  Copies keep the
// source's modification time, so unchanged resources are not copied again.
// A missing resourceDir copies nothing.
func (p *Plugin) CopyResources(resourceDir, outputDir string) (int, error) {
	if _, err := os.Stat(resourceDir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	scanner := staleness.NewScanner(p.logger, "", "", p.project.Settings.Excludes...)
	stale, err := scanner.Scan(resourceDir, outputDir)
	if err != nil {
		return 0, err
	}
	for _, rel := range stale {
		if err := copyFile(filepath.Join(resourceDir, rel), scanner.OutputPath(outputDir, rel)); err != nil {
			return 0, fmt.Errorf("copying resource %s: %w", rel, err)
		}
	}
	if len(stale) > 0 {
		p.logger.Info().Msgf("Copied [%d] resources from [%s] to [%s]", len(stale), resourceDir, outputDir)
	}
	return len(stale), nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
