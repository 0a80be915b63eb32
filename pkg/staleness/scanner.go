// Package staleness decides which source files have to be recompiled by
// comparing each source with the output file it maps to.
package staleness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// ErrNotDirectory is returned when the source root exists but is not a
// directory.
var ErrNotDirectory = errors.New("source root is not a directory")

// Scanner finds the files under a source root whose output under an output
// root is missing or out of date.
type Scanner struct {
	// SourceExt selects the source files, e.g. ".groovy".  An empty extension
	// selects every regular file.
	SourceExt string
	// OutputExt replaces SourceExt to form the output file name, e.g. ".class".
	OutputExt string
	// Excludes are doublestar patterns matched against the slash-separated
	// path relative to the source root.
	Excludes []string

	logger zerolog.Logger
}

// NewScanner constructs a Scanner that maps sourceExt onto outputExt.
func NewScanner(logger zerolog.Logger, sourceExt, outputExt string, excludes ...string) *Scanner {
	return &Scanner{
		SourceExt: sourceExt,
		OutputExt: outputExt,
		Excludes:  excludes,
		logger:    logger,
	}
}

// ComputeStaleFiles returns the paths, relative to sourceRoot, of every file
// ending in sourceExt whose counterpart under outputRoot is missing or older.
// A missing sourceRoot yields no files and no error.
func ComputeStaleFiles(sourceRoot, outputRoot, sourceExt, outputExt string) ([]string, error) {
	return NewScanner(zerolog.Nop(), sourceExt, outputExt).Scan(sourceRoot, outputRoot)
}

// OutputPath maps a source path relative to the source root onto its output
// file under outputRoot.
func (s *Scanner) OutputPath(outputRoot, rel string) string {
	return filepath.Join(outputRoot, strings.TrimSuffix(rel, s.SourceExt)+s.OutputExt)
}

// Scan returns the stale sources in discovery order.  A source is stale when
// its output does not exist or was modified strictly before the source.
func (s *Scanner) Scan(sourceRoot, outputRoot string) ([]string, error) {
	var stale []string
	err := s.walk(sourceRoot, func(rel string, info fs.FileInfo) error {
		out, err := os.Stat(s.OutputPath(outputRoot, rel))
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, rel)
			return nil
		}
		if err != nil {
			return err
		}
		if out.ModTime().Before(info.ModTime()) {
			stale = append(stale, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stale, nil
}

// Collect returns every selected source under sourceRoot regardless of its
// outputs.
func (s *Scanner) Collect(sourceRoot string) ([]string, error) {
	var files []string
	if err := s.walk(sourceRoot, func(rel string, _ fs.FileInfo) error {
		files = append(files, rel)
		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) walk(sourceRoot string, visit func(rel string, info fs.FileInfo) error) error {
	for _, pattern := range s.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	root, err := os.Stat(sourceRoot)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Str("dir", sourceRoot).Msg("source directory does not exist, nothing to compile")
		return nil
	}
	if err != nil {
		return err
	}
	if !root.IsDir() {
		return fmt.Errorf("%s: %w", sourceRoot, ErrNotDirectory)
	}

	return filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), s.SourceExt) {
			return nil
		}
		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		if s.excluded(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return visit(rel, info)
	})
}

func (s *Scanner) excluded(rel string) bool {
	name := filepath.ToSlash(rel)
	for _, pattern := range s.Excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
