// Package archive stages directories into jar files.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Spec describes one archive to build.
type Spec struct {
	// Path is the archive file to write.
	Path string
	// Dirs are staged in order; missing ones are skipped.
	Dirs []string
	// Manifest is optional.
	Manifest *Manifest
}

// Archiver writes the staged entries to an archive file.
type Archiver interface {
	Archive(path string, manifest *Manifest, entries []Entry) error
}

// Builder stages directories and hands them to an Archiver.
type Builder struct {
	archiver Archiver
	logger   zerolog.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(archiver Archiver, logger zerolog.Logger) *Builder {
	return &Builder{
		archiver: archiver,
		logger:   logger,
	}
}

// BuildArchive stages dirs into the archive at path and returns the number of
// files staged.  Zero files is valid.
func (b *Builder) BuildArchive(path string, dirs ...string) (int, error) {
	return b.Build(&Spec{Path: path, Dirs: dirs})
}

// Build produces the archive described by spec.
func (b *Builder) Build(spec *Spec) (int, error) {
	if err := os.MkdirAll(filepath.Dir(spec.Path), os.ModePerm); err != nil {
		return 0, fmt.Errorf("creating archive directory: %w", err)
	}

	var reserved []string
	if spec.Manifest != nil {
		reserved = append(reserved, ManifestName)
	}
	entries, err := Collect(b.logger, spec.Dirs, reserved...)
	if err != nil {
		return 0, err
	}

	if err := b.archiver.Archive(spec.Path, spec.Manifest, entries); err != nil {
		return 0, err
	}

	b.logger.Info().Msgf("Wrote [%d] files to [%s]", len(entries), spec.Path)
	return len(entries), nil
}
