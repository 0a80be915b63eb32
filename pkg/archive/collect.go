package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"
)

// Entry is one file staged into an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string
	// Dir is the directory Name is relative to on disk.
	Dir string
}

// Path is the file's location on disk.
func (e Entry) Path() string {
	return filepath.Join(e.Dir, filepath.FromSlash(e.Name))
}

// Collect stages every regular file under each directory, in the order
// given.  Directories that do not exist are skipped.  When two directories
// provide the same name the first one wins.  Names listed in reserved are
// never staged.
func Collect(logger zerolog.Logger, dirs []string, reserved ...string) ([]Entry, error) {
	seen := trie.NewPathTrie()
	for _, name := range reserved {
		seen.Put(name, "")
	}

	var entries []Entry
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Msgf("Skipping missing archive directory [%s]", dir)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("archive input %s is not a directory", dir)
		}

		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(rel)
			if seen.Get(name) != nil {
				logger.Debug().Msgf("Skipping duplicate archive entry [%s] from [%s]", name, dir)
				return nil
			}
			seen.Put(name, dir)
			entries = append(entries, Entry{Name: name, Dir: dir})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return entries, nil
}
