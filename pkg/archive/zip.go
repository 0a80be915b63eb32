package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pcj/mobyprogress"
)

// ZipArchiver writes jars in-process.
type ZipArchiver struct {
	// Progress receives one update per entry when set.
	Progress mobyprogress.Output
}

// Archive implements Archiver.  The manifest, if any, is the first entry.
// On error no partial archive is left at path.
func (a *ZipArchiver) Archive(path string, manifest *Manifest, entries []Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	// runs after the close below
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	if manifest != nil {
		w, err := zw.Create(ManifestName)
		if err != nil {
			return err
		}
		if _, err := manifest.WriteTo(w); err != nil {
			return err
		}
	}

	id := filepath.Base(path)
	for i, entry := range entries {
		if err := addFile(zw, entry); err != nil {
			return fmt.Errorf("adding %s to %s: %w", entry.Name, path, err)
		}
		if a.Progress != nil {
			a.Progress.WriteProgress(mobyprogress.Progress{
				ID:         id,
				Action:     "archiving",
				Current:    int64(i + 1),
				Total:      int64(len(entries)),
				Units:      "files",
				LastUpdate: i == len(entries)-1,
			})
		}
	}

	return zw.Close()
}

func addFile(zw *zip.Writer, entry Entry) error {
	src, err := os.Open(entry.Path())
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.Name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
