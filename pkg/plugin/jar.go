package plugin

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stackb/groovy-build/pkg/archive"
	"github.com/stackb/groovy-build/pkg/toolchain"
)

// Jar writes the class and source archives of the main and test sources into
// the jar directory.  An archive whose input directories are all missing is
// not written.  It returns the paths of the archives written.
func (p *Plugin) Jar() ([]string, error) {
	s := &p.project.Settings
	jarDir := p.project.Path(s.JarDir)

	manifest := &archive.Manifest{
		Title:      p.project.Name,
		Version:    p.project.Version,
		Attributes: s.Manifest,
	}
	specs := []*archive.Spec{
		{
			Path: filepath.Join(jarDir, p.project.JarName(false, false)),
			Dirs: []string{p.project.Path(s.MainBuildDir), p.project.Path(s.MainResources)},
		},
		{
			Path: filepath.Join(jarDir, p.project.JarName(false, true)),
			Dirs: []string{p.project.Path(s.MainSource), p.project.Path(s.MainResources)},
		},
		{
			Path: filepath.Join(jarDir, p.project.JarName(true, false)),
			Dirs: []string{p.project.Path(s.TestBuildDir), p.project.Path(s.TestResources)},
		},
		{
			Path: filepath.Join(jarDir, p.project.JarName(true, true)),
			Dirs: []string{p.project.Path(s.TestSource), p.project.Path(s.TestResources)},
		},
	}

	builder, err := p.archiveBuilder()
	if err != nil {
		return nil, err
	}

	var written []string
	for i, spec := range specs {
		if !anyExists(spec.Dirs) {
			p.logger.Debug().Msgf("Skipping [%s], no input directories", spec.Path)
			writeJarProgress(p.progress, i+1, len(specs))
			continue
		}
		spec.Manifest = manifest
		if _, err := builder.Build(spec); err != nil {
			return written, err
		}
		written = append(written, spec.Path)
		writeJarProgress(p.progress, i+1, len(specs))
	}
	return written, nil
}

func (p *Plugin) archiveBuilder() (*archive.Builder, error) {
	if !p.toolArchiver {
		return archive.NewBuilder(&archive.ZipArchiver{Progress: p.progress}, p.logger), nil
	}
	exe, env, err := p.tool(toolchain.Java, p.project.Settings.JavaVersion, "jar")
	if err != nil {
		return nil, err
	}
	return archive.NewBuilder(&archive.ToolArchiver{
		Executable: exe,
		Launcher:   p.launcher,
		Env:        env,
		Stdout:     p.stdout,
		Stderr:     p.stderr,
	}, p.logger), nil
}

func anyExists(dirs []string) bool {
	for _, dir := range dirs {
		if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
			return true
		}
	}
	return false
}
