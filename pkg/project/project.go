// Package project loads a project definition from a project.star file.
package project

import (
	"path/filepath"

	"github.com/stackb/groovy-build/pkg/dependency"
)

// DefaultFilename is the project definition looked up in the working
// directory.
const DefaultFilename = "project.star"

// Project is a named, versioned build unit.
type Project struct {
	Name    string
	Version string
	Group   string
	// Dir is the directory that settings paths are relative to.
	Dir          string
	Dependencies dependency.Dependencies
	Settings     Settings
}

// Artifact is the coordinate of the project itself; it roots the dependency
// graph.
func (p *Project) Artifact() dependency.Artifact {
	return dependency.Artifact{Group: p.Group, Name: p.Name, Version: p.Version}
}

// Path resolves a settings path against the project directory.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir, filepath.FromSlash(rel))
}

// JarName returns the file name of one of the project's archives, e.g.
// "app-1.0.jar" or "app-test-1.0-src.jar".
func (p *Project) JarName(test, sources bool) string {
	name := p.Name
	if test {
		name += "-test"
	}
	name += "-" + p.Version
	if sources {
		name += "-src"
	}
	return name + ".jar"
}
