// Package toolchain locates the installed compilers and archivers by their
// logical version.
package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Homes maps a logical toolchain version (e.g. "2.4") to its installation
// directory.
type Homes map[string]string

// Versions returns the configured versions in sorted order.
func (h Homes) Versions() []string {
	versions := make([]string, 0, len(h))
	for v := range h {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Kind names a toolchain, e.g. "groovy" or "java".  It is used in error
// messages and to name the properties file.
type Kind string

const (
	Groovy Kind = "groovy"
	Java   Kind = "java"
)

// Installation is a toolchain home resolved from its version.
type Installation struct {
	Kind    Kind
	Version string
	Home    string
	// PropertiesFile is where the version mapping was read from, if known.
	PropertiesFile string
}

// Lookup resolves version to an installation.  An unconfigured version or a
// home that does not exist is a ConfigurationError.
func Lookup(kind Kind, homes Homes, propertiesFile, version string) (*Installation, error) {
	if version == "" {
		return nil, &ConfigurationError{
			Kind:           kind,
			PropertiesFile: propertiesFile,
			Reason:         fmt.Sprintf("you must configure the %s version to use", kind),
		}
	}
	home, ok := homes.find(version)
	if !ok || home == "" {
		return nil, &ConfigurationError{
			Kind:           kind,
			Version:        version,
			PropertiesFile: propertiesFile,
			Reason:         fmt.Sprintf("no %s home is configured for version [%s]", kind, version),
		}
	}
	info, err := os.Stat(home)
	if err != nil || !info.IsDir() {
		return nil, &ConfigurationError{
			Kind:           kind,
			Version:        version,
			Path:           home,
			PropertiesFile: propertiesFile,
			Reason:         fmt.Sprintf("the %s home [%s] for version [%s] is not a directory", kind, home, version),
		}
	}
	return &Installation{
		Kind:           kind,
		Version:        version,
		Home:           home,
		PropertiesFile: propertiesFile,
	}, nil
}

// Executable returns the path of the named tool under the installation's
// bin directory, checking that it exists and is executable.
func (i *Installation) Executable(name string) (string, error) {
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}
	path := filepath.Join(i.Home, "bin", name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ConfigurationError{
			Kind:           i.Kind,
			Version:        i.Version,
			Path:           path,
			PropertiesFile: i.PropertiesFile,
			Reason:         fmt.Sprintf("the %s executable [%s] does not exist", name, path),
		}
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() || (runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0) {
		return "", &ConfigurationError{
			Kind:           i.Kind,
			Version:        i.Version,
			Path:           path,
			PropertiesFile: i.PropertiesFile,
			Reason:         fmt.Sprintf("the %s executable [%s] is not executable", name, path),
		}
	}
	return path, nil
}

// ConfigurationError reports a toolchain that cannot be used as configured.
// Its message explains the expected properties file format.
type ConfigurationError struct {
	Kind           Kind
	Version        string
	Path           string
	PropertiesFile string
	Reason         string
}

func (e *ConfigurationError) Error() string {
	file := e.PropertiesFile
	if file == "" {
		file = DefaultPropertiesFile(e.Kind)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s toolchain configuration error: %s.\n\n", e.Kind, e.Reason)
	fmt.Fprintf(&b, "The file [%s] must map each %s version to its installation directory, one per line:\n\n", file, e.Kind)
	example := e.Version
	if example == "" {
		example = "<version>"
	}
	fmt.Fprintf(&b, "  %s=/path/to/%s-%s\n\n", example, e.Kind, example)
	fmt.Fprintf(&b, "The directory must contain bin/ with the %s executables.", e.Kind)
	return b.String()
}

// DefaultPropertiesFile is the conventional location of the version mapping
// for kind: ~/.groovybuild/plugins/<kind>.properties.
func DefaultPropertiesFile(kind Kind) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, ".groovybuild", "plugins", string(kind)+".properties")
}
