package project

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/stackb/groovy-build/pkg/dependency"
	"github.com/stackb/groovy-build/pkg/toolchain"
)

// Language selects the compiler and source extension.
type Language string

const (
	Groovy Language = "groovy"
	Java   Language = "java"
)

// Settings configures a project's layout and compilation.  Paths are
// relative to the project directory.
type Settings struct {
	Language      Language
	GroovyVersion string
	JavaVersion   string
	// Indy enables invokedynamic support in groovyc.
	Indy bool
	// CompilerArgs is split on whitespace and passed before the classpath.
	CompilerArgs string

	MainSource    string
	MainResources string
	TestSource    string
	TestResources string
	BuildDir      string
	MainBuildDir  string
	TestBuildDir  string
	JarDir        string
	DocDir        string

	// Excludes are doublestar patterns, relative to the source root, of
	// sources and resources that are never compiled or copied.
	Excludes []string

	MainDependencies []dependency.ResolutionRule
	TestDependencies []dependency.ResolutionRule

	// RepositoryDir holds resolved artifacts in maven layout.
	RepositoryDir string
	// LockFile pins the dependency graph.  Optional.
	LockFile string

	// Manifest holds extra jar manifest attributes.
	Manifest map[string]string
}

// DefaultSettings returns the conventional layout.
func DefaultSettings() Settings {
	return Settings{
		Language:      Groovy,
		GroovyVersion: "2.4",
		JavaVersion:   "1.8",
		MainSource:    "src/main/groovy",
		MainResources: "src/main/resources",
		TestSource:    "src/test/groovy",
		TestResources: "src/test/resources",
		BuildDir:      "build",
		MainBuildDir:  "build/classes/main",
		TestBuildDir:  "build/classes/test",
		JarDir:        "build/jars",
		DocDir:        "build/doc",
		MainDependencies: []dependency.ResolutionRule{
			{Group: "compile"},
			{Group: "provided"},
		},
		TestDependencies: []dependency.ResolutionRule{
			{Group: "compile"},
			{Group: "test-compile"},
			{Group: "provided"},
		},
		RepositoryDir: "repository",
	}
}

// SourceExt is the extension of compilable sources.
func (s *Settings) SourceExt() string {
	if s.Language == Java {
		return ".java"
	}
	return ".groovy"
}

// OutputExt is the extension of compiled files.
func (s *Settings) OutputExt() string {
	return ".class"
}

// Compiler is the toolchain and executable that compiles the language.
func (s *Settings) Compiler() (toolchain.Kind, string, string) {
	if s.Language == Java {
		return toolchain.Java, s.JavaVersion, "javac"
	}
	return toolchain.Groovy, s.GroovyVersion, "groovyc"
}

// Documenter is the toolchain and executable that renders API docs.
func (s *Settings) Documenter() (toolchain.Kind, string, string) {
	if s.Language == Java {
		return toolchain.Java, s.JavaVersion, "javadoc"
	}
	return toolchain.Groovy, s.GroovyVersion, "groovydoc"
}

// Validate checks the settings for values that cannot work.
func (s *Settings) Validate() error {
	switch s.Language {
	case Groovy, Java:
	default:
		return fmt.Errorf("unknown language %q (want %q or %q)", s.Language, Groovy, Java)
	}
	for name, dir := range map[string]string{
		"build_dir":      s.BuildDir,
		"main_build_dir": s.MainBuildDir,
		"test_build_dir": s.TestBuildDir,
		"jar_dir":        s.JarDir,
	} {
		if dir == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	for _, pattern := range s.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	for _, rules := range [][]dependency.ResolutionRule{s.MainDependencies, s.TestDependencies} {
		for _, rule := range rules {
			if rule.Group == "" {
				return fmt.Errorf("dependency resolution rule has an empty group")
			}
		}
	}
	return nil
}
