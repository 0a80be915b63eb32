// Package plugin implements the build operations of a Groovy or Java
// project: clean, compile, jar and doc.
package plugin

import (
	"errors"
	"io"
	"os"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/groovy-build/pkg/classpath"
	"github.com/stackb/groovy-build/pkg/compile"
	"github.com/stackb/groovy-build/pkg/dependency"
	"github.com/stackb/groovy-build/pkg/procutil"
	"github.com/stackb/groovy-build/pkg/project"
	"github.com/stackb/groovy-build/pkg/toolchain"
)

// Toolchains holds the version to home mappings of every toolchain kind and
// the files they were loaded from.
type Toolchains struct {
	Homes          map[toolchain.Kind]toolchain.Homes
	PropertiesFile map[toolchain.Kind]string
	// LoadErrors are returned when the toolchain is first needed.
	LoadErrors map[toolchain.Kind]error
}

func (t Toolchains) lookup(kind toolchain.Kind, version string) (*toolchain.Installation, error) {
	if err := t.LoadErrors[kind]; err != nil {
		var configErr *toolchain.ConfigurationError
		if errors.As(err, &configErr) && configErr.Version == "" {
			withVersion := *configErr
			withVersion.Version = version
			return nil, &withVersion
		}
		return nil, err
	}
	return toolchain.Lookup(kind, t.Homes[kind], t.PropertiesFile[kind], version)
}

type Option func(*Plugin) *Plugin

// WithLauncher replaces the process launcher.
func WithLauncher(launcher procutil.Launcher) Option {
	return func(p *Plugin) *Plugin {
		p.launcher = launcher
		return p
	}
}

// WithProgress reports step progress to out.
func WithProgress(out mobyprogress.Output) Option {
	return func(p *Plugin) *Plugin {
		p.progress = out
		return p
	}
}

// WithOutput sends tool output to the given writers.  Both streams are
// copied concurrently, so a writer passed as both must be safe for
// concurrent use.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Plugin) *Plugin {
		p.stdout = stdout
		p.stderr = stderr
		return p
	}
}

// WithToolArchiver builds jars with the JDK jar tool instead of in-process.
func WithToolArchiver() Option {
	return func(p *Plugin) *Plugin {
		p.toolArchiver = true
		return p
	}
}

// Plugin runs the build operations of one project.  Operations are
// synchronous and must not be called concurrently.
type Plugin struct {
	project    *project.Project
	toolchains Toolchains
	logger     zerolog.Logger

	launcher     procutil.Launcher
	progress     mobyprogress.Output
	stdout       io.Writer
	stderr       io.Writer
	toolArchiver bool

	assembler    *classpath.Assembler
	orchestrator *compile.Orchestrator
}

// New constructs a Plugin.  The resolver is only consulted when the project
// declares dependencies.
func New(logger zerolog.Logger, proj *project.Project, resolver dependency.Resolver, toolchains Toolchains, options ...Option) *Plugin {
	p := &Plugin{
		project:    proj,
		toolchains: toolchains,
		logger:     logger,
		launcher:   procutil.ExecLauncher{},
		progress:   discardOutput{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, opt := range options {
		p = opt(p)
	}
	p.assembler = classpath.NewAssembler(logger, resolver, proj.Artifact(), proj.Dependencies)
	p.orchestrator = compile.NewOrchestrator(p.launcher, logger, compile.WithOutput(p.stdout, p.stderr))
	return p
}

// Project returns the project being built.
func (p *Plugin) Project() *project.Project {
	return p.project
}

// Clean deletes the build directory.  A symlinked build directory is removed
// as a link.  Cleaning an absent directory is a no-op.
func (p *Plugin) Clean() error {
	dir := p.project.Path(p.project.Settings.BuildDir)
	p.logger.Info().Msgf("Deleting [%s]", dir)
	return os.RemoveAll(dir)
}

// Build compiles main and test sources and writes the jars.
func (p *Plugin) Build() error {
	if _, err := p.CompileMain(); err != nil {
		return err
	}
	if _, err := p.CompileTest(); err != nil {
		return err
	}
	_, err := p.Jar()
	return err
}
