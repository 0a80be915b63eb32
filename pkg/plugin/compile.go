package plugin

import (
	"fmt"
	"strings"

	"github.com/stackb/groovy-build/pkg/compile"
	"github.com/stackb/groovy-build/pkg/dependency"
	"github.com/stackb/groovy-build/pkg/procutil"
	"github.com/stackb/groovy-build/pkg/project"
	"github.com/stackb/groovy-build/pkg/staleness"
	"github.com/stackb/groovy-build/pkg/toolchain"
)

// CompileMain compiles the stale main sources into the main build directory
// and copies the main resources next to them.
func (p *Plugin) CompileMain() (*compile.Outcome, error) {
	s := &p.project.Settings
	return p.compileStep("compileMain", s.MainSource, s.MainResources, s.MainBuildDir, s.MainDependencies)
}

// CompileTest compiles the stale test sources.  The main build directory is
// appended to the classpath.
func (p *Plugin) CompileTest() (*compile.Outcome, error) {
	s := &p.project.Settings
	return p.compileStep("compileTest", s.TestSource, s.TestResources, s.TestBuildDir, s.TestDependencies, p.project.Path(s.MainBuildDir))
}

func (p *Plugin) compileStep(step, sourceDir, resourceDir, buildDir string, rules []dependency.ResolutionRule, extraPaths ...string) (*compile.Outcome, error) {
	s := &p.project.Settings
	src := p.project.Path(sourceDir)
	out := p.project.Path(buildDir)

	scanner := staleness.NewScanner(p.logger, s.SourceExt(), s.OutputExt(), s.Excludes...)
	files, err := scanner.Scan(src, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", step, err)
	}
	writeStepProgress(p.progress, step, fmt.Sprintf("%d stale files", len(files)))

	opts := compile.RequestOptions{
		SourceRoot: src,
		OutputRoot: out,
		Files:      files,
	}
	// the classpath and toolchain are only needed when something is stale
	if len(files) > 0 {
		cp, err := p.assembler.BuildClasspath(rules, extraPaths...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step, err)
		}
		kind, version, name := s.Compiler()
		exe, env, err := p.tool(kind, version, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step, err)
		}
		opts.ClassPath = cp
		opts.Executable = exe
		opts.Env = env
		opts.ExtraArgs = p.compilerArgs()
	}

	outcome, err := p.orchestrator.Compile(compile.NewRequest(opts))
	if err != nil {
		return outcome, fmt.Errorf("%s: %w", step, err)
	}

	if _, err := p.CopyResources(p.project.Path(resourceDir), out); err != nil {
		return outcome, fmt.Errorf("%s: %w", step, err)
	}

	writeStepProgress(p.progress, step, outcome.State.String())
	return outcome, nil
}

func (p *Plugin) compilerArgs() []string {
	s := &p.project.Settings
	var args []string
	if s.Indy && s.Language == project.Groovy {
		args = append(args, "--indy")
	}
	return append(args, strings.Fields(s.CompilerArgs)...)
}

// tool resolves the named executable of a toolchain and the environment it
// runs with.  Groovy tools get GROOVY_HOME and, when a java toolchain is
// configured, JAVA_HOME.
func (p *Plugin) tool(kind toolchain.Kind, version, name string) (string, map[procutil.EnvVar]string, error) {
	inst, err := p.toolchains.lookup(kind, version)
	if err != nil {
		return "", nil, err
	}
	exe, err := inst.Executable(name)
	if err != nil {
		return "", nil, err
	}

	env := make(map[procutil.EnvVar]string)
	switch kind {
	case toolchain.Java:
		env[procutil.JavaHome] = inst.Home
	case toolchain.Groovy:
		env[procutil.GroovyHome] = inst.Home
		if len(p.toolchains.Homes[toolchain.Java]) > 0 {
			java, err := p.toolchains.lookup(toolchain.Java, p.project.Settings.JavaVersion)
			if err != nil {
				return "", nil, err
			}
			env[procutil.JavaHome] = java.Home
		}
	}
	return exe, env, nil
}
