package plugin

import (
	"fmt"

	"github.com/stackb/groovy-build/pkg/compile"
	"github.com/stackb/groovy-build/pkg/staleness"
)

// Document renders API documentation of the main sources into the doc
// directory with groovydoc or javadoc.  Every source is documented, not only
// the stale ones.
func (p *Plugin) Document() (*compile.Outcome, error) {
	s := &p.project.Settings
	src := p.project.Path(s.MainSource)

	scanner := staleness.NewScanner(p.logger, s.SourceExt(), "", s.Excludes...)
	files, err := scanner.Collect(src)
	if err != nil {
		return nil, fmt.Errorf("doc: %w", err)
	}

	opts := compile.RequestOptions{
		SourceRoot: src,
		OutputRoot: p.project.Path(s.DocDir),
		Files:      files,
	}
	if len(files) > 0 {
		cp, err := p.assembler.BuildClasspath(s.MainDependencies)
		if err != nil {
			return nil, fmt.Errorf("doc: %w", err)
		}
		kind, version, name := s.Documenter()
		exe, env, err := p.tool(kind, version, name)
		if err != nil {
			return nil, fmt.Errorf("doc: %w", err)
		}
		opts.ClassPath = cp
		opts.Executable = exe
		opts.Env = env
	}

	outcome, err := p.orchestrator.Compile(compile.NewRequest(opts))
	if err != nil {
		return outcome, fmt.Errorf("doc: %w", err)
	}
	writeStepProgress(p.progress, "doc", outcome.State.String())
	return outcome, nil
}
