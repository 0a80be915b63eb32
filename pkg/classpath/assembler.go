package classpath

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackb/groovy-build/pkg/dependency"
)

// Assembler renders classpaths for a single project from its declared
// dependencies.  The dependency graph is built and reduced once per
// Assembler; every BuildClasspath call only re-runs resolution.
type Assembler struct {
	resolver     dependency.Resolver
	root         dependency.Artifact
	dependencies dependency.Dependencies
	logger       zerolog.Logger

	reduced *dependency.ArtifactGraph
}

// NewAssembler constructs an Assembler for the project identified by root.
func NewAssembler(logger zerolog.Logger, resolver dependency.Resolver, root dependency.Artifact, deps dependency.Dependencies) *Assembler {
	return &Assembler{
		resolver:     resolver,
		root:         root,
		dependencies: deps,
		logger:       logger,
	}
}

// BuildClasspath resolves the dependency groups selected by rules and appends
// extraPaths.  Resolved artifacts come first in resolver order, then the
// extra paths in the order given.  A project without dependencies never
// touches the resolver; one with dependencies requires it.
func (a *Assembler) BuildClasspath(rules []dependency.ResolutionRule, extraPaths ...string) (*ClassPath, error) {
	cp := &ClassPath{}

	if !a.dependencies.Empty() && len(rules) > 0 {
		if a.resolver == nil {
			return nil, fmt.Errorf("%s declares dependencies but no dependency resolver is configured", a.root)
		}
		graph, err := a.artifactGraph()
		if err != nil {
			return nil, err
		}
		resolved, err := a.resolver.Resolve(graph, rules...)
		if err != nil {
			return nil, fmt.Errorf("resolving dependencies of %s: %w", a.root, err)
		}
		a.logger.Debug().Int("artifacts", resolved.Size()).Msg("resolved dependencies")
		cp.Append(resolved.ToClasspath()...)
	}

	cp.Append(extraPaths...)

	for _, entry := range cp.Entries() {
		if !entry.Exists() {
			a.logger.Debug().Msgf("classpath entry %s does not exist", entry)
		}
	}

	return cp, nil
}

func (a *Assembler) artifactGraph() (*dependency.ArtifactGraph, error) {
	if a.reduced != nil {
		return a.reduced, nil
	}
	graph, err := a.resolver.BuildGraph(a.root, a.dependencies)
	if err != nil {
		return nil, fmt.Errorf("building dependency graph of %s: %w", a.root, err)
	}
	reduced, err := a.resolver.Reduce(graph)
	if err != nil {
		return nil, fmt.Errorf("reducing dependency graph of %s: %w", a.root, err)
	}
	a.reduced = reduced
	return reduced, nil
}
