package dependency

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"
)

// ErrArtifactNotFound is returned when a resolved artifact has no jar in the
// local repository.
var ErrArtifactNotFound = errors.New("artifact not found")

// TransitiveGroup is the group assigned to edges read from the lock file.
const TransitiveGroup = "compile"

// lockFile mirrors the dependency_tree section of a maven_install.json file.
type lockFile struct {
	DependencyTree struct {
		Dependencies []*lockEntry `json:"dependencies"`
	} `json:"dependency_tree"`
}

type lockEntry struct {
	Coord              string   `json:"coord"`
	DirectDependencies []string `json:"directDependencies,omitempty"`
	// File is relative to the repository root.  When empty the maven layout
	// is assumed.
	File    string `json:"file,omitempty"`
	Sources string `json:"sources,omitempty"`
}

// LockFileResolver resolves artifacts from a pinned lock file and a local
// maven-layout repository directory.  Artifacts missing from the lock file
// are still resolvable; they simply have no transitive dependencies.
type LockFileResolver struct {
	repository string
	entries    map[string]*lockEntry
	logger     zerolog.Logger
}

// NewLockFileResolver reads lockFilename (optional) and resolves jars under
// repository.
func NewLockFileResolver(logger zerolog.Logger, lockFilename, repository string) (*LockFileResolver, error) {
	r := &LockFileResolver{
		repository: repository,
		entries:    make(map[string]*lockEntry),
		logger:     logger,
	}
	if lockFilename == "" {
		return r, nil
	}

	data, err := os.ReadFile(lockFilename)
	if err != nil {
		return nil, fmt.Errorf("reading lock file %s: %w", lockFilename, err)
	}
	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing lock file %s: %w", lockFilename, err)
	}
	for _, entry := range lock.DependencyTree.Dependencies {
		a, err := ParseArtifact(entry.Coord)
		if err != nil {
			return nil, fmt.Errorf("lock file %s: %w", lockFilename, err)
		}
		for _, dep := range entry.DirectDependencies {
			if _, err := ParseArtifact(dep); err != nil {
				return nil, fmt.Errorf("lock file %s: %s: %w", lockFilename, entry.Coord, err)
			}
		}
		r.entries[a.String()] = entry
	}
	logger.Debug().Int("artifacts", len(r.entries)).Str("file", lockFilename).Msg("loaded lock file")

	return r, nil
}

// BuildGraph implements Resolver.
func (r *LockFileResolver) BuildGraph(root Artifact, deps Dependencies) (*DependencyGraph, error) {
	g := newDependencyGraph(root)
	expanded := make(map[string]bool)

	var expand func(a Artifact)
	expand = func(a Artifact) {
		key := a.String()
		if expanded[key] {
			return
		}
		expanded[key] = true
		entry, ok := r.entries[key]
		if !ok {
			return
		}
		for _, coord := range entry.DirectDependencies {
			dep := MustParseArtifact(coord)
			g.addEdge(a, dep, TransitiveGroup)
			expand(dep)
		}
	}

	for _, group := range deps {
		for _, a := range group.Artifacts {
			g.addEdge(root, a, group.Name)
			expand(a)
		}
	}

	return g, nil
}

// Reduce implements Resolver.  When several versions of an artifact are
// reachable the highest one wins; edges of the losing versions are dropped.
func (r *LockFileResolver) Reduce(graph *DependencyGraph) (*ArtifactGraph, error) {
	selected := make(map[string]Artifact)
	for _, a := range graph.Versions() {
		current, ok := selected[a.ID()]
		if !ok || compareVersions(a.Version, current.Version) > 0 {
			if ok {
				r.logger.Debug().Msgf("version conflict for %s: %s wins over %s", a.ID(), a.Version, current.Version)
			}
			selected[a.ID()] = a
		}
	}

	reduced := &ArtifactGraph{
		Root:      graph.Root,
		Edges:     make(map[string][]Edge),
		Artifacts: selected,
	}

	for key, edges := range graph.Edges {
		from, ok := graph.node(key)
		if !ok {
			return nil, fmt.Errorf("dependency graph of %s has no node for %q", graph.Root, key)
		}
		if from != graph.Root && selected[from.ID()] != from {
			continue
		}
		for _, e := range edges {
			to := selected[e.To.ID()]
			if !containsEdge(reduced.Edges[from.ID()], to.ID(), e.Group) {
				reduced.Edges[from.ID()] = append(reduced.Edges[from.ID()], Edge{To: to, Group: e.Group})
			}
		}
	}

	return reduced, nil
}

// Resolve implements Resolver.  Artifacts are returned in rule order, then
// declaration order, with transitive dependencies following the artifact
// that pulled them in.  Each artifact appears once.
func (r *LockFileResolver) Resolve(graph *ArtifactGraph, rules ...ResolutionRule) (*ResolvedArtifactGraph, error) {
	result := &ResolvedArtifactGraph{}
	included := make(map[string]bool)
	expanded := make(map[string]bool)

	add := func(a Artifact, fetchSource bool) error {
		if included[a.ID()] {
			return nil
		}
		resolved, err := r.locate(a, fetchSource)
		if err != nil {
			return err
		}
		included[a.ID()] = true
		result.Artifacts = append(result.Artifacts, resolved)
		return nil
	}

	var walk func(id string, fetchSource bool) error
	walk = func(id string, fetchSource bool) error {
		if expanded[id] {
			return nil
		}
		expanded[id] = true
		for _, e := range graph.Edges[id] {
			if err := add(e.To, fetchSource); err != nil {
				return err
			}
			if err := walk(e.To.ID(), fetchSource); err != nil {
				return err
			}
		}
		return nil
	}

	for _, rule := range rules {
		for _, e := range graph.Edges[graph.Root.ID()] {
			if e.Group != rule.Group {
				continue
			}
			if err := add(e.To, rule.FetchSource); err != nil {
				return nil, err
			}
			if rule.Transitive {
				if err := walk(e.To.ID(), rule.FetchSource); err != nil {
					return nil, err
				}
			}
		}
	}

	return result, nil
}

func (r *LockFileResolver) locate(a Artifact, fetchSource bool) (*ResolvedArtifact, error) {
	file := a.RepositoryPath("")
	sources := a.RepositoryPath("sources")
	if entry, ok := r.entries[a.String()]; ok {
		if entry.File != "" {
			file = entry.File
		}
		if entry.Sources != "" {
			sources = entry.Sources
		}
	}

	resolved := &ResolvedArtifact{
		Artifact: a,
		File:     filepath.Join(r.repository, filepath.FromSlash(file)),
	}
	if _, err := os.Stat(resolved.File); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w (looked for %s)", a, ErrArtifactNotFound, resolved.File)
	} else if err != nil {
		return nil, err
	}

	if fetchSource {
		sourceFile := filepath.Join(r.repository, filepath.FromSlash(sources))
		if _, err := os.Stat(sourceFile); err == nil {
			resolved.SourceFile = sourceFile
		} else {
			r.logger.Debug().Msgf("no sources jar for %s", a)
		}
	}

	return resolved, nil
}

func containsEdge(edges []Edge, id, group string) bool {
	for _, e := range edges {
		if e.To.ID() == id && e.Group == group {
			return true
		}
	}
	return false
}

// compareVersions orders versions semantically when both parse as semver
// (maven "1.2" and "1.2.3" forms do), lexically otherwise.
func compareVersions(a, b string) int {
	va, vb := "v"+strings.TrimPrefix(a, "v"), "v"+strings.TrimPrefix(b, "v")
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	return strings.Compare(a, b)
}
