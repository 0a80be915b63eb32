package dependency

import (
	"fmt"
	"path"
	"strings"
)

// Artifact identifies a versioned jar, e.g. "org.codehaus.groovy:groovy-all:2.4.6".
type Artifact struct {
	Group   string
	Name    string
	Version string
}

// ParseArtifact parses a "group:name:version" coordinate.
func ParseArtifact(coord string) (Artifact, error) {
	parts := strings.Split(coord, ":")
	if len(parts) != 3 {
		return Artifact{}, fmt.Errorf("invalid artifact coordinate %q (want group:name:version)", coord)
	}
	for _, part := range parts {
		if part == "" {
			return Artifact{}, fmt.Errorf("invalid artifact coordinate %q: empty segment", coord)
		}
	}
	return Artifact{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
}

// MustParseArtifact is like ParseArtifact but panics on error.
func MustParseArtifact(coord string) Artifact {
	a, err := ParseArtifact(coord)
	if err != nil {
		panic(err)
	}
	return a
}

// ID is the version-less identity of the artifact.
func (a Artifact) ID() string {
	return a.Group + ":" + a.Name
}

func (a Artifact) String() string {
	return a.Group + ":" + a.Name + ":" + a.Version
}

// RepositoryPath returns the maven repository layout path of the artifact's
// jar, relative to the repository root.  A non-empty classifier selects e.g.
// the "sources" jar.
func (a Artifact) RepositoryPath(classifier string) string {
	filename := a.Name + "-" + a.Version
	if classifier != "" {
		filename += "-" + classifier
	}
	return path.Join(strings.ReplaceAll(a.Group, ".", "/"), a.Name, a.Version, filename+".jar")
}

// Group is a named set of declared dependencies, e.g. "compile" or
// "test-compile".
type Group struct {
	Name      string
	Artifacts []Artifact
}

// Dependencies holds the dependency groups declared by a project, in
// declaration order.
type Dependencies []*Group

// Empty reports whether no artifact is declared in any group.
func (d Dependencies) Empty() bool {
	for _, g := range d {
		if len(g.Artifacts) > 0 {
			return false
		}
	}
	return true
}

// Add appends the artifact to the named group, creating the group if needed.
func (d *Dependencies) Add(group string, artifact Artifact) {
	for _, g := range *d {
		if g.Name == group {
			g.Artifacts = append(g.Artifacts, artifact)
			return
		}
	}
	*d = append(*d, &Group{Name: group, Artifacts: []Artifact{artifact}})
}

// ResolutionRule selects a dependency group for resolution.
type ResolutionRule struct {
	// Group names the dependency group.
	Group string
	// Transitive includes the dependencies of the group's artifacts.
	Transitive bool
	// FetchSource also locates the sources jar of each artifact.
	FetchSource bool
}
