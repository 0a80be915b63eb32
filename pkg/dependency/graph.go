package dependency

// Edge points from one artifact to a dependency within a group.
type Edge struct {
	To    Artifact
	Group string
}

// DependencyGraph is the unreduced graph: the same artifact may appear in
// several versions.  Nodes are keyed by Artifact.String().
type DependencyGraph struct {
	Root  Artifact
	Edges map[string][]Edge
	// Nodes maps every key of Edges back to its artifact.  Keys are not
	// parsed since the root may lack a group.
	Nodes map[string]Artifact
}

func newDependencyGraph(root Artifact) *DependencyGraph {
	return &DependencyGraph{
		Root:  root,
		Edges: make(map[string][]Edge),
		Nodes: map[string]Artifact{root.String(): root},
	}
}

// node returns the artifact recorded for key.
func (g *DependencyGraph) node(key string) (Artifact, bool) {
	if key == g.Root.String() {
		return g.Root, true
	}
	a, ok := g.Nodes[key]
	return a, ok
}

func (g *DependencyGraph) addEdge(from Artifact, to Artifact, group string) {
	key := from.String()
	g.Nodes[key] = from
	g.Nodes[to.String()] = to
	for _, e := range g.Edges[key] {
		if e.To == to && e.Group == group {
			return
		}
	}
	g.Edges[key] = append(g.Edges[key], Edge{To: to, Group: group})
}

// Versions returns every artifact of the graph other than the root, in
// first-seen order of a depth-first walk.
func (g *DependencyGraph) Versions() []Artifact {
	var all []Artifact
	seen := map[string]bool{g.Root.String(): true}
	var visit func(from string)
	visit = func(from string) {
		for _, e := range g.Edges[from] {
			key := e.To.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, e.To)
			visit(key)
		}
	}
	visit(g.Root.String())
	return all
}

// ArtifactGraph is the reduced graph: exactly one version per artifact ID.
// Nodes are keyed by Artifact.ID().
type ArtifactGraph struct {
	Root      Artifact
	Edges     map[string][]Edge
	Artifacts map[string]Artifact
}

// ResolvedArtifact is an artifact located on disk.
type ResolvedArtifact struct {
	Artifact Artifact
	// File is the jar to put on the classpath.
	File string
	// SourceFile is the sources jar, set only when requested and present.
	SourceFile string
}

// ResolvedArtifactGraph is the ordered result of a resolution.
type ResolvedArtifactGraph struct {
	Artifacts []*ResolvedArtifact
}

// Size is the number of resolved artifacts.
func (r *ResolvedArtifactGraph) Size() int {
	if r == nil {
		return 0
	}
	return len(r.Artifacts)
}

// ToClasspath returns the jar paths in resolution order, or nil when
// nothing was resolved.
func (r *ResolvedArtifactGraph) ToClasspath() []string {
	if r == nil || len(r.Artifacts) == 0 {
		return nil
	}
	paths := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		paths[i] = a.File
	}
	return paths
}

// Resolver builds, reduces and resolves dependency graphs.
type Resolver interface {
	// BuildGraph expands the declared dependencies of root into the full
	// graph of artifacts.
	BuildGraph(root Artifact, deps Dependencies) (*DependencyGraph, error)
	// Reduce picks a single version for every artifact.
	Reduce(graph *DependencyGraph) (*ArtifactGraph, error)
	// Resolve locates the artifacts selected by the rules, in rule order.
	Resolve(graph *ArtifactGraph, rules ...ResolutionRule) (*ResolvedArtifactGraph, error)
}
