package dependency

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"

	"github.com/stackb/groovy-build/pkg/testutil"
)

const testLockFile = `{
  "dependency_tree": {
    "dependencies": [
      {
        "coord": "org.example:a:1.0",
        "directDependencies": ["org.example:b:1.0"]
      },
      {
        "coord": "org.example:b:1.0",
        "directDependencies": ["org.example:c:1.0"]
      },
      {
        "coord": "org.example:d:2.0",
        "directDependencies": ["org.example:b:2.0"]
      },
      {
        "coord": "org.example:e:1.0",
        "file": "custom/e.jar"
      }
    ]
  }
}`

var (
	root = MustParseArtifact("org.example:app:0.1.0")
	a    = MustParseArtifact("org.example:a:1.0")
	b2   = MustParseArtifact("org.example:b:2.0")
	d    = MustParseArtifact("org.example:d:2.0")
	e    = MustParseArtifact("org.example:e:1.0")
)

func prepareRepository(t *testing.T) (dir string, cleanup func()) {
	dir, _, cleanup = testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "maven_install.json", Content: testLockFile},
		{Path: "repo/org/example/a/1.0/a-1.0.jar"},
		{Path: "repo/org/example/a/1.0/a-1.0-sources.jar"},
		{Path: "repo/org/example/b/1.0/b-1.0.jar"},
		{Path: "repo/org/example/b/2.0/b-2.0.jar"},
		{Path: "repo/org/example/c/1.0/c-1.0.jar"},
		{Path: "repo/org/example/d/2.0/d-2.0.jar"},
		{Path: "repo/custom/e.jar"},
	})
	return dir, cleanup
}

func TestLockFileResolver(t *testing.T) {
	dir, cleanup := prepareRepository(t)
	defer cleanup()
	repo := filepath.Join(dir, "repo")

	jar := func(rel string) string {
		return filepath.Join(repo, filepath.FromSlash(rel))
	}

	deps := Dependencies{}
	deps.Add("compile", a)
	deps.Add("compile", e)
	deps.Add("test-compile", d)

	for name, tc := range map[string]struct {
		rules []ResolutionRule
		want  []string
	}{
		"no rules": {},
		"direct only": {
			rules: []ResolutionRule{{Group: "compile"}},
			want:  []string{jar("org/example/a/1.0/a-1.0.jar"), jar("custom/e.jar")},
		},
		"transitive picks the reduced version": {
			rules: []ResolutionRule{{Group: "compile", Transitive: true}},
			want: []string{
				jar("org/example/a/1.0/a-1.0.jar"),
				jar("org/example/b/2.0/b-2.0.jar"),
				jar("custom/e.jar"),
			},
		},
		"rule order then declaration order": {
			rules: []ResolutionRule{{Group: "test-compile"}, {Group: "compile", Transitive: true}},
			want: []string{
				jar("org/example/d/2.0/d-2.0.jar"),
				jar("org/example/a/1.0/a-1.0.jar"),
				jar("org/example/b/2.0/b-2.0.jar"),
				jar("custom/e.jar"),
			},
		},
		"unknown group": {
			rules: []ResolutionRule{{Group: "provided", Transitive: true}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := NewLockFileResolver(testutil.NewTestLogger(t), filepath.Join(dir, "maven_install.json"), repo)
			if err != nil {
				t.Fatal(err)
			}
			graph, err := r.BuildGraph(root, deps)
			if err != nil {
				t.Fatal(err)
			}
			reduced, err := r.Reduce(graph)
			if err != nil {
				t.Fatal(err)
			}
			resolved, err := r.Resolve(reduced, tc.rules...)
			if err != nil {
				t.Fatal(err)
			}
			if resolved.Size() != len(tc.want) {
				t.Errorf("size: want %d, got %d", len(tc.want), resolved.Size())
			}
			if diff := cmp.Diff(tc.want, resolved.ToClasspath()); diff != "" {
				t.Errorf("classpath (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLockFileResolverReduce(t *testing.T) {
	dir, cleanup := prepareRepository(t)
	defer cleanup()

	r, err := NewLockFileResolver(testutil.NewTestLogger(t), filepath.Join(dir, "maven_install.json"), filepath.Join(dir, "repo"))
	if err != nil {
		t.Fatal(err)
	}
	deps := Dependencies{}
	deps.Add("compile", a)
	deps.Add("compile", d)

	graph, err := r.BuildGraph(root, deps)
	if err != nil {
		t.Fatal(err)
	}
	reduced, err := r.Reduce(graph)
	if err != nil {
		t.Fatal(err)
	}

	if got := reduced.Artifacts["org.example:b"]; got != b2 {
		t.Errorf("want %v to win, got %v", b2, got)
	}
	wantEdges := []Edge{{To: b2, Group: TransitiveGroup}}
	if diff := cmp.Diff(wantEdges, reduced.Edges["org.example:a"]); diff != "" {
		t.Errorf("edges of a (-want +got):\n%s", diff)
	}
	if edges := reduced.Edges["org.example:b"]; len(edges) != 0 {
		t.Errorf("edges of the losing b version should be dropped, got %v", edges)
	}
}

func TestLockFileResolverRootWithoutGroup(t *testing.T) {
	dir, cleanup := prepareRepository(t)
	defer cleanup()
	repo := filepath.Join(dir, "repo")

	for name, tc := range map[string]struct {
		root Artifact
	}{
		"full coordinate": {root: root},
		"no group":        {root: Artifact{Name: "app", Version: "1.0"}},
		"no version":      {root: Artifact{Group: "org.example", Name: "app"}},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := NewLockFileResolver(testutil.NewTestLogger(t), filepath.Join(dir, "maven_install.json"), repo)
			if err != nil {
				t.Fatal(err)
			}
			deps := Dependencies{}
			deps.Add("compile", a)

			graph, err := r.BuildGraph(tc.root, deps)
			if err != nil {
				t.Fatal(err)
			}
			reduced, err := r.Reduce(graph)
			if err != nil {
				t.Fatal(err)
			}
			resolved, err := r.Resolve(reduced, ResolutionRule{Group: "compile", Transitive: true})
			if err != nil {
				t.Fatal(err)
			}

			want := []string{
				filepath.Join(repo, "org/example/a/1.0/a-1.0.jar"),
				filepath.Join(repo, "org/example/b/1.0/b-1.0.jar"),
				filepath.Join(repo, "org/example/c/1.0/c-1.0.jar"),
			}
			if diff := cmp.Diff(want, resolved.ToClasspath()); diff != "" {
				t.Errorf("classpath (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLockFileResolverFetchSource(t *testing.T) {
	dir, cleanup := prepareRepository(t)
	defer cleanup()
	repo := filepath.Join(dir, "repo")

	r, err := NewLockFileResolver(testutil.NewTestLogger(t), "", repo)
	if err != nil {
		t.Fatal(err)
	}
	deps := Dependencies{}
	deps.Add("compile", a)
	deps.Add("compile", d)

	graph, _ := r.BuildGraph(root, deps)
	reduced, _ := r.Reduce(graph)
	resolved, err := r.Resolve(reduced, ResolutionRule{Group: "compile", FetchSource: true})
	if err != nil {
		t.Fatal(err)
	}

	want := []*ResolvedArtifact{
		{
			Artifact:   a,
			File:       filepath.Join(repo, "org/example/a/1.0/a-1.0.jar"),
			SourceFile: filepath.Join(repo, "org/example/a/1.0/a-1.0-sources.jar"),
		},
		{
			Artifact: d,
			File:     filepath.Join(repo, "org/example/d/2.0/d-2.0.jar"),
		},
	}
	if diff := cmp.Diff(want, resolved.Artifacts); diff != "" {
		t.Errorf("resolved (-want +got):\n%s", diff)
	}
}

func TestLockFileResolverMissingJar(t *testing.T) {
	r, err := NewLockFileResolver(testutil.NewTestLogger(t), "", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	deps := Dependencies{}
	deps.Add("compile", a)

	graph, _ := r.BuildGraph(root, deps)
	reduced, _ := r.Reduce(graph)
	_, err = r.Resolve(reduced, ResolutionRule{Group: "compile"})
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("want ErrArtifactNotFound, got %v", err)
	}
}

func TestNewLockFileResolverErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		content string
	}{
		"bad json":       {content: "{"},
		"bad coordinate": {content: `{"dependency_tree":{"dependencies":[{"coord":"a:b"}]}}`},
		"bad dependency": {content: `{"dependency_tree":{"dependencies":[{"coord":"a:b:1","directDependencies":["x"]}]}}`},
	} {
		t.Run(name, func(t *testing.T) {
			dir, files, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
				{Path: "lock.json", Content: tc.content},
			})
			defer cleanup()
			if _, err := NewLockFileResolver(testutil.NewTestLogger(t), files[0], dir); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestParseArtifact(t *testing.T) {
	for name, tc := range map[string]struct {
		coord   string
		want    Artifact
		wantErr bool
	}{
		"valid":         {coord: "org.codehaus.groovy:groovy-all:2.4.6", want: Artifact{Group: "org.codehaus.groovy", Name: "groovy-all", Version: "2.4.6"}},
		"missing parts": {coord: "groovy-all:2.4.6", wantErr: true},
		"empty segment": {coord: "org::1.0", wantErr: true},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseArtifact(tc.coord)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("want %+v, got %+v", tc.want, got)
			}
			if got.String() != tc.coord {
				t.Errorf("String: want %q, got %q", tc.coord, got.String())
			}
		})
	}
}

func TestRepositoryPath(t *testing.T) {
	a := MustParseArtifact("org.codehaus.groovy:groovy-all:2.4.6")
	if got, want := a.RepositoryPath(""), "org/codehaus/groovy/groovy-all/2.4.6/groovy-all-2.4.6.jar"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got, want := a.RepositoryPath("sources"), "org/codehaus/groovy/groovy-all/2.4.6/groovy-all-2.4.6-sources.jar"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestCompareVersions(t *testing.T) {
	for name, tc := range map[string]struct {
		a, b string
		want int
	}{
		"patch":          {a: "1.0.1", b: "1.0.0", want: 1},
		"numeric minor":  {a: "1.9", b: "1.10", want: -1},
		"equal":          {a: "2.4", b: "2.4.0", want: 0},
		"lexical":        {a: "1.0.0.1", b: "1.0.0.2", want: -1},
		"prerelease low": {a: "1.0.0-rc1", b: "1.0.0", want: -1},
	} {
		t.Run(name, func(t *testing.T) {
			if got := compareVersions(tc.a, tc.b); got != tc.want {
				t.Errorf("compareVersions(%q, %q): want %d, got %d", tc.a, tc.b, tc.want, got)
			}
		})
	}
}

func TestDependenciesEmpty(t *testing.T) {
	var deps Dependencies
	if !deps.Empty() {
		t.Error("nil dependencies should be empty")
	}
	deps = Dependencies{{Name: "compile"}}
	if !deps.Empty() {
		t.Error("groups without artifacts should be empty")
	}
	deps.Add("compile", a)
	if deps.Empty() {
		t.Error("want non-empty")
	}
	if len(deps) != 1 {
		t.Errorf("Add should reuse the existing group, got %d groups", len(deps))
	}
}
