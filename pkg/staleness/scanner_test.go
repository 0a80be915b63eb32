package staleness

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"

	"github.com/stackb/groovy-build/pkg/testutil"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestScan(t *testing.T) {
	for name, tc := range map[string]struct {
		files    []testtools.FileSpec
		mtimes   map[string]time.Duration
		excludes []string
		want     []string
	}{
		"missing output": {
			files: []testtools.FileSpec{
				{Path: "src/MyClass.groovy", Content: "class MyClass {}"},
			},
			want: []string{"MyClass.groovy"},
		},
		"older output": {
			files: []testtools.FileSpec{
				{Path: "src/A.groovy"},
				{Path: "out/A.class"},
			},
			mtimes: map[string]time.Duration{
				"src/A.groovy": 10 * time.Second,
				"out/A.class":  0,
			},
			want: []string{"A.groovy"},
		},
		"newer output": {
			files: []testtools.FileSpec{
				{Path: "src/A.groovy"},
				{Path: "out/A.class"},
			},
			mtimes: map[string]time.Duration{
				"src/A.groovy": 0,
				"out/A.class":  time.Second,
			},
		},
		"equal timestamps": {
			files: []testtools.FileSpec{
				{Path: "src/A.groovy"},
				{Path: "out/A.class"},
			},
			mtimes: map[string]time.Duration{
				"src/A.groovy": time.Second,
				"out/A.class":  time.Second,
			},
		},
		"nested packages": {
			files: []testtools.FileSpec{
				{Path: "src/org/example/A.groovy"},
				{Path: "src/org/example/B.groovy"},
				{Path: "out/org/example/A.class"},
				{Path: "out/org/example/B.class"},
			},
			mtimes: map[string]time.Duration{
				"src/org/example/A.groovy": time.Minute,
				"out/org/example/A.class":  0,
				"src/org/example/B.groovy": 0,
				"out/org/example/B.class":  time.Minute,
			},
			want: []string{"org/example/A.groovy"},
		},
		"other extensions ignored": {
			files: []testtools.FileSpec{
				{Path: "src/README.md"},
				{Path: "src/B.java"},
				{Path: "src/C.groovy"},
			},
			want: []string{"C.groovy"},
		},
		"output in wrong place": {
			files: []testtools.FileSpec{
				{Path: "src/org/A.groovy"},
				{Path: "out/A.class"},
			},
			want: []string{"org/A.groovy"},
		},
		"excludes": {
			files: []testtools.FileSpec{
				{Path: "src/org/internal/Hidden.groovy"},
				{Path: "src/org/Visible.groovy"},
			},
			excludes: []string{"**/internal/**"},
			want:     []string{"org/Visible.groovy"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, tc.files)
			defer cleanup()

			for rel, offset := range tc.mtimes {
				testutil.SetModTime(t, filepath.Join(tmpDir, rel), epoch.Add(offset))
			}

			scanner := NewScanner(testutil.NewTestLogger(t), ".groovy", ".class", tc.excludes...)
			got, err := scanner.Scan(filepath.Join(tmpDir, "src"), filepath.Join(tmpDir, "out"))
			if err != nil {
				t.Fatal(err)
			}

			want := make([]string, len(tc.want))
			for i, rel := range tc.want {
				want[i] = filepath.FromSlash(rel)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
				t.Errorf("stale files (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanMissingSourceDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	var buf bytes.Buffer
	scanner := NewScanner(zerolog.New(&buf), ".groovy", ".class")

	got, err := scanner.Scan(filepath.Join(tmpDir, "does-not-exist"), filepath.Join(tmpDir, "out"))
	if err != nil {
		t.Fatalf("missing source directory should not fail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want no files, got %v", got)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("want a warning event, got %q", buf.String())
	}
}

func TestScanEmptySourceDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "src"), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	got, err := ComputeStaleFiles(filepath.Join(tmpDir, "src"), filepath.Join(tmpDir, "out"), ".groovy", ".class")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("want no files, got %v", got)
	}
}

func TestScanSourceRootIsFile(t *testing.T) {
	tmpDir, filenames, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "src"},
	})
	defer cleanup()

	_, err := ComputeStaleFiles(filenames[0], filepath.Join(tmpDir, "out"), ".groovy", ".class")
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("want ErrNotDirectory, got %v", err)
	}
}

func TestScanInvalidExclude(t *testing.T) {
	scanner := NewScanner(zerolog.Nop(), ".groovy", ".class", "[")
	if _, err := scanner.Scan(t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("want error for invalid exclude pattern")
	}
}

func TestCollect(t *testing.T) {
	tmpDir, _, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "src/A.groovy"},
		{Path: "src/b/B.groovy"},
		{Path: "src/b/notes.txt"},
		{Path: "out/A.class"},
	})
	defer cleanup()

	got, err := NewScanner(zerolog.Nop(), ".groovy", ".class").Collect(filepath.Join(tmpDir, "src"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A.groovy", filepath.Join("b", "B.groovy")}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("collect (-want +got):\n%s", diff)
	}
}

func TestOutputPath(t *testing.T) {
	for name, tc := range map[string]struct {
		sourceExt, outputExt string
		rel                  string
		want                 string
	}{
		"class file": {
			sourceExt: ".groovy",
			outputExt: ".class",
			rel:       filepath.Join("org", "A.groovy"),
			want:      filepath.Join("out", "org", "A.class"),
		},
		"identity mapping": {
			rel:  filepath.Join("conf", "app.properties"),
			want: filepath.Join("out", "conf", "app.properties"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewScanner(zerolog.Nop(), tc.sourceExt, tc.outputExt)
			if got := s.OutputPath("out", tc.rel); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

// TestScanRandomTimestamps generates trees with random timestamp orderings
// and checks that exactly the sources with a missing or strictly older output
// are reported.
func TestScanRandomTimestamps(t *testing.T) {
	exts := [][2]string{{".groovy", ".class"}, {".java", ".class"}, {".txt", ".txt"}}
	rnd := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 25; iteration++ {
		t.Run(fmt.Sprintf("iteration %d", iteration), func(t *testing.T) {
			tmpDir := t.TempDir()
			src := filepath.Join(tmpDir, "src")
			out := filepath.Join(tmpDir, "out")
			ext := exts[rnd.Intn(len(exts))]

			want := make(map[string]bool)
			n := rnd.Intn(20)
			for i := 0; i < n; i++ {
				rel := filepath.Join(fmt.Sprintf("p%d", rnd.Intn(3)), fmt.Sprintf("F%d%s", i, ext[0]))
				srcTime := epoch.Add(time.Duration(rnd.Intn(100)) * time.Second)
				mustTouch(t, filepath.Join(src, rel), srcTime)

				outRel := strings.TrimSuffix(rel, ext[0]) + ext[1]
				switch rnd.Intn(4) {
				case 0: // missing
					want[rel] = true
				case 1: // older
					mustTouch(t, filepath.Join(out, outRel), srcTime.Add(-time.Duration(1+rnd.Intn(50))*time.Second))
					want[rel] = true
				case 2: // equal
					mustTouch(t, filepath.Join(out, outRel), srcTime)
				case 3: // newer
					mustTouch(t, filepath.Join(out, outRel), srcTime.Add(time.Duration(1+rnd.Intn(50))*time.Second))
				}
			}

			files, err := ComputeStaleFiles(src, out, ext[0], ext[1])
			if err != nil {
				t.Fatal(err)
			}
			got := make(map[string]bool)
			for _, f := range files {
				if got[f] {
					t.Errorf("%s reported twice", f)
				}
				got[f] = true
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("stale set (-want +got):\n%s", diff)
			}
		})
	}
}

func mustTouch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	testutil.SetModTime(t, path, mtime)
}
