package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/stackb/groovy-build/pkg/dependency"
	"github.com/stackb/groovy-build/pkg/starlarkeval"
)

// ErrNoProject is returned when the definition never calls project().
var ErrNoProject = errors.New("project() was not called")

// Load evaluates a project definition.  The file may call:
//
//	project(name, version, group = "")
//	dependency(id, group = "compile")
//	resolution(group, transitive = False, fetch_source = False)
//	settings(**kwargs)
//
// settings() overrides fields of DefaultSettings by their snake_case names.
func Load(logger zerolog.Logger, filename string) (*Project, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l := &loader{
		settings: DefaultSettings(),
	}
	interpreter := starlarkeval.NewInterpreter(logger, starlark.StringDict{
		"project":    starlark.NewBuiltin("project", l.project),
		"dependency": starlark.NewBuiltin("dependency", l.dependency),
		"resolution": starlark.NewBuiltin("resolution", resolution),
		"settings":   starlark.NewBuiltin("settings", l.configure),
	})
	if err := interpreter.Exec(abs, f); err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	if l.proj == nil {
		return nil, fmt.Errorf("loading %s: %w", filename, ErrNoProject)
	}
	if err := l.settings.Validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}

	l.proj.Dir = filepath.Dir(abs)
	l.proj.Dependencies = l.deps
	l.proj.Settings = l.settings
	return l.proj, nil
}

type loader struct {
	proj     *Project
	deps     dependency.Dependencies
	settings Settings
}

func (l *loader) project(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if l.proj != nil {
		return nil, fmt.Errorf("%s: called more than once", fn.Name())
	}
	var name, version, group string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "version", &version, "group?", &group); err != nil {
		return nil, err
	}
	if name == "" || version == "" {
		return nil, fmt.Errorf("%s: name and version are required", fn.Name())
	}
	l.proj = &Project{Name: name, Version: version, Group: group}
	return starlark.None, nil
}

func (l *loader) dependency(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	group := "compile"
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "id", &id, "group?", &group); err != nil {
		return nil, err
	}
	artifact, err := dependency.ParseArtifact(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	l.deps.Add(group, artifact)
	return starlark.None, nil
}

func resolution(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var group string
	var transitive, fetchSource bool
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "group", &group, "transitive?", &transitive, "fetch_source?", &fetchSource); err != nil {
		return nil, err
	}
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"group":        starlark.String(group),
		"transitive":   starlark.Bool(transitive),
		"fetch_source": starlark.Bool(fetchSource),
	}), nil
}

func (l *loader) configure(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%s: unexpected positional arguments", fn.Name())
	}
	for _, kv := range kwargs {
		key := string(kv[0].(starlark.String))
		if err := l.set(key, kv[1]); err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
	}
	return starlark.None, nil
}

func (l *loader) set(key string, value starlark.Value) error {
	s := &l.settings
	if target, ok := map[string]*string{
		"groovy_version": &s.GroovyVersion,
		"java_version":   &s.JavaVersion,
		"compiler_args":  &s.CompilerArgs,
		"main_source":    &s.MainSource,
		"main_resources": &s.MainResources,
		"test_source":    &s.TestSource,
		"test_resources": &s.TestResources,
		"build_dir":      &s.BuildDir,
		"main_build_dir": &s.MainBuildDir,
		"test_build_dir": &s.TestBuildDir,
		"jar_dir":        &s.JarDir,
		"doc_dir":        &s.DocDir,
		"repository_dir": &s.RepositoryDir,
		"lock_file":      &s.LockFile,
	}[key]; ok {
		str, ok := starlark.AsString(value)
		if !ok {
			return fmt.Errorf("%s: want string, got %s", key, value.Type())
		}
		*target = str
		return nil
	}

	switch key {
	case "language":
		str, ok := starlark.AsString(value)
		if !ok {
			return fmt.Errorf("%s: want string, got %s", key, value.Type())
		}
		s.Language = Language(str)
	case "indy":
		b, ok := value.(starlark.Bool)
		if !ok {
			return fmt.Errorf("%s: want bool, got %s", key, value.Type())
		}
		s.Indy = bool(b)
	case "excludes":
		excludes, err := starlarkeval.StringList(key, value)
		if err != nil {
			return err
		}
		s.Excludes = excludes
	case "manifest":
		manifest, err := starlarkeval.StringDict(key, value)
		if err != nil {
			return err
		}
		s.Manifest = manifest
	case "main_dependencies", "test_dependencies":
		rules, err := resolutionRules(key, value)
		if err != nil {
			return err
		}
		if key == "main_dependencies" {
			s.MainDependencies = rules
		} else {
			s.TestDependencies = rules
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func resolutionRules(key string, value starlark.Value) ([]dependency.ResolutionRule, error) {
	list, ok := value.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("%s: want list of resolution(), got %s", key, value.Type())
	}
	rules := make([]dependency.ResolutionRule, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		st, ok := list.Index(i).(*starlarkstruct.Struct)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: want resolution(), got %s", key, i, list.Index(i).Type())
		}
		group, _ := st.Attr("group")
		transitive, _ := st.Attr("transitive")
		fetchSource, _ := st.Attr("fetch_source")
		rules = append(rules, dependency.ResolutionRule{
			Group:       string(group.(starlark.String)),
			Transitive:  bool(transitive.(starlark.Bool)),
			FetchSource: bool(fetchSource.(starlark.Bool)),
		})
	}
	return rules, nil
}
