package compile

import (
	"github.com/stackb/groovy-build/pkg/classpath"
	"github.com/stackb/groovy-build/pkg/procutil"
)

// RequestOptions holds the inputs of NewRequest.
type RequestOptions struct {
	// SourceRoot is passed to the compiler as the source path.
	SourceRoot string
	// OutputRoot receives the class files.
	OutputRoot string
	// Files are the sources to compile, relative to SourceRoot.
	Files []string
	// ClassPath may be nil.
	ClassPath *classpath.ClassPath
	// ExtraArgs are placed before the classpath flag.
	ExtraArgs []string
	// Executable is the resolved compiler binary.
	Executable string
	// Env overrides the inherited environment, e.g. JAVA_HOME.
	Env map[procutil.EnvVar]string
}

// Request is an immutable description of one compiler invocation.
type Request struct {
	sourceRoot string
	outputRoot string
	files      []string
	classPath  string
	cpArgs     []string
	extraArgs  []string
	executable string
	env        map[procutil.EnvVar]string
}

// NewRequest copies opts into a Request.
func NewRequest(opts RequestOptions) *Request {
	env := make(map[procutil.EnvVar]string, len(opts.Env))
	for k, v := range opts.Env {
		env[k] = v
	}
	return &Request{
		sourceRoot: opts.SourceRoot,
		outputRoot: opts.OutputRoot,
		files:      append([]string(nil), opts.Files...),
		classPath:  opts.ClassPath.String(),
		cpArgs:     opts.ClassPath.Args(),
		extraArgs:  append([]string(nil), opts.ExtraArgs...),
		executable: opts.Executable,
		env:        env,
	}
}

func (r *Request) SourceRoot() string { return r.sourceRoot }
func (r *Request) OutputRoot() string { return r.outputRoot }
func (r *Request) ClassPath() string  { return r.classPath }
func (r *Request) Executable() string { return r.executable }

// Files returns a copy of the files to compile.
func (r *Request) Files() []string {
	return append([]string(nil), r.files...)
}

// Env returns a copy of the environment overrides.
func (r *Request) Env() map[procutil.EnvVar]string {
	env := make(map[procutil.EnvVar]string, len(r.env))
	for k, v := range r.env {
		env[k] = v
	}
	return env
}
