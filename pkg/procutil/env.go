package procutil

import (
	"os"
	"sort"
	"strings"
)

type EnvVar string

const (
	// JavaHome is the environment variable both groovyc and javac use to
	// locate the JVM.
	JavaHome EnvVar = "JAVA_HOME"
	// GroovyHome is read by the groovy launcher scripts.
	GroovyHome EnvVar = "GROOVY_HOME"
	// NoColor disables colored console output when set to any non-empty
	// value.
	NoColor EnvVar = "NO_COLOR"
)

func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}

// MergeEnv returns base with the given overrides applied.  Entries of base
// that are overridden are dropped; overrides are appended in key order so the
// result is stable.
func MergeEnv(base []string, overrides map[EnvVar]string) []string {
	if len(overrides) == 0 {
		return base
	}
	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[EnvVar(name)]; ok {
			continue
		}
		env = append(env, kv)
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+overrides[EnvVar(k)])
	}
	return env
}
