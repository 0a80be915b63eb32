package classpath

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	JAR_FILE_SUFFIX = ".jar"

	// Flag is the compiler option that introduces the classpath.
	Flag = "-classpath"
)

type ClassPathEntry interface {
	String() string
	// Exists reports whether the entry is present on disk.
	Exists() bool
}

type DirectoryClassPathEntry struct {
	directory string
}

func (this *DirectoryClassPathEntry) String() string {
	return this.directory
}

func (this *DirectoryClassPathEntry) Exists() bool {
	info, err := os.Stat(this.directory)
	return err == nil && info.IsDir()
}

type JarClassPathEntry struct {
	jarFile string
}

func NewJarClassPathEntry(jarFile string) *JarClassPathEntry {
	return &JarClassPathEntry{jarFile}
}

func (this *JarClassPathEntry) String() string {
	return this.jarFile
}

func (this *JarClassPathEntry) Exists() bool {
	info, err := os.Stat(this.jarFile)
	return err == nil && info.Mode().IsRegular()
}

// ClassPath is an ordered list of jars and class directories.
type ClassPath struct {
	classPathEntries []ClassPathEntry
}

// NewClassPath parses a classpath string separated by os.PathListSeparator.
// Empty segments are dropped.
func NewClassPath(classPathStr string) *ClassPath {
	classPath := &ClassPath{}
	classPath.Append(filepath.SplitList(classPathStr)...)
	return classPath
}

// Append adds the given paths, in order, to the end of the classpath.
func (this *ClassPath) Append(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if strings.HasSuffix(path, JAR_FILE_SUFFIX) {
			this.classPathEntries = append(this.classPathEntries, &JarClassPathEntry{path})
		} else {
			this.classPathEntries = append(this.classPathEntries, &DirectoryClassPathEntry{path})
		}
	}
}

// Entries returns the entries in classpath order.
func (this *ClassPath) Entries() []ClassPathEntry {
	return this.classPathEntries
}

// Len is the number of entries.
func (this *ClassPath) Len() int {
	if this == nil {
		return 0
	}
	return len(this.classPathEntries)
}

func (this *ClassPath) String() string {
	if this == nil {
		return ""
	}
	entries := make([]string, len(this.classPathEntries))
	for i, entry := range this.classPathEntries {
		entries[i] = entry.String()
	}
	return strings.Join(entries, string(os.PathListSeparator))
}

// Args renders the classpath as compiler arguments.  An empty classpath
// renders no arguments at all rather than a flag with an empty value.
func (this *ClassPath) Args() []string {
	if this.Len() == 0 {
		return nil
	}
	return []string{Flag, this.String()}
}
