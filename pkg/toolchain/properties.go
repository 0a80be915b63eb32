package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadProperties reads a version-to-home mapping from a java-style properties
// file such as:
//
//	2.4=/opt/groovy-2.4.6
//	2.5=~/tools/groovy-2.5.0
//
// A missing file is a ConfigurationError.
func LoadProperties(kind Kind, filename string) (Homes, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigurationError{
			Kind:           kind,
			PropertiesFile: filename,
			Reason:         fmt.Sprintf("the properties file [%s] does not exist", filename),
		}
	}

	// versions contain dots, so the default "." key delimiter would turn
	// "2.4" into a nested key.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(filename)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s properties %s: %w", kind, filename, err)
	}

	homes := make(Homes)
	for _, version := range v.AllKeys() {
		homes[version] = expandHome(os.ExpandEnv(strings.TrimSpace(v.GetString(version))))
	}
	return homes, nil
}

// find returns the home of version.  Keys loaded from a properties file are
// lowercased, so an exact match is tried first and then a case-insensitive
// one.
func (h Homes) find(version string) (string, bool) {
	if home, ok := h[version]; ok {
		return home, true
	}
	for key, home := range h {
		if strings.EqualFold(key, version) {
			return home, true
		}
	}
	return "", false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
