package discovery

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// libDirName is the library subdirectory of a Gradle distribution.
const libDirName = "lib"

// matchJars returns the absolute paths of regular files in libDir whose names
// match the rule, sorted by name for a stable classpath order.
func matchJars(libDir string, rule *regexp.Regexp) ([]string, error) {
	if rule == nil {
		return nil, nil
	}

	entries, err := os.ReadDir(libDir)
	if err != nil {
		return nil, err
	}

	var jars []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if rule.MatchString(entry.Name()) {
			jars = append(jars, filepath.Join(libDir, entry.Name()))
		}
	}

	sort.Strings(jars)
	return jars, nil
}
