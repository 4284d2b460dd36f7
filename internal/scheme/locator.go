package scheme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension of scheme definition files.
const Extension = ".xcscheme"

// SharedDir is where a project keeps schemes checked into version control.
var SharedDir = filepath.Join("xcshareddata", "xcschemes")

// SharedPath returns where the shared scheme name of projectPath lives.
func SharedPath(projectPath, name string) string {
	return filepath.Join(projectPath, SharedDir, name+Extension)
}

// Locate reports the shared scheme file for name if it exists.
func Locate(projectPath, name string) (string, bool) {
	path := SharedPath(projectPath, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// List returns the names of the shared schemes of projectPath, sorted.
// A project without a shared schemes directory has none.
func List(projectPath string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(projectPath, SharedDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}
