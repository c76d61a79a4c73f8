package fsq

import (
	"os"
	"path/filepath"
	"strings"
)

// Watch directory layout: thread files arrive in an inbox directory and
// results land in a labels directory under the input's base name.
const (
	LabelSuffix   = ".label.json"
	FailureSuffix = ".error.json"
	LockName      = ".threadlabel.lock"
)

// IsInput reports whether name is a thread file the watcher should
// classify: a visible .json or .eml file that is not itself a result.
func IsInput(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, LabelSuffix) || strings.HasSuffix(name, FailureSuffix) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".eml":
		return true
	default:
		return false
	}
}

// LabelName is the result file name for input, e.g. a.json ->
// a.json.label.json. The input's extension is kept so a.json and a.eml in
// one inbox get distinct results.
func LabelName(input string) string {
	return filepath.Base(input) + LabelSuffix
}

func FailureName(input string) string {
	return filepath.Base(input) + FailureSuffix
}

func LockPath(outDir string) string {
	return filepath.Join(outDir, LockName)
}

func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
