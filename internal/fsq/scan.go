package fsq

import (
	"os"
	"path/filepath"
	"sort"
)

// ListPending returns the inputs in inbox that have neither a label nor a
// failure record in outDir, sorted by name.
func ListPending(inbox, outDir string) ([]string, error) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !IsInput(entry.Name()) {
			continue
		}
		if Done(outDir, entry.Name()) {
			continue
		}
		out = append(out, filepath.Join(inbox, entry.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Done reports whether input already has a result in outDir.
func Done(outDir, input string) bool {
	for _, name := range []string{LabelName(input), FailureName(input)} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err == nil {
			return true
		}
	}
	return false
}

// ListFailed returns the failure records in outDir that belong to inputs
// still present in inbox, sorted by input name.
func ListFailed(inbox, outDir string) ([]string, error) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !IsInput(entry.Name()) {
			continue
		}
		record := filepath.Join(outDir, FailureName(entry.Name()))
		if _, err := os.Stat(record); err == nil {
			out = append(out, record)
		}
	}
	sort.Strings(out)
	return out, nil
}
