package fsq

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const FailureSchemaVersion = "threadlabel/failure/v1"

// Failure records why an input could not be labelled. Writing one marks the
// input done so the watcher does not retry it on every pass.
type Failure struct {
	Schema        string `json:"schema"`
	Input         string `json:"input"`
	FailureReason string `json:"failure_reason"`
	FailureDetail string `json:"failure_detail"`
	FailureTime   string `json:"failure_time"`
}

// WriteFailure atomically writes the failure record for input into outDir.
func WriteFailure(outDir, input, reason, detail string, now time.Time) (string, error) {
	f := Failure{
		Schema:        FailureSchemaVersion,
		Input:         filepath.Base(input),
		FailureReason: reason,
		FailureDetail: detail,
		FailureTime:   now.UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	return WriteFileAtomic(outDir, FailureName(input), data, 0o644)
}

func ReadFailure(path string) (Failure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Failure{}, err
	}
	var f Failure
	if err := json.Unmarshal(data, &f); err != nil {
		return Failure{}, fmt.Errorf("parse failure record: %w", err)
	}
	if f.Schema != FailureSchemaVersion {
		return Failure{}, fmt.Errorf("unknown failure schema %q", f.Schema)
	}
	return f, nil
}
