package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivsinai/threadlabel/internal/fsq"
)

func TestWatchOnce(t *testing.T) {
	dir := isolate(t)
	inbox := filepath.Join(dir, "inbox")
	labels := filepath.Join(dir, "labels")
	require.NoError(t, os.MkdirAll(inbox, 0o755))
	writeFile(t, filepath.Join(inbox, "ghost.json"), ghostRequest)
	writeFile(t, filepath.Join(inbox, "broken.json"), `{"thread": [`)
	writeFile(t, filepath.Join(inbox, "notes.txt"), "not a thread")

	out, err := captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", inbox, "--out-dir", labels, "--once", "--json"})
	})
	require.NoError(t, err)

	var summary watchResult
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "once", summary.Event)
	require.Len(t, summary.Labelled, 1)
	assert.Equal(t, "ghost.json", summary.Labelled[0].Input)
	assert.Equal(t, ghostID, summary.Labelled[0].ThreadID)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "malformed_json", summary.Failed[0].Reason)

	data, err := os.ReadFile(filepath.Join(labels, "ghost.json"+fsq.LabelSuffix))
	require.NoError(t, err)
	assert.Equal(t, ghostLabel(), decodeResult(t, string(data)).Label)

	failure, err := fsq.ReadFailure(filepath.Join(labels, "broken.json"+fsq.FailureSuffix))
	require.NoError(t, err)
	assert.Equal(t, "malformed_json", failure.FailureReason)
	assert.Equal(t, fsq.FailureSchemaVersion, failure.Schema)

	// A second pass finds nothing left to do.
	out, err = captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", inbox, "--out-dir", labels, "--once"})
	})
	require.NoError(t, err)
	assert.Equal(t, "No pending threads\n", out)
}

func TestWatchSameBaseName(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "ghost.json"), ghostRequest)
	writeFile(t, filepath.Join(dir, "ghost.eml"), "From: lee@ghost.io\r\n"+
		"Subject: Project Ghost\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n"+
		"\r\n"+
		"Please review the contract.\r\n")

	out, err := captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", dir, "--once"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "2 labelled, 0 failed")
	for _, name := range []string{"ghost.json", "ghost.eml"} {
		_, err := os.Stat(filepath.Join(dir, name+fsq.LabelSuffix))
		assert.NoError(t, err, name)
	}
}

func TestWatchReportsFailureRecords(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"thread": [`)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	_, err := fsq.WriteFailure(dir, "broken.json", "malformed_json", "unexpected end of JSON input", now)
	require.NoError(t, err)

	var logs bytes.Buffer
	w := &watcher{inbox: dir, outDir: dir, log: zerolog.New(&logs), now: time.Now}
	w.reportFailed()

	assert.Contains(t, logs.String(), `"input":"broken.json"`)
	assert.Contains(t, logs.String(), `"reason":"malformed_json"`)
	assert.Contains(t, logs.String(), `"failed_at":"2026-10-18T09:00:00Z"`)
}

func TestWatchOnceSameDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "ghost.json"), ghostRequest)

	out, err := captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", dir, "--once"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "1 labelled, 0 failed")
	_, err = os.Stat(filepath.Join(dir, "ghost.json"+fsq.LabelSuffix))
	assert.NoError(t, err)
}

func TestWatchConfigDirs(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "threadlabel.toml"), "[watch]\ndir = \"in\"\nout_dir = \"out\"\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "in"), 0o755))
	writeFile(t, filepath.Join(dir, "in", "ghost.json"), ghostRequest)

	_, err := captureStdout(t, func() error { return Run([]string{"watch", "--once"}) })
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "out", "ghost.json"+fsq.LabelSuffix))
	assert.NoError(t, err)
}

func TestWatchRequiresDir(t *testing.T) {
	isolate(t)
	err := Run([]string{"watch", "--once"})
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestWatchTimeout(t *testing.T) {
	dir := isolate(t)
	out, err := captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", dir, "--poll", "--timeout", "100ms"})
	})
	require.Error(t, err)
	assert.Equal(t, ExitTimeout, GetExitCode(err))
	assert.Contains(t, out, "No new threads (timeout)")
}

func TestWatchTimeoutAfterWork(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "ghost.json"), ghostRequest)

	out, err := captureStdout(t, func() error {
		return Run([]string{"watch", "--dir", dir, "--timeout", "200ms"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "1 labelled, 0 failed")
}

func TestFailureReason(t *testing.T) {
	dir := isolate(t)
	c := newTestClassifier(t)
	shape := writeFile(t, filepath.Join(dir, "shape.json"), `{"thread": "nope"}`)
	_, err := classifyInput(c, shape)
	require.Error(t, err)
	assert.Equal(t, "input_shape", failureReason(err))

	_, err = classifyInput(c, filepath.Join(dir, "gone.json"))
	require.Error(t, err)
	assert.Equal(t, "io", failureReason(err))
}
