package cli

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/avivsinai/threadlabel/internal/classify"
	"github.com/avivsinai/threadlabel/internal/format"
	"github.com/avivsinai/threadlabel/internal/fsq"
	"github.com/avivsinai/threadlabel/internal/lock"
	"github.com/avivsinai/threadlabel/internal/thread"
)

// settleDelay lets a writer finish before a just-announced file is read.
const settleDelay = 20 * time.Millisecond

type watchResult struct {
	Event    string      `json:"event"`
	Labelled []watchItem `json:"labelled,omitempty"`
	Failed   []watchItem `json:"failed,omitempty"`
}

type watchItem struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	ThreadID string `json:"thread_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	common := addCommonFlags(fs)
	dirFlag := fs.String("dir", "", "Inbox directory holding thread files (.json requests or .eml)")
	outFlag := fs.String("out-dir", "", "Directory for <file>.label.json results (default: --dir)")
	onceFlag := fs.Bool("once", false, "Label pending files and exit")
	pollFlag := fs.Bool("poll", false, "Use polling fallback instead of fsnotify (for network filesystems)")
	timeoutFlag := fs.Duration("timeout", 0, "Stop after this long (0 = run until interrupted)")
	jsonFlag := fs.Bool("json", false, "Emit a JSON summary instead of one line per file")

	usage := usageWithFlags(fs, "threadlabel watch --dir <inbox> [--out-dir <labels>] [options]",
		"Files that cannot be labelled get a <file>.error.json record and are not retried.")
	if handled, err := parseFlags(fs, args, usage); err != nil {
		return err
	} else if handled {
		return nil
	}

	e, err := setup(common)
	if err != nil {
		return err
	}
	inbox := firstNonEmpty(*dirFlag, e.cfg.Watch.Dir)
	if inbox == "" {
		return UsageError("--dir is required (or set [watch] dir in the config)")
	}
	outDir := firstNonEmpty(*outFlag, e.cfg.Watch.OutDir, inbox)
	interval, err := e.cfg.Watch.GetPollInterval()
	if err != nil {
		return err
	}
	if err := fsq.EnsureDirs(inbox, outDir); err != nil {
		return err
	}

	w := &watcher{
		inbox:  filepath.Clean(inbox),
		outDir: filepath.Clean(outDir),
		c:      e.classifier(false),
		log:    e.log,
		quiet:  *jsonFlag,
		now:    time.Now,
	}

	w.reportFailed()

	if *onceFlag {
		if err := w.drain(); err != nil {
			return err
		}
		return w.output(*jsonFlag, "once")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}

	if *pollFlag || e.cfg.Watch.Poll {
		err = w.watchWithPolling(ctx, interval)
	} else {
		err = w.watchWithFsnotify(ctx, interval)
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		if w.count() == 0 {
			if err := w.output(*jsonFlag, "timeout"); err != nil {
				return err
			}
			return TimeoutError("watch timed out")
		}
		return w.output(*jsonFlag, "timeout")
	case errors.Is(err, context.Canceled):
		return w.output(*jsonFlag, "stopped")
	default:
		return err
	}
}

type watcher struct {
	inbox  string
	outDir string
	c      *classify.Classifier
	log    zerolog.Logger
	quiet  bool
	now    func() time.Time
	result watchResult
}

func (w *watcher) count() int {
	return len(w.result.Labelled) + len(w.result.Failed)
}

// watchWithFsnotify drains the inbox whenever a file appears in it and
// falls back to polling when the inbox cannot be watched.
func (w *watcher) watchWithFsnotify(ctx context.Context, interval time.Duration) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warn().Err(err).Msg("fsnotify unavailable, polling")
		return w.watchWithPolling(ctx, interval)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.inbox); err != nil {
		w.log.Warn().Err(err).Str("dir", w.inbox).Msg("cannot watch inbox, polling")
		return w.watchWithPolling(ctx, interval)
	}

	// Drain only after the watcher is registered so no arrival is missed.
	if err := w.drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if !fsq.IsInput(filepath.Base(event.Name)) {
				continue
			}
			time.Sleep(settleDelay)
			if err := w.drain(); err != nil {
				return err
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return err
		}
	}
}

func (w *watcher) watchWithPolling(ctx context.Context, interval time.Duration) error {
	if err := w.drain(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(); err != nil {
				return err
			}
		}
	}
}

// reportFailed logs the inputs left in the inbox that an earlier run could
// not label; they are skipped until their failure record is removed.
func (w *watcher) reportFailed() {
	records, err := fsq.ListFailed(w.inbox, w.outDir)
	if err != nil {
		w.log.Warn().Err(err).Str("dir", w.inbox).Msg("cannot scan for failure records")
		return
	}
	for _, path := range records {
		f, err := fsq.ReadFailure(path)
		if err != nil {
			w.log.Warn().Err(err).Str("record", path).Msg("unreadable failure record")
			continue
		}
		w.log.Info().
			Str("input", f.Input).
			Str("reason", f.FailureReason).
			Str("failed_at", f.FailureTime).
			Str("record", path).
			Msg("skipping input with failure record; delete the record to retry")
	}
}

// drain labels every pending input in name order.
func (w *watcher) drain() error {
	pending, err := fsq.ListPending(w.inbox, w.outDir)
	if err != nil {
		return err
	}
	for _, path := range pending {
		if err := w.process(path); err != nil {
			return err
		}
	}
	return nil
}

// process labels one input under the labels-directory lock. Classification
// failures become failure records; only write errors are returned.
func (w *watcher) process(path string) error {
	return lock.WithExclusiveFileLock(fsq.LockPath(w.outDir), func() error {
		if fsq.Done(w.outDir, path) {
			return nil
		}
		name := filepath.Base(path)

		res, err := classifyInput(w.c, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			reason := failureReason(err)
			out, werr := fsq.WriteFailure(w.outDir, path, reason, err.Error(), w.now())
			if werr != nil {
				return werr
			}
			w.log.Warn().Err(err).Str("input", name).Str("reason", reason).Msg("cannot label thread")
			item := watchItem{Input: name, Output: out, Reason: reason}
			w.result.Failed = append(w.result.Failed, item)
			return w.report("failed", item, reason)
		}

		data, err := format.MarshalResult(res)
		if err != nil {
			return err
		}
		out, err := fsq.WriteFileAtomic(w.outDir, fsq.LabelName(path), data, 0o644)
		if err != nil {
			return err
		}
		w.log.Debug().Str("input", name).Str("thread_id", res.ThreadID).Msg("labelled thread")
		item := watchItem{Input: name, Output: out, ThreadID: res.ThreadID}
		w.result.Labelled = append(w.result.Labelled, item)
		return w.report("labelled", item, res.ThreadID)
	})
}

func (w *watcher) report(verb string, item watchItem, detail string) error {
	if w.quiet {
		return nil
	}
	return writeStdout("%-9s %s -> %s  %s\n", verb, item.Input, item.Output, detail)
}

func (w *watcher) output(jsonOutput bool, event string) error {
	w.result.Event = event
	if jsonOutput {
		return format.WriteResult(os.Stdout, w.result)
	}
	if w.count() == 0 {
		if event == "timeout" {
			return writeStdoutLine("No new threads (timeout)")
		}
		return writeStdoutLine("No pending threads")
	}
	return writeStdout("%d labelled, %d failed\n", len(w.result.Labelled), len(w.result.Failed))
}

func failureReason(err error) string {
	var shape *thread.ShapeError
	var pathErr *os.PathError
	switch {
	case errors.Is(err, format.ErrMalformedJSON):
		return "malformed_json"
	case errors.As(err, &shape):
		return "input_shape"
	case errors.As(err, &pathErr):
		return "io"
	default:
		return "parse"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
