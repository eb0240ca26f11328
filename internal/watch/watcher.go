// Package watch imports CSV files dropped into an inbox directory.
//
// Each file is imported whole, in its own transaction, and then moved to
// processed/ or failed/ under the inbox. Failed files get a sibling
// NAME.error file holding the import error.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/service"
)

const (
	ProcessedDir = "processed"
	FailedDir    = "failed"

	defaultDebounce = 500 * time.Millisecond
)

// Result is the outcome of importing one file.
type Result struct {
	Path   string
	Moved  string
	Import *service.ImportResult
	Err    error
}

type Options struct {
	// Debounce is how long a file must stay unchanged before it is imported.
	Debounce time.Duration
	Logger   *zap.Logger
	// OnResult is called after every handled file.
	OnResult func(Result)
}

// Watcher imports CSV files from one directory, one at a time.
type Watcher struct {
	dir     string
	imports service.ImportService
	opts    Options
	log     *zap.Logger
	pending map[string]time.Time
}

func New(dir string, imports service.ImportService, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Watcher{
		dir:     dir,
		imports: imports,
		opts:    opts,
		log:     opts.Logger.With(zap.String("inbox", dir)),
		pending: make(map[string]time.Time),
	}
}

// Run imports the CSV files already in the inbox, then watches it until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for _, sub := range []string{ProcessedDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.log.Info("watching inbox")

	existing, err := w.scan()
	if err != nil {
		return err
	}
	for _, path := range existing {
		w.process(ctx, path)
	}

	ticker := time.NewTicker(max(w.opts.Debounce/5, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if isCSV(event.Name) && (event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
				w.pending[event.Name] = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *Watcher) scan() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading inbox: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && isCSV(e.Name()) {
			paths = append(paths, filepath.Join(w.dir, e.Name()))
		}
	}
	return paths, nil
}

// flush imports every pending file that has been quiet for the debounce
// period, in name order.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.opts.Debounce {
			ready = append(ready, path)
		}
	}
	slices.Sort(ready)
	for _, path := range ready {
		delete(w.pending, path)
		w.process(ctx, path)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	res := Result{Path: path}
	if err != nil {
		res.Err = err
	} else {
		res.Import, res.Err = w.imports.Import(ctx, f, filepath.Base(path))
		f.Close()
	}

	dest := ProcessedDir
	if res.Err != nil {
		dest = FailedDir
	}
	moved, err := w.move(path, dest)
	if err != nil {
		w.log.Error("moving imported file", zap.String("file", path), zap.Error(err))
	}
	res.Moved = moved

	if res.Err != nil {
		w.log.Warn("import failed", zap.String("file", filepath.Base(path)), zap.Error(res.Err))
		if moved != "" {
			if err := os.WriteFile(moved+".error", []byte(res.Err.Error()+"\n"), 0o644); err != nil {
				w.log.Error("writing error file", zap.String("file", moved), zap.Error(err))
			}
		}
	} else {
		w.log.Info("imported",
			zap.String("file", filepath.Base(path)),
			zap.String("run_id", res.Import.RunID),
			zap.Int("stories_created", res.Import.Summary.StoriesCreated),
		)
	}

	if w.opts.OnResult != nil {
		w.opts.OnResult(res)
	}
}

// move renames path into the sub directory, prefixing a timestamp when the
// name is already taken.
func (w *Watcher) move(path, sub string) (string, error) {
	name := filepath.Base(path)
	target := filepath.Join(w.dir, sub, name)
	if _, err := os.Stat(target); err == nil {
		target = filepath.Join(w.dir, sub, time.Now().UTC().Format("20060102T150405.000000000")+"-"+name)
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
