// Package watcher monitors the parser output directory and triggers the
// chunking pipeline when new documents arrive. The upstream parser writes
// <root>/<doc_id>/document.json; this watcher reacts to those writes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/parser/docjson"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// DefaultDebounce is how long a document must stay quiet before it is
// handed off. Parsers write large JSON files in several syscalls; acting
// on the first write would hand over a truncated file.
const DefaultDebounce = 500 * time.Millisecond

// Handler processes one newly parsed document.
type Handler func(ctx context.Context, docID string) error

// Watcher turns filesystem events under the parser output root into
// debounced per-document handler calls.
type Watcher struct {
	root     string
	debounce time.Duration
	handler  Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet period before a document is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher over the given parser output root.
func New(root string, handler Handler, opts ...Option) (*Watcher, error) {
	if root == "" || handler == nil {
		return nil, fmt.Errorf("watcher needs a root directory and a handler")
	}
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		handler:  handler,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until the context is cancelled. Existing documents are not
// replayed; only arrivals after Run starts trigger the handler.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fsw.Close()

	if err := os.MkdirAll(w.root, 0700); err != nil {
		return fmt.Errorf("creating watch root: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}

	// Document directories that already exist still receive writes.
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("reading watch root: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := fsw.Add(filepath.Join(w.root, e.Name())); err != nil {
				logger.Warn("Could not watch %s: %v", e.Name(), err)
			}
		}
	}

	logger.Info("Watching %s for parsed documents", w.root)

	for {
		select {
		case <-ctx.Done():
			w.cancelTimers()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	// A new directory directly under the root is a new document; watch it
	// so the document.json write inside it is seen.
	if filepath.Dir(event.Name) == w.root {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				logger.Warn("Could not watch %s: %v", event.Name, err)
			}
			// The parser may have written document.json before the
			// directory watch was in place.
			if _, err := os.Stat(filepath.Join(event.Name, docjson.DocumentFile)); err == nil {
				w.schedule(ctx, filepath.Base(event.Name))
			}
			return
		}
	}

	if filepath.Base(event.Name) != docjson.DocumentFile {
		return
	}
	docID := filepath.Base(filepath.Dir(event.Name))
	if docID == "" || docID == "." {
		return
	}
	w.schedule(ctx, docID)
}

// schedule arms (or re-arms) the debounce timer for a document.
func (w *Watcher) schedule(ctx context.Context, docID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[docID]; ok {
		t.Stop()
	}
	w.timers[docID] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, docID)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		logger.Debug("Document %s settled, handing off", docID)
		if err := w.handler(ctx, docID); err != nil {
			logger.Warn("Processing %s failed: %v", docID, err)
		}
	})
}

func (w *Watcher) cancelTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, t := range w.timers {
		t.Stop()
		delete(w.timers, id)
	}
}
