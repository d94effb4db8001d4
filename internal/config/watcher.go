package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// statusMapDebounce coalesces the bursts of write events editors and
// atomic-rename saves produce into a single reload.
const statusMapDebounce = 250 * time.Millisecond

// StatusMapWatcher hot-reloads the status-category mapping file and pushes
// rebuilt classifiers to the registered callback.
type StatusMapWatcher struct {
	path     string
	onReload func(*domain.Classifier)
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
	done    chan struct{}
}

// NewStatusMapWatcher creates a watcher for the mapping file at path.
// onReload is called with a fresh classifier after each successful reload.
func NewStatusMapWatcher(path string, onReload func(*domain.Classifier), logger *zap.Logger) (*StatusMapWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: editors replace files by rename, which
	// drops a watch placed on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &StatusMapWatcher{
		path:     path,
		onReload: onReload,
		logger:   logger,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking.
func (w *StatusMapWatcher) Start() {
	go w.loop()
}

// Stop stops the watcher and releases the underlying fsnotify resources.
func (w *StatusMapWatcher) Stop() {
	close(w.done)
	w.watcher.Close()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *StatusMapWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("status map watcher error", zap.Error(err))
		}
	}
}

func (w *StatusMapWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(statusMapDebounce, w.reload)
}

func (w *StatusMapWatcher) reload() {
	mapping, err := LoadStatusMap(w.path)
	if err != nil {
		// Keep serving with the previous mapping on a bad edit.
		w.logger.Warn("status map reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.logger.Info("status map reloaded", zap.String("path", w.path), zap.Int("statuses", len(mapping)))
	w.onReload(domain.NewClassifier(mapping))
}
