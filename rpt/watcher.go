package rpt

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alchip/ptsum/logger"
)

// ReportWatcher watches a timing report for rewrites and triggers
// regeneration callbacks. The parent directory is watched rather than
// the file itself, so tools that replace the report atomically
// (write to temp, then rename) are still picked up.
type ReportWatcher struct {
	reportPath     string
	watcher        *fsnotify.Watcher
	callbacks      []RegenCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// RegenCallback is called with the report path after the watched file
// changes. Errors are logged; they do not stop the watcher.
type RegenCallback func(path string) error

// NewReportWatcher creates a watcher for the given report file.
func NewReportWatcher(reportPath string) (*ReportWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(reportPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch report directory %s: %w", dir, err)
	}

	rw := &ReportWatcher{
		reportPath:     reportPath,
		watcher:        watcher,
		callbacks:      make([]RegenCallback, 0),
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid file changes
	}

	return rw, nil
}

// OnChange registers a callback to run after each debounced change.
func (rw *ReportWatcher) OnChange(callback RegenCallback) {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	rw.callbacks = append(rw.callbacks, callback)
}

// Start begins watching for report file changes
func (rw *ReportWatcher) Start() {
	go rw.watchLoop()
}

// watchLoop monitors file system events
func (rw *ReportWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}

			// Only react to Write or Create events on the report itself
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if !rw.matchesReport(event.Name) {
					continue
				}

				logger.Infow("Report watcher detected change",
					"file", event.Name,
					"op", event.Op.String())
				rw.scheduleRegen()
			}

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Report watcher error",
				"error", err)
		}
	}
}

// matchesReport checks whether a directory event refers to the
// watched report file.
func (rw *ReportWatcher) matchesReport(name string) bool {
	return filepath.Base(name) == filepath.Base(rw.reportPath)
}

// scheduleRegen debounces rapid file changes and triggers regeneration
func (rw *ReportWatcher) scheduleRegen() {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	// Cancel existing timer if any
	if rw.debounceTimer != nil {
		rw.debounceTimer.Stop()
	}

	// Schedule regeneration after debounce period
	rw.debounceTimer = time.AfterFunc(rw.debouncePeriod, func() {
		if err := rw.regen(); err != nil {
			logger.Errorw("Report regeneration failed",
				"error", err)
		}
	})
}

// regen calls all registered callbacks with the report path.
func (rw *ReportWatcher) regen() error {
	logger.Infow("Regenerating summary",
		"report", rw.reportPath)

	rw.mu.RLock()
	callbacks := make([]RegenCallback, len(rw.callbacks))
	copy(callbacks, rw.callbacks)
	rw.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(rw.reportPath); err != nil {
			logger.Warnw("Regeneration callback error",
				"error", err)
			// Continue calling other callbacks even if one fails
		}
	}

	return nil
}

// Stop stops watching for report changes
func (rw *ReportWatcher) Stop() error {
	return rw.watcher.Close()
}
