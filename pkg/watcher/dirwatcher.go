package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches theme directories and reports changes through a
// debounced callback, so a burst of file events (an install script dropping
// twenty theme files) triggers a single catalog refresh.
type DirWatcher struct {
	fw       *fsnotify.Watcher
	deb      *Debouncer
	onChange func()
	done     chan struct{}
}

// WatchDirs starts watching the given directories. Directories that cannot
// be watched (typically: not yet created) are skipped. onChange runs on a
// timer goroutine after the debounce interval.
func WatchDirs(dirs []string, interval time.Duration, onChange func()) (*DirWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		// Best effort: a missing directory is not fatal.
		_ = fw.Add(dir)
	}

	w := &DirWatcher{
		fw:       fw,
		deb:      NewDebouncer(interval),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *DirWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.deb.Schedule("refresh", 0, w.onChange)
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the fallback is a manual refresh.
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and cancels any pending refresh.
func (w *DirWatcher) Close() error {
	close(w.done)
	w.deb.Close()
	return w.fw.Close()
}
