package loader

import (
	"strings"

	"github.com/fsnotify/fsnotify"

	"dsl-bot/internal/logging"
)

// Watcher refreshes the list of available script filenames whenever the
// scripts directory changes. It never touches a running session's
// already-compiled flow table; only ListScripts callers observe changes.
type Watcher struct {
	fsw *fsnotify.Watcher
	dir string
	log *logging.Logger
	on  func([]string)
}

// NewWatcher starts watching dir. on is invoked with the refreshed
// script list after every create/remove/rename/write event on a .bot
// file; events are not debounced.
func NewWatcher(dir string, log *logging.Logger, on func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fsw: fsw, dir: dir, log: log, on: on}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".bot") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			names, err := ListScripts(w.dir)
			if err != nil {
				w.log.Warnf("rescanning scripts directory: %v", err)
				continue
			}
			w.on(names)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
