package config

import (
	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the currently loaded config file for changes on
// disk and invokes onChange after a successful or failed Reload, the
// same way viper's own fsnotify integration drives WatchConfig in the
// teacher. The core treats this as an additional reload trigger
// alongside the IPC `reload-config` command, not a replacement for it.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchFile starts watching the store's LoadedPath for writes/renames
// and calls onChange(err) after each triggered Reload. It returns nil,
// nil if no file has been loaded yet — there is nothing to watch.
func (s *Store) WatchFile(onChange func(err error)) (*FileWatcher, error) {
	if s.loadedPath == "" {
		return nil, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.loadedPath); err != nil {
		w.Close()
		return nil, err
	}

	fw := &FileWatcher{watcher: w, done: make(chan struct{})}
	go fw.run(s, onChange)
	return fw, nil
}

func (fw *FileWatcher) run(s *Store, onChange func(err error)) {
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if onChange != nil {
					onChange(s.Reload())
				}
			}
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		case <-fw.done:
			return
		}
	}
}

// Close stops the watcher goroutine and releases its inotify handle.
func (fw *FileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	close(fw.done)
	return fw.watcher.Close()
}
