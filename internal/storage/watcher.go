package storage

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals when another process rewrites a key in a FileStore. It is
// the storage-change channel of the sync bridge: the in-process notification
// path does not go through here, because filesystem events are only needed
// for changes made outside this process.
//
// Signals are coalesced; C carries no payload. Consumers must re-read the
// store rather than interpret a signal as a delta.
type Watcher struct {
	C chan struct{}

	fsw *fsnotify.Watcher
}

// Watch starts watching the given key for external changes. Close the
// returned watcher to release the underlying filesystem watch.
func (f *FileStore) Watch(key string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory, not the file: atomic writes replace the file by
	// rename, which would invalidate a watch on the file itself.
	if err := fsw.Add(f.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch state dir: %w", err)
	}

	w := &Watcher{
		C:   make(chan struct{}, 1),
		fsw: fsw,
	}
	target := key + ".json"

	go func() {
		for ev := range fsw.Events {
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.C <- struct{}{}:
			default:
				// A signal is already pending; coalesce.
			}
		}
		close(w.C)
	}()

	return w, nil
}

// Close stops the watch. C is closed once pending events drain.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
