package level

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports level files that change on disk so they can be reloaded
// into a Registry. Events carry level names relative to the watched root.
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches root and all of its subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		root:    root,
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// FS returns the watched root as a filesystem suitable for Registry.Reload.
func (w *Watcher) FS() fs.FS {
	return os.DirFS(w.root)
}

// Close stops the watcher. Events and Errors are closed once it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// run reports a file once it has been quiet for watchDebounce. Every new
// write to the same file restarts its timer, so a truncate followed by a
// write is reported once, after the final content is on disk.
func (w *Watcher) run() {
	pending := make(map[string]*time.Timer)
	fired := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !IsLevelFile(event.Name) {
				continue
			}
			path := event.Name
			if t, ok := pending[path]; ok {
				t.Reset(watchDebounce)
				continue
			}
			pending[path] = time.AfterFunc(watchDebounce, func() {
				select {
				case fired <- path:
				case <-w.closeCh:
				}
			})
		case path := <-fired:
			delete(pending, path)
			name, err := filepath.Rel(w.root, path)
			if err != nil {
				continue
			}
			select {
			case w.Events <- filepath.ToSlash(name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
