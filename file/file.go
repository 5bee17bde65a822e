package file

import (
	"context"
	"runtime/debug"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

type FileEvent struct {
	Filepath    string
	FileCreated bool
}

// Watcher reports Create and Write events for the files in one directory.
//
// With Settle set, events for a file are held back until the file has seen
// no event for Settle, and are then reported once. FileCreated is true if
// any of the held events was a Create.
type Watcher struct {
	Settle time.Duration

	dir     string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching dir. Events that happen after NewWatcher
// returns are delivered by Run.
func NewWatcher(dir string) (*Watcher, error) {
	var (
		watcher *fsnotify.Watcher
		err     error
	)
	if watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err = watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", dir)
	}
	return &Watcher{dir: dir, watcher: watcher}, nil
}

// Run calls fn for every event until ctx is done, then closes the watcher.
// fn runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(FileEvent)) error {
	defer w.Close()
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("watching %s panic: %v\n%s", w.dir, err, string(debug.Stack()))
		}
	}()
	pending := make(map[string]FileEvent)
	var (
		settle  *time.Timer
		settled <-chan time.Time
	)
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()
	emit := func(e FileEvent) {
		if w.Settle <= 0 {
			fn(e)
			return
		}
		if prev, ok := pending[e.Filepath]; ok && prev.FileCreated {
			e.FileCreated = true
		}
		pending[e.Filepath] = e
		if settle == nil {
			settle = time.NewTimer(w.Settle)
		} else {
			if !settle.Stop() {
				select {
				case <-settle.C:
				default:
				}
			}
			settle.Reset(w.Settle)
		}
		settled = settle.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-settled:
			settled = nil
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				e := pending[name]
				delete(pending, name)
				fn(e)
				if ctx.Err() != nil {
					return nil
				}
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				logger.Infof("file created %s", event.Name)
				emit(FileEvent{Filepath: event.Name, FileCreated: true})
			} else if event.Op&fsnotify.Write == fsnotify.Write {
				logger.Debugf("file modified %s", event.Name)
				emit(FileEvent{Filepath: event.Name, FileCreated: false})
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch %s error: %s", w.dir, err)
		}
	}
}

func (w *Watcher) Close() {
	if err := w.watcher.Close(); err != nil {
		logger.Error(err)
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, dir string, fn func(FileEvent)) error {
	w, err := NewWatcher(dir)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
