package bdata

import (
	"context"
	"path/filepath"
	"time"

	"git.thinkinpower.net/bindb/file"
	logger "github.com/sirupsen/logrus"
)

// loadSettle is how long the data file must go without a create or write
// event before WatchAndLoad tries to load it.
const loadSettle = 200 * time.Millisecond

// WatchAndLoad retries db.TryLoad(path) whenever path is created or written,
// until a load succeeds or ctx is done. It returns immediately if db is
// already loaded; a loaded table is never reloaded.
//
// A load is attempted once the file has gone loadSettle without an event, so
// a file written in place is read after the writer pauses. A writer that
// pauses longer than that mid-file can still be loaded half-written; publish
// the dataset by renaming a complete file into place.
func WatchAndLoad(ctx context.Context, db BinDatabase, path string) error {
	if db.Loaded() {
		return nil
	}
	target := filepath.Clean(path)

	w, err := file.NewWatcher(filepath.Dir(target))
	if err != nil {
		return err
	}
	w.Settle = loadSettle
	// the file may have appeared before the watch was registered
	if err = db.TryLoad(target); err == nil {
		w.Close()
		return nil
	}
	logger.Infof("waiting for bin data file %s", target)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return w.Run(ctx, func(e file.FileEvent) {
		if filepath.Clean(e.Filepath) != target {
			return
		}
		if err := db.TryLoad(target); err != nil {
			logger.Warnf("bin data file not ready, error: %s", err)
			return
		}
		cancel()
	})
}
