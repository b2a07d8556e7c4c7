package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

// editors tend to save with a burst of events, wait for it to settle
const watchSettle = 100 * time.Millisecond

// watchFiles compares the two files, then compares again every time either
// one is written. Comparison errors are reported & watching continues. It
// returns when ctx is done
func (opts *rootOpts) watchFiles(ctx context.Context, stdout, stderr io.Writer, logger log.Logger, leftPath, rightPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}
	defer watcher.Close()

	// watch directories rather than files, so files replaced by rename
	// keep being watched
	targets := map[string]bool{}
	for _, p := range []string{leftPath, rightPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return errors.Wrapf(err, "watching %s", p)
		}
	}

	compare := func() {
		start := time.Now()
		if _, err := opts.compare(ctx, stdout, stderr, logger, leftPath, rightPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		logger.Log("msg", "compared", "took", time.Since(start))
	}
	compare()

	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// no need to react to chmod
			if event.Has(fsnotify.Chmod) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			logger.Log("msg", "file changed", "file", event.Name, "op", event.Op.String())
			settled = time.After(watchSettle)
		case <-settled:
			settled = nil
			compare()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watching")
		}
	}
}
