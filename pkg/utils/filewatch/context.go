// Package filewatch derives contexts from file modification.
package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext returns a context canceled when any of the given
// files changes (written, created, removed, or renamed).
//
// The cancel cause names the file and the operation, so a caller
// looping on a watched playbook can tell a file change from its own
// cancellation. The returned cancel func releases the watcher; when
// the error is non nil, context and cancel are nil.
func UntilModifyContext(ctx context.Context, paths ...string) (context.Context, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, nil, err
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	go func() {
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op))
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
