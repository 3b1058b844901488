package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/knadh/koanf/providers/file"
	"github.com/okian/scout/pkg/logger"
)

// ReloadFunc is called after the watched file changes.
type ReloadFunc func(ctx context.Context) error

// RoleWatcher calls a ReloadFunc whenever the baseline roles file changes.
// Bursts of file events collapse into one pending reload.
type RoleWatcher struct {
	path     string
	provider *file.File
	reload   ReloadFunc
	log      logger.Logger
	pending  chan struct{}
	stopOnce sync.Once
}

// NewRoleWatcher creates a watcher for path.
func NewRoleWatcher(path string, reload ReloadFunc, opts ...Option) *RoleWatcher {
	o := newOptions(opts)
	return &RoleWatcher{
		path:     path,
		provider: file.Provider(path),
		reload:   reload,
		log:      o.log,
		pending:  make(chan struct{}, 1),
	}
}

// Start begins watching. It returns once the watch is registered; reloads
// run until ctx is cancelled or Stop is called.
func (w *RoleWatcher) Start(ctx context.Context) error {
	err := w.provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			w.log.Warn(ctx, "role file watch error", logger.String("path", w.path), logger.Error(err))
			return
		}
		select {
		case w.pending <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	go w.loop(ctx)
	return nil
}

func (w *RoleWatcher) loop(ctx context.Context) {
	defer func() { _ = w.Stop() }()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
			w.log.Info(ctx, "role file changed; reloading", logger.String("path", w.path))
			if err := w.reload(ctx); err != nil {
				w.log.Error(ctx, "role reload failed", logger.Error(err))
			}
		}
	}
}

// Stop releases the underlying file watch. Safe to call more than once.
func (w *RoleWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.provider.Unwatch()
	})
	return err
}
