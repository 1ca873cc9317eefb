package app

import (
	"context"
	"sync"
	"time"

	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/pubsub"
	"github.com/zjrosen/mlv/internal/watcher"
)

// ReloadResult is published after every reload attempt.
type ReloadResult struct {
	Archive *archive.Archive
	Err     error
}

// Reloader reloads an archive when its file changes and publishes the
// outcome as a ReloadedEvent.
type Reloader struct {
	path    string
	loader  *archive.Loader
	watcher *watcher.Watcher
	broker  *pubsub.Broker[ReloadResult]

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewReloader prepares a reloader for path. Nothing happens until Start.
func NewReloader(path string, loader *archive.Loader, debounce time.Duration) (*Reloader, error) {
	cfg := watcher.DefaultConfig(path)
	if debounce > 0 {
		cfg.DebounceDur = debounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Reloader{
		path:    path,
		loader:  loader,
		watcher: w,
		broker:  pubsub.NewBroker[ReloadResult](),
	}, nil
}

// Subscribe delivers reload results until ctx is done.
func (r *Reloader) Subscribe(ctx context.Context) <-chan pubsub.Event[ReloadResult] {
	return r.broker.Subscribe(ctx)
}

// Broker exposes the result broker for tea listeners.
func (r *Reloader) Broker() *pubsub.Broker[ReloadResult] {
	return r.broker
}

// Start begins watching the archive file.
func (r *Reloader) Start(ctx context.Context) error {
	changes, err := r.watcher.Start()
	if err != nil {
		return err
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				r.Reload(ctx)
			}
		}
	}()
	return nil
}

// Reload loads the archive now and publishes the result.
func (r *Reloader) Reload(ctx context.Context) ReloadResult {
	a, err := r.loader.Load(ctx, r.path)
	if err != nil {
		log.ErrorErr(log.CatArchive, "reload failed", err, "path", r.path)
	} else {
		log.Info(log.CatArchive, "archive reloaded", "path", r.path, "messages", len(a.Messages))
	}

	res := ReloadResult{Archive: a, Err: err}
	r.broker.Publish(pubsub.ReloadedEvent, res)
	return res
}

// Close stops watching and ends all subscriptions. It is safe to call more
// than once.
func (r *Reloader) Close() error {
	var err error
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		err = r.watcher.Stop()
		r.wg.Wait()
		r.broker.Close()
	})
	return err
}
