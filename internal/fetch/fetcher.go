// Package fetch generalizes the dashboard's authorized-GET pattern: fetch a
// keyed resource, cancel any in-flight request when a newer one starts so
// only the latest response can commit, and tear down the session on 401/403.
package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	apperrors "github.com/zabava/dashboard-go/internal/errors"
)

// RunFunc performs the actual request for a key/token pair.
type RunFunc[T any] func(ctx context.Context, key, token string) (T, error)

type Fetcher[T any] struct {
	run            RunFunc[T]
	onUnauthorized func()

	mu      sync.Mutex
	cancel  context.CancelFunc
	seq     uint64
	data    T
	hasData bool
	err     error
	loading bool
}

// New builds a fetcher. onUnauthorized may be nil.
func New[T any](run RunFunc[T], onUnauthorized func()) *Fetcher[T] {
	return &Fetcher[T]{run: run, onUnauthorized: onUnauthorized}
}

// Fetch runs the request for the given key and token. A missing key or token
// makes it a no-op, matching the canFetch precondition of the source hook.
// Starting a fetch supersedes any in-flight one: the older request is
// canceled and its eventual outcome is discarded, so stale responses can
// never overwrite newer data.
func (f *Fetcher[T]) Fetch(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.seq++
	seq := f.seq
	f.loading = true
	f.err = nil
	f.mu.Unlock()

	value, err := f.run(runCtx, key, token)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		// Superseded by a newer fetch; that fetch owns the state now.
		return nil
	}
	f.loading = false
	f.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Aborted requests are benign, not failures.
			return nil
		}
		if apperrors.IsUnauthorized(err) {
			log.Warn().Str("key", key).Msg("fetch unauthorized, tearing down session")
			if f.onUnauthorized != nil {
				f.onUnauthorized()
			}
		}
		f.err = err
		return err
	}

	f.data = value
	f.hasData = true
	return nil
}

// Close aborts any outstanding request. Safe to call repeatedly.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
	f.loading = false
}

// Data returns the last committed value and whether one exists.
func (f *Fetcher[T]) Data() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data, f.hasData
}

func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Fetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}
