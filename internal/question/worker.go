package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to the warmer's refresh hook.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// CacheWarmer periodically refreshes the category cache so reads rarely miss.
type CacheWarmer struct {
	target    refresher
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
	shutdownC chan struct{}
}

func NewCacheWarmer(target refresher, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		target:    target,
		interval:  interval,
		timeout:   4 * time.Second,
		logger:    logger.With().Str("component", "cache_warmer").Logger(),
		shutdownC: make(chan struct{}),
	}
}

// Run refreshes once immediately, then on every tick until ctx ends or Stop is called.
func (w *CacheWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.shutdownC:
			w.logger.Info().Msg("cache warmer stopping")
			return nil
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheWarmer) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.target.Refresh(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category cache refresh failed")
	}
}

func (w *CacheWarmer) Stop() {
	close(w.shutdownC)
}
