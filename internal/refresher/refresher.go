// Package refresher keeps materialized views of storage up to date.
package refresher

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/timeline/internal/health"
	"github.com/Decentr-net/timeline/internal/storage"
)

var log = logrus.WithField("layer", "refresher").WithField("package", "refresher")

// Refresher periodically refreshes views. It reports result of the last refresh as a health check.
type Refresher interface {
	health.Pinger

	Run(ctx context.Context) error
}

// Status is a health meta of refresher.
type Status struct {
	LastRefresh time.Time `json:"lastRefresh"`
}

type refresher struct {
	s        storage.Storage
	interval time.Duration

	mu   sync.RWMutex
	last time.Time
	err  error
}

// New creates new instance of Refresher.
func New(s storage.Storage, interval time.Duration) Refresher {
	return &refresher{
		s:        s,
		interval: interval,
	}
}

func (r *refresher) Name() string {
	return "views"
}

func (r *refresher) Ping(_ context.Context) (interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Status{LastRefresh: r.last}, r.err
}

// Run refreshes views right away and then every interval until ctx is done.
func (r *refresher) Run(ctx context.Context) error {
	r.refresh(ctx)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if ctx.Err() != nil {
				return nil
			}
			r.refresh(ctx)
		}
	}
}

func (r *refresher) refresh(ctx context.Context) {
	start := time.Now()
	err := r.s.RefreshViews(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).Error("failed to refresh views")
		}
		return
	}

	r.last = time.Now()
	log.WithField("duration", r.last.Sub(start)).Debug("views refreshed")
}
