package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Decentr-net/timeline/internal/cache"
	"github.com/Decentr-net/timeline/internal/enricher"
	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

var errMalformedResponse = errors.New("malformed response")
var errNoKey = errors.New("query is not cacheable")

// Query is a request passed through fallback chain.
type Query struct {
	// Feed is a name of feed, used in logs.
	Feed string
	// Key identifies query in cache, empty key disables caching.
	Key    string
	Params storage.ListEventsParams
}

// Page is a successful result of a tier.
type Page struct {
	Events []*entities.DisplayEvent
	Total  uint64

	// rows and source are what Events were built from, kept for the cache tier.
	rows   []*storage.EventRow
	source storage.Source
}

// cachedPage is a page persisted by cache tier. Display attributes are not stored,
// they are computed again on every read.
type cachedPage struct {
	Rows   []*storage.EventRow `json:"rows"`
	Total  uint64              `json:"total"`
	Source storage.Source      `json:"source"`
}

// Strategy is one tier of fallback chain.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, q *Query) (*Page, error)
}

// firstSuccess tries tiers in order and returns the first successful page.
// It returns nil if every tier has failed.
func firstSuccess(ctx context.Context, q *Query, tiers []Strategy) *Page {
	for _, t := range tiers {
		page, err := t.Fetch(ctx, q)
		if err == nil {
			return page
		}

		l := log.WithError(err).WithField("feed", q.Feed).WithField("tier", t.Name())
		if errors.Is(err, cache.ErrMiss) || errors.Is(err, errNoKey) {
			l.Debug("tier is empty")
		} else {
			l.Warn("tier failed")
		}
	}

	log.WithField("feed", q.Feed).Error("all tiers failed")

	return nil
}

// storeStrategy reads events from storage source and enriches them.
type storeStrategy struct {
	s      storage.Storage
	e      *enricher.Enricher
	source storage.Source
}

func (t storeStrategy) Name() string {
	return string(t.source)
}

func (t storeStrategy) Fetch(ctx context.Context, q *Query) (*Page, error) {
	p := q.Params
	p.Source = t.source

	rows, total, err := t.s.ListEvents(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if len(rows) > int(p.Limit) || uint64(len(rows)) > total {
		return nil, fmt.Errorf("%w: got %d rows of %d, limit %d", errMalformedResponse, len(rows), total, p.Limit)
	}

	rows = sanitize(rows)

	return &Page{
		Events: t.e.Enrich(ctx, rows, t.source),
		Total:  total,
		rows:   rows,
		source: t.source,
	}, nil
}

// sanitize drops deleted and repeated rows.
func sanitize(rows []*storage.EventRow) []*storage.EventRow {
	m := make(map[string]struct{}, len(rows))
	out := make([]*storage.EventRow, 0, len(rows))

	for _, v := range rows {
		if v == nil || v.Deleted {
			continue
		}
		if _, ok := m[v.ID]; ok {
			continue
		}
		m[v.ID] = struct{}{}
		out = append(out, v)
	}

	return out
}

// retryStrategy makes bounded number of attempts, each one within timeout.
type retryStrategy struct {
	s        Strategy
	attempts int
	backoff  time.Duration
	timeout  time.Duration
}

func (t retryStrategy) Name() string {
	return t.s.Name()
}

func (t retryStrategy) Fetch(ctx context.Context, q *Query) (*Page, error) {
	var err error

	for i := 0; i < t.attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(t.backoff):
			}
		}

		var page *Page
		if page, err = t.attempt(ctx, q); err == nil {
			return page, nil
		}

		log.WithError(err).WithField("feed", q.Feed).WithField("attempt", i+1).Debug("attempt failed")
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", t.attempts, err)
}

func (t retryStrategy) attempt(ctx context.Context, q *Query) (*Page, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	return t.s.Fetch(ctx, q)
}

// cachingStrategy saves successful pages of underlying tier to be served by cacheStrategy later.
type cachingStrategy struct {
	s   Strategy
	c   cache.Cache
	ttl time.Duration
}

func (t cachingStrategy) Name() string {
	return t.s.Name()
}

func (t cachingStrategy) Fetch(ctx context.Context, q *Query) (*Page, error) {
	page, err := t.s.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if q.Key != "" && page.source != "" {
		v := cachedPage{Rows: page.rows, Total: page.Total, Source: page.source}
		if err := t.c.Set(ctx, q.Key, v, t.ttl); err != nil {
			log.WithError(err).WithField("feed", q.Feed).Warn("failed to cache page")
		}
	}

	return page, nil
}

// cacheStrategy serves the last successful page of the same query.
type cacheStrategy struct {
	c cache.Cache
	e *enricher.Enricher
}

func (t cacheStrategy) Name() string {
	return "cache"
}

func (t cacheStrategy) Fetch(ctx context.Context, q *Query) (*Page, error) {
	if q.Key == "" {
		return nil, errNoKey
	}

	var v cachedPage
	if err := t.c.Get(ctx, q.Key, &v); err != nil {
		return nil, err
	}

	if uint64(len(v.Rows)) > v.Total {
		return nil, fmt.Errorf("%w: cached %d rows of %d", errMalformedResponse, len(v.Rows), v.Total)
	}

	rows := sanitize(v.Rows)

	return &Page{
		Events: t.e.Enrich(ctx, rows, v.Source),
		Total:  v.Total,
		rows:   rows,
		source: v.Source,
	}, nil
}
