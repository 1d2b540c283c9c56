// Package feed assembles timeline feeds.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/timeline/internal/cache"
	"github.com/Decentr-net/timeline/internal/enricher"
	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

//go:generate mockgen -destination=./mock/feed.go -package=mock -source=feed.go

var log = logrus.WithField("layer", "feed").WithField("package", "feed")

// ErrInvalidRequest is returned when request is rejected before reaching storage.
var ErrInvalidRequest = errors.New("invalid request")

const (
	// DefaultLimit is a page size used when limit isn't set.
	DefaultLimit = 20
	// MaxLimit is a hard cap of page size.
	MaxLimit = 100

	// MaxReplyDepth is count of reply levels returned under the root.
	MaxReplyDepth = 4
	// NestedRepliesLimit caps replies fetched per node below the first level.
	NestedRepliesLimit = 50

	minSearchQueryLength = 2
)

// PageRequest ...
type PageRequest struct {
	Page  int
	Limit int
}

// Service provides feeds. Returned errors are always validation errors (ErrInvalidRequest),
// storage failures are absorbed and result in empty feeds.
type Service interface {
	GetPersonalFeed(ctx context.Context, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error)
	GetFollowedFeed(ctx context.Context, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error)
	GetProjectFeed(ctx context.Context, projectID, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error)
	GetProfileFeed(ctx context.Context, profileID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error)
	GetCommunityFeed(ctx context.Context, f entities.Filters, p PageRequest) (*entities.FeedResponse, error)

	GetReplies(ctx context.Context, eventID string, limit int) ([]*entities.DisplayEvent, error)
	SearchEvents(ctx context.Context, query string, limit, offset int) ([]*entities.DisplayEvent, uint64, error)
}

// Config ...
type Config struct {
	// CommunityRetryAttempts is count of attempts of community view before falling back.
	CommunityRetryAttempts int
	CommunityRetryBackoff  time.Duration
	// CommunityAttemptTimeout bounds every community view attempt.
	CommunityAttemptTimeout time.Duration

	// CacheTTL is a lifetime of pages stored for the cache tier.
	CacheTTL time.Duration

	// Demo enables demo fixtures tier of community feed.
	Demo bool
}

// DefaultConfig ...
// nolint: gochecknoglobals
var DefaultConfig = Config{
	CommunityRetryAttempts:  2,
	CommunityRetryBackoff:   100 * time.Millisecond,
	CommunityAttemptTimeout: 3 * time.Second,
	CacheTTL:                10 * time.Minute,
}

type service struct {
	s   storage.Storage
	e   *enricher.Enricher
	c   cache.Cache
	cfg Config
}

// New creates new instance of Service. Cache is optional, nil disables cache tier.
func New(s storage.Storage, e *enricher.Enricher, c cache.Cache, cfg Config) Service {
	if cfg.CommunityRetryAttempts < 1 {
		cfg.CommunityRetryAttempts = 1
	}

	return &service{
		s:   s,
		e:   e,
		c:   c,
		cfg: cfg,
	}
}

// tiers returns fallback chain starting from primary source.
func (s *service) tiers(primary storage.Source, community bool) []Strategy {
	var live Strategy = storeStrategy{s: s.s, e: s.e, source: primary}
	if community {
		live = retryStrategy{
			s:        live,
			attempts: s.cfg.CommunityRetryAttempts,
			backoff:  s.cfg.CommunityRetryBackoff,
			timeout:  s.cfg.CommunityAttemptTimeout,
		}
	}

	raw := Strategy(storeStrategy{s: s.s, e: s.e, source: storage.RawSource})

	if s.c == nil {
		out := []Strategy{live, raw}
		if community && s.cfg.Demo {
			out = append(out, demoStrategy{e: s.e})
		}
		return out
	}

	out := []Strategy{
		cachingStrategy{s: live, c: s.c, ttl: s.cfg.CacheTTL},
		cachingStrategy{s: raw, c: s.c, ttl: s.cfg.CacheTTL},
		cacheStrategy{c: s.c, e: s.e},
	}

	if community && s.cfg.Demo {
		out = append(out, demoStrategy{e: s.e})
	}

	return out
}

// serve runs fallback chain and wraps result into response.
func (s *service) serve(ctx context.Context, q *Query, tiers []Strategy, req PageRequest, f entities.Filters) *entities.FeedResponse {
	page := firstSuccess(ctx, q, tiers)
	return newResponse(page, req, f, s.e.Now())
}

func newResponse(page *Page, req PageRequest, f entities.Filters, now time.Time) *entities.FeedResponse {
	if page == nil {
		page = &Page{}
	}

	events := page.Events
	if events == nil {
		events = []*entities.DisplayEvent{}
	}

	featured := 0
	for _, v := range events {
		if v.Featured {
			featured++
		}
	}

	offset := uint64((req.Page - 1) * req.Limit)

	return &entities.FeedResponse{
		Events: events,
		Pagination: entities.Pagination{
			Page:    req.Page,
			Limit:   req.Limit,
			Total:   page.Total,
			HasNext: offset+uint64(req.Limit) < page.Total,
			HasPrev: req.Page > 1,
		},
		Filters: f,
		Metadata: entities.FeedMetadata{
			TotalEvents:    page.Total,
			FeaturedEvents: featured,
			LastUpdated:    now,
		},
	}
}
