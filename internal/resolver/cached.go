package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/timeline/internal/cache"
	"github.com/Decentr-net/timeline/internal/entities"
)

var log = logrus.WithField("layer", "resolver").WithField("package", "resolver")

type cached struct {
	r   Resolver
	c   cache.Cache
	ttl time.Duration
}

// NewCached wraps resolver with cache. Cache failures are logged and never returned.
func NewCached(r Resolver, c cache.Cache, ttl time.Duration) Resolver {
	return cached{
		r:   r,
		c:   c,
		ttl: ttl,
	}
}

func (c cached) Resolve(ctx context.Context, ref entities.Ref) (*entities.Summary, error) {
	key := "summary:" + ref.String()

	var s entities.Summary
	switch err := c.c.Get(ctx, key, &s); {
	case err == nil:
		return &s, nil
	case !errors.Is(err, cache.ErrMiss):
		log.WithError(err).WithField("ref", ref.String()).Warn("failed to get summary from cache")
	}

	out, err := c.r.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := c.c.Set(ctx, key, out, c.ttl); err != nil {
		log.WithError(err).WithField("ref", ref.String()).Warn("failed to put summary to cache")
	}

	return out, nil
}
