// Package enricher converts event rows into display events.
package enricher

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/resolver"
	"github.com/Decentr-net/timeline/internal/storage"
)

var log = logrus.WithField("layer", "enricher").WithField("package", "enricher")

const maxConcurrentLookups = 8

// Enricher builds display events from joined rows or, as a fallback, from raw rows and resolver.
type Enricher struct {
	r   resolver.Resolver
	now func() time.Time
}

// Option ...
type Option func(e *Enricher)

// WithClock sets clock used to compute relative time.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		e.now = now
	}
}

// New creates new instance of Enricher.
func New(r resolver.Resolver, opts ...Option) *Enricher {
	e := &Enricher{
		r:   r,
		now: time.Now,
	}

	for _, o := range opts {
		o(e)
	}

	return e
}

// Now returns current time of enricher's clock.
func (e *Enricher) Now() time.Time {
	return e.now()
}

// Enrich converts rows read from source into display events.
// Rows of raw source are resolved through resolver, each distinct reference exactly once.
func (e *Enricher) Enrich(ctx context.Context, rows []*storage.EventRow, source storage.Source) []*entities.DisplayEvent {
	now := e.now()
	out := make([]*entities.DisplayEvent, len(rows))

	if source.Enriched() {
		for i, v := range rows {
			actor := v.ActorSummary
			if actor == nil && v.Actor.Kind == entities.SystemKind {
				s := resolver.SystemSummary
				actor = &s
			}
			out[i] = display(v, actor, v.SubjectSummary, v.TargetSummary, now)
		}
		return out
	}

	summaries := e.resolveAll(ctx, uniqueRefs(rows))

	for i, v := range rows {
		out[i] = display(v, summaries[v.Actor], lookup(summaries, v.Subject), lookup(summaries, v.Target), now)
	}

	return out
}

func (e *Enricher) resolveAll(ctx context.Context, refs []entities.Ref) map[entities.Ref]*entities.Summary {
	var (
		mu  sync.Mutex
		gr  errgroup.Group
		out = make(map[entities.Ref]*entities.Summary, len(refs))
	)

	gr.SetLimit(maxConcurrentLookups)

	for i := range refs {
		ref := refs[i]
		gr.Go(func() error {
			s, err := e.r.Resolve(ctx, ref)
			if err != nil {
				log.WithError(err).WithField("ref", ref.String()).Debug("failed to resolve reference")
				return nil
			}

			mu.Lock()
			out[ref] = s
			mu.Unlock()

			return nil
		})
	}

	_ = gr.Wait() // goroutines never fail

	return out
}

func uniqueRefs(rows []*storage.EventRow) []entities.Ref {
	m := make(map[entities.Ref]struct{}, len(rows))
	out := make([]entities.Ref, 0, len(rows))

	add := func(r *entities.Ref) {
		if r == nil || r.IsZero() {
			return
		}
		if _, ok := m[*r]; !ok {
			m[*r] = struct{}{}
			out = append(out, *r)
		}
	}

	for _, v := range rows {
		actor := v.Actor
		add(&actor)
		add(v.Subject)
		add(v.Target)
	}

	return out
}

func lookup(m map[entities.Ref]*entities.Summary, r *entities.Ref) *entities.Summary {
	if r == nil {
		return nil
	}
	return m[*r]
}

func display(row *storage.EventRow, actor, subject, target *entities.Summary, now time.Time) *entities.DisplayEvent {
	style := StyleOf(row.Type)

	return &entities.DisplayEvent{
		Event:           row.Event,
		ActorSummary:    actor,
		SubjectSummary:  subject,
		TargetSummary:   target,
		Icon:            style.Icon,
		Color:           style.Color,
		TimeAgo:         TimeAgo(row.Timestamp, now),
		IsRecent:        IsRecent(row.Timestamp, now),
		FormattedAmount: FormatAmount(row.AmountBTC, row.AmountSats),
		Interactions:    row.Interactions,
		Replies:         []*entities.DisplayEvent{},
	}
}
