package feed

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

var errUnavailable = errors.New("unavailable")

// memStorage is in-memory storage which follows predicates of postgres implementation.
type memStorage struct {
	mu sync.Mutex

	events    []*entities.Event
	follows   map[string][]string
	summaries map[entities.Ref]*entities.Summary

	failing map[storage.Source]bool
	calls   map[storage.Source]int
	lookups int
}

func newMemStorage(events ...*entities.Event) *memStorage {
	return &memStorage{
		events:    events,
		follows:   map[string][]string{},
		summaries: map[entities.Ref]*entities.Summary{},
		failing:   map[storage.Source]bool{},
		calls:     map[storage.Source]int{},
	}
}

func (m *memStorage) ListEvents(_ context.Context, p *storage.ListEventsParams) ([]*storage.EventRow, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[p.Source]++

	if m.failing[p.Source] {
		return nil, 0, errUnavailable
	}

	var matched []*entities.Event
	for _, e := range m.events {
		if m.match(e, p) {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if p.Order == storage.AscendingOrder {
			a, b = b, a
		}
		if a.Timestamp.Equal(b.Timestamp) {
			return a.ID > b.ID
		}
		return a.Timestamp.After(b.Timestamp)
	})

	total := uint64(len(matched))
	if p.Offset >= total {
		return []*storage.EventRow{}, total, nil
	}

	matched = matched[p.Offset:]
	if len(matched) > int(p.Limit) {
		matched = matched[:p.Limit]
	}

	out := make([]*storage.EventRow, len(matched))
	for i, e := range matched {
		out[i] = &storage.EventRow{Event: *e}

		if p.Source.Enriched() {
			out[i].ActorSummary = m.summaries[e.Actor]
			if e.Subject != nil {
				out[i].SubjectSummary = m.summaries[*e.Subject]
			}
			if e.Target != nil {
				out[i].TargetSummary = m.summaries[*e.Target]
			}
			out[i].Interactions.Comments = m.countReplies(e.ID)
		}
	}

	return out, total, nil
}

// nolint: gocyclo
func (m *memStorage) match(e *entities.Event, p *storage.ListEventsParams) bool {
	if e.Deleted {
		return false
	}

	if p.Source == storage.CommunitySource && e.Visibility != entities.PublicVisibility {
		return false
	}

	if len(p.ActorIDs) > 0 && !containsString(p.ActorIDs, e.Actor.ID) {
		return false
	}

	if p.Subject != nil && (e.Subject == nil || *e.Subject != *p.Subject) {
		return false
	}

	if p.Profile != nil {
		own := e.Actor.ID == *p.Profile
		about := e.Subject != nil && *e.Subject == entities.ProfileRef(*p.Profile)
		if !own && !about {
			return false
		}
	}

	if len(p.Visibility) > 0 && !containsVisibility(p.Visibility, e.Visibility) {
		return false
	}

	if p.VisibleTo != nil && e.Visibility != entities.PublicVisibility && e.Actor.ID != *p.VisibleTo {
		return false
	}

	if len(p.EventTypes) > 0 && !containsType(p.EventTypes, e.Type) {
		return false
	}

	if p.From != nil && e.Timestamp.Before(*p.From) {
		return false
	}

	if p.To != nil && e.Timestamp.After(*p.To) {
		return false
	}

	if len(p.Tags) > 0 {
		found := false
		for _, t := range e.Tags {
			found = found || containsString(p.Tags, t)
		}
		if !found {
			return false
		}
	}

	if len(p.Subjects) > 0 && (e.Subject == nil || !containsString(p.Subjects, e.Subject.ID)) {
		return false
	}

	if p.ParentID != nil && (e.ParentID == nil || *e.ParentID != *p.ParentID) {
		return false
	}

	if p.Search != nil {
		s := strings.ToLower(*p.Search)
		if !strings.Contains(strings.ToLower(e.Title), s) && !strings.Contains(strings.ToLower(e.Description), s) {
			return false
		}
	}

	return true
}

func (m *memStorage) countReplies(id string) uint32 {
	var c uint32
	for _, e := range m.events {
		if e.ParentID != nil && *e.ParentID == id && !e.Deleted {
			c++
		}
	}
	return c
}

func (m *memStorage) GetFollowees(_ context.Context, follower string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.follows[follower], nil
}

func (m *memStorage) getSummaries(kinds []entities.RefKind, id []string) []*entities.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++

	var out []*entities.Summary
	for _, v := range id {
		for _, k := range kinds {
			if s, ok := m.summaries[entities.Ref{Kind: k, ID: v}]; ok {
				c := *s
				out = append(out, &c)
				break
			}
		}
	}

	return out
}

func (m *memStorage) GetProfiles(_ context.Context, id ...string) ([]*entities.Summary, error) {
	return m.getSummaries([]entities.RefKind{entities.UserKind, entities.ProfileKind}, id), nil
}

func (m *memStorage) GetProjects(_ context.Context, id ...string) ([]*entities.Summary, error) {
	return m.getSummaries([]entities.RefKind{entities.ProjectKind}, id), nil
}

func (m *memStorage) GetOrganizations(_ context.Context, id ...string) ([]*entities.Summary, error) {
	return m.getSummaries([]entities.RefKind{entities.OrganizationKind}, id), nil
}

func (m *memStorage) RefreshViews(_ context.Context) error {
	return nil
}
