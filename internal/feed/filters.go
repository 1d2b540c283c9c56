package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

// normalizePage applies defaults and caps to page request.
func normalizePage(p PageRequest) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}

	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}

// normalizeFilters validates filters and returns them in canonical form.
func normalizeFilters(f entities.Filters) (entities.Filters, error) {
	out := entities.Filters{
		DateRange: f.DateRange,
		Actors:    uniqueStrings(f.Actors),
		Subjects:  uniqueStrings(f.Subjects),
		Tags:      uniqueStrings(f.Tags),
	}

	if out.DateRange == "" {
		out.DateRange = entities.AllRange
	}

	if !out.DateRange.IsValid() {
		return entities.Filters{}, fmt.Errorf("%w: invalid date range %q", ErrInvalidRequest, f.DateRange)
	}

	for _, v := range f.EventTypes {
		if !v.IsValid() {
			return entities.Filters{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidRequest, v)
		}
		if !containsType(out.EventTypes, v) {
			out.EventTypes = append(out.EventTypes, v)
		}
	}

	for _, v := range f.Visibility {
		if !v.IsValid() {
			return entities.Filters{}, fmt.Errorf("%w: unknown visibility %q", ErrInvalidRequest, v)
		}
		if !containsVisibility(out.Visibility, v) {
			out.Visibility = append(out.Visibility, v)
		}
	}

	return out, nil
}

// baseParams translates filters and page into storage params shared by every feed.
func baseParams(f entities.Filters, p PageRequest, now time.Time) storage.ListEventsParams {
	from, to := f.DateRange.Bounds(now)

	return storage.ListEventsParams{
		Order:      storage.DescendingOrder,
		Limit:      uint16(p.Limit),
		Offset:     uint64((p.Page - 1) * p.Limit),
		ActorIDs:   f.Actors,
		Visibility: f.Visibility,
		EventTypes: f.EventTypes,
		From:       from,
		To:         to,
		Tags:       f.Tags,
		Subjects:   f.Subjects,
	}
}

// cacheKey builds a stable key of feed request.
func cacheKey(feed string, owner []string, f entities.Filters, p PageRequest) string {
	types := make([]string, len(f.EventTypes))
	for i, v := range f.EventTypes {
		types[i] = string(v)
	}

	vis := make([]string, len(f.Visibility))
	for i, v := range f.Visibility {
		vis[i] = string(v)
	}

	return fmt.Sprintf("feed:%s:%s:%d:%d:%s:%s:%s:%s:%s:%s",
		feed,
		strings.Join(owner, ","),
		p.Page, p.Limit,
		f.DateRange,
		sortedJoin(types),
		sortedJoin(vis),
		sortedJoin(f.Actors),
		sortedJoin(f.Subjects),
		sortedJoin(f.Tags),
	)
}

// intersectVisibility returns allowed visibilities among requested ones. Empty request means everything allowed.
func intersectVisibility(requested []entities.Visibility, allowed ...entities.Visibility) []entities.Visibility {
	if len(requested) == 0 {
		return allowed
	}

	out := make([]entities.Visibility, 0, len(allowed))
	for _, v := range requested {
		if containsVisibility(allowed, v) {
			out = append(out, v)
		}
	}

	return out
}

// restrictActors narrows feed's actors by actors filter. Nil result means no restriction.
func restrictActors(feed, filter []string) []string {
	if len(filter) == 0 {
		return feed
	}

	m := make(map[string]struct{}, len(filter))
	for _, v := range filter {
		m[v] = struct{}{}
	}

	out := make([]string, 0, len(feed))
	for _, v := range feed {
		if _, ok := m[v]; ok {
			out = append(out, v)
		}
	}

	return out
}

func sortedJoin(s []string) string {
	c := append([]string(nil), s...)
	sort.Strings(c)
	return strings.Join(c, ",")
}

func uniqueStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func containsType(s []entities.EventType, v entities.EventType) bool {
	for _, t := range s {
		if t == v {
			return true
		}
	}
	return false
}

func containsVisibility(s []entities.Visibility, v entities.Visibility) bool {
	for _, t := range s {
		if t == v {
			return true
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, t := range s {
		if t == v {
			return true
		}
	}
	return false
}
