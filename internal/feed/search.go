package feed

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

func (s *service) SearchEvents(ctx context.Context, query string, limit, offset int) ([]*entities.DisplayEvent, uint64, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLength {
		return nil, 0, fmt.Errorf("%w: query should be at least %d characters", ErrInvalidRequest, minSearchQueryLength)
	}

	if offset < 0 {
		return nil, 0, fmt.Errorf("%w: negative offset", ErrInvalidRequest)
	}

	limit = normalizePage(PageRequest{Limit: limit}).Limit

	q := &Query{
		Feed: "search",
		Params: storage.ListEventsParams{
			Order:      storage.DescendingOrder,
			Limit:      uint16(limit),
			Offset:     uint64(offset),
			Visibility: []entities.Visibility{entities.PublicVisibility},
			Search:     &query,
		},
	}

	page := firstSuccess(ctx, q, []Strategy{
		storeStrategy{s: s.s, e: s.e, source: storage.CommunitySource},
		storeStrategy{s: s.s, e: s.e, source: storage.RawSource},
	})
	if page == nil {
		return []*entities.DisplayEvent{}, 0, nil
	}

	return page.Events, page.Total, nil
}
