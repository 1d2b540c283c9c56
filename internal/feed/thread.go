package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

func (s *service) GetReplies(ctx context.Context, eventID string, limit int) ([]*entities.DisplayEvent, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, fmt.Errorf("%w: invalid event id", ErrInvalidRequest)
	}

	limit = normalizePage(PageRequest{Limit: limit}).Limit

	replies, _ := s.replies(ctx, eventID, limit, 0)

	return replies, nil
}

// replies builds reply tree of parent. Depth counter bounds recursion even if parent chain has a cycle.
func (s *service) replies(ctx context.Context, parentID string, limit, depth int) ([]*entities.DisplayEvent, uint32) {
	if depth >= MaxReplyDepth {
		return []*entities.DisplayEvent{}, 0
	}

	q := &Query{
		Feed: "replies",
		Params: storage.ListEventsParams{
			Order:      storage.AscendingOrder,
			Limit:      uint16(limit),
			ParentID:   &parentID,
			Visibility: []entities.Visibility{entities.PublicVisibility},
		},
	}

	page := firstSuccess(ctx, q, []Strategy{
		storeStrategy{s: s.s, e: s.e, source: storage.EnrichedSource},
		storeStrategy{s: s.s, e: s.e, source: storage.RawSource},
	})
	if page == nil {
		return []*entities.DisplayEvent{}, 0
	}

	for _, v := range page.Events {
		if depth+1 >= MaxReplyDepth {
			// children aren't fetched, counter of joined view is the best known value
			v.ReplyCount = v.Interactions.Comments
			continue
		}

		v.Replies, v.ReplyCount = s.replies(ctx, v.ID, NestedRepliesLimit, depth+1)
	}

	return page.Events, uint32(page.Total)
}
