package server

import (
	"github.com/Decentr-net/timeline/internal/entities"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// FeedResponse ...
// swagger:model
type FeedResponse struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
	Filters    Filters    `json:"filters"`
	Metadata   Metadata   `json:"metadata"`
}

// RepliesResponse ...
// swagger:model
type RepliesResponse struct {
	Replies []Event `json:"replies"`
}

// SearchResponse ...
// swagger:model
type SearchResponse struct {
	Events []Event `json:"events"`
	// Total count of matched events.
	Total uint64 `json:"total"`
}

// Ref is a reference to an actor, a subject or a target.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Summary ...
type Summary struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Interactions ...
type Interactions struct {
	Likes     uint32 `json:"likes"`
	Shares    uint32 `json:"shares"`
	Comments  uint32 `json:"comments"`
	Liked     bool   `json:"liked"`
	Shared    bool   `json:"shared"`
	Commented bool   `json:"commented"`
}

// Event ...
type Event struct {
	ID          string                 `json:"id"`
	Type        entities.EventType     `json:"type"`
	Subtype     string                 `json:"subtype,omitempty"`
	Actor       Ref                    `json:"actor"`
	Subject     *Ref                   `json:"subject,omitempty"`
	Target      *Ref                   `json:"target,omitempty"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Content     string                 `json:"content,omitempty"`
	AmountSats  *int64                 `json:"amountSats,omitempty"`
	AmountBTC   *float64               `json:"amountBtc,omitempty"`
	Quantity    *int64                 `json:"quantity,omitempty"`
	Visibility  entities.Visibility    `json:"visibility"`
	Timestamp   uint64                 `json:"timestamp"`
	ParentID    *string                `json:"parentId,omitempty"`
	ThreadID    *string                `json:"threadId,omitempty"`
	IsFeatured  bool                   `json:"isFeatured"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Tags        []string               `json:"tags,omitempty"`

	ActorSummary    *Summary     `json:"actorSummary,omitempty"`
	SubjectSummary  *Summary     `json:"subjectSummary,omitempty"`
	TargetSummary   *Summary     `json:"targetSummary,omitempty"`
	Icon            string       `json:"icon"`
	Color           string       `json:"color"`
	TimeAgo         string       `json:"timeAgo"`
	IsRecent        bool         `json:"isRecent"`
	FormattedAmount *string      `json:"formattedAmount,omitempty"`
	Interactions    Interactions `json:"interactions"`
	Replies         []Event      `json:"replies,omitempty"`
	ReplyCount      uint32       `json:"replyCount"`
}

// Pagination ...
type Pagination struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Total   uint64 `json:"total"`
	HasNext bool   `json:"hasNext"`
	HasPrev bool   `json:"hasPrev"`
}

// Filters ...
type Filters struct {
	EventTypes []entities.EventType  `json:"eventTypes,omitempty"`
	DateRange  entities.DateRange    `json:"dateRange"`
	Visibility []entities.Visibility `json:"visibility,omitempty"`
	Actors     []string              `json:"actors,omitempty"`
	Subjects   []string              `json:"subjects,omitempty"`
	Tags       []string              `json:"tags,omitempty"`
}

// Metadata ...
type Metadata struct {
	TotalEvents    uint64 `json:"totalEvents"`
	FeaturedEvents int    `json:"featuredEvents"`
	LastUpdated    uint64 `json:"lastUpdated"`
}

func toAPIRef(r *entities.Ref) *Ref {
	if r == nil {
		return nil
	}

	return &Ref{
		Type: string(r.Kind),
		ID:   r.ID,
	}
}

func toAPISummary(s *entities.Summary) *Summary {
	if s == nil {
		return nil
	}

	return &Summary{
		Type:   string(s.Kind),
		ID:     s.ID,
		Name:   s.Name,
		Avatar: s.Avatar,
		URL:    s.URL,
	}
}

func toAPIEvents(events []*entities.DisplayEvent) []Event {
	out := make([]Event, len(events))
	for i, v := range events {
		out[i] = toAPIEvent(v)
	}
	return out
}

func toAPIEvent(e *entities.DisplayEvent) Event {
	out := Event{
		ID:          e.ID,
		Type:        e.Type,
		Subtype:     e.Subtype,
		Actor:       *toAPIRef(&e.Actor),
		Subject:     toAPIRef(e.Subject),
		Target:      toAPIRef(e.Target),
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		AmountSats:  e.AmountSats,
		AmountBTC:   e.AmountBTC,
		Quantity:    e.Quantity,
		Visibility:  e.Visibility,
		Timestamp:   uint64(e.Timestamp.Unix()),
		ParentID:    e.ParentID,
		ThreadID:    e.ThreadID,
		IsFeatured:  e.Featured,
		Metadata:    e.Metadata,
		Tags:        e.Tags,

		ActorSummary:    toAPISummary(e.ActorSummary),
		SubjectSummary:  toAPISummary(e.SubjectSummary),
		TargetSummary:   toAPISummary(e.TargetSummary),
		Icon:            e.Icon,
		Color:           e.Color,
		TimeAgo:         e.TimeAgo,
		IsRecent:        e.IsRecent,
		FormattedAmount: e.FormattedAmount,
		Interactions:    Interactions(e.Interactions),
		ReplyCount:      e.ReplyCount,
	}

	if len(e.Replies) > 0 {
		out.Replies = toAPIEvents(e.Replies)
	}

	return out
}

func toAPIFeedResponse(r *entities.FeedResponse) FeedResponse {
	return FeedResponse{
		Events:     toAPIEvents(r.Events),
		Pagination: Pagination(r.Pagination),
		Filters:    Filters(r.Filters),
		Metadata: Metadata{
			TotalEvents:    r.Metadata.TotalEvents,
			FeaturedEvents: r.Metadata.FeaturedEvents,
			LastUpdated:    uint64(r.Metadata.LastUpdated.Unix()),
		},
	}
}
