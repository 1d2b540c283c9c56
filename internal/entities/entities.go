// Package entities contains main entities of service.
package entities

import (
	"time"
)

// EventType is a kind of timeline occurrence.
type EventType string

// nolint: gochecknoglobals
const (
	PostCreatedEvent        EventType = "post_created"
	PostSharedEvent         EventType = "post_shared"
	PostReplyEvent          EventType = "post_reply"
	PostQuoteEvent          EventType = "post_quote"
	ReactionAddedEvent      EventType = "reaction_added"
	DonationSentEvent       EventType = "donation_sent"
	DonationReceivedEvent   EventType = "donation_received"
	ProjectCreatedEvent     EventType = "project_created"
	ProjectUpdatedEvent     EventType = "project_updated"
	ProjectMilestoneEvent   EventType = "project_milestone"
	ProjectFundedEvent      EventType = "project_funded"
	ProfileUpdatedEvent     EventType = "profile_updated"
	UserFollowedEvent       EventType = "user_followed"
	OrganizationJoinedEvent EventType = "organization_joined"
	SystemAnnouncementEvent EventType = "system_announcement"
)

// EventTypes is the closed list of known event types.
var EventTypes = []EventType{
	PostCreatedEvent,
	PostSharedEvent,
	PostReplyEvent,
	PostQuoteEvent,
	ReactionAddedEvent,
	DonationSentEvent,
	DonationReceivedEvent,
	ProjectCreatedEvent,
	ProjectUpdatedEvent,
	ProjectMilestoneEvent,
	ProjectFundedEvent,
	ProfileUpdatedEvent,
	UserFollowedEvent,
	OrganizationJoinedEvent,
	SystemAnnouncementEvent,
}

// IsValid returns true if type is one of known event types.
func (t EventType) IsValid() bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Visibility ...
type Visibility string

const (
	// PublicVisibility ...
	PublicVisibility Visibility = "public"
	// FollowersVisibility ...
	FollowersVisibility Visibility = "followers"
	// PrivateVisibility ...
	PrivateVisibility Visibility = "private"
)

// IsValid ...
func (v Visibility) IsValid() bool {
	switch v {
	case PublicVisibility, FollowersVisibility, PrivateVisibility:
		return true
	default:
		return false
	}
}

// RefKind is a tag of polymorphic reference.
type RefKind string

const (
	// UserKind ...
	UserKind RefKind = "user"
	// ProfileKind ...
	ProfileKind RefKind = "profile"
	// ProjectKind ...
	ProjectKind RefKind = "project"
	// OrganizationKind ...
	OrganizationKind RefKind = "organization"
	// SystemKind ...
	SystemKind RefKind = "system"
)

// Ref is a polymorphic reference to an actor, a subject or a target of event.
type Ref struct {
	Kind RefKind
	ID   string
}

// UserRef ...
func UserRef(id string) Ref { return Ref{Kind: UserKind, ID: id} }

// ProfileRef ...
func ProfileRef(id string) Ref { return Ref{Kind: ProfileKind, ID: id} }

// ProjectRef ...
func ProjectRef(id string) Ref { return Ref{Kind: ProjectKind, ID: id} }

// OrganizationRef ...
func OrganizationRef(id string) Ref { return Ref{Kind: OrganizationKind, ID: id} }

// SystemRef ...
func SystemRef() Ref { return Ref{Kind: SystemKind} }

// IsZero returns true when kind or id is missing. System refs have no id.
func (r Ref) IsZero() bool {
	if r.Kind == SystemKind {
		return false
	}
	return r.Kind == "" || r.ID == ""
}

// String returns full form of reference (kind/id).
func (r Ref) String() string {
	return string(r.Kind) + "/" + r.ID
}

// NewRef returns nil when kind and id do not form a complete pair.
func NewRef(kind, id string) *Ref {
	r := Ref{Kind: RefKind(kind), ID: id}
	if r.IsZero() {
		return nil
	}
	return &r
}

// Event is a fact about something that happened.
type Event struct {
	ID      string
	Type    EventType
	Subtype string

	Actor   Ref
	Subject *Ref
	Target  *Ref

	Title       string
	Description string
	Content     string

	AmountSats *int64
	AmountBTC  *float64
	Quantity   *int64

	Visibility Visibility
	Timestamp  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	ParentID *string
	ThreadID *string

	Featured       bool
	Deleted        bool
	DeletedAt      *time.Time
	DeletionReason *string

	Metadata map[string]interface{}
	Tags     []string
}

// Summary is minimal display data of referenced entity.
type Summary struct {
	Kind   RefKind
	ID     string
	Name   string
	Avatar string
	URL    string
}

// Interactions contains social counters and flags of requester.
type Interactions struct {
	Likes    uint32
	Shares   uint32
	Comments uint32

	Liked     bool
	Shared    bool
	Commented bool
}

// DisplayEvent is an event with computed display attributes.
type DisplayEvent struct {
	Event

	ActorSummary   *Summary
	SubjectSummary *Summary
	TargetSummary  *Summary

	Icon            string
	Color           string
	TimeAgo         string
	IsRecent        bool
	FormattedAmount *string

	Interactions Interactions

	Replies    []*DisplayEvent
	ReplyCount uint32
}

// DateRange ...
type DateRange string

const (
	// TodayRange ...
	TodayRange DateRange = "today"
	// WeekRange ...
	WeekRange DateRange = "week"
	// MonthRange ...
	MonthRange DateRange = "month"
	// YearRange ...
	YearRange DateRange = "year"
	// AllRange ...
	AllRange DateRange = "all"
)

// IsValid ...
func (r DateRange) IsValid() bool {
	switch r {
	case TodayRange, WeekRange, MonthRange, YearRange, AllRange:
		return true
	default:
		return false
	}
}

// Bounds resolves range to absolute [from, to] relative to now. Nil bounds mean unbounded.
func (r DateRange) Bounds(now time.Time) (*time.Time, *time.Time) {
	var from time.Time

	switch r {
	case TodayRange:
		y, m, d := now.UTC().Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case WeekRange:
		from = now.AddDate(0, 0, -7)
	case MonthRange:
		from = now.AddDate(0, -1, 0)
	case YearRange:
		from = now.AddDate(-1, 0, 0)
	default:
		return nil, nil
	}

	return &from, &now
}

// Filters is a filter surface shared by all feeds.
type Filters struct {
	EventTypes []EventType
	DateRange  DateRange
	Visibility []Visibility
	Actors     []string
	Subjects   []string
	Tags       []string
}

// Pagination ...
type Pagination struct {
	Page    int
	Limit   int
	Total   uint64
	HasNext bool
	HasPrev bool
}

// FeedMetadata ...
type FeedMetadata struct {
	TotalEvents    uint64
	FeaturedEvents int
	LastUpdated    time.Time
}

// FeedResponse is a response envelope of every feed.
type FeedResponse struct {
	Events     []*DisplayEvent
	Pagination Pagination
	Filters    Filters
	Metadata   FeedMetadata
}
