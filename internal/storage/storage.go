// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Decentr-net/timeline/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// Storage provides methods for interacting with database.
type Storage interface {
	// ListEvents returns one page of events and total count of events matching params.
	ListEvents(ctx context.Context, p *ListEventsParams) ([]*EventRow, uint64, error)
	// GetFollowees returns addresses of users followed by follower.
	GetFollowees(ctx context.Context, follower string) ([]string, error)

	GetProfiles(ctx context.Context, id ...string) ([]*entities.Summary, error)
	GetProjects(ctx context.Context, id ...string) ([]*entities.Summary, error)
	GetOrganizations(ctx context.Context, id ...string) ([]*entities.Summary, error)

	RefreshViews(ctx context.Context) error
}

// Source is a table or view events are read from.
type Source string

const (
	// RawSource is the event table itself. Rows have no joined data.
	RawSource Source = "raw"
	// EnrichedSource is the pre-joined view with summaries and counters.
	EnrichedSource Source = "enriched"
	// CommunitySource is the deduplicated public view.
	CommunitySource Source = "community"
)

// Enriched returns true if rows read from source carry joined data.
func (s Source) Enriched() bool {
	return s == EnrichedSource || s == CommunitySource
}

// OrderType ...
type OrderType string

const (
	// AscendingOrder ...
	AscendingOrder OrderType = "asc"
	// DescendingOrder ...
	DescendingOrder OrderType = "desc"
)

// ListEventsParams ...
type ListEventsParams struct {
	Source Source
	Order  OrderType
	Limit  uint16
	Offset uint64

	ActorIDs []string
	Subject  *entities.Ref
	// Profile filters events where actor is profile or subject is profile.
	Profile *string
	// Visibility is allow-list of visibilities.
	Visibility []entities.Visibility
	// VisibleTo limits events to public ones and ones of the given actor.
	VisibleTo  *string
	EventTypes []entities.EventType
	From       *time.Time
	To         *time.Time
	Tags       []string
	Subjects   []string
	ParentID   *string
	Search     *string

	// Viewer is used to compute liked/shared/commented flags.
	Viewer *string
}

// EventRow is an event optionally joined with summaries and counters.
type EventRow struct {
	entities.Event

	ActorSummary   *entities.Summary
	SubjectSummary *entities.Summary
	TargetSummary  *entities.Summary

	Interactions entities.Interactions
}
