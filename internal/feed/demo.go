package feed

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Decentr-net/timeline/internal/enricher"
	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

// DemoFixtures returns offline community events relative to now.
func DemoFixtures(now time.Time) []*storage.EventRow {
	sats := int64(250000)
	btc := 0.0125
	project := entities.ProjectRef("demo-project")

	return []*storage.EventRow{
		{
			Event: entities.Event{
				ID:          "00000000-0000-4000-8000-000000000003",
				Type:        entities.ProjectMilestoneEvent,
				Actor:       entities.UserRef("demo-alice"),
				Subject:     &project,
				Title:       "Community garden reached its first milestone",
				Description: "Seeds are planted and the irrigation is running.",
				Visibility:  entities.PublicVisibility,
				Timestamp:   now.Add(-2 * time.Hour),
				Featured:    true,
				Tags:        []string{"garden", "milestone"},
			},
			ActorSummary:   &entities.Summary{Kind: entities.UserKind, ID: "demo-alice", Name: "Alice", URL: "/profiles/demo-alice"},
			SubjectSummary: &entities.Summary{Kind: entities.ProjectKind, ID: "demo-project", Name: "Community garden", URL: "/projects/demo-project"},
			Interactions:   entities.Interactions{Likes: 12, Comments: 3},
		},
		{
			Event: entities.Event{
				ID:          "00000000-0000-4000-8000-000000000002",
				Type:        entities.DonationReceivedEvent,
				Actor:       entities.UserRef("demo-bob"),
				Subject:     &project,
				Title:       "New donation",
				Description: "Bob supported the community garden.",
				AmountSats:  &sats,
				Visibility:  entities.PublicVisibility,
				Timestamp:   now.Add(-26 * time.Hour),
				Tags:        []string{"donation"},
			},
			ActorSummary:   &entities.Summary{Kind: entities.UserKind, ID: "demo-bob", Name: "Bob", URL: "/profiles/demo-bob"},
			SubjectSummary: &entities.Summary{Kind: entities.ProjectKind, ID: "demo-project", Name: "Community garden", URL: "/projects/demo-project"},
			Interactions:   entities.Interactions{Likes: 4},
		},
		{
			Event: entities.Event{
				ID:          "00000000-0000-4000-8000-000000000001",
				Type:        entities.ProjectFundedEvent,
				Actor:       entities.SystemRef(),
				Subject:     &project,
				Title:       "Funding goal reached",
				Description: "The community garden is fully funded.",
				AmountBTC:   &btc,
				Visibility:  entities.PublicVisibility,
				Timestamp:   now.Add(-72 * time.Hour),
				Tags:        []string{"funding"},
			},
			SubjectSummary: &entities.Summary{Kind: entities.ProjectKind, ID: "demo-project", Name: "Community garden", URL: "/projects/demo-project"},
		},
	}
}

// demoStrategy serves fixtures when storage is unreachable.
type demoStrategy struct {
	e *enricher.Enricher
}

func (t demoStrategy) Name() string {
	return "demo"
}

func (t demoStrategy) Fetch(ctx context.Context, q *Query) (*Page, error) {
	p := q.Params

	var rows []*storage.EventRow
	for _, v := range DemoFixtures(t.e.Now()) {
		if matchesDemo(v, &p) {
			rows = append(rows, v)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})

	total := uint64(len(rows))

	if p.Offset >= total {
		rows = nil
	} else {
		rows = rows[p.Offset:]
		if len(rows) > int(p.Limit) {
			rows = rows[:p.Limit]
		}
	}

	return &Page{
		Events: t.e.Enrich(ctx, rows, storage.EnrichedSource),
		Total:  total,
	}, nil
}

// nolint: gocyclo
func matchesDemo(v *storage.EventRow, p *storage.ListEventsParams) bool {
	if len(p.ActorIDs) > 0 && !containsString(p.ActorIDs, v.Actor.ID) {
		return false
	}

	if p.Subject != nil && (v.Subject == nil || *v.Subject != *p.Subject) {
		return false
	}

	if len(p.Subjects) > 0 && (v.Subject == nil || !containsString(p.Subjects, v.Subject.ID)) {
		return false
	}

	if len(p.Visibility) > 0 && !containsVisibility(p.Visibility, v.Visibility) {
		return false
	}

	if len(p.EventTypes) > 0 && !containsType(p.EventTypes, v.Type) {
		return false
	}

	if p.From != nil && v.Timestamp.Before(*p.From) {
		return false
	}

	if p.To != nil && v.Timestamp.After(*p.To) {
		return false
	}

	if len(p.Tags) > 0 {
		found := false
		for _, t := range v.Tags {
			found = found || containsString(p.Tags, t)
		}
		if !found {
			return false
		}
	}

	if p.Search != nil {
		s := strings.ToLower(*p.Search)
		if !strings.Contains(strings.ToLower(v.Title), s) && !strings.Contains(strings.ToLower(v.Description), s) {
			return false
		}
	}

	return true
}
