package enricher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/resolver/mock"
	"github.com/Decentr-net/timeline/internal/storage"
)

var errTest = errors.New("test")

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestFormatAmount(t *testing.T) {
	tt := []struct {
		name string
		btc  *float64
		sats *int64
		out  string
		nil  bool
	}{
		{name: "btc", btc: float64p(0.001), out: "₿0.001000"},
		{name: "btc_wins", btc: float64p(1.5), sats: int64p(100), out: "₿1.500000"},
		{name: "sats", sats: int64p(1234567), out: "1,234,567 sats"},
		{name: "small_sats", sats: int64p(21), out: "21 sats"},
		{name: "none", nil: true},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			out := FormatAmount(tc.btc, tc.sats)
			if tc.nil {
				require.Nil(t, out)
				return
			}
			require.NotNil(t, out)
			require.Equal(t, tc.out, *out)
		})
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2021, 3, 20, 12, 0, 0, 0, time.UTC)

	tt := []struct {
		ago time.Duration
		out string
	}{
		{ago: 0, out: "Just now"},
		{ago: 59 * time.Second, out: "Just now"},
		{ago: -time.Hour, out: "Just now"},
		{ago: time.Minute, out: "1m ago"},
		{ago: 59 * time.Minute, out: "59m ago"},
		{ago: time.Hour, out: "1h ago"},
		{ago: 23*time.Hour + 59*time.Minute, out: "23h ago"},
		{ago: 24 * time.Hour, out: "1d ago"},
		{ago: 6 * 24 * time.Hour, out: "6d ago"},
		{ago: 7 * 24 * time.Hour, out: "3/13/2021"},
	}

	for _, tc := range tt {
		assert.Equal(t, tc.out, TimeAgo(now.Add(-tc.ago), now), tc.ago.String())
	}
}

func TestIsRecent(t *testing.T) {
	now := time.Now()

	require.True(t, IsRecent(now.Add(-23*time.Hour), now))
	require.False(t, IsRecent(now.Add(-24*time.Hour), now))
}

func TestStyleOf(t *testing.T) {
	for _, v := range entities.EventTypes {
		assert.NotEqual(t, DefaultStyle, StyleOf(v), v)
	}

	require.Equal(t, DefaultStyle, StyleOf("something_new"))
}

func TestEnricher_Enrich_Enriched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no calls are expected
	r := mock.NewMockResolver(ctrl)

	now := time.Date(2021, 3, 20, 12, 0, 0, 0, time.UTC)
	e := New(r, WithClock(func() time.Time { return now }))

	project := entities.ProjectRef("p1")
	rows := []*storage.EventRow{
		{
			Event: entities.Event{
				ID:         "1",
				Type:       entities.DonationReceivedEvent,
				Actor:      entities.UserRef("u1"),
				Subject:    &project,
				AmountSats: int64p(5000),
				Timestamp:  now.Add(-2 * time.Hour),
			},
			ActorSummary:   &entities.Summary{Kind: entities.UserKind, ID: "u1", Name: "Alice"},
			SubjectSummary: &entities.Summary{Kind: entities.ProjectKind, ID: "p1", Name: "Solar"},
			Interactions:   entities.Interactions{Likes: 3, Liked: true},
		},
		{
			Event: entities.Event{
				ID:        "2",
				Type:      entities.SystemAnnouncementEvent,
				Actor:     entities.SystemRef(),
				Timestamp: now.Add(-48 * time.Hour),
			},
		},
	}

	out := e.Enrich(context.Background(), rows, storage.EnrichedSource)
	require.Len(t, out, 2)

	assert.Equal(t, "Alice", out[0].ActorSummary.Name)
	assert.Equal(t, "Solar", out[0].SubjectSummary.Name)
	assert.Nil(t, out[0].TargetSummary)
	assert.Equal(t, "2h ago", out[0].TimeAgo)
	assert.True(t, out[0].IsRecent)
	assert.Equal(t, "5,000 sats", *out[0].FormattedAmount)
	assert.Equal(t, "bitcoin", out[0].Icon)
	assert.Equal(t, "orange", out[0].Color)
	assert.EqualValues(t, 3, out[0].Interactions.Likes)
	assert.True(t, out[0].Interactions.Liked)

	assert.Equal(t, "System", out[1].ActorSummary.Name)
	assert.Equal(t, "2d ago", out[1].TimeAgo)
	assert.False(t, out[1].IsRecent)
	assert.Nil(t, out[1].FormattedAmount)
}

func TestEnricher_Enrich_Raw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := mock.NewMockResolver(ctrl)

	now := time.Date(2021, 3, 20, 12, 0, 0, 0, time.UTC)
	e := New(r, WithClock(func() time.Time { return now }))

	project := entities.ProjectRef("p1")
	target := entities.UserRef("u2")
	rows := []*storage.EventRow{
		{Event: entities.Event{ID: "1", Type: entities.PostCreatedEvent, Actor: entities.UserRef("u1"), Subject: &project, Timestamp: now}},
		{Event: entities.Event{ID: "2", Type: entities.UserFollowedEvent, Actor: entities.UserRef("u1"), Target: &target, Timestamp: now}},
		{Event: entities.Event{ID: "3", Type: entities.ProjectUpdatedEvent, Actor: entities.UserRef("u2"), Subject: &project, Timestamp: now}},
	}

	// every distinct reference is resolved once
	r.EXPECT().Resolve(gomock.Any(), entities.UserRef("u1")).Return(&entities.Summary{ID: "u1", Name: "Alice"}, nil).Times(1)
	r.EXPECT().Resolve(gomock.Any(), entities.ProjectRef("p1")).Return(&entities.Summary{ID: "p1", Name: "Solar"}, nil).Times(1)
	r.EXPECT().Resolve(gomock.Any(), entities.UserRef("u2")).Return(nil, errTest).Times(1)

	out := e.Enrich(context.Background(), rows, storage.RawSource)
	require.Len(t, out, 3)

	assert.Equal(t, "Alice", out[0].ActorSummary.Name)
	assert.Equal(t, "Solar", out[0].SubjectSummary.Name)

	assert.Equal(t, "Alice", out[1].ActorSummary.Name)
	assert.Nil(t, out[1].TargetSummary)

	assert.Nil(t, out[2].ActorSummary)
	assert.Equal(t, "Solar", out[2].SubjectSummary.Name)
	assert.Equal(t, "Just now", out[2].TimeAgo)
}

func TestEnricher_Enrich_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2021, 3, 20, 12, 0, 0, 0, time.UTC)
	e := New(mock.NewMockResolver(ctrl), WithClock(func() time.Time { return now }))

	row := &storage.EventRow{Event: entities.Event{
		ID:        "1",
		Type:      entities.ProjectFundedEvent,
		AmountBTC: float64p(0.25),
		Timestamp: now.Add(-3 * time.Minute),
	}}

	a := e.Enrich(context.Background(), []*storage.EventRow{row}, storage.EnrichedSource)
	b := e.Enrich(context.Background(), []*storage.EventRow{row}, storage.EnrichedSource)

	require.Equal(t, a, b)
	require.Equal(t, "₿0.250000", *a[0].FormattedAmount)
	require.Equal(t, "3m ago", a[0].TimeAgo)
}
