package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateRange_Bounds(t *testing.T) {
	now := time.Date(2021, 3, 15, 18, 30, 0, 0, time.UTC)

	tt := []struct {
		r    DateRange
		from *time.Time
	}{
		{r: TodayRange, from: timePtr(time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC))},
		{r: WeekRange, from: timePtr(time.Date(2021, 3, 8, 18, 30, 0, 0, time.UTC))},
		{r: MonthRange, from: timePtr(time.Date(2021, 2, 15, 18, 30, 0, 0, time.UTC))},
		{r: YearRange, from: timePtr(time.Date(2020, 3, 15, 18, 30, 0, 0, time.UTC))},
		{r: AllRange},
		{r: ""},
	}

	for _, tc := range tt {
		from, to := tc.r.Bounds(now)

		if tc.from == nil {
			require.Nil(t, from, tc.r)
			require.Nil(t, to, tc.r)
			continue
		}

		require.Equal(t, *tc.from, *from, tc.r)
		require.Equal(t, now, *to, tc.r)
	}
}

func TestNewRef(t *testing.T) {
	require.Nil(t, NewRef("", ""))
	require.Nil(t, NewRef("project", ""))
	require.Nil(t, NewRef("", "id"))

	require.Equal(t, &Ref{Kind: ProjectKind, ID: "P"}, NewRef("project", "P"))
	require.Equal(t, &Ref{Kind: SystemKind}, NewRef("system", ""))
}

func TestRef_String(t *testing.T) {
	require.Equal(t, "user/alice", UserRef("alice").String())
	require.Equal(t, "organization/O", OrganizationRef("O").String())
}

func TestIsValid(t *testing.T) {
	for _, v := range EventTypes {
		require.True(t, v.IsValid(), v)
	}
	require.False(t, EventType("post_deleted").IsValid())

	require.True(t, FollowersVisibility.IsValid())
	require.False(t, Visibility("secret").IsValid())

	require.True(t, AllRange.IsValid())
	require.False(t, DateRange("").IsValid())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
