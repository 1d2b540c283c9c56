package refresher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/timeline/internal/storage/mock"
)

func TestRefresher_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockStorage(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	s.EXPECT().RefreshViews(gomock.Any()).DoAndReturn(func(_ context.Context) error {
		calls++
		if calls == 3 {
			cancel()
		}
		return nil
	}).MinTimes(3)

	r := New(s, time.Millisecond)

	require.NoError(t, r.Run(ctx))

	m, err := r.Ping(context.Background())
	require.NoError(t, err)
	require.False(t, m.(Status).LastRefresh.IsZero())
	require.Equal(t, "views", r.Name())
}

func TestRefresher_Ping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockStorage(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		s.EXPECT().RefreshViews(gomock.Any()).Return(nil),
		s.EXPECT().RefreshViews(gomock.Any()).DoAndReturn(func(_ context.Context) error {
			cancel()
			return errors.New("view is locked")
		}),
	)

	r := New(s, time.Millisecond)

	require.NoError(t, r.Run(ctx))

	m, err := r.Ping(context.Background())
	require.EqualError(t, err, "view is locked")
	// time of the last successful refresh is kept
	require.False(t, m.(Status).LastRefresh.IsZero())
}
