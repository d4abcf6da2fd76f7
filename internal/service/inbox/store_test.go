package inbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/service/inbox"
	testlog "driverhub/internal/testutil"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

func twoNotifications() []domain.Notification {
	return []domain.Notification{
		{ID: "N1", Type: domain.TypeOrderReady, Title: "Order ready", CreatedAt: time.Now(), Read: false},
		{ID: "N2", Type: domain.TypeBatchAssigned, Title: "New batch", CreatedAt: time.Now().Add(-time.Hour), Read: true},
	}
}

func loadedStore(t *testing.T, gw *MockRemoteGateway) *inbox.Store {
	t.Helper()
	s := inbox.NewStore(gw, 50, nil, nil)
	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(twoNotifications(), nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestStore_Load_ReplacesCollection(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	got := s.List()
	require.Len(t, got, 2)
	require.Equal(t, "N1", got[0].ID)
	require.Equal(t, 1, s.UnreadCount())
}

func TestStore_Load_NormalizesUnknownTypes(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := inbox.NewStore(gw, 50, nil, nil)

	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).
		Return([]domain.Notification{{ID: "N1", Type: "promo_blast"}}, nil)
	require.NoError(t, s.Load(context.Background()))

	require.Equal(t, domain.TypeDefault, s.List()[0].Type)
}

func TestStore_Load_FailureRetainsPrevious(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(nil, errors.New("boom"))
	err := s.Load(context.Background())
	require.ErrorIs(t, err, apperr.ErrFetchFailed)

	require.Len(t, s.List(), 2, "previous collection must be retained on failure")
}

func TestStore_MarkRead_OptimisticNoRollback(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	rec := testlog.New()
	s := inbox.NewStore(gw, 50, rec.Logger(), nil)

	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(twoNotifications(), nil)
	require.NoError(t, s.Load(context.Background()))

	gw.EXPECT().MarkRead(gomock.Any(), "N1").Return(errors.New("server error"))

	// the remote failure is swallowed and the local flag is retained
	require.NoError(t, s.MarkRead(context.Background(), "N1"))
	require.Zero(t, s.UnreadCount())
	require.Equal(t, 1, rec.CountLevel("warn"))
}

func TestStore_MarkRead_IdempotentRemoteCall(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	gw.EXPECT().MarkRead(gomock.Any(), "N1").Return(nil).Times(1)

	require.NoError(t, s.MarkRead(context.Background(), "N1"))
	require.NoError(t, s.MarkRead(context.Background(), "N1"))

	// N2 was fetched already read; no remote call either
	require.NoError(t, s.MarkRead(context.Background(), "N2"))
}

func TestStore_MarkRead_UnknownID(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	require.ErrorIs(t, s.MarkRead(context.Background(), "N404"), apperr.ErrNotFound)
	require.Equal(t, 1, s.UnreadCount())
}

func TestStore_MarkRead_CountsSwallowedFailures(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	failures := NewMockcounter(ctrl)
	s := inbox.NewStore(gw, 50, nil, failures)

	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(twoNotifications(), nil)
	require.NoError(t, s.Load(context.Background()))

	gw.EXPECT().MarkRead(gomock.Any(), "N1").Return(errors.New("timeout"))
	failures.EXPECT().Inc().Times(1)

	require.NoError(t, s.MarkRead(context.Background(), "N1"))
}

func TestStore_MarkAllRead_Success(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	gw.EXPECT().MarkAllRead(gomock.Any()).Return(1, nil)

	require.NoError(t, s.MarkAllRead(context.Background()))
	require.Zero(t, s.UnreadCount())
}

func TestStore_MarkAllRead_FailureResynchronizes(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	s := loadedStore(t, gw)

	// the authoritative reload wins over the optimistic marks
	resynced := []domain.Notification{
		{ID: "N1", Type: domain.TypeOrderReady, Read: false},
		{ID: "N2", Type: domain.TypeBatchAssigned, Read: true},
		{ID: "N3", Type: domain.TypeOrderDelivered, Read: false},
	}
	gw.EXPECT().MarkAllRead(gomock.Any()).Return(0, errors.New("auth expired"))
	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(resynced, nil).Times(1)

	err := s.MarkAllRead(context.Background())
	require.ErrorIs(t, err, apperr.ErrMarkFailed)

	require.Len(t, s.List(), 3)
	require.Equal(t, 2, s.UnreadCount())
}

func TestStore_MarkAllRead_FailureAndResyncFailure(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	gw := NewMockRemoteGateway(ctrl)
	rec := testlog.New()
	s := inbox.NewStore(gw, 50, rec.Logger(), nil)

	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(twoNotifications(), nil)
	require.NoError(t, s.Load(context.Background()))

	gw.EXPECT().MarkAllRead(gomock.Any()).Return(0, errors.New("down"))
	gw.EXPECT().FetchNotifications(gomock.Any(), 50, 0).Return(nil, errors.New("still down"))

	err := s.MarkAllRead(context.Background())
	require.ErrorIs(t, err, apperr.ErrMarkFailed)

	// optimistic marks stand until a successful resync replaces them
	require.Zero(t, s.UnreadCount())
}
