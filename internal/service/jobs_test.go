package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
	mock_service "github.com/langchou/garagebook/internal/service/mocks"
)

func TestJobService_MarkMissedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := mock_service.NewMockMaintenanceStore(ctrl)
	pub := &recordingPublisher{}
	svc := NewJobService(zap.NewNop(), requests, pub)
	svc.now = func() time.Time { return time.Date(2024, time.January, 10, 0, 5, 0, 0, time.UTC) }

	requests.EXPECT().
		ListOverdue(gomock.Any(), models.NewDate(2024, time.January, 10)).
		Return([]models.MaintenanceRequest{
			{ID: 1, Status: models.StatusScheduled},
			{ID: 2, Status: models.StatusScheduled},
		}, nil)
	requests.EXPECT().UpdateStatus(gomock.Any(), int64(1), models.StatusScheduled, models.StatusMissed).Return(nil)
	requests.EXPECT().UpdateStatus(gomock.Any(), int64(2), models.StatusScheduled, models.StatusMissed).Return(repository.ErrStatusChanged)

	marked, err := svc.MarkMissedRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, marked)
	assert.Equal(t, []string{events.MaintenanceTransitioned}, pub.types())
}

func TestJobService_MarkMissedRequestsStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := mock_service.NewMockMaintenanceStore(ctrl)
	svc := NewJobService(zap.NewNop(), requests, events.Nop{})

	requests.EXPECT().ListOverdue(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.MarkMissedRequests(context.Background())
	assert.Error(t, err)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	err := s.Schedule("not a cron spec", "noop", func(context.Context) error { return nil })
	assert.Error(t, err)

	require.NoError(t, s.Schedule("@every 1h", "noop", func(context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
