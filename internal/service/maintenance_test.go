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
	"github.com/langchou/garagebook/internal/state"
)

func TestMaintenanceService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := mock_service.NewMockMaintenanceStore(ctrl)
	pub := &recordingPublisher{}
	svc := NewMaintenanceService(zap.NewNop(), nil, requests, pub)

	date := models.NewDate(2024, time.January, 5)
	valid := models.MaintenanceInput{GarageID: 1, CarID: 2, ScheduledDate: date, ServiceType: " Oil change "}

	tests := []struct {
		name       string
		input      models.MaintenanceInput
		setupMocks func()
		wantErr    error
		validation bool
	}{
		{
			name:  "successful creation",
			input: valid,
			setupMocks: func() {
				requests.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *models.MaintenanceRequest) error {
						assert.Equal(t, " Oil change ", req.ServiceType)
						assert.Equal(t, date, req.ScheduledDate)
						req.ID = 10
						req.Status = models.StatusScheduled
						return nil
					})
			},
		},
		{
			name:       "missing date",
			input:      models.MaintenanceInput{GarageID: 1, CarID: 2, ServiceType: "Oil change"},
			setupMocks: func() {},
			validation: true,
		},
		{
			name:       "blank service type",
			input:      models.MaintenanceInput{GarageID: 1, CarID: 2, ScheduledDate: date, ServiceType: " "},
			setupMocks: func() {},
			validation: true,
		},
		{
			name:  "no capacity left",
			input: valid,
			setupMocks: func() {
				requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrNoCapacity)
			},
			wantErr: repository.ErrConflict,
		},
		{
			name:  "unknown car",
			input: valid,
			setupMocks: func() {
				requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrCarNotFound)
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			req, err := svc.Create(context.Background(), tt.input)
			switch {
			case tt.validation:
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(10), req.ID)
				assert.Equal(t, models.StatusScheduled, req.Status)
			}
		})
	}

	assert.Equal(t, []string{events.MaintenanceCreated}, pub.types())
}

func TestMaintenanceService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := mock_service.NewMockMaintenanceStore(ctrl)
	svc := NewMaintenanceService(zap.NewNop(), nil, requests, events.Nop{})

	requests.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.MaintenanceRequest) error {
			assert.Equal(t, int64(3), req.ID)
			req.Status = models.StatusInProgress
			return nil
		})

	req, err := svc.Update(context.Background(), 3, models.MaintenanceInput{
		GarageID: 1, CarID: 2, ScheduledDate: models.NewDate(2024, time.March, 1), ServiceType: "Tyres",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, req.Status)
}

func TestMaintenanceService_ListRejectsInvertedRange(t *testing.T) {
	svc := NewMaintenanceService(zap.NewNop(), nil, nil, events.Nop{})

	start := models.NewDate(2024, time.February, 1)
	end := models.NewDate(2024, time.January, 1)
	_, err := svc.List(context.Background(), models.MaintenanceFilter{StartDate: &start, EndDate: &end})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestMaintenanceService_Transition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := mock_service.NewMockMaintenanceStore(ctrl)
	pub := &recordingPublisher{}
	svc := NewMaintenanceService(zap.NewNop(), nil, requests, pub)

	t.Run("start scheduled request", func(t *testing.T) {
		requests.EXPECT().GetByID(gomock.Any(), int64(1)).
			Return(&models.MaintenanceRequest{ID: 1, Status: models.StatusScheduled}, nil)
		requests.EXPECT().UpdateStatus(gomock.Any(), int64(1), models.StatusScheduled, models.StatusInProgress).
			Return(nil)

		result, err := svc.Transition(context.Background(), 1, "start")
		require.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, result.From)
		assert.Equal(t, models.StatusInProgress, result.To)
		assert.Equal(t, models.StatusInProgress, result.Request.Status)
		assert.Equal(t, []string{state.EventCancel, state.EventComplete}, result.AvailableEvents)
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		requests.EXPECT().GetByID(gomock.Any(), int64(2)).
			Return(&models.MaintenanceRequest{ID: 2, Status: models.StatusCompleted}, nil)

		_, err := svc.Transition(context.Background(), 2, "cancel")
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.Transition(context.Background(), 3, "reopen")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("concurrent change", func(t *testing.T) {
		requests.EXPECT().GetByID(gomock.Any(), int64(4)).
			Return(&models.MaintenanceRequest{ID: 4, Status: models.StatusScheduled}, nil)
		requests.EXPECT().UpdateStatus(gomock.Any(), int64(4), models.StatusScheduled, models.StatusCancelled).
			Return(repository.ErrStatusChanged)

		_, err := svc.Transition(context.Background(), 4, "cancel")
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	assert.Equal(t, []string{events.MaintenanceTransitioned}, pub.types())
}

func TestMaintenanceService_MonthlyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	garages := mock_service.NewMockGarageStore(ctrl)
	requests := mock_service.NewMockMaintenanceStore(ctrl)
	svc := NewMaintenanceService(zap.NewNop(), garages, requests, events.Nop{})

	start := models.NewDate(2024, time.January, 1)
	end := models.NewDate(2024, time.March, 1)

	garages.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.Garage{ID: 1}, nil)
	requests.EXPECT().
		CountByMonth(gomock.Any(), int64(1), start, models.NewDate(2024, time.March, 31)).
		Return([]models.MonthCount{{Year: 2024, Month: 1, Count: 4}, {Year: 2024, Month: 3, Count: 1}}, nil)

	report, err := svc.MonthlyReport(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.Equal(t, []models.MonthlyRequests{
		{YearMonth: models.YearMonth{Year: 2024, MonthValue: 1}, Requests: 4},
		{YearMonth: models.YearMonth{Year: 2024, MonthValue: 2}, Requests: 0},
		{YearMonth: models.YearMonth{Year: 2024, MonthValue: 3}, Requests: 1},
	}, report)
}

func TestMaintenanceService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	garages := mock_service.NewMockGarageStore(ctrl)
	requests := mock_service.NewMockMaintenanceStore(ctrl)
	svc := NewMaintenanceService(zap.NewNop(), garages, requests, events.Nop{})

	t.Run("all garages across a year boundary", func(t *testing.T) {
		start := models.NewDate(2023, time.December, 1)
		end := models.NewDate(2024, time.January, 1)
		requests.EXPECT().
			CountByMonth(gomock.Any(), int64(0), start, models.NewDate(2024, time.January, 31)).
			Return([]models.MonthCount{{Year: 2024, Month: 1, Count: 2}}, nil)

		stats, err := svc.Stats(context.Background(), 0, start, end)
		require.NoError(t, err)
		assert.Equal(t, []models.MonthStats{
			{Month: "2023-12", RequestCount: 0},
			{Month: "2024-01", RequestCount: 2},
		}, stats)
	})

	t.Run("unknown garage", func(t *testing.T) {
		garages.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, repository.ErrGarageNotFound)
		_, err := svc.Stats(context.Background(), 9, models.NewDate(2024, time.January, 1), models.NewDate(2024, time.January, 1))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("inverted months", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), 0, models.NewDate(2024, time.May, 1), models.NewDate(2024, time.April, 1))
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}
