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

func newTestCarService(cars CarStore, pub events.Publisher) *CarService {
	svc := NewCarService(zap.NewNop(), cars, pub)
	svc.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCarService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cars := mock_service.NewMockCarStore(ctrl)
	svc := newTestCarService(cars, events.Nop{})

	valid := models.CarInput{Make: "Toyota", Model: "Corolla", ProductionYear: 2020, LicensePlate: "CA1234AB"}

	tests := []struct {
		name       string
		input      func() models.CarInput
		setupMocks func()
		wantErr    error
		validation bool
	}{
		{
			name: "deduplicates garage ids",
			input: func() models.CarInput {
				in := valid
				in.GarageIDs = []int64{2, 1, 2}
				return in
			},
			setupMocks: func() {
				cars.EXPECT().
					Create(gomock.Any(), gomock.Any(), []int64{2, 1}).
					DoAndReturn(func(_ context.Context, car *models.Car, _ []int64) error {
						assert.Equal(t, "Toyota", car.Make)
						car.ID = 11
						car.GarageIDs = []int64{1, 2}
						return nil
					})
			},
		},
		{
			name: "stores fields as submitted",
			input: func() models.CarInput {
				in := valid
				in.Make = " Toyota"
				in.LicensePlate = "CA 1234 AB "
				return in
			},
			setupMocks: func() {
				cars.EXPECT().
					Create(gomock.Any(), gomock.Any(), []int64{}).
					DoAndReturn(func(_ context.Context, car *models.Car, _ []int64) error {
						assert.Equal(t, " Toyota", car.Make)
						assert.Equal(t, "CA 1234 AB ", car.LicensePlate)
						car.ID = 11
						car.GarageIDs = []int64{1, 2}
						return nil
					})
			},
		},
		{
			name: "year before first production car",
			input: func() models.CarInput {
				in := valid
				in.ProductionYear = 1885
				return in
			},
			setupMocks: func() {},
			validation: true,
		},
		{
			name: "year in the future",
			input: func() models.CarInput {
				in := valid
				in.ProductionYear = 2025
				return in
			},
			setupMocks: func() {},
			validation: true,
		},
		{
			name: "non-positive garage id",
			input: func() models.CarInput {
				in := valid
				in.GarageIDs = []int64{0}
				return in
			},
			setupMocks: func() {},
			validation: true,
		},
		{
			name: "garage is full",
			input: func() models.CarInput {
				in := valid
				in.GarageIDs = []int64{3}
				return in
			},
			setupMocks: func() {
				cars.EXPECT().
					Create(gomock.Any(), gomock.Any(), []int64{3}).
					Return(repository.ErrGarageFull)
			},
			wantErr: repository.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			car, err := svc.Create(context.Background(), tt.input())
			switch {
			case tt.validation:
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(11), car.ID)
			}
		})
	}
}

func TestCarService_UpdateReturnsFreshRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cars := mock_service.NewMockCarStore(ctrl)
	pub := &recordingPublisher{}
	svc := newTestCarService(cars, pub)

	cars.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, car *models.Car) error {
			assert.Equal(t, int64(5), car.ID)
			assert.Equal(t, 2024, car.ProductionYear)
			return nil
		})
	cars.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&models.Car{
		ID: 5, Make: "Honda", Model: "Civic", ProductionYear: 2024, LicensePlate: "X", GarageIDs: []int64{1},
	}, nil)

	car, err := svc.Update(context.Background(), 5, models.CarInput{
		Make: "Honda", Model: "Civic", ProductionYear: 2024, LicensePlate: "X",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, car.GarageIDs)
	assert.Equal(t, []string{events.CarUpdated}, pub.types())
}

func TestCarService_UpdateValidatesYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestCarService(mock_service.NewMockCarStore(ctrl), events.Nop{})

	_, err := svc.Update(context.Background(), 5, models.CarInput{
		Make: "Honda", Model: "Civic", ProductionYear: 3000, LicensePlate: "X",
	})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCarService_ListRejectsInvertedYears(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cars := mock_service.NewMockCarStore(ctrl)
	svc := newTestCarService(cars, events.Nop{})

	_, err := svc.List(context.Background(), models.CarFilter{FromYear: 2020, ToYear: 2010})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	cars.EXPECT().List(gomock.Any(), models.CarFilter{Make: "toy", GarageID: 2}).Return([]models.Car{}, nil)
	list, err := svc.List(context.Background(), models.CarFilter{Make: " toy ", GarageID: 2})
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestCarService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cars := mock_service.NewMockCarStore(ctrl)
	pub := &recordingPublisher{}
	svc := newTestCarService(cars, pub)

	cars.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	cars.EXPECT().Delete(gomock.Any(), int64(2)).Return(repository.ErrCarNotFound)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), repository.ErrNotFound)
	assert.Equal(t, []string{events.CarDeleted}, pub.types())
}
