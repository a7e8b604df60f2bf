package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/metrics"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
)

// CarService 车辆服务
type CarService struct {
	logger    *zap.Logger
	cars      CarStore
	publisher events.Publisher
	now       func() time.Time
}

// NewCarService 创建车辆服务
func NewCarService(logger *zap.Logger, cars CarStore, publisher events.Publisher) *CarService {
	return &CarService{
		logger:    logger,
		cars:      cars,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create 创建车辆并绑定维修厂，每绑定一家维修厂占用其一个名额
func (s *CarService) Create(ctx context.Context, input models.CarInput) (*models.Car, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	garageIDs, err := uniqueIDs(input.GarageIDs)
	if err != nil {
		return nil, err
	}

	car := carFromInput(input)
	if err := s.cars.Create(ctx, car, garageIDs); err != nil {
		if errors.Is(err, repository.ErrGarageFull) {
			metrics.CapacityRejectionsTotal.WithLabelValues(metrics.RejectGarageFull).Inc()
			s.logger.Info("Car rejected, garage is full", zap.Error(err), zap.Int64s("garage_ids", garageIDs))
		}
		return nil, err
	}

	s.logger.Info("Car created", zap.Int64("car_id", car.ID), zap.Int64s("garage_ids", garageIDs))
	s.publisher.Publish(ctx, events.New(events.CarCreated, carKey(car.ID), car))
	return car, nil
}

// List 获取车辆列表
func (s *CarService) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	if filter.FromYear > 0 && filter.ToYear > 0 && filter.FromYear > filter.ToYear {
		return nil, invalid("fromYear must not be after toYear")
	}
	filter.Make = strings.TrimSpace(filter.Make)
	return s.cars.List(ctx, filter)
}

// Get 获取车辆
func (s *CarService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.cars.GetByID(ctx, id)
}

// Update 更新车辆基本信息，维修厂绑定保持不变
func (s *CarService) Update(ctx context.Context, id int64, input models.CarInput) (*models.Car, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	car := carFromInput(input)
	car.ID = id
	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}

	updated, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.CarUpdated, carKey(id), updated))
	return updated, nil
}

// Delete 删除车辆，归还其占用的维修厂名额
func (s *CarService) Delete(ctx context.Context, id int64) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Car deleted", zap.Int64("car_id", id))
	s.publisher.Publish(ctx, events.New(events.CarDeleted, carKey(id), payload{"id": id}))
	return nil
}

func (s *CarService) validate(input models.CarInput) error {
	if strings.TrimSpace(input.Make) == "" {
		return invalid("make is required")
	}
	if strings.TrimSpace(input.Model) == "" {
		return invalid("model is required")
	}
	if strings.TrimSpace(input.LicensePlate) == "" {
		return invalid("licensePlate is required")
	}

	currentYear := s.now().Year()
	if input.ProductionYear < models.MinProductionYear || input.ProductionYear > currentYear {
		return invalid("productionYear must be between %d and %d", models.MinProductionYear, currentYear)
	}
	return nil
}

func carFromInput(input models.CarInput) *models.Car {
	return &models.Car{
		Make:           input.Make,
		Model:          input.Model,
		ProductionYear: input.ProductionYear,
		LicensePlate:   input.LicensePlate,
	}
}

// uniqueIDs 去重并保持原顺序
func uniqueIDs(ids []int64) ([]int64, error) {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, invalid("invalid garage id %d", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func carKey(id int64) string {
	return "car-" + strconv.FormatInt(id, 10)
}
