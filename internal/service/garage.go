package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/models"
)

// GarageService 维修厂服务
type GarageService struct {
	logger    *zap.Logger
	garages   GarageStore
	requests  MaintenanceStore
	geocoder  Geocoder
	publisher events.Publisher
}

// NewGarageService 创建维修厂服务，geocoder 为 nil 时不解析坐标
func NewGarageService(
	logger *zap.Logger,
	garages GarageStore,
	requests MaintenanceStore,
	geocoder Geocoder,
	publisher events.Publisher,
) *GarageService {
	return &GarageService{
		logger:    logger,
		garages:   garages,
		requests:  requests,
		geocoder:  geocoder,
		publisher: publisher,
	}
}

// Create 创建维修厂
func (s *GarageService) Create(ctx context.Context, input models.GarageInput) (*models.Garage, error) {
	if err := validateGarage(input, 1); err != nil {
		return nil, err
	}

	garage := &models.Garage{
		Name:     input.Name,
		Location: input.Location,
		City:     input.City,
		Capacity: input.Capacity,
	}
	s.locate(ctx, garage)

	if err := s.garages.Create(ctx, garage); err != nil {
		return nil, err
	}

	s.logger.Info("Garage created", zap.Int64("garage_id", garage.ID), zap.Int("capacity", garage.Capacity))
	s.publisher.Publish(ctx, events.New(events.GarageCreated, garageKey(garage.ID), garage))
	return garage, nil
}

// List 获取维修厂列表
func (s *GarageService) List(ctx context.Context, filter models.GarageFilter) ([]models.Garage, error) {
	filter.City = strings.TrimSpace(filter.City)
	return s.garages.List(ctx, filter)
}

// Get 获取维修厂
func (s *GarageService) Get(ctx context.Context, id int64) (*models.Garage, error) {
	return s.garages.GetByID(ctx, id)
}

// Update 全量更新维修厂，地址不变时沿用已有坐标
func (s *GarageService) Update(ctx context.Context, id int64, input models.GarageInput) (*models.Garage, error) {
	if err := validateGarage(input, 0); err != nil {
		return nil, err
	}

	existing, err := s.garages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	garage := &models.Garage{
		ID:       id,
		Name:     input.Name,
		Location: input.Location,
		City:     input.City,
		Capacity: input.Capacity,
	}
	if garage.Location == existing.Location && garage.City == existing.City && existing.Latitude != nil {
		garage.Latitude = existing.Latitude
		garage.Longitude = existing.Longitude
	} else {
		s.locate(ctx, garage)
	}

	if err := s.garages.Update(ctx, garage); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.GarageUpdated, garageKey(id), garage))
	return garage, nil
}

// Delete 删除维修厂
func (s *GarageService) Delete(ctx context.Context, id int64) error {
	if err := s.garages.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Garage deleted", zap.Int64("garage_id", id))
	s.publisher.Publish(ctx, events.New(events.GarageDeleted, garageKey(id), payload{"id": id}))
	return nil
}

// DailyAvailability 统计日期区间内每天的预约数与剩余名额
func (s *GarageService) DailyAvailability(ctx context.Context, garageID int64, start, end models.Date) ([]models.DailyAvailability, error) {
	if err := validateDateRange(start, end, maxReportDays); err != nil {
		return nil, err
	}

	garage, err := s.garages.GetByID(ctx, garageID)
	if err != nil {
		return nil, err
	}

	counts, err := s.requests.CountByDay(ctx, garageID, start, end)
	if err != nil {
		return nil, err
	}

	return buildDailyAvailability(garage.Capacity, start, end, counts), nil
}

// locate 解析坐标，失败只记录日志
func (s *GarageService) locate(ctx context.Context, garage *models.Garage) {
	if s.geocoder == nil {
		return
	}

	coords, err := s.geocoder.Geocode(ctx, garage.Location, garage.City)
	if err != nil {
		s.logger.Warn("Failed to geocode garage",
			zap.Error(err),
			zap.String("location", garage.Location),
			zap.String("city", garage.City))
		return
	}
	garage.Latitude = &coords.Latitude
	garage.Longitude = &coords.Longitude
}

func validateGarage(input models.GarageInput, minCapacity int) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return invalid("location is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return invalid("city is required")
	}
	if input.Capacity < minCapacity {
		return invalid("capacity must be at least %d", minCapacity)
	}
	return nil
}

func garageKey(id int64) string {
	return "garage-" + strconv.FormatInt(id, 10)
}

// payload 事件负载
type payload = map[string]interface{}
