package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/metrics"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
	"github.com/langchou/garagebook/internal/state"
)

// MaintenanceService 维修预约服务
type MaintenanceService struct {
	logger    *zap.Logger
	garages   GarageStore
	requests  MaintenanceStore
	publisher events.Publisher
}

// NewMaintenanceService 创建维修预约服务
func NewMaintenanceService(
	logger *zap.Logger,
	garages GarageStore,
	requests MaintenanceStore,
	publisher events.Publisher,
) *MaintenanceService {
	return &MaintenanceService{
		logger:    logger,
		garages:   garages,
		requests:  requests,
		publisher: publisher,
	}
}

// TransitionResult 状态流转结果，AvailableEvents 为流转后还可以触发的事件
type TransitionResult struct {
	Request         *models.MaintenanceRequest `json:"request"`
	From            string                     `json:"from"`
	To              string                     `json:"to"`
	Event           string                     `json:"event"`
	AvailableEvents []string                   `json:"availableEvents"`
}

// Create 创建预约，当天预约数达到维修厂名额时返回冲突
func (s *MaintenanceService) Create(ctx context.Context, input models.MaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := validateMaintenance(input); err != nil {
		return nil, err
	}

	req := requestFromInput(input)
	if err := s.requests.Create(ctx, req); err != nil {
		s.logRejection(err, req)
		return nil, err
	}

	metrics.MaintenanceCreatedTotal.Inc()
	s.logger.Info("Maintenance request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("garage_id", req.GarageID),
		zap.Int64("car_id", req.CarID),
		zap.Stringer("date", req.ScheduledDate))
	s.publisher.Publish(ctx, events.New(events.MaintenanceCreated, requestKey(req.ID), req))
	return req, nil
}

// List 获取预约列表
func (s *MaintenanceService) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	if filter.StartDate != nil && filter.EndDate != nil {
		if err := validateDateRange(*filter.StartDate, *filter.EndDate, 0); err != nil {
			return nil, err
		}
	}
	return s.requests.List(ctx, filter)
}

// Get 获取预约
func (s *MaintenanceService) Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// Update 全量更新预约，状态保持不变
func (s *MaintenanceService) Update(ctx context.Context, id int64, input models.MaintenanceInput) (*models.MaintenanceRequest, error) {
	if err := validateMaintenance(input); err != nil {
		return nil, err
	}

	req := requestFromInput(input)
	req.ID = id
	if err := s.requests.Update(ctx, req); err != nil {
		s.logRejection(err, req)
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.MaintenanceUpdated, requestKey(id), req))
	return req, nil
}

// Delete 删除预约
func (s *MaintenanceService) Delete(ctx context.Context, id int64) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Maintenance request deleted", zap.Int64("request_id", id))
	s.publisher.Publish(ctx, events.New(events.MaintenanceDeleted, requestKey(id), payload{"id": id}))
	return nil
}

// Transition 触发预约状态流转
func (s *MaintenanceService) Transition(ctx context.Context, id int64, event string) (*TransitionResult, error) {
	event = strings.TrimSpace(event)
	if !state.IsKnownEvent(event) {
		return nil, invalid("unknown event %q, expected one of %s", event, strings.Join(state.Events, ", "))
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := req.Status
	machine := state.NewMachine(from)
	to, err := machine.Trigger(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot %s a %s request", repository.ErrConflict, event, from)
	}

	if err := s.requests.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, err
	}
	req.Status = to

	metrics.MaintenanceTransitionsTotal.WithLabelValues(to).Inc()
	s.logger.Info("Maintenance request transitioned",
		zap.Int64("request_id", id),
		zap.String("event", event),
		zap.String("from", from),
		zap.String("to", to))

	result := &TransitionResult{
		Request:         req,
		From:            from,
		To:              to,
		Event:           event,
		AvailableEvents: machine.AvailableEvents(),
	}
	s.publisher.Publish(ctx, events.New(events.MaintenanceTransitioned, requestKey(id), result))
	return result, nil
}

// MonthlyReport 按月统计预约数，返回 {yearMonth, requests}
func (s *MaintenanceService) MonthlyReport(ctx context.Context, garageID int64, startMonth, endMonth models.Date) ([]models.MonthlyRequests, error) {
	counts, err := s.countByMonth(ctx, garageID, startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return buildMonthlyRequests(startMonth, endMonth, counts), nil
}

// Stats 按月统计预约数，返回 {month, request_count}
func (s *MaintenanceService) Stats(ctx context.Context, garageID int64, startMonth, endMonth models.Date) ([]models.MonthStats, error) {
	counts, err := s.countByMonth(ctx, garageID, startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return buildMonthStats(startMonth, endMonth, counts), nil
}

func (s *MaintenanceService) countByMonth(ctx context.Context, garageID int64, startMonth, endMonth models.Date) ([]models.MonthCount, error) {
	if startMonth.After(endMonth.Time) {
		return nil, invalid("start month must not be after end month")
	}

	if garageID > 0 {
		if _, err := s.garages.GetByID(ctx, garageID); err != nil {
			return nil, err
		}
	}

	return s.requests.CountByMonth(ctx, garageID, startMonth, endOfMonth(endMonth))
}

func (s *MaintenanceService) logRejection(err error, req *models.MaintenanceRequest) {
	if !errors.Is(err, repository.ErrNoCapacity) {
		return
	}
	metrics.CapacityRejectionsTotal.WithLabelValues(metrics.RejectDailyLimit).Inc()
	s.logger.Info("Maintenance request rejected, no capacity",
		zap.Int64("garage_id", req.GarageID),
		zap.Stringer("date", req.ScheduledDate))
}

func validateMaintenance(input models.MaintenanceInput) error {
	if input.GarageID <= 0 {
		return invalid("garageId is required")
	}
	if input.CarID <= 0 {
		return invalid("carId is required")
	}
	if input.ScheduledDate.IsZero() {
		return invalid("scheduledDate is required")
	}
	if strings.TrimSpace(input.ServiceType) == "" {
		return invalid("serviceType is required")
	}
	return nil
}

func requestFromInput(input models.MaintenanceInput) *models.MaintenanceRequest {
	return &models.MaintenanceRequest{
		GarageID:      input.GarageID,
		CarID:         input.CarID,
		ScheduledDate: input.ScheduledDate,
		ServiceType:   input.ServiceType,
	}
}

func requestKey(id int64) string {
	return "maintenance-" + strconv.FormatInt(id, 10)
}
