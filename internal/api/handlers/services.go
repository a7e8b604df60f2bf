//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks
package handlers

import (
	"context"

	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/service"
)

// GarageService 维修厂业务
type GarageService interface {
	Create(ctx context.Context, input models.GarageInput) (*models.Garage, error)
	List(ctx context.Context, filter models.GarageFilter) ([]models.Garage, error)
	Get(ctx context.Context, id int64) (*models.Garage, error)
	Update(ctx context.Context, id int64, input models.GarageInput) (*models.Garage, error)
	Delete(ctx context.Context, id int64) error
	DailyAvailability(ctx context.Context, garageID int64, start, end models.Date) ([]models.DailyAvailability, error)
}

// CarService 车辆业务
type CarService interface {
	Create(ctx context.Context, input models.CarInput) (*models.Car, error)
	List(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	Update(ctx context.Context, id int64, input models.CarInput) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
}

// MaintenanceService 维修预约业务
type MaintenanceService interface {
	Create(ctx context.Context, input models.MaintenanceInput) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error)
	Get(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	Update(ctx context.Context, id int64, input models.MaintenanceInput) (*models.MaintenanceRequest, error)
	Delete(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, event string) (*service.TransitionResult, error)
	MonthlyReport(ctx context.Context, garageID int64, startMonth, endMonth models.Date) ([]models.MonthlyRequests, error)
	Stats(ctx context.Context, garageID int64, startMonth, endMonth models.Date) ([]models.MonthStats, error)
}

// Pinger 数据库连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}
