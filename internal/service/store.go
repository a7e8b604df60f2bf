//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks
package service

import (
	"context"

	"github.com/langchou/garagebook/internal/models"
)

// GarageStore 维修厂持久化
type GarageStore interface {
	Create(ctx context.Context, garage *models.Garage) error
	GetByID(ctx context.Context, id int64) (*models.Garage, error)
	List(ctx context.Context, filter models.GarageFilter) ([]models.Garage, error)
	Update(ctx context.Context, garage *models.Garage) error
	Delete(ctx context.Context, id int64) error
}

// CarStore 车辆持久化
type CarStore interface {
	Create(ctx context.Context, car *models.Car, garageIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	List(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id int64) error
}

// MaintenanceStore 维修预约持久化
type MaintenanceStore interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	Update(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, from, to string) error
	ListOverdue(ctx context.Context, before models.Date) ([]models.MaintenanceRequest, error)
	CountByDay(ctx context.Context, garageID int64, start, end models.Date) ([]models.DayCount, error)
	CountByMonth(ctx context.Context, garageID int64, start, end models.Date) ([]models.MonthCount, error)
}

// Geocoder 根据地址获取经纬度
type Geocoder interface {
	Geocode(ctx context.Context, location, city string) (*models.Coordinates, error)
}
