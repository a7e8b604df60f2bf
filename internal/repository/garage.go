package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/garagebook/internal/models"
)

const garageColumns = `id, name, location, city, capacity, latitude, longitude`

// GarageRepository 维修厂数据仓库
type GarageRepository struct {
	db *DB
}

// NewGarageRepository 创建维修厂仓库
func NewGarageRepository(db *DB) *GarageRepository {
	return &GarageRepository{db: db}
}

// Create 创建维修厂
func (r *GarageRepository) Create(ctx context.Context, garage *models.Garage) error {
	query := `
		INSERT INTO garages (name, location, city, capacity, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.Pool.QueryRow(ctx, query,
		garage.Name,
		garage.Location,
		garage.City,
		garage.Capacity,
		garage.Latitude,
		garage.Longitude,
	).Scan(&garage.ID)

	if err != nil {
		return fmt.Errorf("insert garage: %w", err)
	}
	return nil
}

// GetByID 通过 ID 获取维修厂
func (r *GarageRepository) GetByID(ctx context.Context, id int64) (*models.Garage, error) {
	garage := &models.Garage{}
	err := pgxscan.Get(ctx, r.db.Pool, garage, `SELECT `+garageColumns+` FROM garages WHERE id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrGarageNotFound
		}
		return nil, fmt.Errorf("get garage by id: %w", err)
	}
	return garage, nil
}

// List 获取维修厂列表
func (r *GarageRepository) List(ctx context.Context, filter models.GarageFilter) ([]models.Garage, error) {
	var where whereBuilder
	if filter.City != "" {
		where.add("city = ?", filter.City)
	}

	garages := []models.Garage{}
	query := `SELECT ` + garageColumns + ` FROM garages` + where.String() + ` ORDER BY id`
	if err := pgxscan.Select(ctx, r.db.Pool, &garages, query, where.args...); err != nil {
		return nil, fmt.Errorf("list garages: %w", err)
	}
	return garages, nil
}

// Update 全量更新维修厂
func (r *GarageRepository) Update(ctx context.Context, garage *models.Garage) error {
	query := `
		UPDATE garages SET name = $1, location = $2, city = $3, capacity = $4, latitude = $5, longitude = $6
		WHERE id = $7
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		garage.Name,
		garage.Location,
		garage.City,
		garage.Capacity,
		garage.Latitude,
		garage.Longitude,
		garage.ID,
	)
	if err != nil {
		return fmt.Errorf("update garage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGarageNotFound
	}
	return nil
}

// Delete 删除维修厂，关联的车辆绑定和预约由外键级联删除
func (r *GarageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM garages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete garage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGarageNotFound
	}
	return nil
}

// lockGarageCapacity 在事务内锁定维修厂行并返回当前名额
func lockGarageCapacity(ctx context.Context, tx pgx.Tx, garageID int64) (int, error) {
	var capacity int
	err := tx.QueryRow(ctx, `SELECT capacity FROM garages WHERE id = $1 FOR UPDATE`, garageID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: id %d", ErrGarageNotFound, garageID)
		}
		return 0, fmt.Errorf("lock garage: %w", err)
	}
	return capacity, nil
}
