package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/garagebook/internal/models"
)

const selectMaintenance = `
	SELECT m.id, m.garage_id, g.name AS garage_name, m.car_id, c.make || ' ' || c.model AS car_name,
	       m.scheduled_date, m.service_type, m.status
	FROM maintenance_requests m
	JOIN garages g ON g.id = m.garage_id
	JOIN cars c ON c.id = m.car_id
`

// MaintenanceRepository 维修预约数据仓库
type MaintenanceRepository struct {
	db *DB
}

// NewMaintenanceRepository 创建维修预约仓库
func NewMaintenanceRepository(db *DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Create 创建预约
// 锁定维修厂行后统计当天预约数，达到上限则返回 ErrNoCapacity
func (r *MaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := checkDailyCapacity(ctx, tx, req, 0); err != nil {
			return err
		}

		query := `
			INSERT INTO maintenance_requests (garage_id, car_id, scheduled_date, service_type, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		req.Status = models.StatusScheduled
		err := tx.QueryRow(ctx, query,
			req.GarageID,
			req.CarID,
			req.ScheduledDate,
			req.ServiceType,
			req.Status,
		).Scan(&req.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: id %d", ErrCarNotFound, req.CarID)
			}
			return fmt.Errorf("insert maintenance request: %w", err)
		}
		return nil
	})
}

// Update 全量更新预约（状态除外），容量检查时排除自身
// 先锁维修厂再锁预约行
func (r *MaintenanceRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := checkDailyCapacity(ctx, tx, req, req.ID); err != nil {
			return err
		}

		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM maintenance_requests WHERE id = $1 FOR UPDATE`, req.ID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("lock maintenance request: %w", err)
		}
		req.Status = status

		query := `
			UPDATE maintenance_requests
			SET garage_id = $1, car_id = $2, scheduled_date = $3, service_type = $4, updated_at = NOW()
			WHERE id = $5
		`
		if _, err := tx.Exec(ctx, query,
			req.GarageID,
			req.CarID,
			req.ScheduledDate,
			req.ServiceType,
			req.ID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: id %d", ErrCarNotFound, req.CarID)
			}
			return fmt.Errorf("update maintenance request: %w", err)
		}
		return nil
	})
}

// checkDailyCapacity 校验维修厂和车辆存在，并确认当天还有名额
// excludeID 非零时不计入该预约，其余预约无论状态都占用名额
func checkDailyCapacity(ctx context.Context, tx pgx.Tx, req *models.MaintenanceRequest, excludeID int64) error {
	capacity, err := lockGarageCapacity(ctx, tx, req.GarageID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `SELECT name FROM garages WHERE id = $1`, req.GarageID).Scan(&req.GarageName)
	if err != nil {
		return fmt.Errorf("get garage name: %w", err)
	}
	err = tx.QueryRow(ctx, `SELECT make || ' ' || model FROM cars WHERE id = $1`, req.CarID).Scan(&req.CarName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: id %d", ErrCarNotFound, req.CarID)
		}
		return fmt.Errorf("get car: %w", err)
	}

	var count int
	query := `
		SELECT COUNT(*) FROM maintenance_requests
		WHERE garage_id = $1 AND scheduled_date = $2 AND id <> $3`
	if err := tx.QueryRow(ctx, query, req.GarageID, req.ScheduledDate, excludeID).Scan(&count); err != nil {
		return fmt.Errorf("count maintenance requests: %w", err)
	}
	if count >= capacity {
		return fmt.Errorf("%w: garage %d on %s", ErrNoCapacity, req.GarageID, req.ScheduledDate)
	}
	return nil
}

// GetByID 通过 ID 获取预约
func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	req := &models.MaintenanceRequest{}
	if err := pgxscan.Get(ctx, r.db.Pool, req, selectMaintenance+` WHERE m.id = $1`, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("get maintenance request by id: %w", err)
	}
	return req, nil
}

// List 按条件获取预约列表
func (r *MaintenanceRepository) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	var where whereBuilder
	if filter.CarID > 0 {
		where.add("m.car_id = ?", filter.CarID)
	}
	if filter.GarageID > 0 {
		where.add("m.garage_id = ?", filter.GarageID)
	}
	if filter.StartDate != nil {
		where.add("m.scheduled_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		where.add("m.scheduled_date <= ?", *filter.EndDate)
	}

	requests := []models.MaintenanceRequest{}
	query := selectMaintenance + where.String() + ` ORDER BY m.scheduled_date, m.id`
	if err := pgxscan.Select(ctx, r.db.Pool, &requests, query, where.args...); err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	return requests, nil
}

// Delete 删除预约，名额按实时数量计算，无需归还
func (r *MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete maintenance request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// UpdateStatus 以 from 为前提更新状态，前提不满足时返回 ErrStatusChanged
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE maintenance_requests SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("update maintenance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusChanged
	}
	return nil
}

// ListOverdue 获取 before 之前仍处于 scheduled 的预约
func (r *MaintenanceRepository) ListOverdue(ctx context.Context, before models.Date) ([]models.MaintenanceRequest, error) {
	requests := []models.MaintenanceRequest{}
	query := selectMaintenance + ` WHERE m.status = $1 AND m.scheduled_date < $2 ORDER BY m.id`
	if err := pgxscan.Select(ctx, r.db.Pool, &requests, query, models.StatusScheduled, before); err != nil {
		return nil, fmt.Errorf("list overdue maintenance requests: %w", err)
	}
	return requests, nil
}

// CountByDay 统计维修厂在日期区间内每天的预约数，没有预约的日期不返回
func (r *MaintenanceRepository) CountByDay(ctx context.Context, garageID int64, start, end models.Date) ([]models.DayCount, error) {
	query := `
		SELECT scheduled_date AS day, COUNT(*) AS count
		FROM maintenance_requests
		WHERE garage_id = $1 AND scheduled_date BETWEEN $2 AND $3
		GROUP BY scheduled_date
		ORDER BY scheduled_date
	`
	counts := []models.DayCount{}
	if err := pgxscan.Select(ctx, r.db.Pool, &counts, query, garageID, start, end); err != nil {
		return nil, fmt.Errorf("count requests by day: %w", err)
	}
	return counts, nil
}

// CountByMonth 统计日期区间内每月的预约数，garageID 为 0 时统计全部维修厂
func (r *MaintenanceRepository) CountByMonth(ctx context.Context, garageID int64, start, end models.Date) ([]models.MonthCount, error) {
	var where whereBuilder
	where.add("scheduled_date >= ?", start)
	where.add("scheduled_date <= ?", end)
	if garageID > 0 {
		where.add("garage_id = ?", garageID)
	}

	query := `
		SELECT EXTRACT(YEAR FROM scheduled_date)::int AS year,
		       EXTRACT(MONTH FROM scheduled_date)::int AS month,
		       COUNT(*) AS count
		FROM maintenance_requests` + where.String() + `
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	counts := []models.MonthCount{}
	if err := pgxscan.Select(ctx, r.db.Pool, &counts, query, where.args...); err != nil {
		return nil, fmt.Errorf("count requests by month: %w", err)
	}
	return counts, nil
}
