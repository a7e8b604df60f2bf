package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/garagebook/internal/models"
)

const carColumns = `c.id, c.make, c.model, c.production_year, c.license_plate`

// CarRepository 车辆数据仓库
type CarRepository struct {
	db *DB
}

// NewCarRepository 创建车辆仓库
func NewCarRepository(db *DB) *CarRepository {
	return &CarRepository{db: db}
}

// Create 创建车辆并绑定维修厂
// 每绑定一个维修厂占用其一个名额，任一维修厂不存在或已满则整体回滚
// 维修厂行按 ID 升序加锁
func (r *CarRepository) Create(ctx context.Context, car *models.Car, garageIDs []int64) error {
	garageIDs = slices.Clone(garageIDs)
	slices.Sort(garageIDs)

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO cars (make, model, production_year, license_plate)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			car.Make,
			car.Model,
			car.ProductionYear,
			car.LicensePlate,
		).Scan(&car.ID)
		if err != nil {
			return fmt.Errorf("insert car: %w", err)
		}

		for _, garageID := range garageIDs {
			capacity, err := lockGarageCapacity(ctx, tx, garageID)
			if err != nil {
				return err
			}
			if capacity <= 0 {
				return fmt.Errorf("%w: id %d", ErrGarageFull, garageID)
			}

			if _, err := tx.Exec(ctx, `UPDATE garages SET capacity = capacity - 1 WHERE id = $1`, garageID); err != nil {
				return fmt.Errorf("reserve garage capacity: %w", err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO car_garages (car_id, garage_id) VALUES ($1, $2)`, car.ID, garageID); err != nil {
				return fmt.Errorf("link car to garage: %w", err)
			}
		}

		garages, err := loadGarages(ctx, tx, []int64{car.ID})
		if err != nil {
			return err
		}
		attachGarages(car, garages[car.ID])
		return nil
	})
}

// GetByID 通过 ID 获取车辆（含绑定的维修厂）
func (r *CarRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	car := &models.Car{}
	err := pgxscan.Get(ctx, r.db.Pool, car, `SELECT `+carColumns+` FROM cars c WHERE c.id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("get car by id: %w", err)
	}

	garages, err := loadGarages(ctx, r.db.Pool, []int64{id})
	if err != nil {
		return nil, err
	}
	attachGarages(car, garages[id])
	return car, nil
}

// List 按条件获取车辆列表，条件之间为 AND
func (r *CarRepository) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	var where whereBuilder
	if filter.Make != "" {
		where.add("c.make ILIKE ?", likePattern(filter.Make))
	}
	if filter.GarageID > 0 {
		where.add("c.id IN (SELECT car_id FROM car_garages WHERE garage_id = ?)", filter.GarageID)
	}
	if filter.FromYear > 0 {
		where.add("c.production_year >= ?", filter.FromYear)
	}
	if filter.ToYear > 0 {
		where.add("c.production_year <= ?", filter.ToYear)
	}

	cars := []models.Car{}
	query := `SELECT ` + carColumns + ` FROM cars c` + where.String() + ` ORDER BY c.id`
	if err := pgxscan.Select(ctx, r.db.Pool, &cars, query, where.args...); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	if len(cars) == 0 {
		return cars, nil
	}

	ids := make([]int64, len(cars))
	for i := range cars {
		ids[i] = cars[i].ID
	}
	garages, err := loadGarages(ctx, r.db.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		attachGarages(&cars[i], garages[cars[i].ID])
	}
	return cars, nil
}

// Update 更新车辆基本字段，不改变维修厂绑定
func (r *CarRepository) Update(ctx context.Context, car *models.Car) error {
	query := `
		UPDATE cars SET make = $1, model = $2, production_year = $3, license_plate = $4
		WHERE id = $5
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		car.Make,
		car.Model,
		car.ProductionYear,
		car.LicensePlate,
		car.ID,
	)
	if err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}

// Delete 删除车辆，并归还其占用的维修厂名额
// 先按 ID 升序锁定绑定的维修厂，再锁车辆行，与预约创建的加锁顺序一致
func (r *CarRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		lockGarages := `
			SELECT id FROM garages
			WHERE id IN (SELECT garage_id FROM car_garages WHERE car_id = $1)
			ORDER BY id
			FOR UPDATE
		`
		if _, err := tx.Exec(ctx, lockGarages, id); err != nil {
			return fmt.Errorf("lock car garages: %w", err)
		}

		var carID int64
		err := tx.QueryRow(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, id).Scan(&carID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrCarNotFound
			}
			return fmt.Errorf("lock car: %w", err)
		}

		query := `
			UPDATE garages SET capacity = capacity + 1
			WHERE id IN (SELECT garage_id FROM car_garages WHERE car_id = $1)
		`
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return fmt.Errorf("release garage capacity: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete car: %w", err)
		}
		return nil
	})
}

// linkedGarage 关联查询结果
type linkedGarage struct {
	CarID int64 `db:"car_id"`
	models.Garage
}

// loadGarages 批量加载车辆绑定的维修厂，按车辆 ID 分组
func loadGarages(ctx context.Context, q pgxscan.Querier, carIDs []int64) (map[int64][]models.Garage, error) {
	query := `
		SELECT cg.car_id, g.id, g.name, g.location, g.city, g.capacity, g.latitude, g.longitude
		FROM car_garages cg
		JOIN garages g ON g.id = cg.garage_id
		WHERE cg.car_id = ANY($1)
		ORDER BY cg.car_id, g.id
	`
	var rows []linkedGarage
	if err := pgxscan.Select(ctx, q, &rows, query, carIDs); err != nil {
		return nil, fmt.Errorf("load car garages: %w", err)
	}

	result := make(map[int64][]models.Garage, len(carIDs))
	for _, row := range rows {
		result[row.CarID] = append(result[row.CarID], row.Garage)
	}
	return result, nil
}

func attachGarages(car *models.Car, garages []models.Garage) {
	car.Garages = make([]models.Garage, 0, len(garages))
	car.GarageIDs = make([]int64, 0, len(garages))
	for _, g := range garages {
		car.Garages = append(car.Garages, g)
		car.GarageIDs = append(car.GarageIDs, g.ID)
	}
}
