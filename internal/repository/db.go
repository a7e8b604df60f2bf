package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// PoolOptions 连接池配置
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string, opts PoolOptions) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 && opts.MinConns <= config.MaxConns {
		config.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Ping 检查数据库连通性
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// WithTx 在单个事务中执行 fn，fn 返回错误时回滚
func (db *DB) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// 提交后再回滚是空操作
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateGarages,
		migrationCreateCars,
		migrationCreateCarGarages,
		migrationCreateMaintenanceRequests,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateGarages = `
CREATE TABLE IF NOT EXISTS garages (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    location VARCHAR(255) NOT NULL,
    city VARCHAR(255) NOT NULL,
    capacity INT NOT NULL CHECK (capacity >= 0),
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_garages_city ON garages(city);
`

const migrationCreateCars = `
CREATE TABLE IF NOT EXISTS cars (
    id BIGSERIAL PRIMARY KEY,
    make VARCHAR(100) NOT NULL,
    model VARCHAR(100) NOT NULL,
    production_year INT NOT NULL,
    license_plate VARCHAR(32) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cars_production_year ON cars(production_year);
`

// 车辆与维修厂多对多关联，删除任一端时级联删除关联
const migrationCreateCarGarages = `
CREATE TABLE IF NOT EXISTS car_garages (
    car_id BIGINT NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
    garage_id BIGINT NOT NULL REFERENCES garages(id) ON DELETE CASCADE,
    PRIMARY KEY (car_id, garage_id)
);
CREATE INDEX IF NOT EXISTS idx_car_garages_garage_id ON car_garages(garage_id);
`

const migrationCreateMaintenanceRequests = `
CREATE TABLE IF NOT EXISTS maintenance_requests (
    id BIGSERIAL PRIMARY KEY,
    garage_id BIGINT NOT NULL REFERENCES garages(id) ON DELETE CASCADE,
    car_id BIGINT NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
    scheduled_date DATE NOT NULL,
    service_type VARCHAR(255) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_maintenance_requests_garage_date ON maintenance_requests(garage_id, scheduled_date);
CREATE INDEX IF NOT EXISTS idx_maintenance_requests_car_id ON maintenance_requests(car_id);
CREATE INDEX IF NOT EXISTS idx_maintenance_requests_status ON maintenance_requests(status);
`
