package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation PostgreSQL 外键约束错误码
const foreignKeyViolation = "23503"

// 通用错误分类，上层通过 errors.Is 匹配
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

var (
	ErrGarageNotFound  = fmt.Errorf("garage %w", ErrNotFound)
	ErrCarNotFound     = fmt.Errorf("car %w", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("request %w", ErrNotFound)

	// ErrGarageFull 维修厂没有剩余名额可绑定车辆
	ErrGarageFull = fmt.Errorf("%w: garage is full", ErrConflict)
	// ErrNoCapacity 维修厂当天预约已满
	ErrNoCapacity = fmt.Errorf("%w: no available capacity for the selected date", ErrConflict)
	// ErrStatusChanged 预约状态已被并发修改
	ErrStatusChanged = fmt.Errorf("%w: request status changed concurrently", ErrConflict)
)

// isForeignKeyViolation 引用的行已被并发删除
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
