// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// ShiftRepository 班次仓储
type ShiftRepository struct {
	db DB
}

// NewShiftRepository 创建班次仓储
func NewShiftRepository(db DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// InsertIfAbsent 幂等写入班次
// 同一员工同一天同一开始时间已有班次时跳过, 返回是否实际写入。
func (r *ShiftRepository) InsertIfAbsent(ctx context.Context, shift *model.Shift) (bool, error) {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	query := `
		INSERT INTO shifts (
			id, store_id, staff_id, date, start_time, end_time, end_date,
			is_confirmed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (staff_id, date, start_time) WHERE deleted_at IS NULL
		DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.StoreID, shift.StaffID, shift.Date, shift.StartTime, shift.EndTime, shift.EndDate,
		shift.IsConfirmed, shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("写入班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetByID 根据ID获取班次
func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `
		SELECT id, store_id, staff_id, date, start_time, end_time, end_date,
			is_confirmed, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND deleted_at IS NULL
	`

	shift := &model.Shift{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&shift.ID, &shift.StoreID, &shift.StaffID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.EndDate,
		&shift.IsConfirmed, &shift.CreatedAt, &shift.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描班次数据失败: %w", err)
	}
	return shift, nil
}

// Update 更新班次时间
func (r *ShiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	shift.UpdatedAt = time.Now()

	query := `
		UPDATE shifts SET
			date = $2, start_time = $3, end_time = $4, end_date = $5,
			is_confirmed = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.EndDate,
		shift.IsConfirmed, shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("班次不存在")
	}

	return nil
}

// Delete 软删除班次
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shifts SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("班次不存在")
	}

	return nil
}

// ConfirmByStorePeriod 批量确认门店在日期区间内的班次, 返回确认数量
func (r *ShiftRepository) ConfirmByStorePeriod(ctx context.Context, storeID uuid.UUID, startDate, endDate string) (int, error) {
	query := `
		UPDATE shifts SET is_confirmed = TRUE, updated_at = $4
		WHERE store_id = $1 AND date >= $2 AND date <= $3
			AND is_confirmed = FALSE AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, storeID, startDate, endDate, time.Now())
	if err != nil {
		return 0, fmt.Errorf("批量确认班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// DeleteUnconfirmedByStorePeriod 删除门店在日期区间内未确认的班次, 返回删除数量
// 用于重新生成前清理上一轮的草稿班次。
func (r *ShiftRepository) DeleteUnconfirmedByStorePeriod(ctx context.Context, storeID uuid.UUID, startDate, endDate string) (int, error) {
	query := `
		UPDATE shifts SET deleted_at = $4
		WHERE store_id = $1 AND date >= $2 AND date <= $3
			AND is_confirmed = FALSE AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, storeID, startDate, endDate, time.Now())
	if err != nil {
		return 0, fmt.Errorf("删除未确认班次失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// ListByStorePeriod 获取门店在日期区间内的全部班次
func (r *ShiftRepository) ListByStorePeriod(ctx context.Context, storeID uuid.UUID, startDate, endDate string) ([]*model.Shift, error) {
	query := `
		SELECT id, store_id, staff_id, date, start_time, end_time, end_date,
			is_confirmed, created_at, updated_at
		FROM shifts
		WHERE store_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date, start_time, staff_id
	`

	rows, err := r.db.QueryContext(ctx, query, storeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次列表失败: %w", err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

// ListByStaffPeriod 获取员工在日期区间内的全部班次
func (r *ShiftRepository) ListByStaffPeriod(ctx context.Context, staffID uuid.UUID, startDate, endDate string) ([]*model.Shift, error) {
	query := `
		SELECT id, store_id, staff_id, date, start_time, end_time, end_date,
			is_confirmed, created_at, updated_at
		FROM shifts
		WHERE staff_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date, start_time
	`

	rows, err := r.db.QueryContext(ctx, query, staffID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次列表失败: %w", err)
	}
	defer rows.Close()

	return r.scanShifts(rows)
}

func (r *ShiftRepository) scanShifts(rows *sql.Rows) ([]*model.Shift, error) {
	var list []*model.Shift
	for rows.Next() {
		shift := &model.Shift{}
		err := rows.Scan(
			&shift.ID, &shift.StoreID, &shift.StaffID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.EndDate,
			&shift.IsConfirmed, &shift.CreatedAt, &shift.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描班次数据失败: %w", err)
		}
		list = append(list, shift)
	}
	return list, nil
}
