// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// ErrRequestLocked 申请已被管理者锁定, 不可覆盖或删除
var ErrRequestLocked = errors.New("班次申请已锁定")

// ErrRequestNotFound 申请不存在或已删除
var ErrRequestNotFound = errors.New("班次申请不存在")

// RequestRepository 班次申请仓储
type RequestRepository struct {
	db DB
}

// NewRequestRepository 创建班次申请仓储
func NewRequestRepository(db DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Upsert 提交班次申请
// 同一员工同一天同一申请类型只保留最新一条, 已锁定的申请不覆盖。
func (r *RequestRepository) Upsert(ctx context.Context, req *model.ShiftRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = now
	}

	query := `
		INSERT INTO shift_requests (
			id, staff_id, date, request_type, start_time, end_time, end_date,
			is_locked, submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (staff_id, date, request_type) WHERE deleted_at IS NULL
		DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			end_date = EXCLUDED.end_date,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = EXCLUDED.updated_at
		WHERE shift_requests.is_locked = FALSE
	`

	result, err := r.db.ExecContext(ctx, query,
		req.ID, req.StaffID, req.Date, req.RequestType, req.StartTime, req.EndTime, req.EndDate,
		req.IsLocked, req.SubmittedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("提交班次申请失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRequestLocked
	}

	return nil
}

// GetByID 根据ID获取班次申请
func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShiftRequest, error) {
	query := `
		SELECT id, staff_id, date, request_type, start_time, end_time, end_date,
			is_locked, submitted_at, created_at, updated_at
		FROM shift_requests
		WHERE id = $1 AND deleted_at IS NULL
	`

	req := &model.ShiftRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.StaffID, &req.Date, &req.RequestType, &req.StartTime, &req.EndTime, &req.EndDate,
		&req.IsLocked, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描班次申请数据失败: %w", err)
	}
	return req, nil
}

// SetLocked 设置申请锁定状态
func (r *RequestRepository) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	query := `UPDATE shift_requests SET is_locked = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, locked, time.Now())
	if err != nil {
		return fmt.Errorf("更新申请锁定状态失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// Delete 软删除班次申请, 已锁定的申请不可删除
func (r *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE shift_requests SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL AND is_locked = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除班次申请失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// 区分锁定与不存在
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsLocked {
			return ErrRequestLocked
		}
		return ErrRequestNotFound
	}

	return nil
}

// ListByStorePeriod 获取门店员工在日期区间内的全部申请
func (r *RequestRepository) ListByStorePeriod(ctx context.Context, storeID uuid.UUID, startDate, endDate string) ([]*model.ShiftRequest, error) {
	query := `
		SELECT sr.id, sr.staff_id, sr.date, sr.request_type, sr.start_time, sr.end_time, sr.end_date,
			sr.is_locked, sr.submitted_at, sr.created_at, sr.updated_at
		FROM shift_requests sr
		JOIN staff s ON s.id = sr.staff_id AND s.deleted_at IS NULL
		WHERE s.store_id = $1 AND sr.date >= $2 AND sr.date <= $3 AND sr.deleted_at IS NULL
		ORDER BY sr.date, sr.submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query, storeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次申请列表失败: %w", err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// ListByStaffPeriod 获取员工在日期区间内的全部申请
func (r *RequestRepository) ListByStaffPeriod(ctx context.Context, staffID uuid.UUID, startDate, endDate string) ([]*model.ShiftRequest, error) {
	query := `
		SELECT id, staff_id, date, request_type, start_time, end_time, end_date,
			is_locked, submitted_at, created_at, updated_at
		FROM shift_requests
		WHERE staff_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date, submitted_at
	`

	rows, err := r.db.QueryContext(ctx, query, staffID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询班次申请列表失败: %w", err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

func (r *RequestRepository) scanRequests(rows *sql.Rows) ([]*model.ShiftRequest, error) {
	var list []*model.ShiftRequest
	for rows.Next() {
		req := &model.ShiftRequest{}
		err := rows.Scan(
			&req.ID, &req.StaffID, &req.Date, &req.RequestType, &req.StartTime, &req.EndTime, &req.EndDate,
			&req.IsLocked, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描班次申请数据失败: %w", err)
		}
		list = append(list, req)
	}
	return list, nil
}
