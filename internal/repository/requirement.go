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

// RequirementRepository 人员需求仓储
type RequirementRepository struct {
	db DB
}

// NewRequirementRepository 创建人员需求仓储
func NewRequirementRepository(db DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// Create 创建人员需求
func (r *RequirementRepository) Create(ctx context.Context, req *model.StaffRequirement) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := `
		INSERT INTO staff_requirements (
			id, store_id, day_of_week, start_time, end_time,
			required_staff, required_managers, required_hall_skill, required_kitchen_skill,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.StoreID, req.DayOfWeek, req.StartTime, req.EndTime,
		req.RequiredStaff, req.RequiredManagers, req.RequiredHallSkill, req.RequiredKitchenSkill,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建人员需求失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取人员需求
func (r *RequirementRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StaffRequirement, error) {
	query := `
		SELECT id, store_id, day_of_week, start_time, end_time,
			required_staff, required_managers, required_hall_skill, required_kitchen_skill,
			created_at, updated_at
		FROM staff_requirements
		WHERE id = $1 AND deleted_at IS NULL
	`

	req := &model.StaffRequirement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.StoreID, &req.DayOfWeek, &req.StartTime, &req.EndTime,
		&req.RequiredStaff, &req.RequiredManagers, &req.RequiredHallSkill, &req.RequiredKitchenSkill,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描人员需求数据失败: %w", err)
	}
	return req, nil
}

// Update 更新人员需求
func (r *RequirementRepository) Update(ctx context.Context, req *model.StaffRequirement) error {
	req.UpdatedAt = time.Now()

	query := `
		UPDATE staff_requirements SET
			day_of_week = $2, start_time = $3, end_time = $4,
			required_staff = $5, required_managers = $6,
			required_hall_skill = $7, required_kitchen_skill = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		req.ID, req.DayOfWeek, req.StartTime, req.EndTime,
		req.RequiredStaff, req.RequiredManagers,
		req.RequiredHallSkill, req.RequiredKitchenSkill, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新人员需求失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("人员需求不存在")
	}

	return nil
}

// Delete 软删除人员需求
func (r *RequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE staff_requirements SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除人员需求失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("人员需求不存在")
	}

	return nil
}

// ListByStore 获取门店的全部人员需求, 按星期与起始时间排序
func (r *RequirementRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*model.StaffRequirement, error) {
	query := `
		SELECT id, store_id, day_of_week, start_time, end_time,
			required_staff, required_managers, required_hall_skill, required_kitchen_skill,
			created_at, updated_at
		FROM staff_requirements
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("查询人员需求列表失败: %w", err)
	}
	defer rows.Close()

	var list []*model.StaffRequirement
	for rows.Next() {
		req := &model.StaffRequirement{}
		err := rows.Scan(
			&req.ID, &req.StoreID, &req.DayOfWeek, &req.StartTime, &req.EndTime,
			&req.RequiredStaff, &req.RequiredManagers, &req.RequiredHallSkill, &req.RequiredKitchenSkill,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描人员需求数据失败: %w", err)
		}
		list = append(list, req)
	}

	return list, nil
}
