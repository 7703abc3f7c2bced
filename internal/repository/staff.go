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

// StaffRepository 员工仓储
type StaffRepository struct {
	db DB
}

// NewStaffRepository 创建员工仓储
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create 创建员工
func (r *StaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	query := `
		INSERT INTO staff (
			id, store_id, account_id, name, employment_type, hourly_wage,
			hall_skill_level, kitchen_skill_level, is_manager, max_weekly_hours,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.StoreID, staff.AccountID, staff.Name, staff.EmploymentType, staff.HourlyWage,
		staff.HallSkillLevel, staff.KitchenSkillLevel, staff.IsManager, staff.MaxWeeklyHours,
		staff.CreatedAt, staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建员工失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取员工
func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, store_id, account_id, name, employment_type, hourly_wage,
			hall_skill_level, kitchen_skill_level, is_manager, max_weekly_hours,
			created_at, updated_at
		FROM staff
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanStaff(r.db.QueryRowContext(ctx, query, id))
}

// GetByAccountID 根据账号ID获取员工
func (r *StaffRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, store_id, account_id, name, employment_type, hourly_wage,
			hall_skill_level, kitchen_skill_level, is_manager, max_weekly_hours,
			created_at, updated_at
		FROM staff
		WHERE account_id = $1 AND deleted_at IS NULL
	`

	return r.scanStaff(r.db.QueryRowContext(ctx, query, accountID))
}

// Update 更新员工
func (r *StaffRepository) Update(ctx context.Context, staff *model.Staff) error {
	staff.UpdatedAt = time.Now()

	query := `
		UPDATE staff SET
			account_id = $2, name = $3, employment_type = $4, hourly_wage = $5,
			hall_skill_level = $6, kitchen_skill_level = $7, is_manager = $8,
			max_weekly_hours = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.AccountID, staff.Name, staff.EmploymentType, staff.HourlyWage,
		staff.HallSkillLevel, staff.KitchenSkillLevel, staff.IsManager,
		staff.MaxWeeklyHours, staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新员工失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("员工不存在")
	}

	return nil
}

// Delete 软删除员工
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE staff SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除员工失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("员工不存在")
	}

	return nil
}

// ListByStore 获取门店下的全部员工, 按ID升序保证排班结果可复现
func (r *StaffRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error) {
	query := `
		SELECT id, store_id, account_id, name, employment_type, hourly_wage,
			hall_skill_level, kitchen_skill_level, is_manager, max_weekly_hours,
			created_at, updated_at
		FROM staff
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("查询员工列表失败: %w", err)
	}
	defer rows.Close()

	var list []*model.Staff
	for rows.Next() {
		staff, err := r.scanStaffRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, staff)
	}

	return list, nil
}

func (r *StaffRepository) scanStaff(row *sql.Row) (*model.Staff, error) {
	staff := &model.Staff{}
	err := row.Scan(
		&staff.ID, &staff.StoreID, &staff.AccountID, &staff.Name, &staff.EmploymentType, &staff.HourlyWage,
		&staff.HallSkillLevel, &staff.KitchenSkillLevel, &staff.IsManager, &staff.MaxWeeklyHours,
		&staff.CreatedAt, &staff.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描员工数据失败: %w", err)
	}
	return staff, nil
}

func (r *StaffRepository) scanStaffRow(s Scanner) (*model.Staff, error) {
	staff := &model.Staff{}
	err := s.Scan(
		&staff.ID, &staff.StoreID, &staff.AccountID, &staff.Name, &staff.EmploymentType, &staff.HourlyWage,
		&staff.HallSkillLevel, &staff.KitchenSkillLevel, &staff.IsManager, &staff.MaxWeeklyHours,
		&staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描员工数据失败: %w", err)
	}
	return staff, nil
}
