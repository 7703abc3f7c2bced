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

// AccountRepository 登录账号仓储
type AccountRepository struct {
	db DB
}

// NewAccountRepository 创建账号仓储
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create 创建账号
func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) error {
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	now := time.Now()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	query := `
		INSERT INTO accounts (id, username, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		acc.ID, acc.Username, acc.PasswordHash, acc.FullName, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建账号失败: %w", err)
	}

	return nil
}

// GetByUsername 根据用户名获取账号
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `
		SELECT id, username, password_hash, full_name, created_at, updated_at
		FROM accounts
		WHERE username = $1 AND deleted_at IS NULL
	`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

// GetByID 根据ID获取账号
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, username, password_hash, full_name, created_at, updated_at
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// UpdatePassword 更新密码
func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("账号不存在")
	}

	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*model.Account, error) {
	acc := &model.Account{}
	err := row.Scan(
		&acc.ID, &acc.Username, &acc.PasswordHash, &acc.FullName, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描账号数据失败: %w", err)
	}
	return acc, nil
}
