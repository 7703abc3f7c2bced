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

// StoreRepository 门店仓储
type StoreRepository struct {
	db DB
}

// NewStoreRepository 创建门店仓储
func NewStoreRepository(db DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create 创建门店
func (r *StoreRepository) Create(ctx context.Context, store *model.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	now := time.Now()
	store.CreatedAt = now
	store.UpdatedAt = now

	query := `
		INSERT INTO stores (
			id, name, opening_time, closing_time,
			preparation_minutes, cleanup_minutes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name, store.OpeningTime, store.ClosingTime,
		store.PreparationMinutes, store.CleanupMinutes, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建门店失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取门店
func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	query := `
		SELECT id, name, opening_time, closing_time,
			preparation_minutes, cleanup_minutes, created_at, updated_at
		FROM stores
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanStore(r.db.QueryRowContext(ctx, query, id))
}

// Update 更新门店
func (r *StoreRepository) Update(ctx context.Context, store *model.Store) error {
	store.UpdatedAt = time.Now()

	query := `
		UPDATE stores SET
			name = $2, opening_time = $3, closing_time = $4,
			preparation_minutes = $5, cleanup_minutes = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name, store.OpeningTime, store.ClosingTime,
		store.PreparationMinutes, store.CleanupMinutes, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新门店失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("门店不存在")
	}

	return nil
}

// Delete 软删除门店
func (r *StoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE stores SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除门店失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("门店不存在")
	}

	return nil
}

// List 查询门店列表
func (r *StoreRepository) List(ctx context.Context) ([]*model.Store, error) {
	query := `
		SELECT id, name, opening_time, closing_time,
			preparation_minutes, cleanup_minutes, created_at, updated_at
		FROM stores
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询门店列表失败: %w", err)
	}
	defer rows.Close()

	var stores []*model.Store
	for rows.Next() {
		store, err := r.scanStoreRow(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}

	return stores, nil
}

func (r *StoreRepository) scanStore(row *sql.Row) (*model.Store, error) {
	store := &model.Store{}
	err := row.Scan(
		&store.ID, &store.Name, &store.OpeningTime, &store.ClosingTime,
		&store.PreparationMinutes, &store.CleanupMinutes, &store.CreatedAt, &store.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("扫描门店数据失败: %w", err)
	}
	return store, nil
}

func (r *StoreRepository) scanStoreRow(s Scanner) (*model.Store, error) {
	store := &model.Store{}
	err := s.Scan(
		&store.ID, &store.Name, &store.OpeningTime, &store.ClosingTime,
		&store.PreparationMinutes, &store.CleanupMinutes, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描门店数据失败: %w", err)
	}
	return store, nil
}
