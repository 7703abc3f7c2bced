// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/model"
)

// StoreHandler 门店处理器
type StoreHandler struct {
	stores *repository.StoreRepository
}

// NewStoreHandler 创建门店处理器
func NewStoreHandler(stores *repository.StoreRepository) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// StoreInput 门店输入
type StoreInput struct {
	Name               string `json:"name"`
	OpeningTime        string `json:"opening_time"`
	ClosingTime        string `json:"closing_time"`
	PreparationMinutes int    `json:"preparation_minutes"`
	CleanupMinutes     int    `json:"cleanup_minutes"`
}

func (in *StoreInput) validate() *errors.AppError {
	if in.Name == "" {
		return errors.InvalidInput("name", "不能为空")
	}
	if !model.IsValidClock(in.OpeningTime) {
		return errors.InvalidInput("opening_time", "时间格式应为 HH:MM")
	}
	if !model.IsValidClock(in.ClosingTime) {
		return errors.InvalidInput("closing_time", "时间格式应为 HH:MM")
	}
	return nil
}

// Create 创建门店
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in StoreInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	store := &model.Store{
		BaseModel:          model.NewBaseModel(),
		Name:               in.Name,
		OpeningTime:        in.OpeningTime,
		ClosingTime:        in.ClosingTime,
		PreparationMinutes: in.PreparationMinutes,
		CleanupMinutes:     in.CleanupMinutes,
	}

	if err := h.stores.Create(r.Context(), store); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建门店失败"))
		return
	}

	respondJSON(w, http.StatusCreated, store)
}

// Get 获取门店
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	store, err := h.stores.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询门店失败"))
		return
	}
	if store == nil {
		respondError(w, errors.NotFound("门店", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, store)
}

// Update 更新门店
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in StoreInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	store, err := h.stores.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询门店失败"))
		return
	}
	if store == nil {
		respondError(w, errors.NotFound("门店", id.String()))
		return
	}

	store.Name = in.Name
	store.OpeningTime = in.OpeningTime
	store.ClosingTime = in.ClosingTime
	store.PreparationMinutes = in.PreparationMinutes
	store.CleanupMinutes = in.CleanupMinutes

	if err := h.stores.Update(r.Context(), store); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新门店失败"))
		return
	}

	respondJSON(w, http.StatusOK, store)
}

// Delete 删除门店
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.stores.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除门店失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// List 查询门店列表
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.stores.List(r.Context())
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询门店列表失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stores": stores,
		"total":  len(stores),
	})
}
