// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/logger"
	"github.com/canpai/canpai/pkg/model"
)

// ShiftHandler 班次处理器
type ShiftHandler struct {
	shifts *repository.ShiftRepository
}

// NewShiftHandler 创建班次处理器
func NewShiftHandler(shifts *repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

// ListByStore 查询门店在日期区间内的班次
func (h *ShiftHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, appErr := pathUUID(r, "store_id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	dr, appErr := dateRangeFromQuery(r)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	list, err := h.shifts.ListByStorePeriod(r.Context(), storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次列表失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shifts": list,
		"total":  len(list),
	})
}

// ShiftUpdateInput 班次修改输入
type ShiftUpdateInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EndDate   string `json:"end_date,omitempty"`
}

// Update 修改班次时间
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in ShiftUpdateInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if !model.IsValidDate(in.Date) {
		respondError(w, errors.InvalidInput("date", "日期格式应为 YYYY-MM-DD"))
		return
	}
	if !model.IsValidClock(in.StartTime) || !model.IsValidClock(in.EndTime) {
		respondError(w, errors.InvalidInput("start_time", "时间格式应为 HH:MM"))
		return
	}
	if in.EndDate != "" && !model.IsValidDate(in.EndDate) {
		respondError(w, errors.InvalidInput("end_date", "日期格式应为 YYYY-MM-DD"))
		return
	}

	shift, err := h.shifts.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败"))
		return
	}
	if shift == nil {
		respondError(w, errors.NotFound("班次", id.String()))
		return
	}

	shift.Date = in.Date
	shift.StartTime = in.StartTime
	shift.EndTime = in.EndTime
	shift.EndDate = in.EndDate

	if err := h.shifts.Update(r.Context(), shift); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新班次失败"))
		return
	}

	respondJSON(w, http.StatusOK, shift)
}

// Delete 删除班次
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.shifts.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除班次失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ConfirmInput 批量确认输入
type ConfirmInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Confirm 批量确认门店在日期区间内的班次
func (h *ShiftHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	storeID, appErr := pathUUID(r, "store_id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in ConfirmInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	dr := model.DateRange{StartDate: in.StartDate, EndDate: in.EndDate}
	if !model.IsValidDate(dr.StartDate) || !model.IsValidDate(dr.EndDate) {
		respondError(w, errors.New(errors.CodeInvalidInput, "start_date 和 end_date 必须为 YYYY-MM-DD 格式"))
		return
	}
	if !dr.IsValid() {
		respondError(w, errors.InvalidDateRange(dr.StartDate, dr.EndDate))
		return
	}

	count, err := h.shifts.ConfirmByStorePeriod(r.Context(), storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "批量确认班次失败"))
		return
	}

	logger.Info().
		Str("store_id", storeID.String()).
		Str("start_date", dr.StartDate).
		Str("end_date", dr.EndDate).
		Int("confirmed", count).
		Msg("班次批量确认")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"confirmed": count,
	})
}
