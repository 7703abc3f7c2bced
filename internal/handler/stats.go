// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/stats"
)

// StatsHandler 统计分析处理器
type StatsHandler struct {
	requirements *repository.RequirementRepository
	shifts       *repository.ShiftRepository
}

// NewStatsHandler 创建统计分析处理器
func NewStatsHandler(requirements *repository.RequirementRepository, shifts *repository.ShiftRepository) *StatsHandler {
	return &StatsHandler{requirements: requirements, shifts: shifts}
}

// Coverage 门店排班覆盖率分析
func (h *StatsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
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

	requirements, err := h.requirements.ListByStore(r.Context(), storeID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询人员需求失败"))
		return
	}

	shifts, err := h.shifts.ListByStorePeriod(r.Context(), storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败"))
		return
	}

	report := stats.AnalyzeCoverage(dr, requirements, shifts)
	respondJSON(w, http.StatusOK, report)
}
