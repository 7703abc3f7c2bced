// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/config"
	"github.com/canpai/canpai/internal/metrics"
	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/logger"
	"github.com/canpai/canpai/pkg/model"
	"github.com/canpai/canpai/pkg/payroll"
	"github.com/canpai/canpai/pkg/scheduler"
	"github.com/canpai/canpai/pkg/validator"
)

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	cfg          *config.SchedulerConfig
	staff        *repository.StaffRepository
	requirements *repository.RequirementRepository
	requests     *repository.RequestRepository
	shifts       *repository.ShiftRepository
	generator    *scheduler.Generator

	// 同一门店的生成请求串行执行, 避免并发写入草稿班次
	storeLocks sync.Map // store_id -> *sync.Mutex
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(
	cfg *config.SchedulerConfig,
	staff *repository.StaffRepository,
	requirements *repository.RequirementRepository,
	requests *repository.RequestRepository,
	shifts *repository.ShiftRepository,
) *ScheduleHandler {
	return &ScheduleHandler{
		cfg:          cfg,
		staff:        staff,
		requirements: requirements,
		requests:     requests,
		shifts:       shifts,
		generator:    scheduler.NewGenerator(),
	}
}

// GenerateInput 排班生成输入
type GenerateInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GenerateResponse 排班生成响应
type GenerateResponse struct {
	Success    bool                  `json:"success"`
	Created    int                   `json:"created"`
	Skipped    int                   `json:"skipped"` // 因已有班次被跳过的数量
	Shifts     []*model.Shift        `json:"shifts"`
	Statistics *scheduler.Statistics `json:"statistics"`
	Violations []validator.Violation `json:"violations,omitempty"`
	Cost       float64               `json:"estimated_cost"`
	Duration   string                `json:"duration"`
}

// Generate 自动生成排班
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	storeID, appErr := pathUUID(r, "store_id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in GenerateInput
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
	if h.cfg.MaxRangeDays > 0 && dr.Days() > h.cfg.MaxRangeDays {
		respondError(w, errors.New(errors.CodeInvalidInput, "日期范围超出单次生成上限"))
		return
	}

	lock := h.lockFor(storeID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.DefaultTimeout)
	defer cancel()

	start := time.Now()

	sctx, appErr := h.buildContext(ctx, storeID, dr)
	if appErr != nil {
		metrics.RecordShiftGeneration(storeID.String(), 0, false, time.Since(start))
		respondError(w, appErr)
		return
	}

	result, err := h.generator.Generate(ctx, sctx)
	if err != nil {
		metrics.RecordShiftGeneration(storeID.String(), 0, false, time.Since(start))
		if ctx.Err() == context.DeadlineExceeded {
			respondError(w, errors.New(errors.CodeInternal, "排班计算超时，请缩短排班周期"))
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "排班生成失败"))
		return
	}

	// 幂等写入: 已有相同班次时跳过, 不覆盖人工调整
	created, skipped := 0, 0
	for _, shift := range result.Shifts {
		inserted, err := h.shifts.InsertIfAbsent(ctx, shift)
		if err != nil {
			metrics.RecordShiftGeneration(storeID.String(), created, false, time.Since(start))
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存班次失败"))
			return
		}
		if inserted {
			created++
		} else {
			skipped++
		}
	}

	// 周工时按完整自然周统计, 把区间扩展到周边界再查询
	wr := weekBoundedRange(dr)
	allShifts, err := h.shifts.ListByStorePeriod(ctx, storeID, wr.StartDate, wr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败"))
		return
	}

	staffMap := make(map[uuid.UUID]*model.Staff, len(sctx.Staff))
	for _, s := range sctx.Staff {
		staffMap[s.ID] = s
	}

	violations := validator.ValidateWeeklyHours(allShifts, staffMap)
	slog := logger.NewSchedulerLogger()
	for _, v := range violations {
		slog.WeeklyHoursViolation(v.StaffName, v.WeekStart, v.Hours, v.Limit)
	}

	cost := payroll.EstimateCost(result.Shifts, staffMap)

	duration := time.Since(start)
	metrics.RecordShiftGeneration(storeID.String(), created, true, duration)
	metrics.SetWeeklyHoursViolations(storeID.String(), len(violations))
	metrics.SetFillRate(storeID.String(), result.Statistics.FillRate)
	metrics.SetEstimatedCost(storeID.String(), cost)

	logger.Info().
		Str("store_id", storeID.String()).
		Int("created", created).
		Int("skipped", skipped).
		Int("violations", len(violations)).
		Float64("cost", cost).
		Dur("duration", duration).
		Msg("排班生成完成")

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success:    true,
		Created:    created,
		Skipped:    skipped,
		Shifts:     result.Shifts,
		Statistics: result.Statistics,
		Violations: violations,
		Cost:       cost,
		Duration:   duration.String(),
	})
}

// ValidateResponse 排班校验响应
type ValidateResponse struct {
	Valid      bool                  `json:"valid"`
	Violations []validator.Violation `json:"violations"`
}

// Validate 校验门店在日期区间内的排班
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
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

	wr := weekBoundedRange(dr)
	shifts, err := h.shifts.ListByStorePeriod(r.Context(), storeID, wr.StartDate, wr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败"))
		return
	}

	roster, err := h.staff.ListByStore(r.Context(), storeID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工列表失败"))
		return
	}
	staffMap := make(map[uuid.UUID]*model.Staff, len(roster))
	for _, s := range roster {
		staffMap[s.ID] = s
	}

	violations := validator.ValidateWeeklyHours(shifts, staffMap)
	violations = append(violations, validator.DetectOverlaps(shifts, staffMap)...)

	respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// CostResponse 成本估算响应
type CostResponse struct {
	Breakdown *payroll.Breakdown `json:"breakdown"`
}

// Cost 估算门店在日期区间内的人力成本
func (h *ScheduleHandler) Cost(w http.ResponseWriter, r *http.Request) {
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

	shifts, err := h.shifts.ListByStorePeriod(r.Context(), storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败"))
		return
	}

	// confirmed_only=true 时只统计已确认班次
	if r.URL.Query().Get("confirmed_only") == "true" {
		confirmed := shifts[:0]
		for _, s := range shifts {
			if s.IsConfirmed {
				confirmed = append(confirmed, s)
			}
		}
		shifts = confirmed
	}

	roster, err := h.staff.ListByStore(r.Context(), storeID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工列表失败"))
		return
	}
	staffMap := make(map[uuid.UUID]*model.Staff, len(roster))
	for _, s := range roster {
		staffMap[s.ID] = s
	}

	respondJSON(w, http.StatusOK, CostResponse{
		Breakdown: payroll.Summarize(shifts, staffMap),
	})
}

// weekBoundedRange 把日期区间扩展到所在自然周的周一和周日
func weekBoundedRange(dr model.DateRange) model.DateRange {
	start := model.WeekStartOf(dr.StartDate)
	end := dr.EndDate
	if t, err := time.Parse(model.DateLayout, model.WeekStartOf(dr.EndDate)); err == nil {
		end = t.AddDate(0, 0, 6).Format(model.DateLayout)
	}
	return model.DateRange{StartDate: start, EndDate: end}
}

// lockFor 获取门店级别的互斥锁
func (h *ScheduleHandler) lockFor(storeID uuid.UUID) *sync.Mutex {
	actual, _ := h.storeLocks.LoadOrStore(storeID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// buildContext 加载排班所需的全部数据
func (h *ScheduleHandler) buildContext(ctx context.Context, storeID uuid.UUID, dr model.DateRange) (*scheduler.Context, *errors.AppError) {
	roster, err := h.staff.ListByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询员工列表失败")
	}
	if len(roster) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "门店没有员工, 无法生成排班")
	}

	requirements, err := h.requirements.ListByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询人员需求失败")
	}
	if len(requirements) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "门店没有人员需求配置, 无法生成排班")
	}

	requests, err := h.requests.ListByStorePeriod(ctx, storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询班次申请失败")
	}

	existing, err := h.shifts.ListByStorePeriod(ctx, storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询已有班次失败")
	}

	sctx := scheduler.NewContext(storeID, dr.StartDate, dr.EndDate)
	sctx.SetStaff(roster)
	sctx.SetRequirements(requirements)
	sctx.SetRequests(requests)
	sctx.SetExistingShifts(existing)

	return sctx, nil
}
