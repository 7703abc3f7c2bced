// Package handler 提供HTTP请求处理器
package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/middleware"
	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/model"
)

// RequestHandler 班次申请处理器
type RequestHandler struct {
	requests *repository.RequestRepository
}

// NewRequestHandler 创建班次申请处理器
func NewRequestHandler(requests *repository.RequestRepository) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// RequestInput 班次申请输入
type RequestInput struct {
	StaffID     uuid.UUID `json:"staff_id,omitempty"` // 省略时使用当前登录员工
	Date        string    `json:"date"`
	RequestType string    `json:"request_type"` // off/work
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
}

func (in *RequestInput) validate() *errors.AppError {
	if !model.IsValidDate(in.Date) {
		return errors.InvalidInput("date", "日期格式应为 YYYY-MM-DD")
	}
	rt := model.RequestType(in.RequestType)
	if rt != model.RequestOff && rt != model.RequestWork {
		return errors.InvalidInput("request_type", "应为 off 或 work")
	}
	// 出勤希望必须给出时间段, 休假希望时间段可省略表示全天
	if rt == model.RequestWork {
		if !model.IsValidClock(in.StartTime) || !model.IsValidClock(in.EndTime) {
			return errors.InvalidInput("start_time", "出勤希望必须提供 HH:MM 格式的起止时间")
		}
	} else if in.StartTime != "" || in.EndTime != "" {
		if !model.IsValidClock(in.StartTime) || !model.IsValidClock(in.EndTime) {
			return errors.InvalidInput("start_time", "时间格式应为 HH:MM")
		}
	}
	if in.EndDate != "" && !model.IsValidDate(in.EndDate) {
		return errors.InvalidInput("end_date", "日期格式应为 YYYY-MM-DD")
	}
	return nil
}

// requestWriteError 把仓储写入错误映射为对应错误码
// 锁定与不存在是业务状态, 其余一律按数据库错误处理
func requestWriteError(err error, message string) *errors.AppError {
	switch {
	case stderrors.Is(err, repository.ErrRequestLocked):
		return errors.Wrap(err, errors.CodeRequestLocked, message)
	case stderrors.Is(err, repository.ErrRequestNotFound):
		return errors.Wrap(err, errors.CodeNotFound, message)
	default:
		return errors.Wrap(err, errors.CodeDatabaseError, message)
	}
}

// Submit 提交班次申请
// 同一员工同一天同一类型的申请覆盖旧值, 已锁定的申请拒绝修改。
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in RequestInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	staffID := in.StaffID
	if staffID == uuid.Nil {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || claims.StaffID == nil {
			respondError(w, errors.New(errors.CodeInvalidInput, "未指定员工且当前账号未绑定员工档案"))
			return
		}
		staffID = *claims.StaffID
	}

	req := &model.ShiftRequest{
		BaseModel:   model.NewBaseModel(),
		StaffID:     staffID,
		Date:        in.Date,
		RequestType: model.RequestType(in.RequestType),
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		EndDate:     in.EndDate,
		SubmittedAt: time.Now(),
	}

	if err := h.requests.Upsert(r.Context(), req); err != nil {
		respondError(w, requestWriteError(err, "提交班次申请失败"))
		return
	}

	respondJSON(w, http.StatusCreated, req)
}

// ListByStore 查询门店在日期区间内的班次申请
func (h *RequestHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.requests.ListByStorePeriod(r.Context(), storeID, dr.StartDate, dr.EndDate)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询班次申请列表失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": list,
		"total":    len(list),
	})
}

// SetLocked 设置申请锁定状态
func (h *RequestHandler) SetLocked(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in struct {
		IsLocked bool `json:"is_locked"`
	}
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.requests.SetLocked(r.Context(), id, in.IsLocked); err != nil {
		respondError(w, requestWriteError(err, "更新申请锁定状态失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"is_locked": in.IsLocked})
}

// Delete 删除班次申请
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.requests.Delete(r.Context(), id); err != nil {
		respondError(w, requestWriteError(err, "删除班次申请失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// dateRangeFromQuery 从查询参数解析日期区间
func dateRangeFromQuery(r *http.Request) (model.DateRange, *errors.AppError) {
	dr := model.DateRange{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if !model.IsValidDate(dr.StartDate) || !model.IsValidDate(dr.EndDate) {
		return dr, errors.New(errors.CodeInvalidInput, "start_date 和 end_date 必须为 YYYY-MM-DD 格式")
	}
	if !dr.IsValid() {
		return dr, errors.InvalidDateRange(dr.StartDate, dr.EndDate)
	}
	return dr, nil
}
