// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/model"
)

// StaffHandler 员工处理器
type StaffHandler struct {
	staff *repository.StaffRepository
}

// NewStaffHandler 创建员工处理器
func NewStaffHandler(staff *repository.StaffRepository) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// StaffInput 员工输入
type StaffInput struct {
	StoreID           uuid.UUID  `json:"store_id"`
	AccountID         *uuid.UUID `json:"account_id,omitempty"`
	Name              string     `json:"name"`
	EmploymentType    string     `json:"employment_type"`
	HourlyWage        float64    `json:"hourly_wage"`
	HallSkillLevel    int        `json:"hall_skill_level"`
	KitchenSkillLevel int        `json:"kitchen_skill_level"`
	IsManager         bool       `json:"is_manager"`
	MaxWeeklyHours    float64    `json:"max_weekly_hours"`
}

func (in *StaffInput) validate() *errors.AppError {
	if in.StoreID == uuid.Nil {
		return errors.InvalidInput("store_id", "不能为空")
	}
	if in.Name == "" {
		return errors.InvalidInput("name", "不能为空")
	}
	et := model.EmploymentType(in.EmploymentType)
	if et != model.EmploymentFixed && et != model.EmploymentFlexible {
		return errors.InvalidInput("employment_type", "应为 fixed 或 flexible")
	}
	if in.HourlyWage < 0 {
		return errors.InvalidInput("hourly_wage", "不能为负数")
	}
	if in.HallSkillLevel < 1 || in.HallSkillLevel > 5 {
		return errors.InvalidInput("hall_skill_level", "应在 1 到 5 之间")
	}
	if in.KitchenSkillLevel < 1 || in.KitchenSkillLevel > 5 {
		return errors.InvalidInput("kitchen_skill_level", "应在 1 到 5 之间")
	}
	if in.MaxWeeklyHours <= 0 {
		return errors.InvalidInput("max_weekly_hours", "必须大于0")
	}
	return nil
}

// Create 创建员工
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in StaffInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	staff := &model.Staff{
		BaseModel:         model.NewBaseModel(),
		StoreID:           in.StoreID,
		AccountID:         in.AccountID,
		Name:              in.Name,
		EmploymentType:    model.EmploymentType(in.EmploymentType),
		HourlyWage:        in.HourlyWage,
		HallSkillLevel:    in.HallSkillLevel,
		KitchenSkillLevel: in.KitchenSkillLevel,
		IsManager:         in.IsManager,
		MaxWeeklyHours:    in.MaxWeeklyHours,
	}

	if err := h.staff.Create(r.Context(), staff); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建员工失败"))
		return
	}

	respondJSON(w, http.StatusCreated, staff)
}

// Get 获取员工
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	staff, err := h.staff.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工失败"))
		return
	}
	if staff == nil {
		respondError(w, errors.NotFound("员工", id.String()))
		return
	}

	respondJSON(w, http.StatusOK, staff)
}

// Update 更新员工
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in StaffInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	staff, err := h.staff.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工失败"))
		return
	}
	if staff == nil {
		respondError(w, errors.NotFound("员工", id.String()))
		return
	}

	staff.AccountID = in.AccountID
	staff.Name = in.Name
	staff.EmploymentType = model.EmploymentType(in.EmploymentType)
	staff.HourlyWage = in.HourlyWage
	staff.HallSkillLevel = in.HallSkillLevel
	staff.KitchenSkillLevel = in.KitchenSkillLevel
	staff.IsManager = in.IsManager
	staff.MaxWeeklyHours = in.MaxWeeklyHours

	if err := h.staff.Update(r.Context(), staff); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新员工失败"))
		return
	}

	respondJSON(w, http.StatusOK, staff)
}

// Delete 删除员工
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.staff.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除员工失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListByStore 查询门店员工列表
func (h *StaffHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, appErr := pathUUID(r, "store_id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	list, err := h.staff.ListByStore(r.Context(), storeID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工列表失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"staff": list,
		"total": len(list),
	})
}
