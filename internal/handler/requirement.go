// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/model"
)

// RequirementHandler 人员需求处理器
type RequirementHandler struct {
	requirements *repository.RequirementRepository
}

// NewRequirementHandler 创建人员需求处理器
func NewRequirementHandler(requirements *repository.RequirementRepository) *RequirementHandler {
	return &RequirementHandler{requirements: requirements}
}

// RequirementInput 人员需求输入
type RequirementInput struct {
	StoreID              uuid.UUID `json:"store_id"`
	DayOfWeek            int       `json:"day_of_week"` // 0=周一 ... 6=周日
	StartTime            string    `json:"start_time"`
	EndTime              string    `json:"end_time"`
	RequiredStaff        int       `json:"required_staff"`
	RequiredManagers     int       `json:"required_managers"`
	RequiredHallSkill    int       `json:"required_hall_skill"`
	RequiredKitchenSkill int       `json:"required_kitchen_skill"`
}

func (in *RequirementInput) validate() *errors.AppError {
	if in.StoreID == uuid.Nil {
		return errors.InvalidInput("store_id", "不能为空")
	}
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return errors.InvalidInput("day_of_week", "应在 0(周一) 到 6(周日) 之间")
	}
	if !model.IsValidClock(in.StartTime) {
		return errors.InvalidInput("start_time", "时间格式应为 HH:MM")
	}
	if !model.IsValidClock(in.EndTime) {
		return errors.InvalidInput("end_time", "时间格式应为 HH:MM")
	}
	if in.RequiredStaff < 1 {
		return errors.InvalidInput("required_staff", "至少需要1人")
	}
	if in.RequiredManagers < 0 || in.RequiredHallSkill < 0 || in.RequiredKitchenSkill < 0 {
		return errors.InvalidInput("required_managers", "人数不能为负数")
	}
	return nil
}

// Create 创建人员需求
func (h *RequirementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in RequirementInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	req := &model.StaffRequirement{
		BaseModel:            model.NewBaseModel(),
		StoreID:              in.StoreID,
		DayOfWeek:            in.DayOfWeek,
		StartTime:            in.StartTime,
		EndTime:              in.EndTime,
		RequiredStaff:        in.RequiredStaff,
		RequiredManagers:     in.RequiredManagers,
		RequiredHallSkill:    in.RequiredHallSkill,
		RequiredKitchenSkill: in.RequiredKitchenSkill,
	}

	if err := h.requirements.Create(r.Context(), req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建人员需求失败"))
		return
	}

	respondJSON(w, http.StatusCreated, req)
}

// Update 更新人员需求
func (h *RequirementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	var in RequirementInput
	if appErr := decodeJSON(r, &in); appErr != nil {
		respondError(w, appErr)
		return
	}
	if appErr := in.validate(); appErr != nil {
		respondError(w, appErr)
		return
	}

	req, err := h.requirements.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询人员需求失败"))
		return
	}
	if req == nil {
		respondError(w, errors.NotFound("人员需求", id.String()))
		return
	}

	req.DayOfWeek = in.DayOfWeek
	req.StartTime = in.StartTime
	req.EndTime = in.EndTime
	req.RequiredStaff = in.RequiredStaff
	req.RequiredManagers = in.RequiredManagers
	req.RequiredHallSkill = in.RequiredHallSkill
	req.RequiredKitchenSkill = in.RequiredKitchenSkill

	if err := h.requirements.Update(r.Context(), req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新人员需求失败"))
		return
	}

	respondJSON(w, http.StatusOK, req)
}

// Delete 删除人员需求
func (h *RequirementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathUUID(r, "id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	if err := h.requirements.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除人员需求失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListByStore 查询门店人员需求列表
func (h *RequirementHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, appErr := pathUUID(r, "store_id")
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	list, err := h.requirements.ListByStore(r.Context(), storeID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询人员需求列表失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requirements": list,
		"total":        len(list),
	})
}
