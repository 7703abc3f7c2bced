// Package model 定义餐饮排班系统的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// EmploymentType 雇佣形态
type EmploymentType string

const (
	EmploymentFixed    EmploymentType = "fixed"    // 固定排班
	EmploymentFlexible EmploymentType = "flexible" // 弹性排班
)

// 技能等级达到该值视为可独立承担对应岗位
const SkillThreshold = 3

// Staff 店员
type Staff struct {
	BaseModel
	StoreID   uuid.UUID  `json:"store_id" db:"store_id"`
	AccountID *uuid.UUID `json:"account_id,omitempty" db:"account_id"` // 未绑定账号时为 nil
	Name      string     `json:"name" db:"name"`

	EmploymentType    EmploymentType `json:"employment_type" db:"employment_type"`
	HourlyWage        float64        `json:"hourly_wage" db:"hourly_wage"`
	HallSkillLevel    int            `json:"hall_skill_level" db:"hall_skill_level"`       // 1-5
	KitchenSkillLevel int            `json:"kitchen_skill_level" db:"kitchen_skill_level"` // 1-5
	IsManager         bool           `json:"is_manager" db:"is_manager"`
	MaxWeeklyHours    float64        `json:"max_weekly_hours" db:"max_weekly_hours"`
}

// HasAccount 检查店员是否绑定了登录账号
func (s *Staff) HasAccount() bool {
	return s.AccountID != nil
}

// IsHallSkilled 检查是否具备前厅独立作业技能
func (s *Staff) IsHallSkilled() bool {
	return s.HallSkillLevel >= SkillThreshold
}

// IsKitchenSkilled 检查是否具备后厨独立作业技能
func (s *Staff) IsKitchenSkilled() bool {
	return s.KitchenSkillLevel >= SkillThreshold
}
