// Package model 定义餐饮排班系统的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffRequirement 按星期设置的时段人数需求
// 同一星期允许存在多条需求，时段可重叠，引擎不做合并
type StaffRequirement struct {
	BaseModel
	StoreID   uuid.UUID `json:"store_id" db:"store_id"`
	DayOfWeek int       `json:"day_of_week" db:"day_of_week"` // 0=周一 ... 6=周日
	StartTime string    `json:"start_time" db:"start_time"`   // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`       // HH:MM（不晚于开始时刻视为跨午夜）

	RequiredStaff        int `json:"required_staff" db:"required_staff"`
	RequiredManagers     int `json:"required_managers" db:"required_managers"`
	RequiredHallSkill    int `json:"required_hall_skill" db:"required_hall_skill"`
	RequiredKitchenSkill int `json:"required_kitchen_skill" db:"required_kitchen_skill"`
}

// WindowOn 返回需求时段在指定日期上的具体起止时间
// 结束时刻不晚于开始时刻时按跨午夜处理（顺延24小时）
func (r *StaffRequirement) WindowOn(date string) (time.Time, time.Time) {
	start := CombineDateClock(date, r.StartTime)
	end := CombineDateClock(date, r.EndTime)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}
