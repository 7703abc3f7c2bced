// Package model 定义餐饮排班系统的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift 班次记录
// 引擎生成时 IsConfirmed 恒为 false，由管理端确定后置为 true
type Shift struct {
	BaseModel
	StoreID   uuid.UUID `json:"store_id" db:"store_id"`
	StaffID   uuid.UUID `json:"staff_id" db:"staff_id"`
	Date      string    `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`     // HH:MM
	EndDate   string    `json:"end_date,omitempty" db:"end_date"` // 跨日班次的结束日期
	IsConfirmed bool    `json:"is_confirmed" db:"is_confirmed"`
}

// Window 返回班次的具体起止时间（跨日班次结束时间顺延一天）
func (s *Shift) Window() (time.Time, time.Time) {
	start := CombineDateClock(s.Date, s.StartTime)

	endDate := s.Date
	if s.EndDate != "" {
		endDate = s.EndDate
	}
	end := CombineDateClock(endDate, s.EndTime)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}

// DurationHours 返回勤务时长（小时，跨日班次按顺延计算）
func (s *Shift) DurationHours() float64 {
	start, end := s.Window()
	return end.Sub(start).Hours()
}

// Overlaps 检查两个班次的时段是否重叠
func (s *Shift) Overlaps(other *Shift) bool {
	s1, e1 := s.Window()
	s2, e2 := other.Window()
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapsWindow 检查班次与给定时段是否重叠
func (s *Shift) OverlapsWindow(start, end time.Time) bool {
	s1, e1 := s.Window()
	return s1.Before(end) && start.Before(e1)
}
