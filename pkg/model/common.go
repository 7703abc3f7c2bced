// Package model 定义餐饮排班系统的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// 日期与时刻的标准格式
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// IsValidDate 检查日期字符串格式
func IsValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// IsValidClock 检查时刻字符串格式
func IsValidClock(clock string) bool {
	_, err := time.Parse(ClockLayout, clock)
	return err == nil
}

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateRange 日期范围（闭区间）
type DateRange struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// IsValid 检查日期范围是否合法（结束日期不早于开始日期）
func (dr DateRange) IsValid() bool {
	start, err1 := time.Parse(DateLayout, dr.StartDate)
	end, err2 := time.Parse(DateLayout, dr.EndDate)
	if err1 != nil || err2 != nil {
		return false
	}
	return !end.Before(start)
}

// Days 返回范围内的天数
func (dr DateRange) Days() int {
	start, err1 := time.Parse(DateLayout, dr.StartDate)
	end, err2 := time.Parse(DateLayout, dr.EndDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Dates 返回范围内的所有日期（升序）
func (dr DateRange) Dates() []string {
	start, err1 := time.Parse(DateLayout, dr.StartDate)
	end, err2 := time.Parse(DateLayout, dr.EndDate)
	if err1 != nil || err2 != nil {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// DayOfWeekOf 返回日期的星期编码（0=周一 ... 6=周日）
func DayOfWeekOf(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return -1
	}
	return (int(t.Weekday()) + 6) % 7
}

// WeekStartOf 返回日期所在周的周一日期
func WeekStartOf(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// CombineDateClock 将日期与时刻组合为具体时间点
func CombineDateClock(date, clock string) time.Time {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return d
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}
