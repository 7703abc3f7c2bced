// Package model 定义餐饮排班系统的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestType 希望班次种别
type RequestType string

const (
	RequestOff  RequestType = "off"  // 休假希望
	RequestWork RequestType = "work" // 出勤希望
)

// ShiftRequest 店员提交的希望班次
// 同一店员同一日期每种别至多一条
type ShiftRequest struct {
	BaseModel
	StaffID     uuid.UUID   `json:"staff_id" db:"staff_id"`
	Date        string      `json:"date" db:"date"` // YYYY-MM-DD
	RequestType RequestType `json:"request_type" db:"request_type"`
	StartTime   string      `json:"start_time,omitempty" db:"start_time"` // work 必填；off 可省略
	EndTime     string      `json:"end_time,omitempty" db:"end_time"`
	EndDate     string      `json:"end_date,omitempty" db:"end_date"` // 跨日希望的结束日期
	IsLocked    bool        `json:"is_locked" db:"is_locked"`
	SubmittedAt time.Time   `json:"submitted_at" db:"submitted_at"`
}

// CoversWindow 检查希望时段是否完整覆盖给定时段
// 休假希望未填时刻时视为覆盖全天
func (sr *ShiftRequest) CoversWindow(startClock, endClock string) bool {
	if sr.StartTime == "" || sr.EndTime == "" {
		return sr.RequestType == RequestOff
	}
	return sr.StartTime <= startClock && sr.EndTime >= endClock
}
