// Package validator 提供班次提案的约束校验
package validator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationWeeklyHours ViolationType = "weekly_hours" // 周工时超限
	ViolationOverlap     ViolationType = "overlap"      // 班次时段重叠
)

// Violation 约束违规
// 校验只返回数据，不修改或剔除任何班次，是否放行由调用方决定
type Violation struct {
	Type      ViolationType `json:"type"`
	StaffID   uuid.UUID     `json:"staff_id"`
	StaffName string        `json:"staff_name,omitempty"`
	WeekStart string        `json:"week_start,omitempty"`
	Date      string        `json:"date,omitempty"`
	Hours     float64       `json:"hours,omitempty"`
	Limit     float64       `json:"limit,omitempty"`
	Message   string        `json:"message"`
}

// weekBucket 周工时聚合键
type weekBucket struct {
	staffID   uuid.UUID
	weekStart string
}

// ValidateWeeklyHours 校验每名店员每周的总工时
//
// 按（店员, 周一起始日）聚合全部班次的时长（跨日班次按顺延计算），
// 超过店员个人周工时上限的桶各产生一条违规。纯函数，重复调用结果一致。
func ValidateWeeklyHours(shifts []*model.Shift, staff map[uuid.UUID]*model.Staff) []Violation {
	hours := make(map[weekBucket]float64)
	for _, s := range shifts {
		key := weekBucket{staffID: s.StaffID, weekStart: model.WeekStartOf(s.Date)}
		hours[key] += s.DurationHours()
	}

	// 固定遍历顺序，保证结果可复现
	buckets := make([]weekBucket, 0, len(hours))
	for b := range hours {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].staffID != buckets[j].staffID {
			return buckets[i].staffID.String() < buckets[j].staffID.String()
		}
		return buckets[i].weekStart < buckets[j].weekStart
	})

	var violations []Violation
	for _, b := range buckets {
		st := staff[b.staffID]
		if st == nil {
			continue
		}
		total := hours[b]
		if total > st.MaxWeeklyHours {
			violations = append(violations, Violation{
				Type:      ViolationWeeklyHours,
				StaffID:   b.staffID,
				StaffName: st.Name,
				WeekStart: b.weekStart,
				Hours:     total,
				Limit:     st.MaxWeeklyHours,
				Message: fmt.Sprintf("店员 %s 在 %s 起的一周工作 %.1f 小时，超过上限 %.1f 小时",
					st.Name, b.weekStart, total, st.MaxWeeklyHours),
			})
		}
	}

	return violations
}

// DetectOverlaps 检测同一店员时段重叠的班次
// 供管理端手工调整班次后的二次校验使用
func DetectOverlaps(shifts []*model.Shift, staff map[uuid.UUID]*model.Staff) []Violation {
	byStaff := make(map[uuid.UUID][]*model.Shift)
	var order []uuid.UUID
	for _, s := range shifts {
		if _, ok := byStaff[s.StaffID]; !ok {
			order = append(order, s.StaffID)
		}
		byStaff[s.StaffID] = append(byStaff[s.StaffID], s)
	}

	var violations []Violation
	for _, staffID := range order {
		list := byStaff[staffID]

		sorted := make([]*model.Shift, len(list))
		copy(sorted, list)
		sort.Slice(sorted, func(i, j int) bool {
			si, _ := sorted[i].Window()
			sj, _ := sorted[j].Window()
			return si.Before(sj)
		})

		for i := 0; i < len(sorted)-1; i++ {
			if !sorted[i].Overlaps(sorted[i+1]) {
				continue
			}
			name := ""
			if st := staff[staffID]; st != nil {
				name = st.Name
			}
			violations = append(violations, Violation{
				Type:      ViolationOverlap,
				StaffID:   staffID,
				StaffName: name,
				Date:      sorted[i].Date,
				Message: fmt.Sprintf("店员 %s 在 %s 存在时段重叠的班次 %s-%s 与 %s-%s",
					name, sorted[i].Date,
					sorted[i].StartTime, sorted[i].EndTime,
					sorted[i+1].StartTime, sorted[i+1].EndTime),
			})
		}
	}

	return violations
}
