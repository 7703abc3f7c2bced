// Package stats 提供排班覆盖情况的统计分析
package stats

import (
	"github.com/canpai/canpai/pkg/model"
)

// CoverageReport 覆盖率报告
type CoverageReport struct {
	TotalSlots     int                    `json:"total_slots"`     // 范围内的需求时段总数
	SatisfiedSlots int                    `json:"satisfied_slots"` // 人数达标的时段数
	SatisfactionRate float64              `json:"satisfaction_rate"`
	Days           map[string]DayCoverage `json:"days"`
	Understaffed   []UnderstaffedSlot     `json:"understaffed,omitempty"`
}

// DayCoverage 单日覆盖情况
type DayCoverage struct {
	Date       string  `json:"date"`
	Slots      int     `json:"slots"`
	Satisfied  int     `json:"satisfied"`
	StaffCount int     `json:"staff_count"`
	TotalHours float64 `json:"total_hours"`
}

// UnderstaffedSlot 缺员时段
type UnderstaffedSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Required  int    `json:"required"`
	Assigned  int    `json:"assigned"`
	Shortage  int    `json:"shortage"`
}

// AnalyzeCoverage 对比需求与实际班次，统计范围内的覆盖情况
//
// 每个日期匹配其星期对应的全部需求时段，统计与需求时段重叠的班次人数；
// 人数未达标的时段进入 Understaffed 列表。只读分析，不改动任何输入。
func AnalyzeCoverage(dr model.DateRange, requirements []*model.StaffRequirement, shifts []*model.Shift) *CoverageReport {
	report := &CoverageReport{
		Days: make(map[string]DayCoverage),
	}

	byDay := make(map[int][]*model.StaffRequirement)
	for _, r := range requirements {
		byDay[r.DayOfWeek] = append(byDay[r.DayOfWeek], r)
	}

	for _, date := range dr.Dates() {
		day := DayCoverage{Date: date}

		staffSeen := make(map[string]bool)
		for _, s := range shifts {
			if s.Date != date {
				continue
			}
			day.TotalHours += s.DurationHours()
			if !staffSeen[s.StaffID.String()] {
				staffSeen[s.StaffID.String()] = true
				day.StaffCount++
			}
		}

		for _, req := range byDay[model.DayOfWeekOf(date)] {
			start, end := req.WindowOn(date)

			assigned := 0
			for _, s := range shifts {
				if s.OverlapsWindow(start, end) {
					assigned++
				}
			}

			day.Slots++
			report.TotalSlots++
			if assigned >= req.RequiredStaff {
				day.Satisfied++
				report.SatisfiedSlots++
			} else {
				report.Understaffed = append(report.Understaffed, UnderstaffedSlot{
					Date:      date,
					StartTime: req.StartTime,
					EndTime:   req.EndTime,
					Required:  req.RequiredStaff,
					Assigned:  assigned,
					Shortage:  req.RequiredStaff - assigned,
				})
			}
		}

		report.Days[date] = day
	}

	if report.TotalSlots > 0 {
		report.SatisfactionRate = 100 * float64(report.SatisfiedSlots) / float64(report.TotalSlots)
	}

	return report
}
