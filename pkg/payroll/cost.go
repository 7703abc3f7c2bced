// Package payroll 提供班次人件费的估算
package payroll

import (
	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// EstimateCost 计算一组班次的人件费合计
//
// 每条班次的费用 = 勤务时长（小时）× 店员时薪。纯函数，无副作用，
// 对不相交的班次集合满足可加性。确定前的预估与确定后的实绩使用同一公式，
// 区别只在传入哪一组班次。店员快照里找不到的班次不计费。
func EstimateCost(shifts []*model.Shift, staff map[uuid.UUID]*model.Staff) float64 {
	var total float64
	for _, s := range shifts {
		st := staff[s.StaffID]
		if st == nil {
			continue
		}
		total += s.DurationHours() * st.HourlyWage
	}
	return total
}

// Breakdown 人件费明细
type Breakdown struct {
	Total   float64            `json:"total"`
	ByStaff map[string]float64 `json:"by_staff"` // 店员ID -> 金额
	ByDate  map[string]float64 `json:"by_date"`  // 日期 -> 金额
}

// Summarize 计算人件费明细
func Summarize(shifts []*model.Shift, staff map[uuid.UUID]*model.Staff) *Breakdown {
	b := &Breakdown{
		ByStaff: make(map[string]float64),
		ByDate:  make(map[string]float64),
	}
	for _, s := range shifts {
		st := staff[s.StaffID]
		if st == nil {
			continue
		}
		cost := s.DurationHours() * st.HourlyWage
		b.Total += cost
		b.ByStaff[s.StaffID.String()] += cost
		b.ByDate[s.Date] += cost
	}
	return b
}
