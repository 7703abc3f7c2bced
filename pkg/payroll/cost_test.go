package payroll

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

func newStaff(wage float64) *model.Staff {
	return &model.Staff{
		BaseModel:  model.BaseModel{ID: uuid.New()},
		HourlyWage: wage,
	}
}

func newShift(staffID uuid.UUID, date, start, end string) *model.Shift {
	return &model.Shift{
		BaseModel: model.BaseModel{ID: uuid.New()},
		StaffID:   staffID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func TestEstimateCost(t *testing.T) {
	a := newStaff(1000)
	b := newStaff(1500)
	staff := map[uuid.UUID]*model.Staff{a.ID: a, b.ID: b}

	shifts := []*model.Shift{
		newShift(a.ID, "2026-03-02", "10:00", "18:00"), // 8h × 1000
		newShift(b.ID, "2026-03-02", "10:00", "14:00"), // 4h × 1500
	}

	if got := EstimateCost(shifts, staff); got != 14000 {
		t.Errorf("EstimateCost() = %v, expected 14000", got)
	}
}

func TestEstimateCost_CrossMidnight(t *testing.T) {
	a := newStaff(1250)
	staff := map[uuid.UUID]*model.Staff{a.ID: a}

	shifts := []*model.Shift{
		newShift(a.ID, "2026-03-02", "22:00", "06:00"), // 8h × 1250
	}

	if got := EstimateCost(shifts, staff); got != 10000 {
		t.Errorf("跨日班次费用错误: %v", got)
	}
}

// 对不相交的班次集合，费用满足可加性
func TestEstimateCost_Additive(t *testing.T) {
	a := newStaff(1000)
	b := newStaff(1300)
	staff := map[uuid.UUID]*model.Staff{a.ID: a, b.ID: b}

	setA := []*model.Shift{
		newShift(a.ID, "2026-03-02", "10:00", "15:30"),
		newShift(b.ID, "2026-03-03", "11:00", "20:00"),
	}
	setB := []*model.Shift{
		newShift(a.ID, "2026-03-04", "09:00", "17:00"),
	}

	union := append(append([]*model.Shift{}, setA...), setB...)
	sum := EstimateCost(setA, staff) + EstimateCost(setB, staff)

	if diff := math.Abs(EstimateCost(union, staff) - sum); diff > 1e-9 {
		t.Errorf("可加性不成立, diff=%v", diff)
	}
}

func TestEstimateCost_UnknownStaffSkipped(t *testing.T) {
	a := newStaff(1000)
	staff := map[uuid.UUID]*model.Staff{a.ID: a}

	shifts := []*model.Shift{
		newShift(a.ID, "2026-03-02", "10:00", "14:00"),
		newShift(uuid.New(), "2026-03-02", "10:00", "14:00"), // 快照外的店员
	}

	if got := EstimateCost(shifts, staff); got != 4000 {
		t.Errorf("快照外店员不应计费, got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	a := newStaff(1000)
	staff := map[uuid.UUID]*model.Staff{a.ID: a}

	shifts := []*model.Shift{
		newShift(a.ID, "2026-03-02", "10:00", "14:00"),
		newShift(a.ID, "2026-03-03", "10:00", "18:00"),
	}

	b := Summarize(shifts, staff)
	if b.Total != 12000 {
		t.Errorf("合计错误: %v", b.Total)
	}
	if b.ByStaff[a.ID.String()] != 12000 {
		t.Errorf("按店员明细错误: %v", b.ByStaff)
	}
	if b.ByDate["2026-03-02"] != 4000 || b.ByDate["2026-03-03"] != 8000 {
		t.Errorf("按日期明细错误: %v", b.ByDate)
	}
}
