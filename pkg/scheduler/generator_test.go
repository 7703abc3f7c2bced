package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/model"
)

func TestGenerator_InvalidDateRange(t *testing.T) {
	ctx := NewContext(uuid.New(), "2026-03-08", "2026-03-02")

	_, err := NewGenerator().Generate(context.Background(), ctx)
	if err == nil {
		t.Fatal("结束日期早于开始日期应报错")
	}
	if !apperrors.Is(err, apperrors.CodeInvalidDateRange) {
		t.Errorf("错误码应为 INVALID_DATE_RANGE, got %s", apperrors.GetCode(err))
	}
}

func TestGenerator_EmptyWeekdayProducesNothing(t *testing.T) {
	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{newStaff("甲", false, 1, 1)})
	ctx.SetRequirements([]*model.StaffRequirement{
		newRequirement(3, "10:00", "14:00", 1, 0, 0, 0), // 只有周四的需求
	})

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if len(result.Shifts) != 0 {
		t.Errorf("无匹配需求的日期不应产生班次, got %d", len(result.Shifts))
	}
	if result.Statistics.TotalSlots != 0 {
		t.Errorf("时段数应为0, got %d", result.Statistics.TotalSlots)
	}
}

func TestGenerator_BasicWeek(t *testing.T) {
	storeID := uuid.New()
	manager := newStaff("责任者", true, 5, 3)
	hall := newStaff("前厅", false, 4, 1)
	kitchen := newStaff("后厨", false, 1, 4)

	ctx := NewContext(storeID, "2026-03-02", "2026-03-08")
	ctx.SetStaff([]*model.Staff{manager, hall, kitchen})

	// 周一到周日每天一个午市时段
	var reqs []*model.StaffRequirement
	for day := 0; day <= 6; day++ {
		reqs = append(reqs, newRequirement(day, "11:00", "15:00", 2, 1, 0, 0))
	}
	ctx.SetRequirements(reqs)

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	if result.Statistics.TotalSlots != 7 {
		t.Errorf("应有7个时段, got %d", result.Statistics.TotalSlots)
	}
	if len(result.Shifts) != 14 {
		t.Errorf("应生成14条班次, got %d", len(result.Shifts))
	}

	for _, s := range result.Shifts {
		if s.IsConfirmed {
			t.Error("生成的班次必须是未确定状态")
		}
		if s.StoreID != storeID {
			t.Error("班次应归属发起生成的店铺")
		}
		if s.DurationHours() <= 0 {
			t.Errorf("班次时长必须为正, got %v", s.DurationHours())
		}
	}

	// 每天都应有责任者
	managerDays := make(map[string]bool)
	for _, s := range result.Shifts {
		if s.StaffID == manager.ID {
			managerDays[s.Date] = true
		}
	}
	if len(managerDays) != 7 {
		t.Errorf("责任者应每天入选, got %d 天", len(managerDays))
	}
}

func TestGenerator_NoDoubleBookingWithinRun(t *testing.T) {
	// 同一天两个重叠时段竞争同一批店员时，后一个时段必须避开已生成的提案
	a := newStaff("甲", false, 1, 1)
	b := newStaff("乙", false, 1, 1)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a, b})
	ctx.SetRequirements([]*model.StaffRequirement{
		newRequirement(0, "10:00", "14:00", 1, 0, 0, 0),
		newRequirement(0, "12:00", "16:00", 1, 0, 0, 0),
	})

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if len(result.Shifts) != 2 {
		t.Fatalf("应生成2条班次, got %d", len(result.Shifts))
	}
	if result.Shifts[0].StaffID == result.Shifts[1].StaffID {
		t.Error("重叠时段不应分配同一店员")
	}
}

func TestGenerator_UniquePerSlot(t *testing.T) {
	var roster []*model.Staff
	for i := 0; i < 6; i++ {
		roster = append(roster, newStaff("店员", i%2 == 0, 3, 3))
	}

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff(roster)
	ctx.SetRequirements([]*model.StaffRequirement{
		newRequirement(0, "10:00", "18:00", 5, 2, 2, 2),
	})

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	seen := make(map[uuid.UUID]bool)
	for _, s := range result.Shifts {
		if seen[s.StaffID] {
			t.Errorf("店员 %s 在同一时段重复出现", s.StaffID)
		}
		seen[s.StaffID] = true
	}
}

func TestGenerator_ShortfallReported(t *testing.T) {
	a := newStaff("甲", false, 1, 1)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a})
	ctx.SetRequirements([]*model.StaffRequirement{
		newRequirement(0, "10:00", "14:00", 3, 0, 0, 0),
	})

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("缺员不应报错: %v", err)
	}
	if len(result.Shifts) != 1 {
		t.Fatalf("应生成1条班次, got %d", len(result.Shifts))
	}
	if len(result.Statistics.Shortfalls) != 1 {
		t.Fatalf("应报告1个缺员时段, got %d", len(result.Statistics.Shortfalls))
	}
	sf := result.Statistics.Shortfalls[0]
	if sf.Required != 3 || sf.Assigned != 1 || sf.Shortage != 2 {
		t.Errorf("缺员统计错误: %+v", sf)
	}
}

func TestGenerator_OffRequestNeverAssigned(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	b := newStaff("乙", false, 1, 1)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a, b})
	ctx.SetRequirements([]*model.StaffRequirement{
		newRequirement(0, "10:00", "14:00", 2, 0, 0, 0),
	})
	ctx.SetRequests([]*model.ShiftRequest{
		{
			BaseModel:   model.BaseModel{ID: uuid.New()},
			StaffID:     a.ID,
			Date:        "2026-03-02",
			RequestType: model.RequestOff,
			StartTime:   "09:00",
			EndTime:     "18:00",
		},
	})

	result, err := NewGenerator().Generate(context.Background(), ctx)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	for _, s := range result.Shifts {
		if s.StaffID == a.ID {
			t.Fatal("休假希望覆盖时段的店员不应出现在提案中")
		}
	}
}
