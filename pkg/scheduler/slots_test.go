package scheduler

import (
	"testing"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

func TestResolveSlot_OffRequestExcludes(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	b := newStaff("乙", false, 1, 1)
	req := newRequirement(0, "10:00", "14:00", 2, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a, b})
	ctx.SetRequirements([]*model.StaffRequirement{req})
	// 甲的休假希望完整覆盖需求时段
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

	task := resolveSlot(ctx, "2026-03-02", req)
	if !task.Excluded[a.ID] {
		t.Error("休假希望覆盖时段的店员应被排除")
	}
	if task.Excluded[b.ID] {
		t.Error("乙不应被排除")
	}
}

func TestResolveSlot_PartialOffRequestDoesNotExclude(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	req := newRequirement(0, "10:00", "14:00", 1, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a})
	ctx.SetRequirements([]*model.StaffRequirement{req})
	// 休假希望只覆盖需求时段的后半
	ctx.SetRequests([]*model.ShiftRequest{
		{
			BaseModel:   model.BaseModel{ID: uuid.New()},
			StaffID:     a.ID,
			Date:        "2026-03-02",
			RequestType: model.RequestOff,
			StartTime:   "12:00",
			EndTime:     "18:00",
		},
	})

	task := resolveSlot(ctx, "2026-03-02", req)
	if task.Excluded[a.ID] {
		t.Error("未完整覆盖需求时段的休假希望不应排除店员")
	}
}

func TestResolveSlot_WorkRequestBuildsPriority(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	b := newStaff("乙", false, 1, 1)
	req := newRequirement(0, "10:00", "14:00", 2, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a, b})
	ctx.SetRequirements([]*model.StaffRequirement{req})
	ctx.SetRequests([]*model.ShiftRequest{
		{
			BaseModel:   model.BaseModel{ID: uuid.New()},
			StaffID:     b.ID,
			Date:        "2026-03-02",
			RequestType: model.RequestWork,
			StartTime:   "10:00",
			EndTime:     "14:00",
		},
	})

	task := resolveSlot(ctx, "2026-03-02", req)
	if len(task.Priority) != 1 || task.Priority[0].ID != b.ID {
		t.Fatalf("乙应进入优先列表, got %v", task.Priority)
	}
}

func TestResolveSlot_ExistingShiftExcludes(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	req := newRequirement(0, "10:00", "14:00", 1, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a})
	ctx.SetRequirements([]*model.StaffRequirement{req})
	// 甲已有与需求时段重叠的班次
	ctx.SetExistingShifts([]*model.Shift{
		{
			BaseModel: model.BaseModel{ID: uuid.New()},
			StaffID:   a.ID,
			Date:      "2026-03-02",
			StartTime: "13:00",
			EndTime:   "17:00",
		},
	})

	task := resolveSlot(ctx, "2026-03-02", req)
	if !task.Excluded[a.ID] {
		t.Error("已有重叠班次的店员应被排除")
	}
}

func TestResolveSlot_ProposalExcludesInOverlappingSlot(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	first := newRequirement(0, "10:00", "14:00", 1, 0, 0, 0)
	second := newRequirement(0, "12:00", "16:00", 1, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a})
	ctx.SetRequirements([]*model.StaffRequirement{first, second})

	// 先把甲分配到第一个时段的提案
	ctx.AddProposal(&model.Shift{
		BaseModel: model.NewBaseModel(),
		StaffID:   a.ID,
		Date:      "2026-03-02",
		StartTime: first.StartTime,
		EndTime:   first.EndTime,
	})

	// 重叠的第二个时段解析时应看到该提案
	task := resolveSlot(ctx, "2026-03-02", second)
	if !task.Excluded[a.ID] {
		t.Error("同一次运行内已有提案的店员在重叠时段应被排除")
	}
}

func TestResolveSlot_WorkRequesterWithOverlapStaysExcluded(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	req := newRequirement(0, "10:00", "14:00", 1, 0, 0, 0)

	ctx := NewContext(uuid.New(), "2026-03-02", "2026-03-02")
	ctx.SetStaff([]*model.Staff{a})
	ctx.SetRequirements([]*model.StaffRequirement{req})
	ctx.SetRequests([]*model.ShiftRequest{
		{
			BaseModel:   model.BaseModel{ID: uuid.New()},
			StaffID:     a.ID,
			Date:        "2026-03-02",
			RequestType: model.RequestWork,
			StartTime:   "09:00",
			EndTime:     "15:00",
		},
	})
	ctx.SetExistingShifts([]*model.Shift{
		{
			BaseModel: model.BaseModel{ID: uuid.New()},
			StaffID:   a.ID,
			Date:      "2026-03-02",
			StartTime: "10:00",
			EndTime:   "14:00",
		},
	})

	task := resolveSlot(ctx, "2026-03-02", req)
	// 即使提交了出勤希望，已有重叠班次的店员也不进入优先列表
	if len(task.Priority) != 0 {
		t.Error("已被排除的店员不应进入优先列表")
	}
}
