// Package scheduler 提供自动班次生成引擎
package scheduler

import (
	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// slotTask 单个需求时段的分配任务
type slotTask struct {
	Date        string
	Requirement *model.StaffRequirement

	// Excluded 该时段不可用的店员：已有重叠班次（含本次运行的提案）或休假希望覆盖该时段
	Excluded map[uuid.UUID]bool

	// Priority 出勤希望覆盖该时段的店员（按希望的提交顺序）
	Priority []*model.Staff
}

// resolveSlot 解析单个需求时段的分配任务
// 必须在该时段选人之前、同日更早时段的提案入库之后调用：
// 排除集会重新扫描提案，保证同日重叠时段看得到彼此的分配结果
func resolveSlot(ctx *Context, date string, req *model.StaffRequirement) slotTask {
	start, end := req.WindowOn(date)

	// 重叠班次排除（重叠判定：已有.start < 需求.end 且 已有.end > 需求.start）
	excluded := ctx.BookedStaff(start, end)

	requests := ctx.RequestsOn(date)

	// 休假希望完整覆盖需求时段的店员不参与分配
	for _, r := range requests {
		if r.RequestType == model.RequestOff && r.CoversWindow(req.StartTime, req.EndTime) {
			excluded[r.StaffID] = true
		}
	}

	// 出勤希望完整覆盖需求时段的店员作为优先候选
	// 已被排除（重叠或休假）的店员不进入优先列表
	var priority []*model.Staff
	seen := make(map[uuid.UUID]bool)
	for _, r := range requests {
		if r.RequestType != model.RequestWork || !r.CoversWindow(req.StartTime, req.EndTime) {
			continue
		}
		if excluded[r.StaffID] || seen[r.StaffID] {
			continue
		}
		if s := ctx.GetStaff(r.StaffID); s != nil {
			priority = append(priority, s)
			seen[r.StaffID] = true
		}
	}

	return slotTask{
		Date:        date,
		Requirement: req,
		Excluded:    excluded,
		Priority:    priority,
	}
}
