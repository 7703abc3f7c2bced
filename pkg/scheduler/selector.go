// Package scheduler 提供自动班次生成引擎
package scheduler

import (
	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// selectStaff 为单个时段任务挑选店员
//
// 固定的五轮贪心顺序，每个店员至多入选一次，并列时以名册顺序为准：
//  1. 出勤希望者优先
//  2. 补足责任者人数
//  3. 补足前厅技能人数（仅当需求要求时）
//  4. 补足后厨技能人数（仅当需求要求时）
//  5. 按名册顺序补齐剩余人数
//
// 人数不足不报错，返回的列表可能短于需求人数，缺口由统计信息体现。
func selectStaff(task slotTask, roster []*model.Staff) []*model.Staff {
	req := task.Requirement
	target := req.RequiredStaff

	var selected []*model.Staff
	picked := make(map[uuid.UUID]bool)

	pick := func(s *model.Staff) {
		selected = append(selected, s)
		picked[s.ID] = true
	}
	available := func(s *model.Staff) bool {
		return !picked[s.ID] && !task.Excluded[s.ID]
	}

	// 1. 出勤希望者（优先列表已排除不可用店员）
	for _, s := range task.Priority {
		if len(selected) >= target {
			break
		}
		if !picked[s.ID] {
			pick(s)
		}
	}

	// 2. 责任者（第一轮入选的责任者计入已满足数）
	managerCount := 0
	for _, s := range selected {
		if s.IsManager {
			managerCount++
		}
	}
	for _, s := range roster {
		if managerCount >= req.RequiredManagers || len(selected) >= target {
			break
		}
		if s.IsManager && available(s) {
			pick(s)
			managerCount++
		}
	}

	// 3. 前厅技能
	if req.RequiredHallSkill > 0 {
		for _, s := range roster {
			if len(selected) >= target {
				break
			}
			if s.IsHallSkilled() && available(s) {
				pick(s)
			}
		}
	}

	// 4. 后厨技能
	if req.RequiredKitchenSkill > 0 {
		for _, s := range roster {
			if len(selected) >= target {
				break
			}
			if s.IsKitchenSkilled() && available(s) {
				pick(s)
			}
		}
	}

	// 5. 兜底补齐
	for _, s := range roster {
		if len(selected) >= target {
			break
		}
		if available(s) {
			pick(s)
		}
	}

	return selected
}
