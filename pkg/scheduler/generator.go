// Package scheduler 提供自动班次生成引擎
package scheduler

import (
	"context"
	"time"

	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/logger"
	"github.com/canpai/canpai/pkg/model"
)

// Result 生成结果
type Result struct {
	Shifts     []*model.Shift `json:"shifts"`
	Statistics *Statistics    `json:"statistics"`
	Duration   time.Duration  `json:"duration"`
}

// Statistics 生成统计
type Statistics struct {
	TotalShifts int             `json:"total_shifts"`
	TotalSlots  int             `json:"total_slots"`
	FilledSlots int             `json:"filled_slots"`
	FillRate    float64         `json:"fill_rate"`
	TotalHours  float64         `json:"total_hours"`
	Shortfalls  []SlotShortfall `json:"shortfalls,omitempty"`
}

// SlotShortfall 缺员时段
// 人数不足不是错误，通过这里对外暴露
type SlotShortfall struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Required  int    `json:"required"`
	Assigned  int    `json:"assigned"`
	Shortage  int    `json:"shortage"`
}

// Generator 班次生成器
// 按日期升序遍历范围内的每一天，逐个需求时段解析并挑选店员
type Generator struct {
	logger *logger.SchedulerLogger
}

// NewGenerator 创建班次生成器
func NewGenerator() *Generator {
	return &Generator{
		logger: logger.NewSchedulerLogger(),
	}
}

// Generate 生成指定范围内的班次提案
// 所有提案均为未确定状态，落库与确定由调用方负责
func (g *Generator) Generate(ctx context.Context, sctx *Context) (*Result, error) {
	startedAt := time.Now()

	if !sctx.Range.IsValid() {
		return nil, errors.InvalidDateRange(sctx.Range.StartDate, sctx.Range.EndDate)
	}

	g.logger.StartGeneration(sctx.StoreID.String(), len(sctx.Staff), sctx.Range.Days())

	result := &Result{
		Shifts:     make([]*model.Shift, 0),
		Statistics: &Statistics{},
	}

	for _, date := range sctx.Range.Dates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// 逐个需求时段惰性解析：先入库的提案会进入同日后续时段的排除集
		for _, req := range sctx.RequirementsOn(model.DayOfWeekOf(date)) {
			task := resolveSlot(sctx, date, req)
			selected := selectStaff(task, sctx.Staff)

			for _, s := range selected {
				shift := &model.Shift{
					BaseModel:   model.NewBaseModel(),
					StoreID:     sctx.StoreID,
					StaffID:     s.ID,
					Date:        date,
					StartTime:   req.StartTime,
					EndTime:     req.EndTime,
					IsConfirmed: false,
				}
				sctx.AddProposal(shift)
				result.Shifts = append(result.Shifts, shift)
				result.Statistics.TotalHours += shift.DurationHours()
			}

			result.Statistics.TotalSlots++
			if len(selected) >= req.RequiredStaff {
				result.Statistics.FilledSlots++
			} else {
				g.logger.SlotShortfall(date, req.RequiredStaff, len(selected))
				result.Statistics.Shortfalls = append(result.Statistics.Shortfalls, SlotShortfall{
					Date:      date,
					StartTime: req.StartTime,
					EndTime:   req.EndTime,
					Required:  req.RequiredStaff,
					Assigned:  len(selected),
					Shortage:  req.RequiredStaff - len(selected),
				})
			}
		}
	}

	result.Statistics.TotalShifts = len(result.Shifts)
	if result.Statistics.TotalSlots > 0 {
		result.Statistics.FillRate = 100 * float64(result.Statistics.FilledSlots) / float64(result.Statistics.TotalSlots)
	}
	result.Duration = time.Since(startedAt)

	g.logger.GenerationComplete(sctx.StoreID.String(), result.Statistics.TotalShifts, result.Duration)

	return result, nil
}
