// Package scheduler 提供自动班次生成引擎
package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

// Context 单次生成运行的数据快照
// 店员、需求、希望与既有班次均为只读输入，引擎只追加生成中的班次提案。
// 同一店铺的并发生成需由调用方串行化，引擎自身不做加锁。
type Context struct {
	StoreID        uuid.UUID                 `json:"store_id"`
	Range          model.DateRange           `json:"range"`
	Staff          []*model.Staff            `json:"staff"` // 顺序即选择时的兜底顺序（店员ID升序）
	Requirements   []*model.StaffRequirement `json:"requirements"`
	Requests       []*model.ShiftRequest     `json:"requests"`
	ExistingShifts []*model.Shift            `json:"existing_shifts"`

	// 本次运行中已生成的提案（用于运行内的重复排班排除）
	proposals []*model.Shift

	// 索引缓存
	staffMap          map[uuid.UUID]*model.Staff
	requirementsByDay map[int][]*model.StaffRequirement
	requestsByDate    map[string][]*model.ShiftRequest
}

// NewContext 创建生成上下文
func NewContext(storeID uuid.UUID, startDate, endDate string) *Context {
	return &Context{
		StoreID:           storeID,
		Range:             model.DateRange{StartDate: startDate, EndDate: endDate},
		staffMap:          make(map[uuid.UUID]*model.Staff),
		requirementsByDay: make(map[int][]*model.StaffRequirement),
		requestsByDate:    make(map[string][]*model.ShiftRequest),
	}
}

// SetStaff 设置店员名册（调用方需保证顺序稳定）
func (c *Context) SetStaff(staff []*model.Staff) {
	c.Staff = staff
	c.staffMap = make(map[uuid.UUID]*model.Staff, len(staff))
	for _, s := range staff {
		c.staffMap[s.ID] = s
	}
}

// SetRequirements 设置时段需求（保持输入顺序）
func (c *Context) SetRequirements(reqs []*model.StaffRequirement) {
	c.Requirements = reqs
	c.requirementsByDay = make(map[int][]*model.StaffRequirement)
	for _, r := range reqs {
		c.requirementsByDay[r.DayOfWeek] = append(c.requirementsByDay[r.DayOfWeek], r)
	}
}

// SetRequests 设置希望班次（保持提交顺序）
func (c *Context) SetRequests(requests []*model.ShiftRequest) {
	c.Requests = requests
	c.requestsByDate = make(map[string][]*model.ShiftRequest)
	for _, r := range requests {
		c.requestsByDate[r.Date] = append(c.requestsByDate[r.Date], r)
	}
}

// SetExistingShifts 设置既有班次快照
func (c *Context) SetExistingShifts(shifts []*model.Shift) {
	c.ExistingShifts = shifts
}

// AddProposal 追加一条生成中的班次提案
func (c *Context) AddProposal(s *model.Shift) {
	c.proposals = append(c.proposals, s)
}

// Proposals 返回本次运行已生成的提案
func (c *Context) Proposals() []*model.Shift {
	return c.proposals
}

// GetStaff 根据ID获取店员
func (c *Context) GetStaff(id uuid.UUID) *model.Staff {
	return c.staffMap[id]
}

// RequirementsOn 返回指定星期的需求（输入顺序）
func (c *Context) RequirementsOn(dayOfWeek int) []*model.StaffRequirement {
	return c.requirementsByDay[dayOfWeek]
}

// RequestsOn 返回指定日期的希望班次（提交顺序）
func (c *Context) RequestsOn(date string) []*model.ShiftRequest {
	return c.requestsByDate[date]
}

// BookedStaff 返回在给定时段内已有班次的店员集合
// 既有班次与本次运行中的提案都参与判定，避免单次生成内的重复排班
func (c *Context) BookedStaff(start, end time.Time) map[uuid.UUID]bool {
	booked := make(map[uuid.UUID]bool)
	for _, s := range c.ExistingShifts {
		if s.OverlapsWindow(start, end) {
			booked[s.StaffID] = true
		}
	}
	for _, s := range c.proposals {
		if s.OverlapsWindow(start, end) {
			booked[s.StaffID] = true
		}
	}
	return booked
}
