package scheduler

import (
	"testing"

	"github.com/google/uuid"

	"github.com/canpai/canpai/pkg/model"
)

func newStaff(name string, manager bool, hall, kitchen int) *model.Staff {
	return &model.Staff{
		BaseModel:         model.BaseModel{ID: uuid.New()},
		Name:              name,
		IsManager:         manager,
		HallSkillLevel:    hall,
		KitchenSkillLevel: kitchen,
		HourlyWage:        1200,
		MaxWeeklyHours:    40,
	}
}

func newRequirement(dayOfWeek int, start, end string, staff, managers, hall, kitchen int) *model.StaffRequirement {
	return &model.StaffRequirement{
		BaseModel:            model.BaseModel{ID: uuid.New()},
		DayOfWeek:            dayOfWeek,
		StartTime:            start,
		EndTime:              end,
		RequiredStaff:        staff,
		RequiredManagers:     managers,
		RequiredHallSkill:    hall,
		RequiredKitchenSkill: kitchen,
	}
}

// 周一午市时段：需要3人、1名责任者、2名前厅技能者，
// 名册为1名责任者(前厅5)、2名前厅技能者(4/4)、1名无技能者，
// 应选中责任者与两名前厅技能者，无技能者落选
func TestSelectStaff_ManagerAndHallSkill(t *testing.T) {
	manager := newStaff("责任者", true, 5, 1)
	hall1 := newStaff("前厅A", false, 4, 1)
	hall2 := newStaff("前厅B", false, 4, 1)
	unskilled := newStaff("新人", false, 1, 1)
	roster := []*model.Staff{manager, hall1, hall2, unskilled}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 3, 1, 2, 0),
		Excluded:    map[uuid.UUID]bool{},
	}

	selected := selectStaff(task, roster)

	if len(selected) != 3 {
		t.Fatalf("应选中3人, got %d", len(selected))
	}

	want := map[uuid.UUID]bool{manager.ID: true, hall1.ID: true, hall2.ID: true}
	for _, s := range selected {
		if !want[s.ID] {
			t.Errorf("店员 %s 不应入选", s.Name)
		}
	}
	if selected[0].ID != manager.ID {
		t.Errorf("责任者应最先入选, got %s", selected[0].Name)
	}
}

func TestSelectStaff_PreferencePassFirst(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	b := newStaff("乙", false, 1, 1)
	c := newStaff("丙", false, 1, 1)
	roster := []*model.Staff{a, b, c}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 2, 0, 0, 0),
		Excluded:    map[uuid.UUID]bool{},
		Priority:    []*model.Staff{c}, // 丙提交了出勤希望
	}

	selected := selectStaff(task, roster)

	if len(selected) != 2 {
		t.Fatalf("应选中2人, got %d", len(selected))
	}
	if selected[0].ID != c.ID {
		t.Errorf("出勤希望者应最先入选, got %s", selected[0].Name)
	}
	if selected[1].ID != a.ID {
		t.Errorf("兜底应按名册顺序, got %s", selected[1].Name)
	}
}

func TestSelectStaff_ManagerCountsPreferencePick(t *testing.T) {
	mgr1 := newStaff("责任者甲", true, 1, 1)
	mgr2 := newStaff("责任者乙", true, 1, 1)
	plain := newStaff("普通", false, 1, 1)
	// 普通店员排在责任者乙之前，确保兜底轮先补到普通店员
	roster := []*model.Staff{mgr1, plain, mgr2}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 2, 1, 0, 0),
		Excluded:    map[uuid.UUID]bool{},
		Priority:    []*model.Staff{mgr1}, // 责任者甲提交了出勤希望
	}

	selected := selectStaff(task, roster)

	// 希望者已是责任者，第二轮不应再补责任者，兜底按名册顺序补普通店员
	if len(selected) != 2 {
		t.Fatalf("应选中2人, got %d", len(selected))
	}
	managers := 0
	for _, s := range selected {
		if s.IsManager {
			managers++
		}
	}
	if managers != 1 {
		t.Errorf("责任者应恰好1名, got %d", managers)
	}
}

func TestSelectStaff_NoDuplicates(t *testing.T) {
	// 同一店员同时满足希望、责任者、前厅、后厨条件也只入选一次
	all := newStaff("全能", true, 5, 5)
	other := newStaff("普通", false, 3, 3)
	roster := []*model.Staff{all, other}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 5, 1, 1, 1),
		Excluded:    map[uuid.UUID]bool{},
		Priority:    []*model.Staff{all},
	}

	selected := selectStaff(task, roster)

	seen := make(map[uuid.UUID]int)
	for _, s := range selected {
		seen[s.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("店员 %s 入选 %d 次", id, n)
		}
	}
	if len(selected) != 2 {
		t.Errorf("名册耗尽时返回不足额的列表, got %d", len(selected))
	}
}

func TestSelectStaff_ExcludedNeverSelected(t *testing.T) {
	a := newStaff("甲", true, 5, 5)
	b := newStaff("乙", false, 1, 1)
	roster := []*model.Staff{a, b}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 2, 1, 1, 1),
		Excluded:    map[uuid.UUID]bool{a.ID: true},
	}

	selected := selectStaff(task, roster)

	for _, s := range selected {
		if s.ID == a.ID {
			t.Fatal("被排除的店员不应入选")
		}
	}
	if len(selected) != 1 || selected[0].ID != b.ID {
		t.Errorf("应只选中乙, got %d 人", len(selected))
	}
}

func TestSelectStaff_Underfill(t *testing.T) {
	a := newStaff("甲", false, 1, 1)
	roster := []*model.Staff{a}

	task := slotTask{
		Date:        "2026-03-02",
		Requirement: newRequirement(0, "10:00", "14:00", 4, 0, 0, 0),
		Excluded:    map[uuid.UUID]bool{},
	}

	selected := selectStaff(task, roster)

	// 人数不足不报错，返回能凑到的人数
	if len(selected) != 1 {
		t.Errorf("应返回1人, got %d", len(selected))
	}
}
