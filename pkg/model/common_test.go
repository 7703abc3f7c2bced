package model

import (
	"testing"
)

func TestDateRange_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{"正常范围", "2026-03-02", "2026-03-08", true},
		{"单日范围", "2026-03-02", "2026-03-02", true},
		{"结束早于开始", "2026-03-08", "2026-03-02", false},
		{"非法日期", "2026-3-2", "2026-03-08", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := DateRange{StartDate: tt.start, EndDate: tt.end}
			if got := dr.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDateRange_Dates(t *testing.T) {
	dr := DateRange{StartDate: "2026-03-02", EndDate: "2026-03-04"}
	dates := dr.Dates()

	if len(dates) != 3 {
		t.Fatalf("应返回3天, got %d", len(dates))
	}
	if dates[0] != "2026-03-02" || dates[2] != "2026-03-04" {
		t.Errorf("日期序列错误: %v", dates)
	}
	if dr.Days() != 3 {
		t.Errorf("Days() = %d, expected 3", dr.Days())
	}
}

func TestDayOfWeekOf(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2026-03-02", 0}, // 周一
		{"2026-03-06", 4}, // 周五
		{"2026-03-08", 6}, // 周日
	}

	for _, tt := range tests {
		if got := DayOfWeekOf(tt.date); got != tt.expected {
			t.Errorf("DayOfWeekOf(%s) = %d, expected %d", tt.date, got, tt.expected)
		}
	}
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2026-03-02", "2026-03-02"}, // 周一本身
		{"2026-03-05", "2026-03-02"}, // 周四
		{"2026-03-08", "2026-03-02"}, // 周日属于同一周
		{"2026-03-09", "2026-03-09"}, // 下一个周一
	}

	for _, tt := range tests {
		if got := WeekStartOf(tt.date); got != tt.expected {
			t.Errorf("WeekStartOf(%s) = %s, expected %s", tt.date, got, tt.expected)
		}
	}
}

func TestShiftRequest_CoversWindowCases(t *testing.T) {
	tests := []struct {
		name     string
		req      *ShiftRequest
		start    string
		end      string
		expected bool
	}{
		{
			name:     "休假希望完整覆盖需求时段",
			req:      &ShiftRequest{RequestType: RequestOff, StartTime: "09:00", EndTime: "18:00"},
			start:    "10:00",
			end:      "14:00",
			expected: true,
		},
		{
			name:     "休假希望未填时刻视为全天",
			req:      &ShiftRequest{RequestType: RequestOff},
			start:    "10:00",
			end:      "14:00",
			expected: true,
		},
		{
			name:     "休假希望只覆盖一部分",
			req:      &ShiftRequest{RequestType: RequestOff, StartTime: "12:00", EndTime: "18:00"},
			start:    "10:00",
			end:      "14:00",
			expected: false,
		},
		{
			name:     "出勤希望未填时刻不生效",
			req:      &ShiftRequest{RequestType: RequestWork},
			start:    "10:00",
			end:      "14:00",
			expected: false,
		},
		{
			name:     "出勤希望恰好等于需求时段",
			req:      &ShiftRequest{RequestType: RequestWork, StartTime: "10:00", EndTime: "14:00"},
			start:    "10:00",
			end:      "14:00",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.CoversWindow(tt.start, tt.end); got != tt.expected {
				t.Errorf("CoversWindow() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
