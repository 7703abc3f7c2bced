package model

import (
	"testing"
)

func TestShift_DurationHours(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		start    string
		end      string
		endDate  string
		expected float64
	}{
		{
			name:     "普通白班8小时",
			date:     "2026-03-02",
			start:    "10:00",
			end:      "18:00",
			expected: 8.0,
		},
		{
			name:     "半日班4小时半",
			date:     "2026-03-02",
			start:    "09:30",
			end:      "14:00",
			expected: 4.5,
		},
		{
			name:     "跨日夜班22点到次日6点",
			date:     "2026-03-02",
			start:    "22:00",
			end:      "06:00",
			expected: 8.0,
		},
		{
			name:     "显式结束日期的跨日班",
			date:     "2026-03-02",
			start:    "22:00",
			end:      "06:00",
			endDate:  "2026-03-03",
			expected: 8.0,
		},
		{
			name:     "显式结束日期跨两天",
			date:     "2026-03-02",
			start:    "22:00",
			end:      "06:00",
			endDate:  "2026-03-04",
			expected: 32.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Shift{Date: tt.date, StartTime: tt.start, EndTime: tt.end, EndDate: tt.endDate}
			if got := s.DurationHours(); got != tt.expected {
				t.Errorf("DurationHours() = %v, expected %v", got, tt.expected)
			}
			if got := s.DurationHours(); got <= 0 {
				t.Errorf("勤务时长必须为正数, got %v", got)
			}
		})
	}
}

func TestShift_Overlaps(t *testing.T) {
	base := &Shift{Date: "2026-03-02", StartTime: "10:00", EndTime: "14:00"}

	tests := []struct {
		name     string
		other    *Shift
		expected bool
	}{
		{
			name:     "完全重叠",
			other:    &Shift{Date: "2026-03-02", StartTime: "10:00", EndTime: "14:00"},
			expected: true,
		},
		{
			name:     "部分重叠",
			other:    &Shift{Date: "2026-03-02", StartTime: "13:00", EndTime: "17:00"},
			expected: true,
		},
		{
			name:     "首尾相接不算重叠",
			other:    &Shift{Date: "2026-03-02", StartTime: "14:00", EndTime: "18:00"},
			expected: false,
		},
		{
			name:     "不同日期不重叠",
			other:    &Shift{Date: "2026-03-03", StartTime: "10:00", EndTime: "14:00"},
			expected: false,
		},
		{
			name:     "前日跨日夜班延伸到当日",
			other:    &Shift{Date: "2026-03-01", StartTime: "22:00", EndTime: "11:00"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
