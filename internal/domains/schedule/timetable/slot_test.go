package timetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"examsync/internal/domains/schedule/timetable"
)

func TestDefaultSlots(t *testing.T) {
	slots := timetable.DefaultSlots()

	assert.Len(t, slots, 28)
	assert.Equal(t, "07:00", slots[0].Start)
	assert.Equal(t, "07:30", slots[0].End)
	assert.Equal(t, "7:00 AM - 7:30 AM", slots[0].Label)
	assert.Equal(t, "20:30", slots[27].Start)
	assert.Equal(t, "21:00", slots[27].End)

	// Contiguous and non-overlapping.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestFormatTo12Hour(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{value: "07:00", expected: "7:00 AM"},
		{value: "00:15", expected: "12:15 AM"},
		{value: "12:00", expected: "12:00 PM"},
		{value: "13:30", expected: "1:30 PM"},
		{value: "21:00", expected: "9:00 PM"},
		{value: "not a time", expected: "not a time"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, timetable.FormatTo12Hour(tt.value))
		})
	}
}

func TestWallClock(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "iso timestamp with T separator",
			value:    "2025-05-12T09:30:00",
			expected: "09:30",
		},
		{
			name:     "timestamp with space separator",
			value:    "2025-05-12 09:30:00",
			expected: "09:30",
		},
		{
			name:     "bare clock value",
			value:    "09:30",
			expected: "09:30",
		},
		{
			name:     "clock with seconds",
			value:    "09:30:15",
			expected: "09:30",
		},
		{
			name:     "short garbage passes through",
			value:    "9AM",
			expected: "9AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timetable.WallClock(tt.value))
		})
	}
}
