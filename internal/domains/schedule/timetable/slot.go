package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

const slotMinutes = 30

// rawTimes holds the half-hour boundaries of the display day. Consecutive
// entries form one slot, so 29 boundaries yield 28 slots.
var rawTimes = []string{
	"07:00", "07:30", "08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
	"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
	"19:00", "19:30", "20:00", "20:30", "21:00",
}

// TimeSlot is one fixed half-hour row of the timetable grid. Start and End are
// 24-hour wall-clock values, the interval is half-open [Start, End).
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// DefaultSlots returns the static slot table shared by every room and date.
func DefaultSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, len(rawTimes)-1)

	for i := 0; i < len(rawTimes)-1; i++ {
		slots = append(slots, TimeSlot{
			Start: rawTimes[i],
			End:   rawTimes[i+1],
			Label: fmt.Sprintf("%s - %s", FormatTo12Hour(rawTimes[i]), FormatTo12Hour(rawTimes[i+1])),
		})
	}

	return slots
}

// FormatTo12Hour renders a 24-hour "HH:MM" value as "h:MM AM/PM".
func FormatTo12Hour(value string) string {
	hour, minute, ok := splitClock(value)
	if !ok {
		return value
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}

	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// WallClock extracts the local "HH:MM" portion of a timestamp. ISO-8601 values
// keep only the clock part after the date separator, bare clock values pass
// through unchanged.
func WallClock(value string) string {
	if len(value) >= 16 && (value[10] == 'T' || value[10] == ' ') {
		return value[11:16]
	}

	if len(value) >= 5 {
		return value[:5]
	}

	return value
}

// clockMinutes converts a timestamp to minutes since midnight. The second
// return value reports whether the clock portion was parseable; callers treat
// unparseable times as never overlapping anything.
func clockMinutes(value string) (int, bool) {
	hour, minute, ok := splitClock(WallClock(value))
	if !ok {
		return 0, false
	}

	return hour*60 + minute, true
}

func splitClock(value string) (hour, minute int, ok bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	return hour, minute, true
}
