package timetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"examsync/internal/domains/schedule/timetable"
)

func booking(courseID, room, start, end string) timetable.Booking {
	return timetable.Booking{
		CourseID:     courseID,
		SectionName:  "IT1A",
		ExamDate:     "2025-05-12",
		ExamStart:    "2025-05-12T" + start + ":00",
		ExamEnd:      "2025-05-12T" + end + ":00",
		RoomID:       room,
		BuildingName: "ICT Building",
	}
}

func rowIndex(slots []timetable.TimeSlot, start string) int {
	for i, slot := range slots {
		if slot.Start == start {
			return i
		}
	}

	return -1
}

func TestBuildGrid_AnchorSpansThreeRows(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{booking("IT112", "101", "09:00", "10:30")}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	row := rowIndex(slots, "09:00")
	assert.NotEqual(t, -1, row)

	anchor := grid.Cells[row][0]
	assert.Equal(t, timetable.CellAnchor, anchor.Kind)
	assert.Equal(t, 3, anchor.RowSpan)
	assert.Equal(t, "IT112", anchor.Booking.CourseID)

	for i := 1; i < 3; i++ {
		cell := grid.Cells[row+i][0]
		assert.Equal(t, timetable.CellSuppressed, cell.Kind)
		assert.Equal(t, "IT112", cell.Booking.CourseID)
	}

	assert.Equal(t, timetable.CellEmpty, grid.Cells[row+3][0].Kind)
	assert.Equal(t, timetable.CellEmpty, grid.Cells[row-1][0].Kind)
	assert.Empty(t, grid.Conflicts)
}

func TestBuildGrid_EveryBookingAnchorsExactlyOnce(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{
		booking("IT112", "101", "07:00", "09:00"),
		booking("IT221", "101", "09:00", "10:30"),
		booking("CS101", "102", "13:00", "15:00"),
	}

	grid := timetable.BuildGrid(bookings, []string{"101", "102"}, slots)

	anchors := map[string]int{}
	covered := map[string]int{}

	for row := range grid.Cells {
		for col := range grid.Cells[row] {
			cell := grid.Cells[row][col]

			switch cell.Kind {
			case timetable.CellAnchor:
				anchors[cell.Booking.CourseID]++
				covered[cell.Booking.CourseID]++
			case timetable.CellSuppressed:
				covered[cell.Booking.CourseID]++
			}
		}
	}

	assert.Equal(t, map[string]int{"IT112": 1, "IT221": 1, "CS101": 1}, anchors)

	// Anchor plus suppressed cells per booking equal its row span.
	assert.Equal(t, 4, covered["IT112"])
	assert.Equal(t, 3, covered["IT221"])
	assert.Equal(t, 4, covered["CS101"])
}

func TestBuildGrid_OddDurationRoundsSpanUp(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{booking("IT112", "101", "09:00", "09:45")}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	row := rowIndex(slots, "09:00")
	anchor := grid.Cells[row][0]

	// 45 minutes round up to two half-hour rows.
	assert.Equal(t, timetable.CellAnchor, anchor.Kind)
	assert.Equal(t, 2, anchor.RowSpan)
	assert.Equal(t, timetable.CellSuppressed, grid.Cells[row+1][0].Kind)
}

func TestBuildGrid_OutsideWindowIsOmitted(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{booking("IT112", "101", "21:30", "23:00")}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	for row := range grid.Cells {
		assert.Equal(t, timetable.CellEmpty, grid.Cells[row][0].Kind)
	}
}

func TestBuildGrid_RoomNotOnPageIsOmitted(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{booking("IT112", "301", "09:00", "10:30")}

	grid := timetable.BuildGrid(bookings, []string{"101", "102"}, slots)

	for row := range grid.Cells {
		for col := range grid.Cells[row] {
			assert.Equal(t, timetable.CellEmpty, grid.Cells[row][col].Kind)
		}
	}
}

func TestBuildGrid_OverlapRendersFirstAndFlagsConflict(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{
		booking("IT112", "101", "09:00", "10:00"),
		booking("IT221", "101", "09:30", "10:30"),
	}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	row := rowIndex(slots, "09:00")
	anchor := grid.Cells[row][0]

	assert.Equal(t, timetable.CellAnchor, anchor.Kind)
	assert.Equal(t, "IT112", anchor.Booking.CourseID)

	assert.NotEmpty(t, grid.Conflicts)
	assert.Equal(t, "101", grid.Conflicts[0].RoomID)
	assert.Contains(t, grid.Conflicts[0].CourseIDs, "IT112")
	assert.Contains(t, grid.Conflicts[0].CourseIDs, "IT221")

	// The staggered overlap starts where the second booking does.
	assert.Equal(t, rowIndex(slots, "09:30"), grid.Conflicts[0].SlotIndex)
}

func TestBuildGrid_SameStartOverlapFlagsConflict(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{
		booking("IT112", "101", "09:00", "10:00"),
		booking("IT221", "101", "09:00", "11:00"),
	}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	row := rowIndex(slots, "09:00")
	assert.Equal(t, timetable.CellAnchor, grid.Cells[row][0].Kind)
	assert.Equal(t, "IT112", grid.Cells[row][0].Booking.CourseID)

	assert.Len(t, grid.Conflicts, 1)
	assert.Equal(t, row, grid.Conflicts[0].SlotIndex)
	assert.Equal(t, []string{"IT112", "IT221"}, grid.Conflicts[0].CourseIDs)
}

func TestBuildGrid_EmptyInputs(t *testing.T) {
	slots := timetable.DefaultSlots()

	grid := timetable.BuildGrid(nil, nil, slots)
	assert.Len(t, grid.Cells, len(slots))
	assert.Empty(t, grid.Conflicts)

	grid = timetable.BuildGrid(nil, []string{"101"}, slots)
	for row := range grid.Cells {
		assert.Equal(t, timetable.CellEmpty, grid.Cells[row][0].Kind)
	}
}

func TestBuildGrid_UnparseableTimesNeverMatch(t *testing.T) {
	slots := timetable.DefaultSlots()
	bookings := []timetable.Booking{
		{CourseID: "IT112", RoomID: "101", ExamStart: "garbage", ExamEnd: "also garbage"},
	}

	grid := timetable.BuildGrid(bookings, []string{"101"}, slots)

	for row := range grid.Cells {
		assert.Equal(t, timetable.CellEmpty, grid.Cells[row][0].Kind)
	}
}

func TestForDate(t *testing.T) {
	bookings := []timetable.Booking{
		{CourseID: "A", ExamDate: "2025-05-12"},
		{CourseID: "B", ExamDate: "2025-05-13"},
		{CourseID: "C", ExamDate: "2025-05-12"},
	}

	filtered := timetable.ForDate(bookings, "2025-05-12")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "A", filtered[0].CourseID)
	assert.Equal(t, "C", filtered[1].CourseID)
}
