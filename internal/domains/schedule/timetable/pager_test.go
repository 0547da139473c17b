package timetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"examsync/internal/domains/schedule/timetable"
)

func TestSortRooms(t *testing.T) {
	tests := []struct {
		name     string
		rooms    []string
		expected []string
	}{
		{
			name:     "all numeric sorts by value",
			rooms:    []string{"101", "2", "9"},
			expected: []string{"2", "9", "101"},
		},
		{
			name:     "mixed alphanumeric uses natural order",
			rooms:    []string{"101", "9-301", "2"},
			expected: []string{"2", "101", "9-301"},
		},
		{
			name:     "numeric IDs precede word IDs",
			rooms:    []string{"Lab A", "3", "12"},
			expected: []string{"3", "12", "Lab A"},
		},
		{
			name:     "digit runs compare numerically",
			rooms:    []string{"room 10", "room 9"},
			expected: []string{"room 9", "room 10"},
		},
		{
			name:     "empty input",
			rooms:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timetable.SortRooms(tt.rooms))
		})
	}
}

func TestPageRooms(t *testing.T) {
	rooms := []string{"2", "101", "9-301"}

	tests := []struct {
		name      string
		rooms     []string
		pageSize  int
		page      int
		wantRooms []string
		wantTotal int
	}{
		{
			name:      "first page",
			rooms:     rooms,
			pageSize:  2,
			page:      0,
			wantRooms: []string{"2", "101"},
			wantTotal: 2,
		},
		{
			name:      "last partial page",
			rooms:     rooms,
			pageSize:  2,
			page:      1,
			wantRooms: []string{"9-301"},
			wantTotal: 2,
		},
		{
			name:      "page beyond range yields empty",
			rooms:     rooms,
			pageSize:  2,
			page:      5,
			wantRooms: []string{},
			wantTotal: 2,
		},
		{
			name:      "negative page yields empty",
			rooms:     rooms,
			pageSize:  2,
			page:      -1,
			wantRooms: []string{},
			wantTotal: 2,
		},
		{
			name:      "no rooms still reports one page",
			rooms:     []string{},
			pageSize:  5,
			page:      0,
			wantRooms: []string{},
			wantTotal: 1,
		},
		{
			name:      "invalid page size",
			rooms:     rooms,
			pageSize:  0,
			page:      0,
			wantRooms: []string{},
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageRooms, totalPages := timetable.PageRooms(tt.rooms, tt.pageSize, tt.page)

			assert.Equal(t, tt.wantRooms, pageRooms)
			assert.Equal(t, tt.wantTotal, totalPages)
		})
	}
}

func TestPageRooms_PagesConcatenateToFullList(t *testing.T) {
	rooms := timetable.SortRooms([]string{"9-301", "2", "101", "Lab A", "Lab B", "44", "Annex 2"})

	_, totalPages := timetable.PageRooms(rooms, 3, 0)
	assert.Equal(t, 3, totalPages)

	var all []string
	for page := 0; page < totalPages; page++ {
		pageRooms, _ := timetable.PageRooms(rooms, 3, page)
		all = append(all, pageRooms...)
	}

	assert.Equal(t, rooms, all)
}

func TestGroupRoomsByBuilding(t *testing.T) {
	index := map[string]string{
		"101": "ICT Building",
		"102": "ICT Building",
		"201": "Science Complex",
	}

	groups := timetable.GroupRoomsByBuilding([]string{"101", "102", "201", "999"}, index, "Main Campus")

	assert.Len(t, groups, 3)
	assert.Equal(t, "ICT Building", groups[0].Building)
	assert.Equal(t, []string{"101", "102"}, groups[0].Rooms)
	assert.Equal(t, "Science Complex", groups[1].Building)
	assert.Equal(t, "Main Campus", groups[2].Building)
	assert.Equal(t, []string{"999"}, groups[2].Rooms)
}

func TestGroupRoomsByBuilding_EmptyPage(t *testing.T) {
	groups := timetable.GroupRoomsByBuilding(nil, nil, "Main Campus")

	assert.Empty(t, groups)
}

func TestUniqueDatesAndRooms(t *testing.T) {
	bookings := []timetable.Booking{
		{ExamDate: "2025-05-13", RoomID: "101", BuildingName: "ICT Building"},
		{ExamDate: "2025-05-12", RoomID: "9", BuildingName: "Annex"},
		{ExamDate: "2025-05-13", RoomID: "101", BuildingName: "ignored duplicate"},
	}

	assert.Equal(t, []string{"2025-05-12", "2025-05-13"}, timetable.UniqueDates(bookings))
	assert.Equal(t, []string{"9", "101"}, timetable.UniqueRooms(bookings))

	index := timetable.BuildingIndex(bookings)
	assert.Equal(t, "ICT Building", index["101"])
	assert.Equal(t, "Annex", index["9"])
}
