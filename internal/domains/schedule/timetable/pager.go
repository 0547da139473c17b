package timetable

import (
	"sort"
	"strconv"
)

// DefaultRoomColumns is how many room columns fit on one page of the grid.
const DefaultRoomColumns = 5

// BuildingGroup is a run of visible rooms sharing a building, rendered as one
// header cell spanning len(Rooms) columns.
type BuildingGroup struct {
	Building string   `json:"building"`
	Rooms    []string `json:"rooms"`
}

// UniqueDates returns the distinct exam dates of the booking set in ascending
// order.
func UniqueDates(bookings []Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	dates := []string{}

	for _, b := range bookings {
		if _, ok := seen[b.ExamDate]; ok {
			continue
		}

		seen[b.ExamDate] = struct{}{}
		dates = append(dates, b.ExamDate)
	}

	sort.Strings(dates)

	return dates
}

// UniqueRooms returns the distinct room IDs of the booking set, sorted the way
// SortRooms sorts them.
func UniqueRooms(bookings []Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	rooms := []string{}

	for _, b := range bookings {
		if _, ok := seen[b.RoomID]; ok {
			continue
		}

		seen[b.RoomID] = struct{}{}
		rooms = append(rooms, b.RoomID)
	}

	return SortRooms(rooms)
}

// BuildingIndex maps each room ID to its building name, first occurrence in
// the booking set wins.
func BuildingIndex(bookings []Booking) map[string]string {
	index := make(map[string]string, len(bookings))

	for _, b := range bookings {
		if _, ok := index[b.RoomID]; !ok {
			index[b.RoomID] = b.BuildingName
		}
	}

	return index
}

// SortRooms orders room IDs for column layout: IDs that parse as a number sort
// first by value, the remaining IDs follow with a natural-number-aware
// comparison so "room 9" sorts before "room 10". The input slice is not
// modified.
func SortRooms(rooms []string) []string {
	sorted := make([]string, len(rooms))
	copy(sorted, rooms)

	values := make(map[string]float64, len(sorted))
	numeric := make(map[string]bool, len(sorted))

	for _, room := range sorted {
		value, err := strconv.ParseFloat(room, 64)
		if err != nil {
			continue
		}

		values[room] = value
		numeric[room] = true
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		switch {
		case numeric[a] && numeric[b]:
			return values[a] < values[b]
		case numeric[a]:
			return true
		case numeric[b]:
			return false
		default:
			return naturalLess(a, b)
		}
	})

	return sorted
}

// naturalLess compares two strings with digit runs ordered by numeric value.
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			numA, restA := takeNumber(a)
			numB, restB := takeNumber(b)

			if numA != numB {
				return numA < numB
			}

			a, b = restA, restB

			continue
		}

		if a[0] != b[0] {
			return a[0] < b[0]
		}

		a, b = a[1:], b[1:]
	}

	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func takeNumber(s string) (uint64, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	num, _ := strconv.ParseUint(s[:i], 10, 64)

	return num, s[i:]
}

// PageRooms selects the room columns visible on the given 0-based page.
// totalPages is always at least 1. An out-of-range page yields an empty
// selection, never a panic; clamping the page index is the caller's job.
func PageRooms(rooms []string, pageSize, page int) (pageRooms []string, totalPages int) {
	if pageSize < 1 {
		return []string{}, 1
	}

	totalPages = (len(rooms) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := page * pageSize
	if page < 0 || start >= len(rooms) {
		return []string{}, totalPages
	}

	end := start + pageSize
	if end > len(rooms) {
		end = len(rooms)
	}

	return rooms[start:end], totalPages
}

// GroupRoomsByBuilding groups the current page's rooms by building for header
// rendering, preserving room order within each group. Buildings appear in
// first-seen order. Rooms missing from the index fall back to the given
// building name.
func GroupRoomsByBuilding(pageRooms []string, buildingByRoom map[string]string, fallback string) []BuildingGroup {
	groups := []BuildingGroup{}
	position := map[string]int{}

	for _, room := range pageRooms {
		building := buildingByRoom[room]
		if building == "" {
			building = fallback
		}

		if i, ok := position[building]; ok {
			groups[i].Rooms = append(groups[i].Rooms, room)

			continue
		}

		position[building] = len(groups)
		groups = append(groups, BuildingGroup{Building: building, Rooms: []string{room}})
	}

	return groups
}
