package timetable

import (
	"github.com/rs/zerolog/log"
)

// Booking is one scheduled exam occupying a room for a time interval on a
// date. Bookings arrive already validated and conflict-checked by the
// scheduling/approval flow; this package only lays them out.
type Booking struct {
	CourseID     string `json:"course_id"`
	SectionName  string `json:"section_name"`
	ExamDate     string `json:"exam_date"`
	ExamStart    string `json:"exam_start_time"`
	ExamEnd      string `json:"exam_end_time"`
	RoomID       string `json:"room_id"`
	BuildingName string `json:"building_name"`
	Instructor   string `json:"instructor"`
	Proctor      string `json:"proctor"`
}

type CellKind int

const (
	// CellEmpty is a grid position with no exam.
	CellEmpty CellKind = iota
	// CellAnchor is the single rendered cell of a booking, carrying the number
	// of half-hour rows it spans.
	CellAnchor
	// CellSuppressed is a position covered by an anchor above it. It is never
	// rendered independently.
	CellSuppressed
)

type Cell struct {
	Kind    CellKind
	Booking *Booking
	RowSpan int
}

// Conflict flags two or more bookings overlapping in the same room and slot.
// The grid still renders deterministically (first booking in room order wins)
// but the condition points at a data integrity problem upstream.
type Conflict struct {
	RoomID    string   `json:"room_id"`
	SlotIndex int      `json:"slot_index"`
	CourseIDs []string `json:"course_ids"`
}

// Grid is the laid-out timetable for one exam date and one room page:
// Cells[row][col] addresses slot row × visible room col.
type Grid struct {
	Slots     []TimeSlot
	Rooms     []string
	Cells     [][]Cell
	Conflicts []Conflict
}

// ForDate returns the bookings falling on the given exam date, preserving
// input order.
func ForDate(bookings []Booking, date string) []Booking {
	out := make([]Booking, 0, len(bookings))

	for _, b := range bookings {
		if b.ExamDate == date {
			out = append(out, b)
		}
	}

	return out
}

// BuildGrid lays out the given bookings (already filtered to one exam date)
// over the visible room columns and the fixed slot rows.
//
// A booking occupies ceil(duration / 30min) contiguous rows: the first
// overlapping row holds its anchor cell, the rest are suppressed. A booking
// whose duration is not a multiple of the slot size rounds its span up, so the
// merged cell may visually extend past its end time; that rounding is the
// established display behavior. Bookings entirely outside the slot window are
// omitted. When several bookings in one room overlap the same slot, the first
// one in room order is rendered and the rest are reported via Conflicts.
func BuildGrid(bookings []Booking, visibleRooms []string, slots []TimeSlot) Grid {
	byRoom := make(map[string][]*Booking, len(visibleRooms))
	for i := range bookings {
		b := &bookings[i]
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	grid := Grid{
		Slots: slots,
		Rooms: visibleRooms,
		Cells: make([][]Cell, len(slots)),
	}

	for row := range grid.Cells {
		grid.Cells[row] = make([]Cell, len(visibleRooms))
	}

	for col, room := range visibleRooms {
		grid.Conflicts = append(grid.Conflicts, roomConflicts(room, byRoom[room], slots)...)

		for row := range slots {
			if grid.Cells[row][col].Kind == CellSuppressed {
				continue
			}

			matches := overlapping(byRoom[room], slots[row])
			if len(matches) == 0 {
				continue
			}

			booking := matches[0]

			span := rowSpan(booking)

			grid.Cells[row][col] = Cell{Kind: CellAnchor, Booking: booking, RowSpan: span}

			for i := 1; i < span && row+i < len(slots); i++ {
				grid.Cells[row+i][col] = Cell{Kind: CellSuppressed, Booking: booking}
			}
		}
	}

	return grid
}

// roomConflicts pairwise-scans one room's bookings for half-open interval
// overlap. The scan runs before the layout walk so staggered overlaps, where
// the later booking starts on a row the earlier one already covers, are
// reported too. Each conflict carries the first slot row both bookings share.
func roomConflicts(room string, bookings []*Booking, slots []TimeSlot) []Conflict {
	var conflicts []Conflict

	for i := 0; i < len(bookings); i++ {
		startI, ok := clockMinutes(bookings[i].ExamStart)
		if !ok {
			continue
		}

		endI, ok := clockMinutes(bookings[i].ExamEnd)
		if !ok {
			continue
		}

		for j := i + 1; j < len(bookings); j++ {
			startJ, ok := clockMinutes(bookings[j].ExamStart)
			if !ok {
				continue
			}

			endJ, ok := clockMinutes(bookings[j].ExamEnd)
			if !ok {
				continue
			}

			if startI >= endJ || startJ >= endI {
				continue
			}

			conflict := Conflict{
				RoomID:    room,
				SlotIndex: slotIndexAt(max(startI, startJ), slots),
				CourseIDs: []string{bookings[i].CourseID, bookings[j].CourseID},
			}

			conflicts = append(conflicts, conflict)

			log.Warn().
				Str("roomID", room).
				Strs("courseIDs", conflict.CourseIDs).
				Msg("overlapping bookings in the same room, rendering the first one")
		}
	}

	return conflicts
}

// slotIndexAt returns the row of the slot containing the given minute of day,
// or -1 when it falls outside the slot window.
func slotIndexAt(minute int, slots []TimeSlot) int {
	for i, slot := range slots {
		start, _ := clockMinutes(slot.Start)
		end, _ := clockMinutes(slot.End)

		if minute >= start && minute < end {
			return i
		}
	}

	return -1
}

// overlapping returns the bookings whose half-open interval intersects the
// slot's, preserving room order. Bookings with unparseable times never match.
func overlapping(bookings []*Booking, slot TimeSlot) []*Booking {
	slotStart, _ := clockMinutes(slot.Start)
	slotEnd, _ := clockMinutes(slot.End)

	var matches []*Booking

	for _, b := range bookings {
		start, ok := clockMinutes(b.ExamStart)
		if !ok {
			continue
		}

		end, ok := clockMinutes(b.ExamEnd)
		if !ok {
			continue
		}

		if start < slotEnd && end > slotStart {
			matches = append(matches, b)
		}
	}

	return matches
}

func rowSpan(b *Booking) int {
	start, _ := clockMinutes(b.ExamStart)
	end, _ := clockMinutes(b.ExamEnd)

	if end <= start {
		return 1
	}

	return (end - start + slotMinutes - 1) / slotMinutes
}
