package dto

import (
	"time"

	"github.com/google/uuid"

	"examsync/internal/domains/schedule/model"
	"examsync/internal/domains/schedule/timetable"
	"examsync/shared"
	gDto "examsync/shared/dto"
	gModel "examsync/shared/model"
	"examsync/shared/timezone"
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "15:04"
	timestampLayout = "2006-01-02T15:04:05"
)

type CreateScheduleRequest struct {
	CourseID     string `json:"course_id"     validate:"required,max=20"`
	SectionName  string `json:"section_name"  validate:"required,max=100"`
	ExamDate     string `json:"exam_date"     validate:"required"`
	ExamStart    string `json:"exam_start"    validate:"required"`
	ExamEnd      string `json:"exam_end"      validate:"required"`
	RoomID       string `json:"room_id"       validate:"required,max=20"`
	BuildingName string `json:"building_name" validate:"omitempty,max=100"`
	Instructor   string `json:"instructor"    validate:"omitempty,max=100"`
	Proctor      string `json:"proctor"       validate:"omitempty,max=100"`
	CollegeName  string `json:"college_name"  validate:"omitempty,max=100"`
	ExamPeriod   string `json:"exam_period"   validate:"omitempty,max=50"`
	Term         string `json:"term"          validate:"omitempty,max=50"`
	Semester     string `json:"semester"      validate:"omitempty,max=50"`
	AcademicYear string `json:"academic_year" validate:"omitempty,max=20"`
}

func (c *CreateScheduleRequest) ToModel(user string) (model.ExamSchedule, error) {
	examDate, err := time.Parse(dateLayout, c.ExamDate)
	if err != nil {
		return model.ExamSchedule{}, err
	}

	start, err := onDate(examDate, c.ExamStart)
	if err != nil {
		return model.ExamSchedule{}, err
	}

	end, err := onDate(examDate, c.ExamEnd)
	if err != nil {
		return model.ExamSchedule{}, err
	}

	return model.ExamSchedule{
		ID:           uuid.NewString(),
		CourseID:     c.CourseID,
		SectionName:  c.SectionName,
		ExamDate:     examDate,
		ExamStart:    start,
		ExamEnd:      end,
		RoomID:       c.RoomID,
		BuildingName: c.BuildingName,
		Instructor:   c.Instructor,
		Proctor:      c.Proctor,
		CollegeName:  c.CollegeName,
		ExamPeriod:   c.ExamPeriod,
		Term:         c.Term,
		Semester:     c.Semester,
		AcademicYear: c.AcademicYear,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// onDate anchors a "HH:MM" clock value onto the exam date, so the start/end
// timestamps always fall on the date they belong to.
func onDate(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

type ScheduleResponse struct {
	ID           string `json:"id"`
	CourseID     string `json:"course_id"`
	SectionName  string `json:"section_name"`
	ExamDate     string `json:"exam_date"`
	ExamStart    string `json:"exam_start_time"`
	ExamEnd      string `json:"exam_end_time"`
	RoomID       string `json:"room_id"`
	BuildingName string `json:"building_name"`
	Instructor   string `json:"instructor"`
	Proctor      string `json:"proctor"`
	CollegeName  string `json:"college_name"`
	ExamPeriod   string `json:"exam_period"`
	Term         string `json:"term"`
	Semester     string `json:"semester"`
	AcademicYear string `json:"academic_year"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(mod model.ExamSchedule) {
	r.ID = mod.ID
	r.CourseID = mod.CourseID
	r.SectionName = mod.SectionName
	r.ExamDate = mod.ExamDate.Format(dateLayout)
	r.ExamStart = mod.ExamStart.Format(timestampLayout)
	r.ExamEnd = mod.ExamEnd.Format(timestampLayout)
	r.RoomID = mod.RoomID
	r.BuildingName = mod.BuildingName
	r.Instructor = mod.Instructor
	r.Proctor = mod.Proctor
	r.CollegeName = mod.CollegeName
	r.ExamPeriod = mod.ExamPeriod
	r.Term = mod.Term
	r.Semester = mod.Semester
	r.AcademicYear = mod.AcademicYear
	r.Metadata.FromModel(mod.Metadata)
}

type GetSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetSchedulesResponse) FromModels(models []model.ExamSchedule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Schedules = make([]ScheduleResponse, len(models))
	for i, mod := range models {
		r.Schedules[i].FromModel(mod)
	}
}

// ToBooking converts a stored schedule row into the value shape the timetable
// layout functions consume.
func ToBooking(mod model.ExamSchedule) timetable.Booking {
	return timetable.Booking{
		CourseID:     mod.CourseID,
		SectionName:  mod.SectionName,
		ExamDate:     mod.ExamDate.Format(dateLayout),
		ExamStart:    mod.ExamStart.Format(timestampLayout),
		ExamEnd:      mod.ExamEnd.Format(timestampLayout),
		RoomID:       mod.RoomID,
		BuildingName: mod.BuildingName,
		Instructor:   mod.Instructor,
		Proctor:      mod.Proctor,
	}
}

func ToBookings(models []model.ExamSchedule) []timetable.Booking {
	bookings := make([]timetable.Booking, len(models))
	for i, mod := range models {
		bookings[i] = ToBooking(mod)
	}

	return bookings
}

type TimetableRequest struct {
	ExamDate    string `json:"exam_date"    validate:"omitempty"`
	CollegeName string `json:"college_name" validate:"omitempty,max=100"`
	Page        int    `json:"page"         validate:"omitempty,gte=0"`
	RoomColumns int    `json:"room_columns" validate:"omitempty,gte=1,lte=20"`
}

// TimetableCell is one rendered grid position. Anchor cells carry the booking
// details and the number of half-hour rows they span; covered positions are
// marked suppressed so the presentation layer skips them instead of rendering
// a second cell for the same exam.
type TimetableCell struct {
	Kind        string `json:"kind"` // empty, anchor or suppressed
	CourseID    string `json:"course_id,omitempty"`
	SectionName string `json:"section_name,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Proctor     string `json:"proctor,omitempty"`
	TimeRange   string `json:"time_range,omitempty"`
	Color       string `json:"color,omitempty"`
	RowSpan     int    `json:"row_span,omitempty"`
}

type TimetableRow struct {
	Label string          `json:"label"`
	Cells []TimetableCell `json:"cells"`
}

type TimetableResponse struct {
	CollegeName    string                    `json:"college_name"`
	ExamPeriod     string                    `json:"exam_period"`
	Term           string                    `json:"term"`
	Semester       string                    `json:"semester"`
	AcademicYear   string                    `json:"academic_year"`
	TotalSchedules int                       `json:"total_schedules"`
	ExamDates      []string                  `json:"exam_dates"`
	SelectedDate   string                    `json:"selected_date"`
	Page           int                       `json:"page"`
	TotalPages     int                       `json:"total_pages"`
	Rooms          []string                  `json:"rooms"`
	BuildingGroups []timetable.BuildingGroup `json:"building_groups"`
	Rows           []TimetableRow            `json:"rows"`
	Conflicts      []timetable.Conflict      `json:"conflicts,omitempty"`
}

// FromGrid flattens the laid-out grid into renderable rows, one per time slot,
// attaching course colors and 12-hour time range labels.
func (r *TimetableResponse) FromGrid(grid timetable.Grid, groups []timetable.BuildingGroup, colors map[string]string) {
	r.Rooms = grid.Rooms
	r.BuildingGroups = groups
	r.Conflicts = grid.Conflicts

	r.Rows = make([]TimetableRow, len(grid.Cells))
	for row := range grid.Cells {
		r.Rows[row].Label = grid.Slots[row].Label
		r.Rows[row].Cells = make([]TimetableCell, len(grid.Cells[row]))

		for col, cell := range grid.Cells[row] {
			r.Rows[row].Cells[col] = toCell(cell, colors)
		}
	}
}

func toCell(cell timetable.Cell, colors map[string]string) TimetableCell {
	switch cell.Kind {
	case timetable.CellAnchor:
		start := timetable.WallClock(cell.Booking.ExamStart)
		end := timetable.WallClock(cell.Booking.ExamEnd)

		color := colors[cell.Booking.CourseID]
		if color == "" {
			color = timetable.NeutralColor
		}

		return TimetableCell{
			Kind:        "anchor",
			CourseID:    cell.Booking.CourseID,
			SectionName: cell.Booking.SectionName,
			Instructor:  cell.Booking.Instructor,
			Proctor:     cell.Booking.Proctor,
			TimeRange:   timetable.FormatTo12Hour(start) + " - " + timetable.FormatTo12Hour(end),
			Color:       color,
			RowSpan:     cell.RowSpan,
		}
	case timetable.CellSuppressed:
		return TimetableCell{Kind: "suppressed", CourseID: cell.Booking.CourseID}
	default:
		return TimetableCell{Kind: "empty"}
	}
}

type ExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// ScheduleEvent is the payload of the schedule.updated notification published
// after any mutation of the schedule set.
type ScheduleEvent struct {
	Action     string `json:"action"`
	ScheduleID string `json:"schedule_id"`
	CourseID   string `json:"course_id,omitempty"`
	ExamDate   string `json:"exam_date,omitempty"`
	RoomID     string `json:"room_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
