package model

import (
	"time"

	"examsync/shared/model"
)

const (
	TableName  = "exam_schedules"
	EntityName = "schedule"

	FieldID           = "id"
	FieldCourseID     = "course_id"
	FieldSectionName  = "section_name"
	FieldExamDate     = "exam_date"
	FieldExamStart    = "exam_start"
	FieldExamEnd      = "exam_end"
	FieldRoomID       = "room_id"
	FieldBuildingName = "building_name"
	FieldInstructor   = "instructor"
	FieldProctor      = "proctor"
	FieldCollegeName  = "college_name"
	FieldExamPeriod   = "exam_period"
	FieldTerm         = "term"
	FieldSemester     = "semester"
	FieldAcademicYear = "academic_year"
)

// ExamSchedule is one approved exam booking: a course section occupying a room
// for a time interval on an exam date. Rows arrive through the scheduling and
// approval flow, which also guarantees that no two rows share a room with
// overlapping intervals.
type ExamSchedule struct {
	ID           string    `db:"id"`
	CourseID     string    `db:"course_id"`
	SectionName  string    `db:"section_name"`
	ExamDate     time.Time `db:"exam_date"`
	ExamStart    time.Time `db:"exam_start"`
	ExamEnd      time.Time `db:"exam_end"`
	RoomID       string    `db:"room_id"`
	BuildingName string    `db:"building_name"`
	Instructor   string    `db:"instructor"`
	Proctor      string    `db:"proctor"`
	CollegeName  string    `db:"college_name"`
	ExamPeriod   string    `db:"exam_period"`
	Term         string    `db:"term"`
	Semester     string    `db:"semester"`
	AcademicYear string    `db:"academic_year"`
	model.Metadata
}
