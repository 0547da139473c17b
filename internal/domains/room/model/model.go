package model

import "examsync/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldBuildingName = "building_name"
	FieldCapacity     = "capacity"
	FieldActive       = "active"
)

// Room is one examination room. RoomID is the display identifier rendered as
// a grid column header ("101", "9-301"), BuildingName groups consecutive
// columns under one building header.
type Room struct {
	ID           string `db:"id"`
	RoomID       string `db:"room_id"`
	BuildingName string `db:"building_name"`
	Capacity     int    `db:"capacity"`
	Active       bool   `db:"active"`
	model.Metadata
}
