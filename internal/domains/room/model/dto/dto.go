package dto

import (
	"github.com/google/uuid"

	"examsync/internal/domains/room/model"
	"examsync/shared"
	gDto "examsync/shared/dto"
	gModel "examsync/shared/model"
	"examsync/shared/timezone"
)

type CreateRoomRequest struct {
	RoomID       string `json:"room_id"       validate:"required,max=20"`
	BuildingName string `json:"building_name" validate:"required,max=100"`
	Capacity     int    `json:"capacity"      validate:"omitempty,min=0"`
	Active       *bool  `json:"active"        validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:           uuid.NewString(),
		RoomID:       c.RoomID,
		BuildingName: c.BuildingName,
		Capacity:     c.Capacity,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomID       string `db:"room_id"       json:"room_id"       validate:"omitempty,max=20"`
	BuildingName string `db:"building_name" json:"building_name" validate:"omitempty,max=100"`
	Capacity     *int   `db:"capacity"      json:"capacity"      validate:"omitempty,min=0"`
	Active       *bool  `db:"active"        json:"active"        validate:"omitempty"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	RoomID       string `json:"room_id"`
	BuildingName string `json:"building_name"`
	Capacity     int    `json:"capacity"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.BuildingName = model.BuildingName
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
