package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errors.New("room not found")
var ErrRoomExists = errors.New("room already exists")

// Room is a bookable meeting room.
type Room struct {
	ID         uuid.UUID `json:"id"`
	RoomName   string    `json:"room_name"`
	Capacity   int       `json:"capacity"`
	HasMonitor bool      `json:"has_monitor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
