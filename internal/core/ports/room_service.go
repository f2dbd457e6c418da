package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// CreateRoomInput carries the data needed to create a room.
type CreateRoomInput struct {
	RoomName   string
	Capacity   int
	HasMonitor bool
}

// RoomPage is one page of rooms plus the total count.
type RoomPage struct {
	TotalCount int64          `json:"total_count"`
	Rooms      []*domain.Room `json:"rooms"`
}

// RoomService implements room management.
type RoomService interface {
	GetRooms(ctx context.Context, page, pageSize int) (*RoomPage, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, update RoomUpdate) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}
