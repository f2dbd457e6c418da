package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// RoomUpdate carries the mutable fields of a room.
type RoomUpdate struct {
	RoomName   string
	Capacity   int
	HasMonitor bool
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	List(ctx context.Context, page, pageSize int) ([]*domain.Room, int64, error)
	Update(ctx context.Context, id uuid.UUID, update RoomUpdate) (*domain.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
