package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// CreateReservationInput carries the data needed to book a room.
type CreateReservationInput struct {
	UserID    uuid.UUID
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// ReservationPage is one page of reservations plus the total count.
type ReservationPage struct {
	TotalCount   int64                 `json:"total_count"`
	Reservations []*domain.Reservation `json:"reservations"`
}

// ReservationService implements room booking.
type ReservationService interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetReservations(ctx context.Context, page, pageSize int) (*ReservationPage, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ReservationPage, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
}
