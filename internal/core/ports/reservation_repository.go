package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	// Create inserts the booking only if the room is still free for the
	// window, atomically with that check. Concurrent creates for an
	// intersecting window serialize: exactly one succeeds, the rest get
	// domain.ErrReservationOverlap.
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	// HasOverlap reports whether the room already holds a reservation
	// intersecting the half-open [start, end) window.
	HasOverlap(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*domain.Reservation, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*domain.Reservation, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
