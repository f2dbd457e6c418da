package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errors.New("reservation not found")
var ErrReservationOverlap = errors.New("room is already reserved for that time")
var ErrInvalidTimeWindow = errors.New("reservation end must be after start")
var ErrForbidden = errors.New("access forbidden")

// Reservation books a room for a user over a half-open [StartTime, EndTime)
// window. Two reservations for the same room must never intersect.
type Reservation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RoomID    uuid.UUID `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Overlaps reports whether the two reservations intersect in time.
// Back-to-back bookings (one ending exactly when the other starts) do not
// overlap.
func (r *Reservation) Overlaps(other *Reservation) bool {
	if r.RoomID != other.RoomID {
		return false
	}
	return r.StartTime.Before(other.EndTime) && other.StartTime.Before(r.EndTime)
}
