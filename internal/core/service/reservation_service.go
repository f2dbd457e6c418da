package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

// ReservationService implements room booking.
type ReservationService struct {
	repo  ports.ReservationRepository
	rooms ports.RoomRepository
	log   zerolog.Logger
}

func NewReservationService(repo ports.ReservationRepository, rooms ports.RoomRepository, log zerolog.Logger) *ReservationService {
	return &ReservationService{repo: repo, rooms: rooms, log: log}
}

// CreateReservation books a room after checking the room exists and the
// [start, end) window does not intersect an existing booking.
func (s *ReservationService) CreateReservation(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, domain.ErrInvalidTimeWindow
	}

	if _, err := s.rooms.FindByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, input.RoomID, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrReservationOverlap
	}

	reservation := &domain.Reservation{
		ID:        uuid.New(),
		UserID:    input.UserID,
		RoomID:    input.RoomID,
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reservation_id", created.ID.String()).
		Str("room_id", created.RoomID.String()).
		Str("user_id", created.UserID.String()).
		Msg("reservation created")
	return created, nil
}

func (s *ReservationService) GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReservationService) GetReservations(ctx context.Context, page, pageSize int) (*ports.ReservationPage, error) {
	page, pageSize = clampPage(page, pageSize)
	reservations, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ports.ReservationPage{TotalCount: total, Reservations: reservations}, nil
}

func (s *ReservationService) GetUserReservations(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ports.ReservationPage, error) {
	page, pageSize = clampPage(page, pageSize)
	reservations, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ports.ReservationPage{TotalCount: total, Reservations: reservations}, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("reservation_id", id.String()).Msg("reservation deleted")
	return nil
}
