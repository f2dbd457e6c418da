package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

// RoomService implements room management.
type RoomService struct {
	repo ports.RoomRepository
	log  zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, log zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, log: log}
}

func (s *RoomService) GetRooms(ctx context.Context, page, pageSize int) (*ports.RoomPage, error) {
	page, pageSize = clampPage(page, pageSize)
	rooms, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ports.RoomPage{TotalCount: total, Rooms: rooms}, nil
}

func (s *RoomService) GetRoomByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RoomService) CreateRoom(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error) {
	now := time.Now().UTC()
	room := &domain.Room{
		ID:         uuid.New(),
		RoomName:   input.RoomName,
		Capacity:   input.Capacity,
		HasMonitor: input.HasMonitor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, room)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("room_id", created.ID.String()).Str("room_name", created.RoomName).Msg("room created")
	return created, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, update ports.RoomUpdate) (*domain.Room, error) {
	room, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", id.String()).Msg("room updated")
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("room_id", id.String()).Msg("room deleted")
	return nil
}
