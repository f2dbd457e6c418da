package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

type stubRoomRepo struct {
	rooms map[uuid.UUID]*domain.Room
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.rooms[room.ID] = room
	return room, nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

func (r *stubRoomRepo) List(_ context.Context, _, _ int) ([]*domain.Room, int64, error) {
	return nil, 0, nil
}

func (r *stubRoomRepo) Update(_ context.Context, _ uuid.UUID, _ ports.RoomUpdate) (*domain.Room, error) {
	return nil, domain.ErrRoomNotFound
}

func (r *stubRoomRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return domain.ErrRoomNotFound
}

type stubReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
}

// Create mirrors the port contract: the overlap check and the insert happen
// atomically, so concurrent creates for an intersecting window serialize.
func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reservations {
		if existing.Overlaps(res) {
			return nil, domain.ErrReservationOverlap
		}
	}
	r.reservations = append(r.reservations, res)
	return res, nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, domain.ErrReservationNotFound
}

func (r *stubReservationRepo) HasOverlap(_ context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	window := &domain.Reservation{RoomID: roomID, StartTime: start, EndTime: end}
	for _, res := range r.reservations {
		if res.Overlaps(window) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubReservationRepo) List(_ context.Context, _, _ int) ([]*domain.Reservation, int64, error) {
	return r.reservations, int64(len(r.reservations)), nil
}

func (r *stubReservationRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Reservation, int64, error) {
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, res := range r.reservations {
		if res.ID == id {
			r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
			return nil
		}
	}
	return domain.ErrReservationNotFound
}

func newReservationFixture() (*ReservationService, *stubReservationRepo, *domain.Room) {
	rooms := &stubRoomRepo{rooms: make(map[uuid.UUID]*domain.Room)}
	room := &domain.Room{ID: uuid.New(), RoomName: "Styrerommet", Capacity: 8}
	rooms.rooms[room.ID] = room

	repo := &stubReservationRepo{}
	return NewReservationService(repo, rooms, zerolog.Nop()), repo, room
}

func TestReservationService_Create_Success(t *testing.T) {
	svc, repo, room := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	res, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID:    uuid.New(),
		RoomID:    room.ID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if res.ID == uuid.Nil {
		t.Fatalf("expected generated reservation id")
	}
	if len(repo.reservations) != 1 {
		t.Fatalf("expected reservation persisted")
	}
}

func TestReservationService_Create_Overlap(t *testing.T) {
	svc, _, room := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: room.ID, StartTime: start, EndTime: start.Add(time.Hour),
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: room.ID, StartTime: start.Add(30 * time.Minute), EndTime: start.Add(2 * time.Hour),
	})
	if err != domain.ErrReservationOverlap {
		t.Fatalf("expected ErrReservationOverlap, got %v", err)
	}
}

func TestReservationService_Create_BackToBackAllowed(t *testing.T) {
	svc, _, room := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: room.ID, StartTime: start, EndTime: start.Add(time.Hour),
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: room.ID, StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour),
	}); err != nil {
		t.Fatalf("back-to-back booking should be allowed, got %v", err)
	}
}

func TestReservationService_Create_ConcurrentSameWindow(t *testing.T) {
	svc, repo, room := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateReservation(context.Background(), ports.CreateReservationInput{
				UserID: uuid.New(), RoomID: room.ID, StartTime: start, EndTime: start.Add(time.Hour),
			})
		}(i)
	}
	wg.Wait()

	var won, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrReservationOverlap):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one booking to win, got %d", won)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
	if len(repo.reservations) != 1 {
		t.Fatalf("expected a single persisted reservation, got %d", len(repo.reservations))
	}
}

func TestReservationService_Create_InvalidWindow(t *testing.T) {
	svc, _, room := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: room.ID, StartTime: start, EndTime: start,
	})
	if err != domain.ErrInvalidTimeWindow {
		t.Fatalf("expected ErrInvalidTimeWindow, got %v", err)
	}
}

func TestReservationService_Create_UnknownRoom(t *testing.T) {
	svc, _, _ := newReservationFixture()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(context.Background(), ports.CreateReservationInput{
		UserID: uuid.New(), RoomID: uuid.New(), StartTime: start, EndTime: start.Add(time.Hour),
	})
	if err != domain.ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
