package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KiwiKetil/room-scheduler-api/internal/core/domain"
)

const reservationCollection = "reservations"

type MongoReservationRepository struct {
	coll *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *MongoReservationRepository {
	return &MongoReservationRepository{coll: db.Collection(reservationCollection)}
}

type mongoReservation struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	RoomID    string    `bson:"room_id"`
	StartTime time.Time `bson:"start_time"`
	EndTime   time.Time `bson:"end_time"`
	CreatedAt int64     `bson:"created_at"`
}

func (mr mongoReservation) toDomain() (*domain.Reservation, error) {
	id, err := uuid.Parse(mr.ID)
	if err != nil {
		return nil, fmt.Errorf("decode reservation id: %w", err)
	}
	userID, err := uuid.Parse(mr.UserID)
	if err != nil {
		return nil, fmt.Errorf("decode reservation user id: %w", err)
	}
	roomID, err := uuid.Parse(mr.RoomID)
	if err != nil {
		return nil, fmt.Errorf("decode reservation room id: %w", err)
	}
	return &domain.Reservation{
		ID:        id,
		UserID:    userID,
		RoomID:    roomID,
		StartTime: mr.StartTime.UTC(),
		EndTime:   mr.EndTime.UTC(),
		CreatedAt: unixToTime(mr.CreatedAt),
	}, nil
}

// Create re-checks the overlap inside a transaction before inserting, so
// two concurrent bookings for the same room and window serialize: exactly
// one insert wins, the other gets domain.ErrReservationOverlap.
func (r *MongoReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	doc := mongoReservation{
		ID:        res.ID.String(),
		UserID:    res.UserID.String(),
		RoomID:    res.RoomID.String(),
		StartTime: res.StartTime.UTC(),
		EndTime:   res.EndTime.UTC(),
		CreatedAt: res.CreatedAt.Unix(),
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := overlapFilter(res.RoomID, doc.StartTime, doc.EndTime)
		n, err := r.coll.CountDocuments(sc, filter, options.Count().SetLimit(1))
		if err != nil {
			return nil, fmt.Errorf("overlap check: %w", err)
		}
		if n > 0 {
			return nil, domain.ErrReservationOverlap
		}
		if _, err := r.coll.InsertOne(sc, doc); err != nil {
			return nil, fmt.Errorf("insert reservation: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, res.ID)
}

func (r *MongoReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var mr mongoReservation
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return mr.toDomain()
}

// overlapFilter matches bookings intersecting the half-open [start, end)
// window: an existing booking intersects when it starts before end and ends
// after start.
func overlapFilter(roomID uuid.UUID, start, end time.Time) bson.M {
	return bson.M{
		"room_id":    roomID.String(),
		"start_time": bson.M{"$lt": end.UTC()},
		"end_time":   bson.M{"$gt": start.UTC()},
	}
}

// HasOverlap reports whether the room already holds a booking intersecting
// the window. Advisory fast path; Create re-checks transactionally.
func (r *MongoReservationRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, overlapFilter(roomID, start, end), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("overlap check: %w", err)
	}
	return n > 0, nil
}

func (r *MongoReservationRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Reservation, int64, error) {
	return r.list(ctx, bson.M{}, page, pageSize)
}

func (r *MongoReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*domain.Reservation, int64, error) {
	return r.list(ctx, bson.M{"user_id": userID.String()}, page, pageSize)
}

func (r *MongoReservationRepository) list(ctx context.Context, filter bson.M, page, pageSize int) ([]*domain.Reservation, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	defer cur.Close(ctx)

	var reservations []*domain.Reservation
	for cur.Next(ctx) {
		var mr mongoReservation
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode reservation: %w", err)
		}
		res, err := mr.toDomain()
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, res)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations: %w", err)
	}
	return reservations, total, nil
}

func (r *MongoReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}
