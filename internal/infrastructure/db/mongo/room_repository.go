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
	"github.com/KiwiKetil/room-scheduler-api/internal/core/ports"
)

const roomCollection = "rooms"

type MongoRoomRepository struct {
	coll *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *MongoRoomRepository {
	return &MongoRoomRepository{coll: db.Collection(roomCollection)}
}

type mongoRoom struct {
	ID         string `bson:"_id"`
	RoomName   string `bson:"room_name"`
	Capacity   int    `bson:"capacity"`
	HasMonitor bool   `bson:"has_monitor"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (mr mongoRoom) toDomain() (*domain.Room, error) {
	id, err := uuid.Parse(mr.ID)
	if err != nil {
		return nil, fmt.Errorf("decode room id: %w", err)
	}
	return &domain.Room{
		ID:         id,
		RoomName:   mr.RoomName,
		Capacity:   mr.Capacity,
		HasMonitor: mr.HasMonitor,
		CreatedAt:  unixToTime(mr.CreatedAt),
		UpdatedAt:  unixToTime(mr.UpdatedAt),
	}, nil
}

func (r *MongoRoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	doc := mongoRoom{
		ID:         room.ID.String(),
		RoomName:   room.RoomName,
		Capacity:   room.Capacity,
		HasMonitor: room.HasMonitor,
		CreatedAt:  room.CreatedAt.Unix(),
		UpdatedAt:  room.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoomExists
		}
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return r.FindByID(ctx, room.ID)
}

func (r *MongoRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var mr mongoRoom
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return mr.toDomain()
}

func (r *MongoRoomRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Room, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "room_name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []*domain.Room
	for cur.Next(ctx) {
		var mr mongoRoom
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode room: %w", err)
		}
		room, err := mr.toDomain()
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, room)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, total, nil
}

func (r *MongoRoomRepository) Update(ctx context.Context, id uuid.UUID, update ports.RoomUpdate) (*domain.Room, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{
		"$set": bson.M{
			"room_name":   update.RoomName,
			"capacity":    update.Capacity,
			"has_monitor": update.HasMonitor,
			"updated_at":  time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoomNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
