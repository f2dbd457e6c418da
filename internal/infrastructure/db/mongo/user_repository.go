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

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID              string   `bson:"_id"`
	FirstName       string   `bson:"first_name"`
	LastName        string   `bson:"last_name"`
	Phone           string   `bson:"phone,omitempty"`
	Email           string   `bson:"email"`
	PasswordHash    string   `bson:"password_hash"`
	PasswordUpdated bool     `bson:"password_updated"`
	Roles           []string `bson:"roles"`
	CreatedAt       int64    `bson:"created_at"`
	UpdatedAt       int64    `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:              u.ID.String(),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		PasswordUpdated: u.PasswordUpdated,
		Roles:           u.Roles,
		CreatedAt:       u.CreatedAt.Unix(),
		UpdatedAt:       u.UpdatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(mu.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id: %w", err)
	}
	return &domain.User{
		ID:              id,
		FirstName:       mu.FirstName,
		LastName:        mu.LastName,
		Phone:           mu.Phone,
		Email:           mu.Email,
		PasswordHash:    mu.PasswordHash,
		PasswordUpdated: mu.PasswordUpdated,
		Roles:           mu.Roles,
		CreatedAt:       unixToTime(mu.CreatedAt),
		UpdatedAt:       unixToTime(mu.UpdatedAt),
	}, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	// Unique index on email expected; duplicates surface as ErrUserExists.
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

func (r *MongoUserRepository) GetRoles(ctx context.Context, id uuid.UUID) ([]string, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Roles, nil
}

func (r *MongoUserRepository) HasFreshPassword(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.PasswordUpdated, nil
}

// UpdatePasswordHash stores the new hash and flips the freshness flag in one
// document update, so a cancelled request can never leave the two out of sync.
func (r *MongoUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{
		"$set": bson.M{
			"password_hash":    hash,
			"password_updated": true,
			"updated_at":       time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context, page, pageSize int) ([]*domain.User, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		user, err := mu.toDomain()
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{
		"$set": bson.M{
			"first_name": update.FirstName,
			"last_name":  update.LastName,
			"phone":      update.Phone,
			"email":      update.Email,
			"updated_at": time.Now().UTC().Unix(),
		},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
