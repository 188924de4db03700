package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oversea-labs/compass/internal/platform/db"
	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Repository defines data access methods for user records.
type Repository interface {
	Create(ctx context.Context, user *User) (string, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Name         string        `bson:"name"`
	Role         string        `bson:"role"`
	Status       string        `bson:"status"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

func (d *userDoc) toUser() *User {
	return &User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         d.Role,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the users collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollUsers)}
}

// Create inserts a user and returns the store-assigned id. The unique index
// on email makes a duplicate-key error the authoritative conflict signal.
func (r *MongoRepository) Create(ctx context.Context, user *User) (string, error) {
	doc := userDoc{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("%w: insert user: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

// FindByEmail looks a user up by exact email match.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user by email: %v", httpx.ErrStorage, err)
	}
	return doc.toUser(), nil
}

// FindByID resolves a token subject back to a user record.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var doc userDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user by id: %v", httpx.ErrStorage, err)
	}
	return doc.toUser(), nil
}
