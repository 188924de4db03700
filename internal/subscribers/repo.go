package subscribers

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oversea-labs/compass/internal/platform/db"
	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Repository defines data access methods for subscribers.
type Repository interface {
	Insert(ctx context.Context, sub *Subscriber) (string, error)
	List(ctx context.Context) ([]Subscriber, error)
}

type subscriberDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	CreatedAt time.Time     `bson:"created_at"`
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the subscribers collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollSubscribers)}
}

// Insert stores a subscriber; the unique email index reports duplicates.
func (r *MongoRepository) Insert(ctx context.Context, sub *Subscriber) (string, error) {
	doc := subscriberDoc{Email: sub.Email, CreatedAt: sub.CreatedAt}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrAlreadySubscribed
		}
		return "", fmt.Errorf("%w: insert subscriber: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscribers: %v", httpx.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []subscriberDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode subscribers: %v", httpx.ErrStorage, err)
	}
	out := make([]Subscriber, len(docs))
	for i, d := range docs {
		out[i] = Subscriber{ID: d.ID.Hex(), Email: d.Email, CreatedAt: d.CreatedAt}
	}
	return out, nil
}
