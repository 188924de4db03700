package contact

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

// Repository defines data access methods for submissions.
type Repository interface {
	Insert(ctx context.Context, sub *Submission) (string, error)
	List(ctx context.Context) ([]Submission, error)
}

type submissionDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Ref       string        `bson:"ref"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"created_at"`
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the contacts collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollContacts)}
}

func (r *MongoRepository) Insert(ctx context.Context, sub *Submission) (string, error) {
	doc := submissionDoc{
		Ref:       sub.Ref,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Message:   sub.Message,
		CreatedAt: sub.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%w: insert submission: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list submissions: %v", httpx.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []submissionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode submissions: %v", httpx.ErrStorage, err)
	}
	out := make([]Submission, len(docs))
	for i, d := range docs {
		out[i] = Submission{
			ID:        d.ID.Hex(),
			Ref:       d.Ref,
			Name:      d.Name,
			Email:     d.Email,
			Phone:     d.Phone,
			Message:   d.Message,
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}
