package gallery

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

// Repository defines data access methods for gallery items.
type Repository interface {
	Insert(ctx context.Context, item *Item) (string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]Item, error)
}

type itemDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	ImageURL  string        `bson:"image_url"`
	Category  string        `bson:"category"`
	SortOrder int           `bson:"sort_order"`
	Status    string        `bson:"status"`
	CreatedAt time.Time     `bson:"created_at"`
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the gallery collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollGallery)}
}

func (r *MongoRepository) Insert(ctx context.Context, item *Item) (string, error) {
	doc := itemDoc{
		Title:     item.Title,
		ImageURL:  item.ImageURL,
		Category:  item.Category,
		SortOrder: item.SortOrder,
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%w: insert gallery item: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete gallery item: %v", httpx.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, status string) ([]Item, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list gallery: %v", httpx.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []itemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode gallery: %v", httpx.ErrStorage, err)
	}
	out := make([]Item, len(docs))
	for i, d := range docs {
		out[i] = Item{
			ID:        d.ID.Hex(),
			Title:     d.Title,
			ImageURL:  d.ImageURL,
			Category:  d.Category,
			SortOrder: d.SortOrder,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}
