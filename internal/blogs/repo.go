package blogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oversea-labs/compass/internal/platform/db"
	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Repository defines data access methods for blog posts.
type Repository interface {
	Insert(ctx context.Context, blog *Blog) (string, error)
	Update(ctx context.Context, blog *Blog) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindBySlug(ctx context.Context, slug, status string) (*Blog, error)
	List(ctx context.Context, status string) ([]Blog, error)
}

type blogDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Slug      string        `bson:"slug"`
	Content   string        `bson:"content"`
	Excerpt   string        `bson:"excerpt"`
	Image     string        `bson:"image"`
	Author    string        `bson:"author"`
	Tags      []string      `bson:"tags"`
	Status    string        `bson:"status"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func (d *blogDoc) toBlog() Blog {
	return Blog{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Slug:      d.Slug,
		Content:   d.Content,
		Excerpt:   d.Excerpt,
		Image:     d.Image,
		Author:    d.Author,
		Tags:      d.Tags,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func docFromBlog(b *Blog) blogDoc {
	return blogDoc{
		Title:     b.Title,
		Slug:      b.Slug,
		Content:   b.Content,
		Excerpt:   b.Excerpt,
		Image:     b.Image,
		Author:    b.Author,
		Tags:      b.Tags,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the blogs collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollBlogs)}
}

// Insert stores a new post; the unique slug index reports duplicates.
func (r *MongoRepository) Insert(ctx context.Context, blog *Blog) (string, error) {
	res, err := r.coll.InsertOne(ctx, docFromBlog(blog))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrSlugTaken
		}
		return "", fmt.Errorf("%w: insert blog: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

// Update replaces the mutable fields of an existing post.
func (r *MongoRepository) Update(ctx context.Context, blog *Blog) error {
	oid, err := bson.ObjectIDFromHex(blog.ID)
	if err != nil {
		return ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"title":      blog.Title,
		"slug":       blog.Slug,
		"content":    blog.Content,
		"excerpt":    blog.Excerpt,
		"image":      blog.Image,
		"author":     blog.Author,
		"tags":       blog.Tags,
		"status":     blog.Status,
		"updated_at": blog.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("%w: update blog: %v", httpx.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post by id.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete blog: %v", httpx.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a post regardless of status.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Blog, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug fetches a post by slug, optionally restricted to a status.
func (r *MongoRepository) FindBySlug(ctx context.Context, slug, status string) (*Blog, error) {
	filter := bson.M{"slug": slug}
	if status != "" {
		filter["status"] = status
	}
	return r.findOne(ctx, filter)
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Blog, error) {
	var doc blogDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find blog: %v", httpx.ErrStorage, err)
	}
	blog := doc.toBlog()
	return &blog, nil
}

// List returns posts newest first, optionally restricted to a status.
func (r *MongoRepository) List(ctx context.Context, status string) ([]Blog, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list blogs: %v", httpx.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []blogDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode blogs: %v", httpx.ErrStorage, err)
	}
	out := make([]Blog, len(docs))
	for i := range docs {
		out[i] = docs[i].toBlog()
	}
	return out, nil
}
