package courses

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

// Repository defines data access methods for courses.
type Repository interface {
	Insert(ctx context.Context, course *Course) (string, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Course, error)
	FindBySlug(ctx context.Context, slug, status string) (*Course, error)
	List(ctx context.Context, status string) ([]Course, error)
}

type courseDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Title          string        `bson:"title"`
	Slug           string        `bson:"slug"`
	Description    string        `bson:"description"`
	University     string        `bson:"university"`
	Country        string        `bson:"country"`
	DurationMonths int           `bson:"duration_months"`
	TuitionFee     float64       `bson:"tuition_fee"`
	Status         string        `bson:"status"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}

func (d *courseDoc) toCourse() Course {
	return Course{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Slug:           d.Slug,
		Description:    d.Description,
		University:     d.University,
		Country:        d.Country,
		DurationMonths: d.DurationMonths,
		TuitionFee:     d.TuitionFee,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// MongoRepository provides MongoDB backed persistence.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository over the courses collection.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollCourses)}
}

func (r *MongoRepository) Insert(ctx context.Context, course *Course) (string, error) {
	doc := courseDoc{
		Title:          course.Title,
		Slug:           course.Slug,
		Description:    course.Description,
		University:     course.University,
		Country:        course.Country,
		DurationMonths: course.DurationMonths,
		TuitionFee:     course.TuitionFee,
		Status:         course.Status,
		CreatedAt:      course.CreatedAt,
		UpdatedAt:      course.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrSlugTaken
		}
		return "", fmt.Errorf("%w: insert course: %v", httpx.ErrStorage, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", httpx.ErrStorage)
	}
	return oid.Hex(), nil
}

func (r *MongoRepository) Update(ctx context.Context, course *Course) error {
	oid, err := bson.ObjectIDFromHex(course.ID)
	if err != nil {
		return ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"title":           course.Title,
		"slug":            course.Slug,
		"description":     course.Description,
		"university":      course.University,
		"country":         course.Country,
		"duration_months": course.DurationMonths,
		"tuition_fee":     course.TuitionFee,
		"status":          course.Status,
		"updated_at":      course.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("%w: update course: %v", httpx.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete course: %v", httpx.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Course, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) FindBySlug(ctx context.Context, slug, status string) (*Course, error) {
	filter := bson.M{"slug": slug}
	if status != "" {
		filter["status"] = status
	}
	return r.findOne(ctx, filter)
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Course, error) {
	var doc courseDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find course: %v", httpx.ErrStorage, err)
	}
	course := doc.toCourse()
	return &course, nil
}

func (r *MongoRepository) List(ctx context.Context, status string) ([]Course, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list courses: %v", httpx.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []courseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode courses: %v", httpx.ErrStorage, err)
	}
	out := make([]Course, len(docs))
	for i := range docs {
		out[i] = docs[i].toCourse()
	}
	return out, nil
}
