package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

const reportCollection = "reports"

// ReportRepository persists reports in MongoDB.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportCollection)}
}

type reportDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url,omitempty"`
	Location    domain.Location    `bson:"location"`
	Status      string             `bson:"status"`
	UserName    string             `bson:"user_name"`
	AuthorID    *string            `bson:"author_id,omitempty"`
	Timestamp   time.Time          `bson:"timestamp"`
}

func (d reportDoc) toDomain() *domain.Report {
	return &domain.Report{
		ID:          d.ID.Hex(),
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Location:    d.Location,
		Status:      domain.ReportStatus(d.Status),
		UserName:    d.UserName,
		AuthorID:    d.AuthorID,
		Timestamp:   d.Timestamp.UTC(),
	}
}

// objectID validates the id format before any query so a malformed id is
// reported as such rather than an ambiguous not-found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

// Create inserts a new report document.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reportDoc{
		Description: report.Description,
		ImageURL:    report.ImageURL,
		Location:    report.Location,
		Status:      string(report.Status),
		UserName:    report.UserName,
		AuthorID:    report.AuthorID,
		Timestamp:   report.Timestamp,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: insert report: %v", domain.ErrStorageUnavailable, err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a report by its hex object id.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reportDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: find report: %v", domain.ErrStorageUnavailable, err)
	}
	return doc.toDomain(), nil
}

// ListByTimestampDesc returns all reports, newest first.
func (r *ReportRepository) ListByTimestampDesc(ctx context.Context) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list reports: %v", domain.ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	reports := make([]*domain.Report, 0)
	for cur.Next(ctx) {
		var doc reportDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode report: %v", domain.ErrStorageUnavailable, err)
		}
		reports = append(reports, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list reports: %v", domain.ErrStorageUnavailable, err)
	}
	return reports, nil
}

// UpdateStatus sets the status field and returns the updated report.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reportDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: update report status: %v", domain.ErrStorageUnavailable, err)
	}
	return doc.toDomain(), nil
}

// DeleteByID removes a report. A concurrent delete surfaces as not-found.
func (r *ReportRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete report: %v", domain.ErrStorageUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list and ownership queries.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
