package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

const collectionRequests = "service_requests"

// RequestRepository persists service requests. Each document references its
// owner through user_id; the status enumeration is validated at this
// boundary.
type RequestRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{db: db, col: db.Collection(collectionRequests)}
}

type requestDoc struct {
	ID          int64  `bson:"_id"`
	UserID      int64  `bson:"user_id"`
	ServiceType string `bson:"service_type"`
	Location    string `bson:"location"`
	Description string `bson:"description"`
	Status      string `bson:"status"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	if !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	id, err := nextID(ctx, r.db, collectionRequests)
	if err != nil {
		return nil, err
	}

	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := requestDoc{
		ID:          id,
		UserID:      req.UserID,
		ServiceType: req.ServiceType,
		Location:    req.Location,
		Description: req.Description,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt.Unix(),
		UpdatedAt:   req.UpdatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(insertCtx, doc); err != nil {
		return nil, fmt.Errorf("insert service request: %w", err)
	}

	created := *req
	created.ID = id
	return &created, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc requestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find service request: %w", err)
	}
	return docToRequest(doc)
}

// List returns a page of requests matching filter, newest first, plus the
// total count for pagination.
func (r *RequestRepository) List(ctx context.Context, filter ports.ListRequestsFilter) ([]*domain.ServiceRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != 0 {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ServiceType != "" {
		query["service_type"] = filter.ServiceType
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count service requests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*domain.ServiceRequest
	for cursor.Next(ctx) {
		var doc requestDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode service request: %w", err)
		}
		req, err := docToRequest(doc)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate service requests: %w", err)
	}

	return requests, total, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc requestDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC().Unix()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("update service request status: %w", err)
	}
	return docToRequest(doc)
}

// EnsureIndexes creates the owner and status indexes on the collection.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func docToRequest(doc requestDoc) (*domain.ServiceRequest, error) {
	status := domain.RequestStatus(doc.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("service request %d: unknown status %q", doc.ID, doc.Status)
	}
	return &domain.ServiceRequest{
		ID:          doc.ID,
		UserID:      doc.UserID,
		ServiceType: doc.ServiceType,
		Location:    doc.Location,
		Description: doc.Description,
		Status:      status,
		CreatedAt:   unixToTime(doc.CreatedAt),
		UpdatedAt:   unixToTime(doc.UpdatedAt),
	}, nil
}
