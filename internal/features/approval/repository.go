package approval

import (
	"context"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PendingCount is one row of the pending-approvals projection.
type PendingCount struct {
	DocumentType common_models.DocumentType `bson:"document_type" json:"document_type"`
	CurrentLevel int                        `bson:"current_level" json:"current_level"`
	Count        int64                      `bson:"count" json:"count"`
}

type RequestRepository interface {
	// Insert persists a brand new aggregate. Returns ErrAlreadyExists when
	// the partial unique index on (document_type, document_id) for PENDING
	// requests rejects the write — the index, not a prior lookup, is the
	// source of truth for the one-active-run invariant.
	Insert(ctx context.Context, req *ApprovalRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*ApprovalRequest, error)
	GetByDocument(ctx context.Context, docType common_models.DocumentType, docID string) (*ApprovalRequest, error)
	// ReplaceWithVersion writes the whole aggregate in one atomic replace,
	// matched on (_id, expectedVersion). Returns ErrConflict when the stored
	// version moved on, ErrNotFound when the id is gone.
	ReplaceWithVersion(ctx context.Context, req *ApprovalRequest, expectedVersion int64) error
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]ApprovalRequest, error)
	PendingSummary(ctx context.Context) ([]PendingCount, error)
	EnsureIndexes(ctx context.Context) error
}

type RequestRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRequestRepository(mongodb *database.MongodbDB) RequestRepository {
	return &RequestRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_requests"),
	}
}

func (r *RequestRepositoryImpl) Insert(ctx context.Context, req *ApprovalRequest) error {
	_, err := r.Collection.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *RequestRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*ApprovalRequest, error) {
	var req ApprovalRequest
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) GetByDocument(ctx context.Context, docType common_models.DocumentType, docID string) (*ApprovalRequest, error) {
	// The newest run wins: a rejected document may have been resubmitted.
	opts := options.FindOne().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	var req ApprovalRequest
	err := r.Collection.FindOne(ctx, bson.M{"document_type": docType, "document_id": docID}, opts).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) ReplaceWithVersion(ctx context.Context, req *ApprovalRequest, expectedVersion int64) error {
	filter := bson.M{"_id": req.ID, "version": expectedVersion}
	res, err := r.Collection.ReplaceOne(ctx, filter, req)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a vanished request from a stale version.
		if n, err := r.Collection.CountDocuments(ctx, bson.M{"_id": req.ID}); err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (r *RequestRepositoryImpl) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]ApprovalRequest, error) {
	filter := bson.M{
		"status":       common_models.ApprovalStatusPending,
		"submitted_at": bson.M{"$lt": cutoff},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var requests []ApprovalRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepositoryImpl) PendingSummary(ctx context.Context) ([]PendingCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": common_models.ApprovalStatusPending}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"document_type": "$document_type", "current_level": "$current_level"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"document_type": "$_id.document_type",
			"current_level": "$_id.current_level",
			"count":         1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "document_type", Value: 1}, {Key: "current_level", Value: 1}}}},
	}
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var counts []PendingCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *RequestRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	unique := true
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// At most one PENDING run per document. Terminal runs stay behind
			// as records, so the uniqueness is partial on status.
			Keys: bson.D{{Key: "document_type", Value: 1}, {Key: "document_id", Value: 1}},
			Options: &options.IndexOptions{
				Unique: &unique,
				PartialFilterExpression: bson.M{
					"status": common_models.ApprovalStatusPending,
				},
			},
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: 1}}},
	})
	return err
}
