package history

import (
	"context"
	"time"

	"go-erp/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepository is insert-only by construction: the interface exposes no
// update or delete method.
type HistoryRepository interface {
	Append(ctx context.Context, entry HistoryEntry) error
	ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]HistoryEntry, error)
	ListByTimeRange(ctx context.Context, from, to time.Time) ([]HistoryEntry, error)
	EnsureIndexes(ctx context.Context) error
}

type HistoryRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewHistoryRepository(mongodb *database.MongodbDB) HistoryRepository {
	return &HistoryRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_history"),
	}
}

func (r *HistoryRepositoryImpl) Append(ctx context.Context, entry HistoryEntry) error {
	_, err := r.Collection.InsertOne(ctx, entry)
	return err
}

func (r *HistoryRepositoryImpl) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepositoryImpl) ListByTimeRange(ctx context.Context, from, to time.Time) ([]HistoryEntry, error) {
	filter := bson.M{}
	ts := bson.M{}
	if !from.IsZero() {
		ts["$gte"] = from
	}
	if !to.IsZero() {
		ts["$lte"] = to
	}
	if len(ts) > 0 {
		filter["timestamp"] = ts
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	})
	return err
}
