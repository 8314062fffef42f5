package quotation

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

type QuotationRepository interface {
	Create(ctx context.Context, q Quotation) error
	GetByID(ctx context.Context, id string) (*Quotation, error)
	List(ctx context.Context) ([]Quotation, error)
	Update(ctx context.Context, id string, q Quotation) error
	UpdateStatus(ctx context.Context, id string, status common_models.DocumentStatus) error
	UpsertBySourceRef(ctx context.Context, q Quotation) error
	Delete(ctx context.Context, id string) error
}

type QuotationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewQuotationRepository(mongodb *database.MongodbDB) QuotationRepository {
	return &QuotationRepositoryImpl{
		Collection: mongodb.DB.Collection("quotations"),
	}
}

func (r *QuotationRepositoryImpl) Create(ctx context.Context, q Quotation) error {
	_, err := r.Collection.InsertOne(ctx, q)
	return err
}

func (r *QuotationRepositoryImpl) GetByID(ctx context.Context, id string) (*Quotation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var q Quotation
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepositoryImpl) List(ctx context.Context) ([]Quotation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var quotations []Quotation
	if err = cursor.All(ctx, &quotations); err != nil {
		return nil, err
	}
	return quotations, nil
}

func (r *QuotationRepositoryImpl) Update(ctx context.Context, id string, q Quotation) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"customer_name": q.CustomerName,
			"items":         q.Items,
			"total_amount":  q.TotalAmount,
			"currency":      q.Currency,
			"valid_until":   q.ValidUntil,
			"updated_at":    time.Now(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *QuotationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status common_models.DocumentStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *QuotationRepositoryImpl) UpsertBySourceRef(ctx context.Context, q Quotation) error {
	upsert := true
	update := bson.M{
		"$set": bson.M{
			"number":        q.Number,
			"customer_name": q.CustomerName,
			"items":         q.Items,
			"total_amount":  q.TotalAmount,
			"currency":      q.Currency,
			"updated_at":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"status":     common_models.DocumentStatusDraft,
			"created_by": q.CreatedBy,
			"created_at": time.Now(),
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"source_ref": q.SourceRef}, update, &options.UpdateOptions{Upsert: &upsert})
	return err
}

func (r *QuotationRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
