package purchaseorder

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

type OrderRepository interface {
	Create(ctx context.Context, po PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*PurchaseOrder, error)
	List(ctx context.Context) ([]PurchaseOrder, error)
	Update(ctx context.Context, id string, po PurchaseOrder) error
	UpdateStatus(ctx context.Context, id string, status common_models.DocumentStatus) error
	UpsertBySourceRef(ctx context.Context, po PurchaseOrder) error
	Delete(ctx context.Context, id string) error
}

type OrderRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOrderRepository(mongodb *database.MongodbDB) OrderRepository {
	return &OrderRepositoryImpl{
		Collection: mongodb.DB.Collection("purchase_orders"),
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, po PurchaseOrder) error {
	_, err := r.Collection.InsertOne(ctx, po)
	return err
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id string) (*PurchaseOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var po PurchaseOrder
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&po)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &po, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context) ([]PurchaseOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []PurchaseOrder
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, id string, po PurchaseOrder) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"supplier_name": po.SupplierName,
			"lines":         po.Lines,
			"total_amount":  po.TotalAmount,
			"currency":      po.Currency,
			"expected_at":   po.ExpectedAt,
			"updated_at":    time.Now(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id string, status common_models.DocumentStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *OrderRepositoryImpl) UpsertBySourceRef(ctx context.Context, po PurchaseOrder) error {
	upsert := true
	update := bson.M{
		"$set": bson.M{
			"number":        po.Number,
			"supplier_name": po.SupplierName,
			"lines":         po.Lines,
			"total_amount":  po.TotalAmount,
			"currency":      po.Currency,
			"updated_at":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"status":     common_models.DocumentStatusDraft,
			"created_by": po.CreatedBy,
			"created_at": time.Now(),
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"source_ref": po.SourceRef}, update, &options.UpdateOptions{Upsert: &upsert})
	return err
}

func (r *OrderRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
