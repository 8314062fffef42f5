package chaintemplate

import (
	"context"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TemplateRepository interface {
	Create(ctx context.Context, template ChainTemplate) error
	GetByID(ctx context.Context, id string) (*ChainTemplate, error)
	GetActiveByDocumentType(ctx context.Context, docType common_models.DocumentType) (*ChainTemplate, error)
	ListActiveByDocumentType(ctx context.Context, docType common_models.DocumentType) ([]ChainTemplate, error)
	List(ctx context.Context) ([]ChainTemplate, error)
	Update(ctx context.Context, id string, template ChainTemplate) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTemplateRepository(mongodb *database.MongodbDB) TemplateRepository {
	return &TemplateRepositoryImpl{
		Collection: mongodb.DB.Collection("chain_templates"),
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template ChainTemplate) error {
	_, err := r.Collection.InsertOne(ctx, template)
	return err
}

func (r *TemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*ChainTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var template ChainTemplate
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) GetActiveByDocumentType(ctx context.Context, docType common_models.DocumentType) (*ChainTemplate, error) {
	var template ChainTemplate
	err := r.Collection.FindOne(ctx, bson.M{"document_type": docType, "active": true}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No active template for this document type
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) ListActiveByDocumentType(ctx context.Context, docType common_models.DocumentType) ([]ChainTemplate, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"document_type": docType, "active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var templates []ChainTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) List(ctx context.Context) ([]ChainTemplate, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var templates []ChainTemplate
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, id string, template ChainTemplate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"name":       template.Name,
			"active":     template.Active,
			"levels":     template.Levels,
			"updated_at": time.Now(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
