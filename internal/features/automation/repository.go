package automation

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

type AutomationRepository interface {
	Create(ctx context.Context, rule *AutomationRule) error
	GetByID(ctx context.Context, id string) (*AutomationRule, error)
	ListActive(ctx context.Context, documentType common_models.DocumentType, trigger common_models.AutomationTrigger) ([]AutomationRule, error)
	List(ctx context.Context) ([]AutomationRule, error)
	Update(ctx context.Context, rule *AutomationRule) error
	Delete(ctx context.Context, id string) error
	Enable(ctx context.Context, id string, active bool) error
	RecordRun(ctx context.Context, run *AutomationRun) error
	ListRuns(ctx context.Context, ruleID string) ([]AutomationRun, error)
}

type AutomationRepositoryImpl struct {
	Collection *mongo.Collection
	Runs       *mongo.Collection
}

func NewAutomationRepository(mongodb *database.MongodbDB) AutomationRepository {
	return &AutomationRepositoryImpl{
		Collection: mongodb.DB.Collection("automation_rules"),
		Runs:       mongodb.DB.Collection("automation_runs"),
	}
}

func (r *AutomationRepositoryImpl) Create(ctx context.Context, rule *AutomationRule) error {
	rule.ID = primitive.NewObjectID()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, rule)
	return err
}

func (r *AutomationRepositoryImpl) GetByID(ctx context.Context, id string) (*AutomationRule, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var rule AutomationRule
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *AutomationRepositoryImpl) ListActive(ctx context.Context, documentType common_models.DocumentType, trigger common_models.AutomationTrigger) ([]AutomationRule, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{
		"document_type": documentType,
		"trigger":       trigger,
		"active":        true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []AutomationRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AutomationRepositoryImpl) List(ctx context.Context) ([]AutomationRule, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []AutomationRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AutomationRepositoryImpl) Update(ctx context.Context, rule *AutomationRule) error {
	rule.UpdatedAt = time.Now()
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": rule.ID}, rule)
	return err
}

func (r *AutomationRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *AutomationRepositoryImpl) Enable(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"active": active, "updated_at": time.Now()},
	})
	return err
}

func (r *AutomationRepositoryImpl) RecordRun(ctx context.Context, run *AutomationRun) error {
	run.ID = primitive.NewObjectID()
	run.RanAt = time.Now()
	_, err := r.Runs.InsertOne(ctx, run)
	return err
}

func (r *AutomationRepositoryImpl) ListRuns(ctx context.Context, ruleID string) ([]AutomationRun, error) {
	oid, err := primitive.ObjectIDFromHex(ruleID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "ran_at", Value: -1}}).SetLimit(100)
	cursor, err := r.Runs.Find(ctx, bson.M{"rule_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []AutomationRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
