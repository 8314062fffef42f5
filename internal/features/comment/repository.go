package comment

import (
	"context"

	"go-erp/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository interface {
	Create(ctx context.Context, comment Comment) error
	ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]Comment, error)
}

type CommentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCommentRepository(mongodb *database.MongodbDB) CommentRepository {
	return &CommentRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_comments"),
	}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment Comment) error {
	_, err := r.Collection.InsertOne(ctx, comment)
	return err
}

func (r *CommentRepositoryImpl) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var comments []Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
