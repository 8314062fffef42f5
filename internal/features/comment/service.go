package comment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService interface {
	// Add inserts a discussion comment. Comments are allowed at any time,
	// including after the request reached a terminal state.
	Add(ctx context.Context, requestID primitive.ObjectID, commenter, text string, isRejectionReason bool) (primitive.ObjectID, error)
	ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]Comment, error)
}

type CommentServiceImpl struct {
	Repo CommentRepository
}

func NewCommentService(repo CommentRepository) CommentService {
	return &CommentServiceImpl{Repo: repo}
}

func (s *CommentServiceImpl) Add(ctx context.Context, requestID primitive.ObjectID, commenter, text string, isRejectionReason bool) (primitive.ObjectID, error) {
	if strings.TrimSpace(text) == "" {
		return primitive.NilObjectID, errors.New("comment text must not be blank")
	}

	c := Comment{
		ID:                primitive.NewObjectID(),
		RequestID:         requestID,
		Commenter:         commenter,
		Text:              text,
		IsRejectionReason: isRejectionReason,
		CreatedAt:         time.Now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return primitive.NilObjectID, err
	}
	return c.ID, nil
}

func (s *CommentServiceImpl) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]Comment, error) {
	return s.Repo.ListByRequest(ctx, requestID)
}
