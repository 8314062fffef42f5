package history

import (
	"context"
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Publisher receives every appended entry, e.g. for a live websocket feed.
type Publisher interface {
	PublishHistory(entry HistoryEntry)
}

type HistoryService interface {
	Append(ctx context.Context, requestID primitive.ObjectID, levelOrder *int, action common_models.HistoryAction, actor, comment string) error
	ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]HistoryEntry, error)
}

type HistoryServiceImpl struct {
	Repo      HistoryRepository
	Publisher Publisher
	Logger    *zap.Logger
}

func NewHistoryService(repo HistoryRepository, publisher Publisher, logger *zap.Logger) HistoryService {
	return &HistoryServiceImpl{
		Repo:      repo,
		Publisher: publisher,
		Logger:    logger,
	}
}

func (s *HistoryServiceImpl) Append(ctx context.Context, requestID primitive.ObjectID, levelOrder *int, action common_models.HistoryAction, actor, comment string) error {
	entry := HistoryEntry{
		ID:         primitive.NewObjectID(),
		RequestID:  requestID,
		LevelOrder: levelOrder,
		Action:     action,
		Actor:      actor,
		Comment:    comment,
		Timestamp:  time.Now(),
	}

	if err := s.Repo.Append(ctx, entry); err != nil {
		return err
	}

	if s.Publisher != nil {
		s.Publisher.PublishHistory(entry)
	}

	s.Logger.Info("approval history appended",
		zap.String("request_id", requestID.Hex()),
		zap.String("action", string(action)),
		zap.String("actor", actor),
	)
	return nil
}

func (s *HistoryServiceImpl) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]HistoryEntry, error) {
	return s.Repo.ListByRequest(ctx, requestID)
}
