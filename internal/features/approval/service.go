package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/features/chaintemplate"
	"go-erp/internal/features/comment"
	"go-erp/internal/features/history"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AutomationHook receives terminal transitions so rule scripts can run.
// Hook failures never affect the decision.
type AutomationHook interface {
	OnApprovalFinished(ctx context.Context, trigger common_models.AutomationTrigger, docType common_models.DocumentType, payload map[string]interface{})
}

// TemplateProvider is the narrow slice of the template store the engine
// consumes: the level-ordered active chain for a document type.
type TemplateProvider interface {
	GetActiveTemplate(ctx context.Context, docType common_models.DocumentType) (*chaintemplate.ChainTemplate, error)
}

type ApprovalService interface {
	// Start begins an approval run for a document, snapshotting the active
	// chain template. Fails with ErrInvalidConfiguration when no usable
	// template exists and ErrAlreadyExists when a run is already pending.
	Start(ctx context.Context, docType common_models.DocumentType, docID, submittedBy string) (primitive.ObjectID, error)

	// Decide applies one approver's decision to the current level.
	// expectedVersion is the aggregate version the caller read; a stale
	// value fails with ErrConflict and the caller must re-read.
	Decide(ctx context.Context, requestID string, levelOrder int, actor string, decision common_models.ApprovalStatus, commentText string, expectedVersion int64) (*ApprovalRequest, error)

	GetRequest(ctx context.Context, requestID string) (*ApprovalRequest, error)
	GetRequestByDocument(ctx context.Context, docType common_models.DocumentType, docID string) (*ApprovalRequest, error)
	ListHistory(ctx context.Context, requestID string) ([]history.HistoryEntry, error)
	AddComment(ctx context.Context, requestID string, commenter, text string) (primitive.ObjectID, error)
	ListComments(ctx context.Context, requestID string) ([]comment.Comment, error)

	// RegisterFinalizer attaches a document service after construction.
	// Document services depend on this service to submit, so they cannot
	// be constructor arguments. Not safe once requests are being served.
	RegisterFinalizer(f Finalizer)
}

type ApprovalServiceImpl struct {
	Repo       RequestRepository
	Templates  TemplateProvider
	History    history.HistoryService
	Comments   comment.CommentService
	Automation AutomationHook
	Finalizers []Finalizer
	Logger     *zap.Logger
}

func NewApprovalService(
	repo RequestRepository,
	templates TemplateProvider,
	historyService history.HistoryService,
	commentService comment.CommentService,
	automation AutomationHook,
	finalizers []Finalizer,
	logger *zap.Logger,
) ApprovalService {
	return &ApprovalServiceImpl{
		Repo:       repo,
		Templates:  templates,
		History:    historyService,
		Comments:   commentService,
		Automation: automation,
		Finalizers: finalizers,
		Logger:     logger,
	}
}

func (s *ApprovalServiceImpl) RegisterFinalizer(f Finalizer) {
	s.Finalizers = append(s.Finalizers, f)
}

func (s *ApprovalServiceImpl) Start(ctx context.Context, docType common_models.DocumentType, docID, submittedBy string) (primitive.ObjectID, error) {
	template, err := s.Templates.GetActiveTemplate(ctx, docType)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("loading active template: %w", err)
	}
	if template == nil || len(template.Levels) == 0 {
		// A zero-level chain must fail loudly instead of auto-approving.
		return primitive.NilObjectID, ErrInvalidConfiguration
	}

	now := time.Now()
	req := &ApprovalRequest{
		ID:           primitive.NewObjectID(),
		DocumentType: docType,
		DocumentID:   docID,
		CurrentLevel: 1,
		TotalLevels:  len(template.Levels),
		Status:       common_models.ApprovalStatusPending,
		SubmittedBy:  submittedBy,
		SubmittedAt:  now,
		Version:      1,
		Levels:       snapshotLevels(template.Levels),
	}

	if err := s.Repo.Insert(ctx, req); err != nil {
		return primitive.NilObjectID, err
	}

	// History is derivable evidence, not state: an append failure is a
	// monitoring concern and never unwinds the insert.
	if err := s.History.Append(ctx, req.ID, nil, common_models.HistoryActionSubmitted, submittedBy, ""); err != nil {
		s.Logger.Error("failed to append SUBMITTED history entry",
			zap.String("request_id", req.ID.Hex()), zap.Error(err))
	}

	s.Logger.Info("approval run started",
		zap.String("request_id", req.ID.Hex()),
		zap.String("document_type", string(docType)),
		zap.String("document_id", docID),
		zap.Int("total_levels", req.TotalLevels),
	)
	return req.ID, nil
}

func (s *ApprovalServiceImpl) Decide(ctx context.Context, requestID string, levelOrder int, actor string, decision common_models.ApprovalStatus, commentText string, expectedVersion int64) (*ApprovalRequest, error) {
	if decision != common_models.ApprovalStatusApproved && decision != common_models.ApprovalStatusRejected {
		return nil, fmt.Errorf("unsupported decision %q", decision)
	}

	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrNotFound
	}

	req, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// Early version check for fast feedback; the versioned replace below is
	// the authoritative guard against the concurrent-bypass race.
	if expectedVersion != req.Version {
		return nil, ErrConflict
	}
	if req.IsTerminal() {
		return nil, ErrInvalidState
	}
	if levelOrder != req.CurrentLevel {
		// Levels are decided strictly in order, even when the actor also
		// owns a later level.
		return nil, ErrWrongLevel
	}

	level := req.Level(levelOrder)
	if level == nil {
		return nil, ErrWrongLevel
	}
	if actor != level.ExpectedApprover {
		return nil, ErrWrongApprover
	}

	if decision == common_models.ApprovalStatusRejected && strings.TrimSpace(commentText) == "" {
		return nil, ErrMissingReason
	}

	now := time.Now()
	level.Decision = decision
	level.DecidedBy = actor
	level.DecidedAt = &now
	level.Comment = commentText

	switch decision {
	case common_models.ApprovalStatusRejected:
		// A rejection kills the whole chain; later levels stay PENDING forever.
		req.Status = common_models.ApprovalStatusRejected
		req.CompletedAt = &now
	case common_models.ApprovalStatusApproved:
		if levelOrder == req.TotalLevels {
			req.Status = common_models.ApprovalStatusApproved
			req.CompletedAt = &now
		} else {
			req.CurrentLevel++
		}
	}

	req.Version++
	if err := s.Repo.ReplaceWithVersion(ctx, req, expectedVersion); err != nil {
		return nil, err
	}

	s.recordDecisionSideEffects(ctx, req, levelOrder, actor, decision, commentText)

	return req, nil
}

// recordDecisionSideEffects appends history, stores the rejection reason and
// notifies finalizers/automation. All of this happens after the
// authoritative aggregate write; failures are logged, never rolled back.
func (s *ApprovalServiceImpl) recordDecisionSideEffects(ctx context.Context, req *ApprovalRequest, levelOrder int, actor string, decision common_models.ApprovalStatus, commentText string) {
	action := common_models.HistoryActionApproved
	if decision == common_models.ApprovalStatusRejected {
		action = common_models.HistoryActionRejected
	}
	lvl := levelOrder
	if err := s.History.Append(ctx, req.ID, &lvl, action, actor, commentText); err != nil {
		s.Logger.Error("failed to append decision history entry",
			zap.String("request_id", req.ID.Hex()), zap.Error(err))
	}

	if decision == common_models.ApprovalStatusRejected {
		if _, err := s.Comments.Add(ctx, req.ID, actor, commentText, true); err != nil {
			s.Logger.Error("failed to store rejection reason comment",
				zap.String("request_id", req.ID.Hex()), zap.Error(err))
		}
	}

	if !req.IsTerminal() {
		return
	}

	for _, f := range s.Finalizers {
		if f.DocumentType() != req.DocumentType {
			continue
		}
		if err := f.OnApprovalFinished(ctx, req.DocumentID, req.Status); err != nil {
			s.Logger.Error("document finalizer failed",
				zap.String("request_id", req.ID.Hex()),
				zap.String("document_type", string(req.DocumentType)),
				zap.Error(err))
		}
	}

	if s.Automation != nil {
		trigger := common_models.TriggerApprovalApproved
		if req.Status == common_models.ApprovalStatusRejected {
			trigger = common_models.TriggerApprovalRejected
		}
		s.Automation.OnApprovalFinished(ctx, trigger, req.DocumentType, map[string]interface{}{
			"request_id":    req.ID.Hex(),
			"document_type": string(req.DocumentType),
			"document_id":   req.DocumentID,
			"status":        string(req.Status),
			"total_levels":  req.TotalLevels,
			"submitted_by":  req.SubmittedBy,
			"decided_by":    actor,
		})
	}
}

func (s *ApprovalServiceImpl) GetRequest(ctx context.Context, requestID string) (*ApprovalRequest, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Repo.GetByID(ctx, oid)
}

func (s *ApprovalServiceImpl) GetRequestByDocument(ctx context.Context, docType common_models.DocumentType, docID string) (*ApprovalRequest, error) {
	return s.Repo.GetByDocument(ctx, docType, docID)
}

func (s *ApprovalServiceImpl) ListHistory(ctx context.Context, requestID string) ([]history.HistoryEntry, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.History.ListByRequest(ctx, oid)
}

func (s *ApprovalServiceImpl) AddComment(ctx context.Context, requestID string, commenter, text string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	// Comments stay open after terminal state for post-mortem discussion,
	// but the request must exist.
	if _, err := s.Repo.GetByID(ctx, oid); err != nil {
		return primitive.NilObjectID, err
	}
	return s.Comments.Add(ctx, oid, commenter, text, false)
}

func (s *ApprovalServiceImpl) ListComments(ctx context.Context, requestID string) ([]comment.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Comments.ListByRequest(ctx, oid)
}

func snapshotLevels(levels []chaintemplate.ChainLevel) []LevelDecision {
	decisions := make([]LevelDecision, len(levels))
	for i, lvl := range levels {
		decisions[i] = LevelDecision{
			Order:            lvl.Order,
			DisplayName:      lvl.DisplayName,
			ExpectedApprover: lvl.Approver,
			IsRequired:       lvl.IsRequired,
			Decision:         common_models.ApprovalStatusPending,
		}
	}
	return decisions
}
