package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/features/approval"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type QuotationService interface {
	CreateQuotation(ctx context.Context, q Quotation) (primitive.ObjectID, error)
	GetQuotation(ctx context.Context, id string) (*Quotation, error)
	ListQuotations(ctx context.Context) ([]Quotation, error)
	UpdateQuotation(ctx context.Context, id string, q Quotation) error
	DeleteQuotation(ctx context.Context, id string) error

	// Submit starts an approval run for a draft (or rejected and reworked)
	// quotation and flips it to PENDING_APPROVAL.
	Submit(ctx context.Context, id, submittedBy string) (primitive.ObjectID, error)

	approval.Finalizer
}

type QuotationServiceImpl struct {
	Repo      QuotationRepository
	Approvals approval.ApprovalService
	Logger    *zap.Logger
}

func NewQuotationService(repo QuotationRepository, approvals approval.ApprovalService, logger *zap.Logger) QuotationService {
	return &QuotationServiceImpl{
		Repo:      repo,
		Approvals: approvals,
		Logger:    logger,
	}
}

func (s *QuotationServiceImpl) CreateQuotation(ctx context.Context, q Quotation) (primitive.ObjectID, error) {
	if q.Number == "" {
		return primitive.NilObjectID, errors.New("quotation number is required")
	}
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.Status = common_models.DocumentStatusDraft
	q.TotalAmount = totalOf(q.Items)
	q.CreatedAt = time.Now()
	q.UpdatedAt = time.Now()

	if err := s.Repo.Create(ctx, q); err != nil {
		return primitive.NilObjectID, err
	}
	return q.ID, nil
}

func (s *QuotationServiceImpl) GetQuotation(ctx context.Context, id string) (*Quotation, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *QuotationServiceImpl) ListQuotations(ctx context.Context) ([]Quotation, error) {
	return s.Repo.List(ctx)
}

func (s *QuotationServiceImpl) UpdateQuotation(ctx context.Context, id string, q Quotation) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("quotation not found")
	}
	// Documents under approval are frozen; rejected ones may be reworked.
	if existing.Status == common_models.DocumentStatusPendingApproval {
		return errors.New("quotation is pending approval and cannot be edited")
	}
	q.TotalAmount = totalOf(q.Items)
	return s.Repo.Update(ctx, id, q)
}

func (s *QuotationServiceImpl) DeleteQuotation(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil && existing.Status == common_models.DocumentStatusPendingApproval {
		return errors.New("quotation is pending approval and cannot be deleted")
	}
	return s.Repo.Delete(ctx, id)
}

func (s *QuotationServiceImpl) Submit(ctx context.Context, id, submittedBy string) (primitive.ObjectID, error) {
	q, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if q == nil {
		return primitive.NilObjectID, errors.New("quotation not found")
	}
	if q.Status != common_models.DocumentStatusDraft && q.Status != common_models.DocumentStatusRejected {
		return primitive.NilObjectID, fmt.Errorf("quotation in status %s cannot be submitted", q.Status)
	}

	requestID, err := s.Approvals.Start(ctx, common_models.DocumentTypeQuotation, q.ID.Hex(), submittedBy)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, common_models.DocumentStatusPendingApproval); err != nil {
		s.Logger.Error("failed to flip quotation to PENDING_APPROVAL",
			zap.String("quotation_id", id), zap.Error(err))
	}
	return requestID, nil
}

func (s *QuotationServiceImpl) DocumentType() common_models.DocumentType {
	return common_models.DocumentTypeQuotation
}

// OnApprovalFinished is the approval engine's terminal-transition callback.
func (s *QuotationServiceImpl) OnApprovalFinished(ctx context.Context, documentID string, status common_models.ApprovalStatus) error {
	docStatus := common_models.DocumentStatusApproved
	if status == common_models.ApprovalStatusRejected {
		docStatus = common_models.DocumentStatusRejected
	}
	return s.Repo.UpdateStatus(ctx, documentID, docStatus)
}

func totalOf(items []QuotationItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
