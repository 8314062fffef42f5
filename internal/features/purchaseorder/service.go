package purchaseorder

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

type OrderService interface {
	CreateOrder(ctx context.Context, po PurchaseOrder) (primitive.ObjectID, error)
	GetOrder(ctx context.Context, id string) (*PurchaseOrder, error)
	ListOrders(ctx context.Context) ([]PurchaseOrder, error)
	UpdateOrder(ctx context.Context, id string, po PurchaseOrder) error
	DeleteOrder(ctx context.Context, id string) error
	Submit(ctx context.Context, id, submittedBy string) (primitive.ObjectID, error)

	approval.Finalizer
}

type OrderServiceImpl struct {
	Repo      OrderRepository
	Approvals approval.ApprovalService
	Logger    *zap.Logger
}

func NewOrderService(repo OrderRepository, approvals approval.ApprovalService, logger *zap.Logger) OrderService {
	return &OrderServiceImpl{
		Repo:      repo,
		Approvals: approvals,
		Logger:    logger,
	}
}

func (s *OrderServiceImpl) CreateOrder(ctx context.Context, po PurchaseOrder) (primitive.ObjectID, error) {
	if po.Number == "" {
		return primitive.NilObjectID, errors.New("purchase order number is required")
	}
	if po.ID.IsZero() {
		po.ID = primitive.NewObjectID()
	}
	po.Status = common_models.DocumentStatusDraft
	po.TotalAmount = totalOf(po.Lines)
	po.CreatedAt = time.Now()
	po.UpdatedAt = time.Now()

	if err := s.Repo.Create(ctx, po); err != nil {
		return primitive.NilObjectID, err
	}
	return po.ID, nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context) ([]PurchaseOrder, error) {
	return s.Repo.List(ctx)
}

func (s *OrderServiceImpl) UpdateOrder(ctx context.Context, id string, po PurchaseOrder) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("purchase order not found")
	}
	if existing.Status == common_models.DocumentStatusPendingApproval {
		return errors.New("purchase order is pending approval and cannot be edited")
	}
	po.TotalAmount = totalOf(po.Lines)
	return s.Repo.Update(ctx, id, po)
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil && existing.Status == common_models.DocumentStatusPendingApproval {
		return errors.New("purchase order is pending approval and cannot be deleted")
	}
	return s.Repo.Delete(ctx, id)
}

func (s *OrderServiceImpl) Submit(ctx context.Context, id, submittedBy string) (primitive.ObjectID, error) {
	po, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if po == nil {
		return primitive.NilObjectID, errors.New("purchase order not found")
	}
	if po.Status != common_models.DocumentStatusDraft && po.Status != common_models.DocumentStatusRejected {
		return primitive.NilObjectID, fmt.Errorf("purchase order in status %s cannot be submitted", po.Status)
	}

	requestID, err := s.Approvals.Start(ctx, common_models.DocumentTypePurchaseOrder, po.ID.Hex(), submittedBy)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, common_models.DocumentStatusPendingApproval); err != nil {
		s.Logger.Error("failed to flip purchase order to PENDING_APPROVAL",
			zap.String("purchase_order_id", id), zap.Error(err))
	}
	return requestID, nil
}

func (s *OrderServiceImpl) DocumentType() common_models.DocumentType {
	return common_models.DocumentTypePurchaseOrder
}

func (s *OrderServiceImpl) OnApprovalFinished(ctx context.Context, documentID string, status common_models.ApprovalStatus) error {
	docStatus := common_models.DocumentStatusApproved
	if status == common_models.ApprovalStatusRejected {
		docStatus = common_models.DocumentStatusRejected
	}
	return s.Repo.UpdateStatus(ctx, documentID, docStatus)
}

func totalOf(lines []OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}
