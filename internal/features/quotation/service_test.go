package quotation

import (
	"context"
	"errors"
	"testing"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/features/approval"
	"go-erp/internal/features/comment"
	"go-erp/internal/features/history"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeQuotationRepo struct {
	docs map[string]*Quotation
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{docs: map[string]*Quotation{}}
}

func (f *fakeQuotationRepo) Create(ctx context.Context, q Quotation) error {
	f.docs[q.ID.Hex()] = &q
	return nil
}

func (f *fakeQuotationRepo) GetByID(ctx context.Context, id string) (*Quotation, error) {
	q, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuotationRepo) List(ctx context.Context) ([]Quotation, error) {
	var out []Quotation
	for _, q := range f.docs {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuotationRepo) Update(ctx context.Context, id string, q Quotation) error {
	existing, ok := f.docs[id]
	if !ok {
		return errors.New("not found")
	}
	q.ID = existing.ID
	q.Status = existing.Status
	f.docs[id] = &q
	return nil
}

func (f *fakeQuotationRepo) UpdateStatus(ctx context.Context, id string, status common_models.DocumentStatus) error {
	q, ok := f.docs[id]
	if !ok {
		return errors.New("not found")
	}
	q.Status = status
	return nil
}

func (f *fakeQuotationRepo) UpsertBySourceRef(ctx context.Context, q Quotation) error {
	return errors.New("not implemented")
}

func (f *fakeQuotationRepo) Delete(ctx context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

// fakeApprovals records Start calls and can be told to fail.
type fakeApprovals struct {
	startErr error
	started  []string
}

func (f *fakeApprovals) Start(ctx context.Context, docType common_models.DocumentType, docID, submittedBy string) (primitive.ObjectID, error) {
	if f.startErr != nil {
		return primitive.NilObjectID, f.startErr
	}
	f.started = append(f.started, docID)
	return primitive.NewObjectID(), nil
}

func (f *fakeApprovals) Decide(ctx context.Context, requestID string, levelOrder int, actor string, decision common_models.ApprovalStatus, commentText string, expectedVersion int64) (*approval.ApprovalRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApprovals) GetRequest(ctx context.Context, requestID string) (*approval.ApprovalRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApprovals) GetRequestByDocument(ctx context.Context, docType common_models.DocumentType, docID string) (*approval.ApprovalRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApprovals) ListHistory(ctx context.Context, requestID string) ([]history.HistoryEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApprovals) AddComment(ctx context.Context, requestID string, commenter, text string) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("not implemented")
}

func (f *fakeApprovals) ListComments(ctx context.Context, requestID string) ([]comment.Comment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeApprovals) RegisterFinalizer(fin approval.Finalizer) {}

func newQuotation(t *testing.T, svc QuotationService) string {
	t.Helper()
	id, err := svc.CreateQuotation(context.Background(), Quotation{
		Number:       "Q-1",
		CustomerName: "Acme",
		Items: []QuotationItem{
			{Description: "widgets", Quantity: 3, UnitPrice: 10},
			{Description: "shipping", Quantity: 1, UnitPrice: 5.5},
		},
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("CreateQuotation() error = %v", err)
	}
	return id.Hex()
}

func TestSubmitLifecycle(t *testing.T) {
	repo := newFakeQuotationRepo()
	approvals := &fakeApprovals{}
	svc := NewQuotationService(repo, approvals, zap.NewNop())

	id := newQuotation(t, svc)

	q, _ := svc.GetQuotation(context.Background(), id)
	if q.Status != common_models.DocumentStatusDraft {
		t.Fatalf("new quotation status = %s, want DRAFT", q.Status)
	}
	if q.TotalAmount != 35.5 {
		t.Errorf("total = %v, want 35.5", q.TotalAmount)
	}

	if _, err := svc.Submit(context.Background(), id, "alice"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	q, _ = svc.GetQuotation(context.Background(), id)
	if q.Status != common_models.DocumentStatusPendingApproval {
		t.Errorf("status after submit = %s, want PENDING_APPROVAL", q.Status)
	}
	if len(approvals.started) != 1 || approvals.started[0] != id {
		t.Errorf("approval started with %v, want [%s]", approvals.started, id)
	}

	// Frozen while pending.
	if err := svc.UpdateQuotation(context.Background(), id, Quotation{Number: "Q-1b"}); err == nil {
		t.Error("UpdateQuotation() on pending quotation should fail")
	}
	if err := svc.DeleteQuotation(context.Background(), id); err == nil {
		t.Error("DeleteQuotation() on pending quotation should fail")
	}
	if _, err := svc.Submit(context.Background(), id, "alice"); err == nil {
		t.Error("Submit() on pending quotation should fail")
	}
}

func TestOnApprovalFinished(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := NewQuotationService(repo, &fakeApprovals{}, zap.NewNop()).(*QuotationServiceImpl)

	id := newQuotation(t, svc)

	if err := svc.OnApprovalFinished(context.Background(), id, common_models.ApprovalStatusRejected); err != nil {
		t.Fatalf("OnApprovalFinished() error = %v", err)
	}
	q, _ := svc.GetQuotation(context.Background(), id)
	if q.Status != common_models.DocumentStatusRejected {
		t.Fatalf("status = %s, want REJECTED", q.Status)
	}

	// A rejected quotation may be reworked and resubmitted.
	if _, err := svc.Submit(context.Background(), id, "alice"); err != nil {
		t.Errorf("Submit() after rejection error = %v", err)
	}

	if err := svc.OnApprovalFinished(context.Background(), id, common_models.ApprovalStatusApproved); err != nil {
		t.Fatalf("OnApprovalFinished() error = %v", err)
	}
	q, _ = svc.GetQuotation(context.Background(), id)
	if q.Status != common_models.DocumentStatusApproved {
		t.Fatalf("status = %s, want APPROVED", q.Status)
	}
}

func TestSubmit_StartFailureKeepsDraft(t *testing.T) {
	repo := newFakeQuotationRepo()
	approvals := &fakeApprovals{startErr: approval.ErrInvalidConfiguration}
	svc := NewQuotationService(repo, approvals, zap.NewNop())

	id := newQuotation(t, svc)

	if _, err := svc.Submit(context.Background(), id, "alice"); !errors.Is(err, approval.ErrInvalidConfiguration) {
		t.Fatalf("Submit() error = %v, want ErrInvalidConfiguration", err)
	}
	q, _ := svc.GetQuotation(context.Background(), id)
	if q.Status != common_models.DocumentStatusDraft {
		t.Errorf("status = %s, want DRAFT after failed submit", q.Status)
	}
}
