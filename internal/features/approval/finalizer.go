package approval

import (
	"context"

	common_models "go-erp/internal/common/models"
)

// Finalizer is implemented by document services (quotations, purchase
// orders) that want to be told when an approval run for one of their
// documents reaches a terminal state. Finalizer failures are logged and
// never roll back the decision: the aggregate write is authoritative.
type Finalizer interface {
	DocumentType() common_models.DocumentType
	OnApprovalFinished(ctx context.Context, documentID string, status common_models.ApprovalStatus) error
}
