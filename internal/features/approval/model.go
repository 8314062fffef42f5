package approval

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalRequest is the aggregate root of one workflow run for one
// document. It exclusively owns its LevelDecision set: every mutation goes
// through the decision engine and is persisted as one atomic replace guarded
// by the version counter.
type ApprovalRequest struct {
	ID           primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	DocumentType common_models.DocumentType  `bson:"document_type" json:"document_type"`
	DocumentID   string                      `bson:"document_id" json:"document_id"`
	CurrentLevel int                         `bson:"current_level" json:"current_level"` // 1-based
	TotalLevels  int                         `bson:"total_levels" json:"total_levels"`   // frozen at creation
	Status       common_models.ApprovalStatus `bson:"status" json:"status"`
	SubmittedBy  string                      `bson:"submitted_by" json:"submitted_by"`
	SubmittedAt  time.Time                   `bson:"submitted_at" json:"submitted_at"`
	CompletedAt  *time.Time                  `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	// Version is the optimistic concurrency counter. Every write must present
	// the version it read; a stale write fails with ErrConflict.
	Version int64 `bson:"version" json:"version"`
	// Levels is indexed by Order-1. Level decisions have no identity of their
	// own; they exist only as part of this aggregate.
	Levels []LevelDecision `bson:"levels" json:"levels"`
}

// LevelDecision records the outcome of one chain level. DisplayName and
// ExpectedApprover are value copies taken from the template when the request
// was created, so later template edits are inert on in-flight runs.
type LevelDecision struct {
	Order            int                          `bson:"order" json:"order"`
	DisplayName      string                       `bson:"display_name" json:"display_name"`
	ExpectedApprover string                       `bson:"expected_approver" json:"expected_approver"`
	IsRequired       bool                         `bson:"is_required" json:"is_required"`
	Decision         common_models.ApprovalStatus `bson:"decision" json:"decision"`
	DecidedBy        string                       `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	DecidedAt        *time.Time                   `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	Comment          string                       `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Level returns the decision row for a 1-based order, or nil when out of range.
func (r *ApprovalRequest) Level(order int) *LevelDecision {
	if order < 1 || order > len(r.Levels) {
		return nil
	}
	return &r.Levels[order-1]
}

// IsTerminal reports whether the run has finished.
func (r *ApprovalRequest) IsTerminal() bool {
	return r.Status != common_models.ApprovalStatusPending
}
