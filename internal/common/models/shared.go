package models

import "time"

// DocumentType tags the kind of business document an approval chain governs.
type DocumentType string

const (
	DocumentTypeQuotation     DocumentType = "QUOTATION"
	DocumentTypePurchaseOrder DocumentType = "PURCHASE_ORDER"
)

// IsValid reports whether t is one of the known document types.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeQuotation, DocumentTypePurchaseOrder:
		return true
	}
	return false
}

// ApprovalStatus is the overall state of an approval run, and also the
// per-level decision value (a level is PENDING until decided).
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// HistoryAction identifies a lifecycle event in the approval audit trail.
type HistoryAction string

const (
	HistoryActionSubmitted HistoryAction = "SUBMITTED"
	HistoryActionApproved  HistoryAction = "APPROVED"
	HistoryActionRejected  HistoryAction = "REJECTED"
)

// DocumentStatus is the lifecycle of a business document as seen by its
// owning service. It mirrors, but is distinct from, the approval run status.
type DocumentStatus string

const (
	DocumentStatusDraft           DocumentStatus = "DRAFT"
	DocumentStatusPendingApproval DocumentStatus = "PENDING_APPROVAL"
	DocumentStatusApproved        DocumentStatus = "APPROVED"
	DocumentStatusRejected        DocumentStatus = "REJECTED"
)

// AutomationTrigger names the terminal transitions automation rules can hook.
type AutomationTrigger string

const (
	TriggerApprovalApproved AutomationTrigger = "approval_approved"
	TriggerApprovalRejected AutomationTrigger = "approval_rejected"
)

// Log is the document shape written by the async zap sink.
type Log struct {
	Message      string    `bson:"message"`
	IpAddress    string    `bson:"ip_address,omitempty"`
	Actor        string    `bson:"actor,omitempty"`
	Caller       string    `bson:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
