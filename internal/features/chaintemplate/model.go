package chaintemplate

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChainTemplate defines the approval chain for one document type.
// It is administrative configuration: requests copy its levels by value at
// creation time, so editing a template never touches an in-flight approval.
type ChainTemplate struct {
	ID           primitive.ObjectID        `bson:"_id,omitempty" json:"id"`
	DocumentType common_models.DocumentType `bson:"document_type" json:"document_type"`
	Name         string                    `bson:"name" json:"name"`
	Active       bool                      `bson:"active" json:"active"`
	Levels       []ChainLevel              `bson:"levels" json:"levels"`
	CreatedAt    time.Time                 `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                 `bson:"updated_at" json:"updated_at"`
}

// ChainLevel is one position in the chain, bound to exactly one approver.
type ChainLevel struct {
	Order       int    `bson:"order" json:"order"`               // 1-based, contiguous
	DisplayName string `bson:"display_name" json:"display_name"` // e.g. "Team Lead", "CEO"
	Approver    string `bson:"approver" json:"approver"`         // opaque identity
	IsRequired  bool   `bson:"is_required" json:"is_required"`
}
