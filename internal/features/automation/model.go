package automation

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AutomationRule struct {
	ID           primitive.ObjectID              `json:"id" bson:"_id,omitempty"`
	Name         string                          `json:"name" bson:"name"`
	DocumentType common_models.DocumentType      `json:"document_type" bson:"document_type"`
	Trigger      common_models.AutomationTrigger `json:"trigger" bson:"trigger"`
	Script       string                          `json:"script" bson:"script"`
	Active       bool                            `json:"active" bson:"active"`
	CreatedAt    time.Time                       `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time                       `json:"updated_at" bson:"updated_at"`
}

// AutomationRun records a single rule execution against a finished approval.
type AutomationRun struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RuleID    primitive.ObjectID `json:"rule_id" bson:"rule_id"`
	RuleName  string             `json:"rule_name" bson:"rule_name"`
	RequestID string             `json:"request_id" bson:"request_id"`
	Success   bool               `json:"success" bson:"success"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	RanAt     time.Time          `json:"ran_at" bson:"ran_at"`
}
