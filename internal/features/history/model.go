package history

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry is one immutable row of the approval audit trail. Rows are
// only ever inserted; there is no update or delete path anywhere in the
// codebase. This is a compliance requirement, not a convenience.
type HistoryEntry struct {
	ID         primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	RequestID  primitive.ObjectID          `bson:"request_id" json:"request_id"`
	LevelOrder *int                        `bson:"level_order,omitempty" json:"level_order,omitempty"` // nil for SUBMITTED
	Action     common_models.HistoryAction `bson:"action" json:"action"`
	Actor      string                      `bson:"actor" json:"actor"`
	Comment    string                      `bson:"comment,omitempty" json:"comment,omitempty"`
	Timestamp  time.Time                   `bson:"timestamp" json:"timestamp"`
}
