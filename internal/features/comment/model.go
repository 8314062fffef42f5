package comment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is free-text discussion attached to an approval request. Exactly
// one comment with IsRejectionReason set is written for each rejection.
type Comment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID         primitive.ObjectID `bson:"request_id" json:"request_id"`
	Commenter         string             `bson:"commenter" json:"commenter"`
	Text              string             `bson:"text" json:"text"`
	IsRejectionReason bool               `bson:"is_rejection_reason" json:"is_rejection_reason"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
