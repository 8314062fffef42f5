package quotation

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quotation is a price quotation document. The approval engine knows it only
// as an opaque (documentType, documentId) pair; its business fields live here.
type Quotation struct {
	ID           primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	Number       string                      `bson:"number" json:"number"`
	CustomerName string                      `bson:"customer_name" json:"customer_name"`
	Items        []QuotationItem             `bson:"items" json:"items"`
	TotalAmount  float64                     `bson:"total_amount" json:"total_amount"`
	Currency     string                      `bson:"currency" json:"currency"`
	Status       common_models.DocumentStatus `bson:"status" json:"status"`
	ValidUntil   *time.Time                  `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	SourceRef    string                      `bson:"source_ref,omitempty" json:"source_ref,omitempty"` // legacy ERP key
	CreatedBy    string                      `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time                   `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                   `bson:"updated_at" json:"updated_at"`
}

type QuotationItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
}
