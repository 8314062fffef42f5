package purchaseorder

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	ID           primitive.ObjectID           `bson:"_id,omitempty" json:"id"`
	Number       string                       `bson:"number" json:"number"`
	SupplierName string                       `bson:"supplier_name" json:"supplier_name"`
	Lines        []OrderLine                  `bson:"lines" json:"lines"`
	TotalAmount  float64                      `bson:"total_amount" json:"total_amount"`
	Currency     string                       `bson:"currency" json:"currency"`
	Status       common_models.DocumentStatus `bson:"status" json:"status"`
	ExpectedAt   *time.Time                   `bson:"expected_at,omitempty" json:"expected_at,omitempty"`
	SourceRef    string                       `bson:"source_ref,omitempty" json:"source_ref,omitempty"`
	CreatedBy    string                       `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time                    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time                    `bson:"updated_at" json:"updated_at"`
}

type OrderLine struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
}
