package connectors

import (
	"context"
	"time"
)

// QueryRequest describes a read against a legacy source table.
type QueryRequest struct {
	Table   string
	Fields  []string
	Filters map[string]interface{}
	Sort    map[string]int // 1 ASC, -1 DESC
	Limit   int64
	Offset  int64
}

// QueryResponse carries rows read from a legacy source.
type QueryResponse struct {
	Data       []map[string]interface{}
	TotalCount int64
	Timestamp  time.Time
}

// Connector reads document rows out of a legacy ERP database.
type Connector interface {
	Connect(ctx context.Context, config map[string]string) error
	Disconnect(ctx context.Context) error
	Query(ctx context.Context, req QueryRequest) (*QueryResponse, error)
	TestConnection(ctx context.Context) error
	GetType() string
}
