package sync

import (
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TableSyncConfig maps one legacy table onto a document type. Mapping keys
// are legacy column names, values are document field names.
type TableSyncConfig struct {
	DocumentType common_models.DocumentType `json:"document_type" bson:"document_type"`
	Table        string                     `json:"table" bson:"table"`
	KeyColumn    string                     `json:"key_column" bson:"key_column"`
	Mapping      map[string]string          `json:"mapping" bson:"mapping"`
}

type SyncSetting struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Tables         []TableSyncConfig  `json:"tables" bson:"tables"`
	SourceDBType   string             `json:"source_db_type" bson:"source_db_type"` // "postgresql", "mysql"
	SourceDBConfig map[string]string  `json:"source_db_config" bson:"source_db_config"`
	Schedule       string             `json:"schedule,omitempty" bson:"schedule,omitempty"` // cron spec, empty = manual only
	LastSyncAt     time.Time          `json:"last_sync_at" bson:"last_sync_at"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type SyncLog struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SyncSettingID  primitive.ObjectID `json:"sync_setting_id" bson:"sync_setting_id"`
	StartTime      time.Time          `json:"start_time" bson:"start_time"`
	EndTime        time.Time          `json:"end_time" bson:"end_time"`
	Status         string             `json:"status" bson:"status"` // "success", "failed", "in_progress"
	ProcessedCount int                `json:"processed_count" bson:"processed_count"`
	Error          string             `json:"error,omitempty" bson:"error,omitempty"`
}
