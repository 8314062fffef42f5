package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/connectors"
	"go-erp/internal/features/purchaseorder"
	"go-erp/internal/features/quotation"

	"go.uber.org/zap"
)

// batchSize bounds a single pull from a legacy table.
const batchSize = 500

type SyncService interface {
	CreateSetting(ctx context.Context, setting *SyncSetting) error
	GetSetting(ctx context.Context, id string) (*SyncSetting, error)
	ListSettings(ctx context.Context) ([]SyncSetting, error)
	UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteSetting(ctx context.Context, id string) error
	ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error)
	RunSync(ctx context.Context, settingID string) (*SyncLog, error)
	RunAllActive(ctx context.Context)
}

type SyncServiceImpl struct {
	Settings   SyncSettingRepository
	Logs       SyncLogRepository
	Quotations quotation.QuotationRepository
	Orders     purchaseorder.OrderRepository
	Logger     *zap.Logger

	// newConnector is swappable for tests.
	newConnector func(dbType string) connectors.Connector
}

func NewSyncService(
	settings SyncSettingRepository,
	logs SyncLogRepository,
	quotations quotation.QuotationRepository,
	orders purchaseorder.OrderRepository,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		Settings:     settings,
		Logs:         logs,
		Quotations:   quotations,
		Orders:       orders,
		Logger:       logger,
		newConnector: connectors.NewLegacySQLConnector,
	}
}

func (s *SyncServiceImpl) CreateSetting(ctx context.Context, setting *SyncSetting) error {
	if err := validateSetting(setting); err != nil {
		return err
	}
	return s.Settings.Create(ctx, setting)
}

func (s *SyncServiceImpl) GetSetting(ctx context.Context, id string) (*SyncSetting, error) {
	return s.Settings.Get(ctx, id)
}

func (s *SyncServiceImpl) ListSettings(ctx context.Context) ([]SyncSetting, error) {
	return s.Settings.List(ctx)
}

func (s *SyncServiceImpl) UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error {
	return s.Settings.Update(ctx, id, updates)
}

func (s *SyncServiceImpl) DeleteSetting(ctx context.Context, id string) error {
	return s.Settings.Delete(ctx, id)
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error) {
	return s.Logs.List(ctx, settingID, limit)
}

func validateSetting(setting *SyncSetting) error {
	if setting.Name == "" {
		return errors.New("setting name is required")
	}
	if setting.SourceDBType != "postgresql" && setting.SourceDBType != "mysql" {
		return errors.New("source_db_type must be postgresql or mysql")
	}
	if len(setting.Tables) == 0 {
		return errors.New("at least one table mapping is required")
	}
	for _, tbl := range setting.Tables {
		if !tbl.DocumentType.IsValid() {
			return fmt.Errorf("invalid document type %q", tbl.DocumentType)
		}
		if tbl.Table == "" || tbl.KeyColumn == "" {
			return errors.New("table and key_column are required for every mapping")
		}
	}
	return nil
}

// RunSync pulls every configured table once and upserts the rows as draft
// documents keyed by source reference.
func (s *SyncServiceImpl) RunSync(ctx context.Context, settingID string) (*SyncLog, error) {
	setting, err := s.Settings.Get(ctx, settingID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errors.New("sync setting not found")
	}

	log := &SyncLog{
		SyncSettingID: setting.ID,
		StartTime:     time.Now(),
		Status:        "in_progress",
	}
	if err := s.Logs.Create(ctx, log); err != nil {
		return nil, err
	}

	processed, runErr := s.pull(ctx, setting)

	log.EndTime = time.Now()
	log.ProcessedCount = processed
	if runErr != nil {
		log.Status = "failed"
		log.Error = runErr.Error()
		s.Logger.Error("sync run failed",
			zap.String("setting", setting.Name),
			zap.Int("processed", processed),
			zap.Error(runErr))
	} else {
		log.Status = "success"
		s.Logger.Info("sync run finished",
			zap.String("setting", setting.Name),
			zap.Int("processed", processed))
	}
	if err := s.Logs.Update(ctx, log); err != nil {
		s.Logger.Error("failed to update sync log", zap.Error(err))
	}

	if runErr == nil {
		if err := s.Settings.Update(ctx, settingID, map[string]interface{}{"last_sync_at": log.EndTime}); err != nil {
			s.Logger.Error("failed to record last sync time", zap.Error(err))
		}
	}

	return log, runErr
}

// RunAllActive runs every active setting; used by the scheduler. Failures of
// one setting never stop the others.
func (s *SyncServiceImpl) RunAllActive(ctx context.Context) {
	settings, err := s.Settings.ListActive(ctx)
	if err != nil {
		s.Logger.Error("failed to list active sync settings", zap.Error(err))
		return
	}
	for _, setting := range settings {
		if _, err := s.RunSync(ctx, setting.ID.Hex()); err != nil {
			s.Logger.Error("scheduled sync failed",
				zap.String("setting", setting.Name),
				zap.Error(err))
		}
	}
}

func (s *SyncServiceImpl) pull(ctx context.Context, setting *SyncSetting) (int, error) {
	conn := s.newConnector(setting.SourceDBType)
	if err := conn.Connect(ctx, setting.SourceDBConfig); err != nil {
		return 0, err
	}
	defer conn.Disconnect(ctx)

	processed := 0
	for _, tbl := range setting.Tables {
		resp, err := conn.Query(ctx, connectors.QueryRequest{
			Table: tbl.Table,
			Limit: batchSize,
		})
		if err != nil {
			return processed, fmt.Errorf("query %s: %w", tbl.Table, err)
		}

		for _, row := range resp.Data {
			if err := s.upsertRow(ctx, tbl, row); err != nil {
				return processed, fmt.Errorf("upsert from %s: %w", tbl.Table, err)
			}
			processed++
		}
	}
	return processed, nil
}

func (s *SyncServiceImpl) upsertRow(ctx context.Context, tbl TableSyncConfig, row map[string]interface{}) error {
	sourceRef := asString(row[tbl.KeyColumn])
	if sourceRef == "" {
		return fmt.Errorf("row missing key column %q", tbl.KeyColumn)
	}

	fields := map[string]interface{}{}
	for column, field := range tbl.Mapping {
		fields[field] = row[column]
	}

	switch tbl.DocumentType {
	case common_models.DocumentTypeQuotation:
		return s.Quotations.UpsertBySourceRef(ctx, quotation.Quotation{
			SourceRef:    sourceRef,
			Number:       asString(fields["number"]),
			CustomerName: asString(fields["customer_name"]),
			TotalAmount:  asFloat(fields["total_amount"]),
			Currency:     asString(fields["currency"]),
			Status:       common_models.DocumentStatusDraft,
		})
	case common_models.DocumentTypePurchaseOrder:
		return s.Orders.UpsertBySourceRef(ctx, purchaseorder.PurchaseOrder{
			SourceRef:    sourceRef,
			Number:       asString(fields["number"]),
			SupplierName: asString(fields["supplier_name"]),
			TotalAmount:  asFloat(fields["total_amount"]),
			Currency:     asString(fields["currency"]),
			Status:       common_models.DocumentStatusDraft,
		})
	default:
		return fmt.Errorf("unsupported document type %q", tbl.DocumentType)
	}
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case []byte:
		f, _ := strconv.ParseFloat(string(t), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}
