package cron_feature

import (
	"context"
	"fmt"
	"time"

	"go-erp/internal/config"
	"go-erp/internal/features/approval"
	sync_feature "go-erp/internal/features/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// staleScanSpec runs the pending-approval age check hourly.
const staleScanSpec = "0 * * * *"

type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

type SchedulerImpl struct {
	requests    approval.RequestRepository
	syncService sync_feature.SyncService
	config      *config.Config
	logger      *zap.Logger

	cron *cron.Cron
}

func NewScheduler(
	requests approval.RequestRepository,
	syncService sync_feature.SyncService,
	cfg *config.Config,
	logger *zap.Logger,
) Scheduler {
	return &SchedulerImpl{
		requests:    requests,
		syncService: syncService,
		config:      cfg,
		logger:      logger,
	}
}

// Start registers the stale-approval scan plus one entry per scheduled sync
// setting, then starts the ticker.
func (s *SchedulerImpl) Start(ctx context.Context) error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(staleScanSpec, s.scanStalePending); err != nil {
		return fmt.Errorf("failed to register stale approval scan: %w", err)
	}

	settings, err := s.syncService.ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync settings: %w", err)
	}
	for _, setting := range settings {
		if !setting.IsActive || setting.Schedule == "" {
			continue
		}
		settingID := setting.ID.Hex()
		name := setting.Name
		_, err := s.cron.AddFunc(setting.Schedule, func() {
			if _, err := s.syncService.RunSync(context.Background(), settingID); err != nil {
				s.logger.Error("scheduled sync failed",
					zap.String("setting", name),
					zap.Error(err))
			}
		})
		if err != nil {
			s.logger.Error("failed to register sync schedule",
				zap.String("setting", name),
				zap.String("spec", setting.Schedule),
				zap.Error(err))
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("entries", len(s.cron.Entries())))
	return nil
}

func (s *SchedulerImpl) Stop() error {
	if s.cron != nil {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
	}
	return nil
}

// scanStalePending logs every run that has sat pending longer than the
// configured age. Nothing is auto-decided; the log is for operators.
func (s *SchedulerImpl) scanStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(s.config.StaleApprovalAge) * time.Hour)
	stale, err := s.requests.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("stale approval scan failed", zap.Error(err))
		return
	}

	for _, req := range stale {
		level := ""
		if decision := req.Level(req.CurrentLevel); decision != nil {
			level = decision.ExpectedApprover
		}
		s.logger.Warn("approval request pending past threshold",
			zap.String("request_id", req.ID.Hex()),
			zap.String("document_type", string(req.DocumentType)),
			zap.String("document_id", req.DocumentID),
			zap.Int("current_level", req.CurrentLevel),
			zap.String("waiting_on", level),
			zap.Time("submitted_at", req.SubmittedAt))
	}
}
