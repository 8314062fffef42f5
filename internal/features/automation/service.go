package automation

import (
	"context"
	"errors"

	common_models "go-erp/internal/common/models"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

type AutomationService interface {
	CreateRule(ctx context.Context, rule *AutomationRule) error
	GetRule(ctx context.Context, id string) (*AutomationRule, error)
	ListRules(ctx context.Context) ([]AutomationRule, error)
	UpdateRule(ctx context.Context, rule *AutomationRule) error
	DeleteRule(ctx context.Context, id string) error
	EnableRule(ctx context.Context, id string, active bool) error
	ListRuns(ctx context.Context, ruleID string) ([]AutomationRun, error)
	OnApprovalFinished(ctx context.Context, trigger common_models.AutomationTrigger, docType common_models.DocumentType, payload map[string]interface{})
}

type AutomationServiceImpl struct {
	Repo   AutomationRepository
	Logger *zap.Logger
}

func NewAutomationService(repo AutomationRepository, logger *zap.Logger) AutomationService {
	return &AutomationServiceImpl{Repo: repo, Logger: logger}
}

func (s *AutomationServiceImpl) CreateRule(ctx context.Context, rule *AutomationRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	return s.Repo.Create(ctx, rule)
}

func (s *AutomationServiceImpl) GetRule(ctx context.Context, id string) (*AutomationRule, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AutomationServiceImpl) ListRules(ctx context.Context) ([]AutomationRule, error) {
	return s.Repo.List(ctx)
}

func (s *AutomationServiceImpl) UpdateRule(ctx context.Context, rule *AutomationRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	return s.Repo.Update(ctx, rule)
}

func (s *AutomationServiceImpl) DeleteRule(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *AutomationServiceImpl) EnableRule(ctx context.Context, id string, active bool) error {
	return s.Repo.Enable(ctx, id, active)
}

func (s *AutomationServiceImpl) ListRuns(ctx context.Context, ruleID string) ([]AutomationRun, error) {
	return s.Repo.ListRuns(ctx, ruleID)
}

func validateRule(rule *AutomationRule) error {
	if rule.Name == "" {
		return errors.New("rule name is required")
	}
	if !rule.DocumentType.IsValid() {
		return errors.New("invalid document type")
	}
	if rule.Trigger != common_models.TriggerApprovalApproved && rule.Trigger != common_models.TriggerApprovalRejected {
		return errors.New("invalid trigger")
	}
	if rule.Script == "" {
		return errors.New("script content is required")
	}
	// Fail rule creation early on scripts that can never compile.
	script := tengo.NewScript([]byte(rule.Script))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	script.Add("doc", map[string]interface{}{})
	script.Add("trigger", string(rule.Trigger))
	if _, err := script.Compile(); err != nil {
		return errors.New("script does not compile: " + err.Error())
	}
	return nil
}

// OnApprovalFinished runs every active rule registered for the document type
// and trigger. Script failures are recorded and logged but never propagate.
func (s *AutomationServiceImpl) OnApprovalFinished(ctx context.Context, trigger common_models.AutomationTrigger, docType common_models.DocumentType, payload map[string]interface{}) {
	rules, err := s.Repo.ListActive(ctx, docType, trigger)
	if err != nil {
		s.Logger.Error("failed to load automation rules",
			zap.String("document_type", string(docType)),
			zap.String("trigger", string(trigger)),
			zap.Error(err))
		return
	}

	requestID, _ := payload["request_id"].(string)

	for _, rule := range rules {
		runErr := RunScript(rule.Script, trigger, payload)

		run := &AutomationRun{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			RequestID: requestID,
			Success:   runErr == nil,
		}
		if runErr != nil {
			run.Error = runErr.Error()
			s.Logger.Error("automation rule failed",
				zap.String("rule", rule.Name),
				zap.String("request_id", requestID),
				zap.Error(runErr))
		} else {
			s.Logger.Info("automation rule executed",
				zap.String("rule", rule.Name),
				zap.String("request_id", requestID))
		}
		if err := s.Repo.RecordRun(ctx, run); err != nil {
			s.Logger.Error("failed to record automation run",
				zap.String("rule", rule.Name),
				zap.Error(err))
		}
	}
}

// RunScript compiles and runs a rule script with the approval payload bound
// as "doc" and the trigger name as "trigger".
func RunScript(content string, trigger common_models.AutomationTrigger, payload map[string]interface{}) error {
	script := tengo.NewScript([]byte(content))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if err := script.Add("doc", payload); err != nil {
		return err
	}
	if err := script.Add("trigger", string(trigger)); err != nil {
		return err
	}

	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	return compiled.Run()
}
