package chaintemplate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, template ChainTemplate) error
	UpdateTemplate(ctx context.Context, id string, template ChainTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	GetTemplateByID(ctx context.Context, id string) (*ChainTemplate, error)
	ListTemplates(ctx context.Context) ([]ChainTemplate, error)

	// GetActiveTemplate returns the active chain for a document type, with
	// levels sorted by order. Returns nil when none is configured.
	GetActiveTemplate(ctx context.Context, docType common_models.DocumentType) (*ChainTemplate, error)
}

type TemplateServiceImpl struct {
	Repo TemplateRepository
}

func NewTemplateService(repo TemplateRepository) TemplateService {
	return &TemplateServiceImpl{Repo: repo}
}

func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, template ChainTemplate) error {
	if err := validateLevels(template.Levels); err != nil {
		return err
	}
	if err := s.validateSingleActive(ctx, template); err != nil {
		return err
	}

	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()

	return s.Repo.Create(ctx, template)
}

func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, id string, template ChainTemplate) error {
	if err := validateLevels(template.Levels); err != nil {
		return err
	}
	template.ID, _ = primitive.ObjectIDFromHex(id)
	if err := s.validateSingleActive(ctx, template); err != nil {
		return err
	}

	template.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, id, template)
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *TemplateServiceImpl) GetTemplateByID(ctx context.Context, id string) (*ChainTemplate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]ChainTemplate, error) {
	return s.Repo.List(ctx)
}

func (s *TemplateServiceImpl) GetActiveTemplate(ctx context.Context, docType common_models.DocumentType) (*ChainTemplate, error) {
	template, err := s.Repo.GetActiveByDocumentType(ctx, docType)
	if err != nil || template == nil {
		return template, err
	}
	sort.Slice(template.Levels, func(i, j int) bool {
		return template.Levels[i].Order < template.Levels[j].Order
	})
	return template, nil
}

// validateSingleActive keeps at most one active template per document type.
func (s *TemplateServiceImpl) validateSingleActive(ctx context.Context, template ChainTemplate) error {
	if !template.Active {
		return nil
	}

	existing, err := s.Repo.ListActiveByDocumentType(ctx, template.DocumentType)
	if err != nil {
		return err
	}
	for _, et := range existing {
		if et.ID != template.ID {
			return errors.New("an active template already exists for this document type")
		}
	}
	return nil
}

// validateLevels enforces the chain shape: orders are 1-based and contiguous
// with no duplicates, and every level names its approver. An empty chain is
// storable; starting an approval against it fails instead.
func validateLevels(levels []ChainLevel) error {
	seen := make(map[int]bool, len(levels))
	for _, lvl := range levels {
		if lvl.Order < 1 || lvl.Order > len(levels) {
			return fmt.Errorf("level order %d is outside 1..%d", lvl.Order, len(levels))
		}
		if seen[lvl.Order] {
			return fmt.Errorf("duplicate level order %d", lvl.Order)
		}
		seen[lvl.Order] = true
		if lvl.Approver == "" {
			return fmt.Errorf("level %d has no approver", lvl.Order)
		}
	}
	return nil
}
