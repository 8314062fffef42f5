package chaintemplate

import (
	"context"
	"testing"

	common_models "go-erp/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateLevels(t *testing.T) {
	tests := []struct {
		name    string
		levels  []ChainLevel
		wantErr bool
	}{
		{
			name: "contiguous from 1",
			levels: []ChainLevel{
				{Order: 1, Approver: "a"},
				{Order: 2, Approver: "b"},
				{Order: 3, Approver: "c"},
			},
		},
		{
			name: "unsorted but contiguous",
			levels: []ChainLevel{
				{Order: 2, Approver: "b"},
				{Order: 1, Approver: "a"},
			},
		},
		{
			name:   "empty chain is storable",
			levels: nil,
		},
		{
			name: "gap in orders",
			levels: []ChainLevel{
				{Order: 1, Approver: "a"},
				{Order: 3, Approver: "c"},
			},
			wantErr: true,
		},
		{
			name: "duplicate order",
			levels: []ChainLevel{
				{Order: 1, Approver: "a"},
				{Order: 1, Approver: "b"},
			},
			wantErr: true,
		},
		{
			name: "zero-based order",
			levels: []ChainLevel{
				{Order: 0, Approver: "a"},
				{Order: 1, Approver: "b"},
			},
			wantErr: true,
		},
		{
			name: "missing approver",
			levels: []ChainLevel{
				{Order: 1, Approver: ""},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLevels(tt.levels)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLevels() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fakeTemplateRepo struct {
	templates map[primitive.ObjectID]ChainTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, t ChainTemplate) error {
	r.templates[t.ID] = t
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*ChainTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	if t, ok := r.templates[oid]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *fakeTemplateRepo) GetActiveByDocumentType(_ context.Context, docType common_models.DocumentType) (*ChainTemplate, error) {
	for _, t := range r.templates {
		if t.DocumentType == docType && t.Active {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) ListActiveByDocumentType(_ context.Context, docType common_models.DocumentType) ([]ChainTemplate, error) {
	var out []ChainTemplate
	for _, t := range r.templates {
		if t.DocumentType == docType && t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]ChainTemplate, error) { return nil, nil }

func (r *fakeTemplateRepo) Update(_ context.Context, id string, t ChainTemplate) error {
	oid, _ := primitive.ObjectIDFromHex(id)
	r.templates[oid] = t
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	oid, _ := primitive.ObjectIDFromHex(id)
	delete(r.templates, oid)
	return nil
}

func TestSingleActiveTemplatePerType(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTemplateRepo{templates: make(map[primitive.ObjectID]ChainTemplate)}
	service := &TemplateServiceImpl{Repo: repo}

	first := ChainTemplate{
		DocumentType: common_models.DocumentTypeQuotation,
		Name:         "v1",
		Active:       true,
		Levels:       []ChainLevel{{Order: 1, DisplayName: "Team Lead", Approver: "a"}},
	}
	if err := service.CreateTemplate(ctx, first); err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	second := first
	second.Name = "v2"
	if err := service.CreateTemplate(ctx, second); err == nil {
		t.Fatal("expected error creating second active template for same type")
	}

	// An inactive duplicate is fine.
	second.Active = false
	if err := service.CreateTemplate(ctx, second); err != nil {
		t.Fatalf("CreateTemplate(inactive) error = %v", err)
	}

	// Another document type can have its own active chain.
	third := first
	third.DocumentType = common_models.DocumentTypePurchaseOrder
	if err := service.CreateTemplate(ctx, third); err != nil {
		t.Fatalf("CreateTemplate(other type) error = %v", err)
	}
}

func TestGetActiveTemplateSortsLevels(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTemplateRepo{templates: make(map[primitive.ObjectID]ChainTemplate)}
	service := &TemplateServiceImpl{Repo: repo}

	template := ChainTemplate{
		ID:           primitive.NewObjectID(),
		DocumentType: common_models.DocumentTypeQuotation,
		Active:       true,
		Levels: []ChainLevel{
			{Order: 2, DisplayName: "CEO", Approver: "b"},
			{Order: 1, DisplayName: "Team Lead", Approver: "a"},
		},
	}
	repo.templates[template.ID] = template

	got, err := service.GetActiveTemplate(ctx, common_models.DocumentTypeQuotation)
	if err != nil {
		t.Fatalf("GetActiveTemplate() error = %v", err)
	}
	for i, lvl := range got.Levels {
		if lvl.Order != i+1 {
			t.Errorf("levels not sorted: index %d has order %d", i, lvl.Order)
		}
	}
}
