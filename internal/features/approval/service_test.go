package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	common_models "go-erp/internal/common/models"
	"go-erp/internal/features/chaintemplate"
	"go-erp/internal/features/comment"
	"go-erp/internal/features/history"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeTemplateProvider struct {
	template *chaintemplate.ChainTemplate
}

func (f *fakeTemplateProvider) GetActiveTemplate(_ context.Context, docType common_models.DocumentType) (*chaintemplate.ChainTemplate, error) {
	if f.template == nil || f.template.DocumentType != docType {
		return nil, nil
	}
	return f.template, nil
}

type fakeRequestRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*ApprovalRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[primitive.ObjectID]*ApprovalRequest)}
}

func cloneRequest(req *ApprovalRequest) *ApprovalRequest {
	c := *req
	c.Levels = make([]LevelDecision, len(req.Levels))
	copy(c.Levels, req.Levels)
	return &c
}

func (r *fakeRequestRepo) Insert(_ context.Context, req *ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.DocumentType == req.DocumentType &&
			existing.DocumentID == req.DocumentID &&
			existing.Status == common_models.ApprovalStatusPending {
			return ErrAlreadyExists
		}
	}
	r.byID[req.ID] = cloneRequest(req)
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRequest(req), nil
}

func (r *fakeRequestRepo) GetByDocument(_ context.Context, docType common_models.DocumentType, docID string) (*ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *ApprovalRequest
	for _, req := range r.byID {
		if req.DocumentType != docType || req.DocumentID != docID {
			continue
		}
		if latest == nil || req.SubmittedAt.After(latest.SubmittedAt) {
			latest = req
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return cloneRequest(latest), nil
}

func (r *fakeRequestRepo) ReplaceWithVersion(_ context.Context, req *ApprovalRequest, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[req.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrConflict
	}
	r.byID[req.ID] = cloneRequest(req)
	return nil
}

func (r *fakeRequestRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ApprovalRequest
	for _, req := range r.byID {
		if req.Status == common_models.ApprovalStatusPending && req.SubmittedAt.Before(cutoff) {
			out = append(out, *cloneRequest(req))
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) PendingSummary(_ context.Context) ([]PendingCount, error) {
	return nil, nil
}

func (r *fakeRequestRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeHistoryService struct {
	mu      sync.Mutex
	entries []history.HistoryEntry
}

func (f *fakeHistoryService) Append(_ context.Context, requestID primitive.ObjectID, levelOrder *int, action common_models.HistoryAction, actor, comment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, history.HistoryEntry{
		ID:         primitive.NewObjectID(),
		RequestID:  requestID,
		LevelOrder: levelOrder,
		Action:     action,
		Actor:      actor,
		Comment:    comment,
		Timestamp:  time.Now(),
	})
	return nil
}

func (f *fakeHistoryService) ListByRequest(_ context.Context, requestID primitive.ObjectID) ([]history.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []history.HistoryEntry
	for _, e := range f.entries {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCommentService struct {
	mu       sync.Mutex
	comments []comment.Comment
}

func (f *fakeCommentService) Add(_ context.Context, requestID primitive.ObjectID, commenter, text string, isRejectionReason bool) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := comment.Comment{
		ID:                primitive.NewObjectID(),
		RequestID:         requestID,
		Commenter:         commenter,
		Text:              text,
		IsRejectionReason: isRejectionReason,
		CreatedAt:         time.Now(),
	}
	f.comments = append(f.comments, c)
	return c.ID, nil
}

func (f *fakeCommentService) ListByRequest(_ context.Context, requestID primitive.ObjectID) ([]comment.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []comment.Comment
	for _, c := range f.comments {
		if c.RequestID == requestID {
			out = append(out, c)
		}
	}
	return out, nil
}

type finalizerCall struct {
	DocumentID string
	Status     common_models.ApprovalStatus
}

type fakeFinalizer struct {
	docType common_models.DocumentType
	mu      sync.Mutex
	calls   []finalizerCall
}

func (f *fakeFinalizer) DocumentType() common_models.DocumentType { return f.docType }

func (f *fakeFinalizer) OnApprovalFinished(_ context.Context, documentID string, status common_models.ApprovalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, finalizerCall{DocumentID: documentID, Status: status})
	return nil
}

type fakeAutomationHook struct {
	mu       sync.Mutex
	triggers []common_models.AutomationTrigger
}

func (f *fakeAutomationHook) OnApprovalFinished(_ context.Context, trigger common_models.AutomationTrigger, _ common_models.DocumentType, _ map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
}

// ---- fixtures ----

const (
	alice = "alice-id"
	bob   = "bob-id"
)

func twoLevelTemplate() *chaintemplate.ChainTemplate {
	return &chaintemplate.ChainTemplate{
		ID:           primitive.NewObjectID(),
		DocumentType: common_models.DocumentTypeQuotation,
		Name:         "Quotation chain",
		Active:       true,
		Levels: []chaintemplate.ChainLevel{
			{Order: 1, DisplayName: "Team Lead", Approver: alice, IsRequired: true},
			{Order: 2, DisplayName: "CEO", Approver: bob, IsRequired: true},
		},
	}
}

type testEnv struct {
	service   *ApprovalServiceImpl
	repo      *fakeRequestRepo
	templates *fakeTemplateProvider
	history   *fakeHistoryService
	comments  *fakeCommentService
	finalizer *fakeFinalizer
	hook      *fakeAutomationHook
}

func newTestEnv(template *chaintemplate.ChainTemplate) *testEnv {
	env := &testEnv{
		repo:      newFakeRequestRepo(),
		templates: &fakeTemplateProvider{template: template},
		history:   &fakeHistoryService{},
		comments:  &fakeCommentService{},
		finalizer: &fakeFinalizer{docType: common_models.DocumentTypeQuotation},
		hook:      &fakeAutomationHook{},
	}
	env.service = &ApprovalServiceImpl{
		Repo:       env.repo,
		Templates:  env.templates,
		History:    env.history,
		Comments:   env.comments,
		Automation: env.hook,
		Finalizers: []Finalizer{env.finalizer},
		Logger:     zap.NewNop(),
	}
	return env
}

// assertLevelInvariant checks that every level below the current one is
// decided and every level at or above it is still pending.
func assertLevelInvariant(t *testing.T, req *ApprovalRequest) {
	t.Helper()
	boundary := req.CurrentLevel
	if req.IsTerminal() {
		// The chain ends at the current level, which is decided.
		boundary = req.CurrentLevel + 1
	}
	for _, lvl := range req.Levels {
		if lvl.Order < boundary && lvl.Decision == common_models.ApprovalStatusPending {
			t.Errorf("level %d below current level %d is still PENDING", lvl.Order, req.CurrentLevel)
		}
		if lvl.Order >= boundary && lvl.Decision != common_models.ApprovalStatusPending {
			t.Errorf("level %d at/above current level %d is %s, want PENDING", lvl.Order, req.CurrentLevel, lvl.Decision)
		}
	}
}

// ---- tests ----

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending run snapshotting the template", func(t *testing.T) {
		env := newTestEnv(twoLevelTemplate())

		id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1001", "submitter")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		req, err := env.repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if req.CurrentLevel != 1 || req.TotalLevels != 2 {
			t.Errorf("got currentLevel=%d totalLevels=%d, want 1 and 2", req.CurrentLevel, req.TotalLevels)
		}
		if req.Status != common_models.ApprovalStatusPending {
			t.Errorf("got status %s, want PENDING", req.Status)
		}
		if req.Version != 1 {
			t.Errorf("got version %d, want 1", req.Version)
		}
		if req.Levels[0].ExpectedApprover != alice || req.Levels[1].ExpectedApprover != bob {
			t.Errorf("level approvers not snapshotted: %+v", req.Levels)
		}
		assertLevelInvariant(t, req)

		entries, _ := env.history.ListByRequest(ctx, id)
		if len(entries) != 1 || entries[0].Action != common_models.HistoryActionSubmitted {
			t.Errorf("expected one SUBMITTED history entry, got %+v", entries)
		}
	})

	t.Run("zero-level template fails with InvalidConfiguration", func(t *testing.T) {
		template := twoLevelTemplate()
		template.Levels = nil
		env := newTestEnv(template)

		_, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1002", "submitter")
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("Start() error = %v, want ErrInvalidConfiguration", err)
		}
		if len(env.repo.byID) != 0 {
			t.Error("no request should be created for a zero-level chain")
		}
	})

	t.Run("missing template fails with InvalidConfiguration", func(t *testing.T) {
		env := newTestEnv(nil)

		_, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1003", "submitter")
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("Start() error = %v, want ErrInvalidConfiguration", err)
		}
	})

	t.Run("duplicate active run fails with AlreadyExists", func(t *testing.T) {
		env := newTestEnv(twoLevelTemplate())

		if _, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1004", "submitter"); err != nil {
			t.Fatalf("first Start() error = %v", err)
		}
		_, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1004", "submitter")
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("second Start() error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("template edits are inert on in-flight runs", func(t *testing.T) {
		template := twoLevelTemplate()
		env := newTestEnv(template)

		id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-1005", "submitter")
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		// Mutate the template after the run started.
		template.Levels[0].Approver = "someone-else"
		template.Levels = append(template.Levels, chaintemplate.ChainLevel{Order: 3, DisplayName: "CFO", Approver: "cfo-id"})

		req, _ := env.repo.GetByID(ctx, id)
		if req.TotalLevels != 2 {
			t.Errorf("totalLevels changed to %d after template edit", req.TotalLevels)
		}
		if req.Levels[0].ExpectedApprover != alice {
			t.Errorf("level 1 approver changed to %s after template edit", req.Levels[0].ExpectedApprover)
		}
	})
}

func TestDecide_FullApprovalFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(twoLevelTemplate())

	id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-2001", "submitter")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Alice approves level 1.
	req, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "looks good", 1)
	if err != nil {
		t.Fatalf("Decide(level 1) error = %v", err)
	}
	if req.CurrentLevel != 2 {
		t.Errorf("got currentLevel %d, want 2", req.CurrentLevel)
	}
	if req.Status != common_models.ApprovalStatusPending {
		t.Errorf("got status %s, want PENDING", req.Status)
	}
	if req.Version != 2 {
		t.Errorf("got version %d, want 2", req.Version)
	}
	assertLevelInvariant(t, req)

	// Bob approves the final level.
	req, err = env.service.Decide(ctx, id.Hex(), 2, bob, common_models.ApprovalStatusApproved, "", 2)
	if err != nil {
		t.Fatalf("Decide(level 2) error = %v", err)
	}
	if req.Status != common_models.ApprovalStatusApproved {
		t.Errorf("got status %s, want APPROVED", req.Status)
	}
	if req.CompletedAt == nil {
		t.Error("completedAt not set on terminal transition")
	}

	// Finalizer and automation fired once, for the approval.
	if len(env.finalizer.calls) != 1 || env.finalizer.calls[0].Status != common_models.ApprovalStatusApproved {
		t.Errorf("finalizer calls = %+v, want one APPROVED call", env.finalizer.calls)
	}
	if len(env.hook.triggers) != 1 || env.hook.triggers[0] != common_models.TriggerApprovalApproved {
		t.Errorf("automation triggers = %v, want [approval_approved]", env.hook.triggers)
	}

	// Audit trail: SUBMITTED, APPROVED, APPROVED.
	entries, _ := env.history.ListByRequest(ctx, id)
	wantActions := []common_models.HistoryAction{
		common_models.HistoryActionSubmitted,
		common_models.HistoryActionApproved,
		common_models.HistoryActionApproved,
	}
	if len(entries) != len(wantActions) {
		t.Fatalf("got %d history entries, want %d", len(entries), len(wantActions))
	}
	for i, want := range wantActions {
		if entries[i].Action != want {
			t.Errorf("history[%d].Action = %s, want %s", i, entries[i].Action, want)
		}
	}
}

func TestDecide_Rejection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(twoLevelTemplate())

	id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-3001", "submitter")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	t.Run("without a comment fails MissingReason", func(t *testing.T) {
		_, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusRejected, "   ", 1)
		if !errors.Is(err, ErrMissingReason) {
			t.Fatalf("Decide() error = %v, want ErrMissingReason", err)
		}
	})

	t.Run("with a comment terminates the chain", func(t *testing.T) {
		req, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusRejected, "pricing is off", 1)
		if err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
		if req.Status != common_models.ApprovalStatusRejected {
			t.Errorf("got status %s, want REJECTED", req.Status)
		}
		if req.CompletedAt == nil {
			t.Error("completedAt not set on rejection")
		}
		if req.Levels[1].Decision != common_models.ApprovalStatusPending {
			t.Errorf("level 2 = %s, want PENDING forever after rejection", req.Levels[1].Decision)
		}

		comments, _ := env.comments.ListByRequest(ctx, id)
		if len(comments) != 1 || !comments[0].IsRejectionReason || comments[0].Text != "pricing is off" {
			t.Errorf("rejection reason comment not recorded: %+v", comments)
		}
		if len(env.finalizer.calls) != 1 || env.finalizer.calls[0].Status != common_models.ApprovalStatusRejected {
			t.Errorf("finalizer calls = %+v, want one REJECTED call", env.finalizer.calls)
		}
	})

	t.Run("later levels can never be decided", func(t *testing.T) {
		_, err := env.service.Decide(ctx, id.Hex(), 2, bob, common_models.ApprovalStatusApproved, "", 2)
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Decide() after rejection error = %v, want ErrInvalidState", err)
		}
	})
}

func TestDecide_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		levelOrder      int
		actor           string
		decision        common_models.ApprovalStatus
		comment         string
		expectedVersion int64
		wantErr         error
	}{
		{
			name:            "deciding a later level early fails WrongLevel",
			levelOrder:      2,
			actor:           bob,
			decision:        common_models.ApprovalStatusApproved,
			expectedVersion: 1,
			wantErr:         ErrWrongLevel,
		},
		{
			name:            "wrong actor for the level fails WrongApprover",
			levelOrder:      1,
			actor:           bob,
			decision:        common_models.ApprovalStatusApproved,
			expectedVersion: 1,
			wantErr:         ErrWrongApprover,
		},
		{
			name:            "stale version fails Conflict",
			levelOrder:      1,
			actor:           alice,
			decision:        common_models.ApprovalStatusApproved,
			expectedVersion: 99,
			wantErr:         ErrConflict,
		},
		{
			name:            "rejection without reason fails MissingReason",
			levelOrder:      1,
			actor:           alice,
			decision:        common_models.ApprovalStatusRejected,
			expectedVersion: 1,
			wantErr:         ErrMissingReason,
		},
		{
			name:            "out-of-range level fails WrongLevel",
			levelOrder:      0,
			actor:           alice,
			decision:        common_models.ApprovalStatusApproved,
			expectedVersion: 1,
			wantErr:         ErrWrongLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(twoLevelTemplate())
			id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-4001", "submitter")
			if err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			_, err = env.service.Decide(ctx, id.Hex(), tt.levelOrder, tt.actor, tt.decision, tt.comment, tt.expectedVersion)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decide() error = %v, want %v", err, tt.wantErr)
			}

			// Failed decisions leave the aggregate untouched.
			req, _ := env.repo.GetByID(ctx, id)
			if req.Version != 1 || req.CurrentLevel != 1 || req.Status != common_models.ApprovalStatusPending {
				t.Errorf("aggregate mutated by failed decision: %+v", req)
			}
		})
	}

	t.Run("unknown request fails NotFound", func(t *testing.T) {
		env := newTestEnv(twoLevelTemplate())
		_, err := env.service.Decide(ctx, primitive.NewObjectID().Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 1)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Decide() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("re-submitting an already applied decision is not idempotent", func(t *testing.T) {
		env := newTestEnv(twoLevelTemplate())
		id, _ := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-4002", "submitter")

		if _, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 1); err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
		// Identical retry with the fresh version: state advanced past level 1.
		_, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 2)
		if !errors.Is(err, ErrWrongLevel) {
			t.Fatalf("retried Decide() error = %v, want ErrWrongLevel", err)
		}
	})

	t.Run("terminal request rejects further decisions", func(t *testing.T) {
		template := twoLevelTemplate()
		template.Levels = template.Levels[:1]
		env := newTestEnv(template)
		id, _ := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-4003", "submitter")

		if _, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 1); err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
		_, err := env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 2)
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Decide() on terminal request error = %v, want ErrInvalidState", err)
		}
	})
}

func TestDecide_ConcurrentStaleWrite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(twoLevelTemplate())

	id, err := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-5001", "submitter")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Two decisions race against version 1: a double-submitted approval.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.service.Decide(ctx, id.Hex(), 1, alice, common_models.ApprovalStatusApproved, "", 1)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 and 1", succeeded, conflicted)
	}

	// The winner's effect is exactly as if it ran alone: no skipped level.
	req, _ := env.repo.GetByID(ctx, id)
	if req.CurrentLevel != 2 || req.Version != 2 || req.Status != common_models.ApprovalStatusPending {
		t.Errorf("aggregate after race: level=%d version=%d status=%s, want 2/2/PENDING", req.CurrentLevel, req.Version, req.Status)
	}
	assertLevelInvariant(t, req)
}

func TestStart_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(twoLevelTemplate())

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-6001", "submitter")
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyExists):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != 1 {
		t.Fatalf("got %d successes and %d AlreadyExists, want exactly 1 and 1", succeeded, rejected)
	}
}

func TestGetRequestByDocument(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(twoLevelTemplate())

	_, err := env.service.GetRequestByDocument(ctx, common_models.DocumentTypeQuotation, "Q-7001")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRequestByDocument() error = %v, want ErrNotFound", err)
	}

	id, _ := env.service.Start(ctx, common_models.DocumentTypeQuotation, "Q-7001", "submitter")
	req, err := env.service.GetRequestByDocument(ctx, common_models.DocumentTypeQuotation, "Q-7001")
	if err != nil {
		t.Fatalf("GetRequestByDocument() error = %v", err)
	}
	if req.ID != id {
		t.Errorf("got request %s, want %s", req.ID.Hex(), id.Hex())
	}
}
