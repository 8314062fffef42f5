package automation

import (
	"strings"
	"testing"

	common_models "go-erp/internal/common/models"
)

func TestRunScript(t *testing.T) {
	payload := map[string]interface{}{
		"request_id":    "abc123",
		"document_type": "QUOTATION",
		"document_id":   "q-42",
		"status":        "APPROVED",
		"total_levels":  2,
		"submitted_by":  "alice",
		"decided_by":    "bob",
	}

	t.Run("script sees payload and trigger", func(t *testing.T) {
		// A false condition divides by zero, failing the run.
		script := `
			ok := doc.status == "APPROVED" && trigger == "approval_approved" && doc.total_levels == 2
			x := 1 / (ok ? 1 : 0)
		`
		if err := RunScript(script, common_models.TriggerApprovalApproved, payload); err != nil {
			t.Fatalf("RunScript() error = %v", err)
		}
	})

	t.Run("compile error is reported", func(t *testing.T) {
		err := RunScript(`if doc.status {`, common_models.TriggerApprovalApproved, payload)
		if err == nil {
			t.Fatal("RunScript() expected compile error, got nil")
		}
	})

	t.Run("runtime error is reported", func(t *testing.T) {
		err := RunScript("z := 0\nx := 1 / z", common_models.TriggerApprovalRejected, payload)
		if err == nil {
			t.Fatal("RunScript() expected runtime error, got nil")
		}
	})
}

func TestValidateRule(t *testing.T) {
	valid := AutomationRule{
		Name:         "notify on rejection",
		DocumentType: common_models.DocumentTypeQuotation,
		Trigger:      common_models.TriggerApprovalRejected,
		Script:       `x := doc.document_id`,
		Active:       true,
	}

	tests := []struct {
		name    string
		mutate  func(r *AutomationRule)
		wantErr string
	}{
		{"valid rule", func(r *AutomationRule) {}, ""},
		{"missing name", func(r *AutomationRule) { r.Name = "" }, "name"},
		{"bad document type", func(r *AutomationRule) { r.DocumentType = "INVOICE" }, "document type"},
		{"bad trigger", func(r *AutomationRule) { r.Trigger = "approval_started" }, "trigger"},
		{"empty script", func(r *AutomationRule) { r.Script = "" }, "script"},
		{"broken script", func(r *AutomationRule) { r.Script = "if {" }, "compile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := valid
			tt.mutate(&rule)
			err := validateRule(&rule)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateRule() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("validateRule() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
