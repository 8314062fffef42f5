package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"go-erp/internal/features/history"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeHistoryRepo struct {
	entries []history.HistoryEntry
}

func (f *fakeHistoryRepo) Append(ctx context.Context, entry history.HistoryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryRepo) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]history.HistoryEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeHistoryRepo) ListByTimeRange(ctx context.Context, from, to time.Time) ([]history.HistoryEntry, error) {
	var out []history.HistoryEntry
	for _, e := range f.entries {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

func testEntries(t *testing.T) (*fakeHistoryRepo, time.Time) {
	t.Helper()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	level1 := 1
	repo := &fakeHistoryRepo{entries: []history.HistoryEntry{
		{
			ID:        primitive.NewObjectID(),
			RequestID: primitive.NewObjectID(),
			Action:    "SUBMITTED",
			Actor:     "alice",
			Timestamp: base,
		},
		{
			ID:         primitive.NewObjectID(),
			RequestID:  primitive.NewObjectID(),
			LevelOrder: &level1,
			Action:     "REJECTED",
			Actor:      "bob",
			Comment:    "missing cost breakdown",
			Timestamp:  base.Add(time.Hour),
		},
	}}
	return repo, base
}

func TestExportHistory_CSV(t *testing.T) {
	repo, base := testEntries(t)
	svc := NewReportService(nil, repo, zap.NewNop())

	data, filename, err := svc.ExportHistory(context.Background(), base.Add(-time.Hour), base.Add(2*time.Hour), "csv")
	if err != nil {
		t.Fatalf("ExportHistory() error = %v", err)
	}
	if !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q, want .csv suffix", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2 entries", len(records))
	}
	if records[0][0] != "request_id" {
		t.Errorf("header[0] = %q, want request_id", records[0][0])
	}
	if records[2][1] != "1" || records[2][2] != "REJECTED" || records[2][4] != "missing cost breakdown" {
		t.Errorf("rejection row = %v", records[2])
	}
	// SUBMITTED rows carry no level.
	if records[1][1] != "" {
		t.Errorf("submitted row level = %q, want empty", records[1][1])
	}
}

func TestExportHistory_Excel(t *testing.T) {
	repo, base := testEntries(t)
	svc := NewReportService(nil, repo, zap.NewNop())

	data, filename, err := svc.ExportHistory(context.Background(), base.Add(-time.Hour), base.Add(2*time.Hour), "xlsx")
	if err != nil {
		t.Fatalf("ExportHistory() error = %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q, want .xlsx suffix", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("History")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 entries", len(rows))
	}
	if rows[0][3] != "actor" {
		t.Errorf("header[3] = %q, want actor", rows[0][3])
	}
	if rows[2][2] != "REJECTED" {
		t.Errorf("row[2] action = %q, want REJECTED", rows[2][2])
	}
}

func TestExportHistory_Validation(t *testing.T) {
	repo, base := testEntries(t)
	svc := NewReportService(nil, repo, zap.NewNop())

	if _, _, err := svc.ExportHistory(context.Background(), base, base, "csv"); err == nil {
		t.Error("expected error for empty time range")
	}
	if _, _, err := svc.ExportHistory(context.Background(), base, base.Add(time.Hour), "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
