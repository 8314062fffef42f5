package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-erp/internal/features/approval"
	"go-erp/internal/features/history"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var historyColumns = []string{"request_id", "level_order", "action", "actor", "comment", "timestamp"}

type ReportService interface {
	PendingSummary(ctx context.Context) ([]approval.PendingCount, error)
	ExportHistory(ctx context.Context, from, to time.Time, format string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	Requests approval.RequestRepository
	History  history.HistoryRepository
	Logger   *zap.Logger
}

func NewReportService(requests approval.RequestRepository, historyRepo history.HistoryRepository, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		Requests: requests,
		History:  historyRepo,
		Logger:   logger,
	}
}

// PendingSummary counts pending approval runs grouped by document type and
// current level.
func (s *ReportServiceImpl) PendingSummary(ctx context.Context) ([]approval.PendingCount, error) {
	return s.Requests.PendingSummary(ctx)
}

// ExportHistory renders the audit trail within [from, to] as an xlsx or csv
// attachment.
func (s *ReportServiceImpl) ExportHistory(ctx context.Context, from, to time.Time, format string) ([]byte, string, error) {
	if !to.After(from) {
		return nil, "", errors.New("invalid time range")
	}

	entries, err := s.History.ListByTimeRange(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("approval_history_%s_%s", from.Format("20060102"), to.Format("20060102"))

	switch strings.ToLower(format) {
	case "", "xlsx":
		data, err := s.exportExcel(entries)
		return data, filename + ".xlsx", err
	case "csv":
		data, err := s.exportCSV(entries)
		return data, filename + ".csv", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *ReportServiceImpl) exportExcel(entries []history.HistoryEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range historyColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, entry := range entries {
		for colIdx, value := range historyRow(entry) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range historyColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (s *ReportServiceImpl) exportCSV(entries []history.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(historyColumns); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := w.Write(historyRow(entry)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func historyRow(entry history.HistoryEntry) []string {
	levelOrder := ""
	if entry.LevelOrder != nil {
		levelOrder = strconv.Itoa(*entry.LevelOrder)
	}
	return []string{
		entry.RequestID.Hex(),
		levelOrder,
		string(entry.Action),
		entry.Actor,
		entry.Comment,
		entry.Timestamp.Format("2006-01-02 15:04:05"),
	}
}
