package report

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{Service: service}
}

// PendingSummary godoc
// @Summary Count pending approvals by document type and level
// @Tags reports
// @Produce json
// @Success 200 {array} approval.PendingCount
// @Router /api/reports/approvals/summary [get]
func (c *ReportController) PendingSummary(ctx *fiber.Ctx) error {
	summary, err := c.Service.PendingSummary(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(summary)
}

// ExportHistory godoc
// @Summary Export the approval audit trail
// @Tags reports
// @Produce application/octet-stream
// @Param from query string true "Start of range (RFC 3339)"
// @Param to query string true "End of range (RFC 3339)"
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} binary
// @Router /api/reports/approvals/export [get]
func (c *ReportController) ExportHistory(ctx *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, ctx.Query("from"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from parameter, expected RFC 3339"})
	}
	to, err := time.Parse(time.RFC3339, ctx.Query("to"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to parameter, expected RFC 3339"})
	}

	format := ctx.Query("format", "xlsx")
	data, filename, err := c.Service.ExportHistory(ctx.UserContext(), from, to, format)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if format == "csv" {
		ctx.Set("Content-Type", "text/csv")
	} else {
		ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
