package quotation

import (
	"go-erp/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type QuotationController struct {
	Service QuotationService
}

func NewQuotationController(service QuotationService) *QuotationController {
	return &QuotationController{Service: service}
}

func actorFromCtx(ctx *fiber.Ctx) string {
	if claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		return claims.UserID
	}
	return ""
}

// CreateQuotation godoc
// @Summary Create a quotation draft
// @Tags quotations
// @Accept json
// @Produce json
// @Param quotation body Quotation true "Quotation"
// @Success 201 {object} map[string]string
// @Router /api/quotations [post]
func (c *QuotationController) CreateQuotation(ctx *fiber.Ctx) error {
	var input Quotation
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input.CreatedBy = actorFromCtx(ctx)

	id, err := c.Service.CreateQuotation(ctx.UserContext(), input)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id.Hex()})
}

// GetQuotation godoc
// @Summary Get a quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} Quotation
// @Failure 404 {object} map[string]string
// @Router /api/quotations/{id} [get]
func (c *QuotationController) GetQuotation(ctx *fiber.Ctx) error {
	q, err := c.Service.GetQuotation(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if q == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quotation not found"})
	}
	return ctx.JSON(q)
}

// ListQuotations godoc
// @Summary List quotations
// @Tags quotations
// @Produce json
// @Success 200 {array} Quotation
// @Router /api/quotations [get]
func (c *QuotationController) ListQuotations(ctx *fiber.Ctx) error {
	quotations, err := c.Service.ListQuotations(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(quotations)
}

// UpdateQuotation godoc
// @Summary Update a quotation draft
// @Tags quotations
// @Accept json
// @Param id path string true "Quotation ID"
// @Param quotation body Quotation true "Quotation"
// @Success 200 {object} map[string]string
// @Router /api/quotations/{id} [put]
func (c *QuotationController) UpdateQuotation(ctx *fiber.Ctx) error {
	var input Quotation
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.Service.UpdateQuotation(ctx.UserContext(), ctx.Params("id"), input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Quotation updated successfully"})
}

// DeleteQuotation godoc
// @Summary Delete a quotation
// @Tags quotations
// @Param id path string true "Quotation ID"
// @Success 204
// @Router /api/quotations/{id} [delete]
func (c *QuotationController) DeleteQuotation(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteQuotation(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SubmitQuotation godoc
// @Summary Submit a quotation for approval
// @Description Starts an approval run against the active QUOTATION chain
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} map[string]string
// @Router /api/quotations/{id}/submit [post]
func (c *QuotationController) SubmitQuotation(ctx *fiber.Ctx) error {
	requestID, err := c.Service.Submit(ctx.UserContext(), ctx.Params("id"), actorFromCtx(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"request_id": requestID.Hex()})
}
