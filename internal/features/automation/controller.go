package automation

import (
	"github.com/gofiber/fiber/v2"
)

type AutomationController struct {
	Service AutomationService
}

func NewAutomationController(service AutomationService) *AutomationController {
	return &AutomationController{Service: service}
}

// CreateRule godoc
// @Summary Create an automation rule
// @Tags automation
// @Accept json
// @Produce json
// @Param rule body AutomationRule true "Rule"
// @Success 201 {object} AutomationRule
// @Router /api/automation/rules [post]
func (c *AutomationController) CreateRule(ctx *fiber.Ctx) error {
	var rule AutomationRule
	if err := ctx.BodyParser(&rule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.Service.CreateRule(ctx.UserContext(), &rule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(rule)
}

// GetRule godoc
// @Summary Get an automation rule
// @Tags automation
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} AutomationRule
// @Router /api/automation/rules/{id} [get]
func (c *AutomationController) GetRule(ctx *fiber.Ctx) error {
	rule, err := c.Service.GetRule(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if rule == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	}
	return ctx.JSON(rule)
}

// ListRules godoc
// @Summary List automation rules
// @Tags automation
// @Produce json
// @Success 200 {array} AutomationRule
// @Router /api/automation/rules [get]
func (c *AutomationController) ListRules(ctx *fiber.Ctx) error {
	rules, err := c.Service.ListRules(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rules)
}

// UpdateRule godoc
// @Summary Update an automation rule
// @Tags automation
// @Accept json
// @Param id path string true "Rule ID"
// @Param rule body AutomationRule true "Rule"
// @Success 200 {object} map[string]string
// @Router /api/automation/rules/{id} [put]
func (c *AutomationController) UpdateRule(ctx *fiber.Ctx) error {
	existing, err := c.Service.GetRule(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if existing == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	}

	var rule AutomationRule
	if err := ctx.BodyParser(&rule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt
	if err := c.Service.UpdateRule(ctx.UserContext(), &rule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Rule updated successfully"})
}

// DeleteRule godoc
// @Summary Delete an automation rule
// @Tags automation
// @Param id path string true "Rule ID"
// @Success 204
// @Router /api/automation/rules/{id} [delete]
func (c *AutomationController) DeleteRule(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteRule(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// EnableRule godoc
// @Summary Enable or disable an automation rule
// @Tags automation
// @Param id path string true "Rule ID"
// @Param active query bool true "Active"
// @Success 200 {object} map[string]string
// @Router /api/automation/rules/{id}/enable [patch]
func (c *AutomationController) EnableRule(ctx *fiber.Ctx) error {
	active := ctx.QueryBool("active", true)
	if err := c.Service.EnableRule(ctx.UserContext(), ctx.Params("id"), active); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Rule updated successfully"})
}

// ListRuns godoc
// @Summary List recent runs of an automation rule
// @Tags automation
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {array} AutomationRun
// @Router /api/automation/rules/{id}/runs [get]
func (c *AutomationController) ListRuns(ctx *fiber.Ctx) error {
	runs, err := c.Service.ListRuns(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(runs)
}
