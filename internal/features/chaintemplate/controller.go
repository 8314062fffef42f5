package chaintemplate

import (
	common_models "go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service TemplateService
}

func NewTemplateController(service TemplateService) *TemplateController {
	return &TemplateController{Service: service}
}

// CreateTemplate godoc
// @Summary Create an approval chain template
// @Description Create the ordered approval chain configuration for a document type
// @Tags templates
// @Accept json
// @Produce json
// @Param template body ChainTemplate true "Chain Template"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/templates [post]
func (c *TemplateController) CreateTemplate(ctx *fiber.Ctx) error {
	var input ChainTemplate
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !input.DocumentType.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document type"})
	}

	if err := c.Service.CreateTemplate(ctx.UserContext(), input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Template created successfully"})
}

// UpdateTemplate godoc
// @Summary Update an approval chain template
// @Description Edits apply only to future approval runs, never to in-flight ones
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body ChainTemplate true "Chain Template"
// @Success 200 {object} map[string]string
// @Router /api/templates/{id} [put]
func (c *TemplateController) UpdateTemplate(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var input ChainTemplate
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.UpdateTemplate(ctx.UserContext(), id, input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Template updated successfully"})
}

// DeleteTemplate godoc
// @Summary Delete an approval chain template
// @Tags templates
// @Param id path string true "Template ID"
// @Success 204
// @Router /api/templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.Service.DeleteTemplate(ctx.UserContext(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// GetTemplateByID godoc
// @Summary Get a chain template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} ChainTemplate
// @Failure 404 {object} map[string]string
// @Router /api/templates/{id} [get]
func (c *TemplateController) GetTemplateByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	template, err := c.Service.GetTemplateByID(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if template == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.JSON(template)
}

// GetActiveTemplate godoc
// @Summary Get the active chain template for a document type
// @Tags templates
// @Produce json
// @Param type path string true "Document Type"
// @Success 200 {object} ChainTemplate
// @Failure 404 {object} map[string]string
// @Router /api/templates/active/{type} [get]
func (c *TemplateController) GetActiveTemplate(ctx *fiber.Ctx) error {
	docType := common_models.DocumentType(ctx.Params("type"))
	template, err := c.Service.GetActiveTemplate(ctx.UserContext(), docType)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if template == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active template for this document type"})
	}
	return ctx.JSON(template)
}

// ListTemplates godoc
// @Summary List all chain templates
// @Tags templates
// @Produce json
// @Success 200 {array} ChainTemplate
// @Router /api/templates [get]
func (c *TemplateController) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := c.Service.ListTemplates(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(templates)
}
