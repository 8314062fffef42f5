package chaintemplate

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	controller *TemplateController
	config     *config.Config
}

func NewTemplateApi(controller *TemplateController, config *config.Config) *TemplateApi {
	return &TemplateApi{
		controller: controller,
		config:     config,
	}
}

func (h *TemplateApi) Setup(app *fiber.App) {
	templates := app.Group("/api/templates", middleware.AuthMiddleware(h.config.SkipAuth))

	templates.Post("/", h.controller.CreateTemplate)
	templates.Put("/:id", h.controller.UpdateTemplate)
	templates.Delete("/:id", h.controller.DeleteTemplate)
	templates.Get("/", h.controller.ListTemplates)
	templates.Get("/active/:type", h.controller.GetActiveTemplate)
	templates.Get("/:id", h.controller.GetTemplateByID)
}
