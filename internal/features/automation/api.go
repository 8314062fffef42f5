package automation

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AutomationApi struct {
	controller *AutomationController
	config     *config.Config
}

func NewAutomationApi(controller *AutomationController, config *config.Config) *AutomationApi {
	return &AutomationApi{
		controller: controller,
		config:     config,
	}
}

func (h *AutomationApi) Setup(app *fiber.App) {
	rules := app.Group("/api/automation/rules", middleware.AuthMiddleware(h.config.SkipAuth))

	rules.Post("/", h.controller.CreateRule)
	rules.Get("/", h.controller.ListRules)
	rules.Get("/:id/runs", h.controller.ListRuns)
	rules.Patch("/:id/enable", h.controller.EnableRule)
	rules.Get("/:id", h.controller.GetRule)
	rules.Put("/:id", h.controller.UpdateRule)
	rules.Delete("/:id", h.controller.DeleteRule)
}
