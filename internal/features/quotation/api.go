package quotation

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type QuotationApi struct {
	controller *QuotationController
	config     *config.Config
}

func NewQuotationApi(controller *QuotationController, config *config.Config) *QuotationApi {
	return &QuotationApi{
		controller: controller,
		config:     config,
	}
}

func (h *QuotationApi) Setup(app *fiber.App) {
	quotations := app.Group("/api/quotations", middleware.AuthMiddleware(h.config.SkipAuth))

	quotations.Post("/", h.controller.CreateQuotation)
	quotations.Get("/", h.controller.ListQuotations)
	quotations.Post("/:id/submit", h.controller.SubmitQuotation)
	quotations.Get("/:id", h.controller.GetQuotation)
	quotations.Put("/:id", h.controller.UpdateQuotation)
	quotations.Delete("/:id", h.controller.DeleteQuotation)
}
