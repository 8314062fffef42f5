package purchaseorder

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrderApi struct {
	controller *OrderController
	config     *config.Config
}

func NewOrderApi(controller *OrderController, config *config.Config) *OrderApi {
	return &OrderApi{
		controller: controller,
		config:     config,
	}
}

func (h *OrderApi) Setup(app *fiber.App) {
	orders := app.Group("/api/purchase-orders", middleware.AuthMiddleware(h.config.SkipAuth))

	orders.Post("/", h.controller.CreateOrder)
	orders.Get("/", h.controller.ListOrders)
	orders.Post("/:id/submit", h.controller.SubmitOrder)
	orders.Get("/:id", h.controller.GetOrder)
	orders.Put("/:id", h.controller.UpdateOrder)
	orders.Delete("/:id", h.controller.DeleteOrder)
}
