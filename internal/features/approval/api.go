package approval

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ApprovalApi struct {
	controller *ApprovalController
	config     *config.Config
}

func NewApprovalApi(controller *ApprovalController, config *config.Config) *ApprovalApi {
	return &ApprovalApi{
		controller: controller,
		config:     config,
	}
}

func (h *ApprovalApi) Setup(app *fiber.App) {
	approvals := app.Group("/api/approvals", middleware.AuthMiddleware(h.config.SkipAuth))

	approvals.Post("/start", h.controller.StartApproval)
	approvals.Get("/document/:type/:docId", h.controller.GetRequestByDocument)
	approvals.Post("/:id/decide", h.controller.Decide)
	approvals.Get("/:id/history", h.controller.ListHistory)
	approvals.Post("/:id/comments", h.controller.AddComment)
	approvals.Get("/:id/comments", h.controller.ListComments)
	approvals.Get("/:id", h.controller.GetRequest)
}
