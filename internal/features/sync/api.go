package sync

import (
	"go-erp/internal/config"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) *SyncApi {
	return &SyncApi{
		controller: controller,
		config:     config,
	}
}

func (h *SyncApi) Setup(app *fiber.App) {
	settings := app.Group("/api/sync/settings", middleware.AuthMiddleware(h.config.SkipAuth))

	settings.Post("/", h.controller.CreateSetting)
	settings.Get("/", h.controller.ListSettings)
	settings.Post("/:id/run", h.controller.RunSync)
	settings.Get("/:id/logs", h.controller.ListLogs)
	settings.Get("/:id", h.controller.GetSetting)
	settings.Put("/:id", h.controller.UpdateSetting)
	settings.Delete("/:id", h.controller.DeleteSetting)
}
