package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{Service: service}
}

// CreateSetting godoc
// @Summary Create a sync setting
// @Tags sync
// @Accept json
// @Produce json
// @Param setting body SyncSetting true "Setting"
// @Success 201 {object} SyncSetting
// @Router /api/sync/settings [post]
func (c *SyncController) CreateSetting(ctx *fiber.Ctx) error {
	var setting SyncSetting
	if err := ctx.BodyParser(&setting); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.Service.CreateSetting(ctx.UserContext(), &setting); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(setting)
}

// GetSetting godoc
// @Summary Get a sync setting
// @Tags sync
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} SyncSetting
// @Router /api/sync/settings/{id} [get]
func (c *SyncController) GetSetting(ctx *fiber.Ctx) error {
	setting, err := c.Service.GetSetting(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if setting == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sync setting not found"})
	}
	return ctx.JSON(setting)
}

// ListSettings godoc
// @Summary List sync settings
// @Tags sync
// @Produce json
// @Success 200 {array} SyncSetting
// @Router /api/sync/settings [get]
func (c *SyncController) ListSettings(ctx *fiber.Ctx) error {
	settings, err := c.Service.ListSettings(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(settings)
}

// UpdateSetting godoc
// @Summary Update a sync setting
// @Tags sync
// @Accept json
// @Param id path string true "Setting ID"
// @Success 200 {object} map[string]string
// @Router /api/sync/settings/{id} [put]
func (c *SyncController) UpdateSetting(ctx *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.Service.UpdateSetting(ctx.UserContext(), ctx.Params("id"), updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Sync setting updated successfully"})
}

// DeleteSetting godoc
// @Summary Delete a sync setting
// @Tags sync
// @Param id path string true "Setting ID"
// @Success 204
// @Router /api/sync/settings/{id} [delete]
func (c *SyncController) DeleteSetting(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteSetting(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// RunSync godoc
// @Summary Run a sync setting now
// @Tags sync
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} SyncLog
// @Router /api/sync/settings/{id}/run [post]
func (c *SyncController) RunSync(ctx *fiber.Ctx) error {
	log, err := c.Service.RunSync(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		if log != nil {
			return ctx.Status(fiber.StatusBadGateway).JSON(log)
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(log)
}

// ListLogs godoc
// @Summary List recent runs of a sync setting
// @Tags sync
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {array} SyncLog
// @Router /api/sync/settings/{id}/logs [get]
func (c *SyncController) ListLogs(ctx *fiber.Ctx) error {
	logs, err := c.Service.ListLogs(ctx.UserContext(), ctx.Params("id"), int64(ctx.QueryInt("limit", 50)))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(logs)
}
