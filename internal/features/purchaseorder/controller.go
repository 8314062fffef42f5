package purchaseorder

import (
	"go-erp/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Service OrderService
}

func NewOrderController(service OrderService) *OrderController {
	return &OrderController{Service: service}
}

func actorFromCtx(ctx *fiber.Ctx) string {
	if claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		return claims.UserID
	}
	return ""
}

// CreateOrder godoc
// @Summary Create a purchase order draft
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param order body PurchaseOrder true "Purchase Order"
// @Success 201 {object} map[string]string
// @Router /api/purchase-orders [post]
func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input PurchaseOrder
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input.CreatedBy = actorFromCtx(ctx)

	id, err := c.Service.CreateOrder(ctx.UserContext(), input)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id.Hex()})
}

// GetOrder godoc
// @Summary Get a purchase order
// @Tags purchase-orders
// @Produce json
// @Param id path string true "Purchase Order ID"
// @Success 200 {object} PurchaseOrder
// @Failure 404 {object} map[string]string
// @Router /api/purchase-orders/{id} [get]
func (c *OrderController) GetOrder(ctx *fiber.Ctx) error {
	po, err := c.Service.GetOrder(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if po == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}
	return ctx.JSON(po)
}

// ListOrders godoc
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce json
// @Success 200 {array} PurchaseOrder
// @Router /api/purchase-orders [get]
func (c *OrderController) ListOrders(ctx *fiber.Ctx) error {
	orders, err := c.Service.ListOrders(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(orders)
}

// UpdateOrder godoc
// @Summary Update a purchase order draft
// @Tags purchase-orders
// @Accept json
// @Param id path string true "Purchase Order ID"
// @Param order body PurchaseOrder true "Purchase Order"
// @Success 200 {object} map[string]string
// @Router /api/purchase-orders/{id} [put]
func (c *OrderController) UpdateOrder(ctx *fiber.Ctx) error {
	var input PurchaseOrder
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := c.Service.UpdateOrder(ctx.UserContext(), ctx.Params("id"), input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Purchase order updated successfully"})
}

// DeleteOrder godoc
// @Summary Delete a purchase order
// @Tags purchase-orders
// @Param id path string true "Purchase Order ID"
// @Success 204
// @Router /api/purchase-orders/{id} [delete]
func (c *OrderController) DeleteOrder(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteOrder(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SubmitOrder godoc
// @Summary Submit a purchase order for approval
// @Tags purchase-orders
// @Produce json
// @Param id path string true "Purchase Order ID"
// @Success 201 {object} map[string]string
// @Router /api/purchase-orders/{id}/submit [post]
func (c *OrderController) SubmitOrder(ctx *fiber.Ctx) error {
	requestID, err := c.Service.Submit(ctx.UserContext(), ctx.Params("id"), actorFromCtx(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"request_id": requestID.Hex()})
}
