package approval

import (
	"errors"

	common_models "go-erp/internal/common/models"
	"go-erp/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ApprovalController struct {
	Service ApprovalService
}

func NewApprovalController(service ApprovalService) *ApprovalController {
	return &ApprovalController{Service: service}
}

// statusForError maps the engine's error taxonomy to HTTP statuses.
// Everything outside the taxonomy is an infrastructure failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrWrongLevel),
		errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidConfiguration):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrWrongApprover):
		return fiber.StatusForbidden
	case errors.Is(err, ErrMissingReason):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func actorFromCtx(ctx *fiber.Ctx) string {
	if claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims); ok {
		return claims.UserID
	}
	return ""
}

type startRequest struct {
	DocumentType common_models.DocumentType `json:"document_type"`
	DocumentID   string                     `json:"document_id"`
}

// StartApproval godoc
// @Summary Start an approval run for a document
// @Description Snapshots the active chain template and opens a pending run
// @Tags approvals
// @Accept json
// @Produce json
// @Param body body startRequest true "Document reference"
// @Success 201 {object} map[string]string
// @Failure 409 {object} map[string]string "Active run already exists"
// @Failure 422 {object} map[string]string "Chain not configured"
// @Router /api/approvals/start [post]
func (c *ApprovalController) StartApproval(ctx *fiber.Ctx) error {
	var body startRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !body.DocumentType.IsValid() || body.DocumentID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "document_type and document_id are required"})
	}

	id, err := c.Service.Start(ctx.UserContext(), body.DocumentType, body.DocumentID, actorFromCtx(ctx))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"request_id": id.Hex()})
}

type decideRequest struct {
	LevelOrder      int    `json:"level_order"`
	Decision        string `json:"decision"` // APPROVE or REJECT
	Comment         string `json:"comment"`
	ExpectedVersion int64  `json:"expected_version"`
}

// Decide godoc
// @Summary Apply an approver's decision to the current level
// @Description On Conflict the client must refresh the request and re-evaluate before retrying
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body decideRequest true "Decision"
// @Success 200 {object} ApprovalRequest
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 403 {object} map[string]string "Wrong approver"
// @Failure 409 {object} map[string]string "Conflict, wrong level or terminal request"
// @Router /api/approvals/{id}/decide [post]
func (c *ApprovalController) Decide(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var body decideRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var decision common_models.ApprovalStatus
	switch body.Decision {
	case "APPROVE":
		decision = common_models.ApprovalStatusApproved
	case "REJECT":
		decision = common_models.ApprovalStatusRejected
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "decision must be APPROVE or REJECT"})
	}

	req, err := c.Service.Decide(ctx.UserContext(), id, body.LevelOrder, actorFromCtx(ctx), decision, body.Comment, body.ExpectedVersion)
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(req)
}

// GetRequest godoc
// @Summary Get an approval request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} ApprovalRequest
// @Failure 404 {object} map[string]string
// @Router /api/approvals/{id} [get]
func (c *ApprovalController) GetRequest(ctx *fiber.Ctx) error {
	req, err := c.Service.GetRequest(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// GetRequestByDocument godoc
// @Summary Get the latest approval request for a document
// @Tags approvals
// @Produce json
// @Param type path string true "Document Type"
// @Param docId path string true "Document ID"
// @Success 200 {object} ApprovalRequest
// @Failure 404 {object} map[string]string
// @Router /api/approvals/document/{type}/{docId} [get]
func (c *ApprovalController) GetRequestByDocument(ctx *fiber.Ctx) error {
	docType := common_models.DocumentType(ctx.Params("type"))
	req, err := c.Service.GetRequestByDocument(ctx.UserContext(), docType, ctx.Params("docId"))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// ListHistory godoc
// @Summary List the immutable audit trail of a request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} history.HistoryEntry
// @Router /api/approvals/{id}/history [get]
func (c *ApprovalController) ListHistory(ctx *fiber.Ctx) error {
	entries, err := c.Service.ListHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(entries)
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment godoc
// @Summary Add a discussion comment to a request
// @Description Allowed at any time, including after a terminal state
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body addCommentRequest true "Comment"
// @Success 201 {object} map[string]string
// @Router /api/approvals/{id}/comments [post]
func (c *ApprovalController) AddComment(ctx *fiber.Ctx) error {
	var body addCommentRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := c.Service.AddComment(ctx.UserContext(), ctx.Params("id"), actorFromCtx(ctx), body.Text)
	if err != nil {
		status := statusForError(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"comment_id": id.Hex()})
}

// ListComments godoc
// @Summary List comments on a request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} comment.Comment
// @Router /api/approvals/{id}/comments [get]
func (c *ApprovalController) ListComments(ctx *fiber.Ctx) error {
	comments, err := c.Service.ListComments(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(comments)
}
