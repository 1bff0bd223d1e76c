package controller

import (
	"time"

	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	ListRecent(ctx *fiber.Ctx) error
	ListByEntity(ctx *fiber.Ctx) error
}

type auditController struct {
	audits service.IAuditQueryService
}

func NewAuditController(audits service.IAuditQueryService) IAuditController {
	return &auditController{audits: audits}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.ListRecent)
	h.Get("/:entityType/:entityId", c.ListByEntity)
}

func toAuditResponses(entries []*entity.AuditEntry) []dto.AuditEntryResponse {
	res := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.AuditEntryResponse{
			Id:         e.Id,
			EntityType: e.EntityType,
			EntityId:   e.EntityId,
			Action:     e.Action,
			ChangedBy:  e.ChangedBy,
			Metadata:   e.Metadata,
			ChangedAt:  e.ChangedAt.Format(time.RFC3339),
		})
	}
	return res
}

func (c *auditController) ListRecent(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	limit := serverutils.ParseIntQuery(ctx.Query("limit"), 50)
	offset := serverutils.ParseIntQuery(ctx.Query("offset"), 0)

	entries, err := c.audits.ListRecent(ctx.Context(), actor, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit trail", toAuditResponses(entries)))
}

func (c *auditController) ListByEntity(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	entityId, err := uuid.Parse(ctx.Params("entityId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid entity id"))
	}

	entries, err := c.audits.ListByEntity(ctx.Context(), actor, ctx.Params("entityType"), entityId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit trail", toAuditResponses(entries)))
}
