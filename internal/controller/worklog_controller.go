package controller

import (
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkLogController interface {
	RegisterRoutes(r fiber.Router)
	CreateOverride(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	GetDetails(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type workLogController struct {
	workLogs service.IWorkLogService
}

func NewWorkLogController(workLogs service.IWorkLogService) IWorkLogController {
	return &workLogController{workLogs: workLogs}
}

func (c *workLogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/worklogs")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.CreateOverride)
	h.Patch("/:id", c.Update)
	h.Get("/:id", c.GetDetails)
	h.Get("/", c.List)
}

func (c *workLogController) CreateOverride(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateOverrideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	log, err := c.workLogs.CreateOverride(ctx.Context(), actor, req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Correction recorded", toWorkLogResponse(log)))
}

func (c *workLogController) Update(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	workLogId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid work log id"))
	}

	var req dto.UpdateWorkLogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	log, err := c.workLogs.Update(ctx.Context(), actor, workLogId, service.WorkLogPatch{
		ActualStart:  req.ActualStart,
		ActualEnd:    req.ActualEnd,
		LunchMinutes: req.LunchMinutes,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Work log updated", toWorkLogResponse(log)))
}

func (c *workLogController) GetDetails(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	workLogId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid work log id"))
	}

	log, _, err := c.workLogs.GetDetails(ctx.Context(), actor, workLogId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Work log", toWorkLogResponse(log)))
}

// List browses work logs by employee or by site over a date range.
func (c *workLogController) List(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	from, to, err := parseDateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if v := ctx.Query("employee_id"); v != "" {
		employeeId, err := uuid.Parse(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid employee_id"))
		}
		logs, err := c.workLogs.ListByEmployee(ctx.Context(), actor, employeeId, from, to)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Work logs", toWorkLogResponses(logs)))
	}

	if v := ctx.Query("site_id"); v != "" {
		siteId, err := uuid.Parse(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid site_id"))
		}
		logs, err := c.workLogs.ListBySite(ctx.Context(), actor, siteId, from, to)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Work logs", toWorkLogResponses(logs)))
	}

	return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "employee_id or site_id query parameter is required"))
}

func toWorkLogResponses(logs []*entity.WorkLog) []dto.WorkLogResponse {
	res := make([]dto.WorkLogResponse, 0, len(logs))
	for _, log := range logs {
		res = append(res, toWorkLogResponse(log))
	}
	return res
}
