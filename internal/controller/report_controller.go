package controller

import (
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	SiteHours(ctx *fiber.Ctx) error
	EmployeeHours(ctx *fiber.Ctx) error
}

type reportController struct {
	reports service.IReportService
}

func NewReportController(reports service.IReportService) IReportController {
	return &reportController{reports: reports}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/sites/:id/hours", c.SiteHours)
	h.Get("/employees/:id/hours", c.EmployeeHours)
}

func (c *reportController) SiteHours(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	siteId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid site id"))
	}
	from, to, err := parseDateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	report, err := c.reports.SiteHours(ctx.Context(), actor, siteId, from, to)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Hours report", report))
}

func (c *reportController) EmployeeHours(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	employeeId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid employee id"))
	}
	from, to, err := parseDateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	row, err := c.reports.EmployeeHours(ctx.Context(), actor, employeeId, from, to)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Employee hours", row))
}
