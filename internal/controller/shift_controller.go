package controller

import (
	"time"

	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"
	"shift-tracking-be/pkg/shifttime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShiftController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ConfirmStart(ctx *fiber.Ctx) error
	ConfirmEnd(ctx *fiber.Ctx) error
	AddEmployee(ctx *fiber.Ctx) error
	GetDetails(ctx *fiber.Ctx) error
	ListBySite(ctx *fiber.Ctx) error
}

type shiftController struct {
	shifts service.IShiftService
}

func NewShiftController(shifts service.IShiftService) IShiftController {
	return &shiftController{shifts: shifts}
}

func (c *shiftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shifts")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Post("/:id/start", c.ConfirmStart)
	h.Post("/:id/end", c.ConfirmEnd)
	h.Post("/:id/employees", c.AddEmployee)
	h.Get("/:id", c.GetDetails)
	h.Get("/", c.ListBySite)
}

func toShiftResponse(shift *entity.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		Id:           shift.Id,
		SiteId:       shift.SiteId,
		Date:         shift.Date.Format(shifttime.DateLayout),
		PlannedStart: shift.PlannedStart,
		PlannedEnd:   shift.PlannedEnd,
		LunchMinutes: shift.LunchMinutes,
		Status:       shift.Status,
		StartedAt:    shift.StartedAt,
		ClosedAt:     shift.ClosedAt,
		ConfirmedBy:  shift.ConfirmedBy,
	}
}

func toWorkLogResponse(log *entity.WorkLog) dto.WorkLogResponse {
	res := dto.WorkLogResponse{
		Id:           log.Id,
		EmployeeId:   log.EmployeeId,
		SiteId:       log.SiteId,
		ShiftId:      log.ShiftId,
		Date:         log.Date.Format(shifttime.DateLayout),
		ActualStart:  log.ActualStart,
		ActualEnd:    log.ActualEnd,
		LunchMinutes: log.LunchMinutes,
		IsOverride:   log.IsOverride,
	}
	if log.ActualEnd != nil {
		hours := shifttime.CalculateWorkHours(log.ActualStart, *log.ActualEnd, log.LunchMinutes)
		res.WorkedHours = &hours
	}
	return res
}

func toShiftDetailsResponse(shift *entity.Shift, logs []*entity.WorkLog) dto.ShiftDetailsResponse {
	res := dto.ShiftDetailsResponse{Shift: toShiftResponse(shift)}
	for _, log := range logs {
		res.WorkLogs = append(res.WorkLogs, toWorkLogResponse(log))
	}
	return res
}

func (c *shiftController) Create(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateShiftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	shift, created, err := c.shifts.CreateForDate(ctx.Context(), actor, req.SiteId, req.Date)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	message := "Shift already exists"
	if created {
		status = fiber.StatusCreated
		message = "Shift created"
	}
	return ctx.Status(status).JSON(serverutils.SuccessResponse(message, toShiftResponse(shift)))
}

func (c *shiftController) ConfirmStart(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	shiftId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid shift id"))
	}

	var req dto.ConfirmShiftStartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}

	shift, logs, err := c.shifts.ConfirmStart(ctx.Context(), actor, shiftId, service.ConfirmStartOptions{
		At:                req.At,
		AbsentEmployeeIds: req.AbsentEmployeeIds,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Shift started", toShiftDetailsResponse(shift, logs)))
}

func (c *shiftController) ConfirmEnd(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	shiftId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid shift id"))
	}

	var req dto.ConfirmShiftEndRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}

	shift, logs, err := c.shifts.ConfirmEnd(ctx.Context(), actor, shiftId, req.At)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Shift closed", toShiftDetailsResponse(shift, logs)))
}

func (c *shiftController) AddEmployee(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	shiftId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid shift id"))
	}

	var req dto.AddShiftEmployeeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	log, err := c.shifts.AddEmployee(ctx.Context(), actor, shiftId, req.EmployeeId, req.At)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Employee clocked in", toWorkLogResponse(log)))
}

func (c *shiftController) GetDetails(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	shiftId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid shift id"))
	}

	shift, logs, err := c.shifts.GetDetails(ctx.Context(), actor, shiftId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Shift details", toShiftDetailsResponse(shift, logs)))
}

func (c *shiftController) ListBySite(ctx *fiber.Ctx) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	siteId, err := uuid.Parse(ctx.Query("site_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "site_id query parameter is required"))
	}
	from, to, err := parseDateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	shifts, err := c.shifts.ListBySite(ctx.Context(), actor, siteId, from, to)
	if err != nil {
		return err
	}

	res := make([]dto.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		res = append(res, toShiftResponse(shift))
	}
	return ctx.JSON(serverutils.SuccessResponse("Shifts", res))
}

// parseDateRange reads from/to query parameters, defaulting to the last
// month ending today.
func parseDateRange(ctx *fiber.Ctx) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, -1, 0)

	if v := ctx.Query("from"); v != "" {
		parsed, err := time.Parse(shifttime.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		from = parsed
	}
	if v := ctx.Query("to"); v != "" {
		parsed, err := time.Parse(shifttime.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
		to = parsed
	}
	return from, to, nil
}
