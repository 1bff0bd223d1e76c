package controller

import (
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const tokenTTL = 12 * time.Hour

type loginRequest struct {
	EmployeeId uuid.UUID `json:"employee_id" validate:"required"`
	Pin        string    `json:"pin" validate:"required,min=4"`
}

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
}

// authController exchanges an employee id and PIN for a management API
// token. Only managers and admins set PINs, so workers cannot log in here.
type authController struct {
	employees service.IEmployeeService
}

func NewAuthController(employees service.IEmployeeService) IAuthController {
	return &authController{employees: employees}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req loginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.employees.VerifyPin(ctx.Context(), req.EmployeeId, req.Pin); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid credentials"))
	}

	self := entity.Actor{EmployeeId: req.EmployeeId}
	employee, err := c.employees.GetDetails(ctx.Context(), self, req.EmployeeId)
	if err != nil {
		return err
	}

	token, err := serverutils.IssueToken(employee.Id.String(), employee.Role, tokenTTL)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Logged in", fiber.Map{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
	}))
}
