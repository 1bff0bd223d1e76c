package controller

import (
	"shift-tracking-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx rebuilds the acting employee from the JWT claims placed in
// the request locals by the auth middleware.
func actorFromCtx(ctx *fiber.Ctx) (entity.Actor, error) {
	idStr, _ := ctx.Locals("employee_id").(string)
	role, _ := ctx.Locals("role").(string)

	employeeId, err := uuid.Parse(idStr)
	if err != nil {
		return entity.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "invalid token subject")
	}
	return entity.Actor{EmployeeId: employeeId, Role: role}, nil
}
