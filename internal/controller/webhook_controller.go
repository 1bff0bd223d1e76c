package controller

import (
	"shift-tracking-be/internal/config"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/pkg/logger"
	"shift-tracking-be/internal/pkg/serverutils"
	"shift-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleUpdate(ctx *fiber.Ctx) error
}

// webhookController receives chat platform updates. It always answers 200
// once the update has been accepted; the replies travel back in the response
// body for the transport adapter to render.
type webhookController struct {
	dialogs service.IDialogHandlerService
	cfg     *config.Config
	logger  logger.ILogger
}

func NewWebhookController(dialogs service.IDialogHandlerService, cfg *config.Config, logger logger.ILogger) IWebhookController {
	return &webhookController{
		dialogs: dialogs,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post(c.cfg.Webhook.Path, c.HandleUpdate)
}

func (c *webhookController) HandleUpdate(ctx *fiber.Ctx) error {
	if c.cfg.Webhook.Token != "" {
		if ctx.Get("X-Webhook-Token") != c.cfg.Webhook.Token {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid webhook token"))
		}
	}

	var event dto.InboundEvent
	if err := ctx.BodyParser(&event); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed update"))
	}
	if err := serverutils.ValidateRequest(event); err != nil {
		return err
	}

	replies, err := c.dialogs.HandleEvent(ctx.Context(), event)
	if err != nil {
		c.logger.Error("webhook", "failed to process update", map[string]interface{}{
			"error":      err.Error(),
			"updateId":   event.UpdateId,
			"chatUserId": event.ChatUserId,
		})
		// Non-200 asks the platform to redeliver the update later.
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "update processing failed"))
	}

	return ctx.JSON(serverutils.SuccessResponse("ok", replies))
}
