package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// updateDedupTTL bounds how long a processed update id is remembered. Chat
// platforms redeliver webhooks on timeout; a day covers their retry window.
const updateDedupTTL = 24 * time.Hour

// IDialogHandlerService is the inbound edge of the conversation: it takes
// one normalized chat update and returns the replies to render.
type IDialogHandlerService interface {
	HandleEvent(ctx context.Context, event dto.InboundEvent) ([]dto.Reply, error)
}

type dialogHandlerService struct {
	engine    *dialog.Engine
	employees IEmployeeService
	redis     *redis.Client
	logger    logger.ILogger
}

func NewDialogHandlerService(
	engine *dialog.Engine,
	employees IEmployeeService,
	redisClient *redis.Client,
	logger logger.ILogger,
) IDialogHandlerService {
	return &dialogHandlerService{
		engine:    engine,
		employees: employees,
		redis:     redisClient,
		logger:    logger,
	}
}

func (s *dialogHandlerService) HandleEvent(ctx context.Context, event dto.InboundEvent) ([]dto.Reply, error) {
	if dup, err := s.isDuplicate(ctx, event.UpdateId); err != nil {
		s.logger.Warn("dialog", "update dedup check failed, processing anyway", map[string]interface{}{
			"error":    err.Error(),
			"updateId": event.UpdateId,
		})
	} else if dup {
		s.logger.Info("dialog", "skipping redelivered update", map[string]interface{}{
			"updateId": event.UpdateId,
		})
		return nil, nil
	}

	// One user's updates are strictly ordered; handlers assume they own the
	// session while they run.
	unlock := s.engine.LockUser(event.ChatUserId)
	defer unlock()

	session, err := s.engine.LoadOrCreate(ctx, event.ChatUserId)
	if err != nil {
		return nil, err
	}

	actor, err := s.employees.ResolveActor(ctx, event.ChatUserId)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		// Deactivated employees get a terminal reply, not an error page.
		if errors.Is(err, apperror.ErrUnauthorized) {
			return []dto.Reply{{Text: "Your account is deactivated. Contact your manager."}}, nil
		}
		return nil, err
	}

	fc := &dialog.FlowContext{
		Session: session,
		Actor:   actor,
		Input:   event.Text,
	}

	switch {
	case event.Callback != "":
		err = s.handleCallback(ctx, fc, event.Callback)
	case session.State == nil:
		err = s.startFlow(ctx, fc)
	default:
		err = s.engine.Dispatch(ctx, fc, dialog.EventInput)
	}

	if err != nil {
		return s.fallbackReply(fc, err)
	}
	return fc.Replies(), nil
}

func (s *dialogHandlerService) isDuplicate(ctx context.Context, updateId int64) (bool, error) {
	if s.redis == nil || updateId == 0 {
		return false, nil
	}
	key := fmt.Sprintf("dialog:update:%d", updateId)
	set, err := s.redis.SetNX(ctx, key, 1, updateDedupTTL).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

// startFlow routes a stateless session to its entry point. Unknown chat
// users start onboarding; linked users land on their role's menu.
func (s *dialogHandlerService) startFlow(ctx context.Context, fc *dialog.FlowContext) error {
	target := dialog.StateOnboardingStart
	if fc.Actor != nil {
		switch fc.Actor.Role {
		case entity.RoleAdmin:
			target = dialog.StateAdminMenu
		case entity.RoleManager:
			target = dialog.StateManagerMenu
		default:
			target = dialog.StateEmployeeMenu
		}
	}

	session, err := s.engine.SetState(ctx, fc.Session, target, false)
	if err != nil {
		return err
	}
	fc.Session = session
	return s.engine.Dispatch(ctx, fc, dialog.EventEnter)
}

// handleCallback processes a tapped button. The payload is the target state
// optionally followed by navigation ids, e.g.
// "SHIFT_DETAILS|shift=<uuid>" or "MANAGER_MENU|!".
// A trailing "!" marks a privileged jump that bypasses the graph; only menu
// reset buttons carry it.
func (s *dialogHandlerService) handleCallback(ctx context.Context, fc *dialog.FlowContext, payload string) error {
	parts := strings.Split(payload, "|")
	target := dialog.State(parts[0])

	force := false
	patches := map[string]uuid.UUID{}
	for _, part := range parts[1:] {
		if part == "!" {
			force = true
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return apperror.Preconditionf("malformed callback segment %q", part)
		}
		id, err := uuid.Parse(value)
		if err != nil {
			return apperror.Preconditionf("malformed callback id %q", value)
		}
		patches[key] = id
	}

	if len(patches) > 0 {
		session, err := s.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
			for key, id := range patches {
				id := id
				switch key {
				case "site":
					data.CurrentSiteID = &id
				case "emp":
					data.CurrentEmployeeID = &id
				case "shift":
					data.CurrentShiftID = &id
				case "log":
					data.CurrentWorkLogID = &id
				}
			}
		})
		if err != nil {
			return err
		}
		fc.Session = session
	}

	session, err := s.engine.SetState(ctx, fc.Session, target, force)
	if err != nil {
		return err
	}
	fc.Session = session
	return s.engine.Dispatch(ctx, fc, dialog.EventEnter)
}

// fallbackReply converts expected failures into guidance instead of
// surfacing them to the transport as errors. Unexpected failures still
// propagate so the webhook can signal a retry.
func (s *dialogHandlerService) fallbackReply(fc *dialog.FlowContext, err error) ([]dto.Reply, error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidTransition):
		s.logger.Info("dialog", "rejected illegal transition", map[string]interface{}{
			"error":      err.Error(),
			"chatUserId": fc.Session.ChatUserId,
		})
		return append(fc.Replies(), dto.Reply{
			Text: "That action is no longer available. Use the buttons below the latest message.",
		}), nil
	case errors.Is(err, apperror.ErrNotFound):
		return append(fc.Replies(), dto.Reply{
			Text: "I did not understand that. Send /start to open the menu.",
		}), nil
	case errors.Is(err, apperror.ErrUnauthorized):
		return append(fc.Replies(), dto.Reply{
			Text: "You are not allowed to do that.",
		}), nil
	case errors.Is(err, apperror.ErrPrecondition), errors.Is(err, apperror.ErrDuplicate):
		return append(fc.Replies(), dto.Reply{Text: err.Error()}), nil
	default:
		return nil, err
	}
}
