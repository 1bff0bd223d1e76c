// Package dialogstates wires the guided conversation steps into the dialog
// registry. Each file covers one flow family; the handlers only orchestrate
// services and never touch repositories directly.
package dialogstates

import (
	"context"
	"fmt"
	"strings"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/service"

	"github.com/google/uuid"
)

type Flows struct {
	engine    *dialog.Engine
	employees service.IEmployeeService
	sites     service.ISiteService
	shifts    service.IShiftService
	workLogs  service.IWorkLogService
	reports   service.IReportService
}

func NewFlows(
	engine *dialog.Engine,
	employees service.IEmployeeService,
	sites service.ISiteService,
	shifts service.IShiftService,
	workLogs service.IWorkLogService,
	reports service.IReportService,
) *Flows {
	return &Flows{
		engine:    engine,
		employees: employees,
		sites:     sites,
		shifts:    shifts,
		workLogs:  workLogs,
		reports:   reports,
	}
}

// Register wires every conversation step. Called once during bootstrap;
// a duplicate registration is a programming error and panics there.
func Register(registry *dialog.Registry, f *Flows) {
	f.registerOnboarding(registry)
	f.registerMenus(registry)
	f.registerSites(registry)
	f.registerEmployees(registry)
	f.registerShifts(registry)
	f.registerWorkLogs(registry)
	f.registerReports(registry)
}

// cb builds a callback payload: target state plus navigation id segments.
func cb(state dialog.State, segments ...string) string {
	parts := append([]string{string(state)}, segments...)
	return strings.Join(parts, "|")
}

func seg(key string, id uuid.UUID) string {
	return fmt.Sprintf("%s=%s", key, id)
}

// actorOf resolves the acting employee or reports that onboarding has not
// completed yet.
func actorOf(fc *dialog.FlowContext) (entity.Actor, error) {
	if fc.Actor == nil {
		return entity.Actor{}, apperror.Unauthorizedf("no linked employee for this chat")
	}
	return entity.Actor{EmployeeId: fc.Actor.Id, Role: fc.Actor.Role}, nil
}

// goTo applies a transition and renders the target step in one move.
func (f *Flows) goTo(ctx context.Context, fc *dialog.FlowContext, state dialog.State, force bool) error {
	session, err := f.engine.SetState(ctx, fc.Session, state, force)
	if err != nil {
		return err
	}
	fc.Session = session
	return f.engine.Dispatch(ctx, fc, dialog.EventEnter)
}

// toMenu resets the session to the actor's home menu. Menu resets are
// privileged jumps, legal from anywhere.
func (f *Flows) toMenu(ctx context.Context, fc *dialog.FlowContext) error {
	role := entity.RoleEmployee
	if fc.Actor != nil {
		role = fc.Actor.Role
	}
	session, err := f.engine.ClearState(ctx, fc.Session)
	if err != nil {
		return err
	}
	fc.Session = session
	return f.goTo(ctx, fc, menuStateFor(role), true)
}

// menuStateFor returns the home menu of a role.
func menuStateFor(role string) dialog.State {
	switch role {
	case entity.RoleAdmin:
		return dialog.StateAdminMenu
	case entity.RoleManager:
		return dialog.StateManagerMenu
	default:
		return dialog.StateEmployeeMenu
	}
}
