package dialogstates

import (
	"context"
	"fmt"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
)

func (f *Flows) registerMenus(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateAdminMenu, dialog.Handlers{
		OnEnter: f.adminMenuEnter,
		OnInput: f.adminMenuEnter,
	})
	registry.MustRegister(dialog.StateManagerMenu, dialog.Handlers{
		OnEnter: f.managerMenuEnter,
		OnInput: f.managerMenuEnter,
	})
	registry.MustRegister(dialog.StateEmployeeMenu, dialog.Handlers{
		OnEnter: f.employeeMenuEnter,
		OnInput: f.employeeMenuEnter,
	})
}

func (f *Flows) adminMenuEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Admin menu", []dto.Button{
		{Text: "Sites", Callback: cb(dialog.StateSitesList)},
		{Text: "Employees", Callback: cb(dialog.StateEmployeesList)},
	})
	return nil
}

func (f *Flows) managerMenuEnter(ctx context.Context, fc *dialog.FlowContext) error {
	name := ""
	if fc.Actor != nil {
		name = " " + fc.Actor.FullName
	}
	fc.Reply(fmt.Sprintf("Manager menu%s", name), []dto.Button{
		{Text: "My sites", Callback: cb(dialog.StateSitesList)},
		{Text: "Employees", Callback: cb(dialog.StateEmployeesList)},
	})
	return nil
}

func (f *Flows) employeeMenuEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Main menu", []dto.Button{
		{Text: "My work logs", Callback: cb(dialog.StateEmployeeWorkLogs)},
	})
	return nil
}
