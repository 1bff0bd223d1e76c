package dialogstates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/pkg/shifttime"
)

// workLogBrowseDays is how far back the work-log list looks.
const workLogBrowseDays = 31

func (f *Flows) registerEmployees(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateEmployeesList, dialog.Handlers{
		OnEnter: f.employeesListEnter,
	})
	registry.MustRegister(dialog.StateEmployeeCreateEnterName, dialog.Handlers{
		OnEnter: f.employeeCreateEnterNameEnter,
		OnInput: f.employeeCreateEnterNameInput,
	})
	registry.MustRegister(dialog.StateEmployeeDetails, dialog.Handlers{
		OnEnter: f.employeeDetailsEnter,
	})
	registry.MustRegister(dialog.StateEmployeeWorkLogs, dialog.Handlers{
		OnEnter: f.employeeWorkLogsEnter,
	})
}

func (f *Flows) employeesListEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	employees, err := f.employees.List(ctx, actor)
	if err != nil {
		return err
	}

	var buttons [][]dto.Button
	for _, e := range employees {
		buttons = append(buttons, []dto.Button{{
			Text:     e.FullName,
			Callback: cb(dialog.StateEmployeeDetails, seg("emp", e.Id)),
		}})
	}
	buttons = append(buttons, []dto.Button{
		{Text: "New employee", Callback: cb(dialog.StateEmployeeCreateEnterName)},
		{Text: "Back", Callback: cb(menuStateFor(actor.Role))},
	})

	fc.Reply("Employees:", buttons...)
	return nil
}

func (f *Flows) employeeCreateEnterNameEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the full name of the new employee.")
	return nil
}

func (f *Flows) employeeCreateEnterNameInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(fc.Input)
	if name == "" {
		fc.Reply("The name cannot be empty. Send the full name of the new employee.")
		return nil
	}

	employee, err := f.employees.Create(ctx, actor, name, entity.RoleEmployee)
	if err != nil {
		return err
	}
	code, err := f.employees.IssueRefCode(ctx, actor, employee.Id)
	if err != nil {
		return err
	}

	session, err := f.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
		data.CurrentEmployeeID = &employee.Id
	})
	if err != nil {
		return err
	}
	fc.Session = session

	fc.Reply(fmt.Sprintf("%s created.\nRegistration code: %s", employee.FullName, code))
	return f.goTo(ctx, fc, dialog.StateEmployeeDetails, false)
}

func (f *Flows) employeeDetailsEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentEmployeeID == nil {
		return apperror.Preconditionf("no employee selected")
	}
	employeeId := *fc.Session.Data.CurrentEmployeeID

	employee, err := f.employees.GetDetails(ctx, actor, employeeId)
	if err != nil {
		return err
	}

	linked := "not linked to a chat yet"
	if employee.ChatUserId != nil {
		linked = "linked to chat"
	}
	text := fmt.Sprintf("%s\nRole: %s\nStatus: %s", employee.FullName, employee.Role, linked)
	if employee.RefCode != nil {
		text += fmt.Sprintf("\nPending registration code: %s", *employee.RefCode)
	}

	fc.Reply(text,
		[]dto.Button{
			{Text: "Work logs", Callback: cb(dialog.StateEmployeeWorkLogs, seg("emp", employeeId))},
			{Text: "Add correction", Callback: cb(dialog.StateWorkLogCreate, seg("emp", employeeId))},
		},
		[]dto.Button{
			{Text: "Back", Callback: cb(dialog.StateEmployeesList)},
		},
	)
	return nil
}

func (f *Flows) employeeWorkLogsEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	// Managers browse the selected employee; workers always see themselves.
	employeeId := actor.EmployeeId
	if actor.CanManage() && fc.Session.Data.CurrentEmployeeID != nil {
		employeeId = *fc.Session.Data.CurrentEmployeeID
	}

	to := time.Now()
	from := to.AddDate(0, 0, -workLogBrowseDays)
	logs, err := f.workLogs.ListByEmployee(ctx, actor, employeeId, from, to)
	if err != nil {
		return err
	}

	var buttons [][]dto.Button
	for _, log := range logs {
		label := log.Date.Format(shifttime.DateLayout)
		if log.ActualEnd != nil {
			hours := shifttime.CalculateWorkHours(log.ActualStart, *log.ActualEnd, log.LunchMinutes)
			label += " " + shifttime.FormatWorkHours(hours)
		} else {
			label += " (open)"
		}
		if log.IsOverride {
			label += " *"
		}
		buttons = append(buttons, []dto.Button{{
			Text:     label,
			Callback: cb(dialog.StateWorkLogDetails, seg("log", log.Id)),
		}})
	}

	back := cb(dialog.StateEmployeeMenu)
	if actor.CanManage() {
		back = cb(dialog.StateEmployeeDetails, seg("emp", employeeId))
	}
	buttons = append(buttons, []dto.Button{{Text: "Back", Callback: back}})

	if len(logs) == 0 {
		fc.Reply("No work logs in the last month.", buttons...)
	} else {
		fc.Reply("Work logs, last month:", buttons...)
	}
	return nil
}
