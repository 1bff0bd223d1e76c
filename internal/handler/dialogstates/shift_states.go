package dialogstates

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/service"
	"shift-tracking-be/pkg/shifttime"

	"github.com/google/uuid"
)

// shiftBrowseDays is how far back the shift list looks.
const shiftBrowseDays = 14

func (f *Flows) registerShifts(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateSiteShiftsList, dialog.Handlers{
		OnEnter: f.siteShiftsListEnter,
		OnInput: f.siteShiftsListInput,
	})
	registry.MustRegister(dialog.StateShiftDetails, dialog.Handlers{
		OnEnter: f.shiftDetailsEnter,
		OnInput: f.shiftDetailsInput,
	})
	registry.MustRegister(dialog.StateShiftStartMarkAbsent, dialog.Handlers{
		OnEnter: f.shiftStartMarkAbsentEnter,
		OnInput: f.shiftStartMarkAbsentInput,
	})
	registry.MustRegister(dialog.StateShiftAddEmployee, dialog.Handlers{
		OnEnter: f.shiftAddEmployeeEnter,
		OnInput: f.shiftAddEmployeeInput,
	})
}

func (f *Flows) siteShiftsListEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	to := time.Now()
	from := to.AddDate(0, 0, -shiftBrowseDays)
	shifts, err := f.shifts.ListBySite(ctx, actor, siteId, from, to)
	if err != nil {
		return err
	}

	var buttons [][]dto.Button
	for _, shift := range shifts {
		buttons = append(buttons, []dto.Button{{
			Text:     fmt.Sprintf("%s (%s)", shift.Date.Format(shifttime.DateLayout), shift.Status),
			Callback: cb(dialog.StateShiftDetails, seg("shift", shift.Id)),
		}})
	}
	buttons = append(buttons, []dto.Button{
		{Text: "Back", Callback: cb(dialog.StateSiteDetails, seg("site", siteId))},
	})

	fc.Reply("Shifts, last two weeks.\nSend 'today' or a date like 2026-09-01 to open a shift for that day.", buttons...)
	return nil
}

func (f *Flows) siteShiftsListInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	input := strings.ToLower(strings.TrimSpace(fc.Input))
	date := input
	if input == "today" {
		date = time.Now().Format(shifttime.DateLayout)
	}
	if _, err := time.Parse(shifttime.DateLayout, date); err != nil {
		fc.Reply("I could not read that date. Send 'today' or a date like 2026-09-01.")
		return nil
	}

	shift, created, err := f.shifts.CreateForDate(ctx, actor, siteId, date)
	if err != nil {
		return err
	}

	session, err := f.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
		data.CurrentShiftID = &shift.Id
	})
	if err != nil {
		return err
	}
	fc.Session = session

	if created {
		fc.Reply(fmt.Sprintf("Shift for %s opened.", date))
	}
	return f.goTo(ctx, fc, dialog.StateShiftDetails, false)
}

// shiftLogs fetches the shift and its logs ordered by clock-in, so numbered
// worker references stay stable between the rendered list and the next input.
func (f *Flows) shiftLogs(ctx context.Context, actor entity.Actor, shiftId uuid.UUID) (*entity.Shift, []*entity.WorkLog, error) {
	shift, logs, err := f.shifts.GetDetails(ctx, actor, shiftId)
	if err != nil {
		return nil, nil, err
	}
	return shift, logs, nil
}

func (f *Flows) shiftDetailsEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}
	shiftId := *fc.Session.Data.CurrentShiftID

	shift, logs, err := f.shiftLogs(ctx, actor, shiftId)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Shift %s\nStatus: %s\nPlanned: %s - %s\n",
		shift.Date.Format(shifttime.DateLayout), shift.Status,
		shift.PlannedStart.Format("15:04"), shift.PlannedEnd.Format("15:04"))

	names := map[uuid.UUID]string{}
	if len(logs) > 0 {
		ids := make([]uuid.UUID, 0, len(logs))
		for _, log := range logs {
			ids = append(ids, log.EmployeeId)
		}
		employees, err := f.employees.ListByIds(ctx, actor, ids)
		if err != nil {
			return err
		}
		for _, e := range employees {
			names[e.Id] = e.FullName
		}

		sb.WriteString("Workers:\n")
		for i, log := range logs {
			status := "working"
			if log.ActualEnd != nil {
				status = "left " + log.ActualEnd.Format("15:04")
			}
			fmt.Fprintf(&sb, "%d. %s, in %s, %s\n", i+1, names[log.EmployeeId], log.ActualStart.Format("15:04"), status)
		}
	}

	buttons := [][]dto.Button{}
	switch shift.Status {
	case entity.ShiftPlanned:
		buttons = append(buttons, []dto.Button{{
			Text:     "Confirm start",
			Callback: cb(dialog.StateShiftStartMarkAbsent, seg("shift", shiftId)),
		}})
	case entity.ShiftStarted:
		sb.WriteString("\nSend 'end' to close the shift, or 'leave N' when worker N goes home early.")
		buttons = append(buttons, []dto.Button{{
			Text:     "Add late worker",
			Callback: cb(dialog.StateShiftAddEmployee, seg("shift", shiftId)),
		}})
	}
	buttons = append(buttons, []dto.Button{{
		Text:     "Back",
		Callback: cb(dialog.StateSiteShiftsList, seg("site", shift.SiteId)),
	}})

	fc.Reply(sb.String(), buttons...)
	return nil
}

func (f *Flows) shiftDetailsInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}
	shiftId := *fc.Session.Data.CurrentShiftID

	input := strings.ToLower(strings.TrimSpace(fc.Input))
	switch {
	case input == "end" || input == "finish":
		shift, logs, err := f.shifts.ConfirmEnd(ctx, actor, shiftId, nil)
		if err != nil {
			return err
		}
		fc.Reply(fmt.Sprintf("Shift closed at %s. %d workers clocked out.",
			shift.ClosedAt.Format("15:04"), len(logs)))
		return f.engine.Dispatch(ctx, fc, dialog.EventEnter)

	case strings.HasPrefix(input, "leave"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "leave")))
		if err != nil {
			fc.Reply("Send 'leave N' where N is the worker's number in the list.")
			return nil
		}
		_, logs, err := f.shiftLogs(ctx, actor, shiftId)
		if err != nil {
			return err
		}
		if n < 1 || n > len(logs) {
			fc.Reply(fmt.Sprintf("There is no worker number %d on this shift.", n))
			return nil
		}
		if _, err := f.shifts.RemoveEmployee(ctx, actor, logs[n-1].Id, nil); err != nil {
			return err
		}
		fc.Reply("Noted, early leave recorded.")
		return f.engine.Dispatch(ctx, fc, dialog.EventEnter)

	default:
		fc.Reply("Send 'end' to close the shift or 'leave N' for an early leave.")
		return nil
	}
}

func (f *Flows) shiftStartMarkAbsentEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}

	shift, _, err := f.shifts.GetDetails(ctx, actor, *fc.Session.Data.CurrentShiftID)
	if err != nil {
		return err
	}

	_, roster, err := f.sites.GetDetails(ctx, actor, shift.SiteId)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		fc.Reply("This site has no workers on the roster. Add workers first.", []dto.Button{
			{Text: "Back", Callback: cb(dialog.StateShiftDetails, seg("shift", shift.Id))},
		})
		return nil
	}

	ids := make([]uuid.UUID, 0, len(roster))
	for _, a := range roster {
		ids = append(ids, a.EmployeeId)
	}
	employees, err := f.employees.ListByIds(ctx, actor, ids)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("Who is absent today?\n")
	for i, e := range employees {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e.FullName)
	}
	sb.WriteString("Send the numbers of absent workers separated by spaces, or 'none'.")
	fc.Reply(sb.String())
	return nil
}

func (f *Flows) shiftStartMarkAbsentInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}
	shiftId := *fc.Session.Data.CurrentShiftID

	shift, _, err := f.shifts.GetDetails(ctx, actor, shiftId)
	if err != nil {
		return err
	}
	_, roster, err := f.sites.GetDetails(ctx, actor, shift.SiteId)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(roster))
	for _, a := range roster {
		ids = append(ids, a.EmployeeId)
	}
	employees, err := f.employees.ListByIds(ctx, actor, ids)
	if err != nil {
		return err
	}

	var absent []uuid.UUID
	input := strings.ToLower(strings.TrimSpace(fc.Input))
	if input != "none" && input != "-" {
		for _, token := range strings.Fields(strings.ReplaceAll(input, ",", " ")) {
			n, err := strconv.Atoi(token)
			if err != nil || n < 1 || n > len(employees) {
				fc.Reply(fmt.Sprintf("I did not understand %q. Send worker numbers separated by spaces, or 'none'.", token))
				return nil
			}
			absent = append(absent, employees[n-1].Id)
		}
	}

	_, workLogs, err := f.shifts.ConfirmStart(ctx, actor, shiftId, service.ConfirmStartOptions{
		AbsentEmployeeIds: absent,
	})
	if err != nil {
		return err
	}

	fc.Reply(fmt.Sprintf("Shift started. %d workers clocked in, %d absent.", len(workLogs), len(absent)))
	return f.goTo(ctx, fc, dialog.StateShiftDetails, false)
}

func (f *Flows) shiftAddEmployeeEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}

	shift, logs, err := f.shiftLogs(ctx, actor, *fc.Session.Data.CurrentShiftID)
	if err != nil {
		return err
	}
	_, roster, err := f.sites.GetDetails(ctx, actor, shift.SiteId)
	if err != nil {
		return err
	}

	onShift := map[uuid.UUID]struct{}{}
	for _, log := range logs {
		onShift[log.EmployeeId] = struct{}{}
	}
	var candidates []uuid.UUID
	for _, a := range roster {
		if _, ok := onShift[a.EmployeeId]; !ok {
			candidates = append(candidates, a.EmployeeId)
		}
	}
	if len(candidates) == 0 {
		fc.Reply("Everyone on the roster is already on this shift.", []dto.Button{
			{Text: "Back", Callback: cb(dialog.StateShiftDetails, seg("shift", shift.Id))},
		})
		return nil
	}

	employees, err := f.employees.ListByIds(ctx, actor, candidates)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("Who arrived late?\n")
	for i, e := range employees {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e.FullName)
	}
	sb.WriteString("Send the worker's number.")
	fc.Reply(sb.String())
	return nil
}

func (f *Flows) shiftAddEmployeeInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentShiftID == nil {
		return apperror.Preconditionf("no shift selected")
	}
	shiftId := *fc.Session.Data.CurrentShiftID

	shift, logs, err := f.shiftLogs(ctx, actor, shiftId)
	if err != nil {
		return err
	}
	_, roster, err := f.sites.GetDetails(ctx, actor, shift.SiteId)
	if err != nil {
		return err
	}
	onShift := map[uuid.UUID]struct{}{}
	for _, log := range logs {
		onShift[log.EmployeeId] = struct{}{}
	}
	var candidates []uuid.UUID
	for _, a := range roster {
		if _, ok := onShift[a.EmployeeId]; !ok {
			candidates = append(candidates, a.EmployeeId)
		}
	}
	employees, err := f.employees.ListByIds(ctx, actor, candidates)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(strings.TrimSpace(fc.Input))
	if err != nil || n < 1 || n > len(employees) {
		fc.Reply("Send the worker's number from the list.")
		return nil
	}

	if _, err := f.shifts.AddEmployee(ctx, actor, shiftId, employees[n-1].Id, nil); err != nil {
		return err
	}

	fc.Reply(fmt.Sprintf("%s clocked in.", employees[n-1].FullName))
	return f.goTo(ctx, fc, dialog.StateShiftDetails, false)
}
