package dialogstates

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/service"
	"shift-tracking-be/pkg/shifttime"
)

func (f *Flows) registerWorkLogs(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateWorkLogCreate, dialog.Handlers{
		OnEnter: f.workLogCreateEnter,
		OnInput: f.workLogCreateInput,
	})
	registry.MustRegister(dialog.StateWorkLogDetails, dialog.Handlers{
		OnEnter: f.workLogDetailsEnter,
	})
	registry.MustRegister(dialog.StateWorkLogEdit, dialog.Handlers{
		OnEnter: f.workLogEditEnter,
		OnInput: f.workLogEditInput,
	})
}

func (f *Flows) workLogCreateEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentEmployeeID == nil {
		return apperror.Preconditionf("no employee selected")
	}

	// A correction needs a site. Selecting one re-enters this state with
	// the site id set; same-state moves are no-ops in the engine.
	if fc.Session.Data.CurrentSiteID == nil {
		sites, err := f.sites.List(ctx, actor)
		if err != nil {
			return err
		}
		var buttons [][]dto.Button
		for _, site := range sites {
			buttons = append(buttons, []dto.Button{{
				Text:     site.Name,
				Callback: cb(dialog.StateWorkLogCreate, seg("site", site.Id)),
			}})
		}
		buttons = append(buttons, []dto.Button{{
			Text:     "Cancel",
			Callback: cb(dialog.StateEmployeeDetails, seg("emp", *fc.Session.Data.CurrentEmployeeID)),
		}})
		fc.Reply("Which site is the correction for?", buttons...)
		return nil
	}

	fc.Reply("Send the correction as DATE START END LUNCH, for example 2026-09-01 09:00 17:30 60.\nFor an overnight record the end may be earlier than the start.")
	return nil
}

func (f *Flows) workLogCreateInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentEmployeeID == nil {
		return apperror.Preconditionf("no employee selected")
	}
	if fc.Session.Data.CurrentSiteID == nil {
		fc.Reply("Pick the site first using the buttons above.")
		return nil
	}

	fields := strings.Fields(strings.TrimSpace(fc.Input))
	if len(fields) < 3 || len(fields) > 4 {
		fc.Reply("Send the correction as DATE START END LUNCH, for example 2026-09-01 09:00 17:30 60.")
		return nil
	}
	lunch := 0
	if len(fields) == 4 {
		lunch, err = strconv.Atoi(fields[3])
		if err != nil || lunch < 0 {
			fc.Reply("Lunch must be a number of minutes, for example 60.")
			return nil
		}
	}

	log, err := f.workLogs.CreateOverride(ctx, actor, dto.CreateOverrideRequest{
		EmployeeId:   *fc.Session.Data.CurrentEmployeeID,
		SiteId:       *fc.Session.Data.CurrentSiteID,
		Date:         fields[0],
		ActualStart:  fields[1],
		ActualEnd:    fields[2],
		LunchMinutes: lunch,
	})
	if err != nil {
		return err
	}

	session, err := f.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
		data.CurrentWorkLogID = &log.Id
	})
	if err != nil {
		return err
	}
	fc.Session = session

	fc.Reply("Correction recorded.")
	return f.goTo(ctx, fc, dialog.StateWorkLogDetails, false)
}

func (f *Flows) workLogDetailsEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentWorkLogID == nil {
		return apperror.Preconditionf("no work log selected")
	}

	log, workedHours, err := f.workLogs.GetDetails(ctx, actor, *fc.Session.Data.CurrentWorkLogID)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Work log %s\nIn: %s\n", log.Date.Format(shifttime.DateLayout), log.ActualStart.Format("15:04"))
	if log.ActualEnd != nil {
		fmt.Fprintf(&sb, "Out: %s\n", log.ActualEnd.Format("15:04"))
	} else {
		sb.WriteString("Out: still working\n")
	}
	fmt.Fprintf(&sb, "Lunch: %d min\n", log.LunchMinutes)
	if workedHours != nil {
		fmt.Fprintf(&sb, "Worked: %s\n", shifttime.FormatWorkHours(*workedHours))
	}
	if log.IsOverride {
		sb.WriteString("Manual correction\n")
	}

	buttons := [][]dto.Button{}
	if actor.CanManage() {
		buttons = append(buttons, []dto.Button{{
			Text:     "Edit",
			Callback: cb(dialog.StateWorkLogEdit, seg("log", log.Id)),
		}})
	}
	buttons = append(buttons, []dto.Button{{
		Text:     "Back",
		Callback: cb(dialog.StateEmployeeWorkLogs, seg("emp", log.EmployeeId)),
	}})

	fc.Reply(sb.String(), buttons...)
	return nil
}

func (f *Flows) workLogEditEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the new times as START END LUNCH, for example 09:00 17:30 60.")
	return nil
}

func (f *Flows) workLogEditInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentWorkLogID == nil {
		return apperror.Preconditionf("no work log selected")
	}
	workLogId := *fc.Session.Data.CurrentWorkLogID

	log, _, err := f.workLogs.GetDetails(ctx, actor, workLogId)
	if err != nil {
		return err
	}

	fields := strings.Fields(strings.TrimSpace(fc.Input))
	if len(fields) < 2 || len(fields) > 3 {
		fc.Reply("Send the new times as START END LUNCH, for example 09:00 17:30 60.")
		return nil
	}

	date := log.Date.Format(shifttime.DateLayout)
	start, err := shifttime.CombineDateTime(date, fields[0])
	if err != nil {
		fc.Reply("I could not read the start time. Use HH:MM, for example 09:00.")
		return nil
	}
	end, err := shifttime.CombineDateTime(date, fields[1])
	if err != nil {
		fc.Reply("I could not read the end time. Use HH:MM, for example 17:30.")
		return nil
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	patch := service.WorkLogPatch{ActualStart: &start, ActualEnd: &end}
	if len(fields) == 3 {
		lunch, err := strconv.Atoi(fields[2])
		if err != nil || lunch < 0 {
			fc.Reply("Lunch must be a number of minutes, for example 60.")
			return nil
		}
		patch.LunchMinutes = &lunch
	}

	if _, err := f.workLogs.Update(ctx, actor, workLogId, patch); err != nil {
		return err
	}

	fc.Reply("Work log updated.")
	return f.goTo(ctx, fc, dialog.StateWorkLogDetails, false)
}
