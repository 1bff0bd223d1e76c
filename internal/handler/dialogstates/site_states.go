package dialogstates

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/service"

	"github.com/google/uuid"
)

// schedulePattern matches "HH:MM-HH:MM <lunch minutes>", e.g. "09:00-17:30 60".
var schedulePattern = regexp.MustCompile(`^(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})(?:\s+(\d{1,3}))?$`)

func (f *Flows) registerSites(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateSitesList, dialog.Handlers{
		OnEnter: f.sitesListEnter,
	})
	registry.MustRegister(dialog.StateSiteCreateEnterName, dialog.Handlers{
		OnEnter: f.siteCreateEnterNameEnter,
		OnInput: f.siteCreateEnterNameInput,
	})
	registry.MustRegister(dialog.StateSiteCreateSchedule, dialog.Handlers{
		OnEnter: f.siteCreateScheduleEnter,
		OnInput: f.siteCreateScheduleInput,
	})
	registry.MustRegister(dialog.StateSiteDetails, dialog.Handlers{
		OnEnter: f.siteDetailsEnter,
	})
	registry.MustRegister(dialog.StateSiteEditSchedule, dialog.Handlers{
		OnEnter: f.siteEditScheduleEnter,
		OnInput: f.siteEditScheduleInput,
	})
	registry.MustRegister(dialog.StateSiteEditStatus, dialog.Handlers{
		OnEnter: f.siteEditStatusEnter,
	})
	registry.MustRegister(dialog.StateSiteEmployeesList, dialog.Handlers{
		OnEnter: f.siteEmployeesListEnter,
	})
	registry.MustRegister(dialog.StateSiteEmployeeOnboard, dialog.Handlers{
		OnEnter: f.siteEmployeeOnboardEnter,
		OnInput: f.siteEmployeeOnboardInput,
	})
}

func (f *Flows) sitesListEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	sites, err := f.sites.List(ctx, actor)
	if err != nil {
		return err
	}

	var buttons [][]dto.Button
	for _, site := range sites {
		buttons = append(buttons, []dto.Button{{
			Text:     site.Name,
			Callback: cb(dialog.StateSiteDetails, seg("site", site.Id)),
		}})
	}
	buttons = append(buttons, []dto.Button{
		{Text: "New site", Callback: cb(dialog.StateSiteCreateEnterName)},
		{Text: "Back", Callback: cb(menuStateFor(actor.Role))},
	})

	if len(sites) == 0 {
		fc.Reply("No sites yet.", buttons...)
	} else {
		fc.Reply("Your sites:", buttons...)
	}
	return nil
}

func (f *Flows) siteCreateEnterNameEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the name of the new site.")
	return nil
}

func (f *Flows) siteCreateEnterNameInput(ctx context.Context, fc *dialog.FlowContext) error {
	name := strings.TrimSpace(fc.Input)
	if name == "" {
		fc.Reply("The name cannot be empty. Send the name of the new site.")
		return nil
	}

	session, err := f.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
		data.SiteName = name
	})
	if err != nil {
		return err
	}
	fc.Session = session

	return f.goTo(ctx, fc, dialog.StateSiteCreateSchedule, false)
}

func (f *Flows) siteCreateScheduleEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the daily schedule as START-END LUNCH, for example 09:00-17:30 60.\nFor overnight sites the end may be earlier than the start, e.g. 16:00-01:30 30.")
	return nil
}

func parseSchedule(input string) (start, end string, lunch int, err error) {
	m := schedulePattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", "", 0, apperror.Preconditionf("schedule must look like 09:00-17:30 60")
	}
	lunch = 0
	if m[3] != "" {
		lunch, _ = strconv.Atoi(m[3])
	}
	return m[1], m[2], lunch, nil
}

func (f *Flows) siteCreateScheduleInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	start, end, lunch, err := parseSchedule(fc.Input)
	if err != nil {
		fc.Reply("I could not read that schedule. Send it as START-END LUNCH, for example 09:00-17:30 60.")
		return nil
	}

	site, err := f.sites.Create(ctx, actor, fc.Session.Data.SiteName, start, end, lunch)
	if err != nil {
		return err
	}

	session, err := f.engine.MergeData(ctx, fc.Session, func(data *entity.FlowData) {
		data.CurrentSiteID = &site.Id
		data.SiteName = ""
	})
	if err != nil {
		return err
	}
	fc.Session = session

	fc.Reply(fmt.Sprintf("Site %q created.", site.Name))
	return f.goTo(ctx, fc, dialog.StateSiteDetails, false)
}

func (f *Flows) siteDetailsEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	site, roster, err := f.sites.GetDetails(ctx, actor, siteId)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s\nSchedule: %s-%s, lunch %d min\nWorkers on roster: %d",
		site.Name, site.PlannedStart, site.PlannedEnd, site.LunchMinutes, len(roster))

	fc.Reply(text,
		[]dto.Button{
			{Text: "Shifts", Callback: cb(dialog.StateSiteShiftsList, seg("site", siteId))},
			{Text: "Workers", Callback: cb(dialog.StateSiteEmployeesList, seg("site", siteId))},
		},
		[]dto.Button{
			{Text: "Hours report", Callback: cb(dialog.StateShiftReport, seg("site", siteId))},
			{Text: "Edit schedule", Callback: cb(dialog.StateSiteEditSchedule, seg("site", siteId))},
		},
		[]dto.Button{
			{Text: "Deactivate", Callback: cb(dialog.StateSiteEditStatus, seg("site", siteId))},
			{Text: "Back", Callback: cb(dialog.StateSitesList)},
		},
	)
	return nil
}

func (f *Flows) siteEditScheduleEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the new schedule as START-END LUNCH, for example 09:00-17:30 60.\nExisting shifts keep their original times.")
	return nil
}

func (f *Flows) siteEditScheduleInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}

	start, end, lunch, err := parseSchedule(fc.Input)
	if err != nil {
		fc.Reply("I could not read that schedule. Send it as START-END LUNCH, for example 09:00-17:30 60.")
		return nil
	}

	if _, err := f.sites.Update(ctx, actor, *fc.Session.Data.CurrentSiteID, service.SitePatch{
		PlannedStart: &start,
		PlannedEnd:   &end,
		LunchMinutes: &lunch,
	}); err != nil {
		return err
	}

	fc.Reply("Schedule updated.")
	return f.goTo(ctx, fc, dialog.StateSiteDetails, false)
}

func (f *Flows) siteEditStatusEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	if err := f.sites.Deactivate(ctx, actor, siteId); err != nil {
		return err
	}

	fc.Reply("Site deactivated. It no longer appears in the site list.", []dto.Button{
		{Text: "Back to sites", Callback: cb(dialog.StateSitesList)},
	})
	return nil
}

func (f *Flows) siteEmployeesListEnter(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	site, roster, err := f.sites.GetDetails(ctx, actor, siteId)
	if err != nil {
		return err
	}

	var buttons [][]dto.Button
	if len(roster) > 0 {
		ids := make([]uuid.UUID, 0, len(roster))
		for _, a := range roster {
			ids = append(ids, a.EmployeeId)
		}
		employees, err := f.employees.ListByIds(ctx, actor, ids)
		if err != nil {
			return err
		}
		for _, e := range employees {
			buttons = append(buttons, []dto.Button{{
				Text:     e.FullName,
				Callback: cb(dialog.StateEmployeeDetails, seg("emp", e.Id)),
			}})
		}
	}
	buttons = append(buttons, []dto.Button{
		{Text: "Add worker", Callback: cb(dialog.StateSiteEmployeeOnboard, seg("site", siteId))},
		{Text: "Back", Callback: cb(dialog.StateSiteDetails, seg("site", siteId))},
	})

	fc.Reply(fmt.Sprintf("Roster of %s:", site.Name), buttons...)
	return nil
}

func (f *Flows) siteEmployeeOnboardEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the full name of the worker to add.")
	return nil
}

func (f *Flows) siteEmployeeOnboardInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	name := strings.TrimSpace(fc.Input)
	if name == "" {
		fc.Reply("The name cannot be empty. Send the full name of the worker.")
		return nil
	}

	employee, err := f.employees.Create(ctx, actor, name, entity.RoleEmployee)
	if err != nil {
		return err
	}
	if _, err := f.sites.AssignEmployee(ctx, actor, siteId, employee.Id); err != nil {
		return err
	}
	code, err := f.employees.IssueRefCode(ctx, actor, employee.Id)
	if err != nil {
		return err
	}

	fc.Reply(fmt.Sprintf("%s added to the roster.\nRegistration code: %s\nShare it with the worker so they can link their chat.", employee.FullName, code))
	return f.goTo(ctx, fc, dialog.StateSiteEmployeesList, false)
}
