package dialogstates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/pkg/shifttime"
)

func (f *Flows) registerReports(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateShiftReport, dialog.Handlers{
		OnEnter: f.shiftReportEnter,
		OnInput: f.shiftReportInput,
	})
}

func (f *Flows) shiftReportEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Send the report period as FROM TO, for example 2026-08-01 2026-08-31, or 'month' for the current month.")
	return nil
}

func (f *Flows) shiftReportInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}
	if fc.Session.Data.CurrentSiteID == nil {
		return apperror.Preconditionf("no site selected")
	}
	siteId := *fc.Session.Data.CurrentSiteID

	var from, to time.Time
	input := strings.ToLower(strings.TrimSpace(fc.Input))
	if input == "month" {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = now
	} else {
		fields := strings.Fields(input)
		if len(fields) != 2 {
			fc.Reply("Send the period as FROM TO, for example 2026-08-01 2026-08-31.")
			return nil
		}
		from, err = time.Parse(shifttime.DateLayout, fields[0])
		if err != nil {
			fc.Reply("I could not read the start date. Use the form 2026-08-01.")
			return nil
		}
		to, err = time.Parse(shifttime.DateLayout, fields[1])
		if err != nil {
			fc.Reply("I could not read the end date. Use the form 2026-08-31.")
			return nil
		}
		if to.Before(from) {
			fc.Reply("The end date is before the start date.")
			return nil
		}
	}

	report, err := f.reports.SiteHours(ctx, actor, siteId, from, to)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hours %s to %s:\n", report.From, report.To)
	if len(report.Rows) == 0 {
		sb.WriteString("No completed work logs in this period.\n")
	}
	for _, row := range report.Rows {
		fmt.Fprintf(&sb, "%s: %s over %d days\n",
			row.EmployeeName, shifttime.FormatWorkHours(row.TotalHours), row.DaysWorked)
	}

	fc.Reply(sb.String(), []dto.Button{
		{Text: "Back", Callback: cb(dialog.StateSiteDetails, seg("site", siteId))},
	})
	return nil
}
