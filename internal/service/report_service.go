package service

import (
	"context"
	"sort"
	"time"

	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/pkg/shifttime"

	"github.com/google/uuid"
)

type IReportService interface {
	// SiteHours aggregates worked hours per employee for one site over an
	// inclusive date range. Open logs (no actual end yet) are skipped, and a
	// day with several logs counts once toward DaysWorked.
	SiteHours(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) (*dto.HoursReportResponse, error)
	// EmployeeHours aggregates one employee's worked hours across all sites.
	EmployeeHours(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, from, to time.Time) (*dto.HoursReportRow, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReportService(uowFactory unitofwork.RepositoryFactory) IReportService {
	return &reportService{
		uowFactory: uowFactory,
	}
}

func (s *reportService) SiteHours(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) (*dto.HoursReportResponse, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("view hours report")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NotFoundf("site %s", siteId)
	}

	logs, err := uow.WorkLogRepository().FindAll(ctx,
		specification.BySite{SiteID: siteId},
		specification.ByDateRange{From: from, To: to},
	)
	if err != nil {
		return nil, err
	}

	type acc struct {
		hours float64
		days  map[string]struct{}
	}
	byEmployee := map[uuid.UUID]*acc{}
	for _, log := range logs {
		if log.ActualEnd == nil {
			continue
		}
		a := byEmployee[log.EmployeeId]
		if a == nil {
			a = &acc{days: map[string]struct{}{}}
			byEmployee[log.EmployeeId] = a
		}
		a.hours += shifttime.CalculateWorkHours(log.ActualStart, *log.ActualEnd, log.LunchMinutes)
		a.days[log.Date.Format(shifttime.DateLayout)] = struct{}{}
	}

	ids := make([]uuid.UUID, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		employees, err := uow.EmployeeRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			names[e.Id] = e.FullName
		}
	}

	rows := make([]dto.HoursReportRow, 0, len(byEmployee))
	for id, a := range byEmployee {
		rows = append(rows, dto.HoursReportRow{
			EmployeeId:   id,
			EmployeeName: names[id],
			TotalHours:   a.hours,
			DaysWorked:   len(a.days),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	return &dto.HoursReportResponse{
		SiteId: siteId,
		From:   from.Format(shifttime.DateLayout),
		To:     to.Format(shifttime.DateLayout),
		Rows:   rows,
	}, nil
}

func (s *reportService) EmployeeHours(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, from, to time.Time) (*dto.HoursReportRow, error) {
	// Workers may look at their own totals; everything else needs a manager.
	if actor.EmployeeId != employeeId && !actor.CanManage() {
		return nil, apperror.Unauthorizedf("view hours of another employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("employee %s", employeeId)
	}

	logs, err := uow.WorkLogRepository().FindAll(ctx,
		specification.ByEmployee{EmployeeID: employeeId},
		specification.ByDateRange{From: from, To: to},
	)
	if err != nil {
		return nil, err
	}

	total := 0.0
	days := map[string]struct{}{}
	for _, log := range logs {
		if log.ActualEnd == nil {
			continue
		}
		total += shifttime.CalculateWorkHours(log.ActualStart, *log.ActualEnd, log.LunchMinutes)
		days[log.Date.Format(shifttime.DateLayout)] = struct{}{}
	}

	return &dto.HoursReportRow{
		EmployeeId:   employeeId,
		EmployeeName: employee.FullName,
		TotalHours:   total,
		DaysWorked:   len(days),
	}, nil
}
