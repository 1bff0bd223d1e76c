package service

import (
	"context"
	"time"

	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/pkg/shifttime"

	"github.com/google/uuid"
)

// WorkLogPatch carries the fields of a partial work-log update. Nil fields
// stay untouched.
type WorkLogPatch struct {
	ActualStart  *time.Time
	ActualEnd    *time.Time
	LunchMinutes *int
}

type IWorkLogService interface {
	// CreateOverride records a standalone manual correction. Overrides carry
	// no shift reference, so the per-shift uniqueness rule does not apply and
	// repeated corrections for the same employee and date are allowed.
	CreateOverride(ctx context.Context, actor entity.Actor, req dto.CreateOverrideRequest) (*entity.WorkLog, error)
	Update(ctx context.Context, actor entity.Actor, workLogId uuid.UUID, patch WorkLogPatch) (*entity.WorkLog, error)
	GetDetails(ctx context.Context, actor entity.Actor, workLogId uuid.UUID) (*entity.WorkLog, *float64, error)
	ListByEmployee(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, from, to time.Time) ([]*entity.WorkLog, error)
	ListBySite(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) ([]*entity.WorkLog, error)
}

type workLogService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewWorkLogService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) IWorkLogService {
	return &workLogService{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

func (s *workLogService) CreateOverride(ctx context.Context, actor entity.Actor, req dto.CreateOverrideRequest) (*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("create work log override")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: req.EmployeeId})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("employee %s", req.EmployeeId)
	}

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: req.SiteId})
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NotFoundf("site %s", req.SiteId)
	}

	actualStart, err := shifttime.CombineDateTime(req.Date, req.ActualStart)
	if err != nil {
		return nil, apperror.Preconditionf("invalid start time %q", req.ActualStart)
	}
	actualEnd, err := shifttime.CombineDateTime(req.Date, req.ActualEnd)
	if err != nil {
		return nil, apperror.Preconditionf("invalid end time %q", req.ActualEnd)
	}
	// Overnight correction: the end wall clock belongs to the next day.
	if !actualEnd.After(actualStart) {
		actualEnd = actualEnd.AddDate(0, 0, 1)
	}

	log := entity.WorkLog{
		Id:           uuid.New(),
		EmployeeId:   req.EmployeeId,
		SiteId:       req.SiteId,
		ShiftId:      nil,
		Date:         shifttime.ShiftDate(actualStart),
		ActualStart:  actualStart,
		ActualEnd:    &actualEnd,
		LunchMinutes: req.LunchMinutes,
		IsOverride:   true,
		CreatedBy:    actor.EmployeeId,
		CreatedAt:    time.Now(),
	}
	if err := uow.WorkLogRepository().Create(ctx, &log); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityWorkLog,
		EntityId:   log.Id,
		Action:     constant.ActionCreate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"employeeId": req.EmployeeId.String(),
			"siteId":     req.SiteId.String(),
			"date":       req.Date,
			"override":   true,
		},
	}); err != nil {
		return nil, err
	}

	return &log, nil
}

func (s *workLogService) Update(ctx context.Context, actor entity.Actor, workLogId uuid.UUID, patch WorkLogPatch) (*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("update work log")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	log, err := uow.WorkLogRepository().FindOne(ctx, specification.ByID{ID: workLogId})
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, apperror.NotFoundf("work log %s", workLogId)
	}

	changes := map[string]interface{}{}
	if patch.ActualStart != nil {
		changes["actualStart"] = map[string]interface{}{"old": log.ActualStart, "new": *patch.ActualStart}
		log.ActualStart = *patch.ActualStart
		log.Date = shifttime.ShiftDate(log.ActualStart)
	}
	if patch.ActualEnd != nil {
		changes["actualEnd"] = map[string]interface{}{"old": log.ActualEnd, "new": *patch.ActualEnd}
		log.ActualEnd = patch.ActualEnd
	}
	if patch.LunchMinutes != nil {
		if *patch.LunchMinutes < 0 {
			return nil, apperror.Preconditionf("lunch minutes must not be negative")
		}
		changes["lunchMinutes"] = map[string]interface{}{"old": log.LunchMinutes, "new": *patch.LunchMinutes}
		log.LunchMinutes = *patch.LunchMinutes
	}
	if len(changes) == 0 {
		return log, nil
	}

	log.UpdatedBy = &actor.EmployeeId
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityWorkLog,
		EntityId:   log.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata:   changes,
	}); err != nil {
		return nil, err
	}

	return log, nil
}

func (s *workLogService) GetDetails(ctx context.Context, actor entity.Actor, workLogId uuid.UUID) (*entity.WorkLog, *float64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	log, err := uow.WorkLogRepository().FindOne(ctx, specification.ByID{ID: workLogId})
	if err != nil {
		return nil, nil, err
	}
	if log == nil {
		return nil, nil, apperror.NotFoundf("work log %s", workLogId)
	}
	if log.EmployeeId != actor.EmployeeId && !actor.CanManage() {
		return nil, nil, apperror.Unauthorizedf("view work log of another employee")
	}

	// Worked hours are derivable only once the log is closed.
	var workedHours *float64
	if log.ActualEnd != nil {
		hours := shifttime.CalculateWorkHours(log.ActualStart, *log.ActualEnd, log.LunchMinutes)
		workedHours = &hours
	}

	return log, workedHours, nil
}

func (s *workLogService) ListByEmployee(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, from, to time.Time) ([]*entity.WorkLog, error) {
	// Workers may browse their own attendance.
	if actor.EmployeeId != employeeId && !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list work logs of another employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WorkLogRepository().FindAll(ctx,
		specification.ByEmployee{EmployeeID: employeeId},
		specification.ByDateRange{From: from, To: to},
		specification.OrderBy{Field: "date", Desc: true},
	)
}

func (s *workLogService) ListBySite(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) ([]*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list work logs")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WorkLogRepository().FindAll(ctx,
		specification.BySite{SiteID: siteId},
		specification.ByDateRange{From: from, To: to},
		specification.OrderBy{Field: "date", Desc: true},
	)
}
