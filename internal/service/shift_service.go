package service

import (
	"context"
	"errors"
	"time"

	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/pkg/shifttime"

	"github.com/google/uuid"
)

// ConfirmStartOptions carries the optional parameters of ConfirmStart.
type ConfirmStartOptions struct {
	At                *time.Time
	AbsentEmployeeIds []uuid.UUID
}

type IShiftService interface {
	// CreateForDate instantiates a site's shift for one calendar date.
	// Idempotent: a second call for the same (site, date) returns the
	// existing shift with created=false, never an error.
	CreateForDate(ctx context.Context, actor entity.Actor, siteId uuid.UUID, date string) (*entity.Shift, bool, error)
	ConfirmStart(ctx context.Context, actor entity.Actor, shiftId uuid.UUID, opts ConfirmStartOptions) (*entity.Shift, []*entity.WorkLog, error)
	AddEmployee(ctx context.Context, actor entity.Actor, shiftId, employeeId uuid.UUID, at *time.Time) (*entity.WorkLog, error)
	RemoveEmployee(ctx context.Context, actor entity.Actor, workLogId uuid.UUID, at *time.Time) (*entity.WorkLog, error)
	ConfirmEnd(ctx context.Context, actor entity.Actor, shiftId uuid.UUID, at *time.Time) (*entity.Shift, []*entity.WorkLog, error)
	GetDetails(ctx context.Context, actor entity.Actor, shiftId uuid.UUID) (*entity.Shift, []*entity.WorkLog, error)
	ListBySite(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) ([]*entity.Shift, error)
}

type shiftService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewShiftService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) IShiftService {
	return &shiftService{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

func (s *shiftService) CreateForDate(ctx context.Context, actor entity.Actor, siteId uuid.UUID, date string) (*entity.Shift, bool, error) {
	if !actor.CanManage() {
		return nil, false, apperror.Unauthorizedf("create shift")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return nil, false, err
	}
	if site == nil {
		return nil, false, apperror.NotFoundf("site %s", siteId)
	}

	plannedStart, plannedEnd, err := shifttime.PlannedWindow(date, site.PlannedStart, site.PlannedEnd)
	if err != nil {
		return nil, false, err
	}

	shift := entity.Shift{
		Id:           uuid.New(),
		SiteId:       siteId,
		Date:         shifttime.ShiftDate(plannedStart),
		PlannedStart: plannedStart,
		PlannedEnd:   plannedEnd,
		LunchMinutes: site.LunchMinutes,
		Status:       entity.ShiftPlanned,
		CreatedAt:    time.Now(),
	}

	if err := uow.ShiftRepository().Create(ctx, &shift); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			// Already exists for this (site, date): hand back the existing
			// row so a double-tapped button stays a no-op.
			existing, ferr := uow.ShiftRepository().FindOne(ctx,
				specification.BySite{SiteID: siteId},
				specification.ByDate{Date: shift.Date},
			)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityShift,
		EntityId:   shift.Id,
		Action:     constant.ActionCreate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"siteId": siteId.String(),
			"date":   date,
		},
	}); err != nil {
		return nil, false, err
	}

	return &shift, true, nil
}

func (s *shiftService) ConfirmStart(ctx context.Context, actor entity.Actor, shiftId uuid.UUID, opts ConfirmStartOptions) (*entity.Shift, []*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, nil, apperror.Unauthorizedf("confirm shift start")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The status flip and the per-worker clock-ins must land together: a
	// crash mid-loop must never leave a started shift with half its crew
	// silently missing.
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	shift, err := uow.ShiftRepository().FindOne(ctx, specification.ByID{ID: shiftId})
	if err != nil {
		return nil, nil, err
	}
	if shift == nil {
		return nil, nil, apperror.NotFoundf("shift %s", shiftId)
	}
	if shift.Status != entity.ShiftPlanned {
		return nil, nil, apperror.Preconditionf("shift %s is %s, expected planned", shiftId, shift.Status)
	}

	at := time.Now()
	if opts.At != nil {
		at = *opts.At
	}

	shift.Status = entity.ShiftStarted
	shift.StartedAt = &at
	shift.ConfirmedBy = &actor.EmployeeId
	if err := uow.ShiftRepository().Update(ctx, shift); err != nil {
		return nil, nil, err
	}

	roster, err := uow.AssignmentRepository().FindActiveBySite(ctx, shift.SiteId)
	if err != nil {
		return nil, nil, err
	}

	absent := make(map[uuid.UUID]struct{}, len(opts.AbsentEmployeeIds))
	for _, id := range opts.AbsentEmployeeIds {
		absent[id] = struct{}{}
	}

	logDate := shifttime.ShiftDate(at)
	workLogs := make([]*entity.WorkLog, 0, len(roster))
	for _, assignment := range roster {
		if _, skip := absent[assignment.EmployeeId]; skip {
			// Absent workers get no log now; AddEmployee covers late arrivals.
			continue
		}
		log := entity.WorkLog{
			Id:           uuid.New(),
			EmployeeId:   assignment.EmployeeId,
			SiteId:       shift.SiteId,
			ShiftId:      &shift.Id,
			Date:         logDate,
			ActualStart:  at,
			LunchMinutes: shift.LunchMinutes,
			CreatedBy:    actor.EmployeeId,
			CreatedAt:    time.Now(),
		}
		if err := uow.WorkLogRepository().Create(ctx, &log); err != nil {
			return nil, nil, err
		}
		workLogs = append(workLogs, &log)
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityShift,
		EntityId:   shift.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field":             "status",
			"oldValue":          entity.ShiftPlanned,
			"newValue":          entity.ShiftStarted,
			"workLogsCount":     len(workLogs),
			"absentEmployeeIds": opts.AbsentEmployeeIds,
		},
	}); err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return shift, workLogs, nil
}

func (s *shiftService) AddEmployee(ctx context.Context, actor entity.Actor, shiftId, employeeId uuid.UUID, at *time.Time) (*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("add employee to shift")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	shift, err := uow.ShiftRepository().FindOne(ctx, specification.ByID{ID: shiftId})
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NotFoundf("shift %s", shiftId)
	}
	if shift.Status != entity.ShiftStarted {
		return nil, apperror.Preconditionf("shift %s is %s, expected started", shiftId, shift.Status)
	}

	existing, err := uow.WorkLogRepository().FindOne(ctx,
		specification.ByShift{ShiftID: shiftId},
		specification.ByEmployee{EmployeeID: employeeId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// A double-clicked late arrival must not clock in twice.
		return nil, apperror.Preconditionf("employee %s already has a work log for shift %s", employeeId, shiftId)
	}

	startedAt := time.Now()
	if at != nil {
		startedAt = *at
	}

	log := entity.WorkLog{
		Id:           uuid.New(),
		EmployeeId:   employeeId,
		SiteId:       shift.SiteId,
		ShiftId:      &shift.Id,
		Date:         shifttime.ShiftDate(startedAt),
		ActualStart:  startedAt,
		LunchMinutes: shift.LunchMinutes,
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
			"shiftId":     shiftId.String(),
			"employeeId":  employeeId.String(),
			"lateArrival": true,
		},
	}); err != nil {
		return nil, err
	}

	return &log, nil
}

func (s *shiftService) RemoveEmployee(ctx context.Context, actor entity.Actor, workLogId uuid.UUID, at *time.Time) (*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("remove employee from shift")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	log, err := uow.WorkLogRepository().FindOne(ctx, specification.ByID{ID: workLogId})
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, apperror.NotFoundf("work log %s", workLogId)
	}
	if log.ShiftId == nil {
		return nil, apperror.Preconditionf("work log %s is an override, not shift-derived", workLogId)
	}

	shift, err := uow.ShiftRepository().FindOne(ctx, specification.ByID{ID: *log.ShiftId})
	if err != nil {
		return nil, err
	}
	if shift == nil || shift.Status != entity.ShiftStarted {
		return nil, apperror.Preconditionf("owning shift is not started")
	}

	endedAt := time.Now()
	if at != nil {
		endedAt = *at
	}

	// Early leave: only this one log closes, the shift stays started.
	log.ActualEnd = &endedAt
	log.UpdatedBy = &actor.EmployeeId
	if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityWorkLog,
		EntityId:   log.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field":      "actualEnd",
			"newValue":   endedAt,
			"earlyLeave": true,
		},
	}); err != nil {
		return nil, err
	}

	return log, nil
}

func (s *shiftService) ConfirmEnd(ctx context.Context, actor entity.Actor, shiftId uuid.UUID, at *time.Time) (*entity.Shift, []*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, nil, apperror.Unauthorizedf("confirm shift end")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	shift, err := uow.ShiftRepository().FindOne(ctx, specification.ByID{ID: shiftId})
	if err != nil {
		return nil, nil, err
	}
	if shift == nil {
		return nil, nil, apperror.NotFoundf("shift %s", shiftId)
	}
	if shift.Status != entity.ShiftStarted {
		return nil, nil, apperror.Preconditionf("shift %s is %s, expected started", shiftId, shift.Status)
	}

	logs, err := uow.WorkLogRepository().FindAll(ctx, specification.ByShift{ShiftID: shiftId})
	if err != nil {
		return nil, nil, err
	}
	if len(logs) == 0 {
		return nil, nil, apperror.Preconditionf("no work logs found for shift %s", shiftId)
	}

	endedAt := time.Now()
	if at != nil {
		endedAt = *at
	}

	shift.Status = entity.ShiftClosed
	shift.ClosedAt = &endedAt
	shift.ConfirmedBy = &actor.EmployeeId
	if err := uow.ShiftRepository().Update(ctx, shift); err != nil {
		return nil, nil, err
	}

	closed := 0
	for _, log := range logs {
		if log.ActualEnd != nil {
			// Already closed via early leave; leave it untouched.
			continue
		}
		log.ActualEnd = &endedAt
		log.UpdatedBy = &actor.EmployeeId
		if err := uow.WorkLogRepository().Update(ctx, log); err != nil {
			return nil, nil, err
		}
		closed++
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityShift,
		EntityId:   shift.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field":          "status",
			"oldValue":       entity.ShiftStarted,
			"newValue":       entity.ShiftClosed,
			"closedWorkLogs": closed,
		},
	}); err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return shift, logs, nil
}

func (s *shiftService) GetDetails(ctx context.Context, actor entity.Actor, shiftId uuid.UUID) (*entity.Shift, []*entity.WorkLog, error) {
	if !actor.CanManage() {
		return nil, nil, apperror.Unauthorizedf("view shift details")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	shift, err := uow.ShiftRepository().FindOne(ctx, specification.ByID{ID: shiftId})
	if err != nil {
		return nil, nil, err
	}
	if shift == nil {
		return nil, nil, apperror.NotFoundf("shift %s", shiftId)
	}

	logs, err := uow.WorkLogRepository().FindAll(ctx, specification.ByShift{ShiftID: shiftId})
	if err != nil {
		return nil, nil, err
	}

	return shift, logs, nil
}

func (s *shiftService) ListBySite(ctx context.Context, actor entity.Actor, siteId uuid.UUID, from, to time.Time) ([]*entity.Shift, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list shifts")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ShiftRepository().FindAll(ctx,
		specification.BySite{SiteID: siteId},
		specification.ByDateRange{From: from, To: to},
		specification.OrderBy{Field: "date", Desc: true},
	)
}
