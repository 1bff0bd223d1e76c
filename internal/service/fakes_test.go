package service

import (
	"context"
	"strings"
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/contract"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/pkg/shifttime"

	"github.com/google/uuid"
)

// The fakes below back the service tests with in-memory state. They
// interpret the same specification values the gorm repositories translate
// to SQL, so the services stay oblivious to which implementation they run
// against.

type specFilter struct {
	id        *uuid.UUID
	ids       []uuid.UUID
	siteId    *uuid.UUID
	employee  *uuid.UUID
	shift     *uuid.UUID
	manager   *uuid.UUID
	date      *time.Time
	from, to  *time.Time
	active    bool
	stillOpen bool
}

func parseSpecs(specs []specification.Specification) specFilter {
	var f specFilter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.ByIDs:
			f.ids = v.IDs
		case specification.BySite:
			id := v.SiteID
			f.siteId = &id
		case specification.ByEmployee:
			id := v.EmployeeID
			f.employee = &id
		case specification.ByShift:
			id := v.ShiftID
			f.shift = &id
		case specification.ByManager:
			id := v.ManagerID
			f.manager = &id
		case specification.ByDate:
			d := v.Date
			f.date = &d
		case specification.ByDateRange:
			from, to := v.From, v.To
			f.from, f.to = &from, &to
		case specification.ActiveOnly:
			f.active = true
		case specification.StillOpen:
			f.stillOpen = true
		}
	}
	return f
}

func sameDate(a, b time.Time) bool {
	return a.Format(shifttime.DateLayout) == b.Format(shifttime.DateLayout)
}

func inRange(d time.Time, from, to *time.Time) bool {
	day := d.Format(shifttime.DateLayout)
	if from != nil && day < from.Format(shifttime.DateLayout) {
		return false
	}
	if to != nil && day > to.Format(shifttime.DateLayout) {
		return false
	}
	return true
}

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeShiftRepo enforces the (site, date) uniqueness the real storage
// layer guarantees with a unique index.
type fakeShiftRepo struct {
	shifts map[uuid.UUID]*entity.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[uuid.UUID]*entity.Shift{}}
}

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	for _, existing := range r.shifts {
		if existing.SiteId == shift.SiteId && sameDate(existing.Date, shift.Date) {
			return apperror.Duplicatef("shift for site and date")
		}
	}
	copied := *shift
	r.shifts[shift.Id] = &copied
	return nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	copied := *shift
	r.shifts[shift.Id] = &copied
	return nil
}

func (r *fakeShiftRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shift, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeShiftRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shift, error) {
	f := parseSpecs(specs)
	var out []*entity.Shift
	for _, shift := range r.shifts {
		if f.id != nil && shift.Id != *f.id {
			continue
		}
		if f.siteId != nil && shift.SiteId != *f.siteId {
			continue
		}
		if f.date != nil && !sameDate(shift.Date, *f.date) {
			continue
		}
		if !inRange(shift.Date, f.from, f.to) {
			continue
		}
		copied := *shift
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeShiftRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// fakeWorkLogRepo enforces the (employee, shift) uniqueness for
// shift-derived logs; overrides carry a nil shift id and bypass it.
type fakeWorkLogRepo struct {
	logs map[uuid.UUID]*entity.WorkLog
}

func newFakeWorkLogRepo() *fakeWorkLogRepo {
	return &fakeWorkLogRepo{logs: map[uuid.UUID]*entity.WorkLog{}}
}

func (r *fakeWorkLogRepo) Create(ctx context.Context, log *entity.WorkLog) error {
	if log.ShiftId != nil {
		for _, existing := range r.logs {
			if existing.ShiftId != nil && *existing.ShiftId == *log.ShiftId && existing.EmployeeId == log.EmployeeId {
				return apperror.Duplicatef("work log for employee and shift")
			}
		}
	}
	copied := *log
	r.logs[log.Id] = &copied
	return nil
}

func (r *fakeWorkLogRepo) Update(ctx context.Context, log *entity.WorkLog) error {
	copied := *log
	r.logs[log.Id] = &copied
	return nil
}

func (r *fakeWorkLogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkLog, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeWorkLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkLog, error) {
	f := parseSpecs(specs)
	var out []*entity.WorkLog
	for _, log := range r.logs {
		if f.id != nil && log.Id != *f.id {
			continue
		}
		if f.siteId != nil && log.SiteId != *f.siteId {
			continue
		}
		if f.employee != nil && log.EmployeeId != *f.employee {
			continue
		}
		if f.shift != nil && (log.ShiftId == nil || *log.ShiftId != *f.shift) {
			continue
		}
		if f.stillOpen && log.ActualEnd != nil {
			continue
		}
		if !inRange(log.Date, f.from, f.to) {
			continue
		}
		copied := *log
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeWorkLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeSiteRepo struct {
	sites map[uuid.UUID]*entity.Site
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: map[uuid.UUID]*entity.Site{}}
}

func (r *fakeSiteRepo) Create(ctx context.Context, site *entity.Site) error {
	copied := *site
	r.sites[site.Id] = &copied
	return nil
}

func (r *fakeSiteRepo) Update(ctx context.Context, site *entity.Site) error {
	copied := *site
	r.sites[site.Id] = &copied
	return nil
}

func (r *fakeSiteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Site, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeSiteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Site, error) {
	f := parseSpecs(specs)
	var out []*entity.Site
	for _, site := range r.sites {
		if f.id != nil && site.Id != *f.id {
			continue
		}
		if f.active && !site.IsActive {
			continue
		}
		if f.manager != nil && (site.ManagerId == nil || *site.ManagerId != *f.manager) {
			continue
		}
		copied := *site
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSiteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeAssignmentRepo struct {
	assignments map[uuid.UUID]*entity.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[uuid.UUID]*entity.Assignment{}}
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *entity.Assignment) error {
	copied := *assignment
	r.assignments[assignment.Id] = &copied
	return nil
}

func (r *fakeAssignmentRepo) Update(ctx context.Context, assignment *entity.Assignment) error {
	copied := *assignment
	r.assignments[assignment.Id] = &copied
	return nil
}

func (r *fakeAssignmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assignment, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeAssignmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assignment, error) {
	f := parseSpecs(specs)
	var out []*entity.Assignment
	for _, a := range r.assignments {
		if f.siteId != nil && a.SiteId != *f.siteId {
			continue
		}
		if f.employee != nil && a.EmployeeId != *f.employee {
			continue
		}
		if f.active && !a.IsActive {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) FindActiveBySite(ctx context.Context, siteId uuid.UUID) ([]*entity.Assignment, error) {
	return r.FindAll(ctx, specification.BySite{SiteID: siteId}, specification.ActiveOnly{})
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*entity.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[uuid.UUID]*entity.Employee{}}
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	copied := *employee
	r.employees[employee.Id] = &copied
	return nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, employee *entity.Employee) error {
	copied := *employee
	r.employees[employee.Id] = &copied
	return nil
}

func (r *fakeEmployeeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Employee, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeEmployeeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error) {
	f := parseSpecs(specs)
	var out []*entity.Employee
	for _, e := range r.employees {
		if f.id != nil && e.Id != *f.id {
			continue
		}
		if len(f.ids) > 0 && !containsId(f.ids, e.Id) {
			continue
		}
		if f.active && !e.IsActive {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) FindByChatUser(ctx context.Context, chatUserId int64) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.ChatUserId != nil && *e.ChatUserId == chatUserId {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) FindByRefCode(ctx context.Context, refCode string) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.RefCode != nil && strings.EqualFold(*e.RefCode, refCode) {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
}

func (r *fakeAuditRepo) Log(ctx context.Context, entry *entity.AuditEntry) error {
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEntry, error) {
	return r.entries, nil
}

type fakeSessionRepo struct {
	sessions map[int64]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[int64]*entity.Session{}}
}

func (r *fakeSessionRepo) GetByChatUser(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	if s, ok := r.sessions[chatUserId]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) Create(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	s := &entity.Session{Id: uuid.New(), ChatUserId: chatUserId, CreatedAt: time.Now()}
	r.sessions[chatUserId] = s
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) UpdateState(ctx context.Context, id uuid.UUID, state *string) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.State = state
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) UpdateData(ctx context.Context, id uuid.UUID, data entity.FlowData) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.Data = data
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) Close(ctx context.Context, id uuid.UUID) error {
	for key, s := range r.sessions {
		if s.Id == id {
			delete(r.sessions, key)
			return nil
		}
	}
	return nil
}

// fakeUnitOfWork hands out the shared fake repositories and records
// transaction boundaries.
type fakeUnitOfWork struct {
	shifts      *fakeShiftRepo
	workLogs    *fakeWorkLogRepo
	sites       *fakeSiteRepo
	assignments *fakeAssignmentRepo
	employees   *fakeEmployeeRepo
	audits      *fakeAuditRepo
	sessions    *fakeSessionRepo

	begins    int
	commits   int
	rollbacks int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		shifts:      newFakeShiftRepo(),
		workLogs:    newFakeWorkLogRepo(),
		sites:       newFakeSiteRepo(),
		assignments: newFakeAssignmentRepo(),
		employees:   newFakeEmployeeRepo(),
		audits:      &fakeAuditRepo{},
		sessions:    newFakeSessionRepo(),
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.commits++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository       { return u.sessions }
func (u *fakeUnitOfWork) EmployeeRepository() contract.EmployeeRepository     { return u.employees }
func (u *fakeUnitOfWork) SiteRepository() contract.SiteRepository             { return u.sites }
func (u *fakeUnitOfWork) AssignmentRepository() contract.AssignmentRepository { return u.assignments }
func (u *fakeUnitOfWork) ShiftRepository() contract.ShiftRepository           { return u.shifts }
func (u *fakeUnitOfWork) WorkLogRepository() contract.WorkLogRepository       { return u.workLogs }
func (u *fakeUnitOfWork) AuditRepository() contract.AuditRepository           { return u.audits }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// noopLogger satisfies logger.ILogger for tests that do not assert on logs.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// noopAudit satisfies IAuditService where the trail is not under test.
type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, uow unitofwork.UnitOfWork, entry *entity.AuditEntry) error {
	return nil
}
