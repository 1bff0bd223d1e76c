package service

import (
	"context"
	"regexp"
	"time"

	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// SitePatch carries the fields of a partial site update. Nil fields stay
// untouched.
type SitePatch struct {
	Name         *string
	ManagerId    *uuid.UUID
	PlannedStart *string
	PlannedEnd   *string
	LunchMinutes *int
}

type ISiteService interface {
	Create(ctx context.Context, actor entity.Actor, name, plannedStart, plannedEnd string, lunchMinutes int) (*entity.Site, error)
	Update(ctx context.Context, actor entity.Actor, siteId uuid.UUID, patch SitePatch) (*entity.Site, error)
	Deactivate(ctx context.Context, actor entity.Actor, siteId uuid.UUID) error
	GetDetails(ctx context.Context, actor entity.Actor, siteId uuid.UUID) (*entity.Site, []*entity.Assignment, error)
	List(ctx context.Context, actor entity.Actor) ([]*entity.Site, error)
	AssignEmployee(ctx context.Context, actor entity.Actor, siteId, employeeId uuid.UUID) (*entity.Assignment, error)
	UnassignEmployee(ctx context.Context, actor entity.Actor, siteId, employeeId uuid.UUID) error
}

type siteService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewSiteService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) ISiteService {
	return &siteService{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

func validateSchedule(plannedStart, plannedEnd string, lunchMinutes int) error {
	if !clockPattern.MatchString(plannedStart) {
		return apperror.Preconditionf("planned start %q is not a HH:MM wall clock", plannedStart)
	}
	if !clockPattern.MatchString(plannedEnd) {
		return apperror.Preconditionf("planned end %q is not a HH:MM wall clock", plannedEnd)
	}
	if lunchMinutes < 0 {
		return apperror.Preconditionf("lunch minutes must not be negative")
	}
	return nil
}

func (s *siteService) Create(ctx context.Context, actor entity.Actor, name, plannedStart, plannedEnd string, lunchMinutes int) (*entity.Site, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("create site")
	}
	if name == "" {
		return nil, apperror.Preconditionf("site name must not be empty")
	}
	if err := validateSchedule(plannedStart, plannedEnd, lunchMinutes); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site := entity.Site{
		Id:           uuid.New(),
		Name:         name,
		ManagerId:    &actor.EmployeeId,
		PlannedStart: plannedStart,
		PlannedEnd:   plannedEnd,
		LunchMinutes: lunchMinutes,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uow.SiteRepository().Create(ctx, &site); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntitySite,
		EntityId:   site.Id,
		Action:     constant.ActionCreate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"name":         name,
			"plannedStart": plannedStart,
			"plannedEnd":   plannedEnd,
			"lunchMinutes": lunchMinutes,
		},
	}); err != nil {
		return nil, err
	}

	return &site, nil
}

func (s *siteService) Update(ctx context.Context, actor entity.Actor, siteId uuid.UUID, patch SitePatch) (*entity.Site, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("update site")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NotFoundf("site %s", siteId)
	}

	changes := map[string]interface{}{}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperror.Preconditionf("site name must not be empty")
		}
		changes["name"] = map[string]interface{}{"old": site.Name, "new": *patch.Name}
		site.Name = *patch.Name
	}
	if patch.ManagerId != nil {
		changes["managerId"] = map[string]interface{}{"new": patch.ManagerId.String()}
		site.ManagerId = patch.ManagerId
	}
	if patch.PlannedStart != nil {
		if !clockPattern.MatchString(*patch.PlannedStart) {
			return nil, apperror.Preconditionf("planned start %q is not a HH:MM wall clock", *patch.PlannedStart)
		}
		changes["plannedStart"] = map[string]interface{}{"old": site.PlannedStart, "new": *patch.PlannedStart}
		site.PlannedStart = *patch.PlannedStart
	}
	if patch.PlannedEnd != nil {
		if !clockPattern.MatchString(*patch.PlannedEnd) {
			return nil, apperror.Preconditionf("planned end %q is not a HH:MM wall clock", *patch.PlannedEnd)
		}
		changes["plannedEnd"] = map[string]interface{}{"old": site.PlannedEnd, "new": *patch.PlannedEnd}
		site.PlannedEnd = *patch.PlannedEnd
	}
	if patch.LunchMinutes != nil {
		if *patch.LunchMinutes < 0 {
			return nil, apperror.Preconditionf("lunch minutes must not be negative")
		}
		changes["lunchMinutes"] = map[string]interface{}{"old": site.LunchMinutes, "new": *patch.LunchMinutes}
		site.LunchMinutes = *patch.LunchMinutes
	}
	if len(changes) == 0 {
		return site, nil
	}

	// Schedule edits only affect shifts created afterwards; existing shifts
	// keep the window they were instantiated with.
	if err := uow.SiteRepository().Update(ctx, site); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntitySite,
		EntityId:   site.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata:   changes,
	}); err != nil {
		return nil, err
	}

	return site, nil
}

func (s *siteService) Deactivate(ctx context.Context, actor entity.Actor, siteId uuid.UUID) error {
	if !actor.CanManage() {
		return apperror.Unauthorizedf("deactivate site")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return err
	}
	if site == nil {
		return apperror.NotFoundf("site %s", siteId)
	}
	if !site.IsActive {
		return nil
	}

	site.IsActive = false
	if err := uow.SiteRepository().Update(ctx, site); err != nil {
		return err
	}

	return s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntitySite,
		EntityId:   site.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field":    "isActive",
			"newValue": false,
		},
	})
}

func (s *siteService) GetDetails(ctx context.Context, actor entity.Actor, siteId uuid.UUID) (*entity.Site, []*entity.Assignment, error) {
	if !actor.CanManage() {
		return nil, nil, apperror.Unauthorizedf("view site")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return nil, nil, err
	}
	if site == nil {
		return nil, nil, apperror.NotFoundf("site %s", siteId)
	}

	roster, err := uow.AssignmentRepository().FindActiveBySite(ctx, siteId)
	if err != nil {
		return nil, nil, err
	}

	return site, roster, nil
}

func (s *siteService) List(ctx context.Context, actor entity.Actor) ([]*entity.Site, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list sites")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ActiveOnly{},
		specification.OrderBy{Field: "name"},
	}
	// Managers only see their own sites; admins see everything.
	if !actor.IsAdmin() {
		specs = append(specs, specification.ByManager{ManagerID: actor.EmployeeId})
	}
	return uow.SiteRepository().FindAll(ctx, specs...)
}

func (s *siteService) AssignEmployee(ctx context.Context, actor entity.Actor, siteId, employeeId uuid.UUID) (*entity.Assignment, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("assign employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	site, err := uow.SiteRepository().FindOne(ctx, specification.ByID{ID: siteId})
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NotFoundf("site %s", siteId)
	}

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("employee %s", employeeId)
	}

	existing, err := uow.AssignmentRepository().FindOne(ctx,
		specification.BySite{SiteID: siteId},
		specification.ByEmployee{EmployeeID: employeeId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return existing, nil
		}
		// Re-activate a previously removed roster entry instead of
		// inserting a second row for the same pair.
		existing.IsActive = true
		if err := uow.AssignmentRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
			EntityType: constant.EntitySite,
			EntityId:   siteId,
			Action:     constant.ActionAssign,
			ChangedBy:  actor.EmployeeId,
			Metadata: map[string]interface{}{
				"employeeId":  employeeId.String(),
				"reactivated": true,
			},
		}); err != nil {
			return nil, err
		}
		return existing, nil
	}

	assignment := entity.Assignment{
		Id:         uuid.New(),
		SiteId:     siteId,
		EmployeeId: employeeId,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := uow.AssignmentRepository().Create(ctx, &assignment); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntitySite,
		EntityId:   siteId,
		Action:     constant.ActionAssign,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"employeeId": employeeId.String(),
		},
	}); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (s *siteService) UnassignEmployee(ctx context.Context, actor entity.Actor, siteId, employeeId uuid.UUID) error {
	if !actor.CanManage() {
		return apperror.Unauthorizedf("unassign employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignment, err := uow.AssignmentRepository().FindOne(ctx,
		specification.BySite{SiteID: siteId},
		specification.ByEmployee{EmployeeID: employeeId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return err
	}
	if assignment == nil {
		return apperror.NotFoundf("employee %s is not on the roster of site %s", employeeId, siteId)
	}

	assignment.IsActive = false
	if err := uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return err
	}

	return s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntitySite,
		EntityId:   siteId,
		Action:     constant.ActionUnassign,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"employeeId": employeeId.String(),
		},
	})
}
