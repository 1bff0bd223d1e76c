package service

import (
	"context"
	"testing"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteService(t *testing.T) (*fakeUnitOfWork, ISiteService) {
	t.Helper()
	uow := newFakeUnitOfWork()
	return uow, NewSiteService(&fakeFactory{uow: uow}, noopAudit{})
}

func TestCreateSite(t *testing.T) {
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}

	t.Run("creator becomes the site manager", func(t *testing.T) {
		_, svc := newSiteService(t)

		site, err := svc.Create(context.Background(), manager, "North Depot", "09:00", "17:30", 60)
		require.NoError(t, err)
		assert.True(t, site.IsActive)
		require.NotNil(t, site.ManagerId)
		assert.Equal(t, manager.EmployeeId, *site.ManagerId)
	})

	t.Run("schedule validation", func(t *testing.T) {
		_, svc := newSiteService(t)

		cases := []struct {
			name         string
			start, end   string
			lunchMinutes int
		}{
			{"malformed start", "9:00", "17:30", 60},
			{"malformed end", "09:00", "25:00", 60},
			{"negative lunch", "09:00", "17:30", -30},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), manager, "North Depot", tc.start, tc.end, tc.lunchMinutes)
				assert.ErrorIs(t, err, apperror.ErrPrecondition)
			})
		}
	})

	t.Run("overnight schedule is accepted", func(t *testing.T) {
		_, svc := newSiteService(t)

		_, err := svc.Create(context.Background(), manager, "Night Warehouse", "22:00", "06:00", 30)
		assert.NoError(t, err)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		_, svc := newSiteService(t)

		worker := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleEmployee}
		_, err := svc.Create(context.Background(), worker, "North Depot", "09:00", "17:30", 60)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestUpdateSite(t *testing.T) {
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}

	t.Run("partial patch", func(t *testing.T) {
		_, svc := newSiteService(t)
		site, err := svc.Create(context.Background(), manager, "North Depot", "09:00", "17:30", 60)
		require.NoError(t, err)

		start := "08:00"
		updated, err := svc.Update(context.Background(), manager, site.Id, SitePatch{PlannedStart: &start})
		require.NoError(t, err)
		assert.Equal(t, "08:00", updated.PlannedStart)
		assert.Equal(t, "17:30", updated.PlannedEnd)
		assert.Equal(t, 60, updated.LunchMinutes)
	})

	t.Run("invalid clock in patch is rejected", func(t *testing.T) {
		_, svc := newSiteService(t)
		site, err := svc.Create(context.Background(), manager, "North Depot", "09:00", "17:30", 60)
		require.NoError(t, err)

		bad := "26:00"
		_, err = svc.Update(context.Background(), manager, site.Id, SitePatch{PlannedEnd: &bad})
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("unknown site", func(t *testing.T) {
		_, svc := newSiteService(t)

		name := "Renamed"
		_, err := svc.Update(context.Background(), manager, uuid.New(), SitePatch{Name: &name})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestListSites(t *testing.T) {
	admin := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleAdmin}
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}
	other := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}

	_, svc := newSiteService(t)
	_, err := svc.Create(context.Background(), manager, "North Depot", "09:00", "17:30", 60)
	require.NoError(t, err)
	mine, err := svc.Create(context.Background(), other, "South Depot", "09:00", "17:30", 60)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), admin, mine.Id))

	t.Run("admin sees all active sites", func(t *testing.T) {
		sites, err := svc.List(context.Background(), admin)
		require.NoError(t, err)
		assert.Len(t, sites, 1, "deactivated sites are hidden")
	})

	t.Run("manager sees only own sites", func(t *testing.T) {
		sites, err := svc.List(context.Background(), manager)
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "North Depot", sites[0].Name)

		sites, err = svc.List(context.Background(), other)
		require.NoError(t, err)
		assert.Empty(t, sites)
	})
}

func TestRoster(t *testing.T) {
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}

	setup := func(t *testing.T) (*fakeUnitOfWork, ISiteService, *entity.Site, *entity.Employee) {
		uow, svc := newSiteService(t)
		site, err := svc.Create(context.Background(), manager, "North Depot", "09:00", "17:30", 60)
		require.NoError(t, err)
		employee := &entity.Employee{Id: uuid.New(), FullName: "Alice Carter", Role: entity.RoleEmployee, IsActive: true}
		require.NoError(t, uow.employees.Create(context.Background(), employee))
		return uow, svc, site, employee
	}

	t.Run("assign is idempotent", func(t *testing.T) {
		_, svc, site, employee := setup(t)

		first, err := svc.AssignEmployee(context.Background(), manager, site.Id, employee.Id)
		require.NoError(t, err)
		second, err := svc.AssignEmployee(context.Background(), manager, site.Id, employee.Id)
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
	})

	t.Run("reassign after unassign reactivates the same row", func(t *testing.T) {
		_, svc, site, employee := setup(t)

		first, err := svc.AssignEmployee(context.Background(), manager, site.Id, employee.Id)
		require.NoError(t, err)
		require.NoError(t, svc.UnassignEmployee(context.Background(), manager, site.Id, employee.Id))

		_, roster, err := svc.GetDetails(context.Background(), manager, site.Id)
		require.NoError(t, err)
		assert.Empty(t, roster)

		again, err := svc.AssignEmployee(context.Background(), manager, site.Id, employee.Id)
		require.NoError(t, err)
		assert.Equal(t, first.Id, again.Id)
		assert.True(t, again.IsActive)

		_, roster, err = svc.GetDetails(context.Background(), manager, site.Id)
		require.NoError(t, err)
		assert.Len(t, roster, 1)
	})

	t.Run("unassign someone not on the roster", func(t *testing.T) {
		_, svc, site, _ := setup(t)

		err := svc.UnassignEmployee(context.Background(), manager, site.Id, uuid.New())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("assign unknown employee", func(t *testing.T) {
		_, svc, site, _ := setup(t)

		_, err := svc.AssignEmployee(context.Background(), manager, site.Id, uuid.New())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
