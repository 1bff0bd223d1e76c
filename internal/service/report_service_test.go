package service

import (
	"context"
	"testing"
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	uow     *fakeUnitOfWork
	service IReportService
	manager entity.Actor
	site    *entity.Site
	alice   *entity.Employee
	bob     *entity.Employee
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	uow := newFakeUnitOfWork()

	site := &entity.Site{Id: uuid.New(), Name: "North Depot", PlannedStart: "09:00", PlannedEnd: "17:30", LunchMinutes: 60, IsActive: true}
	require.NoError(t, uow.sites.Create(context.Background(), site))

	alice := &entity.Employee{Id: uuid.New(), FullName: "Alice Carter", Role: entity.RoleEmployee, IsActive: true}
	bob := &entity.Employee{Id: uuid.New(), FullName: "Bob Miller", Role: entity.RoleEmployee, IsActive: true}
	require.NoError(t, uow.employees.Create(context.Background(), alice))
	require.NoError(t, uow.employees.Create(context.Background(), bob))

	return &reportFixture{
		uow:     uow,
		service: NewReportService(&fakeFactory{uow: uow}),
		manager: entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager},
		site:    site,
		alice:   alice,
		bob:     bob,
	}
}

// addLog records a closed work log for the given day and span.
func (f *reportFixture) addLog(t *testing.T, employee *entity.Employee, day string, startClock, endClock string, lunch int) {
	t.Helper()

	start, err := time.ParseInLocation("2006-01-02 15:04", day+" "+startClock, time.Local)
	require.NoError(t, err)
	end, err := time.ParseInLocation("2006-01-02 15:04", day+" "+endClock, time.Local)
	require.NoError(t, err)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	date, err := time.ParseInLocation("2006-01-02", day, time.Local)
	require.NoError(t, err)

	require.NoError(t, f.uow.workLogs.Create(context.Background(), &entity.WorkLog{
		Id:           uuid.New(),
		EmployeeId:   employee.Id,
		SiteId:       f.site.Id,
		Date:         date,
		ActualStart:  start,
		ActualEnd:    &end,
		LunchMinutes: lunch,
		IsOverride:   true,
		CreatedBy:    f.manager.EmployeeId,
	}))
}

func TestSiteHours(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 17, 0, 0, 0, 0, time.Local)

	t.Run("aggregates per employee sorted by name", func(t *testing.T) {
		f := newReportFixture(t)
		f.addLog(t, f.alice, "2024-03-11", "09:00", "17:30", 60) // 7.5h
		f.addLog(t, f.alice, "2024-03-12", "09:00", "17:00", 60) // 7h
		f.addLog(t, f.bob, "2024-03-11", "22:00", "06:00", 30)   // 7.5h overnight

		report, err := f.service.SiteHours(context.Background(), f.manager, f.site.Id, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 2)

		assert.Equal(t, "Alice Carter", report.Rows[0].EmployeeName)
		assert.InDelta(t, 14.5, report.Rows[0].TotalHours, 0.001)
		assert.Equal(t, 2, report.Rows[0].DaysWorked)

		assert.Equal(t, "Bob Miller", report.Rows[1].EmployeeName)
		assert.InDelta(t, 7.5, report.Rows[1].TotalHours, 0.001)
		assert.Equal(t, 1, report.Rows[1].DaysWorked)
	})

	t.Run("open logs are skipped", func(t *testing.T) {
		f := newReportFixture(t)
		f.addLog(t, f.alice, "2024-03-11", "09:00", "17:30", 60)

		require.NoError(t, f.uow.workLogs.Create(context.Background(), &entity.WorkLog{
			Id:          uuid.New(),
			EmployeeId:  f.alice.Id,
			SiteId:      f.site.Id,
			Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.Local),
			ActualStart: time.Date(2024, 3, 12, 9, 0, 0, 0, time.Local),
			CreatedBy:   f.manager.EmployeeId,
		}))

		report, err := f.service.SiteHours(context.Background(), f.manager, f.site.Id, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.InDelta(t, 7.5, report.Rows[0].TotalHours, 0.001)
		assert.Equal(t, 1, report.Rows[0].DaysWorked)
	})

	t.Run("split day counts once toward days worked", func(t *testing.T) {
		f := newReportFixture(t)
		f.addLog(t, f.alice, "2024-03-11", "09:00", "12:00", 0)
		f.addLog(t, f.alice, "2024-03-11", "13:00", "17:00", 0)

		report, err := f.service.SiteHours(context.Background(), f.manager, f.site.Id, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.InDelta(t, 7.0, report.Rows[0].TotalHours, 0.001)
		assert.Equal(t, 1, report.Rows[0].DaysWorked)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		f := newReportFixture(t)

		worker := entity.Actor{EmployeeId: f.alice.Id, Role: entity.RoleEmployee}
		_, err := f.service.SiteHours(context.Background(), worker, f.site.Id, from, to)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestEmployeeHours(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 17, 0, 0, 0, 0, time.Local)

	t.Run("worker reads own totals", func(t *testing.T) {
		f := newReportFixture(t)
		f.addLog(t, f.alice, "2024-03-11", "09:00", "17:30", 60)
		f.addLog(t, f.alice, "2024-03-13", "09:00", "17:30", 60)

		self := entity.Actor{EmployeeId: f.alice.Id, Role: entity.RoleEmployee}
		row, err := f.service.EmployeeHours(context.Background(), self, f.alice.Id, from, to)
		require.NoError(t, err)
		assert.Equal(t, "Alice Carter", row.EmployeeName)
		assert.InDelta(t, 15.0, row.TotalHours, 0.001)
		assert.Equal(t, 2, row.DaysWorked)
	})

	t.Run("worker cannot read another employee", func(t *testing.T) {
		f := newReportFixture(t)

		self := entity.Actor{EmployeeId: f.alice.Id, Role: entity.RoleEmployee}
		_, err := f.service.EmployeeHours(context.Background(), self, f.bob.Id, from, to)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("range with no logs yields zero totals", func(t *testing.T) {
		f := newReportFixture(t)

		row, err := f.service.EmployeeHours(context.Background(), f.manager, f.bob.Id, from, to)
		require.NoError(t, err)
		assert.Zero(t, row.TotalHours)
		assert.Zero(t, row.DaysWorked)
	})
}
