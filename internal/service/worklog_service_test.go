package service

import (
	"context"
	"testing"
	"time"

	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workLogFixture struct {
	uow      *fakeUnitOfWork
	service  IWorkLogService
	manager  entity.Actor
	employee *entity.Employee
	site     *entity.Site
}

func newWorkLogFixture(t *testing.T) *workLogFixture {
	t.Helper()

	uow := newFakeUnitOfWork()

	site := &entity.Site{Id: uuid.New(), Name: "North Depot", PlannedStart: "09:00", PlannedEnd: "17:30", LunchMinutes: 60, IsActive: true}
	require.NoError(t, uow.sites.Create(context.Background(), site))

	employee := &entity.Employee{Id: uuid.New(), FullName: "Alice Carter", Role: entity.RoleEmployee, IsActive: true}
	require.NoError(t, uow.employees.Create(context.Background(), employee))

	return &workLogFixture{
		uow:      uow,
		service:  NewWorkLogService(&fakeFactory{uow: uow}, noopAudit{}),
		manager:  entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager},
		employee: employee,
		site:     site,
	}
}

func (f *workLogFixture) overrideRequest() dto.CreateOverrideRequest {
	return dto.CreateOverrideRequest{
		EmployeeId:   f.employee.Id,
		SiteId:       f.site.Id,
		Date:         "2024-03-11",
		ActualStart:  "09:00",
		ActualEnd:    "17:30",
		LunchMinutes: 60,
	}
}

func TestCreateOverride(t *testing.T) {
	t.Run("records a standalone correction", func(t *testing.T) {
		f := newWorkLogFixture(t)

		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)
		assert.True(t, log.IsOverride)
		assert.Nil(t, log.ShiftId)
		assert.Equal(t, "2024-03-11", log.Date.Format("2006-01-02"))
		require.NotNil(t, log.ActualEnd)
		assert.Equal(t, "2024-03-11 17:30", log.ActualEnd.Format("2006-01-02 15:04"))
	})

	t.Run("overnight span rolls the end to the next day", func(t *testing.T) {
		f := newWorkLogFixture(t)

		req := f.overrideRequest()
		req.ActualStart = "22:00"
		req.ActualEnd = "06:00"
		log, err := f.service.CreateOverride(context.Background(), f.manager, req)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-12 06:00", log.ActualEnd.Format("2006-01-02 15:04"))
		assert.Equal(t, "2024-03-11", log.Date.Format("2006-01-02"), "attendance date stays on the start day")
	})

	t.Run("repeated corrections for the same day are allowed", func(t *testing.T) {
		f := newWorkLogFixture(t)

		_, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)
		_, err = f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newWorkLogFixture(t)

		req := f.overrideRequest()
		req.EmployeeId = uuid.New()
		_, err := f.service.CreateOverride(context.Background(), f.manager, req)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("malformed clock time", func(t *testing.T) {
		f := newWorkLogFixture(t)

		req := f.overrideRequest()
		req.ActualStart = "9 am"
		_, err := f.service.CreateOverride(context.Background(), f.manager, req)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		f := newWorkLogFixture(t)

		worker := entity.Actor{EmployeeId: f.employee.Id, Role: entity.RoleEmployee}
		_, err := f.service.CreateOverride(context.Background(), worker, f.overrideRequest())
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestUpdateWorkLog(t *testing.T) {
	t.Run("partial patch touches only given fields", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		lunch := 30
		updated, err := f.service.Update(context.Background(), f.manager, log.Id, WorkLogPatch{LunchMinutes: &lunch})
		require.NoError(t, err)
		assert.Equal(t, 30, updated.LunchMinutes)
		assert.Equal(t, log.ActualStart, updated.ActualStart)
		assert.Equal(t, *log.ActualEnd, *updated.ActualEnd)
		require.NotNil(t, updated.UpdatedBy)
		assert.Equal(t, f.manager.EmployeeId, *updated.UpdatedBy)
	})

	t.Run("moving the start moves the attendance date", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		newStart := time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local)
		updated, err := f.service.Update(context.Background(), f.manager, log.Id, WorkLogPatch{ActualStart: &newStart})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-12", updated.Date.Format("2006-01-02"))
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		updated, err := f.service.Update(context.Background(), f.manager, log.Id, WorkLogPatch{})
		require.NoError(t, err)
		assert.Nil(t, updated.UpdatedBy)
	})

	t.Run("negative lunch is rejected", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		lunch := -15
		_, err = f.service.Update(context.Background(), f.manager, log.Id, WorkLogPatch{LunchMinutes: &lunch})
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestGetWorkLogDetails(t *testing.T) {
	t.Run("closed log reports worked hours net of lunch", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		_, hours, err := f.service.GetDetails(context.Background(), f.manager, log.Id)
		require.NoError(t, err)
		require.NotNil(t, hours)
		assert.InDelta(t, 7.5, *hours, 0.001)
	})

	t.Run("open log has no worked hours yet", func(t *testing.T) {
		f := newWorkLogFixture(t)

		open := &entity.WorkLog{
			Id:          uuid.New(),
			EmployeeId:  f.employee.Id,
			SiteId:      f.site.Id,
			Date:        time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local),
			ActualStart: time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local),
			CreatedBy:   f.manager.EmployeeId,
		}
		require.NoError(t, f.uow.workLogs.Create(context.Background(), open))

		_, hours, err := f.service.GetDetails(context.Background(), f.manager, open.Id)
		require.NoError(t, err)
		assert.Nil(t, hours)
	})

	t.Run("worker may view own log but not others", func(t *testing.T) {
		f := newWorkLogFixture(t)
		log, err := f.service.CreateOverride(context.Background(), f.manager, f.overrideRequest())
		require.NoError(t, err)

		self := entity.Actor{EmployeeId: f.employee.Id, Role: entity.RoleEmployee}
		_, _, err = f.service.GetDetails(context.Background(), self, log.Id)
		assert.NoError(t, err)

		other := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleEmployee}
		_, _, err = f.service.GetDetails(context.Background(), other, log.Id)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestListWorkLogs(t *testing.T) {
	t.Run("by employee within range", func(t *testing.T) {
		f := newWorkLogFixture(t)

		for _, date := range []string{"2024-03-11", "2024-03-12", "2024-03-25"} {
			req := f.overrideRequest()
			req.Date = date
			_, err := f.service.CreateOverride(context.Background(), f.manager, req)
			require.NoError(t, err)
		}

		from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
		to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
		logs, err := f.service.ListByEmployee(context.Background(), f.manager, f.employee.Id, from, to)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("worker may list own attendance", func(t *testing.T) {
		f := newWorkLogFixture(t)

		self := entity.Actor{EmployeeId: f.employee.Id, Role: entity.RoleEmployee}
		_, err := f.service.ListByEmployee(context.Background(), self, f.employee.Id, time.Now().AddDate(0, 0, -7), time.Now())
		assert.NoError(t, err)

		_, err = f.service.ListByEmployee(context.Background(), self, uuid.New(), time.Now().AddDate(0, 0, -7), time.Now())
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}
