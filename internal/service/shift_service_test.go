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

type shiftFixture struct {
	uow     *fakeUnitOfWork
	service IShiftService
	manager entity.Actor
	worker  entity.Actor
	site    *entity.Site
	roster  []uuid.UUID
}

// newShiftFixture seeds one site with three workers on the active roster.
func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()

	uow := newFakeUnitOfWork()
	managerId := uuid.New()

	site := &entity.Site{
		Id:           uuid.New(),
		Name:         "North Depot",
		ManagerId:    &managerId,
		PlannedStart: "09:00",
		PlannedEnd:   "17:30",
		LunchMinutes: 60,
		IsActive:     true,
	}
	require.NoError(t, uow.sites.Create(context.Background(), site))

	var roster []uuid.UUID
	for i := 0; i < 3; i++ {
		emp := &entity.Employee{Id: uuid.New(), FullName: "Worker", Role: entity.RoleEmployee, IsActive: true}
		require.NoError(t, uow.employees.Create(context.Background(), emp))
		require.NoError(t, uow.assignments.Create(context.Background(), &entity.Assignment{
			Id:         uuid.New(),
			SiteId:     site.Id,
			EmployeeId: emp.Id,
			IsActive:   true,
		}))
		roster = append(roster, emp.Id)
	}

	return &shiftFixture{
		uow:     uow,
		service: NewShiftService(&fakeFactory{uow: uow}, noopAudit{}),
		manager: entity.Actor{EmployeeId: managerId, Role: entity.RoleManager},
		worker:  entity.Actor{EmployeeId: roster[0], Role: entity.RoleEmployee},
		site:    site,
		roster:  roster,
	}
}

func (f *shiftFixture) startedShift(t *testing.T, absent []uuid.UUID) (*entity.Shift, []*entity.WorkLog) {
	t.Helper()

	shift, created, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
	require.NoError(t, err)
	require.True(t, created)

	shift, logs, err := f.service.ConfirmStart(context.Background(), f.manager, shift.Id, ConfirmStartOptions{
		AbsentEmployeeIds: absent,
	})
	require.NoError(t, err)
	return shift, logs
}

func TestCreateForDate(t *testing.T) {
	t.Run("creates planned shift from site schedule", func(t *testing.T) {
		f := newShiftFixture(t)

		shift, created, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, entity.ShiftPlanned, shift.Status)
		assert.Equal(t, f.site.Id, shift.SiteId)
		assert.Equal(t, 60, shift.LunchMinutes)
		assert.Equal(t, "2024-03-11 09:00", shift.PlannedStart.Format("2006-01-02 15:04"))
		assert.Equal(t, "2024-03-11 17:30", shift.PlannedEnd.Format("2006-01-02 15:04"))
	})

	t.Run("second call returns existing shift", func(t *testing.T) {
		f := newShiftFixture(t)

		first, created, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.Id, second.Id)
	})

	t.Run("overnight schedule rolls planned end to next day", func(t *testing.T) {
		f := newShiftFixture(t)
		f.site.PlannedStart = "22:00"
		f.site.PlannedEnd = "06:00"
		require.NoError(t, f.uow.sites.Update(context.Background(), f.site))

		shift, _, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-12 06:00", shift.PlannedEnd.Format("2006-01-02 15:04"))
		assert.Equal(t, "2024-03-11", shift.Date.Format("2006-01-02"))
	})

	t.Run("unknown site", func(t *testing.T) {
		f := newShiftFixture(t)

		_, _, err := f.service.CreateForDate(context.Background(), f.manager, uuid.New(), "2024-03-11")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		f := newShiftFixture(t)

		_, _, err := f.service.CreateForDate(context.Background(), f.worker, f.site.Id, "2024-03-11")
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestConfirmStart(t *testing.T) {
	t.Run("clocks in the full roster", func(t *testing.T) {
		f := newShiftFixture(t)

		shift, logs := f.startedShift(t, nil)
		assert.Equal(t, entity.ShiftStarted, shift.Status)
		assert.NotNil(t, shift.StartedAt)
		require.Len(t, logs, 3)
		for _, log := range logs {
			assert.Equal(t, shift.Id, *log.ShiftId)
			assert.Nil(t, log.ActualEnd)
			assert.Equal(t, 60, log.LunchMinutes)
			assert.False(t, log.IsOverride)
		}
		assert.Equal(t, 1, f.uow.commits, "status flip and clock-ins must land in one transaction")
	})

	t.Run("absent workers get no log", func(t *testing.T) {
		f := newShiftFixture(t)

		_, logs := f.startedShift(t, []uuid.UUID{f.roster[0]})
		require.Len(t, logs, 2)
		for _, log := range logs {
			assert.NotEqual(t, f.roster[0], log.EmployeeId)
		}
	})

	t.Run("already started shift is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _ := f.startedShift(t, nil)

		_, _, err := f.service.ConfirmStart(context.Background(), f.manager, shift.Id, ConfirmStartOptions{})
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)

		_, _, err = f.service.ConfirmStart(context.Background(), f.worker, shift.Id, ConfirmStartOptions{})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestAddEmployee(t *testing.T) {
	t.Run("late arrival joins a started shift", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _ := f.startedShift(t, []uuid.UUID{f.roster[2]})

		at := time.Date(2024, 3, 11, 10, 30, 0, 0, time.Local)
		log, err := f.service.AddEmployee(context.Background(), f.manager, shift.Id, f.roster[2], &at)
		require.NoError(t, err)
		assert.Equal(t, f.roster[2], log.EmployeeId)
		assert.Equal(t, at, log.ActualStart)
		assert.Equal(t, "2024-03-11", log.Date.Format("2006-01-02"))
	})

	t.Run("second clock-in for the same shift is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _ := f.startedShift(t, nil)

		_, err := f.service.AddEmployee(context.Background(), f.manager, shift.Id, f.roster[0], nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("planned shift is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)

		_, err = f.service.AddEmployee(context.Background(), f.manager, shift.Id, f.roster[0], nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestRemoveEmployee(t *testing.T) {
	t.Run("early leave closes only that log", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, logs := f.startedShift(t, nil)

		at := time.Date(2024, 3, 11, 15, 0, 0, 0, time.Local)
		closed, err := f.service.RemoveEmployee(context.Background(), f.manager, logs[0].Id, &at)
		require.NoError(t, err)
		require.NotNil(t, closed.ActualEnd)
		assert.Equal(t, at, *closed.ActualEnd)

		current, _, err := f.service.GetDetails(context.Background(), f.manager, shift.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.ShiftStarted, current.Status, "shift stays started after one early leave")
	})

	t.Run("override log is rejected", func(t *testing.T) {
		f := newShiftFixture(t)

		override := &entity.WorkLog{
			Id:          uuid.New(),
			EmployeeId:  f.roster[0],
			SiteId:      f.site.Id,
			Date:        time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local),
			ActualStart: time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local),
			IsOverride:  true,
			CreatedBy:   f.manager.EmployeeId,
		}
		require.NoError(t, f.uow.workLogs.Create(context.Background(), override))

		_, err := f.service.RemoveEmployee(context.Background(), f.manager, override.Id, nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestConfirmEnd(t *testing.T) {
	t.Run("closes the shift and all open logs", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, logs := f.startedShift(t, nil)

		leaveAt := time.Date(2024, 3, 11, 14, 0, 0, 0, time.Local)
		_, err := f.service.RemoveEmployee(context.Background(), f.manager, logs[0].Id, &leaveAt)
		require.NoError(t, err)

		endAt := time.Date(2024, 3, 11, 17, 30, 0, 0, time.Local)
		closed, closedLogs, err := f.service.ConfirmEnd(context.Background(), f.manager, shift.Id, &endAt)
		require.NoError(t, err)
		assert.Equal(t, entity.ShiftClosed, closed.Status)
		require.NotNil(t, closed.ClosedAt)

		for _, log := range closedLogs {
			require.NotNil(t, log.ActualEnd)
			if log.Id == logs[0].Id {
				// The early leaver keeps the earlier end stamp.
				assert.Equal(t, leaveAt, *log.ActualEnd)
			} else {
				assert.Equal(t, endAt, *log.ActualEnd)
			}
		}
	})

	t.Run("planned shift is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, "2024-03-11")
		require.NoError(t, err)

		_, _, err = f.service.ConfirmEnd(context.Background(), f.manager, shift.Id, nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("closed shift is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _ := f.startedShift(t, nil)

		_, _, err := f.service.ConfirmEnd(context.Background(), f.manager, shift.Id, nil)
		require.NoError(t, err)

		_, _, err = f.service.ConfirmEnd(context.Background(), f.manager, shift.Id, nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("shift with no logs is rejected", func(t *testing.T) {
		f := newShiftFixture(t)
		shift, _ := f.startedShift(t, f.roster)

		_, _, err := f.service.ConfirmEnd(context.Background(), f.manager, shift.Id, nil)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestListBySite(t *testing.T) {
	f := newShiftFixture(t)

	for _, date := range []string{"2024-03-11", "2024-03-12", "2024-03-20"} {
		_, _, err := f.service.CreateForDate(context.Background(), f.manager, f.site.Id, date)
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	shifts, err := f.service.ListBySite(context.Background(), f.manager, f.site.Id, from, to)
	require.NoError(t, err)
	assert.Len(t, shifts, 2)
}
