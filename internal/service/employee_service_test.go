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

func newEmployeeService(t *testing.T) (*fakeUnitOfWork, IEmployeeService) {
	t.Helper()
	uow := newFakeUnitOfWork()
	return uow, NewEmployeeService(&fakeFactory{uow: uow}, noopAudit{})
}

func TestCreateEmployee(t *testing.T) {
	admin := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleAdmin}
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}
	worker := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleEmployee}

	t.Run("manager creates a worker", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.Create(context.Background(), manager, "Alice Carter", entity.RoleEmployee)
		require.NoError(t, err)
		assert.True(t, employee.IsActive)
		assert.Nil(t, employee.ChatUserId)
		assert.Nil(t, employee.RefCode)
	})

	t.Run("only admins create admins", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.Create(context.Background(), manager, "Eve", entity.RoleAdmin)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)

		_, err = svc.Create(context.Background(), admin, "Eve", entity.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.Create(context.Background(), admin, "Eve", "SUPERVISOR")
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("worker actor is rejected", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.Create(context.Background(), worker, "Eve", entity.RoleEmployee)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestSelfRegister(t *testing.T) {
	t.Run("creates a linked worker account", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleEmployee, employee.Role)
		require.NotNil(t, employee.ChatUserId)
		assert.Equal(t, int64(777001), *employee.ChatUserId)

		resolved, err := svc.ResolveActor(context.Background(), 777001)
		require.NoError(t, err)
		assert.Equal(t, employee.Id, resolved.Id)
	})

	t.Run("chat user may register only once", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)

		_, err = svc.SelfRegister(context.Background(), 777001, "Robert Miller")
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.SelfRegister(context.Background(), 777001, "")
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestRefCodeLinking(t *testing.T) {
	manager := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleManager}

	t.Run("issue then redeem burns the code", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.Create(context.Background(), manager, "Carol Jones", entity.RoleEmployee)
		require.NoError(t, err)

		code, err := svc.IssueRefCode(context.Background(), manager, employee.Id)
		require.NoError(t, err)
		assert.Len(t, code, refCodeLength)

		linked, err := svc.LinkChatUser(context.Background(), code, 777002)
		require.NoError(t, err)
		assert.Equal(t, employee.Id, linked.Id)
		assert.Nil(t, linked.RefCode)
		require.NotNil(t, linked.ChatUserId)

		_, err = svc.LinkChatUser(context.Background(), code, 777003)
		assert.ErrorIs(t, err, apperror.ErrNotFound, "a redeemed code must not work twice")
	})

	t.Run("issuing for a linked employee is rejected", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)

		_, err = svc.IssueRefCode(context.Background(), manager, employee.Id)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("already linked chat user cannot redeem", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		_, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)

		employee, err := svc.Create(context.Background(), manager, "Carol Jones", entity.RoleEmployee)
		require.NoError(t, err)
		code, err := svc.IssueRefCode(context.Background(), manager, employee.Id)
		require.NoError(t, err)

		_, err = svc.LinkChatUser(context.Background(), code, 777001)
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestPin(t *testing.T) {
	admin := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleAdmin}

	t.Run("set then verify", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.Create(context.Background(), admin, "Site Manager", entity.RoleManager)
		require.NoError(t, err)

		require.NoError(t, svc.SetPin(context.Background(), admin, employee.Id, "4321"))
		assert.NoError(t, svc.VerifyPin(context.Background(), employee.Id, "4321"))
		assert.ErrorIs(t, svc.VerifyPin(context.Background(), employee.Id, "0000"), apperror.ErrUnauthorized)
	})

	t.Run("short pin is rejected", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.Create(context.Background(), admin, "Site Manager", entity.RoleManager)
		require.NoError(t, err)

		err = svc.SetPin(context.Background(), admin, employee.Id, "12")
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})

	t.Run("verify without a pin set", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.Create(context.Background(), admin, "Site Manager", entity.RoleManager)
		require.NoError(t, err)

		err = svc.VerifyPin(context.Background(), employee.Id, "4321")
		assert.ErrorIs(t, err, apperror.ErrPrecondition)
	})
}

func TestDeactivate(t *testing.T) {
	admin := entity.Actor{EmployeeId: uuid.New(), Role: entity.RoleAdmin}

	t.Run("deactivated employee cannot act from chat", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(context.Background(), admin, employee.Id))

		_, err = svc.ResolveActor(context.Background(), 777001)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("repeat deactivation is a no-op", func(t *testing.T) {
		_, svc := newEmployeeService(t)

		employee, err := svc.SelfRegister(context.Background(), 777001, "Bob Miller")
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(context.Background(), admin, employee.Id))
		assert.NoError(t, svc.Deactivate(context.Background(), admin, employee.Id))
	})
}

func TestGenerateRefCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateRefCode()
		require.NoError(t, err)
		require.Len(t, code, refCodeLength)
		for _, c := range code {
			assert.Contains(t, refCodeAlphabet, string(c), "code must avoid ambiguous glyphs")
		}
	}
}
