package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// refCodeAlphabet omits ambiguous glyphs (0/O, 1/I/L) since workers type
// codes by hand into the chat.
const refCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const refCodeLength = 6

type IEmployeeService interface {
	Create(ctx context.Context, actor entity.Actor, fullName, role string) (*entity.Employee, error)
	// SelfRegister creates a worker account from the chat onboarding flow
	// and binds it to the chat user in one step.
	SelfRegister(ctx context.Context, chatUserId int64, fullName string) (*entity.Employee, error)
	// IssueRefCode generates a fresh one-time code the employee redeems from
	// the chat to link their account.
	IssueRefCode(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) (string, error)
	// LinkChatUser redeems a ref code: binds the chat user to the employee
	// record and burns the code.
	LinkChatUser(ctx context.Context, refCode string, chatUserId int64) (*entity.Employee, error)
	// ResolveActor maps a chat user to the acting employee. Unknown chat
	// users get a not-found error; the dialog layer routes them to
	// onboarding.
	ResolveActor(ctx context.Context, chatUserId int64) (*entity.Employee, error)
	SetPin(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, pin string) error
	// VerifyPin checks a manager's PIN before privileged dialog flows.
	VerifyPin(ctx context.Context, employeeId uuid.UUID, pin string) error
	Deactivate(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) error
	GetDetails(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) (*entity.Employee, error)
	List(ctx context.Context, actor entity.Actor) ([]*entity.Employee, error)
	ListByIds(ctx context.Context, actor entity.Actor, ids []uuid.UUID) ([]*entity.Employee, error)
}

type employeeService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewEmployeeService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) IEmployeeService {
	return &employeeService{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

func generateRefCode() (string, error) {
	code := make([]byte, refCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = refCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func (s *employeeService) Create(ctx context.Context, actor entity.Actor, fullName, role string) (*entity.Employee, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("create employee")
	}
	if role == entity.RoleAdmin && !actor.IsAdmin() {
		return nil, apperror.Unauthorizedf("create admin employee")
	}
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee:
	default:
		return nil, apperror.Preconditionf("unknown role %q", role)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee := entity.Employee{
		Id:        uuid.New(),
		FullName:  fullName,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uow.EmployeeRepository().Create(ctx, &employee); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionCreate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"fullName": fullName,
			"role":     role,
		},
	}); err != nil {
		return nil, err
	}

	return &employee, nil
}

func (s *employeeService) SelfRegister(ctx context.Context, chatUserId int64, fullName string) (*entity.Employee, error) {
	if fullName == "" {
		return nil, apperror.Preconditionf("name must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.EmployeeRepository().FindByChatUser(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Preconditionf("chat user is already linked to %s", existing.FullName)
	}

	employee := entity.Employee{
		Id:         uuid.New(),
		FullName:   fullName,
		Role:       entity.RoleEmployee,
		ChatUserId: &chatUserId,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := uow.EmployeeRepository().Create(ctx, &employee); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionCreate,
		ChangedBy:  employee.Id,
		Metadata: map[string]interface{}{
			"fullName":       fullName,
			"selfRegistered": true,
		},
	}); err != nil {
		return nil, err
	}

	return &employee, nil
}

func (s *employeeService) IssueRefCode(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) (string, error) {
	if !actor.CanManage() {
		return "", apperror.Unauthorizedf("issue ref code")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "", apperror.NotFoundf("employee %s", employeeId)
	}
	if employee.ChatUserId != nil {
		return "", apperror.Preconditionf("employee %s is already linked to a chat user", employeeId)
	}

	code, err := generateRefCode()
	if err != nil {
		return "", err
	}

	employee.RefCode = &code
	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return "", err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field": "refCode",
		},
	}); err != nil {
		return "", err
	}

	return code, nil
}

func (s *employeeService) LinkChatUser(ctx context.Context, refCode string, chatUserId int64) (*entity.Employee, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.EmployeeRepository().FindByChatUser(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Preconditionf("chat user is already linked to %s", existing.FullName)
	}

	employee, err := uow.EmployeeRepository().FindByRefCode(ctx, refCode)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("ref code is unknown or already used")
	}

	employee.ChatUserId = &chatUserId
	employee.RefCode = nil
	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  employee.Id,
		Metadata: map[string]interface{}{
			"field":      "chatUserId",
			"chatUserId": chatUserId,
		},
	}); err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *employeeService) ResolveActor(ctx context.Context, chatUserId int64) (*entity.Employee, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindByChatUser(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("no employee linked to chat user %d", chatUserId)
	}
	if !employee.IsActive {
		return nil, apperror.Unauthorizedf("employee %s is deactivated", employee.Id)
	}
	return employee, nil
}

func (s *employeeService) SetPin(ctx context.Context, actor entity.Actor, employeeId uuid.UUID, pin string) error {
	if actor.EmployeeId != employeeId && !actor.IsAdmin() {
		return apperror.Unauthorizedf("set pin for another employee")
	}
	if len(pin) < 4 {
		return apperror.Preconditionf("pin must be at least 4 digits")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NotFoundf("employee %s", employeeId)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)
	employee.PinHash = &hashStr

	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return err
	}

	return s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field": "pinHash",
		},
	})
}

func (s *employeeService) VerifyPin(ctx context.Context, employeeId uuid.UUID, pin string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NotFoundf("employee %s", employeeId)
	}
	if employee.PinHash == nil {
		return apperror.Preconditionf("employee %s has no pin set", employeeId)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*employee.PinHash), []byte(pin)); err != nil {
		return apperror.Unauthorizedf("pin mismatch")
	}
	return nil
}

func (s *employeeService) Deactivate(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) error {
	if !actor.CanManage() {
		return apperror.Unauthorizedf("deactivate employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NotFoundf("employee %s", employeeId)
	}
	if !employee.IsActive {
		return nil
	}

	employee.IsActive = false
	if err := uow.EmployeeRepository().Update(ctx, employee); err != nil {
		return err
	}

	return s.audit.Record(ctx, uow, &entity.AuditEntry{
		EntityType: constant.EntityEmployee,
		EntityId:   employee.Id,
		Action:     constant.ActionUpdate,
		ChangedBy:  actor.EmployeeId,
		Metadata: map[string]interface{}{
			"field":    "isActive",
			"newValue": false,
		},
	})
}

func (s *employeeService) GetDetails(ctx context.Context, actor entity.Actor, employeeId uuid.UUID) (*entity.Employee, error) {
	if !actor.CanManage() && actor.EmployeeId != employeeId {
		return nil, apperror.Unauthorizedf("view employee")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	employee, err := uow.EmployeeRepository().FindOne(ctx, specification.ByID{ID: employeeId})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NotFoundf("employee %s", employeeId)
	}
	return employee, nil
}

func (s *employeeService) List(ctx context.Context, actor entity.Actor) ([]*entity.Employee, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list employees")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EmployeeRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "full_name"},
	)
}

func (s *employeeService) ListByIds(ctx context.Context, actor entity.Actor, ids []uuid.UUID) ([]*entity.Employee, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("list employees")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EmployeeRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OrderBy{Field: "full_name"},
	)
}
