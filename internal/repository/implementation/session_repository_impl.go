package implementation

import (
	"context"
	"errors"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/mapper"
	"shift-tracking-be/internal/model"
	"shift-tracking-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) GetByChatUser(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	var m model.Session
	err := r.db.WithContext(ctx).
		Where("chat_user_id = ? AND status = 'ACTIVE'", chatUserId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	m := model.Session{
		Id:         uuid.New(),
		ChatUserId: chatUserId,
		Data:       []byte("{}"),
		Status:     "ACTIVE",
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) UpdateState(ctx context.Context, id uuid.UUID, state *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("state", state).Error
}

func (r *SessionRepositoryImpl) UpdateData(ctx context.Context, id uuid.UUID, data entity.FlowData) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("data", r.mapper.MarshalData(data)).Error
}

func (r *SessionRepositoryImpl) Close(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("status", "CLOSED").Error
}
