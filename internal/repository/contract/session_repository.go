package contract

import (
	"context"

	"shift-tracking-be/internal/entity"

	"github.com/google/uuid"
)

// SessionRepository is plain key-value persistence for dialog sessions.
// No business logic lives here; the dialog engine owns all state rules.
type SessionRepository interface {
	GetByChatUser(ctx context.Context, chatUserId int64) (*entity.Session, error)
	Create(ctx context.Context, chatUserId int64) (*entity.Session, error)
	UpdateState(ctx context.Context, id uuid.UUID, state *string) error
	UpdateData(ctx context.Context, id uuid.UUID, data entity.FlowData) error
	Close(ctx context.Context, id uuid.UUID) error
}
