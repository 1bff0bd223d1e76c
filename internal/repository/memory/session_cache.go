package memory

import (
	"context"
	"strconv"
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CachedSessionRepository is a write-through hot cache in front of the
// persisted session store. Dialog dispatch reads the session on every
// inbound event, so the common path should not hit the database.
type CachedSessionRepository struct {
	inner contract.SessionRepository
	cache *cache.Cache
	// id -> chat user, so column updates can invalidate the main key
	ids *cache.Cache
}

func NewCachedSessionRepository(inner contract.SessionRepository) contract.SessionRepository {
	return &CachedSessionRepository{
		inner: inner,
		cache: cache.New(1*time.Hour, 10*time.Minute),
		ids:   cache.New(1*time.Hour, 10*time.Minute),
	}
}

func chatKey(chatUserId int64) string {
	return strconv.FormatInt(chatUserId, 10)
}

func (r *CachedSessionRepository) remember(session *entity.Session) {
	if session == nil {
		return
	}
	r.cache.Set(chatKey(session.ChatUserId), session, cache.DefaultExpiration)
	r.ids.Set(session.Id.String(), session.ChatUserId, cache.DefaultExpiration)
}

func (r *CachedSessionRepository) invalidate(id uuid.UUID) {
	if x, found := r.ids.Get(id.String()); found {
		r.cache.Delete(chatKey(x.(int64)))
	}
}

func (r *CachedSessionRepository) GetByChatUser(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	if x, found := r.cache.Get(chatKey(chatUserId)); found {
		return x.(*entity.Session), nil
	}
	session, err := r.inner.GetByChatUser(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	r.remember(session)
	return session, nil
}

func (r *CachedSessionRepository) Create(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	session, err := r.inner.Create(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	r.remember(session)
	return session, nil
}

func (r *CachedSessionRepository) UpdateState(ctx context.Context, id uuid.UUID, state *string) error {
	if err := r.inner.UpdateState(ctx, id, state); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *CachedSessionRepository) UpdateData(ctx context.Context, id uuid.UUID, data entity.FlowData) error {
	if err := r.inner.UpdateData(ctx, id, data); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *CachedSessionRepository) Close(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Close(ctx, id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}
