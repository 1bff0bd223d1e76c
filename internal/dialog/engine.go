package dialog

import (
	"context"
	"sync"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/contract"
)

// Engine owns dialog sessions: it validates and applies state transitions
// against the graph and dispatches to registered handlers. All session
// mutation goes through SetState / MergeData / ClearState so persistence
// and in-memory views never drift.
type Engine struct {
	sessions contract.SessionRepository
	graph    Graph
	registry *Registry

	// Inbound events for one chat user are processed strictly in order;
	// handlers read and write the same session and assume no concurrent
	// mutation. Different users proceed in parallel.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEngine(sessions contract.SessionRepository, graph Graph, registry *Registry) *Engine {
	return &Engine{
		sessions: sessions,
		graph:    graph,
		registry: registry,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// LockUser serializes event processing for one chat user. The returned
// function releases the lock.
func (e *Engine) LockUser(chatUserId int64) func() {
	e.mu.Lock()
	l, ok := e.locks[chatUserId]
	if !ok {
		l = &sync.Mutex{}
		e.locks[chatUserId] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// LoadOrCreate fetches the active session for a chat user, creating a
// fresh one (state nil, empty data) on first contact.
func (e *Engine) LoadOrCreate(ctx context.Context, chatUserId int64) (*entity.Session, error) {
	session, err := e.sessions.GetByChatUser(ctx, chatUserId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session, err = e.sessions.Create(ctx, chatUserId)
		if err != nil {
			return nil, err
		}
	}
	return session, nil
}

// SetState moves a session to nextState. Setting the current state again
// is an idempotent no-op: no persistence write, no duplicate on-enter side
// effects when a handler re-enters its own step. Unless force is set the
// move must be legal per the graph; force exists for privileged jumps such
// as resetting to a menu and deliberately bypasses the graph.
func (e *Engine) SetState(ctx context.Context, session *entity.Session, nextState State, force bool) (*entity.Session, error) {
	if session.State != nil && State(*session.State) == nextState {
		return session, nil
	}

	if !force {
		var from *State
		if session.State != nil {
			s := State(*session.State)
			from = &s
		}
		if !e.graph.CanTransition(from, nextState) {
			current := "<none>"
			if session.State != nil {
				current = *session.State
			}
			return nil, apperror.InvalidTransitionf("%s -> %s", current, nextState)
		}
	}

	next := string(nextState)
	if err := e.sessions.UpdateState(ctx, session.Id, &next); err != nil {
		return nil, err
	}

	updated := *session
	updated.State = &next
	return &updated, nil
}

// MergeData applies a patch to the session's flow data and persists the
// merged bag. The patch mutates only the fields its flow owns; everything
// else survives. This is the only sanctioned way to carry values between
// steps.
func (e *Engine) MergeData(ctx context.Context, session *entity.Session, patch func(*entity.FlowData)) (*entity.Session, error) {
	merged := session.Data
	patch(&merged)

	if err := e.sessions.UpdateData(ctx, session.Id, merged); err != nil {
		return nil, err
	}

	updated := *session
	updated.Data = merged
	return &updated, nil
}

// ClearState resets the session to no active flow: state nil, data empty.
// Used when a flow completes or is cancelled.
func (e *Engine) ClearState(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if err := e.sessions.UpdateState(ctx, session.Id, nil); err != nil {
		return nil, err
	}
	if err := e.sessions.UpdateData(ctx, session.Id, entity.FlowData{}); err != nil {
		return nil, err
	}

	updated := *session
	updated.State = nil
	updated.Data = entity.FlowData{}
	return &updated, nil
}

// Dispatch runs the registered handler of the session's current state for
// the given event kind. A session without state, an unregistered state, or
// a state without the requested behavior all report not-found; the caller
// decides the fallback, this is not a crash. The handler runs to
// completion before the next event for the same user is processed.
func (e *Engine) Dispatch(ctx context.Context, fc *FlowContext, kind EventKind) error {
	if fc.Session == nil || fc.Session.State == nil {
		return apperror.NotFoundf("no active dialog state")
	}

	state := State(*fc.Session.State)
	handlers, ok := e.registry.Lookup(state)
	if !ok {
		return apperror.NotFoundf("no handlers for state %s", state)
	}

	var handler HandlerFunc
	switch kind {
	case EventEnter:
		handler = handlers.OnEnter
	case EventInput:
		handler = handlers.OnInput
	}
	if handler == nil {
		return apperror.NotFoundf("no %s handler for state %s", kind, state)
	}

	return handler(ctx, fc)
}
