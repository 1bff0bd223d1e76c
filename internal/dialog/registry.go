package dialog

import (
	"context"

	"shift-tracking-be/internal/dto"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
)

// FlowContext is what a state handler receives: the session it runs for,
// the resolved actor (nil until onboarding completes), and the raw input.
// Replies accumulate on the context and are flushed by the dispatcher.
type FlowContext struct {
	Session *entity.Session
	Actor   *entity.Employee
	Input   string

	replies []dto.Reply
}

// Reply queues a message for the transport layer to render.
func (fc *FlowContext) Reply(text string, buttons ...[]dto.Button) {
	fc.replies = append(fc.replies, dto.Reply{Text: text, Buttons: buttons})
}

// Replies returns everything queued so far.
func (fc *FlowContext) Replies() []dto.Reply {
	return fc.replies
}

// HandlerFunc is one behavior of a state, either on-enter or on-input.
type HandlerFunc func(ctx context.Context, fc *FlowContext) error

// Handlers pairs the optional behaviors of a single state.
type Handlers struct {
	OnEnter HandlerFunc
	OnInput HandlerFunc
}

// Registry maps states to their handlers. It is populated once during
// startup and read-only afterwards, so concurrent dispatch needs no lock.
// It is an injected value, not a package singleton, so tests can build
// isolated registries.
type Registry struct {
	handlers map[State]Handlers
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[State]Handlers),
	}
}

// Register wires the handlers for a state. Registering the same state
// twice is a fatal configuration error: it means two flows claim the same
// step and the process must not serve traffic.
func (r *Registry) Register(state State, h Handlers) error {
	if _, exists := r.handlers[state]; exists {
		return apperror.Configf("state handler already registered: %s", state)
	}
	r.handlers[state] = h
	return nil
}

// MustRegister is Register for startup paths where the error is fatal anyway.
func (r *Registry) MustRegister(state State, h Handlers) {
	if err := r.Register(state, h); err != nil {
		panic(err)
	}
}

// Lookup returns the handlers for a state, or found=false.
func (r *Registry) Lookup(state State) (Handlers, bool) {
	h, ok := r.handlers[state]
	return h, ok
}
