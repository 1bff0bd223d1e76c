package dialog

import (
	"context"
	"errors"
	"testing"

	"shift-tracking-be/internal/pkg/apperror"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	noop := func(ctx context.Context, fc *FlowContext) error { return nil }

	if err := r.Register(StateAdminMenu, Handlers{OnEnter: noop}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := r.Register(StateAdminMenu, Handlers{OnInput: noop})
	if err == nil {
		t.Fatal("second registration for the same state must fail")
	}
	if !errors.Is(err, apperror.ErrConfig) {
		t.Errorf("error kind = %v, want ErrConfig", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	noop := func(ctx context.Context, fc *FlowContext) error { return nil }
	r.MustRegister(StateManagerMenu, Handlers{OnEnter: noop})

	if _, ok := r.Lookup(StateManagerMenu); !ok {
		t.Error("registered state not found")
	}
	if _, ok := r.Lookup(StateEmployeeMenu); ok {
		t.Error("unregistered state reported found")
	}
}
