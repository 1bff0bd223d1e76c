package dialogstates

import (
	"context"
	"fmt"
	"strings"

	"shift-tracking-be/internal/dialog"
	"shift-tracking-be/internal/dto"
)

func (f *Flows) registerOnboarding(registry *dialog.Registry) {
	registry.MustRegister(dialog.StateOnboardingStart, dialog.Handlers{
		OnEnter: f.onboardingStartEnter,
	})
	registry.MustRegister(dialog.StateOnboardingEnterName, dialog.Handlers{
		OnEnter: f.onboardingEnterNameEnter,
		OnInput: f.onboardingEnterNameInput,
	})
	registry.MustRegister(dialog.StateRefLinkActivate, dialog.Handlers{
		OnEnter: f.refLinkActivateEnter,
		OnInput: f.refLinkActivateInput,
	})
	registry.MustRegister(dialog.StateEnterManagerPin, dialog.Handlers{
		OnEnter: f.enterManagerPinEnter,
		OnInput: f.enterManagerPinInput,
	})
}

func (f *Flows) onboardingStartEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Welcome! How would you like to continue?", []dto.Button{
		{Text: "I have a registration code", Callback: cb(dialog.StateRefLinkActivate)},
		{Text: "Register as a new worker", Callback: cb(dialog.StateOnboardingEnterName)},
	})
	return nil
}

func (f *Flows) onboardingEnterNameEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Please send your full name.")
	return nil
}

func (f *Flows) onboardingEnterNameInput(ctx context.Context, fc *dialog.FlowContext) error {
	name := strings.TrimSpace(fc.Input)
	if name == "" {
		fc.Reply("The name cannot be empty. Please send your full name.")
		return nil
	}

	employee, err := f.employees.SelfRegister(ctx, fc.Session.ChatUserId, name)
	if err != nil {
		return err
	}
	fc.Actor = employee

	fc.Reply(fmt.Sprintf("You are registered, %s.", employee.FullName))
	return f.toMenu(ctx, fc)
}

func (f *Flows) refLinkActivateEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Please send the registration code you received from your manager.")
	return nil
}

func (f *Flows) refLinkActivateInput(ctx context.Context, fc *dialog.FlowContext) error {
	code := strings.ToUpper(strings.TrimSpace(fc.Input))
	if code == "" {
		fc.Reply("The code cannot be empty. Please send it again.")
		return nil
	}

	employee, err := f.employees.LinkChatUser(ctx, code, fc.Session.ChatUserId)
	if err != nil {
		return err
	}
	fc.Actor = employee

	fc.Reply(fmt.Sprintf("Welcome back, %s.", employee.FullName))
	return f.toMenu(ctx, fc)
}

func (f *Flows) enterManagerPinEnter(ctx context.Context, fc *dialog.FlowContext) error {
	fc.Reply("Please enter your PIN.")
	return nil
}

func (f *Flows) enterManagerPinInput(ctx context.Context, fc *dialog.FlowContext) error {
	actor, err := actorOf(fc)
	if err != nil {
		return err
	}

	pin := strings.TrimSpace(fc.Input)
	if err := f.employees.VerifyPin(ctx, actor.EmployeeId, pin); err != nil {
		fc.Reply("That PIN is not correct. Please try again.")
		return nil
	}

	return f.toMenu(ctx, fc)
}
