package dialog

import (
	"context"

	"github.com/dalemusser/helmdesk/internal/console/form"
	"github.com/dalemusser/helmdesk/internal/console/refdata"
)

// ActionStyle hints how the chrome should render an action button.
type ActionStyle string

const (
	ActionPrimary   ActionStyle = "primary"
	ActionSecondary ActionStyle = "secondary"
)

// Action is one dialog button forwarded to the chrome. Activate carries the
// user intent back into the session.
type Action struct {
	Label    string
	Style    ActionStyle
	Disabled bool
	Loading  bool
	Activate func()
}

// Container is the view handed to the external dialog chrome. The chrome
// renders it and forwards user intent through the action callbacks and
// Session.Close; it owns no state of its own.
type Container struct {
	IsOpen bool
	Title  string

	Draft       form.Draft
	FieldErrors form.FieldErrors

	// Role selector state. The control is disabled with a loading indicator
	// while OptionsPending; a failed load leaves Options empty with Warning
	// set.
	Options        []refdata.Option
	OptionsPending bool
	Warning        string

	// Banners inside the dialog.
	Error   string
	Success string

	Actions []Action
}

// Container builds the current view. Safe to call at any time, including on
// a closed session.
func (s *Session) Container() Container {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Container{
		IsOpen:      s.open,
		Draft:       s.ctrl.Draft(),
		FieldErrors: s.ctrl.Errors(),
		Error:       s.mutationErr,
		Success:     s.successMsg,
	}
	if !s.open {
		return c
	}

	if s.ctrl.Mode() == form.Create {
		c.Title = "Add User"
	} else {
		c.Title = "Edit User"
	}
	if s.loader != nil {
		c.Options = s.loader.Options()
		c.OptionsPending = s.loader.Pending()
		c.Warning = s.loader.Warning()
	}

	submitting := s.state == StateSubmitting
	c.Actions = []Action{
		{Label: "Cancel", Style: ActionSecondary, Disabled: submitting, Activate: s.Close},
		{
			Label:    "Save",
			Style:    ActionPrimary,
			Disabled: submitting,
			Loading:  submitting,
			Activate: func() { go s.Submit(context.Background()) },
		},
	}
	return c
}
