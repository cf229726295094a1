package form

import (
	"github.com/dalemusser/helmdesk/internal/console/api"
)

// Controller owns the draft for one dialog session. It is the only writer of
// the draft; the mutation store never reaches in, and the controller never
// touches the canonical collection.
//
// Controller is not safe for concurrent use on its own; the dialog session
// serializes access.
type Controller struct {
	mode  Mode
	draft Draft
	errs  FieldErrors
}

// NewController builds a controller with an empty draft in create mode.
// Init must be called when the dialog opens.
func NewController() *Controller {
	return &Controller{mode: Create, errs: FieldErrors{}}
}

// Init prepares a fresh draft for a dialog open. In edit mode the entity's
// name, email, and phone are copied in, the role is normalized to a bare id
// whichever shape it arrived in, and the secret stays blank — a stored
// credential is write-only and never read back into a form. In create mode
// the draft starts empty; the role defaults later via ApplyOptions.
func (c *Controller) Init(mode Mode, entity *api.Entity, options []api.Role) {
	c.mode = mode
	c.errs = FieldErrors{}
	c.draft = Draft{}

	if mode == Edit && entity != nil {
		c.draft.Name = entity.Name
		c.draft.Email = entity.Email
		c.draft.Phone = entity.Phone
		c.draft.RoleID = entity.Role.ID()
	}
	c.ApplyOptions(options)
}

// ApplyOptions records that reference options are available. In create mode
// the role defaults to the first option if the user has not picked one yet;
// a role the user already chose is never overridden.
func (c *Controller) ApplyOptions(options []api.Role) {
	if c.mode == Create && c.draft.RoleID == "" && len(options) > 0 {
		c.draft.RoleID = options[0].ID
	}
}

// Patch replaces a single field in the draft. The field's stale error entry
// is cleared immediately; full errors are recomputed only on submit.
func (c *Controller) Patch(field Field, value string) {
	switch field {
	case FieldName:
		c.draft.Name = value
	case FieldEmail:
		c.draft.Email = value
	case FieldPhone:
		c.draft.Phone = value
	case FieldSecret:
		c.draft.Secret = value
	case FieldRole:
		c.draft.RoleID = value
	default:
		return
	}
	delete(c.errs, field)
}

// Reset returns the draft to defaults. Called after a successful submit and
// on explicit cancel.
func (c *Controller) Reset() {
	c.draft = Draft{}
	c.errs = FieldErrors{}
}

// Validate recomputes the full error map for the current draft and retains
// it for rendering.
func (c *Controller) Validate() FieldErrors {
	c.errs = Validate(c.draft, c.mode)
	return c.errs
}

// Draft returns a snapshot of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// Mode returns the mode the controller was initialized with.
func (c *Controller) Mode() Mode { return c.mode }

// Errors returns the field errors from the last validation pass, minus any
// entries cleared by subsequent patches.
func (c *Controller) Errors() FieldErrors {
	out := make(FieldErrors, len(c.errs))
	for f, msg := range c.errs {
		out[f] = msg
	}
	return out
}

// Payload projects the draft into the wire payload for a mutation. In edit
// mode a blank secret is stripped so the service leaves the credential
// untouched.
func (c *Controller) Payload() api.Payload {
	p := api.Payload{
		Name:   c.draft.Name,
		Email:  c.draft.Email,
		Phone:  c.draft.Phone,
		RoleID: c.draft.RoleID,
	}
	if c.mode == Create || c.draft.Secret != "" {
		p.Password = c.draft.Secret
	}
	return p
}
