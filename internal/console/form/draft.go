// Package form owns the in-progress, not-yet-submitted copy of a user's
// editable fields: the draft, the field-level validation rules, and the
// controller that mutates the draft while a dialog is open.
package form

// Mode distinguishes the add-user dialog from the edit-user dialog. The mode
// decides how the draft initializes and whether a blank password is an error
// (create) or "leave the credential untouched" (edit).
type Mode int

const (
	Create Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "edit"
	}
	return "create"
}

// Field names the editable fields. Values double as the JSON/form keys the
// dialog chrome binds inputs to.
type Field string

const (
	FieldName   Field = "name"
	FieldEmail  Field = "email"
	FieldPhone  Field = "phone"
	FieldSecret Field = "password"
	FieldRole   Field = "role"
)

// Draft is the mutable projection of an entity's editable fields plus the
// transient secret. A fresh draft is created on every dialog open and
// discarded on close; it has no identity of its own.
type Draft struct {
	Name   string
	Email  string
	Phone  string
	Secret string
	RoleID string
}

// FieldErrors maps each failing field to a human-readable message.
// An empty map means the draft is valid.
type FieldErrors map[Field]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool { return len(e) == 0 }
