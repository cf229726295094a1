// Package api defines the wire-level contracts between the console core and
// the HelmDesk directory service: the entity and reference-data operations,
// the payload shapes, and the error taxonomy the mutation store relies on.
package api

import "context"

// Entity is a directory user as returned by the service. The secret/password
// field is write-only and never appears on a read; payloads carry it instead.
type Entity struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone,omitempty"`
	Role  RoleRef `json:"role"`
}

// Payload holds the writable fields for create and update calls.
// Password is omitted from the wire when blank, which is how an edit leaves
// the stored credential untouched.
type Payload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"role_id"`
	Password string `json:"password,omitempty"`
}

// Role is a reference-data option: a selectable role with a display name.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityAPI is the remote entity resource the mutation store synchronizes
// against. Every call is context-bound; failures carry an optional
// human-readable message (see Error).
type EntityAPI interface {
	ListEntities(ctx context.Context) ([]Entity, error)
	GetEntity(ctx context.Context, id string) (Entity, error)
	CreateEntity(ctx context.Context, p Payload) (Entity, error)
	UpdateEntity(ctx context.Context, id string, p Payload) (Entity, error)
	DeleteEntity(ctx context.Context, id string) error
}

// ReferenceAPI serves read-only option sets the forms depend on.
type ReferenceAPI interface {
	ListRoles(ctx context.Context) ([]Role, error)
}
