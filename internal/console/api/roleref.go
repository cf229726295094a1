package api

import (
	"encoding/json"
	"fmt"
)

// RoleRef is a user's role reference as it arrives from the service. The wire
// shape is duck-typed: sometimes an embedded object {"id","name"}, sometimes a
// bare id string. RoleRef keeps the distinction explicit so callers resolve a
// single canonical id instead of type-switching at every use site.
type RoleRef struct {
	kind roleKind
	id   string
	name string
}

type roleKind uint8

const (
	roleNone roleKind = iota
	roleIDOnly
	roleEmbedded
)

// EmbeddedRole builds a RoleRef carrying both id and display name.
func EmbeddedRole(id, name string) RoleRef {
	return RoleRef{kind: roleEmbedded, id: id, name: name}
}

// RoleID builds a RoleRef carrying only the id.
func RoleID(id string) RoleRef {
	return RoleRef{kind: roleIDOnly, id: id}
}

// ID returns the canonical role id regardless of which shape the reference
// arrived in. Empty when the reference is unset.
func (r RoleRef) ID() string { return r.id }

// Name returns the display name when the reference is embedded, "" otherwise.
func (r RoleRef) Name() string { return r.name }

// IsZero reports whether the reference is unset.
func (r RoleRef) IsZero() bool { return r.kind == roleNone }

func (r RoleRef) String() string {
	if r.kind == roleEmbedded {
		return r.id + " (" + r.name + ")"
	}
	return r.id
}

// MarshalJSON writes the same shape the reference arrived in, so round-trips
// through the console do not change what the service sees.
func (r RoleRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case roleEmbedded:
		return json.Marshal(struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}{r.id, r.name})
	case roleIDOnly:
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts either the embedded object or the bare id string.
func (r *RoleRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RoleRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = RoleID(id)
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("role reference: %w", err)
	}
	*r = EmbeddedRole(obj.ID, obj.Name)
	return nil
}
