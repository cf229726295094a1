// internal/domain/models/role.go
package models

// Role is a reference-data record the console renders as a select option.
// The _id is a stable slug ("admin", "manager"); Rank orders the list.
type Role struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
	Rank int    `bson:"rank" json:"rank"`
}
