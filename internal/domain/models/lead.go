// internal/domain/models/lead.go
package models

import "time"

// Lead is an inbound sales contact captured by the directory. The _id is a
// UUID string so leads can be created before any Mongo round trip. Note may
// contain pasted rich text and is sanitized before storage.
type Lead struct {
	ID         string `bson:"_id" json:"id"`
	FullName   string `bson:"full_name" json:"full_name"`
	FullNameCI string `bson:"full_name_ci" json:"full_name_ci"`
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Company    string `bson:"company,omitempty" json:"company,omitempty"`
	Note       string `bson:"note,omitempty" json:"note,omitempty"`
	Source     string `bson:"source,omitempty" json:"source,omitempty"` // web | referral | import

	OwnerID string `bson:"owner_id,omitempty" json:"owner_id,omitempty"` // assigned user hex id

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
