// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered participant.
//
// NOTE:
//   - cuid and email are each backed by a unique index. The index, not the
//     pre-insert lookup, is what keeps identities unique.
//   - email is stored lower-cased.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CUID           string             `bson:"cuid" json:"cuid"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"` // USER | ADMIN
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organizationId"`
	TeamID         primitive.ObjectID `bson:"team_id" json:"teamId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
