// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a named, colored group inside an organization.
//
// NOTE:
//   - Member counts are not stored on Team. They are derived by counting
//     users whose team_id references the team.
//   - AssignSeq is bumped every time a registration assigns a user to the
//     team. Registrations that pick the same team therefore write the same
//     document and conflict inside a transaction.
type Team struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organizationId"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"`
	Color          string             `bson:"color" json:"color"`

	AssignSeq      int64      `bson:"assign_seq" json:"-"`
	LastAssignedAt *time.Time `bson:"last_assigned_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
