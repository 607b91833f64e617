// internal/client/standings/team.go
// Package standings keeps the client's view of team points and activity
// and derives the ranked leaderboard from it.
package standings

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUnknownTeam is returned when a team ID is not in the collection.
	ErrUnknownTeam = errors.New("standings: unknown team")
	// ErrInvalidPoints is returned for awards that are not positive.
	ErrInvalidPoints = errors.New("standings: points must be positive")
)

// TeamID identifies a team on the client. It is opaque and unrelated to
// server-side team IDs.
type TeamID string

// NewTeamID returns a fresh random TeamID.
func NewTeamID() TeamID {
	return TeamID(uuid.NewString())
}

// Activity is one entry in a team's feed.
type Activity struct {
	Title   string `json:"title"`
	TimeAgo string `json:"timeAgo"`
}

// Team is a team's running total and feed. Points never decrease and the
// feed is append-only.
type Team struct {
	ID       TeamID     `json:"id"`
	Name     string     `json:"name"`
	Points   int        `json:"points"`
	Color    string     `json:"color"`
	Activity []Activity `json:"activity"`
}

func (t Team) clone() Team {
	t.Activity = append([]Activity(nil), t.Activity...)
	return t
}

func cloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = t.clone()
	}
	return out
}

func indexOf(teams []Team, id TeamID) int {
	for i, t := range teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}
