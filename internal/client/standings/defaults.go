// internal/client/standings/defaults.go
package standings

// DefaultTeams returns the starting leaderboard and the user's team,
// which is Blue Team.
func DefaultTeams() ([]Team, TeamID) {
	blue := NewTeamID()
	teams := []Team{
		{
			ID:     NewTeamID(),
			Name:   "Orange Team",
			Points: 3050,
			Color:  "#F56600",
			Activity: []Activity{
				{Title: `Sarah completed "Library Photo"`, TimeAgo: "2m ago"},
			},
		},
		{
			ID:     blue,
			Name:   "Blue Team",
			Points: 2850,
			Color:  "#2979FF",
			Activity: []Activity{
				{Title: "Blue Team gained 200 pts", TimeAgo: "5m ago"},
			},
		},
		{
			ID:       NewTeamID(),
			Name:     "Purple Team",
			Points:   2720,
			Color:    "#9C27B0",
			Activity: []Activity{},
		},
	}
	return teams, blue
}
