// internal/client/standings/standings.go
package standings

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JustNow is the TimeAgo of an activity recorded by CompleteQuest.
const JustNow = "just now"

var printer = message.NewPrinter(language.English)

// formatPoints renders n with thousands separators, e.g. 3050 -> "3,050".
func formatPoints(n int) string {
	return printer.Sprintf("%d", n)
}

func sortByPoints(teams []Team) {
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].Points > teams[j].Points })
}

// CompleteQuest awards points to the acting team and records label in its
// feed. It returns a new slice sorted by points, highest first; teams with
// equal points keep their relative order. The input is not modified.
func CompleteQuest(teams []Team, acting TeamID, label string, points int) ([]Team, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	idx := indexOf(teams, acting)
	if idx < 0 {
		return nil, ErrUnknownTeam
	}

	out := cloneTeams(teams)
	out[idx].Activity = append(out[idx].Activity, Activity{Title: label, TimeAgo: JustNow})
	out[idx].Points += points
	sortByPoints(out)
	return out, nil
}

// Trend labels.
const (
	TrendYou  = "You"
	TrendTied = "Tied with you"
)

// RankedTeam is one row of the leaderboard.
type RankedTeam struct {
	Position    int    `json:"position"` // 1-based
	TeamID      TeamID `json:"teamId"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	PointsLabel string `json:"pointsLabel"`
	Trend       string `json:"trend"`
	Color       string `json:"color"`
	IsUserTeam  bool   `json:"isUserTeam"`
}

// RankTeams orders teams by points and labels each relative to the user's
// team: "You", "<n> ahead", "<n> behind" or "Tied with you".
func RankTeams(teams []Team, userTeam TeamID) ([]RankedTeam, error) {
	if len(teams) == 0 {
		return []RankedTeam{}, nil
	}
	idx := indexOf(teams, userTeam)
	if idx < 0 {
		return nil, ErrUnknownTeam
	}
	userPoints := teams[idx].Points

	sorted := append([]Team(nil), teams...)
	sortByPoints(sorted)

	out := make([]RankedTeam, len(sorted))
	for i, t := range sorted {
		out[i] = RankedTeam{
			Position:    i + 1,
			TeamID:      t.ID,
			Name:        t.Name,
			Points:      t.Points,
			PointsLabel: formatPoints(t.Points),
			Trend:       trend(t, userTeam, t.Points-userPoints),
			Color:       t.Color,
			IsUserTeam:  t.ID == userTeam,
		}
	}
	return out, nil
}

func trend(t Team, userTeam TeamID, delta int) string {
	switch {
	case t.ID == userTeam:
		return TrendYou
	case delta > 0:
		return formatPoints(delta) + " ahead"
	case delta < 0:
		return formatPoints(-delta) + " behind"
	default:
		return TrendTied
	}
}

// HasCompletedQuest reports whether the user's team feed holds an activity
// titled exactly title.
func HasCompletedQuest(teams []Team, userTeam TeamID, title string) bool {
	idx := indexOf(teams, userTeam)
	if idx < 0 {
		return false
	}
	for _, a := range teams[idx].Activity {
		if a.Title == title {
			return true
		}
	}
	return false
}
