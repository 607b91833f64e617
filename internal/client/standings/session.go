// internal/client/standings/session.go
package standings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
)

var (
	// ErrAlreadyCompleted is returned when the user's team has already
	// completed the quest in this session.
	ErrAlreadyCompleted = errors.New("standings: quest already completed")
	// ErrUnknownQuest is returned for IDs not in the catalog.
	ErrUnknownQuest = errors.New("standings: unknown quest")
	// ErrNotPhotoQuest is returned by CompletePhotoQuest for quests that do
	// not take a photo.
	ErrNotPhotoQuest = errors.New("standings: quest does not take a photo")
	// ErrCameraPermission is returned by a Camera when the user denies access.
	ErrCameraPermission = errors.New("standings: camera permission denied")
)

// NameSource supplies the player's display name. *profile.Cache satisfies it.
type NameSource interface {
	DisplayName() string
}

// Image is a captured photo.
type Image struct {
	URI string
}

// Camera captures a photo. Implementations return ErrCameraPermission
// (possibly wrapped) when access is denied.
type Camera interface {
	Capture(ctx context.Context) (Image, error)
}

type completion struct {
	quest QuestID
	team  TeamID
}

// Session owns the client's team collection. All reads return copies and
// all writes go through CompleteQuest, serialized by a mutex.
type Session struct {
	mu       sync.Mutex
	teams    []Team
	userTeam TeamID
	names    NameSource
	done     map[completion]struct{}
}

// NewSession starts a session over a copy of teams. userTeam must be one of them.
func NewSession(teams []Team, userTeam TeamID, names NameSource) (*Session, error) {
	if indexOf(teams, userTeam) < 0 {
		return nil, ErrUnknownTeam
	}
	out := cloneTeams(teams)
	sortByPoints(out)
	return &Session{
		teams:    out,
		userTeam: userTeam,
		names:    names,
		done:     map[completion]struct{}{},
	}, nil
}

// NewDefaultSession starts a session with DefaultTeams.
func NewDefaultSession(names NameSource) *Session {
	teams, user := DefaultTeams()
	s, _ := NewSession(teams, user, names)
	return s
}

// UserTeam returns the ID of the user's team.
func (s *Session) UserTeam() TeamID { return s.userTeam }

// Teams returns the teams sorted by points, highest first.
func (s *Session) Teams() []Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTeams(s.teams)
}

// Standings ranks the teams relative to the user's team.
func (s *Session) Standings() []RankedTeam {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranked, _ := RankTeams(s.teams, s.userTeam)
	return ranked
}

// HasCompleted reports whether the user's team completed quest this session.
func (s *Session) HasCompleted(quest QuestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.done[completion{quest, s.userTeam}]
	return ok
}

// CompleteQuest awards quest to the user's team and returns the updated teams.
func (s *Session) CompleteQuest(quest QuestID) ([]Team, error) {
	q, ok := LookupQuest(quest)
	if !ok {
		return nil, ErrUnknownQuest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := completion{quest, s.userTeam}
	if _, ok := s.done[key]; ok {
		return nil, ErrAlreadyCompleted
	}
	name := "Explorer"
	if s.names != nil {
		name = s.names.DisplayName()
	}
	next, err := CompleteQuest(s.teams, s.userTeam, q.Description(name), q.Points)
	if err != nil {
		return nil, err
	}
	s.teams = next
	s.done[key] = struct{}{}
	return cloneTeams(next), nil
}

// CompletePhotoQuest captures a photo and then completes quest. Nothing is
// awarded if capture fails.
func (s *Session) CompletePhotoQuest(ctx context.Context, camera Camera, quest QuestID) (Image, error) {
	q, ok := LookupQuest(quest)
	if !ok {
		return Image{}, ErrUnknownQuest
	}
	if !q.Photo {
		return Image{}, ErrNotPhotoQuest
	}
	if s.HasCompleted(quest) {
		return Image{}, ErrAlreadyCompleted
	}

	img, err := camera.Capture(ctx)
	if err != nil {
		if errors.Is(err, ErrCameraPermission) {
			return Image{}, err
		}
		return Image{}, fmt.Errorf("capture photo: %w", err)
	}
	if _, err := s.CompleteQuest(quest); err != nil {
		return Image{}, err
	}
	return img, nil
}

// Metric is a labeled dashboard value.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metrics returns the share of teams with any activity and the total
// number of activities.
func (s *Session) Metrics() []Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, actions := 0, 0
	for _, t := range s.teams {
		if len(t.Activity) > 0 {
			active++
		}
		actions += len(t.Activity)
	}
	rate := 0
	if len(s.teams) > 0 {
		rate = int(math.Round(float64(active) / float64(len(s.teams)) * 100))
	}
	return []Metric{
		{Label: "Daily Quest Completion", Value: strconv.Itoa(rate) + "%"},
		{Label: "Recent Actions Logged", Value: strconv.Itoa(actions)},
	}
}

// FeedItem is an activity with the team it belongs to.
type FeedItem struct {
	TeamID   TeamID   `json:"teamId"`
	TeamName string   `json:"teamName"`
	Activity Activity `json:"activity"`
}

// Feed returns every activity, team by team in standings order and oldest
// first within a team.
func (s *Session) Feed() []FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []FeedItem{}
	for _, t := range s.teams {
		for _, a := range t.Activity {
			out = append(out, FeedItem{TeamID: t.ID, TeamName: t.Name, Activity: a})
		}
	}
	return out
}
