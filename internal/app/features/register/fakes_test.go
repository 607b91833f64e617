package register

import (
	"context"
	"sync"
	"time"

	userstore "github.com/dalemusser/clemsonquest/internal/app/store/users"
	"github.com/dalemusser/clemsonquest/internal/app/system/teambalance"
	"github.com/dalemusser/clemsonquest/internal/app/system/txn"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the user, organization and team stores.
type memStore struct {
	mu      sync.Mutex
	orgs    []models.Organization
	teams   []models.Team
	users   []models.User
	touched map[primitive.ObjectID]int

	countErr error
	// raceInsert, when set, makes Create behave as if a concurrent insert of
	// the same identity committed after the existence check.
	raceInsert bool
}

func newMemStore() *memStore {
	return &memStore{touched: map[primitive.ObjectID]int{}}
}

func (m *memStore) seed(teamNames ...string) (models.Organization, []models.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org := models.Organization{ID: primitive.NewObjectID(), Name: "ClemsonQuest Org", CreatedAt: time.Now()}
	m.orgs = append(m.orgs, org)
	var teams []models.Team
	for _, n := range teamNames {
		t := models.Team{ID: primitive.NewObjectID(), OrganizationID: org.ID, Name: n, Color: "#F66733"}
		teams = append(teams, t)
	}
	m.teams = append(m.teams, teams...)
	return org, teams
}

func (m *memStore) addMembers(team models.Team, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.users = append(m.users, models.User{
			ID:             primitive.NewObjectID(),
			CUID:           primitive.NewObjectID().Hex(),
			Email:          primitive.NewObjectID().Hex() + "@clemson.edu",
			OrganizationID: team.OrganizationID,
			TeamID:         team.ID,
		})
	}
}

func (m *memStore) ExistsByIdentity(_ context.Context, cuid, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.CUID == cuid || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountByTeam(_ context.Context, orgID primitive.ObjectID, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return nil, m.countErr
	}
	out := make(map[primitive.ObjectID]int64, len(teamIDs))
	for _, id := range teamIDs {
		out[id] = 0
	}
	for _, u := range m.users {
		if _, ok := out[u.TeamID]; ok && u.OrganizationID == orgID {
			out[u.TeamID]++
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceInsert {
		return models.User{}, userstore.ErrDuplicateIdentity
	}
	for _, ex := range m.users {
		if ex.CUID == u.CUID || ex.Email == u.Email {
			return models.User{}, userstore.ErrDuplicateIdentity
		}
	}
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, u)
	return u, nil
}

func (m *memStore) First(context.Context) (models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.orgs) == 0 {
		return models.Organization{}, mongo.ErrNoDocuments
	}
	return m.orgs[0], nil
}

func (m *memStore) ListByOrg(_ context.Context, orgID primitive.ObjectID) ([]models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Team{}
	for _, t := range m.teams {
		if t.OrganizationID == orgID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Touch(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[id]++
	return nil
}

func (m *memStore) membersOf(teamID primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.TeamID == teamID {
			n++
		}
	}
	return n
}

func newTestService(m *memStore) *Service {
	return &Service{
		Users:  m,
		Orgs:   m,
		Teams:  m,
		Tx:     txn.Direct{},
		Picker: teambalance.New(),
		Log:    zap.NewNop(),
	}
}
