package orgutil_test

import (
	"testing"

	"github.com/dalemusser/clemsonquest/internal/app/system/orgutil"
	"github.com/dalemusser/clemsonquest/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAggregateCountByField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Count Org")
	t1 := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")
	t2 := fixtures.CreateTeam(ctx, org.ID, "Team 2", "#522D80")

	fixtures.CreateUser(ctx, "C00000001", "a@clemson.edu", t1)
	fixtures.CreateUser(ctx, "C00000002", "b@clemson.edu", t1)
	fixtures.CreateUser(ctx, "C00000003", "c@clemson.edu", t2)

	counts, err := orgutil.AggregateCountByField(ctx, db, "users",
		bson.M{"organization_id": org.ID}, "team_id")
	if err != nil {
		t.Fatalf("AggregateCountByField failed: %v", err)
	}
	if counts[t1.ID] != 2 {
		t.Errorf("team 1 count = %d, want 2", counts[t1.ID])
	}
	if counts[t2.ID] != 1 {
		t.Errorf("team 2 count = %d, want 1", counts[t2.ID])
	}
}

func TestTeamMemberCounts_IncludesEmptyTeams(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Count Org")
	t1 := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")
	t2 := fixtures.CreateTeam(ctx, org.ID, "Team 2", "#522D80")
	fixtures.CreateUser(ctx, "C00000001", "a@clemson.edu", t1)

	counts, err := orgutil.TeamMemberCounts(ctx, db, org.ID, []primitive.ObjectID{t1.ID, t2.ID})
	if err != nil {
		t.Fatalf("TeamMemberCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(counts))
	}
	if counts[t1.ID] != 1 || counts[t2.ID] != 0 {
		t.Errorf("counts = %v, want team1=1 team2=0", counts)
	}
}

func TestTeamMemberCounts_ScopedToOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	ta := fixtures.CreateTeam(ctx, orgA.ID, "Team 1", "#F66733")
	tb := fixtures.CreateTeam(ctx, orgB.ID, "Team 1", "#F66733")
	fixtures.CreateUser(ctx, "C00000001", "a@clemson.edu", tb)

	counts, err := orgutil.TeamMemberCounts(ctx, db, orgA.ID, []primitive.ObjectID{ta.ID})
	if err != nil {
		t.Fatalf("TeamMemberCounts failed: %v", err)
	}
	if counts[ta.ID] != 0 {
		t.Errorf("org A team count = %d, want 0", counts[ta.ID])
	}
}
