package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/clemsonquest/internal/app/store/users"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"github.com/dalemusser/clemsonquest/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newUser(team models.Team, cuid, email string) models.User {
	return models.User{
		CUID:           cuid,
		FirstName:      "  Tiger ",
		LastName:       "Paw",
		Email:          email,
		OrganizationID: team.OrganizationID,
		TeamID:         team.ID,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	team := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")

	created, err := store.Create(ctx, newUser(team, "C12345678", " Tiger@Clemson.EDU "))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "tiger@clemson.edu" {
		t.Errorf("Email = %q, want lower-cased and trimmed", created.Email)
	}
	if created.FirstName != "Tiger" {
		t.Errorf("FirstName = %q, want trimmed", created.FirstName)
	}
	if created.Role != models.RoleUser {
		t.Errorf("Role = %q, want default USER", created.Role)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != team.ID {
		t.Errorf("TeamID = %v, want %v", got.TeamID, team.ID)
	}
}

func TestStore_Create_Duplicates(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	team := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")

	if _, err := store.Create(ctx, newUser(team, "C12345678", "a@clemson.edu")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	tests := []struct {
		name  string
		cuid  string
		email string
	}{
		{"same cuid", "C12345678", "b@clemson.edu"},
		{"same email", "C87654321", "a@clemson.edu"},
		{"same email other case", "C87654321", "A@CLEMSON.EDU"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, newUser(team, tt.cuid, tt.email))
			if !errors.Is(err, userstore.ErrDuplicateIdentity) {
				t.Errorf("expected ErrDuplicateIdentity, got %v", err)
			}
		})
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := models.Team{ID: primitive.NewObjectID(), OrganizationID: primitive.NewObjectID()}

	u := newUser(team, "C12345678", "a@clemson.edu")
	u.Role = "superuser"
	if _, err := store.Create(ctx, u); err == nil {
		t.Error("expected error for unknown role")
	}

	u = newUser(models.Team{}, "C12345678", "a@clemson.edu")
	if _, err := store.Create(ctx, u); err == nil {
		t.Error("expected error for missing team")
	}
}

func TestStore_ExistsByIdentity(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	team := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")
	fixtures.CreateUser(ctx, "C12345678", "a@clemson.edu", team)

	tests := []struct {
		cuid, email string
		want        bool
	}{
		{"C12345678", "other@clemson.edu", true},
		{"C99999999", "A@Clemson.edu", true},
		{"C99999999", "other@clemson.edu", false},
	}
	for _, tt := range tests {
		got, err := store.ExistsByIdentity(ctx, tt.cuid, tt.email)
		if err != nil {
			t.Fatalf("ExistsByIdentity failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("ExistsByIdentity(%q, %q) = %v, want %v", tt.cuid, tt.email, got, tt.want)
		}
	}
}

func TestStore_CountByTeam(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	t1 := fixtures.CreateTeam(ctx, org.ID, "Team 1", "#F66733")
	t2 := fixtures.CreateTeam(ctx, org.ID, "Team 2", "#522D80")
	fixtures.CreateUser(ctx, "C00000001", "a@clemson.edu", t1)
	fixtures.CreateUser(ctx, "C00000002", "b@clemson.edu", t1)

	counts, err := store.CountByTeam(ctx, org.ID, []primitive.ObjectID{t1.ID, t2.ID})
	if err != nil {
		t.Fatalf("CountByTeam failed: %v", err)
	}
	if counts[t1.ID] != 2 || counts[t2.ID] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupSchemaDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByEmail(ctx, "nobody@clemson.edu"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
