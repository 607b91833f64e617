// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clemsonquest/internal/app/system/normalize"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateTeam = errors.New("a team with this name already exists in the organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// CreateMany inserts teams for orgID in the given order and returns them
// with IDs assigned.
func (s *Store) CreateMany(ctx context.Context, orgID primitive.ObjectID, teams []models.Team) ([]models.Team, error) {
	if len(teams) == 0 {
		return []models.Team{}, nil
	}
	now := time.Now().UTC()
	out := make([]models.Team, len(teams))
	docs := make([]any, len(teams))
	for i, t := range teams {
		t.ID = primitive.NewObjectID()
		t.OrganizationID = orgID
		t.Name = normalize.Name(t.Name)
		t.NameCI = text.Fold(t.Name)
		t.AssignSeq = 0
		t.LastAssignedAt = nil
		t.CreatedAt = now
		t.UpdatedAt = now
		out[i] = t
		docs[i] = t
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		// InsertMany reports duplicates as a BulkWriteException
		if wafflemongo.IsDup(err) || mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateTeam
		}
		return nil, err
	}
	return out, nil
}

var byCreation = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// ListByOrg returns the teams of orgID in creation order.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Team, error) {
	return s.find(ctx, bson.M{"organization_id": orgID})
}

// ListByOrgs returns teams for several organizations grouped by organization ID.
func (s *Store) ListByOrgs(ctx context.Context, orgIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Team, error) {
	out := make(map[primitive.ObjectID][]models.Team, len(orgIDs))
	if len(orgIDs) == 0 {
		return out, nil
	}
	teams, err := s.find(ctx, bson.M{"organization_id": bson.M{"$in": orgIDs}})
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		out[t.OrganizationID] = append(out[t.OrganizationID], t)
	}
	return out, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(byCreation))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	teams := []models.Team{}
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// Touch records an assignment to the team by bumping assign_seq.
// Two transactions that touch the same team conflict, so concurrent
// registrations cannot both act on a stale member count for it.
// Returns mongo.ErrNoDocuments if the team does not exist.
func (s *Store) Touch(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"assign_seq": int64(1)},
		"$set": bson.M{"last_assigned_at": now, "updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
