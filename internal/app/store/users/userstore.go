package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clemsonquest/internal/app/system/normalize"
	"github.com/dalemusser/clemsonquest/internal/app/system/orgutil"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("users")}
}

var (
	// ErrDuplicateIdentity is returned when a user with the same CUID or
	// email already exists.
	ErrDuplicateIdentity = errors.New("a user with this CUID or email already exists")
	errBadRole           = errors.New(`role must be "USER"|"ADMIN"`)
	errTeamNeeded        = errors.New("user must have organization_id and team_id")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByIdentity reports whether any user has the given CUID or email.
func (s *Store) ExistsByIdentity(ctx context.Context, cuid, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"cuid": normalize.CUID(cuid)},
		bson.M{"email": normalize.Email(email)},
	}}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// CountByTeam returns member counts for teamIDs within orgID. Teams with no
// members are present with a count of 0.
func (s *Store) CountByTeam(ctx context.Context, orgID primitive.ObjectID, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return orgutil.TeamMemberCounts(ctx, s.db, orgID, teamIDs)
}

// Create inserts a new user after normalizing and validating fields.
// A unique-index violation on cuid or email is reported as ErrDuplicateIdentity.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.CUID = normalize.CUID(u.CUID)
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Role != models.RoleUser && u.Role != models.RoleAdmin {
		return models.User{}, errBadRole
	}
	if u.OrganizationID.IsZero() || u.TeamID.IsZero() {
		return models.User{}, errTeamNeeded
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateIdentity
		}
		return models.User{}, err
	}
	return u, nil
}
