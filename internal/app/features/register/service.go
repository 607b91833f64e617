// internal/app/features/register/service.go
package register

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	userstore "github.com/dalemusser/clemsonquest/internal/app/store/users"
	"github.com/dalemusser/clemsonquest/internal/app/system/apperr"
	"github.com/dalemusser/clemsonquest/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clemsonquest/internal/app/system/normalize"
	"github.com/dalemusser/clemsonquest/internal/app/system/teambalance"
	"github.com/dalemusser/clemsonquest/internal/app/system/txn"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Messages returned to clients.
const (
	MsgMissingFields   = "Missing required fields"
	MsgBadCUID         = "CUID must be in format C12345678"
	MsgBadEmail        = "Email must be a .edu address"
	MsgDuplicate       = "User with this CUID or email already exists"
	MsgNotConfigured   = "No organization/teams configured. Run /dev/seed-basic first."
	MsgTooManyAttempts = "Too many registration attempts"
)

var cuidPattern = regexp.MustCompile(`^C\d{8}$`)

// Users is the user storage registration needs.
type Users interface {
	ExistsByIdentity(ctx context.Context, cuid, email string) (bool, error)
	CountByTeam(ctx context.Context, orgID primitive.ObjectID, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	Create(ctx context.Context, u models.User) (models.User, error)
}

// Organizations is the organization storage registration needs.
type Organizations interface {
	First(ctx context.Context) (models.Organization, error)
}

// Teams is the team storage registration needs.
type Teams interface {
	ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Team, error)
	Touch(ctx context.Context, id primitive.ObjectID) error
}

// Input is a registration request.
type Input struct {
	CUID      string `json:"cuid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TeamRef is the team summary included in a Record.
type TeamRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Color string             `json:"color"`
}

// OrgRef is the organization summary included in a Record.
type OrgRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// Record is a registered user with its team and organization.
type Record struct {
	ID             primitive.ObjectID `json:"id"`
	CUID           string             `json:"cuid"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	Email          string             `json:"email"`
	Role           string             `json:"role"`
	OrganizationID primitive.ObjectID `json:"organizationId"`
	TeamID         primitive.ObjectID `json:"teamId"`
	Team           TeamRef            `json:"team"`
	Organization   OrgRef             `json:"organization"`
}

// Service registers users and assigns each to a least-populated team.
type Service struct {
	Users  Users
	Orgs   Organizations
	Teams  Teams
	Tx     txn.Runner
	Picker *teambalance.Picker
	Log    *zap.Logger
}

// Validate cleans in and checks it, returning the first failure as an
// apperr Validation error. Names have markup stripped, every field is
// trimmed, and the email is lower-cased.
func Validate(in Input) (Input, error) {
	out := Input{
		CUID:      normalize.CUID(in.CUID),
		FirstName: normalize.Name(htmlsanitize.StripTags(in.FirstName)),
		LastName:  normalize.Name(htmlsanitize.StripTags(in.LastName)),
		Email:     normalize.Email(in.Email),
	}
	if out.CUID == "" || out.FirstName == "" || out.LastName == "" || out.Email == "" {
		return Input{}, apperr.Validation(MsgMissingFields)
	}
	if !cuidPattern.MatchString(out.CUID) {
		return Input{}, apperr.Validation(MsgBadCUID)
	}
	// email is already lower-cased, so this is a case-insensitive match
	if !strings.HasSuffix(out.Email, ".edu") {
		return Input{}, apperr.Validation(MsgBadEmail)
	}
	return out, nil
}

// Register validates in, then inside one transaction checks for an existing
// identity, picks the least-populated team of the first organization, and
// stores the user.
func (s *Service) Register(ctx context.Context, in Input) (Record, error) {
	clean, err := Validate(in)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = s.Tx.Do(ctx, func(ctx context.Context) error {
		r, err := s.register(ctx, clean)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return Record{}, err
		}
		return Record{}, apperr.Internal(fmt.Errorf("register: %w", err))
	}

	s.Log.Info("user registered",
		zap.String("user_id", rec.ID.Hex()),
		zap.String("organization_id", rec.OrganizationID.Hex()),
		zap.String("team_id", rec.TeamID.Hex()),
		zap.String("team", rec.Team.Name))
	return rec, nil
}

func (s *Service) register(ctx context.Context, in Input) (Record, error) {
	exists, err := s.Users.ExistsByIdentity(ctx, in.CUID, in.Email)
	if err != nil {
		return Record{}, fmt.Errorf("check identity: %w", err)
	}
	if exists {
		return Record{}, apperr.Conflict(MsgDuplicate)
	}

	org, team, err := s.assignTeam(ctx)
	if err != nil {
		return Record{}, err
	}

	u, err := s.Users.Create(ctx, models.User{
		CUID:           in.CUID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Role:           models.RoleUser,
		OrganizationID: org.ID,
		TeamID:         team.ID,
	})
	if errors.Is(err, userstore.ErrDuplicateIdentity) {
		return Record{}, apperr.Conflict(MsgDuplicate)
	}
	if err != nil {
		return Record{}, fmt.Errorf("create user: %w", err)
	}

	return Record{
		ID:             u.ID,
		CUID:           u.CUID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		TeamID:         u.TeamID,
		Team:           TeamRef{ID: team.ID, Name: team.Name, Color: team.Color},
		Organization:   OrgRef{ID: org.ID, Name: org.Name},
	}, nil
}

// assignTeam resolves the first organization and picks one of its
// least-populated teams. The chosen team is touched so a concurrent
// registration choosing it too conflicts and retries on fresh counts.
func (s *Service) assignTeam(ctx context.Context) (models.Organization, models.Team, error) {
	org, err := s.Orgs.First(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, models.Team{}, apperr.Configuration(MsgNotConfigured)
	}
	if err != nil {
		return models.Organization{}, models.Team{}, fmt.Errorf("find first organization: %w", err)
	}

	teams, err := s.Teams.ListByOrg(ctx, org.ID)
	if err != nil {
		return models.Organization{}, models.Team{}, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return models.Organization{}, models.Team{}, apperr.Configuration(MsgNotConfigured)
	}

	ids := make([]primitive.ObjectID, len(teams))
	byID := make(map[primitive.ObjectID]models.Team, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
		byID[t.ID] = t
	}
	counts, err := s.Users.CountByTeam(ctx, org.ID, ids)
	if err != nil {
		return models.Organization{}, models.Team{}, fmt.Errorf("count team members: %w", err)
	}

	cands := make([]teambalance.Candidate, len(ids))
	for i, id := range ids {
		cands[i] = teambalance.Candidate{TeamID: id, Members: counts[id]}
	}
	chosen, err := s.Picker.Pick(cands)
	if err != nil {
		return models.Organization{}, models.Team{}, apperr.Configuration(MsgNotConfigured)
	}

	if err := s.Teams.Touch(ctx, chosen.TeamID); err != nil {
		return models.Organization{}, models.Team{}, fmt.Errorf("touch team: %w", err)
	}
	s.Log.Debug("team assigned",
		zap.String("team_id", chosen.TeamID.Hex()),
		zap.Int64("members_before", chosen.Members))
	return org, byID[chosen.TeamID], nil
}
