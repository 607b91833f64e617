// internal/app/system/provision/provision.go
// Package provision creates organizations together with their default teams.
package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/clemsonquest/internal/app/system/txn"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedOrganizationName is the organization created by SeedBasic.
const SeedOrganizationName = "ClemsonQuest Org"

// DefaultTeams returns the four teams every new organization starts with.
func DefaultTeams() []models.Team {
	return []models.Team{
		{Name: "Team 1", Color: "#F66733"},
		{Name: "Team 2", Color: "#522D80"},
		{Name: "Team 3", Color: "#FFB347"},
		{Name: "Team 4", Color: "#7FB3D5"},
	}
}

// Organizations is the organization storage provision needs.
type Organizations interface {
	Create(ctx context.Context, org models.Organization) (models.Organization, error)
	First(ctx context.Context) (models.Organization, error)
}

// Teams is the team storage provision needs.
type Teams interface {
	CreateMany(ctx context.Context, orgID primitive.ObjectID, teams []models.Team) ([]models.Team, error)
}

// Provisioner creates organizations and their teams in one unit of work.
type Provisioner struct {
	Orgs  Organizations
	Teams Teams
	Tx    txn.Runner
	Log   *zap.Logger
}

// CreateWithDefaultTeams creates an organization named name with DefaultTeams.
// Store errors (including duplicate-name errors) are returned wrapped.
func (p *Provisioner) CreateWithDefaultTeams(ctx context.Context, name string) (models.OrganizationWithTeams, error) {
	var out models.OrganizationWithTeams
	err := p.Tx.Do(ctx, func(ctx context.Context) error {
		org, err := p.Orgs.Create(ctx, models.Organization{Name: name})
		if err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		teams, err := p.Teams.CreateMany(ctx, org.ID, DefaultTeams())
		if err != nil {
			return fmt.Errorf("create default teams: %w", err)
		}
		out = models.OrganizationWithTeams{Organization: org, Teams: teams}
		return nil
	})
	if err != nil {
		return models.OrganizationWithTeams{}, err
	}
	p.Log.Info("organization provisioned",
		zap.String("organization_id", out.ID.Hex()),
		zap.String("name", out.Name),
		zap.Int("teams", len(out.Teams)))
	return out, nil
}

// SeedResult describes what SeedBasic did.
type SeedResult struct {
	Created      bool
	Organization models.Organization
	Teams        []models.Team // only set when Created
}

// SeedBasic ensures at least one organization exists. When one already
// exists it is returned untouched; otherwise SeedOrganizationName is created
// with the default teams.
func (p *Provisioner) SeedBasic(ctx context.Context) (SeedResult, error) {
	org, err := p.Orgs.First(ctx)
	if err == nil {
		return SeedResult{Organization: org}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return SeedResult{}, fmt.Errorf("find first organization: %w", err)
	}

	created, err := p.CreateWithDefaultTeams(ctx, SeedOrganizationName)
	if err != nil {
		return SeedResult{}, err
	}
	return SeedResult{Created: true, Organization: created.Organization, Teams: created.Teams}, nil
}
