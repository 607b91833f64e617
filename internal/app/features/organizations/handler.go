// internal/app/features/organizations/handler.go
package organizations

import (
	"context"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrgLister lists organizations.
type OrgLister interface {
	List(ctx context.Context) ([]models.Organization, error)
}

// TeamLister loads teams for many organizations at once.
type TeamLister interface {
	ListByOrgs(ctx context.Context, orgIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.Team, error)
}

// Provisioner creates an organization with its default teams.
type Provisioner interface {
	CreateWithDefaultTeams(ctx context.Context, name string) (models.OrganizationWithTeams, error)
}

// Handler is the feature-level entry point for admin organization management.
type Handler struct {
	Orgs      OrgLister
	Teams     TeamLister
	Provision Provisioner
	ErrLog    *apierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a new Organizations handler.
func NewHandler(orgs OrgLister, teams TeamLister, prov Provisioner, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:      orgs,
		Teams:     teams,
		Provision: prov,
		ErrLog:    errLog,
		Log:       logger,
	}
}
