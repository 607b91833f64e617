// internal/app/features/devseed/handler.go
// Package devseed seeds a development database with one organization and
// its default teams. It is only mounted outside production.
package devseed

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	"github.com/dalemusser/clemsonquest/internal/app/system/provision"
	"github.com/dalemusser/clemsonquest/internal/app/system/timeouts"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Seeder is satisfied by *provision.Provisioner.
type Seeder interface {
	SeedBasic(ctx context.Context) (provision.SeedResult, error)
}

type Handler struct {
	Seeder Seeder
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(seeder Seeder, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Seeder: seeder, ErrLog: errLog, Log: logger}
}

type existsResponse struct {
	Message        string `json:"message"`
	OrganizationID string `json:"organizationId"`
}

type seededResponse struct {
	Message        string        `json:"message"`
	OrganizationID string        `json:"organizationId"`
	Teams          []models.Team `json:"teams"`
}

// HandleSeedBasic creates "ClemsonQuest Org" and its teams unless an
// organization already exists.
// POST /dev/seed-basic
//
//	200 {"message":"Org already exists","organizationId":"…"}
//	201 {"message":"Seeded org and teams","organizationId":"…","teams":[…]}
func (h *Handler) HandleSeedBasic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Seeder.SeedBasic(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "seed-basic failed", err, "Internal server error")
		return
	}

	if !res.Created {
		apierrors.WriteJSON(w, http.StatusOK, existsResponse{
			Message:        "Org already exists",
			OrganizationID: res.Organization.ID.Hex(),
		})
		return
	}

	h.Log.Info("dev seed created organization",
		zap.String("organization_id", res.Organization.ID.Hex()),
		zap.Int("teams", len(res.Teams)))
	apierrors.WriteJSON(w, http.StatusCreated, seededResponse{
		Message:        "Seeded org and teams",
		OrganizationID: res.Organization.ID.Hex(),
		Teams:          res.Teams,
	})
}

// Routes returns a subrouter mounted under /dev.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/seed-basic", h.HandleSeedBasic)
	return r
}
