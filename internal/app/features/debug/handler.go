// internal/app/features/debug/handler.go
// Package debug exposes read-only endpoints for confirming the database
// is reachable and populated.
package debug

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	"github.com/dalemusser/clemsonquest/internal/app/system/timeouts"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrgLister lists organizations.
type OrgLister interface {
	List(ctx context.Context) ([]models.Organization, error)
}

type Handler struct {
	Orgs   OrgLister
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(orgs OrgLister, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Orgs: orgs, ErrLog: errLog, Log: logger}
}

// ServeOrganizations lists all organizations.
// GET /debug/organizations
func (h *Handler) ServeOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "debug: list organizations failed", err, "Database error")
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, orgs)
}

// Routes returns a subrouter mounted under /debug.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/organizations", h.ServeOrganizations)
	return r
}
