// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	organizationstore "github.com/dalemusser/clemsonquest/internal/app/store/organizations"
	teamstore "github.com/dalemusser/clemsonquest/internal/app/store/teams"
	"github.com/dalemusser/clemsonquest/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clemsonquest/internal/app/system/normalize"
	"github.com/dalemusser/clemsonquest/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type createRequest struct {
	Name string `json:"name"`
}

// HandleCreate creates an organization with the four default teams.
// POST /admin/organizations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create organization body failed", err, "Invalid JSON body")
		return
	}
	name := normalize.Name(htmlsanitize.StripTags(req.Name))
	if name == "" {
		h.ErrLog.LogBadRequest(w, r, "create organization: missing name", nil, "Name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Provision.CreateWithDefaultTeams(ctx, name)
	switch {
	case errors.Is(err, organizationstore.ErrDuplicateOrganization), errors.Is(err, teamstore.ErrDuplicateTeam):
		h.ErrLog.LogStatus(w, r, http.StatusConflict, "An organization with this name already exists", nil)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create organization failed", err, "Internal server error")
		return
	}

	h.Log.Info("admin created organization",
		zap.String("organization_id", org.ID.Hex()),
		zap.String("name", org.Name))
	apierrors.WriteJSON(w, http.StatusCreated, org)
}
