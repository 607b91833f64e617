// internal/app/features/organizations/list.go
package organizations

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	"github.com/dalemusser/clemsonquest/internal/app/system/timeouts"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList lists every organization together with its teams.
// GET /admin/organizations
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list organizations failed", err, "Internal server error")
		return
	}

	ids := make([]primitive.ObjectID, len(orgs))
	for i, o := range orgs {
		ids[i] = o.ID
	}
	teams, err := h.Teams.ListByOrgs(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list teams failed", err, "Internal server error")
		return
	}

	out := make([]models.OrganizationWithTeams, len(orgs))
	for i, o := range orgs {
		t := teams[o.ID]
		if t == nil {
			t = []models.Team{}
		}
		out[i] = models.OrganizationWithTeams{Organization: o, Teams: t}
	}
	apierrors.WriteJSON(w, http.StatusOK, out)
}
