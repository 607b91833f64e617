// internal/app/features/organizations/routes.go
package organizations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin organization routes under the base path
// (typically "/admin/organizations" from bootstrap). requireAdmin guards
// every route.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireAdmin)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	return r
}
