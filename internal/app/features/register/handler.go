// internal/app/features/register/handler.go
package register

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	"github.com/dalemusser/clemsonquest/internal/app/system/ratelimit"
	"github.com/dalemusser/clemsonquest/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Registrar is satisfied by *Service.
type Registrar interface {
	Register(ctx context.Context, in Input) (Record, error)
}

// Handler serves registration requests.
type Handler struct {
	Svc     Registrar
	Limiter *ratelimit.Limiter
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a register Handler. A nil limiter disables rate limiting.
func NewHandler(svc Registrar, limiter *ratelimit.Limiter, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Limiter: limiter, ErrLog: errLog, Log: logger}
}

// HandleRegister registers a user and assigns a team.
// POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode register body failed", err, "Invalid JSON body")
		return
	}
	h.Log.Debug("register request", zap.String("cuid", in.CUID))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rec, err := h.Svc.Register(ctx, in)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "register failed", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) tooMany(w http.ResponseWriter, r *http.Request) {
	h.ErrLog.LogStatus(w, r, http.StatusTooManyRequests, MsgTooManyAttempts, nil)
}

// Routes returns a subrouter mounted under /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		if h.Limiter != nil {
			pr.Use(ratelimit.PerIP(h.Limiter, h.tooMany))
		}
		pr.Post("/register", h.HandleRegister)
	})
	return r
}
