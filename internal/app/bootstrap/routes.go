// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"sync"

	debugfeature "github.com/dalemusser/clemsonquest/internal/app/features/debug"
	devseedfeature "github.com/dalemusser/clemsonquest/internal/app/features/devseed"
	errorsfeature "github.com/dalemusser/clemsonquest/internal/app/features/errors"
	healthfeature "github.com/dalemusser/clemsonquest/internal/app/features/health"
	organizationsfeature "github.com/dalemusser/clemsonquest/internal/app/features/organizations"
	registerfeature "github.com/dalemusser/clemsonquest/internal/app/features/register"
	organizationstore "github.com/dalemusser/clemsonquest/internal/app/store/organizations"
	teamstore "github.com/dalemusser/clemsonquest/internal/app/store/teams"
	userstore "github.com/dalemusser/clemsonquest/internal/app/store/users"
	"github.com/dalemusser/clemsonquest/internal/app/system/adminauth"
	"github.com/dalemusser/clemsonquest/internal/app/system/provision"
	"github.com/dalemusser/clemsonquest/internal/app/system/ratelimit"
	"github.com/dalemusser/clemsonquest/internal/app/system/teambalance"
	"github.com/dalemusser/clemsonquest/internal/app/system/txn"
	"github.com/dalemusser/clemsonquest/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var (
	limitersMu sync.Mutex
	limiters   []*ratelimit.Limiter
)

func trackLimiter(l *ratelimit.Limiter) *ratelimit.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()
	limiters = append(limiters, l)
	return l
}

func stopLimiters() {
	limitersMu.Lock()
	defer limitersMu.Unlock()
	for _, l := range limiters {
		l.Stop()
	}
	limiters = nil
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Stores and services are built once here
// and shared by the feature handlers.
//
// Routes:
//   - /health                 liveness and Mongo connectivity
//   - /debug/organizations    raw organization listing
//   - /dev/seed-basic         seed the first organization (not mounted in prod)
//   - /admin/organizations    admin bearer token required
//   - /auth/register          rate limited per client IP
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	signer, err := adminauth.NewSigner(appCfg.AdminTokenSecret, appCfg.AdminTokenIssuer)
	if err != nil {
		logger.Error("admin token signer init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	orgStore := organizationstore.New(db)
	teamStore := teamstore.New(db)
	userStore := userstore.New(db)
	runner := txn.New(deps.MongoClient, logger)

	prov := &provision.Provisioner{
		Orgs:  orgStore,
		Teams: teamStore,
		Tx:    runner,
		Log:   logger,
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	debugHandler := debugfeature.NewHandler(orgStore, errLog, logger)
	r.Mount("/debug", debugfeature.Routes(debugHandler))

	if coreCfg == nil || coreCfg.Env != "prod" {
		seedHandler := devseedfeature.NewHandler(prov, errLog, logger)
		r.Mount("/dev", devseedfeature.Routes(seedHandler))
	}

	orgHandler := organizationsfeature.NewHandler(orgStore, teamStore, prov, errLog, logger)
	requireAdmin := signer.RequireRole(errLog.LogStatus, models.RoleAdmin)
	r.Mount("/admin/organizations", organizationsfeature.Routes(orgHandler, requireAdmin))

	svc := &registerfeature.Service{
		Users:  userStore,
		Orgs:   orgStore,
		Teams:  teamStore,
		Tx:     runner,
		Picker: teambalance.New(),
		Log:    logger,
	}
	limiter := trackLimiter(ratelimit.New(appCfg.RegisterRateLimit, appCfg.RegisterRateWindow))
	registerHandler := registerfeature.NewHandler(svc, limiter, errLog, logger)
	r.Mount("/auth", registerfeature.Routes(registerHandler))

	return r, nil
}
