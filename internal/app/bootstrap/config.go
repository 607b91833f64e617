// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clemsonquest/internal/app/system/adminauth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devAdminTokenSecret is the default admin token secret. It is refused in prod.
const devAdminTokenSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for ClemsonQuest.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, admin_token_secret, etc.
//   - Environment variables: CLEMSONQUEST_MONGO_URI, CLEMSONQUEST_ADMIN_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --admin_token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clemson_quest", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "admin_token_secret", Default: devAdminTokenSecret, Desc: "HS256 secret for admin bearer tokens (must be strong in production)"},
	{Name: "admin_token_issuer", Default: "clemsonquest", Desc: "Issuer claim expected on admin tokens"},

	{Name: "register_rate_limit", Default: 20, Desc: "Registration attempts allowed per client IP per window"},
	{Name: "register_rate_window", Default: "1m", Desc: "Registration rate limit window (e.g., 1m, 90s)"},

	{Name: "timeout_short", Default: "0s", Desc: "Timeout for single-document reads (0s keeps the built-in default)"},
	{Name: "timeout_medium", Default: "0s", Desc: "Timeout for list queries and single writes"},
	{Name: "timeout_long", Default: "0s", Desc: "Timeout for transactional work such as registration"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig reads .env files, config files,
// environment variables and flags, with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLEMSONQUEST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AdminTokenSecret: appValues.String("admin_token_secret"),
		AdminTokenIssuer: appValues.String("admin_token_issuer"),

		RegisterRateLimit:  appValues.Int("register_rate_limit"),
		RegisterRateWindow: appValues.Duration("register_rate_window", time.Minute),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format before any connection is attempted,
// requires a usable admin token secret, and refuses the development
// secret in production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must be set")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if len(appCfg.AdminTokenSecret) < adminauth.MinSecretLen {
		return adminauth.ErrWeakSecret
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.AdminTokenSecret == devAdminTokenSecret {
		return errors.New("admin_token_secret must be changed from the development default in prod")
	}

	if appCfg.RegisterRateLimit <= 0 || appCfg.RegisterRateWindow <= 0 {
		return errors.New("register_rate_limit and register_rate_window must be positive")
	}
	return nil
}
