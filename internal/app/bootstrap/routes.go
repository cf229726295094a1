// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/helmdesk/internal/app/features/health"
	leadsfeature "github.com/dalemusser/helmdesk/internal/app/features/leads"
	loginfeature "github.com/dalemusser/helmdesk/internal/app/features/login"
	logoutfeature "github.com/dalemusser/helmdesk/internal/app/features/logout"
	rolesfeature "github.com/dalemusser/helmdesk/internal/app/features/roles"
	usersfeature "github.com/dalemusser/helmdesk/internal/app/features/users"
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. HelmDesk initializes the session store,
// applies the session-loading middleware, and mounts the JSON feature
// routers: health, authentication, and the user, role, and lead resources.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in,
	// making the current user available to all handlers via auth.CurrentUser.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Directory resources
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	rolesHandler := rolesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/roles", rolesfeature.Routes(rolesHandler))

	leadsHandler := leadsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/leads", leadsfeature.Routes(leadsHandler))

	return r, nil
}
