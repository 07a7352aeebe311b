package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, r router) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(db, r.startupTime),
		authHandler:    newAuthHandler(db.UserRepo(), r.tokens),
		projectHandler: newProjectHandler(db.ProjectRepo()),
		skillHandler:   newSkillHandler(db.SkillRepo()),
		contactHandler: newContactHandler(db.ContactRepo(), r.notifier),
		adminHandler:   newAdminHandler(db, r.views, r.config.AdminEmail, r.config.AdminPassword),
	}
}

type healthHandler struct {
	responder   Responder
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		database:    db,
		startupTime: startupTime,
	}
}

// health reports uptime and database reachability
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		response := HealthResponse{
			Status:   "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
			Database: "connected",
		}
		status := http.StatusOK
		if err := h.database.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Database ping failed")
			response.Status = "degraded"
			response.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}

		h.responder.WriteJSONStatus(w, status, response)
	}
}
