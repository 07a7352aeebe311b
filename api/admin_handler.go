package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type adminHandler struct {
	responder     Responder
	logger        zerolog.Logger
	database      database.Database
	views         services.ViewCounter
	adminEmail    string
	adminPassword string
}

func newAdminHandler(db database.Database, views services.ViewCounter, adminEmail, adminPassword string) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		database:      db,
		views:         views,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// getStats gathers the dashboard counters concurrently. A failing view
// counter is logged and reported as zero views.
func (h adminHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats StatsResponse
		g, ctx := errgroup.WithContext(r.Context())

		g.Go(func() (err error) {
			stats.TotalProjects, err = h.database.ProjectRepo().Count(ctx)
			return err
		})
		g.Go(func() (err error) {
			stats.TotalSkills, err = h.database.SkillRepo().Count(ctx)
			return err
		})
		g.Go(func() (err error) {
			stats.UnreadMessages, err = h.database.ContactRepo().CountUnread(ctx)
			return err
		})
		g.Go(func() error {
			total, err := h.views.Total(ctx)
			if err != nil {
				h.logger.Warn().Err(err).Msg("Failed to read page views")
				return nil
			}
			stats.TotalViews = total
			return nil
		})

		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "stats", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}

// seed creates the admin account and demo content when missing
func (h adminHandler) seed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.database.Seed(r.Context(), h.adminEmail, h.adminPassword)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, SeedResponse{
			Status:     "success",
			Message:    "Database seeded successfully",
			SeedResult: result,
		})
	}
}

// recordView counts one landing page visit
func (h adminHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.views.Record(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ViewsResponse{TotalViews: total})
	}
}
