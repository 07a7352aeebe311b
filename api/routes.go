package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/models"
)

// setupRoutes mounts the public routes and the admin-only group
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())
	r.Post("/auth/login", handlers.authHandler.login())

	r.Get("/projects", handlers.projectHandler.getAllProjects())
	r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
	r.Get("/skills", handlers.skillHandler.getFeaturedSkills())
	r.Post("/contact", handlers.contactHandler.createMessage())
	r.Post("/views", handlers.adminHandler.recordView())
	r.Post("/admin/seed", handlers.adminHandler.seed())

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireRole(models.RoleAdmin))

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Put("/skills/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skills/{skillID}", handlers.skillHandler.deleteSkill())

		r.Get("/contact", handlers.contactHandler.getAllMessages())
		r.Patch("/contact/{messageID}", handlers.contactHandler.markRead())
		r.Delete("/contact/{messageID}", handlers.contactHandler.deleteMessage())

		r.Get("/admin/stats", handlers.adminHandler.getStats())
	})
}
