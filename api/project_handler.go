package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects lists every project, newest first
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject validates and stores a new project
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProjectRequest
		if err := readJSON(w, r, &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := req.toProject()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ID.String()).Msg("Project created")
		h.responder.WriteCreated(w, project)
	}
}

// updateProject replaces every field of an existing project
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ProjectRequest
		if err := readJSON(w, r, &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := req.toProject()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.ID = projectID

		if err := h.projectRepo.Replace(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, ack("project deleted successfully"))
	}
}
