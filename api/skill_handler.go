package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// getFeaturedSkills lists featured skills in display order
func (h skillHandler) getFeaturedSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindFeatured(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SkillRequest
		if err := readJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := req.toSkill()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Add(r.Context(), skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill", "skill", err))
			return
		}

		h.responder.WriteCreated(w, skill)
	}
}

func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(r, "skillID", "skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req SkillRequest
		if err := readJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := req.toSkill()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skill.ID = skillID

		if err := h.skillRepo.Replace(r.Context(), skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update skill", "skill", err))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(r, "skillID", "skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete skill", "skill", err))
			return
		}

		h.responder.WriteJSON(w, ack("skill deleted successfully"))
	}
}
