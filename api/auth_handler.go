package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    *auth.TokenService
}

func newAuthHandler(userRepo *database.UserRepo, tokens *auth.TokenService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

// login exchanges email and password for a 7 day token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := requireFields(
			requiredField{"email", req.Email},
			requiredField{"password", req.Password},
		); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
		if errs.IsNotFound(err) {
			h.logger.Warn().Str("email", strings.ToLower(req.Email)).Msg("Login attempt for unknown user")
			h.responder.WriteError(w, errs.NewInvalidLoginError())
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.logger.Warn().Str("email", user.Email).Msg("Login attempt with wrong password")
			h.responder.WriteError(w, errs.NewInvalidLoginError())
			return
		}

		token, err := h.tokens.Issue(auth.Identity{
			UserID: user.ID.String(),
			Email:  user.Email,
			Role:   user.Role,
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issue token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token, User: user})
	}
}
