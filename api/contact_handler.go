package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 15 * time.Second

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
	notifier    services.ContactNotifier
}

func newContactHandler(contactRepo *database.ContactRepo, notifier services.ContactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// getAllMessages lists every contact message, newest first
func (h contactHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.contactRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find messages", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// createMessage stores a contact form submission. Notification failures are
// logged and never fail the submission.
func (h contactHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := readJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := req.toMessage()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contactRepo.Add(r.Context(), msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create message", "message", err))
			return
		}

		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyContact(notifyCtx, msg); err != nil {
			h.logger.Warn().Err(err).Str("messageID", msg.ID.String()).Msg("Failed to send contact notification")
		}

		response := ack("Message sent successfully")
		response.ID = &msg.ID
		h.responder.WriteCreated(w, response)
	}
}

// markRead flips a message to read. Repeating it is harmless.
func (h contactHandler) markRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseID(r, "messageID", "message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req MarkReadRequest
		if err := readJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.contactRepo.MarkRead(r.Context(), messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("mark message read", "message", err))
			return
		}

		h.responder.WriteJSON(w, msg)
	}
}

func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseID(r, "messageID", "message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contactRepo.Delete(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete message", "message", err))
			return
		}

		h.responder.WriteJSON(w, ack("message deleted successfully"))
	}
}
