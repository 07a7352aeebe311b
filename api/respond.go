package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

const (
	maxRequestBodySize  = 1 << 20 // 1MB
	maxResponseSize     = 10 * 1024 * 1024
	internalErrorString = "Internal server error"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusCreated, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		r.writeInternal(w)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.writeInternal(w)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders an ApiErr with its status code. Anything else, and any
// ApiErr in the 5xx range, is logged and answered with an opaque 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.IsInternal() {
		event := r.logger.Error().Err(err)
		if apiErr != nil {
			event = event.Str("fullError", apiErr.GetFullError())
		}
		event.Msg("internal error")
		r.writeInternal(w)
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

func (r Responder) writeInternal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error":"` + internalErrorString + `","status":"error"}`))
}

// readJSON decodes a size limited request body holding a single JSON value into dst
func readJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxRequestBodySize)
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("body must contain a single JSON value")
		}
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
	}
	return errs.NewInvalidJSONError(err)
}

// parseID reads a uuid path parameter. A malformed id cannot name any stored
// document, so it is answered like a missing one.
func parseID(req *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(req, param))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
