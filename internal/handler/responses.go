package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

// StatusResponse is the envelope used by every non-state response
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ResetResponse carries the fresh state document written by a reset
type ResetResponse struct {
	Status string          `json:"status"`
	State  json.RawMessage `json:"state"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		respondRaw(w, http.StatusInternalServerError, []byte(`{"status":"error"}`))
		return
	}

	respondRaw(w, status, buf.Bytes())
}

// respondRaw writes an already-encoded JSON document
func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, StatusResponse{Status: StatusError, Error: message})
}

// mapErrorToResponse maps domain errors to HTTP status codes and messages
func mapErrorToResponse(err error) (int, string) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, ErrMsgInvalidProfile
	case errors.Is(err, domain.ErrParse):
		return http.StatusBadRequest, ErrMsgInvalidState
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondErr logs err and writes its mapped response
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapErrorToResponse(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgStoreFailed, "error", err)
	} else {
		log.Warn(LogMsgStateRejected, "status", status, "error", err)
	}
	respondError(w, status, msg)
}
