package handler

import (
	"context"
	"net/http"
	"time"
)

// readinessTimeout bounds the store ping behind /readyz
const readinessTimeout = 2 * time.Second

// HealthChecker is implemented by components that can report readiness
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HandleHealth provides a basic liveness check
func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, StatusResponse{Status: StatusOK})
	}
}

// HandleReadyz reports whether the state store is reachable
func HandleReadyz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := checker.Ping(ctx); err != nil {
			loggerFor(r).Error(LogMsgReadinessFailed, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status: StatusUnavailable,
				Error:  ErrMsgStoreUnavailable,
			})
			return
		}

		respondJSON(w, http.StatusOK, StatusResponse{Status: StatusOK})
	}
}
