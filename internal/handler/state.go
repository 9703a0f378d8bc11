package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmgblabel-png/bigharvestfarming/internal/codec"
	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/store"
)

// ResolveProfile picks the save slot for a request: the profile query
// parameter, then the X-Profile header, then the fallback profile. The
// result is sanitized.
func ResolveProfile(r *http.Request) (string, error) {
	raw := r.URL.Query().Get(domain.QueryParamProfile)
	if raw == "" {
		raw = r.Header.Get(domain.HeaderProfile)
	}
	if raw == "" {
		return domain.FallbackProfile, nil
	}
	return domain.SanitizeProfile(raw)
}

// HandleGetState serves the stored document, or a minimal state when the
// profile has never been saved
func HandleGetState(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := ResolveProfile(r)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		log := loggerFor(r).With(logger.AttrKeyProfile, profile)

		doc, err := s.Load(r.Context(), profile)
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			log.Info(LogMsgStateDefaulted)
			respondRaw(w, http.StatusOK, []byte(codec.MakeMinimal(0, 0)))
		case err != nil:
			respondErr(w, r, err)
		default:
			log.Debug(LogMsgStateLoaded, "bytes", len(doc))
			respondRaw(w, http.StatusOK, []byte(doc))
		}
	}
}

// HandleSaveState stores the request body as the profile's document. The
// body must decode as a state document; it is stored as sent.
func HandleSaveState(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := ResolveProfile(r)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		buf := getBuffer()
		defer putBuffer(buf)

		if _, err := buf.ReadFrom(r.Body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondErr(w, r, err)
				return
			}
			respondError(w, http.StatusBadRequest, ErrMsgUnreadableBody)
			return
		}

		doc := string(bytes.TrimSpace(buf.Bytes()))
		if _, err := codec.Decode(doc); err != nil {
			respondErr(w, r, err)
			return
		}

		if err := s.Save(r.Context(), profile, doc); err != nil {
			respondErr(w, r, err)
			return
		}

		loggerFor(r).Info(LogMsgStateSaved, logger.AttrKeyProfile, profile, "bytes", len(doc))
		respondJSON(w, http.StatusOK, StatusResponse{Status: StatusOK})
	}
}

// HandleReset replaces the profile with a minimal state and returns it
func HandleReset(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := ResolveProfile(r)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		doc := codec.MakeMinimal(0, 0)
		if err := s.Save(r.Context(), profile, doc); err != nil {
			respondErr(w, r, fmt.Errorf("reset %s: %w", profile, err))
			return
		}

		loggerFor(r).Info(LogMsgStateReset, logger.AttrKeyProfile, profile)
		respondJSON(w, http.StatusOK, ResetResponse{Status: StatusOK, State: json.RawMessage(doc)})
	}
}

func loggerFor(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
