package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"engagepulse/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service sentinels onto HTTP status codes. Storage
// and other unexpected failures become an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, "survey not found")
	case errors.Is(err, service.ErrTokenNotFound):
		writeError(w, http.StatusNotFound, "token not found")
	case errors.Is(err, service.ErrTokenAlreadyUsed):
		writeError(w, http.StatusConflict, "token already used")
	case errors.Is(err, service.ErrTokenExpired):
		writeError(w, http.StatusGone, "token expired")
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid status transition")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
