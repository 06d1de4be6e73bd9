package handler

import (
	"encoding/json"
	"net/http"

	"orderdesk/internal/model"

	"github.com/rs/zerolog"
)

// Client-facing messages not owned by the domain.
const (
	msgServerError   = "Erreur serveur"
	msgNotFound      = "Endpoint non trouvé"
	msgInvalidBody   = "Corps de requête invalide"
	msgAPIDescriptor = "API de gestion de produits et commandes"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto the HTTP boundary. Domain
// errors keep their message; anything else is logged and hidden.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	switch model.KindOf(err) {
	case model.KindInvalidInput, model.KindInsufficientStock:
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case model.KindProductNotFound:
		writeError(w, http.StatusNotFound, err.Error(), logger)
	default:
		logger.Error().Err(err).Int("status", http.StatusInternalServerError).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: msgServerError})
	}
}

// Index serves the API description document on GET /.
func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": msgAPIDescriptor,
		"endpoints": map[string]map[string]string{
			"produits": {
				http.MethodGet:  "/api/produits",
				http.MethodPost: "/api/produits",
			},
			"commandes": {
				http.MethodGet:  "/api/commandes",
				http.MethodPost: "/api/commandes",
			},
		},
	})
}

// Health reports liveness on GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// NotFound answers every unmatched route, including unsupported methods on known paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: msgNotFound})
}
