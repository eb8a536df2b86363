package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/comfyui-plus/backend/internal/apperr"
)

// writeJSON serializes v into the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the stable error envelope. Typed apperr values
// carry their own status and client message; anything else is a
// generic internal error so library detail never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.HTTPStatus, map[string]string{"error": appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error."})
}
