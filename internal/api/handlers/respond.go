package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dcharly/atsparse/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError emits the single-field error body every failure uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeParseError relays an orchestrator failure to the caller: the error
// kind picks the status class, the message is the body. Diagnostics beyond
// the message (stderr, stack traces) never reach the response.
func writeParseError(w http.ResponseWriter, err error) {
	writeError(w, core.KindOf(err).HTTPStatus(), err.Error())
}
