package http

import (
	"net/http"
	"time"
)

// HandleRoot serves the service banner on "/" and, because the root pattern
// catches every unmatched path, the 404 envelope for unknown routes.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "Route not found")
		return
	}

	respondMessage(w, http.StatusOK, "Dev Finance API is running", map[string]any{
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":         "/api/auth",
			"transactions": "/api/transactions",
			"categories":   "/api/categories",
		},
	})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
