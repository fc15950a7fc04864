package handlers

import (
	"net/http"
	"strconv"
)

// ListActivityLogs returns the most recent audit entries, newest first.
// The optional limit query parameter caps the feed (default 50).
func ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	respondJSON(w, http.StatusOK, auditRecorder().Feed(limit))
}
