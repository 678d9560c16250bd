/*
 * file: handlers.go
 * package: handlers
 * description:
 *     HTTP surface for match statistics: a StatsHandler trimmed down to the
 *     single general report this game exposes.
 */
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/juan10024/sternhalma-server/internal/core/services/stats"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

// StatsHandler serves aggregated match statistics.
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler wraps a stats.Service as an HTTP handler.
func NewStatsHandler(s *stats.Service) *StatsHandler {
	return &StatsHandler{stats: s}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// GetGeneralStats serves GET /api/stats/general.
func (h *StatsHandler) GetGeneralStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.GetGeneralReport()
	if err != nil {
		logging.Error("failed to get general stats: %v", err)
		respondWithError(w, http.StatusInternalServerError, "could not retrieve general statistics")
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
