package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/service"
)

// StatsHandler handles learning statistics requests.
type StatsHandler struct {
	statsService service.StatsService
	logger       *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "stats_handler")),
	}
}

// Ranking handles GET /api/stats/ranking.
func (h *StatsHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.statsService.Ranking(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build ranking")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// MyStats handles GET /api/stats/me. Users without any review activity get
// zeroed statistics rather than an error.
func (h *StatsHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.statsService.UserStats(r.Context(), requester.Username)
	if errors.Is(err, service.ErrNoProgress) {
		stats = &service.UserStats{Username: requester.Username}
		err = nil
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
