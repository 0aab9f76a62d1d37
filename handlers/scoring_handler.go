package handlers

import (
	"net/http"
	"strconv"

	"nfl-pickem-go/database"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
	"nfl-pickem-go/services"

	"github.com/gorilla/mux"
)

// ScoringHandler exposes the scoring engine's trigger surface: game
// recomputation, weekly award processing, and read-only standings
type ScoringHandler struct {
	recompute     *services.GameRecomputeService
	awards        *services.WeeklyAwardsService
	pickRepo      *database.MongoPickRepository
	awardRepo     *database.MongoAwardRepository
	currentSeason int
	logger        *logging.Logger
}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler(recompute *services.GameRecomputeService, awards *services.WeeklyAwardsService,
	pickRepo *database.MongoPickRepository, awardRepo *database.MongoAwardRepository, currentSeason int) *ScoringHandler {
	return &ScoringHandler{
		recompute:     recompute,
		awards:        awards,
		pickRepo:      pickRepo,
		awardRepo:     awardRepo,
		currentSeason: currentSeason,
		logger:        logging.WithPrefix("ScoringHandler"),
	}
}

// RecomputeGame triggers recomputation of one game. Safe to call repeatedly;
// score-change webhooks and admin reprocess actions share this entry point.
func (h *ScoringHandler) RecomputeGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	result := h.recompute.RecomputeGame(r.Context(), gameID)
	if !result.Success {
		if result.NotFound {
			writeJSON(w, http.StatusNotFound, result)
			return
		}
		// Transient failure after exhausted retries; the caller may re-trigger
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ProcessWeekAwards recomputes and persists the award set for one week
func (h *ScoringHandler) ProcessWeekAwards(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}
	season, seasonType := h.seasonParams(r)

	awards, err := h.awards.ProcessWeek(r.Context(), season, week, seasonType)
	if err != nil {
		h.logger.Errorf("Failed to process awards for season %d week %d: %v", season, week, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, awards)
}

// PreviewWeekAwards computes a week's awards without persisting, rescoring
// from game outcomes rather than persisted pick points
func (h *ScoringHandler) PreviewWeekAwards(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}
	season, seasonType := h.seasonParams(r)

	awards, err := h.awards.PreviewWeek(r.Context(), season, week, seasonType)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, awards)
}

// GetLeaderboard returns per-user season totals from persisted pick points
func (h *ScoringHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	season, seasonType := h.seasonParams(r)

	entries, err := h.pickRepo.GetSeasonLeaderboard(r.Context(), season, seasonType)
	if err != nil {
		h.logger.Errorf("Failed to get leaderboard for season %d: %v", season, err)
		writeError(w, http.StatusBadGateway, "failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetAwards returns the persisted awards for a week, or a whole season when
// no week is given
func (h *ScoringHandler) GetAwards(w http.ResponseWriter, r *http.Request) {
	season, seasonType := h.seasonParams(r)

	var awards []*models.Award
	var err error
	if weekStr := r.URL.Query().Get("week"); weekStr != "" {
		week, convErr := strconv.Atoi(weekStr)
		if convErr != nil || week < 1 {
			writeError(w, http.StatusBadRequest, "invalid week")
			return
		}
		awards, err = h.awardRepo.FindByWeek(r.Context(), season, week, seasonType)
	} else {
		awards, err = h.awardRepo.FindBySeason(r.Context(), season)
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to load awards")
		return
	}

	writeJSON(w, http.StatusOK, awards)
}

// seasonParams reads season/season_type query parameters with defaults
func (h *ScoringHandler) seasonParams(r *http.Request) (int, models.SeasonType) {
	season := h.currentSeason
	if s := r.URL.Query().Get("season"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			season = parsed
		}
	}

	seasonType := models.SeasonTypeRegular
	switch models.SeasonType(r.URL.Query().Get("season_type")) {
	case models.SeasonTypePreseason:
		seasonType = models.SeasonTypePreseason
	case models.SeasonTypePlayoffs:
		seasonType = models.SeasonTypePlayoffs
	}

	return season, seasonType
}
