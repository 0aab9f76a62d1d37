package services

import (
	"context"
	"fmt"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRepository defines the game reads the scoring engine needs
type GameRepository interface {
	FindByID(ctx context.Context, id int) (*models.Game, error)
	FindByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Game, error)
	FindBySeason(ctx context.Context, season int) ([]*models.Game, error)
}

// PickRepository defines the pick reads and computed-field writes the scoring
// engine needs. UpdateScoring must be an atomic single-document write so
// concurrent recomputations of the same game converge.
type PickRepository interface {
	FindByGame(ctx context.Context, gameID int) ([]*models.Pick, error)
	FindByGameIDs(ctx context.Context, gameIDs []int) ([]*models.Pick, error)
	UpdateScoring(ctx context.Context, id primitive.ObjectID, scoring models.PickScoring) error
}

// RecomputeResult reports the outcome of one recomputation job
type RecomputeResult struct {
	GameID       int    `json:"game_id"`
	Success      bool   `json:"success"`
	Skipped      bool   `json:"skipped"`
	NotFound     bool   `json:"not_found,omitempty"`
	TotalPicks   int    `json:"total_picks"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
	Error        string `json:"error,omitempty"`
}

// GameRecomputeService re-derives the computed scoring fields of every pick on
// a single game. The job is idempotent: given the same game and pick rows it
// always produces the same computed fields, so repeated or concurrent triggers
// converge rather than diverge.
type GameRecomputeService struct {
	gameRepo GameRepository
	pickRepo PickRepository
	logger   *logging.Logger

	// Fetch retry policy. sleep is injected so tests run without real delays.
	maxAttempts int
	retryDelay  time.Duration
	sleep       func(time.Duration)
}

// NewGameRecomputeService creates a recompute service with the default
// 3-attempt, 1-second-delay fetch retry policy
func NewGameRecomputeService(gameRepo GameRepository, pickRepo PickRepository) *GameRecomputeService {
	return &GameRecomputeService{
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		logger:      logging.WithPrefix("Recompute"),
		maxAttempts: 3,
		retryDelay:  time.Second,
		sleep:       time.Sleep,
	}
}

// RecomputeGame runs the full recomputation job for one game.
//
// Data fetches are retried on transient failure; a missing game is fatal and
// not retried. Scheduled games and games without picks short-circuit as
// skipped successes. Persistence failures for individual picks are counted
// and surfaced, never retried here: a later re-run repairs stragglers.
func (s *GameRecomputeService) RecomputeGame(ctx context.Context, gameID int) RecomputeResult {
	var game *models.Game
	err := s.withRetry(fmt.Sprintf("fetch game %d", gameID), func() error {
		var ferr error
		game, ferr = s.gameRepo.FindByID(ctx, gameID)
		return ferr
	})
	if err != nil {
		return RecomputeResult{GameID: gameID, Error: fmt.Sprintf("failed to fetch game: %v", err)}
	}
	if game == nil {
		// Fatal, no retry: the caller referenced a game that does not exist
		return RecomputeResult{GameID: gameID, NotFound: true, Error: fmt.Sprintf("game %d not found", gameID)}
	}

	if !game.HasStarted() {
		s.logger.Debugf("Game %d (%s) has not started, skipping", gameID, game.Description())
		return RecomputeResult{GameID: gameID, Success: true, Skipped: true}
	}

	var picks []*models.Pick
	err = s.withRetry(fmt.Sprintf("fetch picks for game %d", gameID), func() error {
		var ferr error
		picks, ferr = s.pickRepo.FindByGame(ctx, gameID)
		return ferr
	})
	if err != nil {
		return RecomputeResult{GameID: gameID, Error: fmt.Sprintf("failed to fetch picks: %v", err)}
	}
	if len(picks) == 0 {
		s.logger.Debugf("No picks for game %d, skipping", gameID)
		return RecomputeResult{GameID: gameID, Success: true, Skipped: true}
	}

	winner, hasWinner := game.Winner()
	if !hasWinner {
		s.logger.Infof("Game %d (%s) has no winner yet (status=%s), zeroing %d picks",
			gameID, game.Description(), game.Status, len(picks))
	}

	result := RecomputeResult{GameID: gameID, Success: true, TotalPicks: len(picks)}
	for _, pick := range picks {
		scoring := computePickScoring(pick, picks, game, winner, hasWinner)

		if err := s.pickRepo.UpdateScoring(ctx, pick.ID, scoring); err != nil {
			s.logger.Errorf("Failed to persist scoring for user %d game %d: %v", pick.UserID, gameID, err)
			result.ErrorCount++
			continue
		}
		pick.ApplyScoring(scoring)
		result.SuccessCount++
	}

	s.logger.Infof("Recomputed game %d (%s): %d picks, %d updated, %d errors",
		gameID, game.Description(), result.TotalPicks, result.SuccessCount, result.ErrorCount)
	return result
}

// computePickScoring derives the five computed fields for one pick. Solo
// flags are always computed once the game has started; points stay zero until
// the game is completed with a non-tied score.
func computePickScoring(pick *models.Pick, gamePicks []*models.Pick, game *models.Game, winner models.TeamID, hasWinner bool) models.PickScoring {
	solo := ComputeSoloStatus(pick, gamePicks)

	scoring := models.PickScoring{
		SoloPick:   solo.SoloPick,
		SoloLock:   solo.SoloLock,
		SuperBonus: solo.IsSuperBonus(pick.IsLock),
	}

	if hasWinner {
		score := ScorePick(pick.PickedTeam == winner, pick.IsLock, game.Week, solo)
		scoring.BonusPoints = score.BonusPoints
		scoring.PickPoints = score.TotalPoints
	}

	return scoring
}

// withRetry runs op up to maxAttempts times with a fixed delay between
// attempts, returning the last error when all attempts fail
func (s *GameRecomputeService) withRetry(what string, op func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt < s.maxAttempts {
			s.logger.Warnf("Attempt %d/%d to %s failed: %v, retrying in %v",
				attempt, s.maxAttempts, what, err, s.retryDelay)
			s.sleep(s.retryDelay)
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", what, s.maxAttempts, err)
}
