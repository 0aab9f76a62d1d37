package services

import (
	"context"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// SweepService periodically reconciles pick scoring for the current season:
// every started game is recomputed, and once all of a week's games are
// completed its awards are reprocessed. Because both jobs are idempotent the
// sweep can overlap admin triggers or run twice without diverging.
type SweepService struct {
	gameRepo      GameRepository
	recompute     *GameRecomputeService
	awards        *WeeklyAwardsService
	currentSeason int
	interval      time.Duration
	ticker        *time.Ticker
	stopChan      chan struct{}
	running       bool
	logger        *logging.Logger
}

// NewSweepService creates a new reconciliation sweep service
func NewSweepService(gameRepo GameRepository, recompute *GameRecomputeService, awards *WeeklyAwardsService, currentSeason int, interval time.Duration) *SweepService {
	return &SweepService{
		gameRepo:      gameRepo,
		recompute:     recompute,
		awards:        awards,
		currentSeason: currentSeason,
		interval:      interval,
		stopChan:      make(chan struct{}),
		logger:        logging.WithPrefix("Sweep"),
	}
}

// Start begins the periodic sweep. An initial sweep runs immediately.
func (s *SweepService) Start() {
	if s.running {
		s.logger.Warn("Already running")
		return
	}

	s.logger.Infof("Starting reconciliation sweep for season %d, interval %v", s.currentSeason, s.interval)
	s.running = true
	s.ticker = time.NewTicker(s.interval)

	go s.Sweep(context.Background())

	go func() {
		for {
			select {
			case <-s.ticker.C:
				go s.Sweep(context.Background())
			case <-s.stopChan:
				s.logger.Info("Stopping reconciliation sweep")
				return
			}
		}
	}()
}

// Stop halts the periodic sweep
func (s *SweepService) Stop() {
	if !s.running {
		return
	}
	s.running = false

	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
}

// IsRunning returns whether the sweep loop is active
func (s *SweepService) IsRunning() bool {
	return s.running
}

// Sweep runs one reconciliation pass over the current season
func (s *SweepService) Sweep(ctx context.Context) {
	startTime := time.Now()

	games, err := s.gameRepo.FindBySeason(ctx, s.currentSeason)
	if err != nil {
		s.logger.Errorf("Failed to get games for season %d: %v", s.currentSeason, err)
		return
	}

	recomputed := 0
	failed := 0
	for _, game := range games {
		if !game.HasStarted() {
			continue
		}
		result := s.recompute.RecomputeGame(ctx, game.ID)
		if !result.Success {
			s.logger.Errorf("Recompute failed for game %d: %s", game.ID, result.Error)
			failed++
			continue
		}
		if !result.Skipped {
			recomputed++
		}
	}

	// Reprocess awards for every fully completed week. Idempotent, so weeks
	// already processed just converge to the same award set.
	for _, wk := range completedWeeks(games) {
		if _, err := s.awards.ProcessWeek(ctx, s.currentSeason, wk.week, wk.seasonType); err != nil {
			s.logger.Errorf("Failed to process awards for week %d (%s): %v", wk.week, wk.seasonType, err)
		}
	}

	s.logger.Infof("Sweep completed in %v: %d games recomputed, %d failures", time.Since(startTime), recomputed, failed)
}

type weekKey struct {
	week       int
	seasonType models.SeasonType
}

// completedWeeks returns the weeks whose games are all completed
func completedWeeks(games []*models.Game) []weekKey {
	weekGames := make(map[weekKey][]*models.Game)
	for _, game := range games {
		key := weekKey{week: game.Week, seasonType: game.SeasonType}
		weekGames[key] = append(weekGames[key], game)
	}

	var completed []weekKey
	for key, gamesInWeek := range weekGames {
		allCompleted := true
		for _, game := range gamesInWeek {
			if !game.IsCompleted() {
				allCompleted = false
				break
			}
		}
		if allCompleted {
			completed = append(completed, key)
		}
	}

	return completed
}
