package services

import (
	"context"
	"fmt"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// AwardRepository defines the award writes owned by the aggregator
type AwardRepository interface {
	DeleteByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) error
	CreateMany(ctx context.Context, awards []*models.Award) error
}

// UserWeekStats is one user's aggregate over a week's qualifying picks
type UserWeekStats struct {
	Points  int
	Correct int
	Total   int
}

// AwardsOptions controls how the weekly aggregation sources its points
type AwardsOptions struct {
	// RescorePoints recomputes each pick's points from the game outcome
	// instead of trusting the persisted pick_points. Used for dry-run
	// previews that deliberately bypass persisted state.
	RescorePoints bool
}

// WeeklyAwardsService derives weekly award records from a week's completed
// games and their picks
type WeeklyAwardsService struct {
	gameRepo  GameRepository
	pickRepo  PickRepository
	awardRepo AwardRepository
	logger    *logging.Logger
}

// NewWeeklyAwardsService creates a new weekly awards service
func NewWeeklyAwardsService(gameRepo GameRepository, pickRepo PickRepository, awardRepo AwardRepository) *WeeklyAwardsService {
	return &WeeklyAwardsService{
		gameRepo:  gameRepo,
		pickRepo:  pickRepo,
		awardRepo: awardRepo,
		logger:    logging.WithPrefix("Awards"),
	}
}

// AggregateWeek accumulates per-user {points, correct, total} over picks whose
// game is completed with both scores known. A completed tie qualifies: its
// picks count toward total but nobody is credited with a correct pick.
func AggregateWeek(picks []*models.Pick, games []*models.Game, opts AwardsOptions) map[models.UserID]UserWeekStats {
	gameMap := make(map[int]*models.Game, len(games))
	for _, game := range games {
		gameMap[game.ID] = game
	}

	var picksByGame map[int][]*models.Pick
	if opts.RescorePoints {
		picksByGame = make(map[int][]*models.Pick)
		for _, pick := range picks {
			picksByGame[pick.GameID] = append(picksByGame[pick.GameID], pick)
		}
	}

	stats := make(map[models.UserID]UserWeekStats)
	for _, pick := range picks {
		game, exists := gameMap[pick.GameID]
		if !exists || !game.HasFinalScore() {
			continue
		}

		s := stats[pick.UserID]
		s.Total++

		winner, hasWinner := game.Winner()
		correct := hasWinner && pick.PickedTeam == winner
		if correct {
			s.Correct++
		}

		if opts.RescorePoints {
			if hasWinner {
				solo := ComputeSoloStatus(pick, picksByGame[pick.GameID])
				s.Points += ScorePick(correct, pick.IsLock, game.Week, solo).TotalPoints
			}
			// Ties contribute zero either way
		} else {
			s.Points += pick.PickPoints
		}

		stats[pick.UserID] = s
	}

	return stats
}

// ComputeWeeklyAwards derives the award set for one week from its picks and
// games. Pure aggregation over the inputs; nothing is persisted here.
//
// Top and lowest scorer go to every tied user, not an arbitrary one of them.
// Perfect week and cold week apply to each user independently. The same user
// can hold several awards at once.
func ComputeWeeklyAwards(week, season int, seasonType models.SeasonType, picks []*models.Pick, games []*models.Game, opts AwardsOptions) []*models.Award {
	stats := AggregateWeek(picks, games, opts)
	if len(stats) == 0 {
		return nil
	}

	maxPoints, minPoints := 0, 0
	first := true
	for _, s := range stats {
		if first {
			maxPoints, minPoints = s.Points, s.Points
			first = false
			continue
		}
		if s.Points > maxPoints {
			maxPoints = s.Points
		}
		if s.Points < minPoints {
			minPoints = s.Points
		}
	}

	newAward := func(userID models.UserID, awardType models.AwardType, points int) *models.Award {
		return &models.Award{
			UserID:     userID,
			Season:     season,
			SeasonType: seasonType,
			Week:       week,
			AwardType:  awardType,
			Points:     points,
		}
	}

	var awards []*models.Award
	for userID, s := range stats {
		if s.Points == maxPoints {
			awards = append(awards, newAward(userID, models.AwardTopScorer, s.Points))
		}
		if s.Points == minPoints {
			awards = append(awards, newAward(userID, models.AwardLowestScorer, s.Points))
		}
		if s.Correct == s.Total {
			awards = append(awards, newAward(userID, models.AwardPerfectWeek, s.Points))
		}
		if s.Correct == 0 {
			awards = append(awards, newAward(userID, models.AwardColdWeek, s.Points))
		}
	}

	return awards
}

// ProcessWeek recomputes and persists the award set for one week. Prior
// awards for the (week, season, seasonType) key are cleared first, so
// re-running after upstream corrections yields a consistent final state
// instead of duplicates or stale winners.
func (s *WeeklyAwardsService) ProcessWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Award, error) {
	games, err := s.gameRepo.FindByWeek(ctx, season, week, seasonType)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for week: %w", err)
	}

	gameIDs := make([]int, 0, len(games))
	for _, game := range games {
		gameIDs = append(gameIDs, game.ID)
	}

	picks, err := s.pickRepo.FindByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks for week: %w", err)
	}

	awards := ComputeWeeklyAwards(week, season, seasonType, picks, games, AwardsOptions{})
	now := time.Now()
	for _, award := range awards {
		award.CreatedAt = now
	}

	if err := s.awardRepo.DeleteByWeek(ctx, season, week, seasonType); err != nil {
		return nil, fmt.Errorf("failed to clear prior awards: %w", err)
	}

	if len(awards) > 0 {
		if err := s.awardRepo.CreateMany(ctx, awards); err != nil {
			return nil, fmt.Errorf("failed to insert awards: %w", err)
		}
	}

	s.logger.Infof("Processed awards for season %d week %d (%s): %d awards from %d games",
		season, week, seasonType, len(awards), len(games))
	return awards, nil
}

// PreviewWeek computes the award set for a week without touching persisted
// awards, rescoring points from game outcomes instead of trusting pick_points
func (s *WeeklyAwardsService) PreviewWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Award, error) {
	games, err := s.gameRepo.FindByWeek(ctx, season, week, seasonType)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for week: %w", err)
	}

	gameIDs := make([]int, 0, len(games))
	for _, game := range games {
		gameIDs = append(gameIDs, game.ID)
	}

	picks, err := s.pickRepo.FindByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks for week: %w", err)
	}

	return ComputeWeeklyAwards(week, season, seasonType, picks, games, AwardsOptions{RescorePoints: true}), nil
}
