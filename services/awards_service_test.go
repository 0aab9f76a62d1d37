package services

import (
	"context"
	"testing"

	"nfl-pickem-go/models"

	"github.com/stretchr/testify/require"
)

type stubAwardRepo struct {
	awards []*models.Award
	ops    []string
}

func (s *stubAwardRepo) DeleteByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) error {
	s.ops = append(s.ops, "delete")
	var kept []*models.Award
	for _, a := range s.awards {
		if a.Season == season && a.Week == week && a.SeasonType == seasonType {
			continue
		}
		kept = append(kept, a)
	}
	s.awards = kept
	return nil
}

func (s *stubAwardRepo) CreateMany(ctx context.Context, awards []*models.Award) error {
	s.ops = append(s.ops, "insert")
	s.awards = append(s.awards, awards...)
	return nil
}

func scoredPick(userID models.UserID, game *models.Game, team models.TeamID, lock bool, points int) *models.Pick {
	p := gamePick(userID, game, team, lock)
	p.PickPoints = points
	return p
}

func awardsByType(awards []*models.Award) map[models.AwardType][]models.UserID {
	byType := make(map[models.AwardType][]models.UserID)
	for _, a := range awards {
		byType[a.AwardType] = append(byType[a.AwardType], a.UserID)
	}
	return byType
}

func weekFixture() ([]*models.Game, []*models.Pick) {
	g1 := completedGame(201, 7, 28, 14) // KC over DEN
	g2 := completedGame(202, 7, 10, 20) // DEN... away wins
	g2.HomeTeam, g2.AwayTeam = "SEA", "SF"

	picks := []*models.Pick{
		// user1: both correct, 2 points, perfect week and top scorer
		scoredPick(1, g1, "KC", false, 1),
		scoredPick(1, g2, "SF", false, 1),
		// user2: both wrong, 0 points, cold week
		scoredPick(2, g1, "DEN", false, 0),
		scoredPick(2, g2, "SEA", false, 0),
		// user3: one lock win, one lock loss, 0 points total
		scoredPick(3, g1, "KC", true, 2),
		scoredPick(3, g2, "SEA", true, -2),
	}
	return []*models.Game{g1, g2}, picks
}

func TestAggregateWeek(t *testing.T) {
	t.Parallel()

	games, picks := weekFixture()
	stats := AggregateWeek(picks, games, AwardsOptions{})

	require.Len(t, stats, 3)
	require.Equal(t, UserWeekStats{Points: 2, Correct: 2, Total: 2}, stats[1])
	require.Equal(t, UserWeekStats{Points: 0, Correct: 0, Total: 2}, stats[2])
	require.Equal(t, UserWeekStats{Points: 0, Correct: 1, Total: 2}, stats[3])
}

func TestAggregateWeekIgnoresUnfinishedGames(t *testing.T) {
	t.Parallel()

	g1 := completedGame(203, 7, 28, 14)
	g2 := &models.Game{
		ID: 204, Season: 2025, SeasonType: models.SeasonTypeRegular, Week: 7,
		HomeTeam: "SF", AwayTeam: "SEA", Status: models.GameStatusInProgress,
	}
	picks := []*models.Pick{
		scoredPick(1, g1, "KC", false, 1),
		scoredPick(1, g2, "SF", false, 0), // not final, must not count
	}

	stats := AggregateWeek(picks, []*models.Game{g1, g2}, AwardsOptions{})
	require.Equal(t, UserWeekStats{Points: 1, Correct: 1, Total: 1}, stats[1])
}

func TestComputeWeeklyAwards(t *testing.T) {
	t.Parallel()

	games, picks := weekFixture()
	awards := ComputeWeeklyAwards(7, 2025, models.SeasonTypeRegular, picks, games, AwardsOptions{})
	byType := awardsByType(awards)

	require.Equal(t, []models.UserID{1}, byType[models.AwardTopScorer])
	// Users 2 and 3 are tied at the bottom: both get the award
	require.ElementsMatch(t, []models.UserID{2, 3}, byType[models.AwardLowestScorer])
	require.Equal(t, []models.UserID{1}, byType[models.AwardPerfectWeek])
	require.Equal(t, []models.UserID{2}, byType[models.AwardColdWeek])
	require.Len(t, awards, 5)
}

func TestComputeWeeklyAwardsSingleUserHoldsMultiple(t *testing.T) {
	t.Parallel()

	g := completedGame(205, 7, 28, 14)
	picks := []*models.Pick{scoredPick(1, g, "KC", false, 1)}

	awards := ComputeWeeklyAwards(7, 2025, models.SeasonTypeRegular, picks, []*models.Game{g}, AwardsOptions{})
	byType := awardsByType(awards)

	// The lone user is top and lowest scorer at once, plus perfect week
	require.Equal(t, []models.UserID{1}, byType[models.AwardTopScorer])
	require.Equal(t, []models.UserID{1}, byType[models.AwardLowestScorer])
	require.Equal(t, []models.UserID{1}, byType[models.AwardPerfectWeek])
	require.Empty(t, byType[models.AwardColdWeek])
}

func TestComputeWeeklyAwardsEmptyWeek(t *testing.T) {
	t.Parallel()

	awards := ComputeWeeklyAwards(7, 2025, models.SeasonTypeRegular, nil, nil, AwardsOptions{})
	require.Empty(t, awards)
}

func TestComputeWeeklyAwardsRescoresForPreview(t *testing.T) {
	t.Parallel()

	g := completedGame(206, 7, 28, 14)
	// Persisted points are stale (never recomputed); the rescore path must
	// derive 7 points for this solo lock win on its own
	stale := scoredPick(3, g, "KC", true, 0)

	awards := ComputeWeeklyAwards(7, 2025, models.SeasonTypeRegular,
		[]*models.Pick{stale}, []*models.Game{g}, AwardsOptions{RescorePoints: true})
	byType := awardsByType(awards)

	require.Equal(t, []models.UserID{3}, byType[models.AwardTopScorer])
	for _, a := range awards {
		if a.AwardType == models.AwardTopScorer {
			require.Equal(t, 7, a.Points)
		}
	}
}

func TestProcessWeekClearsPriorAwardsFirst(t *testing.T) {
	t.Parallel()

	games, picks := weekFixture()
	gameRepo := &stubGameRepo{games: games}
	pickRepo := &stubPickRepo{picks: picks}
	awardRepo := &stubAwardRepo{}
	svc := NewWeeklyAwardsService(gameRepo, pickRepo, awardRepo)

	first, err := svc.ProcessWeek(context.Background(), 2025, 7, models.SeasonTypeRegular)
	require.NoError(t, err)
	require.Len(t, first, 5)
	require.Equal(t, []string{"delete", "insert"}, awardRepo.ops)

	// Re-running converges on the same award set instead of duplicating it
	second, err := svc.ProcessWeek(context.Background(), 2025, 7, models.SeasonTypeRegular)
	require.NoError(t, err)
	require.Len(t, second, 5)
	require.Len(t, awardRepo.awards, 5)
	require.Equal(t, []string{"delete", "insert", "delete", "insert"}, awardRepo.ops)

	require.ElementsMatch(t, awardsByType(first)[models.AwardLowestScorer],
		awardsByType(awardRepo.awards)[models.AwardLowestScorer])
}

func TestProcessWeekReflectsUpstreamCorrections(t *testing.T) {
	t.Parallel()

	games, picks := weekFixture()
	gameRepo := &stubGameRepo{games: games}
	pickRepo := &stubPickRepo{picks: picks}
	awardRepo := &stubAwardRepo{}
	svc := NewWeeklyAwardsService(gameRepo, pickRepo, awardRepo)

	_, err := svc.ProcessWeek(context.Background(), 2025, 7, models.SeasonTypeRegular)
	require.NoError(t, err)

	// A score correction flips game 201: DEN actually won, and user2's picks
	// were rescored upstream
	*games[0].HomeScore, *games[0].AwayScore = 14, 28
	picks[0].PickPoints = 0 // user1 KC now wrong
	picks[2].PickPoints = 1 // user2 DEN now right
	picks[4].PickPoints = -2

	awards, err := svc.ProcessWeek(context.Background(), 2025, 7, models.SeasonTypeRegular)
	require.NoError(t, err)

	byType := awardsByType(awards)
	// user1 keeps the SF win, so users 1 and 2 now share the top at 1 point;
	// user3's two lock losses sink to -4
	require.ElementsMatch(t, []models.UserID{1, 2}, byType[models.AwardTopScorer])
	require.Equal(t, []models.UserID{3}, byType[models.AwardLowestScorer])
	require.Equal(t, []models.UserID{3}, byType[models.AwardColdWeek])
	require.NotContains(t, byType[models.AwardPerfectWeek], models.UserID(1))
	require.Len(t, awardRepo.awards, len(awards), "stale awards must not survive reprocessing")
}
