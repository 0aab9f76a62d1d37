package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScorePickBasePoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		isCorrect bool
		isLock    bool
		want      int
	}{
		{"correct lock", true, true, 2},
		{"correct pick", true, false, 1},
		{"incorrect lock", false, true, -2},
		{"incorrect pick", false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Week 1 keeps bonuses out of the picture
			score := ScorePick(tt.isCorrect, tt.isLock, 1, SoloStatus{})
			require.Equal(t, tt.want, score.BasePoints)
			require.Equal(t, 0, score.BonusPoints)
			require.Equal(t, tt.want, score.TotalPoints)
		})
	}
}

func TestScorePickBonusTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		isLock    bool
		solo      SoloStatus
		wantBonus int
		wantTotal int
	}{
		{"solo lock pick earns super bonus", true, SoloStatus{SoloPick: true, SoloLock: true}, 5, 7},
		{"solo lock on shared team", true, SoloStatus{SoloPick: false, SoloLock: true}, 2, 4},
		{"solo pick without lock", false, SoloStatus{SoloPick: true, SoloLock: false}, 2, 3},
		{"nothing solo", false, SoloStatus{}, 0, 1},
		{"nothing solo with lock", true, SoloStatus{}, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScorePick(true, tt.isLock, 5, tt.solo)
			require.Equal(t, tt.wantBonus, score.BonusPoints)
			require.Equal(t, tt.wantTotal, score.TotalPoints)
		})
	}
}

func TestScorePickBonusSuppressedBeforeWeek3(t *testing.T) {
	t.Parallel()

	solo := SoloStatus{SoloPick: true, SoloLock: true}
	for week := 1; week < BonusStartWeek; week++ {
		for _, isLock := range []bool{true, false} {
			score := ScorePick(true, isLock, week, solo)
			require.Zerof(t, score.BonusPoints, "week %d lock=%t", week, isLock)
		}
	}

	// Solo pick in week 2 scores like a plain correct pick
	score := ScorePick(true, false, 2, SoloStatus{SoloPick: true})
	require.Equal(t, 1, score.TotalPoints)
	require.Equal(t, 0, score.BonusPoints)
}

func TestScorePickNoBonusForIncorrectPicks(t *testing.T) {
	t.Parallel()

	solo := SoloStatus{SoloPick: true, SoloLock: true}
	for _, isLock := range []bool{true, false} {
		for week := 1; week <= 18; week++ {
			score := ScorePick(false, isLock, week, solo)
			require.Zerof(t, score.BonusPoints, "incorrect pick earned bonus: lock=%t week=%d", isLock, week)
		}
	}
}

func TestScorePickTotalBounds(t *testing.T) {
	t.Parallel()

	// Every reachable total stays within the documented point set
	validTotals := map[int]bool{-2: true, 0: true, 1: true, 2: true, 3: true, 4: true, 6: true, 7: true}

	soloStates := []SoloStatus{
		{},
		{SoloPick: true},
		{SoloLock: true},
		{SoloPick: true, SoloLock: true},
	}

	for _, isCorrect := range []bool{true, false} {
		for _, isLock := range []bool{true, false} {
			for week := 1; week <= 22; week++ {
				for _, solo := range soloStates {
					// A solo lock requires the pick itself to be a lock
					if solo.SoloLock && !isLock {
						continue
					}
					score := ScorePick(isCorrect, isLock, week, solo)
					require.Truef(t, validTotals[score.TotalPoints],
						"unreachable total %d: correct=%t lock=%t week=%d solo=%+v",
						score.TotalPoints, isCorrect, isLock, week, solo)
					if score.BonusPoints > 0 {
						require.Positivef(t, score.BasePoints,
							"bonus without positive base: correct=%t lock=%t week=%d solo=%+v",
							isCorrect, isLock, week, solo)
					}
					require.Equal(t, score.BasePoints+score.BonusPoints, score.TotalPoints)
				}
			}
		}
	}
}
