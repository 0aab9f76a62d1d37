package services

// Scoring constants. Bonuses activate starting in week 3; before that the
// early-season pick pool is too small for solo status to mean much.
const (
	BonusStartWeek = 3

	lockWinPoints    = 2
	winPoints        = 1
	lockLossPoints   = -2
	superBonusPoints = 5
	soloBonusPoints  = 2
)

// PickScore is the computed point breakdown for a single pick
type PickScore struct {
	BasePoints  int
	BonusPoints int
	TotalPoints int
}

// ScorePick computes the points for a pick on a decided game.
//
// Base points: correct lock +2, correct pick +1, incorrect lock -2, incorrect
// pick 0. Bonus points apply only to correct picks from BonusStartWeek on:
// a solo-picked lock earns the super bonus of 5, otherwise a solo lock or a
// solo pick earns 2. Incorrect picks never earn bonuses.
//
// Tied or undecided games never reach this function; the recomputation job
// zeroes every pick on them (a tie voids all stakes, including locks).
func ScorePick(isCorrect, isLock bool, week int, solo SoloStatus) PickScore {
	var base int
	switch {
	case isCorrect && isLock:
		base = lockWinPoints
	case isCorrect:
		base = winPoints
	case isLock:
		base = lockLossPoints
	}

	bonus := 0
	if isCorrect && week >= BonusStartWeek {
		switch {
		case isLock && solo.SoloPick:
			bonus = superBonusPoints
		case solo.SoloLock:
			bonus = soloBonusPoints
		case solo.SoloPick:
			bonus = soloBonusPoints
		}
	}

	return PickScore{
		BasePoints:  base,
		BonusPoints: bonus,
		TotalPoints: base + bonus,
	}
}
