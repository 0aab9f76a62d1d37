package services

import "nfl-pickem-go/models"

// SoloStatus reports whether a pick's team was chosen, and locked, by exactly
// one user in its game.
type SoloStatus struct {
	SoloPick bool
	SoloLock bool
}

// ComputeSoloStatus determines solo-pick/solo-lock status for one pick given
// every pick made on the same game. Solo pick means the pick's team was
// selected by exactly one user; solo lock means the pick is a lock and its
// team carries exactly one lock across all users.
//
// The result is only meaningful once the game has started: before kickoff the
// pick set can still change, so callers skip scheduled games entirely.
func ComputeSoloStatus(pick *models.Pick, gamePicks []*models.Pick) SoloStatus {
	teamPicks := 0
	teamLocks := 0

	for _, other := range gamePicks {
		if other.PickedTeam != pick.PickedTeam {
			continue
		}
		teamPicks++
		if other.IsLock {
			teamLocks++
		}
	}

	return SoloStatus{
		SoloPick: teamPicks == 1,
		SoloLock: pick.IsLock && teamLocks == 1,
	}
}

// IsSuperBonus reports the compound case: a lock pick that is the unique pick
// on its team. A solo lock is implied, since the only pick on a team that is a
// lock is necessarily the only lock on that team.
func (s SoloStatus) IsSuperBonus(isLock bool) bool {
	return s.SoloPick && s.SoloLock && isLock
}
