package services

import (
	"testing"

	"nfl-pickem-go/models"
)

func pick(userID models.UserID, team models.TeamID, lock bool) *models.Pick {
	return &models.Pick{UserID: userID, GameID: 1, PickedTeam: team, IsLock: lock}
}

func TestComputeSoloStatus(t *testing.T) {
	t.Parallel()

	t.Run("lone pick on a team is solo", func(t *testing.T) {
		p := pick(1, "KC", false)
		picks := []*models.Pick{p, pick(2, "DEN", false)}

		solo := ComputeSoloStatus(p, picks)
		if !solo.SoloPick {
			t.Fatal("expected solo pick")
		}
		if solo.SoloLock {
			t.Fatal("non-lock pick can never be a solo lock")
		}
	})

	t.Run("shared team is not solo", func(t *testing.T) {
		p := pick(1, "KC", false)
		picks := []*models.Pick{p, pick(2, "KC", false)}

		solo := ComputeSoloStatus(p, picks)
		if solo.SoloPick {
			t.Fatal("two picks on the same team must not be solo")
		}
	})

	t.Run("only lock on a shared team is a solo lock", func(t *testing.T) {
		locked := pick(4, "KC", true)
		unlocked := pick(5, "KC", false)
		picks := []*models.Pick{locked, unlocked}

		solo := ComputeSoloStatus(locked, picks)
		if solo.SoloPick {
			t.Fatal("team has two picks, not solo")
		}
		if !solo.SoloLock {
			t.Fatal("only lock on the team should be a solo lock")
		}

		solo = ComputeSoloStatus(unlocked, picks)
		if solo.SoloLock {
			t.Fatal("non-lock pick must not be a solo lock")
		}
	})

	t.Run("two locks on a team means no solo lock", func(t *testing.T) {
		a := pick(1, "KC", true)
		b := pick(2, "KC", true)
		picks := []*models.Pick{a, b}

		for _, p := range []*models.Pick{a, b} {
			if ComputeSoloStatus(p, picks).SoloLock {
				t.Fatal("two locks on the same team must not be solo locks")
			}
		}
	})

	t.Run("lone lock pick is solo pick and solo lock", func(t *testing.T) {
		p := pick(3, "KC", true)
		picks := []*models.Pick{p, pick(4, "DEN", false)}

		solo := ComputeSoloStatus(p, picks)
		if !solo.SoloPick || !solo.SoloLock {
			t.Fatalf("unexpected status: %+v", solo)
		}
		if !solo.IsSuperBonus(true) {
			t.Fatal("lone lock pick should qualify for the super bonus")
		}
	})

	t.Run("super bonus implies solo pick, solo lock, and lock", func(t *testing.T) {
		for _, soloPick := range []bool{true, false} {
			for _, soloLock := range []bool{true, false} {
				for _, isLock := range []bool{true, false} {
					s := SoloStatus{SoloPick: soloPick, SoloLock: soloLock}
					if s.IsSuperBonus(isLock) && !(soloPick && soloLock && isLock) {
						t.Fatalf("super bonus granted without preconditions: solo=%+v lock=%t", s, isLock)
					}
				}
			}
		}
	})
}
