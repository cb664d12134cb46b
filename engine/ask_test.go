package engine

import "testing"

// TestAskPreconditions exercises every rejection in order. A rejected ask
// must leave the state untouched.
func TestAskPreconditions(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	snap := g.Save()

	cases := []struct {
		name   string
		asker  uint8
		target uint8
		card   Card
		err    error
	}{
		{"not your turn", 2, 1, NewCard(SuitClubs, RankTwo), ErrNotYourTurn},
		{"self target", 0, 0, NewCard(SuitHearts, RankTwo), ErrInvalidTarget},
		{"target out of range", 0, NumPlayers, NewCard(SuitHearts, RankTwo), ErrInvalidTarget},
		{"teammate target", 0, 2, NewCard(SuitSpades, RankTwo), ErrSameTeamTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Ask(tc.asker, tc.target, tc.card); err != tc.err {
				t.Errorf("Ask error = %v, want %v", err, tc.err)
			}
			if g.Save() != snap {
				t.Error("rejected ask mutated state")
			}
		})
	}

	t.Run("empty-handed target", func(t *testing.T) {
		g.Players[1].HandLen = 0
		if _, err := g.Ask(0, 1, NewCard(SuitDiamonds, RankFive)); err != ErrTargetHasNoCards {
			t.Errorf("Ask error = %v, want ErrTargetHasNoCards", err)
		}
	})

	t.Run("match over", func(t *testing.T) {
		g.Restore(snap)
		g.Flags |= FlagGameOver
		if _, err := g.Ask(0, 1, NewCard(SuitDiamonds, RankFive)); err != ErrMatchOver {
			t.Errorf("Ask error = %v, want ErrMatchOver", err)
		}
	})
}

// TestAskHit verifies a successful ask transfers exactly one card and
// keeps the turn with the asker.
func TestAskHit(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	card := NewCard(SuitDiamonds, RankFive) // held by seat 1 (opposing team)

	res, err := g.Ask(0, 1, card)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !res.Transferred {
		t.Fatal("Transferred = false, want true")
	}
	if res.TurnPlayer != 0 || g.CurrentPlayer != 0 {
		t.Errorf("turn moved to %d on a hit, want 0", g.CurrentPlayer)
	}
	if !g.Players[0].HasCard(card) {
		t.Error("asker did not receive the card")
	}
	if g.Players[1].HasCard(card) {
		t.Error("target still holds the card")
	}
	if g.Players[0].HandLen != CardsPerPlayer+1 {
		t.Errorf("asker HandLen = %d, want %d", g.Players[0].HandLen, CardsPerPlayer+1)
	}
	if g.Players[1].HandLen != CardsPerPlayer-1 {
		t.Errorf("target HandLen = %d, want %d", g.Players[1].HandLen, CardsPerPlayer-1)
	}
}

// TestAskMiss verifies a failed ask passes the turn to the target and
// changes nothing else.
func TestAskMiss(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	card := NewCard(SuitSpades, RankNine) // held by seat 4, not seat 1

	res, err := g.Ask(0, 1, card)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if res.Transferred {
		t.Fatal("Transferred = true on a miss")
	}
	if res.TurnPlayer != 1 || g.CurrentPlayer != 1 {
		t.Errorf("CurrentPlayer = %d after miss, want 1", g.CurrentPlayer)
	}
	if g.Players[0].HandLen != CardsPerPlayer || g.Players[1].HandLen != CardsPerPlayer {
		t.Error("hands changed on a miss")
	}
	if g.DeclaredLen != 0 {
		t.Error("declared sets changed on a miss")
	}
}

// TestAskScenario walks the hit-then-miss scenario: the asker's hand grows
// to 10 on a hit with the turn retained, then a wrong guess at the same
// target hands the turn over with hands unchanged at 10/8.
func TestAskScenario(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0

	if _, err := g.Ask(0, 3, NewCard(SuitDiamonds, RankTen)); err != nil {
		t.Fatalf("first ask: %v", err)
	}
	if g.Players[0].HandLen != 10 || g.Players[3].HandLen != 8 {
		t.Fatalf("hands = %d/%d after hit, want 10/8", g.Players[0].HandLen, g.Players[3].HandLen)
	}
	if g.CurrentPlayer != 0 {
		t.Fatalf("turn = %d after hit, want 0", g.CurrentPlayer)
	}

	if _, err := g.Ask(0, 3, NewCard(SuitClubs, RankNine)); err != nil {
		t.Fatalf("second ask: %v", err)
	}
	if g.CurrentPlayer != 3 {
		t.Errorf("turn = %d after miss, want 3", g.CurrentPlayer)
	}
	if g.Players[0].HandLen != 10 || g.Players[3].HandLen != 8 {
		t.Errorf("hands = %d/%d after miss, want 10/8", g.Players[0].HandLen, g.Players[3].HandLen)
	}
}
