package engine

import "testing"

// fullSetAssignment assigns every card of the set to a single seat.
func fullSetAssignment(set SetKey, seat uint8) Assignment {
	var asg Assignment
	cards := SetCards(set)
	asg[seat] = cards[:]
	return asg
}

// TestValidateDeclaration covers the all-or-nothing rules. The validator
// is pure: no case may mutate state.
func TestValidateDeclaration(t *testing.T) {
	g := riggedMatch()
	snap := g.Save()

	// Seat 0 holds all of low-hearts.
	if !g.ValidateDeclaration(SetLowHearts, fullSetAssignment(SetLowHearts, 0)) {
		t.Error("correct full-set claim rejected")
	}

	t.Run("wrong owner for one card", func(t *testing.T) {
		asg := fullSetAssignment(SetLowHearts, 0)
		// Move a single card claim to a seat that does not hold it.
		asg[0] = asg[0][1:]
		asg[2] = []Card{NewCard(SuitHearts, RankTwo)}
		if g.ValidateDeclaration(SetLowHearts, asg) {
			t.Error("claim with one wrong owner accepted")
		}
	})

	t.Run("missing card", func(t *testing.T) {
		asg := fullSetAssignment(SetLowHearts, 0)
		asg[0] = asg[0][:CardsPerSet-1]
		if g.ValidateDeclaration(SetLowHearts, asg) {
			t.Error("five-card claim accepted")
		}
	})

	t.Run("duplicate card", func(t *testing.T) {
		var asg Assignment
		cards := SetCards(SetLowHearts)
		asg[0] = append([]Card{cards[0]}, cards[:CardsPerSet-1]...)
		if g.ValidateDeclaration(SetLowHearts, asg) {
			t.Error("claim with a duplicated card accepted")
		}
	})

	t.Run("foreign card", func(t *testing.T) {
		asg := fullSetAssignment(SetLowHearts, 0)
		asg[0] = append(asg[0][:CardsPerSet-1:CardsPerSet-1], NewCard(SuitDiamonds, RankTwo))
		if g.ValidateDeclaration(SetLowHearts, asg) {
			t.Error("claim containing a card from another set accepted")
		}
	})

	t.Run("claim for another seat", func(t *testing.T) {
		// Seat 3 holds all of high-diamonds; the declarer may claim cards
		// for any seat, including ones it does not occupy.
		if !g.ValidateDeclaration(SetHighDiamonds, fullSetAssignment(SetHighDiamonds, 3)) {
			t.Error("correct claim for seat 3 rejected")
		}
	})

	if g.Save() != snap {
		t.Error("validator mutated state")
	}
}

// TestDeclareValid verifies a correct declaration awards the declarer's
// team and strips the set from play.
func TestDeclareValid(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0

	res, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0))
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if !res.Valid {
		t.Error("Valid = false for a correct claim")
	}
	if res.AwardedTo != TeamA {
		t.Errorf("AwardedTo = %s, want A", res.AwardedTo)
	}
	if res.GameOver {
		t.Error("GameOver after a single set")
	}

	for p := 0; p < NumPlayers; p++ {
		for i := uint8(0); i < g.Players[p].HandLen; i++ {
			if g.Players[p].Hand[i].Set() == SetLowHearts {
				t.Errorf("player %d still holds %s", p, g.Players[p].Hand[i].ID())
			}
		}
	}
	if g.DeclaredLen != 1 || g.Declared[0].Set != SetLowHearts || g.Declared[0].Team != TeamA {
		t.Errorf("declared record = %+v", g.Declared[0])
	}
	if g.TotalCardsInPlay()+int(g.DeclaredLen)*CardsPerSet != DeckSize {
		t.Error("card conservation violated after declare")
	}
}

// TestDeclareInvalid verifies an incorrect claim gives the set to the
// opposing team and still removes all six cards from every hand.
func TestDeclareInvalid(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0

	asg := fullSetAssignment(SetLowHearts, 0)
	asg[0] = asg[0][1:]
	asg[4] = []Card{NewCard(SuitHearts, RankTwo)} // wrong owner

	res, err := g.Declare(0, SetLowHearts, asg)
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if res.Valid {
		t.Error("Valid = true for a wrong-owner claim")
	}
	if res.AwardedTo != TeamB {
		t.Errorf("AwardedTo = %s, want B (asymmetric penalty)", res.AwardedTo)
	}
	for p := 0; p < NumPlayers; p++ {
		for i := uint8(0); i < g.Players[p].HandLen; i++ {
			if g.Players[p].Hand[i].Set() == SetLowHearts {
				t.Errorf("player %d still holds %s after failed declare", p, g.Players[p].Hand[i].ID())
			}
		}
	}
}

// TestDeclarePreconditions covers the rejection paths.
func TestDeclarePreconditions(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	snap := g.Save()

	if _, err := g.Declare(1, SetLowHearts, Assignment{}); err != ErrNotYourTurn {
		t.Errorf("error = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.Declare(0, SetKey(NumSets), Assignment{}); err != ErrInvalidSetKey {
		t.Errorf("error = %v, want ErrInvalidSetKey", err)
	}
	if g.Save() != snap {
		t.Error("rejected declare mutated state")
	}

	if _, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0)); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if _, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0)); err != ErrSetAlreadyDeclared {
		t.Errorf("error = %v, want ErrSetAlreadyDeclared", err)
	}
}

// TestDeclareTermination verifies the match ends the instant a team takes
// its fifth set and rejects everything afterwards.
func TestDeclareTermination(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0

	// Pre-award four high sets to team A, stripping them from hands to
	// keep card conservation intact.
	for _, s := range []SetKey{SetHighHearts, SetHighDiamonds, SetHighClubs, SetHighSpades} {
		for p := 0; p < NumPlayers; p++ {
			g.Players[p].removeSet(s)
		}
		g.Declared[g.DeclaredLen] = DeclaredSet{Set: s, Team: TeamA}
		g.DeclaredLen++
	}

	res, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0))
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if !res.GameOver {
		t.Fatal("GameOver = false on the fifth set")
	}
	if res.Winner != TeamA {
		t.Errorf("Winner = %s, want A", res.Winner)
	}
	if !g.IsGameOver() || g.WinningTeam() != TeamA {
		t.Error("state not marked as over")
	}

	if _, err := g.Ask(0, 1, NewCard(SuitDiamonds, RankFive)); err != ErrMatchOver {
		t.Errorf("post-game ask error = %v, want ErrMatchOver", err)
	}
	if _, err := g.Declare(0, SetLowDiamonds, Assignment{}); err != ErrMatchOver {
		t.Errorf("post-game declare error = %v, want ErrMatchOver", err)
	}
}

// TestDeclareEmptyHandTurnPass verifies the turn moves to the first
// opposing-team seat holding cards when the declarer empties their hand.
func TestDeclareEmptyHandTurnPass(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	g.Players[0].HandLen = 6 // seat 0 keeps only its low-hearts block

	res, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0))
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if g.Players[0].HandLen != 0 {
		t.Fatalf("declarer HandLen = %d, want 0", g.Players[0].HandLen)
	}
	if res.TurnPlayer != 1 || g.CurrentPlayer != 1 {
		t.Errorf("turn = %d, want 1 (first opposing seat with cards)", g.CurrentPlayer)
	}
}

// TestDeclareBothTeamsExhausted verifies the turn stays put when no
// opposing seat holds cards. Only the opposing team is searched.
func TestDeclareBothTeamsExhausted(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0
	g.Players[0].HandLen = 6
	g.Players[1].HandLen = 0
	g.Players[3].HandLen = 0
	g.Players[5].HandLen = 0

	res, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0))
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if res.TurnPlayer != 0 || g.CurrentPlayer != 0 {
		t.Errorf("turn = %d, want 0 (unchanged)", g.CurrentPlayer)
	}
}

// TestDeclareTurnRetainedWithCards verifies a declarer who still holds
// cards keeps the turn.
func TestDeclareTurnRetainedWithCards(t *testing.T) {
	g := riggedMatch()
	g.CurrentPlayer = 0

	res, err := g.Declare(0, SetLowHearts, fullSetAssignment(SetLowHearts, 0))
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if g.Players[0].HandLen == 0 {
		t.Fatal("seat 0 should still hold its diamonds")
	}
	if res.TurnPlayer != 0 || g.CurrentPlayer != 0 {
		t.Errorf("turn = %d, want 0", g.CurrentPlayer)
	}
}
