package engine

// Assignment maps each seat to the cards the declarer claims that seat
// holds. Seats with no claimed cards stay nil.
type Assignment [NumPlayers][]Card

// ValidateDeclaration checks a claimed assignment of a set's cards against
// the true hands. Pure function over the current hand snapshot, no side
// effects. All-or-nothing: the claim is valid only if the assigned cards
// are exactly the set's six cards, with no duplicates, and every card is
// held by the seat it was assigned to.
func (g *GameState) ValidateDeclaration(set SetKey, asg Assignment) bool {
	if set >= NumSets {
		return false
	}

	total := 0
	var seen [NumSets * CardsPerSet]bool
	for p := 0; p < NumPlayers; p++ {
		for _, c := range asg[p] {
			if c.Set() != set {
				return false
			}
			slot := int(c.Set())*CardsPerSet + setSlot(c)
			if seen[slot] {
				return false
			}
			seen[slot] = true
			total++
			if !g.Players[p].HasCard(c) {
				return false
			}
		}
	}
	return total == CardsPerSet
}

// setSlot returns the card's position within SetCards(c.Set()).
func setSlot(c Card) int {
	cards := SetCards(c.Set())
	for i, sc := range cards {
		if sc == c {
			return i
		}
	}
	return 0 // unreachable: Set() and SetCards derive from the same mapping
}

// DeclareResult describes the outcome of a resolved declaration.
type DeclareResult struct {
	Declarer uint8
	Set      SetKey
	Valid    bool
	// AwardedTo is the declarer's team if the claim was valid, the
	// opposing team otherwise. The set leaves play either way.
	AwardedTo Team
	GameOver  bool
	Winner    Team // meaningful only when GameOver
	// TurnPlayer is the player holding the turn after resolution.
	TurnPlayer uint8
}

// Declare resolves a set declaration by the current player. The six cards
// of the set are removed from every hand regardless of validity; an
// incorrect claim awards the set to the opposing team. The match ends the
// instant either team's awarded count reaches SetsToWin.
//
// If the declarer's hand empties and the match continues, the turn passes
// to the first opposing-team seat (stable order) still holding cards; if
// that team is also exhausted the turn stays where it is. Only the
// opposing team is searched.
func (g *GameState) Declare(declarer uint8, set SetKey, asg Assignment) (DeclareResult, error) {
	if g.IsGameOver() {
		return DeclareResult{}, ErrMatchOver
	}
	if declarer >= NumPlayers || declarer != g.CurrentPlayer {
		return DeclareResult{}, ErrNotYourTurn
	}
	if set >= NumSets {
		return DeclareResult{}, ErrInvalidSetKey
	}
	if g.SetDeclared(set) {
		return DeclareResult{}, ErrSetAlreadyDeclared
	}

	valid := g.ValidateDeclaration(set, asg)

	for p := 0; p < NumPlayers; p++ {
		g.Players[p].removeSet(set)
	}

	team := g.Players[declarer].Team
	awarded := team
	if !valid {
		awarded = team.Opposing()
	}
	g.Declared[g.DeclaredLen] = DeclaredSet{Set: set, Team: awarded}
	g.DeclaredLen++

	res := DeclareResult{
		Declarer:   declarer,
		Set:        set,
		Valid:      valid,
		AwardedTo:  awarded,
		TurnPlayer: g.CurrentPlayer,
	}

	if g.TeamSetCount(awarded) >= SetsToWin {
		g.Flags |= FlagGameOver
		g.Winner = int8(awarded)
		res.GameOver = true
		res.Winner = awarded
		return res, nil
	}

	if g.Players[declarer].HandLen == 0 {
		for p := uint8(0); p < NumPlayers; p++ {
			if g.Players[p].Team != team && g.Players[p].HandLen > 0 {
				g.CurrentPlayer = p
				res.TurnPlayer = p
				break
			}
		}
	}

	return res, nil
}
