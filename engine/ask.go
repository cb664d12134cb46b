package engine

// AskResult describes the outcome of a resolved ask. A miss is not an
// error: the turn passes to the target, which is the risk mechanic that
// makes asking cost something.
type AskResult struct {
	Asker       uint8
	Target      uint8
	Card        Card
	Transferred bool
	// TurnPlayer is the player holding the turn after resolution: the
	// asker on a hit, the target on a miss.
	TurnPlayer uint8
}

// Ask resolves a card request from asker to target. Preconditions are
// checked in order; any violation returns an error and leaves the state
// untouched. On a hit the card moves target→asker atomically and the turn
// stays with the asker. On a miss the turn passes to the target.
func (g *GameState) Ask(asker, target uint8, card Card) (AskResult, error) {
	if g.IsGameOver() {
		return AskResult{}, ErrMatchOver
	}
	if asker >= NumPlayers || asker != g.CurrentPlayer {
		return AskResult{}, ErrNotYourTurn
	}
	if target >= NumPlayers || target == asker {
		return AskResult{}, ErrInvalidTarget
	}
	if g.Players[target].Team == g.Players[asker].Team {
		return AskResult{}, ErrSameTeamTarget
	}
	if g.Players[target].HandLen == 0 {
		return AskResult{}, ErrTargetHasNoCards
	}

	res := AskResult{Asker: asker, Target: target, Card: card}

	if !g.Players[target].removeCard(card) {
		// Miss: the guess was wrong, the target takes over the turn.
		g.CurrentPlayer = target
		res.TurnPlayer = target
		return res, nil
	}

	g.Players[asker].addCard(card)
	res.Transferred = true
	res.TurnPlayer = asker
	return res, nil
}
