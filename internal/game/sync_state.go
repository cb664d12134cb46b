package game

import (
	"github.com/google/uuid"

	"github.com/Abheast12/literature/engine"
	"github.com/Abheast12/literature/internal/models"
)

// ObfPlayerState represents one player's state, obfuscated for a specific
// observer. Cards is populated only for the observer themselves; everyone
// else is represented by CardCount alone.
type ObfPlayerState struct {
	PlayerID      uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Team          string        `json:"team"`
	CardCount     int           `json:"cardCount"`
	IsCurrentTurn bool          `json:"isCurrentTurn"`
	Connected     bool          `json:"connected"`
	Cards         []models.Card `json:"cards,omitempty"`
}

// ObfGameState represents the overall game state, obfuscated for a specific
// observer. This is the only game-state shape that ever leaves the process.
type ObfGameState struct {
	GameID       uuid.UUID         `json:"gameId"`
	Players      []ObfPlayerState  `json:"players"`
	CurrentTurn  uuid.UUID         `json:"currentTurn"`
	DeclaredSets []DeclaredSetInfo `json:"declaredSets"`
	GameOver     bool              `json:"gameOver"`
	WinningTeam  string            `json:"winningTeam,omitempty"`
}

// cardDetails converts an engine.Card to its client representation.
func cardDetails(c engine.Card) models.Card {
	return models.Card{
		ID:    c.ID(),
		Value: c.RankName(),
		Suit:  c.SuitName(),
		Set:   c.Set().String(),
	}
}

// setCardDetails expands a set to its six client cards for display.
func setCardDetails(s engine.SetKey) []models.Card {
	cards := engine.SetCards(s)
	out := make([]models.Card, len(cards))
	for i, c := range cards {
		out[i] = cardDetails(c)
	}
	return out
}

// declaredSetInfos builds the public declared-set ledger.
// Assumes the game lock is held by the caller.
func (g *LiteratureGame) declaredSetInfos() []DeclaredSetInfo {
	out := make([]DeclaredSetInfo, g.Engine.DeclaredLen)
	for i := uint8(0); i < g.Engine.DeclaredLen; i++ {
		rec := g.Engine.Declared[i]
		out[i] = DeclaredSetInfo{
			Set:   rec.Set.String(),
			Team:  rec.Team.String(),
			Cards: setCardDetails(rec.Set),
		}
	}
	return out
}

// playerCounts builds the public card-count roster.
// Assumes the game lock is held by the caller.
func (g *LiteratureGame) playerCounts() []PlayerCount {
	out := make([]PlayerCount, len(g.Players))
	for i, p := range g.Players {
		count := 0
		if idx, ok := g.PlayerToEngine[p.ID]; ok {
			count = int(g.Engine.Players[idx].HandLen)
		}
		out[i] = PlayerCount{ID: p.ID, Name: p.Name, Team: p.Team, CardCount: count}
	}
	return out
}

// buildObfState generates a snapshot of the game state tailored to the
// perspective of the requesting player. The engine state is the
// authoritative source; the observer's own hand is the only one sent in
// full, every other hand is reduced to a count. The same rule applies to
// the initial deal, post-ask syncs and post-declare syncs.
// Assumes the game lock is held by the caller.
func (g *LiteratureGame) buildObfState(forPlayer uuid.UUID) ObfGameState {
	obf := ObfGameState{
		GameID:       g.ID,
		DeclaredSets: g.declaredSetInfos(),
		GameOver:     g.Engine.IsGameOver(),
	}
	if obf.GameOver {
		obf.WinningTeam = g.Engine.WinningTeam().String()
	}
	if g.Started {
		obf.CurrentTurn = g.EngineToPlayer[g.Engine.CurrentPlayer]
	}

	obf.Players = make([]ObfPlayerState, len(g.Players))
	for i, pl := range g.Players {
		ps := ObfPlayerState{
			PlayerID:  pl.ID,
			Name:      pl.Name,
			Team:      pl.Team,
			Connected: g.connected[pl.ID],
		}
		if idx, ok := g.PlayerToEngine[pl.ID]; ok {
			hand := &g.Engine.Players[idx]
			ps.CardCount = int(hand.HandLen)
			ps.IsCurrentTurn = g.Started && !obf.GameOver && g.Engine.CurrentPlayer == idx
			if pl.ID == forPlayer {
				ps.Cards = make([]models.Card, hand.HandLen)
				for j := uint8(0); j < hand.HandLen; j++ {
					ps.Cards[j] = cardDetails(hand.Hand[j])
				}
			}
		}
		obf.Players[i] = ps
	}
	return obf
}

// ViewFor returns the filtered state for one player. This is the function
// the transport must call before sending state to any connection.
func (g *LiteratureGame) ViewFor(playerID uuid.UUID) ObfGameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.buildObfState(playerID)
}
