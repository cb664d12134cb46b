package game

import (
	"github.com/google/uuid"

	"github.com/Abheast12/literature/internal/models"
)

// GameEventType represents the type of a game-related event sent to clients.
type GameEventType string

// Constants defining the GameEvent types used for WebSocket communication.
// Names match the original client protocol.
const (
	EventGameStarted       GameEventType = "game_started"        // Private: per-player filtered state at kickoff or resync.
	EventTurnChanged       GameEventType = "turn_changed"        // Public: a failed ask passed the turn.
	EventCardCountsUpdated GameEventType = "card_counts_updated" // Public: hand sizes after a transfer.
	EventCardReceived      GameEventType = "card_received"       // Private: full card detail for the asker only.
	EventCardGiven         GameEventType = "card_given"          // Private: notice to the player who surrendered the card.
	EventSetDeclared       GameEventType = "set_declared"        // Public: declaration outcome.
	EventGameOver          GameEventType = "game_over"           // Public: a team reached five sets.
	EventError             GameEventType = "error"               // Private: request rejected, state unchanged.
)

// GameEvent is the standard structure for broadcasting game state changes.
// Payload carries one of the typed payload structs below; State is set only
// on per-player sync events and is already filtered for its recipient.
type GameEvent struct {
	Type    GameEventType `json:"type"`
	Payload any           `json:"payload,omitempty"`
	State   *ObfGameState `json:"state,omitempty"`
}

// PlayerCount pairs a player with their hand size for public updates.
type PlayerCount struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	CardCount int       `json:"cardCount"`
}

// DeclaredSetInfo is the public record of one resolved declaration,
// including the six cards for display.
type DeclaredSetInfo struct {
	Set   string        `json:"set"`
	Team  string        `json:"team"`
	Cards []models.Card `json:"cards"`
}

// TurnChangedPayload announces a failed ask: the turn moved to the target.
type TurnChangedPayload struct {
	CurrentTurn uuid.UUID `json:"currentTurn"`
	FromPlayer  string    `json:"fromPlayer"`
	ToPlayer    string    `json:"toPlayer"`
	Success     bool      `json:"success"`
}

// CardCountsPayload republishes every player's hand size after a transfer.
type CardCountsPayload struct {
	Players []PlayerCount `json:"players"`
}

// CardReceivedPayload privately delivers the transferred card to the asker.
type CardReceivedPayload struct {
	Card       models.Card `json:"card"`
	FromPlayer string      `json:"fromPlayer"`
}

// CardGivenPayload privately tells the target which card they surrendered.
type CardGivenPayload struct {
	CardID   string `json:"cardId"`
	ToPlayer string `json:"toPlayer"`
}

// SetDeclaredPayload announces a declaration outcome to every participant.
// Hand contents are never included; only counts.
type SetDeclaredPayload struct {
	SetName      string            `json:"setName"`
	IsValid      bool              `json:"isValid"`
	Team         string            `json:"team"`
	DeclaredSets []DeclaredSetInfo `json:"declaredSets"`
	CurrentTurn  uuid.UUID         `json:"currentTurn"`
	Players      []PlayerCount     `json:"players"`
}

// GameOverPayload announces the winner and the final set ledger.
type GameOverPayload struct {
	WinningTeam  string            `json:"winningTeam"`
	DeclaredSets []DeclaredSetInfo `json:"declaredSets"`
}

// ErrorPayload reports a rejected request to its sender only.
type ErrorPayload struct {
	Message string `json:"message"`
}
