// Package models holds the wire-facing data structures shared by the
// lobby, game and transport layers.
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// User carries the display identity of a connected person. There is no
// authentication beyond the display name.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Card is the client representation of a single card.
type Card struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
	Set   string `json:"set"`
}

// Player is a seat in a lobby or match. ID is the stable logical identity
// for the lifetime of the lobby; Conn is the transient connection handle
// and is rebound on reconnect so game state never references a stale
// socket.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Team      string          `json:"team"` // "A" | "B"
	IsAdmin   bool            `json:"isAdmin"`
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}

// Settings are the lobby-owned match options. The turn timer is advisory
// UI state: the engine does not enforce it.
type Settings struct {
	TurnTime int `json:"turnTime"`
}

// DefaultSettings returns the lobby defaults.
func DefaultSettings() Settings {
	return Settings{TurnTime: 30}
}
