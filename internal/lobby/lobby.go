// Package lobby manages pre-match membership: joining by code, admin
// assignment, team balancing, settings and match kickoff. Each lobby owns
// at most one live match; lobbies are independently addressable by code
// and never share state.
package lobby

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Abheast12/literature/engine"
	"github.com/Abheast12/literature/internal/cache"
	"github.com/Abheast12/literature/internal/database"
	"github.com/Abheast12/literature/internal/game"
	"github.com/Abheast12/literature/internal/models"
	"github.com/Abheast12/literature/internal/monitor"
)

// Lobby event types. Names match the original client protocol.
const (
	EventPlayerJoined       game.GameEventType = "player_joined"
	EventPlayerDisconnected game.GameEventType = "player_disconnected"
	EventPlayerLeft         game.GameEventType = "player_left"
	EventPlayerUpdated      game.GameEventType = "player_updated"
	EventAdminAssigned      game.GameEventType = "admin_assigned"
	EventKicked             game.GameEventType = "kicked"
	EventSettingsUpdated    game.GameEventType = "settings_updated"
	EventGameReset          game.GameEventType = "game_reset"
)

// RosterPayload carries the lobby roster and settings on membership events.
// Players are value copies so marshaling never reads live roster fields.
type RosterPayload struct {
	Players          []models.Player `json:"players"`
	Settings         models.Settings `json:"settings"`
	KickedPlayerName string          `json:"kickedPlayerName,omitempty"`
}

// DisconnectedPayload names a player whose connection dropped.
type DisconnectedPayload struct {
	PlayerID   uuid.UUID `json:"playerId"`
	PlayerName string    `json:"playerName"`
}

// writeTimeout bounds a single websocket write.
const writeTimeout = 5 * time.Second

// Lobby is one joinable room. The mutex guards the roster, settings, admin
// and game pointer; the match itself has its own lock.
type Lobby struct {
	Code     string
	mu       sync.Mutex
	players  []*models.Player
	adminID  uuid.UUID
	settings models.Settings
	game     *game.LiteratureGame

	log     *logrus.Entry
	db      *database.DB
	cache   *cache.Cache
	metrics *monitor.Metrics

	// writeFn performs one frame write. Defaults to wsjson.Write; tests
	// substitute a recorder.
	writeFn func(ctx context.Context, conn *websocket.Conn, v any) error
}

// Players returns a copy of the roster.
func (l *Lobby) Players() []*models.Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Player, len(l.players))
	copy(out, l.players)
	return out
}

// Game returns the live match, or nil before kickoff.
func (l *Lobby) Game() *game.LiteratureGame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.game
}

// AdminID returns the stable identity of the current admin.
func (l *Lobby) AdminID() uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.adminID
}

// writeEvent sends one event to one connection.
func (l *Lobby) writeEvent(conn *websocket.Conn, ev game.GameEvent) {
	if conn == nil {
		return
	}
	write := l.writeFn
	if write == nil {
		write = wsjson.Write
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := write(ctx, conn, ev); err != nil {
		l.log.WithError(err).Debug("dropping event write to stale connection")
	}
}

// broadcast sends an event to every connected player. Callers must not
// hold the lobby lock; the connection handles are snapshotted under it and
// writes happen outside.
func (l *Lobby) broadcast(ev game.GameEvent) {
	l.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(l.players))
	for _, p := range l.players {
		if p.Connected && p.Conn != nil {
			conns = append(conns, p.Conn)
		}
	}
	l.mu.Unlock()

	for _, conn := range conns {
		l.writeEvent(conn, ev)
	}
}

// sendTo sends an event to a single player by stable identity.
func (l *Lobby) sendTo(playerID uuid.UUID, ev game.GameEvent) {
	l.mu.Lock()
	var conn *websocket.Conn
	for _, p := range l.players {
		if p.ID == playerID && p.Connected {
			conn = p.Conn
			break
		}
	}
	l.mu.Unlock()
	l.writeEvent(conn, ev)
}

// snapshotRoster value-copies the membership so readers outside the lock
// never touch live roster fields. Assumes the lobby lock is held.
func (l *Lobby) snapshotRoster() []models.Player {
	players := make([]models.Player, len(l.players))
	for i, p := range l.players {
		players[i] = *p
	}
	return players
}

// rosterPayload snapshots the membership for a broadcast.
// Assumes the lobby lock is held by the caller.
func (l *Lobby) rosterPayload() RosterPayload {
	return RosterPayload{Players: l.snapshotRoster(), Settings: l.settings}
}

// publishRoster pushes the roster snapshot to the cache for external
// presence queries. Best-effort; the lobby works without a cache.
func (l *Lobby) publishRoster() {
	l.mu.Lock()
	roster := l.snapshotRoster()
	l.mu.Unlock()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := l.cache.StoreLobbyRoster(ctx, l.Code, roster); err != nil {
			l.log.WithError(err).Debug("lobby roster cache write failed")
		}
	}()
}

// Join admits a player or rebinds a returning one. Identity is keyed by
// display name within the lobby: a reconnecting player keeps their stable
// UUID and seat, only the connection handle changes. New players alternate
// teams A/B in join order.
func (l *Lobby) Join(username string, isAdmin bool, conn *websocket.Conn) (*models.Player, error) {
	l.mu.Lock()

	for _, p := range l.players {
		if p.Name == username {
			p.Conn = conn
			p.Connected = true
			if p.IsAdmin {
				l.adminID = p.ID
			}
			payload := l.rosterPayload()
			gm := l.game
			l.mu.Unlock()

			if gm != nil {
				gm.SetConnected(p.ID, true)
			}
			l.log.WithField("player", username).Info("player reconnected")
			l.broadcast(game.GameEvent{Type: EventPlayerJoined, Payload: payload})
			l.publishRoster()
			return p, nil
		}
	}

	if l.game != nil {
		l.mu.Unlock()
		return nil, errors.New("game already in progress")
	}
	if len(l.players) >= engine.NumPlayers {
		l.mu.Unlock()
		return nil, errors.New("lobby is full")
	}

	team := "A"
	if len(l.players)%2 == 1 {
		team = "B"
	}
	p := &models.Player{
		ID:        uuid.New(),
		Name:      username,
		Team:      team,
		IsAdmin:   isAdmin,
		Connected: true,
		Conn:      conn,
	}
	l.players = append(l.players, p)
	if isAdmin && l.adminID == uuid.Nil {
		l.adminID = p.ID
	}
	payload := l.rosterPayload()
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{"player": username, "team": team}).Info("player joined lobby")
	l.broadcast(game.GameEvent{Type: EventPlayerJoined, Payload: payload})
	l.publishRoster()
	return p, nil
}

// Disconnect marks a player's connection as dropped without removing them:
// they may reconnect and resume their seat. conn must be the handle the
// caller is tearing down; if the seat was already rebound to a newer
// connection the call is a stale no-op. If the admin dropped, the first
// remaining connected player inherits the role.
func (l *Lobby) Disconnect(playerID uuid.UUID, conn *websocket.Conn) {
	l.mu.Lock()
	var dropped *models.Player
	for _, p := range l.players {
		if p.ID == playerID {
			if p.Conn != conn {
				l.mu.Unlock()
				return
			}
			p.Connected = false
			p.Conn = nil
			dropped = p
			break
		}
	}
	if dropped == nil {
		l.mu.Unlock()
		return
	}

	var newAdmin *models.Player
	if l.adminID == playerID {
		for _, p := range l.players {
			if p.Connected {
				p.IsAdmin = true
				l.adminID = p.ID
				newAdmin = p
				break
			}
		}
	}
	gm := l.game
	droppedName := dropped.Name
	l.mu.Unlock()

	if gm != nil {
		gm.SetConnected(playerID, false)
	}
	l.log.WithField("player", droppedName).Info("player disconnected")
	if newAdmin != nil {
		l.sendTo(newAdmin.ID, game.GameEvent{Type: EventAdminAssigned})
	}
	l.broadcast(game.GameEvent{
		Type:    EventPlayerDisconnected,
		Payload: DisconnectedPayload{PlayerID: playerID, PlayerName: droppedName},
	})
	l.publishRoster()
}

// Kick removes a player. Admin only, and only before kickoff.
func (l *Lobby) Kick(requesterID, targetID uuid.UUID) {
	l.mu.Lock()
	if l.adminID != requesterID || l.game != nil {
		l.mu.Unlock()
		return
	}
	var kicked *models.Player
	for i, p := range l.players {
		if p.ID == targetID {
			kicked = p
			l.players = append(l.players[:i], l.players[i+1:]...)
			break
		}
	}
	if kicked == nil {
		l.mu.Unlock()
		return
	}
	kickedName := kicked.Name
	kickedConn := kicked.Conn
	payload := l.rosterPayload()
	payload.KickedPlayerName = kickedName
	l.mu.Unlock()

	l.log.WithField("player", kickedName).Info("player kicked")
	l.writeEvent(kickedConn, game.GameEvent{Type: EventKicked})
	l.broadcast(game.GameEvent{Type: EventPlayerLeft, Payload: payload})
	l.publishRoster()
}

// ToggleTeam flips a player between teams. Admin only, before kickoff.
func (l *Lobby) ToggleTeam(requesterID, targetID uuid.UUID) {
	l.mu.Lock()
	if l.adminID != requesterID || l.game != nil {
		l.mu.Unlock()
		return
	}
	var toggled *models.Player
	for _, p := range l.players {
		if p.ID == targetID {
			if p.Team == "A" {
				p.Team = "B"
			} else {
				p.Team = "A"
			}
			toggled = p
			break
		}
	}
	payload := l.rosterPayload()
	l.mu.Unlock()

	if toggled == nil {
		return
	}
	l.broadcast(game.GameEvent{Type: EventPlayerUpdated, Payload: payload})
	l.publishRoster()
}

// UpdateSettings replaces the lobby settings. Admin only. The turn timer
// is advisory: it is shown by clients but never enforced by the engine.
func (l *Lobby) UpdateSettings(requesterID uuid.UUID, settings models.Settings) {
	l.mu.Lock()
	if l.adminID != requesterID {
		l.mu.Unlock()
		return
	}
	l.settings = settings
	payload := l.rosterPayload()
	l.mu.Unlock()

	l.broadcast(game.GameEvent{Type: EventSettingsUpdated, Payload: payload})
}

// StartGame creates and deals the match. Admin only, exactly six players.
func (l *Lobby) StartGame(requesterID uuid.UUID) error {
	l.mu.Lock()
	if l.adminID != requesterID {
		l.mu.Unlock()
		return errors.New("not authorized to start game")
	}
	if l.game != nil {
		l.mu.Unlock()
		return errors.New("game already in progress")
	}
	if len(l.players) != engine.NumPlayers {
		l.mu.Unlock()
		return errors.New("need exactly 6 players to start the game")
	}

	g := game.NewLiteratureGame(uuid.New())
	g.BroadcastFn = func(ev game.GameEvent) { l.broadcast(ev) }
	g.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.GameEvent) { l.sendTo(playerID, ev) }
	g.RecordDealFn = l.recordDeal
	g.OnGameEnd = l.onGameEnd

	players := make([]*models.Player, len(l.players))
	copy(players, l.players)
	status := make(map[uuid.UUID]bool, len(l.players))
	for _, p := range l.players {
		status[p.ID] = p.Connected
	}
	l.game = g
	l.mu.Unlock()

	for _, p := range players {
		if err := g.AddPlayer(p); err != nil {
			l.mu.Lock()
			l.game = nil
			l.mu.Unlock()
			return err
		}
	}
	for id, connected := range status {
		if !connected {
			g.SetConnected(id, false)
		}
	}
	if err := g.Start(); err != nil {
		l.mu.Lock()
		l.game = nil
		l.mu.Unlock()
		return err
	}

	l.metrics.MatchStarted()
	l.log.WithField("match", g.ID).Info("match started")
	return nil
}

// PlayAgain clears the finished match so the roster can start another.
// Admin only.
func (l *Lobby) PlayAgain(requesterID uuid.UUID) {
	l.mu.Lock()
	if l.adminID != requesterID || l.game == nil {
		l.mu.Unlock()
		return
	}
	l.game = nil
	payload := l.rosterPayload()
	l.mu.Unlock()

	l.broadcast(game.GameEvent{Type: EventGameReset, Payload: payload})
}

// recordDeal persists the initial deal for audit. Runs off the game lock.
func (l *Lobby) recordDeal(matchID uuid.UUID, hands map[string][]string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := l.db.RecordInitialDeal(ctx, matchID, hands); err != nil {
		l.log.WithError(err).Warn("failed to persist initial deal")
	}
}

// onGameEnd persists the result and updates metrics.
func (l *Lobby) onGameEnd(matchID uuid.UUID, winner engine.Team, declared []game.DeclaredSetInfo) {
	l.metrics.MatchCompleted()
	l.log.WithFields(logrus.Fields{"match": matchID, "winner": winner.String()}).Info("match finished")

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := l.db.RecordMatchResult(ctx, matchID, l.Code, winner.String(), declared); err != nil {
		l.log.WithError(err).Warn("failed to persist match result")
	}
}
