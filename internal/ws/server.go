// Package ws is the websocket transport: it accepts connections, binds
// them to lobby seats and dispatches client messages into the lobby and
// game layers. It owns no game state of its own.
package ws

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Abheast12/literature/internal/game"
	"github.com/Abheast12/literature/internal/lobby"
	"github.com/Abheast12/literature/internal/models"
	"github.com/Abheast12/literature/internal/monitor"
)

// clientMessage is the envelope for every inbound message. Field names
// match the original client protocol.
type clientMessage struct {
	Type         string              `json:"type"`
	PlayerID     string              `json:"playerId,omitempty"`
	CardID       string              `json:"cardId,omitempty"`
	SetName      string              `json:"setName,omitempty"`
	Declarations map[string][]string `json:"declarations,omitempty"`
	Settings     *models.Settings    `json:"settings,omitempty"`
}

// Server accepts websocket connections and routes messages per lobby.
type Server struct {
	Manager *lobby.Manager
	Log     *logrus.Logger
	Metrics *monitor.Metrics
}

// NewServer wires the transport to the lobby registry.
func NewServer(manager *lobby.Manager, log *logrus.Logger, metrics *monitor.Metrics) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{Manager: manager, Log: log, Metrics: metrics}
}

// HandleWS upgrades the connection and runs its read loop. Connection
// parameters come from the query string: username, lobby, admin.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.Log.WithError(err).Warn("websocket accept failed")
		return
	}

	q := r.URL.Query()
	username := q.Get("username")
	code := q.Get("lobby")
	isAdmin := q.Get("admin") == "true" || q.Get("admin") == "1"

	if username == "" || code == "" {
		conn.Close(websocket.StatusPolicyViolation, "username and lobby are required")
		return
	}

	l := s.Manager.GetOrCreate(code)
	player, err := l.Join(username, isAdmin, conn)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}

	log := s.Log.WithFields(logrus.Fields{"lobby": code, "player": username})
	log.Info("connection established")

	ctx := r.Context()
	defer func() {
		// Keyed on the connection handle: if the player already reconnected
		// on a newer socket, this teardown must not touch their seat.
		l.Disconnect(player.ID, conn)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Info("connection closed")
	}()

	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		s.Metrics.MessageReceived()
		s.dispatch(ctx, l, player, conn, &msg, log)
	}
}

// dispatch routes one client message. Unknown types are logged and
// ignored; the connection stays up.
func (s *Server) dispatch(ctx context.Context, l *lobby.Lobby, player *models.Player, conn *websocket.Conn, msg *clientMessage, log *logrus.Entry) {
	switch msg.Type {
	case "join_game":
		if g := l.Game(); g != nil {
			g.HandleReconnect(player.ID)
		} else {
			s.sendError(ctx, conn, "Game has not started yet")
		}

	case "ask_card":
		g := l.Game()
		if g == nil {
			s.sendError(ctx, conn, "Game has not started yet")
			return
		}
		targetID, err := parsePlayerID(msg.PlayerID)
		if err != nil {
			s.sendError(ctx, conn, "Invalid target player id")
			return
		}
		s.Metrics.AskRequested()
		g.HandleAskCard(player.ID, targetID, msg.CardID)

	case "declare_set":
		g := l.Game()
		if g == nil {
			s.sendError(ctx, conn, "Game has not started yet")
			return
		}
		s.Metrics.DeclareRequested()
		g.HandleDeclareSet(player.ID, msg.SetName, msg.Declarations)

	case "kick_player":
		if targetID, err := parsePlayerID(msg.PlayerID); err == nil {
			l.Kick(player.ID, targetID)
		}

	case "toggle_team":
		if targetID, err := parsePlayerID(msg.PlayerID); err == nil {
			l.ToggleTeam(player.ID, targetID)
		}

	case "update_settings":
		if msg.Settings != nil {
			l.UpdateSettings(player.ID, *msg.Settings)
		}

	case "start_game":
		if err := l.StartGame(player.ID); err != nil {
			s.sendError(ctx, conn, err.Error())
		}

	case "play_again":
		l.PlayAgain(player.ID)

	default:
		log.WithField("type", msg.Type).Debug("ignoring unknown message type")
	}
}

// parsePlayerID resolves a wire player id to a stable identity.
func parsePlayerID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// sendError reports a request-local failure on the requesting connection
// only. The handler owns conn, so no shared player field is read.
func (s *Server) sendError(ctx context.Context, conn *websocket.Conn, message string) {
	ev := game.GameEvent{Type: game.EventError, Payload: game.ErrorPayload{Message: message}}
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		s.Log.WithError(err).Debug("error write failed")
	}
}
