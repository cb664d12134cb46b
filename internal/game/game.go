// Package game wraps the pure rules engine with player identity,
// concurrency control and event fan-out for one match.
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Abheast12/literature/engine"
	"github.com/Abheast12/literature/internal/models"
)

// OnGameEndFunc is executed when a match finishes. It receives the match
// ID, the winning team and the final declared-set ledger.
type OnGameEndFunc func(matchID uuid.UUID, winner engine.Team, declared []DeclaredSetInfo)

// RecordDealFunc receives the initial deal for audit once cards are dealt.
// Hands are keyed by player ID string, values are card ID strings.
type RecordDealFunc func(matchID uuid.UUID, hands map[string][]string)

// LiteratureGame represents one match: the authoritative engine state plus
// the mapping between stable player identities and engine seats. All
// mutation happens under Mu; one inbound request is resolved to completion
// before the next is accepted, and events are sent only after the lock is
// released so network writes never happen under it.
type LiteratureGame struct {
	ID      uuid.UUID
	LobbyID uuid.UUID

	Players []*models.Player

	// Engine integration — authoritative game state.
	Engine         engine.GameState
	PlayerToEngine map[uuid.UUID]uint8
	EngineToPlayer [engine.NumPlayers]uuid.UUID

	// connected mirrors each seat's connection status. The lobby owns the
	// live connection handles under its own lock; it reports status changes
	// through SetConnected so views never read lobby-guarded fields.
	connected map[uuid.UUID]bool

	Started bool

	// Seed overrides the time-derived deal seed when nonzero (tests).
	Seed uint64

	Mu sync.Mutex

	// Communication callbacks, supplied by the lobby/transport layer.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
	RecordDealFn        RecordDealFunc
}

// NewLiteratureGame creates an empty match bound to a lobby.
func NewLiteratureGame(lobbyID uuid.UUID) *LiteratureGame {
	id, _ := uuid.NewRandom()
	return &LiteratureGame{
		ID:             id,
		LobbyID:        lobbyID,
		PlayerToEngine: make(map[uuid.UUID]uint8),
		connected:      make(map[uuid.UUID]bool),
	}
}

// outbound is a resolved event waiting to be sent: a broadcast when To is
// uuid.Nil, a private message otherwise. Resolvers return outbound slices
// instead of writing to the network so the state transition stays testable
// and the lock is never held across I/O.
type outbound struct {
	To uuid.UUID
	Ev GameEvent
}

func broadcastEv(ev GameEvent) outbound          { return outbound{Ev: ev} }
func privateEv(to uuid.UUID, ev GameEvent) outbound { return outbound{To: to, Ev: ev} }

// send delivers resolved events via the configured callbacks.
func (g *LiteratureGame) send(events []outbound) {
	for _, out := range events {
		if out.To == uuid.Nil {
			if g.BroadcastFn != nil {
				g.BroadcastFn(out.Ev)
			} else {
				log.Printf("game %s: BroadcastFn is nil, dropping %s event", g.ID, out.Ev.Type)
			}
			continue
		}
		if g.BroadcastToPlayerFn != nil {
			g.BroadcastToPlayerFn(out.To, out.Ev)
		} else {
			log.Printf("game %s: BroadcastToPlayerFn is nil, dropping %s event", g.ID, out.Ev.Type)
		}
	}
}

// errorEv builds a private rejection notice. Rejections go to the
// requester only; other players never learn the attempt happened.
func errorEv(to uuid.UUID, msg string) outbound {
	return privateEv(to, GameEvent{Type: EventError, Payload: ErrorPayload{Message: msg}})
}

// AddPlayer seats a player before the match starts. Seating order is
// preserved; it determines engine seat indices at Start.
func (g *LiteratureGame) AddPlayer(p *models.Player) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return errors.New("game already started")
	}
	if len(g.Players) >= engine.NumPlayers {
		return fmt.Errorf("game is full (%d players)", engine.NumPlayers)
	}
	for _, existing := range g.Players {
		if existing.ID == p.ID {
			return errors.New("player already seated")
		}
	}
	g.Players = append(g.Players, p)
	g.connected[p.ID] = true
	return nil
}

// SetConnected records a seated player's connection status. The lobby
// calls this on every bind and drop; unseated ids are ignored.
func (g *LiteratureGame) SetConnected(playerID uuid.UUID, connected bool) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if _, ok := g.connected[playerID]; ok {
		g.connected[playerID] = connected
	}
}

// Start deals the match and sends each player their filtered initial
// state. The collaborator guarantees exactly six players with teams
// assigned before calling.
func (g *LiteratureGame) Start() error {
	g.Mu.Lock()

	if g.Started {
		g.Mu.Unlock()
		return errors.New("game already started")
	}
	if len(g.Players) != engine.NumPlayers {
		g.Mu.Unlock()
		return fmt.Errorf("need exactly %d players to start, have %d", engine.NumPlayers, len(g.Players))
	}

	var teams [engine.NumPlayers]engine.Team
	for i, p := range g.Players {
		teams[i] = engine.ParseTeam(p.Team)
		g.PlayerToEngine[p.ID] = uint8(i)
		g.EngineToPlayer[i] = p.ID
	}

	seed := g.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g.Engine = engine.NewMatch(seed, teams)
	g.Engine.Deal()
	g.Started = true

	log.Printf("game %s: started, first turn %s", g.ID, g.EngineToPlayer[g.Engine.CurrentPlayer])

	if g.RecordDealFn != nil {
		hands := make(map[string][]string, engine.NumPlayers)
		for _, p := range g.Players {
			idx := g.PlayerToEngine[p.ID]
			hand := &g.Engine.Players[idx]
			ids := make([]string, hand.HandLen)
			for j := uint8(0); j < hand.HandLen; j++ {
				ids[j] = hand.Hand[j].ID()
			}
			hands[p.ID.String()] = ids
		}
		go g.RecordDealFn(g.ID, hands)
	}

	events := make([]outbound, 0, len(g.Players))
	for _, p := range g.Players {
		state := g.buildObfState(p.ID)
		events = append(events, privateEv(p.ID, GameEvent{Type: EventGameStarted, State: &state}))
	}
	g.Mu.Unlock()

	g.send(events)
	return nil
}

// getPlayerByID returns the seated player with the given ID, or nil.
// Assumes the game lock is held by the caller.
func (g *LiteratureGame) getPlayerByID(id uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HandleAskCard resolves an ask request from the transport layer.
func (g *LiteratureGame) HandleAskCard(askerID, targetID uuid.UUID, cardID string) {
	g.Mu.Lock()
	events := g.resolveAsk(askerID, targetID, cardID)
	g.Mu.Unlock()
	g.send(events)
}

// resolveAsk performs the ask state transition and returns the events to
// deliver. Assumes the game lock is held by the caller.
func (g *LiteratureGame) resolveAsk(askerID, targetID uuid.UUID, cardID string) []outbound {
	if !g.Started {
		return []outbound{errorEv(askerID, "Game has not started yet")}
	}
	askerIdx, ok := g.PlayerToEngine[askerID]
	if !ok {
		return []outbound{errorEv(askerID, "Player not found in game")}
	}
	targetIdx, ok := g.PlayerToEngine[targetID]
	if !ok {
		return []outbound{errorEv(askerID, "Target player not found in game")}
	}
	card, ok := engine.ParseCardID(cardID)
	if !ok {
		return []outbound{errorEv(askerID, "Unknown card: "+cardID)}
	}

	res, err := g.Engine.Ask(askerIdx, targetIdx, card)
	if err != nil {
		return []outbound{errorEv(askerID, rejectionMessage(err))}
	}

	asker := g.getPlayerByID(askerID)
	target := g.getPlayerByID(targetID)

	if !res.Transferred {
		// Wrong guess: the turn passes to the target, everyone learns who
		// asked whom but not which card.
		return []outbound{broadcastEv(GameEvent{
			Type: EventTurnChanged,
			Payload: TurnChangedPayload{
				CurrentTurn: targetID,
				FromPlayer:  asker.Name,
				ToPlayer:    target.Name,
				Success:     false,
			},
		})}
	}

	// Hit: counts go to everyone, card content only to the asker.
	return []outbound{
		broadcastEv(GameEvent{
			Type:    EventCardCountsUpdated,
			Payload: CardCountsPayload{Players: g.playerCounts()},
		}),
		privateEv(askerID, GameEvent{
			Type:    EventCardReceived,
			Payload: CardReceivedPayload{Card: cardDetails(res.Card), FromPlayer: target.Name},
		}),
		privateEv(targetID, GameEvent{
			Type:    EventCardGiven,
			Payload: CardGivenPayload{CardID: res.Card.ID(), ToPlayer: asker.Name},
		}),
	}
}

// HandleDeclareSet resolves a declaration request from the transport
// layer. Declarations maps player ID strings to claimed card ID strings.
func (g *LiteratureGame) HandleDeclareSet(declarerID uuid.UUID, setName string, declarations map[string][]string) {
	g.Mu.Lock()
	events := g.resolveDeclare(declarerID, setName, declarations)
	g.Mu.Unlock()
	g.send(events)
}

// resolveDeclare performs the declare state transition and returns the
// events to deliver. Assumes the game lock is held by the caller.
func (g *LiteratureGame) resolveDeclare(declarerID uuid.UUID, setName string, declarations map[string][]string) []outbound {
	if !g.Started {
		return []outbound{errorEv(declarerID, "Game has not started yet")}
	}
	declarerIdx, ok := g.PlayerToEngine[declarerID]
	if !ok {
		return []outbound{errorEv(declarerID, "Player not found in game")}
	}
	set, err := engine.ParseSetKey(setName)
	if err != nil {
		return []outbound{errorEv(declarerID, rejectionMessage(err))}
	}

	// Unknown player or card ids are dropped rather than rejected: the
	// resulting shortfall fails validation, which awards the set to the
	// opposing team — the same outcome the original server produced.
	var asg engine.Assignment
	for pidStr, cardIDs := range declarations {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			continue
		}
		idx, ok := g.PlayerToEngine[pid]
		if !ok {
			continue
		}
		for _, id := range cardIDs {
			if c, ok := engine.ParseCardID(id); ok {
				asg[idx] = append(asg[idx], c)
			}
		}
	}

	res, err := g.Engine.Declare(declarerIdx, set, asg)
	if err != nil {
		return []outbound{errorEv(declarerID, rejectionMessage(err))}
	}

	log.Printf("game %s: %s declared %s, valid=%v, awarded to team %s",
		g.ID, g.getPlayerByID(declarerID).Name, set, res.Valid, res.AwardedTo)

	if res.GameOver {
		ledger := g.declaredSetInfos()
		if g.OnGameEnd != nil {
			go g.OnGameEnd(g.ID, res.Winner, ledger)
		}
		return []outbound{broadcastEv(GameEvent{
			Type: EventGameOver,
			Payload: GameOverPayload{
				WinningTeam:  res.Winner.String(),
				DeclaredSets: ledger,
			},
		})}
	}

	return []outbound{broadcastEv(GameEvent{
		Type: EventSetDeclared,
		Payload: SetDeclaredPayload{
			SetName:      set.String(),
			IsValid:      res.Valid,
			Team:         res.AwardedTo.String(),
			DeclaredSets: g.declaredSetInfos(),
			CurrentTurn:  g.EngineToPlayer[res.TurnPlayer],
			Players:      g.playerCounts(),
		},
	})}
}

// HandleReconnect resends the filtered state to a player whose connection
// was rebound. The stable player ID keeps their seat valid across
// connection churn.
func (g *LiteratureGame) HandleReconnect(playerID uuid.UUID) {
	g.Mu.Lock()
	if !g.Started {
		g.Mu.Unlock()
		g.send([]outbound{errorEv(playerID, "Game has not started yet")})
		return
	}
	if _, ok := g.PlayerToEngine[playerID]; !ok {
		g.Mu.Unlock()
		g.send([]outbound{errorEv(playerID, "Player not found in game")})
		return
	}
	state := g.buildObfState(playerID)
	g.Mu.Unlock()

	g.send([]outbound{privateEv(playerID, GameEvent{Type: EventGameStarted, State: &state})})
}

// rejectionMessage maps engine errors to client-facing text.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrNotYourTurn):
		return "It's not your turn"
	case errors.Is(err, engine.ErrMatchOver):
		return "The game is already over"
	case errors.Is(err, engine.ErrInvalidTarget):
		return "Invalid target player"
	case errors.Is(err, engine.ErrSameTeamTarget):
		return "You can only ask players on the opposing team"
	case errors.Is(err, engine.ErrTargetHasNoCards):
		return "That player has no cards left"
	case errors.Is(err, engine.ErrInvalidSetKey):
		return "Unknown set"
	case errors.Is(err, engine.ErrSetAlreadyDeclared):
		return "That set has already been declared"
	default:
		return err.Error()
	}
}
