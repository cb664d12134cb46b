// Package engine implements the Literature card game rules.
//
// The engine is a pure, self-contained state machine: an external transport
// layer submits asks and declarations, the engine resolves them
// synchronously against the authoritative hands, and the caller decides who
// to notify. The engine never performs I/O and holds no locks; one
// GameState is exclusively owned by one match.
package engine

const (
	// NumPlayers is the fixed player count: two teams of three.
	NumPlayers = 6

	// DeckSize is 52 standard cards plus both jokers.
	DeckSize = 54

	// NumSets is the number of half-suits partitioning the deck.
	NumSets = 9

	// CardsPerSet is the size of each half-suit.
	CardsPerSet = 6

	// SetsToWin ends the match: out of nine sets a team holding five can
	// no longer be caught, so there is no draw.
	SetsToWin = 5

	// CardsPerPlayer uses floor division. The original deal drops any
	// remainder cards from play rather than distributing them; with six
	// players and 54 cards the remainder is zero, so the behavior is kept
	// for compatibility.
	CardsPerPlayer = DeckSize / NumPlayers
)

// Team is one of the two fixed three-player alliances.
type Team uint8

const (
	TeamA Team = 0
	TeamB Team = 1
)

// Opposing returns the other team.
func (t Team) Opposing() Team { return 1 - t }

// String returns the team's wire name ("A" or "B").
func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// ParseTeam resolves a wire team name. Anything other than "B" is TeamA.
func ParseTeam(name string) Team {
	if name == "B" {
		return TeamB
	}
	return TeamA
}

// PlayerState holds one player's hand and team assignment. Hands are dense
// prefixes of the Hand array: indices [0, HandLen) are live cards.
type PlayerState struct {
	Hand    [DeckSize]Card
	HandLen uint8
	Team    Team
}

// HasCard reports whether the player currently holds c.
func (p *PlayerState) HasCard(c Card) bool {
	for i := uint8(0); i < p.HandLen; i++ {
		if p.Hand[i] == c {
			return true
		}
	}
	return false
}

// addCard appends c to the hand.
func (p *PlayerState) addCard(c Card) {
	p.Hand[p.HandLen] = c
	p.HandLen++
}

// removeCard removes c from the hand, compacting the prefix. Returns false
// if the card is not held.
func (p *PlayerState) removeCard(c Card) bool {
	for i := uint8(0); i < p.HandLen; i++ {
		if p.Hand[i] == c {
			p.HandLen--
			p.Hand[i] = p.Hand[p.HandLen]
			return true
		}
	}
	return false
}

// removeSet removes every card of the given set from the hand and returns
// the number removed.
func (p *PlayerState) removeSet(s SetKey) uint8 {
	removed := uint8(0)
	for i := uint8(0); i < p.HandLen; {
		if p.Hand[i].Set() == s {
			p.HandLen--
			p.Hand[i] = p.Hand[p.HandLen]
			removed++
		} else {
			i++
		}
	}
	return removed
}

// DeclaredSet records one resolved declaration. Created exactly once per
// set, immutable thereafter. The six cards are recoverable via SetCards.
type DeclaredSet struct {
	Set  SetKey
	Team Team
}

// Flags bitfield.
const (
	FlagGameStarted uint16 = 1 << 0
	FlagGameOver    uint16 = 1 << 1
)

// GameState holds the complete, self-contained state of a Literature match.
// A flat value type: snapshots are plain struct copies.
type GameState struct {
	Players       [NumPlayers]PlayerState
	CurrentPlayer uint8
	Declared      [NumSets]DeclaredSet
	DeclaredLen   uint8
	Flags         uint16
	Winner        int8 // team index, -1 while undecided
	RNG           uint64
}

// IsGameOver reports whether a team has reached SetsToWin.
func (g *GameState) IsGameOver() bool { return g.Flags&FlagGameOver != 0 }

// IsStarted reports whether cards have been dealt.
func (g *GameState) IsStarted() bool { return g.Flags&FlagGameStarted != 0 }

// WinningTeam returns the winner. Only meaningful once IsGameOver.
func (g *GameState) WinningTeam() Team { return Team(g.Winner) }

// xorshift64 RNG — inline, no interface.
func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// NewMatch initializes a GameState with the given seed and per-seat team
// assignment. Cards are not dealt until Deal is called; tests that rig
// hands directly can skip it.
func NewMatch(seed uint64, teams [NumPlayers]Team) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Winner = -1
	for i := 0; i < NumPlayers; i++ {
		g.Players[i].Team = teams[i]
	}
	return g
}

// Deal shuffles the deck and distributes CardsPerPlayer cards to each seat
// round-robin, then picks a random starting player. Fisher-Yates over the
// full deck; the deal loop uses floor division, so any remainder cards
// would stay undealt (none with 6 players and 54 cards).
func (g *GameState) Deal() {
	deck := BuildDeck()
	for i := DeckSize - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}

	idx := 0
	for c := 0; c < CardsPerPlayer; c++ {
		for p := 0; p < NumPlayers; p++ {
			g.Players[p].addCard(deck[idx])
			idx++
		}
	}

	g.CurrentPlayer = uint8(g.randN(NumPlayers))
	g.Flags |= FlagGameStarted
}

// TeamSetCount returns how many declared sets the team has been awarded.
func (g *GameState) TeamSetCount(t Team) uint8 {
	n := uint8(0)
	for i := uint8(0); i < g.DeclaredLen; i++ {
		if g.Declared[i].Team == t {
			n++
		}
	}
	return n
}

// SetDeclared reports whether the set has already left play.
func (g *GameState) SetDeclared(s SetKey) bool {
	for i := uint8(0); i < g.DeclaredLen; i++ {
		if g.Declared[i].Set == s {
			return true
		}
	}
	return false
}

// TotalCardsInPlay returns the card count across all hands. Together with
// declared sets it always accounts for the full deck.
func (g *GameState) TotalCardsInPlay() int {
	n := 0
	for i := 0; i < NumPlayers; i++ {
		n += int(g.Players[i].HandLen)
	}
	return n
}

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
