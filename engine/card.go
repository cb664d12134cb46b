package engine

// Suit constants — packed into upper 4 bits of Card.
const (
	SuitHearts     uint8 = 0
	SuitDiamonds   uint8 = 1
	SuitClubs      uint8 = 2
	SuitSpades     uint8 = 3
	SuitRedJoker   uint8 = 4
	SuitBlackJoker uint8 = 5
)

// Rank constants — packed into lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
	RankJoker uint8 = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool { return c.Rank() == RankJoker }

// rankNames maps rank constants to their wire representation.
var rankNames = [14]string{
	"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "JOKER",
}

// suitNames maps suit constants to their wire representation. The joker
// "suits" are the joker colors.
var suitNames = [6]string{
	"hearts", "diamonds", "clubs", "spades", "red", "black",
}

// RankName returns the wire name of the card's rank ("2".."10", "J", "Q",
// "K", "A", "JOKER").
func (c Card) RankName() string {
	if r := c.Rank(); r < uint8(len(rankNames)) {
		return rankNames[r]
	}
	return "?"
}

// SuitName returns the wire name of the card's suit, or the joker color.
func (c Card) SuitName() string {
	if s := c.Suit(); s < uint8(len(suitNames)) {
		return suitNames[s]
	}
	return "?"
}

// ID returns the card's unique wire identifier, e.g. "2-hearts",
// "J-spades", "joker-red". IDs match the client protocol exactly.
func (c Card) ID() string {
	if c.IsJoker() {
		return "joker-" + c.SuitName()
	}
	return c.RankName() + "-" + c.SuitName()
}

// Set returns the half-suit this card belongs to. Total over the 54-card
// deck: ranks 2–7 form the low set of the suit, 9–A the high set, and the
// four 8s plus both jokers form the eights-jokers set.
func (c Card) Set() SetKey {
	r := c.Rank()
	switch {
	case r == RankJoker || r == RankEight:
		return SetEightsJokers
	case r >= RankTwo && r <= RankSeven:
		return SetKey(uint8(SetLowHearts) + c.Suit())
	default: // 9, 10, J, Q, K, A
		return SetKey(uint8(SetHighHearts) + c.Suit())
	}
}

// BuildDeck returns the full 54-card deck in deterministic order: the four
// low sets, the four high sets, then the four 8s and both jokers.
func BuildDeck() [DeckSize]Card {
	var deck [DeckSize]Card
	idx := 0
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		for rank := RankTwo; rank <= RankSeven; rank++ {
			deck[idx] = NewCard(suit, rank)
			idx++
		}
	}
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		for _, rank := range [6]uint8{RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce} {
			deck[idx] = NewCard(suit, rank)
			idx++
		}
	}
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		deck[idx] = NewCard(suit, RankEight)
		idx++
	}
	deck[idx] = NewCard(SuitRedJoker, RankJoker)
	deck[idx+1] = NewCard(SuitBlackJoker, RankJoker)
	return deck
}

// cardsByID is built once from the deck and backs ParseCardID.
var cardsByID = func() map[string]Card {
	deck := BuildDeck()
	m := make(map[string]Card, DeckSize)
	for _, c := range deck {
		m[c.ID()] = c
	}
	return m
}()

// ParseCardID resolves a wire card identifier to its Card. The second
// return is false for any string that is not one of the 54 deck ids.
func ParseCardID(id string) (Card, bool) {
	c, ok := cardsByID[id]
	return c, ok
}
