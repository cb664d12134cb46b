package engine

// SetKey identifies one of the nine half-suits partitioning the deck.
// A closed enum: every Card maps to exactly one SetKey and every SetKey
// expands to exactly CardsPerSet cards, so a malformed wire name can be
// rejected at parse time instead of silently matching nothing.
type SetKey uint8

const (
	SetLowHearts SetKey = iota
	SetLowDiamonds
	SetLowClubs
	SetLowSpades
	SetHighHearts
	SetHighDiamonds
	SetHighClubs
	SetHighSpades
	SetEightsJokers
)

// setNames maps SetKey constants to their wire representation.
var setNames = [NumSets]string{
	"low-hearts", "low-diamonds", "low-clubs", "low-spades",
	"high-hearts", "high-diamonds", "high-clubs", "high-spades",
	"eights-jokers",
}

// String returns the set's wire name, e.g. "low-hearts".
func (s SetKey) String() string {
	if s < NumSets {
		return setNames[s]
	}
	return "?"
}

// ParseSetKey resolves a wire set name to its SetKey. Fails with
// ErrInvalidSetKey for any string that is not one of the nine set names.
func ParseSetKey(name string) (SetKey, error) {
	for i, n := range setNames {
		if n == name {
			return SetKey(i), nil
		}
	}
	return 0, ErrInvalidSetKey
}

// SetCards returns the six cards of the given set. This is the single
// source of truth for set membership: declaration validation and any
// client-facing set listing must both derive from it.
func SetCards(s SetKey) [CardsPerSet]Card {
	var cards [CardsPerSet]Card
	switch {
	case s >= SetLowHearts && s <= SetLowSpades:
		suit := uint8(s - SetLowHearts)
		for i, rank := range [CardsPerSet]uint8{RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven} {
			cards[i] = NewCard(suit, rank)
		}
	case s >= SetHighHearts && s <= SetHighSpades:
		suit := uint8(s - SetHighHearts)
		for i, rank := range [CardsPerSet]uint8{RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce} {
			cards[i] = NewCard(suit, rank)
		}
	default:
		for suit := SuitHearts; suit <= SuitSpades; suit++ {
			cards[suit] = NewCard(suit, RankEight)
		}
		cards[4] = NewCard(SuitRedJoker, RankJoker)
		cards[5] = NewCard(SuitBlackJoker, RankJoker)
	}
	return cards
}
