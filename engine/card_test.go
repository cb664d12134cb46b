package engine

import "testing"

// TestBuildDeck verifies the deck contains exactly 54 unique cards.
func TestBuildDeck(t *testing.T) {
	deck := BuildDeck()

	seen := make(map[Card]bool)
	for i, c := range deck {
		if c == EmptyCard {
			t.Errorf("deck[%d] is EmptyCard", i)
			continue
		}
		if seen[c] {
			t.Errorf("duplicate card at index %d: %s", i, c.ID())
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("got %d unique cards, want %d", len(seen), DeckSize)
	}

	jokers := 0
	for c := range seen {
		if c.IsJoker() {
			jokers++
		}
	}
	if jokers != 2 {
		t.Errorf("jokerCount = %d, want 2", jokers)
	}
}

// TestDeckSetPartition verifies the deck partitions into 9 disjoint sets
// of 6 cards each, and that Card.Set agrees with SetCards.
func TestDeckSetPartition(t *testing.T) {
	counts := make(map[SetKey]int)
	for _, c := range BuildDeck() {
		counts[c.Set()]++
	}
	if len(counts) != NumSets {
		t.Fatalf("deck spans %d sets, want %d", len(counts), NumSets)
	}
	for s, n := range counts {
		if n != CardsPerSet {
			t.Errorf("set %s has %d cards, want %d", s, n, CardsPerSet)
		}
	}

	for s := SetKey(0); s < NumSets; s++ {
		for _, c := range SetCards(s) {
			if c.Set() != s {
				t.Errorf("card %s: Set() = %s, expected %s", c.ID(), c.Set(), s)
			}
		}
	}
}

// TestCardIDs verifies wire identifiers for representative cards.
func TestCardIDs(t *testing.T) {
	cases := []struct {
		card Card
		id   string
	}{
		{NewCard(SuitHearts, RankTwo), "2-hearts"},
		{NewCard(SuitSpades, RankTen), "10-spades"},
		{NewCard(SuitClubs, RankJack), "J-clubs"},
		{NewCard(SuitDiamonds, RankAce), "A-diamonds"},
		{NewCard(SuitHearts, RankEight), "8-hearts"},
		{NewCard(SuitRedJoker, RankJoker), "joker-red"},
		{NewCard(SuitBlackJoker, RankJoker), "joker-black"},
	}
	for _, tc := range cases {
		if got := tc.card.ID(); got != tc.id {
			t.Errorf("ID() = %q, want %q", got, tc.id)
		}
		parsed, ok := ParseCardID(tc.id)
		if !ok {
			t.Errorf("ParseCardID(%q) failed", tc.id)
		} else if parsed != tc.card {
			t.Errorf("ParseCardID(%q) = %s, want %s", tc.id, parsed.ID(), tc.card.ID())
		}
	}

	if _, ok := ParseCardID("11-hearts"); ok {
		t.Error("ParseCardID accepted an id outside the deck")
	}
	if _, ok := ParseCardID(""); ok {
		t.Error("ParseCardID accepted empty string")
	}
}

// TestParseSetKey verifies wire set names round-trip and malformed names fail.
func TestParseSetKey(t *testing.T) {
	for s := SetKey(0); s < NumSets; s++ {
		parsed, err := ParseSetKey(s.String())
		if err != nil {
			t.Errorf("ParseSetKey(%q) error: %v", s.String(), err)
			continue
		}
		if parsed != s {
			t.Errorf("ParseSetKey(%q) = %v, want %v", s.String(), parsed, s)
		}
	}

	for _, bad := range []string{"low-", "mid-hearts", "low-jokers", "", "eights"} {
		if _, err := ParseSetKey(bad); err != ErrInvalidSetKey {
			t.Errorf("ParseSetKey(%q) error = %v, want ErrInvalidSetKey", bad, err)
		}
	}
}

// TestSetMembership spot-checks the boundary ranks around the 8s.
func TestSetMembership(t *testing.T) {
	if got := NewCard(SuitHearts, RankSeven).Set(); got != SetLowHearts {
		t.Errorf("7-hearts in %s, want low-hearts", got)
	}
	if got := NewCard(SuitHearts, RankNine).Set(); got != SetHighHearts {
		t.Errorf("9-hearts in %s, want high-hearts", got)
	}
	if got := NewCard(SuitHearts, RankEight).Set(); got != SetEightsJokers {
		t.Errorf("8-hearts in %s, want eights-jokers", got)
	}
	if got := NewCard(SuitSpades, RankAce).Set(); got != SetHighSpades {
		t.Errorf("A-spades in %s, want high-spades", got)
	}
	if got := NewCard(SuitRedJoker, RankJoker).Set(); got != SetEightsJokers {
		t.Errorf("joker-red in %s, want eights-jokers", got)
	}
}
