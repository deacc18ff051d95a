package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tc builds a card from notation with the given instance ID.
func tc(t *testing.T, notation string, id uint8) Card {
	t.Helper()
	c, err := ParseCard(notation)
	require.NoError(t, err)
	c.ID = id
	return c
}

// tcs builds a slice of cards with sequential IDs.
func tcs(t *testing.T, notations ...string) []Card {
	t.Helper()
	out := make([]Card, len(notations))
	for i, n := range notations {
		out[i] = tc(t, n, uint8(i))
	}
	return out
}

func TestBuildDeck(t *testing.T) {
	deck := BuildDeck()
	require.Len(t, deck, DeckSize)

	seen := map[uint8]bool{}
	jokers := 0
	for _, c := range deck {
		assert.False(t, seen[c.ID], "duplicate card ID %d", c.ID)
		seen[c.ID] = true
		if c.Rank == RankJoker {
			jokers++
			assert.Equal(t, SuitNone, c.Suit)
		}
	}
	assert.Equal(t, 4, jokers)

	// Two copies of every natural rank+suit pair.
	counts := map[string]int{}
	for _, c := range deck {
		counts[c.String()]++
	}
	assert.Equal(t, 2, counts["7H"])
	assert.Equal(t, 2, counts["AS"])
	assert.Equal(t, 4, counts["Joker"])
}

func TestParseCard(t *testing.T) {
	cases := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"AS", RankAce, SuitSpades},
		{"10H", RankTen, SuitHearts},
		{"2c", RankTwo, SuitClubs},
		{"Joker", RankJoker, SuitNone},
		{"KD", RankKing, SuitDiamonds},
	}
	for _, tt := range cases {
		c, err := ParseCard(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.rank, c.Rank)
		assert.Equal(t, tt.suit, c.Suit)
	}

	for _, bad := range []string{"", "X", "11H", "AQ", "5X"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, bad)
	}
}

func TestCardValueUniform(t *testing.T) {
	for _, c := range BuildDeck() {
		assert.Equal(t, 10, c.Value())
	}
}

func TestOrganizeHand(t *testing.T) {
	hand := tcs(t, "KH", "5C", "AH", "3C", "QH", "Joker", "4D")
	got := OrganizeHand(hand)
	require.Len(t, got, len(hand))

	// Clubs first with the joker slotted into the 3C-5C gap, then diamonds,
	// then hearts ace-high.
	assert.Equal(t, "3C", got[0].String())
	assert.Equal(t, "Joker", got[1].String())
	assert.Equal(t, "5C", got[2].String())
	assert.Equal(t, "4D", got[3].String())
	assert.Equal(t, "QH", got[4].String())
	assert.Equal(t, "KH", got[5].String())
	assert.Equal(t, "AH", got[6].String())
}
