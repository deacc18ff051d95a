package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHidesOtherHands(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(21)), nil)
	g.NewRound()

	v := g.Snapshot(2)
	for i, pv := range v.Players {
		assert.Equal(t, HandSize, pv.HandSize)
		if i == 2 {
			assert.Len(t, pv.Hand, HandSize)
		} else {
			assert.Empty(t, pv.Hand, "seat %d's cards must stay hidden", i)
		}
	}
	assert.Equal(t, len(g.Stock), v.StockSize)
	assert.Equal(t, [NumTeams]int{DeadHandSize, DeadHandSize}, v.DeadHandSizes)
	assert.Len(t, v.DiscardPile, 1)
	assert.Equal(t, g.Current, v.Current)
}

func TestSnapshotMeldsAreCopies(t *testing.T) {
	g := fixedGame(t, [NumPlayers][]string{
		1: {"9H", "10H", "JH"},
	}, "KC")
	forceMeld(t, g, 1, SuitHearts, "9H", "10H", "JH")

	v := g.Snapshot(0)
	require.Len(t, v.Players[1].Melds, 1)
	v.Players[1].Melds[0].Cards[0] = Card{}
	assert.Equal(t, RankNine, g.Players[1].Melds[0].Cards[0].Rank, "views must not alias engine state")
}

func TestSnapshotViewerHandOrganized(t *testing.T) {
	g := fixedGame(t, [NumPlayers][]string{
		0: {"KH", "3C", "QH", "4C"},
	}, "KC")

	v := g.Snapshot(0)
	var got []string
	for _, c := range v.Players[0].Hand {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"3C", "4C", "QH", "KH"}, got)
	// The hand itself keeps its stored order.
	assert.Equal(t, "KH", g.Players[0].Hand[0].String())
}
