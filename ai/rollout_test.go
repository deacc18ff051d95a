package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabrielcidral1/canastra/engine"
)

func card(t *testing.T, notation string, id uint8) engine.Card {
	t.Helper()
	c, err := engine.ParseCard(notation)
	require.NoError(t, err)
	c.ID = id
	return c
}

func cards(t *testing.T, notations ...string) []engine.Card {
	t.Helper()
	out := make([]engine.Card, len(notations))
	for i, n := range notations {
		out[i] = card(t, n, uint8(i))
	}
	return out
}

// bareGame returns an undealt game; tests place cards and melds directly.
func bareGame(t *testing.T) *engine.Game {
	t.Helper()
	return engine.NewGame(rand.New(rand.NewSource(41)), nil)
}

func TestDiscardDanger(t *testing.T) {
	g := bareGame(t)
	run, err := engine.NewSequence(cards(t, "9H", "10H", "JH"), engine.SuitHearts)
	require.NoError(t, err)
	g.Players[1].Melds = []*engine.Meld{run} // seat 1 is the partner
	g.DiscardPile = []engine.Card{card(t, "KC", 40)}

	discard := func(notation string) engine.Action {
		return engine.Action{Kind: engine.ActionDiscard, Card: card(t, notation, 50)}
	}

	assert.Equal(t, 1.0, discardDanger(g, discard("Joker")))
	assert.Equal(t, 0.9, discardDanger(g, discard("QH")), "partner's run can take it")
	assert.Equal(t, 0.5, discardDanger(g, discard("KD")), "matches the pile top rank")
	assert.Equal(t, 0.0, discardDanger(g, discard("5C")))
	assert.Equal(t, 0.0, discardDanger(g, engine.Action{Kind: engine.ActionDrawStock}))

	g.DiscardPile = []engine.Card{card(t, "Joker", 41)}
	assert.Equal(t, 0.5, discardDanger(g, discard("2S")), "a two under a joker top feeds the pile")
}

func TestTripleLayPenalty(t *testing.T) {
	g := dealtGame(t, 47) // a fresh deal leaves 41 stock cards: opening phase
	require.Greater(t, len(g.Stock), earlyGameStock)

	natural := engine.Action{Kind: engine.ActionLayTriple, Cards: cards(t, "7S", "7D", "7C")}
	wild := engine.Action{Kind: engine.ActionLayTriple, Cards: cards(t, "7S", "7D", "Joker")}

	assert.Equal(t, earlyTriplePenalty, tripleLayPenalty(g, natural))
	assert.Equal(t, earlyWildTriplePenalty, tripleLayPenalty(g, wild))
	assert.Zero(t, tripleLayPenalty(g, engine.Action{Kind: engine.ActionDrawStock}))

	// Once the stock thins out, triples stop being penalized.
	g.Stock = g.Stock[:earlyGameStock]
	assert.Zero(t, tripleLayPenalty(g, natural))
}

func TestEvaluateHeuristic(t *testing.T) {
	g := bareGame(t)
	g.Phase = engine.PhaseLayDown

	run, err := engine.NewSequence(cards(t, "9H", "10H", "JH"), engine.SuitHearts)
	require.NoError(t, err)
	g.Players[0].Melds = []*engine.Meld{run}
	g.Players[2].Hand = cards(t, "KD", "KS") // 20 points stuck with the opponents

	assert.Equal(t, 50.0, evaluate(g, 0), "30 melded plus the opponents' 20 in hand")
	assert.Equal(t, -50.0, evaluate(g, 1))
}

func TestEvaluateCanastraBonus(t *testing.T) {
	g := bareGame(t)
	g.Phase = engine.PhaseLayDown

	clean, err := engine.NewSequence(
		cards(t, "5H", "6H", "7H", "8H", "9H", "10H", "JH"), engine.SuitHearts)
	require.NoError(t, err)
	g.Players[0].Melds = []*engine.Meld{clean}

	// 270 meld points plus the clean-canastra shaping bonus.
	assert.Equal(t, 270.0+canastraCleanBonus, evaluate(g, 0))
}

func TestRolloutTerminatesAndScores(t *testing.T) {
	g := dealtGame(t, 43)
	det := Determinize(g, g.Current, rand.New(rand.NewSource(44)))

	v := rollout(det, 0, 20, rand.New(rand.NewSource(45)))
	assert.False(t, math.IsNaN(v))
	require.NoError(t, det.CheckPartition())
}
