package ai

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabrielcidral1/canastra/engine"
)

// discardPhaseGame advances a fresh deal to the acting player's discard
// phase, where several actions compete.
func discardPhaseGame(t *testing.T, seed int64) *engine.Game {
	t.Helper()
	g := dealtGame(t, seed)
	require.NoError(t, g.DrawFromStock())
	require.NoError(t, g.EndLayDown())
	return g
}

func TestRecommendRejectsWrongSeat(t *testing.T) {
	g := dealtGame(t, 51)
	_, err := Recommend(context.Background(), g, (g.Current+1)%engine.NumPlayers, Config{})
	assert.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestRecommendNoLegalAction(t *testing.T) {
	g := engine.NewGame(rand.New(rand.NewSource(52)), nil)
	// Undealt games sit in the round-over state with nothing to do.
	_, err := Recommend(context.Background(), g, g.Current, Config{})
	assert.ErrorIs(t, err, ErrNoLegalAction)
}

func TestRecommendSingleActionShortcut(t *testing.T) {
	g := dealtGame(t, 53)
	g.Phase = engine.PhaseDiscard
	p := g.Players[g.Current]
	p.Hand = p.Hand[:1]

	a, err := Recommend(context.Background(), g, g.Current, Config{})
	require.NoError(t, err)
	assert.Equal(t, engine.ActionDiscard, a.Kind)
	assert.Equal(t, p.Hand[0].ID, a.Card.ID)
}

func TestRecommendReturnsApplicableAction(t *testing.T) {
	g := discardPhaseGame(t, 54)
	cfg := Config{Iterations: 64, Workers: 2, Seed: 55, RolloutDepth: 8}

	a, err := Recommend(context.Background(), g, g.Current, cfg)
	require.NoError(t, err)
	assert.Equal(t, engine.ActionDiscard, a.Kind)

	clone := g.Clone(rand.New(rand.NewSource(56)))
	require.NoError(t, engine.Apply(clone, a), "recommended action must be playable on the real state")
	require.NoError(t, clone.CheckPartition())
	require.NoError(t, g.CheckPartition(), "search must not touch the real state")
}

func TestRecommendDeterministicWithSeed(t *testing.T) {
	cfg := Config{Iterations: 48, Workers: 3, Seed: 57, RolloutDepth: 6}

	g1 := discardPhaseGame(t, 58)
	a1, err := Recommend(context.Background(), g1, g1.Current, cfg)
	require.NoError(t, err)

	g2 := discardPhaseGame(t, 58)
	a2, err := Recommend(context.Background(), g2, g2.Current, cfg)
	require.NoError(t, err)

	assert.Equal(t, a1.Key(), a2.Key())
}

func TestRecommendHonorsBudget(t *testing.T) {
	g := discardPhaseGame(t, 59)
	cfg := Config{Iterations: 1 << 20, Workers: 2, Seed: 60, Budget: 50 * time.Millisecond}

	start := time.Now()
	a, err := Recommend(context.Background(), g, g.Current, cfg)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	legal := map[string]bool{}
	for _, l := range g.LegalActions() {
		legal[l.Key()] = true
	}
	assert.True(t, legal[a.Key()], "budget fallback must still be a legal action")
}

func TestRecommendCancelledContext(t *testing.T) {
	g := discardPhaseGame(t, 61)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := Recommend(ctx, g, g.Current, Config{Iterations: 1 << 20, Workers: 2, Seed: 62})
	require.NoError(t, err, "a cancelled search still reports its best effort")
	assert.Equal(t, engine.ActionDiscard, a.Kind)
}

func TestRecommendOffersExhaustedDraw(t *testing.T) {
	g := dealtGame(t, 65)
	park := g.Players[(g.Current+1)%engine.NumPlayers]
	park.Hand = append(park.Hand, g.Stock...)
	g.Stock = nil
	// A lone card cannot pair with the pile top, so the draw stands alone.
	p := g.Players[g.Current]
	p.Hand = p.Hand[:1]

	a, err := Recommend(context.Background(), g, g.Current, Config{})
	require.NoError(t, err, "an exhausted table is a playable position, not a defect")
	assert.Equal(t, engine.ActionDrawStock, a.Kind)
}

func TestRecommendFromDrawPhase(t *testing.T) {
	g := dealtGame(t, 63)
	a, err := Recommend(context.Background(), g, g.Current, Config{Iterations: 32, Workers: 1, Seed: 64})
	require.NoError(t, err)
	assert.Contains(t,
		[]engine.ActionKind{engine.ActionDrawStock, engine.ActionDrawDiscardPile}, a.Kind)
}
