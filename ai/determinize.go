package ai

import (
	"math/rand"

	"github.com/Gabrielcidral1/canastra/engine"
)

// Determinize clones the game and redeals every zone hidden from the observer
// — the stock, every other hand (teammate included), and any unclaimed dead
// hand — preserving each zone's exact size. The observer's hand, the discard
// pile and all melds are untouched, so card instances the observer holds never
// move.
func Determinize(g *engine.Game, observer int, rng *rand.Rand) *engine.Game {
	clone := g.Clone(rng)

	var pool []engine.Card
	pool = append(pool, clone.Stock...)
	for i, p := range clone.Players {
		if i != observer {
			pool = append(pool, p.Hand...)
		}
	}
	for t := 0; t < engine.NumTeams; t++ {
		pool = append(pool, clone.DeadHands[t]...)
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	take := func(n int) []engine.Card {
		out := pool[:n:n]
		pool = pool[n:]
		return out
	}
	for i, p := range clone.Players {
		if i != observer {
			p.Hand = take(len(p.Hand))
		}
	}
	for t := 0; t < engine.NumTeams; t++ {
		clone.DeadHands[t] = take(len(clone.DeadHands[t]))
	}
	clone.Stock = take(len(clone.Stock))

	return clone
}
