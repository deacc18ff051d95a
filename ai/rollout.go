package ai

import (
	"math/rand"

	"github.com/Gabrielcidral1/canastra/engine"
)

// Rollout policy constants, tuned against self-play: both sides take a usable
// discard pile often enough that feeding the pile gets punished in simulation
// rather than by a hard rule.
const (
	takeUsefulDiscardProb = 0.6
	canastraCleanBonus    = 30.0
	canastraDirtyBonus    = 15.0
	discardDangerPenalty  = 50.0

	// Opening phase: more than this many cards still in the stock.
	earlyGameStock         = 40
	earlyTriplePenalty     = 25.0
	earlyWildTriplePenalty = 50.0
)

// rollout plays the determinized state forward with the abstracted action set
// and a lightly biased random policy, then evaluates it for the given team.
func rollout(det *engine.Game, team int, depth int, rng *rand.Rand) float64 {
	for step := 0; step < depth && !det.Over(); step++ {
		actions := det.AbstractActions(rng)
		if len(actions) == 0 {
			break
		}
		a := pickRolloutAction(det, actions, rng)
		if err := engine.Apply(det, a); err != nil {
			break
		}
	}
	return evaluate(det, team)
}

// pickRolloutAction chooses uniformly except for a bias toward taking the
// discard pile when the acting player can use its top card.
func pickRolloutAction(det *engine.Game, actions []engine.Action, rng *rand.Rand) engine.Action {
	for _, a := range actions {
		if a.Kind == engine.ActionDrawDiscardPile && rng.Float64() < takeUsefulDiscardProb {
			return a
		}
	}
	return actions[rng.Intn(len(actions))]
}

// evaluate scores a state as the team's advantage over the opposing team:
// final round totals at a terminal state, otherwise meld value minus hand
// value with canastra bonuses.
func evaluate(det *engine.Game, team int) float64 {
	opp := 1 - team
	if det.Over() {
		scores := det.RoundScores()
		return float64(scores[team].Total - scores[opp].Total)
	}
	return heuristic(det, team) - heuristic(det, opp)
}

func heuristic(det *engine.Game, team int) float64 {
	total := 0.0
	for _, p := range det.Players {
		if p.Team != team {
			continue
		}
		total += float64(p.MeldValue() - p.HandValue())
		for _, m := range p.Melds {
			switch m.Classify() {
			case engine.CanastraClean:
				total += canastraCleanBonus
			case engine.CanastraDirty:
				total += canastraDirtyBonus
			}
		}
	}
	return total
}

// tripleLayPenalty discourages a root triple lay while the stock is still
// deep: early triples rarely grow into canastras, and ones spending a joker
// or a 2 burn cards better kept for sequences.
func tripleLayPenalty(g *engine.Game, a engine.Action) float64 {
	if a.Kind != engine.ActionLayTriple {
		return 0
	}
	if len(g.Stock) <= earlyGameStock {
		return 0
	}
	for _, c := range a.Cards {
		if c.Wild() {
			return earlyWildTriplePenalty
		}
	}
	return earlyTriplePenalty
}

// discardDanger rates a root discard from 0 (safe) to 1 (blunder): cards our
// own team could meld, jokers, and cards matching the pile top all feed the
// table.
func discardDanger(g *engine.Game, a engine.Action) float64 {
	if a.Kind != engine.ActionDiscard {
		return 0
	}
	card := a.Card
	danger := 0.0
	player := g.CurrentPlayer()
	for _, p := range g.Players {
		if p.Team != player.Team {
			continue
		}
		for _, m := range p.Melds {
			if m.CanAdd(card) {
				danger = 0.9
			}
		}
	}
	if card.Rank == engine.RankJoker {
		return 1.0
	}
	if top, ok := g.DiscardTop(); ok {
		if top.Rank == card.Rank || (top.Rank == engine.RankJoker && card.Rank == engine.RankTwo) {
			if danger < 0.5 {
				danger = 0.5
			}
		}
	}
	return danger
}
