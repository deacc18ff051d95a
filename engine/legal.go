package engine

import "math/rand"

// Abstraction bounds for the search action set. Taken from the bot tuning:
// expanding every meld arrangement explodes the branching factor without
// improving play.
const (
	maxAbstractAdds     = 3
	maxAbstractDiscards = 6
	maxLayComboSize     = 7
)

// LegalActions enumerates every action the acting player may take, dispatched
// on the current phase. Actions with identical keys (same move on duplicate
// card values) are listed once.
func (g *Game) LegalActions() []Action {
	if g.Over() {
		return nil
	}
	switch g.Phase {
	case PhaseDraw:
		return g.drawActions()
	case PhaseLayDown:
		var out []Action
		seen := map[string]bool{}
		add := func(a Action) {
			if k := a.Key(); !seen[k] {
				seen[k] = true
				out = append(out, a)
			}
		}
		for _, a := range g.addToMeldActions() {
			add(a)
		}
		for _, a := range g.layActions() {
			add(a)
		}
		add(Action{Kind: ActionEndLayDown})
		return out
	case PhaseDiscard:
		return g.discardActions()
	}
	return nil
}

// AbstractActions returns a bounded, representative action subset for search:
// one add per target meld (capped), a single found lay, and a sample of
// discards. A deliberate breadth-for-depth trade, not a legality oracle.
func (g *Game) AbstractActions(rng *rand.Rand) []Action {
	if g.Over() {
		return nil
	}
	switch g.Phase {
	case PhaseDraw:
		return g.drawActions()
	case PhaseLayDown:
		var out []Action
		adds := g.addOnePerMeldActions()
		if len(adds) > maxAbstractAdds {
			rng.Shuffle(len(adds), func(i, j int) { adds[i], adds[j] = adds[j], adds[i] })
			adds = adds[:maxAbstractAdds]
		}
		out = append(out, adds...)
		if lay, ok := g.findLay(); ok {
			out = append(out, lay)
		}
		out = append(out, Action{Kind: ActionEndLayDown})
		return out
	case PhaseDiscard:
		out := g.discardActions()
		if len(out) > maxAbstractDiscards {
			rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
			out = out[:maxAbstractDiscards]
		}
		return out
	}
	return nil
}

func (g *Game) drawActions() []Action {
	// The stock draw is always available: with both stock and discard
	// exhausted it is the move that ends the round.
	out := []Action{{Kind: ActionDrawStock}}
	if g.DiscardTopUsable(g.Current) {
		out = append(out, Action{Kind: ActionDrawDiscardPile})
	}
	return out
}

func (g *Game) discardActions() []Action {
	var out []Action
	seen := map[string]bool{}
	for _, c := range g.CurrentPlayer().Hand {
		a := Action{Kind: ActionDiscard, Card: c}
		if k := a.Key(); !seen[k] {
			seen[k] = true
			out = append(out, a)
		}
	}
	return out
}

// addToMeldActions returns every (meld, card) pair the acting player could
// play onto a team meld.
func (g *Game) addToMeldActions() []Action {
	player := g.CurrentPlayer()
	var out []Action
	for _, c := range player.Hand {
		for _, ref := range g.teamMelds(player.Team) {
			if ref.Meld.CanAdd(c) {
				out = append(out, Action{Kind: ActionAddToMeld, Owner: ref.Owner, MeldIndex: ref.Index, Card: c})
			}
		}
	}
	return out
}

// addOnePerMeldActions keeps only the first playable card per target meld.
func (g *Game) addOnePerMeldActions() []Action {
	player := g.CurrentPlayer()
	var out []Action
	for _, ref := range g.teamMelds(player.Team) {
		for _, c := range player.Hand {
			if ref.Meld.CanAdd(c) {
				out = append(out, Action{Kind: ActionAddToMeld, Owner: ref.Owner, MeldIndex: ref.Index, Card: c})
				break
			}
		}
	}
	return out
}

// layActions enumerates every minimal (3-card) lay from the hand: one action
// per valid sequence suit plus one per valid triple.
func (g *Game) layActions() []Action {
	hand := g.CurrentPlayer().Hand
	var out []Action
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				trio := []Card{hand[i], hand[j], hand[k]}
				for _, suit := range SequenceSuits(trio) {
					out = append(out, Action{Kind: ActionLaySequence, Cards: trio, Suit: suit})
				}
				if CanFormTriple(trio) {
					out = append(out, Action{Kind: ActionLayTriple, Cards: trio})
				}
			}
		}
	}
	return out
}

// findLay scans the hand for one playable meld: all 3-card subsets first,
// then larger combinations up to maxLayComboSize.
func (g *Game) findLay() (Action, bool) {
	hand := g.CurrentPlayer().Hand
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				trio := []Card{hand[i], hand[j], hand[k]}
				if suits := SequenceSuits(trio); len(suits) > 0 {
					return Action{Kind: ActionLaySequence, Cards: trio, Suit: suits[0]}, true
				}
				if CanFormTriple(trio) {
					return Action{Kind: ActionLayTriple, Cards: trio}, true
				}
			}
		}
	}
	for size := 4; size <= maxLayComboSize && size <= len(hand); size++ {
		if a, ok := findLaySized(hand, size); ok {
			return a, true
		}
	}
	return Action{}, false
}

// findLaySized searches combinations of the given size for a valid lay.
func findLaySized(hand []Card, size int) (Action, bool) {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]Card, size)
		for i, v := range idx {
			combo[i] = hand[v]
		}
		if suits := SequenceSuits(combo); len(suits) > 0 {
			return Action{Kind: ActionLaySequence, Cards: combo, Suit: suits[0]}, true
		}
		if CanFormTriple(combo) {
			return Action{Kind: ActionLayTriple, Cards: combo}, true
		}
		// Advance to the next combination.
		i := size - 1
		for i >= 0 && idx[i] == len(hand)-size+i {
			i--
		}
		if i < 0 {
			return Action{}, false
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
