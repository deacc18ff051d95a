// Package ai recommends actions for computer players using determinized
// Monte-Carlo tree search over the engine's rules.
//
// Hidden information (other hands, stock order, dead hands) is resampled into
// a concrete state each iteration; the tree itself is keyed by action, so
// statistics accumulate across determinizations.
package ai

import (
	"math"

	"github.com/Gabrielcidral1/canastra/engine"
)

// node is one search-tree node. It stores no game state: the action path from
// the root is replayed onto each determinized clone.
type node struct {
	key      string
	action   engine.Action
	parent   *node
	children []*node
	visits   int
	total    float64
}

func (n *node) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.total / float64(n.visits)
}

// ucb1 is meanValue + C*sqrt(ln(parentVisits)/visits); unvisited nodes sort
// first.
func (n *node) ucb1(c float64) float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	return n.mean() + c*math.Sqrt(math.Log(float64(n.parent.visits))/float64(n.visits))
}

func (n *node) child(key string) *node {
	for _, ch := range n.children {
		if ch.key == key {
			return ch
		}
	}
	return nil
}

func (n *node) addChild(a engine.Action) *node {
	ch := &node{key: a.Key(), action: a, parent: n}
	n.children = append(n.children, ch)
	return ch
}

// bestChild returns the highest-UCB1 child among those whose key is currently
// legal, ties broken by enumeration order (first wins).
func (n *node) bestChild(c float64, legal map[string]bool) *node {
	var best *node
	bestVal := math.Inf(-1)
	for _, ch := range n.children {
		if !legal[ch.key] {
			continue
		}
		if v := ch.ucb1(c); v > bestVal {
			bestVal = v
			best = ch
		}
	}
	return best
}

// backpropagate adds the rollout value along the path to the root.
func backpropagate(n *node, value float64) {
	for ; n != nil; n = n.parent {
		n.visits++
		n.total += value
	}
}
