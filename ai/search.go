package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Gabrielcidral1/canastra/engine"
)

// ErrNoLegalAction means the acting player has no legal action. Given a
// consistent engine state this cannot happen; callers must treat it as a
// fatal precondition violation, not a game event.
var ErrNoLegalAction = errors.New("no legal action for acting player")

// Config bounds one search. Zero fields take the defaults.
type Config struct {
	// Iterations is the per-search simulation budget, split across workers.
	Iterations int
	// Budget is an optional wall-clock deadline; the search returns the best
	// action found so far when it expires.
	Budget time.Duration
	// Exploration is the UCB1 C constant.
	Exploration float64
	// RolloutDepth caps the playout length in actions.
	RolloutDepth int
	// Workers is the number of parallel search trees; 0 means NumCPU.
	Workers int
	// Seed makes the search deterministic when non-zero.
	Seed int64
}

// DefaultConfig returns the tuning used for in-game computer players.
func DefaultConfig() Config {
	return Config{
		Iterations:   256,
		Exploration:  1.414, // sqrt(2)
		RolloutDepth: 15,
		Workers:      0,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.Exploration == 0 {
		c.Exploration = d.Exploration
	}
	if c.RolloutDepth <= 0 {
		c.RolloutDepth = d.RolloutDepth
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// treeDepthCap bounds tree descent; beyond it the playout policy takes over.
const treeDepthCap = 10

// Recommend returns one action for the acting player, chosen by determinized
// UCT search within the iteration and wall-clock budget. The game state is
// only read; all simulation happens on clones.
func Recommend(ctx context.Context, g *engine.Game, player int, cfg Config) (engine.Action, error) {
	if player != g.Current {
		return engine.Action{}, fmt.Errorf("seat %d is not the acting player: %w", player, engine.ErrInvalidAction)
	}
	legal := g.LegalActions()
	if len(legal) == 0 {
		return engine.Action{}, ErrNoLegalAction
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	cfg = cfg.withDefaults()
	if cfg.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Budget)
		defer cancel()
	}

	team := g.Players[player].Team
	roots := make([]*node, cfg.Workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		iters := cfg.Iterations / cfg.Workers
		if w < cfg.Iterations%cfg.Workers {
			iters++
		}
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(cfg.Seed + int64(w)*0x9e3779b9))
			root := &node{}
			for i := 0; i < iters; i++ {
				select {
				case <-ctx.Done():
					roots[w] = root
					return nil
				default:
				}
				runIteration(root, g, player, team, cfg, rng)
			}
			roots[w] = root
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return engine.Action{}, err
	}

	// Single-writer aggregation of the per-worker root statistics.
	merged := &node{}
	for _, root := range roots {
		if root == nil {
			continue
		}
		merged.visits += root.visits
		for _, ch := range root.children {
			agg := merged.child(ch.key)
			if agg == nil {
				agg = merged.addChild(ch.action)
			}
			agg.visits += ch.visits
			agg.total += ch.total
		}
	}
	if len(merged.children) == 0 {
		// Budget exhausted before any expansion; fall back to the first legal
		// action.
		return legal[0], nil
	}
	return selectRobustChild(g, merged), nil
}

// selectRobustChild picks the most-visited root child. Children within 10% of
// the top visit count compete on mean value, discounted by the root action
// penalties (discard danger, early triple lays) so near-tied blunders lose.
func selectRobustChild(g *engine.Game, root *node) engine.Action {
	maxVisits := 0
	for _, ch := range root.children {
		if ch.visits > maxVisits {
			maxVisits = ch.visits
		}
	}
	threshold := maxVisits - maxVisits/10
	var best *node
	bestScore := 0.0
	for _, ch := range root.children {
		if ch.visits < threshold {
			continue
		}
		score := ch.mean() - discardDangerPenalty*discardDanger(g, ch.action) - tripleLayPenalty(g, ch.action)
		if best == nil || score > bestScore {
			best, bestScore = ch, score
		}
	}
	return best.action
}

// runIteration performs one determinize/select/expand/rollout/backpropagate
// cycle. The tree stores actions only; the path is replayed onto a fresh
// determinization each iteration, skipping children whose move is not legal
// under the current sample.
func runIteration(root *node, g *engine.Game, player, team int, cfg Config, rng *rand.Rand) {
	det := Determinize(g, player, rng)
	n := root

	for depth := 0; depth < treeDepthCap; depth++ {
		if det.Over() {
			break
		}
		actions := det.AbstractActions(rng)
		if len(actions) == 0 {
			break
		}
		legal := make(map[string]bool, len(actions))
		byKey := make(map[string]engine.Action, len(actions))
		var untried []engine.Action
		for _, a := range actions {
			k := a.Key()
			legal[k] = true
			byKey[k] = a
			if n.child(k) == nil {
				untried = append(untried, a)
			}
		}
		if len(untried) > 0 {
			a := untried[rng.Intn(len(untried))]
			if err := engine.Apply(det, a); err != nil {
				break
			}
			n = n.addChild(a)
			break
		}
		ch := n.bestChild(cfg.Exploration, legal)
		if ch == nil {
			break
		}
		if err := engine.Apply(det, byKey[ch.key]); err != nil {
			break
		}
		n = ch
	}

	value := rollout(det, team, cfg.RolloutDepth, rng)
	backpropagate(n, value)
}
