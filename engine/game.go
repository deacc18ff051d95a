package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// NumPlayers is fixed: two teams of two.
	NumPlayers = 4
	// NumTeams pairs seats (0,1) against (2,3), matching table seating.
	NumTeams = 2
	// HandSize and DeadHandSize are the 11-card deal.
	HandSize     = 11
	DeadHandSize = 11
)

// Phase is the turn-cycle state: DRAW → LAY_DOWN → DISCARD per player, with
// terminal RoundOver/GameOver states.
type Phase uint8

const (
	PhaseDraw Phase = iota
	PhaseLayDown
	PhaseDiscard
	PhaseRoundOver
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "draw"
	case PhaseLayDown:
		return "lay_down"
	case PhaseDiscard:
		return "discard"
	case PhaseRoundOver:
		return "round_over"
	}
	return "game_over"
}

// KnockKind classifies a hand-emptying knock.
type KnockKind uint8

const (
	KnockNone KnockKind = iota
	KnockDirect
	KnockIndirect
	KnockFinal
)

func (k KnockKind) String() string {
	switch k {
	case KnockDirect:
		return "direct"
	case KnockIndirect:
		return "indirect"
	case KnockFinal:
		return "final"
	}
	return "none"
}

// Player holds one seat's owned cards and melds. The hand is mutated only by
// engine operations; a card moves hand→meld exactly once.
type Player struct {
	ID    uuid.UUID
	Name  string
	Team  int
	Hand  []Card
	Melds []*Meld
}

// HandValue returns the point total of the cards still in hand.
func (p *Player) HandValue() int {
	total := 0
	for _, c := range p.Hand {
		total += c.Value()
	}
	return total
}

// MeldValue returns the point total of the player's laid melds.
func (p *Player) MeldValue() int {
	total := 0
	for _, m := range p.Melds {
		total += m.Points()
	}
	return total
}

func (p *Player) removeFromHand(card Card) bool {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) holds(card Card) bool {
	for _, c := range p.Hand {
		if c.ID == card.ID {
			return true
		}
	}
	return false
}

// Game owns all table state for one round of Canastra plus the cumulative
// team scores across rounds. It has no internal concurrency; callers invoke
// operations sequentially, and search code works on Clones.
type Game struct {
	ID      uuid.UUID
	Players [NumPlayers]*Player

	Stock       []Card
	DiscardPile []Card // top is the last element; fully visible
	DeadHands   [NumTeams][]Card

	Current int
	Phase   Phase
	Round   int

	TeamScores    [NumTeams]int
	roundScores   [NumTeams]RoundScore
	deadHandTaken [NumTeams]bool
	// pendingDeadHand marks a seat owed the dead hand at its next turn start
	// (indirect knock). -1 when none.
	pendingDeadHand int
	finalKnockTeam  int // -1 until a final knock lands

	// Log is the append-only round log exposed to external collaborators.
	Log []string

	rng    *rand.Rand
	logger logrus.FieldLogger
}

// NewGame creates the four players and an empty table. Call NewRound to
// shuffle and deal. The caller supplies the randomness source; logger may be
// nil for silent operation (search clones).
func NewGame(rng *rand.Rand, logger logrus.FieldLogger) *Game {
	g := &Game{
		ID:              uuid.New(),
		rng:             rng,
		logger:          logger,
		pendingDeadHand: -1,
		finalKnockTeam:  -1,
		Phase:           PhaseRoundOver,
	}
	for i := 0; i < NumPlayers; i++ {
		g.Players[i] = &Player{
			ID:   uuid.New(),
			Name: fmt.Sprintf("Player %d", i+1),
			Team: i / 2,
		}
	}
	return g
}

// NewRound resets the table, deals hands and dead hands, flips the first
// discard and picks a random starting player. Cumulative team scores carry
// forward.
func (g *Game) NewRound() {
	deck := BuildDeck()
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	g.Stock = deck
	g.DiscardPile = nil
	g.Log = nil
	g.pendingDeadHand = -1
	g.finalKnockTeam = -1
	g.roundScores = [NumTeams]RoundScore{}
	for t := 0; t < NumTeams; t++ {
		g.DeadHands[t] = nil
		g.deadHandTaken[t] = false
	}
	for _, p := range g.Players {
		p.Hand = nil
		p.Melds = nil
	}

	for c := 0; c < HandSize; c++ {
		for _, p := range g.Players {
			p.Hand = append(p.Hand, g.popStock())
		}
	}
	for t := 0; t < NumTeams; t++ {
		for c := 0; c < DeadHandSize; c++ {
			g.DeadHands[t] = append(g.DeadHands[t], g.popStock())
		}
	}
	g.DiscardPile = append(g.DiscardPile, g.popStock())

	g.Current = g.rng.Intn(NumPlayers)
	g.Phase = PhaseDraw
	g.Round++
	g.logf("round %d: %s starts", g.Round, g.Players[g.Current].Name)
}

func (g *Game) popStock() Card {
	card := g.Stock[len(g.Stock)-1]
	g.Stock = g.Stock[:len(g.Stock)-1]
	return card
}

// CurrentPlayer returns the acting player.
func (g *Game) CurrentPlayer() *Player { return g.Players[g.Current] }

// Over reports whether play has stopped (round or game terminal).
func (g *Game) Over() bool { return g.Phase == PhaseRoundOver || g.Phase == PhaseGameOver }

// GameOver reports whether a final knock ended the whole game.
func (g *Game) GameOver() bool { return g.Phase == PhaseGameOver }

// DiscardTop returns the visible top of the discard pile.
func (g *Game) DiscardTop() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[len(g.DiscardPile)-1], true
}

// TeamTookDeadHand reports whether the team has claimed its dead hand.
func (g *Game) TeamTookDeadHand(team int) bool { return g.deadHandTaken[team] }

// teamHasCleanCanastra reports whether any meld owned by the team classifies
// clean.
func (g *Game) teamHasCleanCanastra(team int) bool {
	for _, p := range g.Players {
		if p.Team != team {
			continue
		}
		for _, m := range p.Melds {
			if m.Classify() == CanastraClean {
				return true
			}
		}
	}
	return false
}

// teamMelds returns (owner index, meld index, meld) for every meld owned by
// the team, in seat order.
func (g *Game) teamMelds(team int) []meldRef {
	var refs []meldRef
	for i, p := range g.Players {
		if p.Team != team {
			continue
		}
		for j, m := range p.Melds {
			refs = append(refs, meldRef{Owner: i, Index: j, Meld: m})
		}
	}
	return refs
}

type meldRef struct {
	Owner int
	Index int
	Meld  *Meld
}

// Clone returns a deep copy sharing no mutable state with the receiver. The
// clone uses the supplied randomness source and carries no logger; the Log is
// not copied. Intended for determinized search.
func (g *Game) Clone(rng *rand.Rand) *Game {
	c := &Game{
		ID:              g.ID,
		Stock:           append([]Card(nil), g.Stock...),
		DiscardPile:     append([]Card(nil), g.DiscardPile...),
		Current:         g.Current,
		Phase:           g.Phase,
		Round:           g.Round,
		TeamScores:      g.TeamScores,
		roundScores:     g.roundScores,
		deadHandTaken:   g.deadHandTaken,
		pendingDeadHand: g.pendingDeadHand,
		finalKnockTeam:  g.finalKnockTeam,
		rng:             rng,
	}
	for t := 0; t < NumTeams; t++ {
		c.DeadHands[t] = append([]Card(nil), g.DeadHands[t]...)
	}
	for i, p := range g.Players {
		cp := &Player{
			ID:   p.ID,
			Name: p.Name,
			Team: p.Team,
			Hand: append([]Card(nil), p.Hand...),
		}
		for _, m := range p.Melds {
			cp.Melds = append(cp.Melds, &Meld{
				Kind:  m.Kind,
				Suit:  m.Suit,
				Cards: append([]Card(nil), m.Cards...),
			})
		}
		c.Players[i] = cp
	}
	return c
}

// CheckPartition verifies the card partition invariant: every one of the 108
// pack cards is in exactly one zone. A failure is a logic defect, not a user
// error.
func (g *Game) CheckPartition() error {
	var seen [DeckSize]int
	count := 0
	note := func(zone string, cards []Card) error {
		for _, c := range cards {
			if int(c.ID) >= DeckSize {
				return fmt.Errorf("%w: unknown card id %d in %s", ErrPartitionViolated, c.ID, zone)
			}
			seen[c.ID]++
			if seen[c.ID] > 1 {
				return fmt.Errorf("%w: card %s duplicated in %s", ErrPartitionViolated, c, zone)
			}
			count++
		}
		return nil
	}
	if err := note("stock", g.Stock); err != nil {
		return err
	}
	if err := note("discard", g.DiscardPile); err != nil {
		return err
	}
	for t := 0; t < NumTeams; t++ {
		if err := note("dead hand", g.DeadHands[t]); err != nil {
			return err
		}
	}
	for _, p := range g.Players {
		if err := note("hand", p.Hand); err != nil {
			return err
		}
		for _, m := range p.Melds {
			if err := note("meld", m.Cards); err != nil {
				return err
			}
		}
	}
	if count != DeckSize {
		return fmt.Errorf("%w: %d cards accounted for, want %d", ErrPartitionViolated, count, DeckSize)
	}
	return nil
}

// logf appends to the round log and emits a debug record when a structured
// logger is attached.
func (g *Game) logf(format string, args ...interface{}) {
	entry := fmt.Sprintf(format, args...)
	g.Log = append(g.Log, entry)
	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"game":  g.ID,
			"round": g.Round,
			"phase": g.Phase.String(),
		}).Debug(entry)
	}
}
