package engine

import (
	"fmt"
	"strings"
)

// ActionKind tags the closed set of player actions.
type ActionKind uint8

const (
	ActionDrawStock ActionKind = iota
	ActionDrawDiscardPile
	ActionLaySequence
	ActionLayTriple
	ActionAddToMeld
	ActionDiscard
	ActionEndLayDown
	ActionKnockDirect
	ActionKnockIndirect
	ActionKnockFinal
)

func (k ActionKind) String() string {
	switch k {
	case ActionDrawStock:
		return "draw_stock"
	case ActionDrawDiscardPile:
		return "draw_discard_pile"
	case ActionLaySequence:
		return "lay_sequence"
	case ActionLayTriple:
		return "lay_triple"
	case ActionAddToMeld:
		return "add_to_meld"
	case ActionDiscard:
		return "discard"
	case ActionEndLayDown:
		return "end_lay_down"
	case ActionKnockDirect:
		return "knock_direct"
	case ActionKnockIndirect:
		return "knock_indirect"
	case ActionKnockFinal:
		return "knock_final"
	}
	return "unknown"
}

// Action is a transient tagged value describing one player move. Only the
// fields relevant to the Kind are set.
type Action struct {
	Kind      ActionKind
	Cards     []Card // lay actions
	Suit      Suit   // lay_sequence
	Owner     int    // add_to_meld: meld owner's seat
	MeldIndex int    // add_to_meld
	Card      Card   // add_to_meld, discard
}

// Key returns a stable identity string for the action, used by search code to
// match statistics for the same move across determinizations.
func (a Action) Key() string {
	var b strings.Builder
	b.WriteString(a.Kind.String())
	switch a.Kind {
	case ActionLaySequence, ActionLayTriple:
		for _, c := range a.Cards {
			fmt.Fprintf(&b, ":%s", c)
		}
		if a.Kind == ActionLaySequence {
			fmt.Fprintf(&b, "/%s", a.Suit)
		}
	case ActionAddToMeld:
		fmt.Fprintf(&b, ":%d:%d:%s", a.Owner, a.MeldIndex, a.Card)
	case ActionDiscard:
		fmt.Fprintf(&b, ":%s", a.Card)
	}
	return b.String()
}

func (a Action) String() string { return a.Key() }

// Apply routes the action to the matching engine operation. Unknown kinds
// fail with ErrInvalidAction; currently-illegal actions fail with the
// operation's own typed reason.
func Apply(g *Game, a Action) error {
	switch a.Kind {
	case ActionDrawStock:
		return g.DrawFromStock()
	case ActionDrawDiscardPile:
		return g.DrawDiscardPile()
	case ActionLaySequence:
		return g.LaySequence(a.Cards, a.Suit)
	case ActionLayTriple:
		return g.LayTriple(a.Cards)
	case ActionAddToMeld:
		return g.AddToMeld(a.Owner, a.MeldIndex, a.Card)
	case ActionDiscard:
		return g.Discard(a.Card)
	case ActionEndLayDown:
		return g.EndLayDown()
	case ActionKnockDirect, ActionKnockIndirect, ActionKnockFinal:
		want := map[ActionKind]KnockKind{
			ActionKnockDirect:   KnockDirect,
			ActionKnockIndirect: KnockIndirect,
			ActionKnockFinal:    KnockFinal,
		}[a.Kind]
		kind, err := g.ClassifyKnock()
		if err != nil {
			return err
		}
		if kind != want {
			return fmt.Errorf("knock classifies as %s: %w", kind, ErrInvalidAction)
		}
		_, err = g.Knock()
		return err
	}
	return ErrInvalidAction
}
