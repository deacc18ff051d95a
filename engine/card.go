// Package engine implements the Canastra rules: cards, melds, the turn state
// machine, action enumeration and round scoring.
//
// The engine is a plain in-memory value store mutated synchronously by one
// caller at a time. It holds no global state, so search code can Clone a Game
// and mutate the copy freely.
package engine

import (
	"fmt"
	"strings"
)

// Suit identifies a card suit. Jokers carry SuitNone.
type Suit uint8

const (
	SuitNone Suit = iota
	SuitClubs
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// Suits lists the four natural suits in canonical order.
var Suits = [4]Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	}
	return "-"
}

// Rank identifies a card rank.
type Rank uint8

const (
	RankAce Rank = iota
	RankTwo
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankJoker
)

// RankOrder is the canonical sequence order with the Ace anchored before the
// Two. Sequence validation additionally consults the ace-high position via
// rankPosAceHigh.
var RankOrder = [13]Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

var rankNames = [14]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "Joker"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

// rankPos returns the position of r in the canonical (ace-low) order.
func rankPos(r Rank) int { return int(r) }

// rankPosAceHigh returns the position of r with the Ace placed after the King.
func rankPosAceHigh(r Rank) int {
	if r == RankAce {
		return 13
	}
	return int(r)
}

// Card is an immutable (rank, suit) pair plus a stable instance ID. The
// double-deck pack contains duplicate rank+suit values, so hands and melds
// track cards by ID, never by value alone.
type Card struct {
	Rank Rank
	Suit Suit
	ID   uint8
}

// SameValue reports whether two cards have equal rank and suit, ignoring
// instance identity.
func (c Card) SameValue(o Card) bool { return c.Rank == o.Rank && c.Suit == o.Suit }

// Wild reports whether the card can act as a wildcard: jokers always, twos
// contextually (a 2 of the sequence's suit also plays as a natural).
func (c Card) Wild() bool { return c.Rank == RankJoker || c.Rank == RankTwo }

// Value returns the card's point value. All cards count 10 in this variant.
func (c Card) Value() int { return 10 }

func (c Card) String() string {
	if c.Rank == RankJoker {
		return "Joker"
	}
	return c.Rank.String() + c.Suit.String()
}

// DeckSize is the full pack: two 52-card decks plus four jokers.
const DeckSize = 108

// BuildDeck returns the full Canastra pack in deterministic order with
// sequential instance IDs. The caller shuffles with its own randomness
// source; this package never seeds global state.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	id := uint8(0)
	for j := 0; j < 4; j++ {
		deck = append(deck, Card{Rank: RankJoker, Suit: SuitNone, ID: id})
		id++
	}
	for pack := 0; pack < 2; pack++ {
		for _, suit := range Suits {
			for _, rank := range RankOrder {
				deck = append(deck, Card{Rank: rank, Suit: suit, ID: id})
				id++
			}
		}
	}
	return deck
}

// ParseCard parses a card from its string notation ("AS", "10H", "Joker").
// The returned card carries a zero ID; it identifies a value, not an instance.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "JOKER" {
		return Card{Rank: RankJoker, Suit: SuitNone}, nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card notation %q", s)
	}
	rankStr, suitStr := s[:len(s)-1], s[len(s)-1:]
	var rank Rank
	found := false
	for _, r := range RankOrder {
		if r.String() == rankStr {
			rank, found = r, true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("invalid rank %q", rankStr)
	}
	var suit Suit
	switch suitStr {
	case "C":
		suit = SuitClubs
	case "D":
		suit = SuitDiamonds
	case "H":
		suit = SuitHearts
	case "S":
		suit = SuitSpades
	default:
		return Card{}, fmt.Errorf("invalid suit %q", suitStr)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// OrganizeHand returns a display ordering: grouped by suit, ace high, with
// jokers slotted into rank gaps where they could act as fillers and the
// remainder appended at the end. The input is not modified.
func OrganizeHand(hand []Card) []Card {
	displayPos := func(r Rank) int {
		if r == RankAce {
			return 14
		}
		return int(r) + 1
	}

	var jokers, rest []Card
	for _, c := range hand {
		if c.Rank == RankJoker {
			jokers = append(jokers, c)
		} else {
			rest = append(rest, c)
		}
	}

	out := make([]Card, 0, len(hand))
	for _, suit := range Suits {
		var suited []Card
		for _, c := range rest {
			if c.Suit == suit {
				suited = append(suited, c)
			}
		}
		for i := 1; i < len(suited); i++ {
			for j := i; j > 0 && displayPos(suited[j].Rank) < displayPos(suited[j-1].Rank); j-- {
				suited[j], suited[j-1] = suited[j-1], suited[j]
			}
		}
		// Slot jokers into single-card gaps within the suit run.
		for i := 0; i+1 < len(suited) && len(jokers) > 0; i++ {
			if displayPos(suited[i+1].Rank)-displayPos(suited[i].Rank) > 1 {
				suited = append(suited[:i+1], append([]Card{jokers[0]}, suited[i+1:]...)...)
				jokers = jokers[1:]
				i++
			}
		}
		out = append(out, suited...)
	}
	return append(out, jokers...)
}
