package engine

import "fmt"

// DrawFromStock moves the top stock card into the acting player's hand and
// advances to the lay-down phase. An empty stock is rebuilt from the discard
// pile minus its top card (classic rule); when both are exhausted the round
// ends, scored, and ErrEmptyStockAndDiscard is returned.
func (g *Game) DrawFromStock() error {
	if g.Phase != PhaseDraw {
		return ErrInvalidPhase
	}
	if len(g.Stock) == 0 {
		if len(g.DiscardPile) <= 1 {
			g.logf("stock and discard exhausted, round over")
			g.endRound()
			return ErrEmptyStockAndDiscard
		}
		g.reshuffleDiscardIntoStock()
	}
	player := g.CurrentPlayer()
	player.Hand = append(player.Hand, g.popStock())
	g.Phase = PhaseLayDown
	g.logf("%s drew from stock", player.Name)
	return nil
}

// reshuffleDiscardIntoStock rebuilds the stock from the discard pile, leaving
// the top card in place.
func (g *Game) reshuffleDiscardIntoStock() {
	top := g.DiscardPile[len(g.DiscardPile)-1]
	g.Stock = append(g.Stock, g.DiscardPile[:len(g.DiscardPile)-1]...)
	g.DiscardPile = []Card{top}
	g.rng.Shuffle(len(g.Stock), func(i, j int) {
		g.Stock[i], g.Stock[j] = g.Stock[j], g.Stock[i]
	})
	g.logf("discard pile reshuffled into stock (%d cards)", len(g.Stock))
}

// DrawDiscardPile transfers the entire discard pile into the acting player's
// hand. The top card must be immediately usable — addable to a team meld or
// able to form a new meld with two cards already in hand — enforced up front.
func (g *Game) DrawDiscardPile() error {
	if g.Phase != PhaseDraw {
		return ErrInvalidPhase
	}
	if len(g.DiscardPile) == 0 {
		return fmt.Errorf("discard pile is empty: %w", ErrInvalidAction)
	}
	if !g.DiscardTopUsable(g.Current) {
		return fmt.Errorf("top of discard pile is not immediately usable: %w", ErrInvalidAction)
	}
	player := g.CurrentPlayer()
	n := len(g.DiscardPile)
	player.Hand = append(player.Hand, g.DiscardPile...)
	g.DiscardPile = nil
	g.Phase = PhaseLayDown
	g.logf("%s took the discard pile (%d cards)", player.Name, n)
	return nil
}

// DiscardTopUsable reports whether the player could use the top discard card
// this turn: add it to a team meld, or meld it with two held cards.
func (g *Game) DiscardTopUsable(seat int) bool {
	top, ok := g.DiscardTop()
	if !ok {
		return false
	}
	player := g.Players[seat]
	for _, ref := range g.teamMelds(player.Team) {
		if ref.Meld.CanAdd(top) {
			return true
		}
	}
	hand := player.Hand
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			trio := []Card{top, hand[i], hand[j]}
			if CanFormTriple(trio) || len(SequenceSuits(trio)) > 0 {
				return true
			}
		}
	}
	return false
}

// LaySequence removes cards from the acting player's hand and lays them as a
// new sequence meld of the given suit.
func (g *Game) LaySequence(cards []Card, suit Suit) error {
	return g.lay(cards, func() (*Meld, error) { return NewSequence(cards, suit) })
}

// LayTriple removes cards from the acting player's hand and lays them as a
// new triple meld.
func (g *Game) LayTriple(cards []Card) error {
	return g.lay(cards, func() (*Meld, error) { return NewTriple(cards) })
}

func (g *Game) lay(cards []Card, form func() (*Meld, error)) error {
	if g.Phase != PhaseLayDown {
		return ErrInvalidPhase
	}
	player := g.CurrentPlayer()
	if err := g.checkInHand(player, cards); err != nil {
		return err
	}
	meld, err := form()
	if err != nil {
		return err
	}
	if len(cards) == len(player.Hand) {
		if err := g.finalKnockGate(player.Team, meld); err != nil {
			return err
		}
	}
	for _, c := range cards {
		player.removeFromHand(c)
	}
	player.Melds = append(player.Melds, meld)
	g.logf("%s laid a %s of %d cards", player.Name, meld.Kind, len(meld.Cards))
	if len(player.Hand) == 0 {
		g.knockFromLayDown(player)
	}
	return nil
}

// AddToMeld moves one card from the acting player's hand onto an existing
// meld owned by the player or a teammate.
func (g *Game) AddToMeld(owner, meldIndex int, card Card) error {
	if g.Phase != PhaseLayDown {
		return ErrInvalidPhase
	}
	player := g.CurrentPlayer()
	if owner < 0 || owner >= NumPlayers || meldIndex < 0 || meldIndex >= len(g.Players[owner].Melds) {
		return ErrInvalidAction
	}
	target := g.Players[owner]
	if target.Team != player.Team {
		return ErrNotTeamMeld
	}
	if !player.holds(card) {
		return ErrNotInHand
	}
	meld := target.Melds[meldIndex]
	if !meld.CanAdd(card) {
		return ErrIllegalAddition
	}
	if len(player.Hand) == 1 {
		grown := &Meld{Kind: meld.Kind, Suit: meld.Suit, Cards: append(append([]Card(nil), meld.Cards...), card)}
		if err := g.finalKnockGate(player.Team, grown); err != nil {
			return err
		}
	}
	player.removeFromHand(card)
	meld.Cards = append(meld.Cards, card)
	g.logf("%s added %s to %s's meld %d", player.Name, card, target.Name, meldIndex+1)
	if len(player.Hand) == 0 {
		g.knockFromLayDown(player)
	}
	return nil
}

// EndLayDown closes the lay-down phase and moves to the discard phase.
func (g *Game) EndLayDown() error {
	if g.Phase != PhaseLayDown {
		return ErrInvalidPhase
	}
	g.Phase = PhaseDiscard
	return nil
}

// Discard moves a hand card to the top of the discard pile and passes the
// turn. Emptying the hand triggers an indirect or final knock.
func (g *Game) Discard(card Card) error {
	if g.Phase != PhaseDiscard {
		return ErrInvalidPhase
	}
	player := g.CurrentPlayer()
	if !player.holds(card) {
		return ErrNotInHand
	}
	if len(player.Hand) == 1 {
		if err := g.finalKnockGate(player.Team, nil); err != nil {
			return err
		}
	}
	player.removeFromHand(card)
	g.DiscardPile = append(g.DiscardPile, card)
	g.logf("%s discarded %s", player.Name, card)

	if len(player.Hand) == 0 {
		team := player.Team
		if !g.deadHandTaken[team] {
			g.deadHandTaken[team] = true
			g.pendingDeadHand = g.Current
			g.logf("%s knocked (indirect), dead hand owed next turn", player.Name)
			g.advanceTurn()
			return nil
		}
		g.finishGame(team, player)
		return nil
	}
	g.advanceTurn()
	return nil
}

// Knock classifies and processes a knock for the acting player, whose hand
// must already be empty. The mutating operations invoke the same flow
// automatically when they empty a hand; Knock exists so callers can probe or
// drive the transition explicitly (e.g. an indirect knocker's empty turn).
func (g *Game) Knock() (KnockKind, error) {
	kind, err := g.ClassifyKnock()
	if err != nil {
		return KnockNone, err
	}
	player := g.CurrentPlayer()
	switch kind {
	case KnockDirect:
		g.takeDeadHand(player)
	case KnockFinal:
		g.finishGame(player.Team, player)
	}
	return kind, nil
}

// ClassifyKnock reports how a knock by the acting player would classify,
// without mutating state. The hand must already be empty.
func (g *Game) ClassifyKnock() (KnockKind, error) {
	player := g.CurrentPlayer()
	if len(player.Hand) != 0 {
		return KnockNone, ErrInvalidPhase
	}
	team := player.Team
	if !g.deadHandTaken[team] {
		if g.Phase == PhaseLayDown {
			return KnockDirect, nil
		}
		return KnockIndirect, nil
	}
	if !g.teamHasCleanCanastra(team) {
		return KnockNone, ErrFinalKnockNeedsCleanCanastra
	}
	return KnockFinal, nil
}

// finalKnockGate rejects an operation that would empty the acting hand as a
// final knock without a clean canastra. laid, when non-nil, is the meld the
// operation is about to create or grow and counts toward the requirement.
func (g *Game) finalKnockGate(team int, laid *Meld) error {
	if !g.deadHandTaken[team] {
		return nil
	}
	if g.teamHasCleanCanastra(team) {
		return nil
	}
	if laid != nil && laid.Classify() == CanastraClean {
		return nil
	}
	return ErrFinalKnockNeedsCleanCanastra
}

// knockFromLayDown handles a hand emptied by a lay or add: a direct knock
// picks up the dead hand at once, a final knock ends the game.
func (g *Game) knockFromLayDown(player *Player) {
	team := player.Team
	if !g.deadHandTaken[team] {
		g.logf("%s knocked (direct)", player.Name)
		g.takeDeadHand(player)
		return
	}
	g.finishGame(team, player)
}

func (g *Game) takeDeadHand(player *Player) {
	team := player.Team
	g.deadHandTaken[team] = true
	player.Hand = append(player.Hand, g.DeadHands[team]...)
	g.DeadHands[team] = nil
	g.pendingDeadHand = -1
	g.logf("%s picked up the dead hand (%d cards)", player.Name, len(player.Hand))
}

func (g *Game) finishGame(team int, player *Player) {
	g.finalKnockTeam = team
	g.Phase = PhaseGameOver
	g.logf("%s knocked (final), game over", player.Name)
	g.scoreRound()
}

func (g *Game) endRound() {
	g.Phase = PhaseRoundOver
	g.scoreRound()
}

// advanceTurn passes play to the next seat and delivers a dead hand owed from
// an indirect knock.
func (g *Game) advanceTurn() {
	g.Current = (g.Current + 1) % NumPlayers
	g.Phase = PhaseDraw
	if g.pendingDeadHand == g.Current {
		g.takeDeadHand(g.CurrentPlayer())
	}
}

func (g *Game) checkInHand(player *Player, cards []Card) error {
	var seen [DeckSize]bool
	for _, c := range cards {
		if int(c.ID) >= DeckSize || seen[c.ID] || !player.holds(c) {
			return fmt.Errorf("%s: %w", c, ErrNotInHand)
		}
		seen[c.ID] = true
	}
	return nil
}
