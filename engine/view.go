package engine

import "github.com/google/uuid"

// PlayerView is the publicly visible slice of one player's state. Hand holds
// exact cards only for the viewer; other seats expose HandSize alone.
type PlayerView struct {
	ID       uuid.UUID
	Name     string
	Team     int
	HandSize int
	Hand     []Card // viewer only, display-ordered
	Melds    []Meld
}

// View is a read-only snapshot of the table from one seat's perspective.
// External collaborators (rendering, benchmarking) consume Views and drive
// changes through the engine operations.
type View struct {
	GameID        uuid.UUID
	Players       [NumPlayers]PlayerView
	StockSize     int
	DiscardPile   []Card
	DeadHandSizes [NumTeams]int
	DeadHandTaken [NumTeams]bool
	Current       int
	Phase         Phase
	Round         int
	TeamScores    [NumTeams]int
	Log           []string
}

// Snapshot builds the view for the given seat. Hidden information (other
// hands, stock order, dead hand contents) is reduced to sizes.
func (g *Game) Snapshot(viewer int) View {
	v := View{
		GameID:      g.ID,
		StockSize:   len(g.Stock),
		DiscardPile: append([]Card(nil), g.DiscardPile...),
		Current:     g.Current,
		Phase:       g.Phase,
		Round:       g.Round,
		TeamScores:  g.TeamScores,
		Log:         append([]string(nil), g.Log...),
	}
	for t := 0; t < NumTeams; t++ {
		v.DeadHandSizes[t] = len(g.DeadHands[t])
		v.DeadHandTaken[t] = g.deadHandTaken[t]
	}
	for i, p := range g.Players {
		pv := PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Team:     p.Team,
			HandSize: len(p.Hand),
		}
		if i == viewer {
			pv.Hand = OrganizeHand(p.Hand)
		}
		for _, m := range p.Melds {
			pv.Melds = append(pv.Melds, Meld{
				Kind:  m.Kind,
				Suit:  m.Suit,
				Cards: append([]Card(nil), m.Cards...),
			})
		}
		v.Players[i] = pv
	}
	return v
}
