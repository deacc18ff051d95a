package engine

// RoundScore is the per-team breakdown of a completed round.
type RoundScore struct {
	MeldPoints     int // 10 per melded card plus canastra bonuses
	HandPoints     int // points left in teammates' hands (subtracted)
	FinalKnock     bool
	MissedDeadHand bool
	Total          int
}

// RoundScores holds the breakdown of the most recently scored round, indexed
// by team. Valid once the game reaches RoundOver or GameOver.
func (g *Game) RoundScores() [NumTeams]RoundScore { return g.roundScores }

// scoreRound computes each team's round total and accumulates it into the
// running team scores.
func (g *Game) scoreRound() {
	for team := 0; team < NumTeams; team++ {
		var rs RoundScore
		for _, p := range g.Players {
			if p.Team != team {
				continue
			}
			rs.MeldPoints += p.MeldValue()
			rs.HandPoints += p.HandValue()
		}
		rs.FinalKnock = g.finalKnockTeam == team
		rs.MissedDeadHand = !g.deadHandTaken[team]

		rs.Total = rs.MeldPoints - rs.HandPoints
		if rs.FinalKnock {
			rs.Total += 100
		}
		if rs.MissedDeadHand {
			rs.Total -= 100
		}

		g.roundScores[team] = rs
		g.TeamScores[team] += rs.Total
		g.logf("team %d scored %d (melds %d, hand -%d)", team+1, rs.Total, rs.MeldPoints, rs.HandPoints)
	}
}
