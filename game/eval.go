package game

import "planetwars/meta"

// Standing tallies each player's resources (ships and growth) and produces a
// score between -1 and 1 for the agent against its strongest opponent.
func (gs *GameState) Standing() float64 {
	shipScore, growthScore := gs.calculateResourceScores()
	return (1-meta.GrowthScoreWeight)*shipScore + meta.GrowthScoreWeight*growthScore
}

func (gs *GameState) calculateResourceScores() (shipScore, growthScore float64) {
	ownShips := float64(gs.Self.Ships(gs))
	ownGrowth := float64(gs.Self.Growth())

	// The strongest opponent is the one with the most ships
	var best *Player
	bestShips := -1
	for _, p := range gs.Opponents() {
		if ships := p.Ships(gs); ships > bestShips {
			best, bestShips = p, ships
		}
	}
	if best == nil {
		return normalize(ownShips, 0), normalize(ownGrowth, 0)
	}
	return normalize(ownShips, float64(bestShips)), normalize(ownGrowth, float64(best.Growth()))
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
