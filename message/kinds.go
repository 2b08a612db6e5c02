package message

import (
	"planetwars/game"
	"planetwars/meta"
)

// seedFertility values a position by the growth it can reach, nearer planets
// weighing more. Only seeded on the first turn.
func seedFertility(b *Board, p *game.Planet) (Value, bool) {
	if b.state.Turn != 1 {
		return nil, false
	}
	fertility := 0.0
	for _, q := range b.state.Planets {
		fertility += float64(q.Growth) / float64(1+p.Turns(q))
	}
	return Scalar(fertility), true
}

// force signs ships by owner: hostile ships count up, allied ships down.
func force(owner *game.Player, ships int) float64 {
	switch owner.Type {
	case game.Hostile:
		return float64(ships)
	case game.Allied:
		return -float64(ships)
	case game.Neutral:
		return 0
	default:
		panic("unexpected player type")
	}
}

// seedPressureLocal sends the signed force of a planet and the fleets landing
// on it to itself and its direct links.
func seedPressureLocal(_ *Board, p *game.Planet) (Value, bool) {
	pressure := force(p.Owner, p.Ships)
	for _, m := range p.Incoming {
		pressure += force(m.Player, m.Ships)
	}
	return Scalar(pressure), true
}

// seedPressureGlobal spreads the garrison of hostile planets over the galaxy.
func seedPressureGlobal(_ *Board, p *game.Planet) (Value, bool) {
	if !p.Is(game.Hostile) {
		return nil, false
	}
	return Scalar(p.Ships), true
}

// seedHostileDistance starts a hop count at every hostile planet.
func seedHostileDistance(_ *Board, p *game.Planet) (Value, bool) {
	if !p.Is(game.Hostile) {
		return nil, false
	}
	return Count(0), true
}

// seedRequestPassive reserves ships per turn offset. For an allied planet
// position d holds the ships that must stay from turn d on to survive every
// known arrival. For any other planet it holds the extra ships an allied
// fleet landing at d needs to keep it.
func seedRequestPassive(_ *Board, p *game.Planet) (Value, bool) {
	horizon := 0
	for _, m := range p.Incoming {
		horizon = max(horizon, m.Turns)
	}
	if horizon == 0 {
		return Series(nil), true
	}

	// net[t] is the cumulative surplus of hostile over allied ships landed by t
	net := make([]int, horizon+1)
	for _, m := range p.Incoming {
		if m.Player.Type == game.Allied {
			net[m.Turns] -= m.Ships
		} else {
			net[m.Turns] += m.Ships
		}
	}
	for t := 1; t <= horizon; t++ {
		net[t] += net[t-1]
	}

	reserved := make(Series, horizon+1)
	if p.Is(game.Allied) {
		worst := 0
		for d := horizon; d >= 0; d-- {
			worst = max(worst, net[d]-p.Growth*d)
			reserved[d] = worst
		}
	} else {
		for d := 0; d <= horizon; d++ {
			for t := d + 1; t <= horizon; t++ {
				reserved[d] = max(reserved[d], net[t]-net[d]-p.Growth*(t-d))
			}
		}
	}
	return trim(reserved), true
}

// seedRequestActive turns the reservation of an allied planet into the ships
// it is short of, per turn offset.
func seedRequestActive(b *Board, p *game.Planet) (Value, bool) {
	if !p.Is(game.Allied) {
		return nil, false
	}
	reserved := b.Series(RequestPassive, p)
	requested := make(Series, len(reserved))
	for i, r := range reserved {
		requested[i] = max(0, r-p.Ships)
	}
	return trim(requested), true
}

func gamePhase(gs *game.GameState) GameStatus {
	neutral := len(gs.PlanetsOf(game.Neutral))
	switch {
	case gs.Turn >= meta.LateTurn || neutral == 0:
		return Late
	case float64(neutral) > meta.EarlyNeutralShare*float64(len(gs.Planets)):
		return Early
	default:
		return Mid
	}
}

func seedStatusGame(b *Board, _ *game.Planet) (Value, bool) {
	return b.phase, true
}

func seedStatusScores(b *Board, _ *game.Planet) (Value, bool) {
	return Scalar(b.standing), true
}

// seedStatusWinning classifies the standing settled in the first pass.
func seedStatusWinning(b *Board, p *game.Planet) (Value, bool) {
	standing := b.Scalar(StatusScores, p)
	switch {
	case standing >= meta.WinningHardStanding:
		return WinningHard, true
	case standing >= meta.WinningStanding:
		return Winning, true
	case standing > meta.LosingStanding:
		return Even, true
	case standing > meta.LosingHardStanding:
		return Losing, true
	default:
		return LosingHard, true
	}
}
