package gamemaster

import (
	"golang.org/x/exp/slices"

	"planetwars/game"
)

// Snapshot renders the game as a player sees it: the player is renumbered to
// 1 and whoever holds seat 1 takes the player's number.
func (e *LocalEngine) Snapshot(seat int) game.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := func(owner int) *int {
		switch owner {
		case 0:
			return nil
		case seat:
			return game.Owner(1)
		case 1:
			return game.Owner(seat)
		default:
			return game.Owner(owner)
		}
	}

	s := game.Snapshot{
		Turn:        e.turn,
		Planets:     make([]game.PlanetSnapshot, 0, len(e.planets)),
		Expeditions: make([]game.FleetSnapshot, 0, len(e.fleets)),
	}
	for _, p := range e.planets {
		growth := p.site.Growth
		s.Planets = append(s.Planets, game.PlanetSnapshot{
			Name:      p.site.Name,
			X:         p.site.X,
			Y:         p.site.Y,
			Owner:     view(p.owner),
			ShipCount: p.ships,
			Growth:    &growth,
		})
	}
	for _, f := range e.fleets {
		s.Expeditions = append(s.Expeditions, game.FleetSnapshot{
			ID:             f.id,
			Origin:         f.origin.site.Name,
			Destination:    f.destination.site.Name,
			TurnsRemaining: f.turnsRemaining,
			Owner:          view(f.owner),
			ShipCount:      f.ships,
		})
	}
	return s
}

// Seats lists the players still holding planets or fleets, in order.
func (e *LocalEngine) Seats() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alive()
}

// Winner reports whether the game is over and who won it. The winner is 0
// for a draw: nobody left, or the turn limit reached with several players.
func (e *LocalEngine) Winner() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winner()
}

func (e *LocalEngine) winner() (int, bool) {
	alive := e.alive()
	switch {
	case len(alive) == 0:
		return 0, true
	case len(alive) == 1:
		return alive[0], true
	case e.turn > TurnLimit:
		return 0, true
	default:
		return 0, false
	}
}

func (e *LocalEngine) alive() []int {
	var seats []int
	add := func(owner int) {
		if owner != 0 && !slices.Contains(seats, owner) {
			seats = append(seats, owner)
		}
	}
	for _, p := range e.planets {
		add(p.owner)
	}
	for _, f := range e.fleets {
		add(f.owner)
	}
	slices.Sort(seats)
	return seats
}
