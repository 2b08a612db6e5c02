package game

import "fmt"

// Future is the projected state of a planet some turns from now.
type Future struct {
	Player *Player
	Ships  int
	Armies []Army // Forces present on that turn before combat, largest first. Read only.
}

// Projector simulates growth, arrivals and combat per planet. Projections are
// memoised for the lifetime of the projector, which must not outlive the turn
// it was created for.
type Projector struct {
	state   *GameState
	rules   Rules
	futures [][]Future // Indexed by planet ID then turn offset
	hits    int
	misses  int
}

// NewProjector creates the projection arena of one turn.
func NewProjector(gs *GameState, rules Rules) *Projector {
	return &Projector{
		state:   gs,
		rules:   rules,
		futures: make([][]Future, len(gs.Planets)),
	}
}

// Future projects the owner and garrison of a planet the given number of
// turns from now. An offset of zero or less is the current state.
func (pr *Projector) Future(planet *Planet, turns int) Future {
	futures := pr.futures[planet.ID]
	if futures == nil {
		garrison := Army{Player: planet.Owner, Ships: planet.Ships}
		futures = []Future{{Player: planet.Owner, Ships: planet.Ships, Armies: []Army{garrison}}}
		pr.futures[planet.ID] = futures
	}
	if turns < len(futures) {
		pr.hits++
		return futures[max(0, turns)]
	}

	pr.misses++
	for t := len(futures); t <= turns; t++ {
		futures = append(futures, pr.step(planet, futures[t-1], t))
	}
	pr.futures[planet.ID] = futures
	return futures[turns]
}

// step advances a projection by one turn.
func (pr *Projector) step(planet *Planet, prev Future, turn int) Future {
	garrison := Army{Player: prev.Player, Ships: prev.Ships}
	if prev.Player.Type != Neutral {
		garrison.Ships += planet.Growth
	}

	armies := []Army{garrison}
	for _, move := range planet.Incoming {
		if move.Turns != turn {
			continue
		}
		merged := false
		for i := range armies {
			if armies[i].Player == move.Player {
				armies[i].Ships += move.Ships
				merged = true
				break
			}
		}
		if !merged {
			armies = append(armies, Army{Player: move.Player, Ships: move.Ships})
		}
	}

	outcome := pr.rules.Resolve(armies, pr.state.Neutral)
	if outcome.Ships < 0 {
		panic(fmt.Sprintf("projection of %s at turn %d has negative garrison %d", planet.Name, turn, outcome.Ships))
	}
	return Future{
		Player: outcome.Player,
		Ships:  outcome.Ships,
		Armies: SortArmies(armies),
	}
}

// Hits returns how many queries were answered from the arena.
func (pr *Projector) Hits() int {
	return pr.hits
}

// Misses returns how many queries had to simulate further turns.
func (pr *Projector) Misses() int {
	return pr.misses
}
