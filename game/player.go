package game

import "fmt"

// PlayerType classifies an owner from the agent's point of view.
type PlayerType int

const (
	Neutral PlayerType = iota
	Allied
	Hostile
)

func (t PlayerType) String() string {
	switch t {
	case Neutral:
		return "neutral"
	case Allied:
		return "allied"
	case Hostile:
		return "hostile"
	default:
		panic(fmt.Sprintf("unknown player type %d", int(t)))
	}
}

// Player is an owner of planets. Players are derived from each snapshot; the
// neutral player has Number 0.
type Player struct {
	Number  int
	Type    PlayerType
	Planets []*Planet
}

func (p *Player) String() string {
	return fmt.Sprintf("%s#%d", p.Type, p.Number)
}

// Ships returns the total ships of the player: garrisons plus fleets in flight.
func (p *Player) Ships(gs *GameState) int {
	total := 0
	for _, planet := range p.Planets {
		total += planet.Ships
	}
	for _, move := range gs.Moves {
		if move.Player == p {
			total += move.Ships
		}
	}
	return total
}

// Growth returns the summed growth rate of the player's planets.
func (p *Player) Growth() int {
	total := 0
	for _, planet := range p.Planets {
		total += planet.Growth
	}
	return total
}
