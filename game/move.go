package game

import "planetwars/meta"

// Move represents a fleet transfer: either a fleet already in flight (from the
// snapshot) or a dispatch proposed by the agent this turn.
type Move struct {
	From   *Planet
	To     *Planet
	Player *Player
	Ships  int
	Turns  int // Turns until arrival, counted from the departure
	Delay  int // Turns to wait before departing; proposals with Delay > 0 are not sent
}

// NewMove proposes sending ships from one planet to another over the direct distance.
func NewMove(from, to *Planet, ships int) *Move {
	return &Move{
		From:   from,
		To:     to,
		Player: from.Owner,
		Ships:  ships,
		Turns:  from.Turns(to),
	}
}

// Score ranks competing proposals; higher is better. Fewer ships and an
// earlier arrival both raise it.
func (m *Move) Score() float64 {
	return -float64(m.Turns+m.Delay) - meta.ShipWeight*float64(m.Ships)
}

// Arrival is the number of turns from now until the fleet lands.
func (m *Move) Arrival() int {
	return m.Turns + m.Delay
}

// Order converts the move to the output format.
func (m *Move) Order() Order {
	return Order{
		Origin:      m.From.Name,
		Destination: m.To.Name,
		ShipCount:   m.Ships,
	}
}
