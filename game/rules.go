package game

// Army is the force one player has on a planet during a turn's combat.
type Army struct {
	Player *Player
	Ships  int
}

// Rules resolves combat on a planet.
type Rules interface {
	// Resolve decides the outcome of a turn given the armies present, the
	// garrison first. It returns the new owner and garrison.
	Resolve(armies []Army, neutral *Player) Army
}

// TieBreak decides who holds a planet when the largest armies are equal.
type TieBreak int

const (
	// TieFirstListed keeps the first of the tied armies in listing order; the
	// garrison is always listed first, so the owner holds.
	TieFirstListed TieBreak = iota
	// TieNeutral leaves the planet to the neutral player with no ships.
	TieNeutral
)
