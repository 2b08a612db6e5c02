package game

// Snapshot is one turn of the planetwars protocol as received from the game
// server. Owners are player numbers from the receiver's point of view: 1 is
// the receiver, nil is neutral.
type Snapshot struct {
	Turn        int              `json:"turn,omitempty"`
	Planets     []PlanetSnapshot `json:"planets"`
	Expeditions []FleetSnapshot  `json:"expeditions"`
}

type PlanetSnapshot struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Owner     *int    `json:"owner"`
	ShipCount int     `json:"ship_count"`
	Growth    *int    `json:"growth,omitempty"` // Defaults to DefaultGrowth
}

type FleetSnapshot struct {
	ID             int    `json:"id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TurnsRemaining int    `json:"turns_remaining"`
	Owner          *int   `json:"owner"`
	ShipCount      int    `json:"ship_count"`
}

// DefaultGrowth is the planetwars growth rate of an owned planet.
const DefaultGrowth = 1

func (p PlanetSnapshot) growth() int {
	if p.Growth == nil {
		return DefaultGrowth
	}
	return *p.Growth
}

// Order is a fleet dispatch emitted by the agent.
type Order struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ShipCount   int    `json:"ship_count"`
}

// Owner is a helper to build snapshot owners.
func Owner(n int) *int {
	return &n
}
