package game

import (
	"fmt"
	"sort"
)

// Planet is a node of the galaxy graph as seen on the current turn.
type Planet struct {
	*Site
	Ships    int     // Garrison
	Owner    *Player // Exactly one owner at any instant
	Links    []Link  // Outgoing links, ordered by travel time
	Incoming []*Move // Fleets in flight whose destination is this planet

	galaxy *Map
}

// Link is a directed edge between two planets weighted by travel time in turns.
type Link struct {
	From  *Planet
	To    *Planet
	Turns int
}

// Move proposes sending ships along the link.
func (l Link) Move(ships int) *Move {
	return &Move{
		From:   l.From,
		To:     l.To,
		Player: l.From.Owner,
		Ships:  ships,
		Turns:  l.Turns,
	}
}

// Distance is the euclidean distance to another planet.
func (p *Planet) Distance(other *Planet) float64 {
	return p.galaxy.Distance(p.ID, other.ID)
}

// Turns is the direct travel time to another planet.
func (p *Planet) Turns(other *Planet) int {
	return p.galaxy.Turns(p.ID, other.ID)
}

// Is reports whether the planet is currently owned by a player of the given type.
func (p *Planet) Is(t PlayerType) bool {
	return p.Owner.Type == t
}

func (p *Planet) String() string {
	return p.Name
}

// GameState represents the state of the galaxy on one turn. It is rebuilt from
// every snapshot; only the Map is carried over between turns.
type GameState struct {
	Map     *Map      // Reference to the static galaxy
	Turn    int       // Current turn, starting at 1
	Players []*Player // Neutral first, then by player number
	Planets []*Planet // Indexed by site ID
	Moves   []*Move   // All fleets in flight
	Self    *Player   // The agent
	Neutral *Player
}

// NewGameState builds the state of one turn from a snapshot. self is the
// player number the agent plays as. The map must hold exactly the planets of
// the snapshot.
func NewGameState(m *Map, s Snapshot, turn, self int) (*GameState, error) {
	if len(s.Planets) != len(m.Sites) {
		return nil, fmt.Errorf("snapshot has %d planets, map has %d", len(s.Planets), len(m.Sites))
	}
	if !m.Routed() {
		m.Route()
	}

	gs := &GameState{
		Map:     m,
		Turn:    turn,
		Planets: make([]*Planet, len(m.Sites)),
	}
	players := map[int]*Player{}
	player := func(owner *int) *Player {
		number := 0
		if owner != nil {
			number = *owner
		}
		if p, ok := players[number]; ok {
			return p
		}
		p := &Player{Number: number, Type: Hostile}
		switch {
		case owner == nil:
			p.Type = Neutral
		case number == self:
			p.Type = Allied
		}
		players[number] = p
		return p
	}
	gs.Neutral = player(nil)
	gs.Self = player(&self)

	for _, ps := range s.Planets {
		site, ok := m.Site(ps.Name)
		if !ok {
			return nil, fmt.Errorf("planet %q is not on the map", ps.Name)
		}
		if ps.ShipCount < 0 {
			return nil, fmt.Errorf("planet %q has negative ship count %d", ps.Name, ps.ShipCount)
		}
		if gs.Planets[site.ID] != nil {
			return nil, fmt.Errorf("planet %q listed twice", ps.Name)
		}
		owner := player(ps.Owner)
		planet := &Planet{
			Site:   site,
			Ships:  ps.ShipCount,
			Owner:  owner,
			galaxy: m,
		}
		owner.Planets = append(owner.Planets, planet)
		gs.Planets[site.ID] = planet
	}

	for _, planet := range gs.Planets {
		planet.Links = make([]Link, 0, len(planet.Borders))
		for _, b := range planet.Borders {
			planet.Links = append(planet.Links, Link{From: planet, To: gs.Planets[b.To], Turns: b.Turns})
		}
	}

	for _, fs := range s.Expeditions {
		from := gs.Planet(fs.Origin)
		to := gs.Planet(fs.Destination)
		if from == nil || to == nil {
			return nil, fmt.Errorf("expedition %d travels %q -> %q outside the map", fs.ID, fs.Origin, fs.Destination)
		}
		if fs.ShipCount <= 0 || fs.TurnsRemaining <= 0 {
			return nil, fmt.Errorf("expedition %d has %d ships and %d turns remaining", fs.ID, fs.ShipCount, fs.TurnsRemaining)
		}
		move := &Move{
			From:   from,
			To:     to,
			Player: player(fs.Owner),
			Ships:  fs.ShipCount,
			Turns:  fs.TurnsRemaining,
		}
		gs.Moves = append(gs.Moves, move)
		to.Incoming = append(to.Incoming, move)
	}

	for _, p := range players {
		gs.Players = append(gs.Players, p)
	}
	sort.Slice(gs.Players, func(i, j int) bool { return gs.Players[i].Number < gs.Players[j].Number })

	return gs, nil
}

// Planet looks a planet up by name, nil if unknown.
func (gs *GameState) Planet(name string) *Planet {
	site, ok := gs.Map.Site(name)
	if !ok {
		return nil
	}
	return gs.Planets[site.ID]
}

// PlanetsOf returns the planets currently owned by players of the given type.
func (gs *GameState) PlanetsOf(t PlayerType) []*Planet {
	var planets []*Planet
	for _, p := range gs.Planets {
		if p.Owner.Type == t {
			planets = append(planets, p)
		}
	}
	return planets
}

// Opponents returns the hostile players.
func (gs *GameState) Opponents() []*Player {
	var opponents []*Player
	for _, p := range gs.Players {
		if p.Type == Hostile {
			opponents = append(opponents, p)
		}
	}
	return opponents
}
