package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"planetwars/game"
	"planetwars/meta"
)

// TurnLimit is the last turn played; a game still running then is a draw.
const TurnLimit = meta.TurnLimit

type planet struct {
	site  *game.Site
	owner int // 0 is neutral
	ships int
}

type fleet struct {
	id             int
	owner          int
	origin         *planet
	destination    *planet
	ships          int
	turnsRemaining int
}

// LocalEngine referees a planetwars game in process. Players are identified by
// their seat number, starting at 1.
type LocalEngine struct {
	mu      sync.Mutex
	rules   game.Rules
	galaxy  *game.Map
	planets []*planet // Indexed by site ID
	fleets  []*fleet
	players map[int]*game.Player
	turn    int
	nextID  int
}

func NewLocalEngine(rules game.Rules) *LocalEngine {
	if rules == nil {
		rules = game.NewStandardRules()
	}
	return &LocalEngine{rules: rules}
}

// Init loads the starting position. Owners in the snapshot are seat numbers.
func (e *LocalEngine) Init(s game.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	galaxy := game.NewMapFromSnapshot(s)
	if len(galaxy.Sites) != len(s.Planets) {
		return errors.New("planet names must be unique")
	}
	e.galaxy = galaxy
	e.planets = make([]*planet, len(galaxy.Sites))
	e.fleets = nil
	e.players = map[int]*game.Player{0: {Number: 0, Type: game.Neutral}}
	e.turn = max(1, s.Turn)
	e.nextID = 0

	for _, ps := range s.Planets {
		if ps.ShipCount < 0 {
			return fmt.Errorf("planet %q has negative ship count %d", ps.Name, ps.ShipCount)
		}
		site, _ := galaxy.Site(ps.Name)
		e.planets[site.ID] = &planet{site: site, owner: e.seat(ps.Owner), ships: ps.ShipCount}
	}
	for _, fs := range s.Expeditions {
		origin, destination := e.planet(fs.Origin), e.planet(fs.Destination)
		if origin == nil || destination == nil {
			return fmt.Errorf("expedition %d travels %q -> %q outside the map", fs.ID, fs.Origin, fs.Destination)
		}
		if fs.ShipCount <= 0 || fs.TurnsRemaining <= 0 {
			return fmt.Errorf("expedition %d has %d ships and %d turns remaining", fs.ID, fs.ShipCount, fs.TurnsRemaining)
		}
		e.fleets = append(e.fleets, &fleet{
			id:             e.newID(),
			owner:          e.seat(fs.Owner),
			origin:         origin,
			destination:    destination,
			ships:          fs.ShipCount,
			turnsRemaining: fs.TurnsRemaining,
		})
	}
	return nil
}

// Play dispatches the orders of a seat. Orders are validated as a whole: if
// one is illegal none is applied.
func (e *LocalEngine) Play(seat int, orders []game.Order) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.galaxy == nil {
		return errors.New("game not initialized")
	}
	if _, over := e.winner(); over {
		return errors.New("game is over - no orders allowed")
	}

	sent := map[*planet]int{}
	for _, o := range orders {
		origin, destination := e.planet(o.Origin), e.planet(o.Destination)
		switch {
		case origin == nil || destination == nil:
			return fmt.Errorf("illegal order %+v: unknown planet", o)
		case origin == destination:
			return fmt.Errorf("illegal order %+v: origin is the destination", o)
		case origin.owner != seat:
			return fmt.Errorf("illegal order %+v: %s is not owned by player %d", o, o.Origin, seat)
		case o.ShipCount <= 0:
			return fmt.Errorf("illegal order %+v: no ships", o)
		case sent[origin]+o.ShipCount > origin.ships:
			return fmt.Errorf("illegal order %+v: %s holds %d ships", o, o.Origin, origin.ships)
		}
		sent[origin] += o.ShipCount
	}

	for _, o := range orders {
		origin, destination := e.planet(o.Origin), e.planet(o.Destination)
		origin.ships -= o.ShipCount
		e.fleets = append(e.fleets, &fleet{
			id:             e.newID(),
			owner:          seat,
			origin:         origin,
			destination:    destination,
			ships:          o.ShipCount,
			turnsRemaining: e.galaxy.Turns(origin.site.ID, destination.site.ID),
		})
	}
	return nil
}

// Step advances the game one turn: owned planets grow, fleets travel and the
// fleets landing fight the garrison.
func (e *LocalEngine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.planets {
		if p.owner != 0 {
			p.ships += p.site.Growth
		}
	}

	landing := map[*planet][]*fleet{}
	inFlight := e.fleets[:0]
	for _, f := range e.fleets {
		f.turnsRemaining--
		if f.turnsRemaining > 0 {
			inFlight = append(inFlight, f)
			continue
		}
		landing[f.destination] = append(landing[f.destination], f)
	}
	e.fleets = inFlight

	for _, p := range e.planets {
		if len(landing[p]) == 0 {
			continue
		}
		armies := []game.Army{{Player: e.player(p.owner), Ships: p.ships}}
		for _, f := range landing[p] {
			merged := false
			for i := range armies {
				if armies[i].Player.Number == f.owner {
					armies[i].Ships += f.ships
					merged = true
					break
				}
			}
			if !merged {
				armies = append(armies, game.Army{Player: e.player(f.owner), Ships: f.ships})
			}
		}
		outcome := e.rules.Resolve(armies, e.players[0])
		p.owner, p.ships = outcome.Player.Number, outcome.Ships
	}
	e.turn++
}

// Turn returns the current turn, starting at 1.
func (e *LocalEngine) Turn() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn
}

func (e *LocalEngine) planet(name string) *planet {
	site, ok := e.galaxy.Site(name)
	if !ok {
		return nil
	}
	return e.planets[site.ID]
}

func (e *LocalEngine) seat(owner *int) int {
	if owner == nil {
		return 0
	}
	e.player(*owner)
	return *owner
}

// player returns the combatant of a seat; only its identity matters to the rules.
func (e *LocalEngine) player(seat int) *game.Player {
	if p, ok := e.players[seat]; ok {
		return p
	}
	p := &game.Player{Number: seat, Type: game.Hostile}
	e.players[seat] = p
	return p
}

func (e *LocalEngine) newID() int {
	e.nextID++
	return e.nextID
}
