package agent

import (
	"math"

	"github.com/rs/zerolog/log"

	"planetwars/game"
	"planetwars/message"
	"planetwars/meta"
	"planetwars/metrics"
)

type Option func(a *Agent)

// WithRules sets the combat rules used for projections.
func WithRules(rules game.Rules) Option {
	return func(a *Agent) {
		if rules != nil {
			a.rules = rules
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *Agent) {
		if collector != nil {
			a.metrics = collector
		}
	}
}

// Agent decides the moves of one player, turn after turn. Besides its options
// it only remembers the preferred start planet and the free planets still to
// claim; everything else is rebuilt from each state.
type Agent struct {
	rules   game.Rules
	metrics metrics.Collector

	preferredStart string   // Neutral planet worth taking over the start position, "" if none
	freePlanets    []string // Undefended neutral planets not yet claimed
}

func New(options ...Option) *Agent {
	a := &Agent{ // Default values
		rules:   game.NewStandardRules(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// turn is the working context of the turn being decided.
type turn struct {
	state  *game.GameState
	board  *message.Board
	future *game.Projector
	moves  []*game.Move
	sent   map[*game.Planet]int
}

// Turn decides the orders of the agent for one state.
func (a *Agent) Turn(gs *game.GameState) []game.Order {
	orders := []game.Order{}
	if len(gs.Planets) == 0 {
		return orders
	}

	t := &turn{
		state:  gs,
		board:  message.Propagate(gs),
		future: game.NewProjector(gs, a.rules),
		sent:   map[*game.Planet]int{},
	}
	if gs.Turn == 1 {
		a.openGame(t)
	}
	a.pruneFreePlanets(t)

	for _, planet := range gs.PlanetsOf(game.Allied) {
		if t.board.Winning(planet) == message.LosingHard && a.tryAddMove(t, a.flee(t, planet), Flee) {
			continue
		}
		if !eligible(t, planet) {
			continue
		}
		a.moveForPlanet(t, planet)
	}

	a.metrics.AddProjections(t.future.Hits(), t.future.Misses())
	for _, move := range t.moves {
		orders = append(orders, move.Order())
	}
	return orders
}

// openGame looks at the start positions: it lists the free planets and, when
// the opponent starts more fertile, picks a neutral planet to move to.
func (a *Agent) openGame(t *turn) {
	fertility := func(planets []*game.Planet) float64 {
		total := 0.0
		for _, p := range planets {
			total += t.board.Scalar(message.Fertility, p)
		}
		return total
	}
	own := fertility(t.state.PlanetsOf(game.Allied))
	hostile := fertility(t.state.PlanetsOf(game.Hostile))

	a.preferredStart = ""
	if hostile > own {
		best := own
		for _, p := range t.state.PlanetsOf(game.Neutral) {
			if f := t.board.Scalar(message.Fertility, p); f > best {
				best = f
				a.preferredStart = p.Name
			}
		}
	}

	a.freePlanets = nil
	for _, p := range t.state.PlanetsOf(game.Neutral) {
		if p.Ships == 0 {
			a.freePlanets = append(a.freePlanets, p.Name)
		}
	}
	log.Debug().
		Float64("fertility", own).
		Float64("hostileFertility", hostile).
		Str("preferredStart", a.preferredStart).
		Strs("freePlanets", a.freePlanets).
		Msg("opening")
}

// pruneFreePlanets forgets free planets that are no longer neutral and empty.
func (a *Agent) pruneFreePlanets(t *turn) {
	kept := a.freePlanets[:0]
	for _, name := range a.freePlanets {
		if p := t.state.Planet(name); p != nil && p.Is(game.Neutral) && p.Ships == 0 {
			kept = append(kept, name)
		}
	}
	a.freePlanets = kept
}

// eligible skips planets with no ships to spare or asking for help themselves.
func eligible(t *turn, planet *game.Planet) bool {
	if t.board.Series(message.RequestPassive, planet).At(0) >= planet.Ships {
		return false
	}
	return t.board.Series(message.RequestActive, planet).At(0) == 0
}

// moveForPlanet applies the tactics in order until one produces a move.
func (a *Agent) moveForPlanet(t *turn, planet *game.Planet) {
	if a.claimFreePlanets(t, planet) {
		return
	}
	if a.reposition(t, planet) {
		return
	}
	if a.tryAddMove(t, a.reinforce(t, planet), Reinforce) {
		return
	}
	if a.tryAddMove(t, a.conquer(t, planet), Conquer) {
		return
	}
	a.tryAddMove(t, a.dump(t, planet), Dump)
}

// tryAddMove commits a proposal and lowers the request of its destination.
// Empty, delayed and overcommitting proposals are refused.
func (a *Agent) tryAddMove(t *turn, move *game.Move, tactic Tactic) bool {
	if move == nil || move.Ships <= 0 || move.Delay > 0 {
		return false
	}
	if t.sent[move.From]+move.Ships > move.From.Ships {
		log.Warn().
			Str("from", move.From.Name).
			Int("ships", move.Ships).
			Int("garrison", move.From.Ships).
			Str("tactic", tactic.String()).
			Msg("refusing move exceeding garrison")
		return false
	}
	t.sent[move.From] += move.Ships
	t.moves = append(t.moves, move)
	t.board.Fulfil(move.To, move.Arrival(), move.Ships)
	a.metrics.AddTactic(tactic.String())
	log.Debug().
		Str("tactic", tactic.String()).
		Str("from", move.From.Name).
		Str("to", move.To.Name).
		Int("ships", move.Ships).
		Int("turns", move.Turns).
		Msg("move")
	return true
}

// available is what a planet can send after the given delay, keeping its
// reservation and what it already sent this turn. The reservation already
// credits growth up to the last known arrival, so only growth past that
// arrival is added.
func available(t *turn, planet *game.Planet, delay int) int {
	horizon := 0
	for _, m := range planet.Incoming {
		horizon = max(horizon, m.Turns)
	}
	h := min(delay, horizon)
	reserved := t.board.Series(message.RequestPassive, planet).At(h)
	return planet.Ships + planet.Growth*(delay-h) - max(0, reserved) - t.sent[planet]
}

// shipsFor sizes a move: never more than available, and outside the early
// game never less than MinMovePart of it. The result may be zero or negative
// when nothing can be sent.
func shipsFor(t *turn, planet *game.Planet, ships, delay int) int {
	avail := available(t, planet, delay)
	ships = min(ships, avail)
	if t.board.Game(planet) != message.Early && float64(ships) < float64(avail)*meta.MinMovePart {
		ships = int(math.Ceil(float64(avail) * meta.MinMovePart))
	}
	return ships
}

// neededExtra is what a captured planet needs on top of the conquest to hold
// against later arrivals.
func neededExtra(t *turn, planet *game.Planet, turns int) int {
	return max(0, t.board.Series(message.RequestPassive, planet).At(turns))
}
