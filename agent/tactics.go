package agent

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"planetwars/game"
	"planetwars/message"
	"planetwars/meta"
	"planetwars/utils"
)

// flee evacuates a planet about to be hit when the game is lost anyway: to
// the farthest planet if that outlasts the turn limit, otherwise to the link
// under the least local pressure.
func (a *Agent) flee(t *turn, planet *game.Planet) *game.Move {
	attacked := false
	for _, m := range planet.Incoming {
		if m.Turns == 1 && m.Player.Type == game.Hostile {
			attacked = true
			break
		}
	}
	if !attacked {
		return nil
	}

	var farthest *game.Planet
	maxTurns := 0
	for _, p := range t.state.Planets {
		if turns := planet.Turns(p); turns > maxTurns {
			farthest, maxTurns = p, turns
		}
	}
	if farthest != nil && t.state.Turn+maxTurns > meta.TurnLimit {
		return game.NewMove(planet, farthest, planet.Ships)
	}

	link, ok := utils.MinBy(planet.Links, func(l game.Link) float64 {
		return t.board.Scalar(message.PressureLocal, l.To)
	})
	if !ok {
		return nil
	}
	return link.Move(planet.Ships)
}

// claimFreePlanets sends one ship to each of the nearest undefended neutral
// planets, as many as the planet can spare.
func (a *Agent) claimFreePlanets(t *turn, planet *game.Planet) bool {
	if len(a.freePlanets) == 0 {
		return false
	}
	targets := make([]*game.Planet, 0, len(a.freePlanets))
	for _, name := range a.freePlanets {
		targets = append(targets, t.state.Planet(name))
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return planet.Distance(targets[i]) < planet.Distance(targets[j])
	})

	claimed := map[string]bool{}
	for _, target := range targets {
		if available(t, planet, 0) <= 0 {
			break
		}
		if a.tryAddMove(t, game.NewMove(planet, target, 1), Claim) {
			claimed[target.Name] = true
		}
	}
	if len(claimed) == 0 {
		return false
	}

	kept := a.freePlanets[:0]
	for _, name := range a.freePlanets {
		if !claimed[name] {
			kept = append(kept, name)
		}
	}
	a.freePlanets = kept
	return true
}

// reposition takes the preferred start planet with the whole garrison as
// soon as a planet can outnumber its projected defence.
func (a *Agent) reposition(t *turn, planet *game.Planet) bool {
	if a.preferredStart == "" {
		return false
	}
	target := t.state.Planet(a.preferredStart)
	if target == nil || !target.Is(game.Neutral) {
		a.preferredStart = ""
		return false
	}
	future := t.future.Future(target, planet.Turns(target))
	if planet.Ships <= future.Ships {
		return false
	}
	if !a.tryAddMove(t, game.NewMove(planet, target, planet.Ships), Reposition) {
		return false
	}
	a.preferredStart = ""
	return true
}

// reinforce sends ships to an allied neighbour that asks for them in time, or
// else to one under more local pressure than here.
func (a *Agent) reinforce(t *turn, planet *game.Planet) *game.Move {
	var links []game.Link
	for _, l := range planet.Links {
		if l.To.Is(game.Allied) {
			links = append(links, l)
		}
	}

	for _, l := range links {
		requested := t.board.Series(message.RequestActive, l.To)
		if l.Turns >= len(requested) || requested[l.Turns] <= 0 {
			continue
		}
		if ships := shipsFor(t, planet, requested[l.Turns], 0); ships > 0 {
			return l.Move(ships)
		}
	}

	here := t.board.Scalar(message.PressureLocal, planet)
	for _, l := range links {
		there := t.board.Scalar(message.PressureLocal, l.To)
		if there <= 0 || there <= here {
			continue
		}
		if ships := shipsFor(t, planet, int(math.Ceil(there)), 0); ships > 0 {
			return l.Move(ships)
		}
	}
	return nil
}

// conquer picks the best planet to take over a link. For every target it also
// considers waiting for the fleets already heading there and landing the turn
// after them; if waiting is best, nothing is sent this turn.
func (a *Agent) conquer(t *turn, planet *game.Planet) *game.Move {
	if t.board.Scalar(message.PressureLocal, planet) > 0 {
		return nil
	}

	var best *game.Move
	for _, l := range planet.Links {
		target := l.To
		if target.Is(game.Allied) {
			continue
		}
		future := t.future.Future(target, l.Turns)
		if future.Player.Type == game.Allied {
			continue
		}
		needed := future.Armies[0].Ships + 1 + neededExtra(t, target, l.Turns)
		ships := shipsFor(t, planet, needed, 0)
		option := l.Move(max(needed, ships))

		for _, m := range target.Incoming {
			if m.Turns < l.Turns {
				continue
			}
			arrival := m.Turns + 1
			later := t.future.Future(target, arrival)
			if later.Player.Type == game.Allied {
				continue
			}
			delay := arrival - l.Turns
			laterNeeded := later.Armies[0].Ships + 1 + neededExtra(t, target, arrival)
			laterShips := shipsFor(t, planet, laterNeeded, delay)
			if laterShips < laterNeeded {
				continue
			}
			alternative := l.Move(laterShips)
			alternative.Delay = delay
			if alternative.Score() > option.Score() {
				needed, ships, option = laterNeeded, laterShips, alternative
			}
		}

		if ships < needed {
			continue
		}
		if best == nil || option.Score() > best.Score() {
			best = option
		}
	}

	if best != nil && best.Delay > 0 {
		a.metrics.AddTactic(Defer.String())
		log.Debug().
			Str("from", planet.Name).
			Str("to", best.To.Name).
			Int("delay", best.Delay).
			Int("ships", best.Ships).
			Msg("deferring conquest")
		return nil
	}
	return best
}

// dump moves surplus ships out of a planet that only borders allies: onto the
// strongest nearby hostile planet when clearly ahead, otherwise towards the
// neighbour under the most global pressure.
func (a *Agent) dump(t *turn, planet *game.Planet) *game.Move {
	if t.board.Scalar(message.PressureLocal, planet) > 0 || len(planet.Links) == 0 {
		return nil
	}
	for _, l := range planet.Links {
		if t.future.Future(l.To, l.Turns).Player.Type != game.Allied {
			return nil
		}
	}

	winning := t.board.Winning(planet)
	var target *game.Planet
	if winning == message.WinningHard || (winning == message.Winning && t.board.Game(planet) == message.Late) {
		radius := meta.DumpDistMult * planet.Links[0].Turns
		var candidates []*game.Planet
		for _, p := range t.state.PlanetsOf(game.Hostile) {
			if planet.Turns(p) < radius {
				candidates = append(candidates, p)
			}
		}
		if p, ok := utils.MaxBy(candidates, func(p *game.Planet) int { return p.Ships }); ok {
			target = p
		} else {
			// Closest to the front line
			neighbours := make([]*game.Planet, 0, len(planet.Links))
			for _, l := range planet.Links {
				neighbours = append(neighbours, l.To)
			}
			target, _ = utils.MinBy(neighbours, t.board.HostileDistance)
		}
	}

	if target == nil {
		l, _ := utils.MaxBy(planet.Links, func(l game.Link) float64 {
			return t.board.Scalar(message.PressureGlobal, l.To)
		})
		if t.board.Scalar(message.PressureGlobal, l.To) <= t.board.Scalar(message.PressureGlobal, planet) {
			return nil
		}
		target = l.To
	}

	ships := int(math.Ceil(meta.DumpMovePart * float64(planet.Ships)))
	return game.NewMove(planet, target, shipsFor(t, planet, ships, 0))
}
