package message

import (
	"fmt"

	"planetwars/game"
)

// Board holds the messages of one turn, indexed by kind then planet ID. It is
// built from scratch every turn.
type Board struct {
	state  *game.GameState
	values [numKinds][]Value
	inbox  [numKinds][][]Value

	standing float64
	phase    GameStatus
}

// Propagate computes every message for the state in two passes: the second
// pass seeds from values the first pass has settled.
func Propagate(gs *game.GameState) *Board {
	b := &Board{
		state:    gs,
		standing: gs.Standing(),
		phase:    gamePhase(gs),
	}
	for k := range b.values {
		b.values[k] = make([]Value, len(gs.Planets))
		b.inbox[k] = make([][]Value, len(gs.Planets))
	}
	b.run(1)
	b.run(2)
	return b
}

func (b *Board) run(pass int) {
	for _, k := range Kinds() {
		bh := behaviourOf(k)
		if bh.pass != pass {
			continue
		}
		for _, p := range b.state.Planets {
			if v, ok := bh.seed(b, p); ok {
				b.post(k, bh, p, v)
			}
		}
	}
	for _, k := range Kinds() {
		bh := behaviourOf(k)
		if bh.pass != pass {
			continue
		}
		for _, p := range b.state.Planets {
			b.settle(k, bh, p)
		}
	}
}

// post delivers a seeded value along every route of its kind.
func (b *Board) post(k Kind, bh behaviour, origin *game.Planet, v Value) {
	for _, r := range routes(bh.route, origin) {
		b.inbox[k][r.to.ID] = append(b.inbox[k][r.to.ID], bh.hop.apply(v, r.hops))
	}
}

// settle reduces the arrivals of a planet into the value it holds.
func (b *Board) settle(k Kind, bh behaviour, p *game.Planet) {
	arrivals := b.inbox[k][p.ID]
	b.inbox[k][p.ID] = nil
	if len(arrivals) == 0 {
		b.values[k][p.ID] = nil
		return
	}
	b.values[k][p.ID] = bh.reduce.apply(arrivals)
}

type route struct {
	to   *game.Planet
	hops int
}

func routes(r Route, origin *game.Planet) []route {
	switch r {
	case RouteSelf:
		return []route{{to: origin}}
	case RouteLinks:
		result := []route{{to: origin}}
		for _, l := range origin.Links {
			result = append(result, route{to: l.To, hops: 1})
		}
		return result
	case RouteAll:
		// Breadth first, so every planet is reached over its fewest hops
		visited := map[*game.Planet]bool{origin: true}
		result := []route{{to: origin}}
		for i := 0; i < len(result); i++ {
			cur := result[i]
			for _, l := range cur.to.Links {
				if visited[l.To] {
					continue
				}
				visited[l.To] = true
				result = append(result, route{to: l.To, hops: cur.hops + 1})
			}
		}
		return result
	default:
		panic(fmt.Sprintf("unknown route %d", int(r)))
	}
}

// Value returns what the planet holds for a kind, or the kind's default.
func (b *Board) Value(k Kind, p *game.Planet) Value {
	if v := b.values[k][p.ID]; v != nil {
		return v
	}
	return behaviourOf(k).zero
}

// Scalar returns a numeric message as a float.
func (b *Board) Scalar(k Kind, p *game.Planet) float64 {
	switch v := b.Value(k, p).(type) {
	case Scalar:
		return float64(v)
	case Count:
		return float64(v)
	default:
		panic(fmt.Sprintf("message %s holds %T, not a number", k, v))
	}
}

// Series returns a per-turn message. The slice belongs to the board.
func (b *Board) Series(k Kind, p *game.Planet) Series {
	v, ok := b.Value(k, p).(Series)
	if !ok {
		panic(fmt.Sprintf("message %s is not a series", k))
	}
	return v
}

// At reads a series position; positions past the end are zero.
func (s Series) At(i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// HostileDistance returns the hops from the planet to the nearest hostile planet.
func (b *Board) HostileDistance(p *game.Planet) int {
	return int(b.Value(HostileDistance, p).(Count))
}

// Game returns the phase of the match as seen from the planet.
func (b *Board) Game(p *game.Planet) GameStatus {
	return b.Value(StatusGame, p).(GameStatus)
}

// Winning returns the win status as seen from the planet.
func (b *Board) Winning(p *game.Planet) WinStatus {
	return b.Value(StatusWinning, p).(WinStatus)
}

// Fulfil records that ships will reach the planet after the given number of
// turns, lowering its active request. Every position of the series is
// lowered, not only those from the arrival on: the series is one shortfall
// seen at different offsets and the ships on their way cover it. Requests
// that cannot be served in time are left alone.
func (b *Board) Fulfil(p *game.Planet, turns, ships int) {
	requested := b.Series(RequestActive, p)
	if len(requested) <= turns {
		return
	}
	for i := range requested {
		requested[i] = max(0, requested[i]-ships)
	}
	b.values[RequestActive][p.ID] = trim(requested)
}

// trim drops trailing zero requests.
func trim(s Series) Series {
	n := len(s)
	for n > 0 && s[n-1] <= 0 {
		n--
	}
	return s[:n]
}
