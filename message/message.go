// Package message computes derived per-planet signals by relaxing values
// across the galaxy graph. Every kind of message is a fixed record of
// behaviour: where it is seeded, the routes it travels, how it changes per
// hop, and how arrivals at one planet are combined.
package message

import (
	"fmt"
	"math"

	"planetwars/game"
	"planetwars/meta"
)

// Kind identifies a message type.
type Kind int

const (
	Fertility Kind = iota
	PressureLocal
	PressureGlobal
	RequestPassive
	RequestActive
	StatusGame
	StatusScores
	StatusWinning
	HostileDistance
	numKinds
)

var kindNames = [numKinds]string{
	"fertility", "pressure_local", "pressure_global", "request_passive", "request_active",
	"status_game", "status_scores", "status_winning", "hostile_distance",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every message kind in propagation order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Value is what a planet holds for a message kind.
type Value interface {
	isValue()
}

// Scalar is a real-valued signal.
type Scalar float64

// Count is an integer signal.
type Count int

// Series is a signal indexed by turn offset.
type Series []int

// GameStatus is the coarse phase of the match.
type GameStatus int

const (
	Early GameStatus = iota
	Mid
	Late
)

func (s GameStatus) String() string {
	switch s {
	case Early:
		return "early"
	case Mid:
		return "mid"
	case Late:
		return "late"
	default:
		return fmt.Sprintf("game_status(%d)", int(s))
	}
}

// WinStatus is the agent's standing in the match.
type WinStatus int

const (
	LosingHard WinStatus = iota
	Losing
	Even
	Winning
	WinningHard
)

func (s WinStatus) String() string {
	switch s {
	case LosingHard:
		return "losing_hard"
	case Losing:
		return "losing"
	case Even:
		return "even"
	case Winning:
		return "winning"
	case WinningHard:
		return "winning_hard"
	default:
		return fmt.Sprintf("win_status(%d)", int(s))
	}
}

func (Scalar) isValue()     {}
func (Count) isValue()      {}
func (Series) isValue()     {}
func (GameStatus) isValue() {}
func (WinStatus) isValue()  {}

// NoHostile is the hostile distance of a planet no hostile planet can reach.
const NoHostile = math.MaxInt32

// Route selects the paths a message travels from its origin.
type Route int

const (
	RouteSelf  Route = iota // The origin only
	RouteLinks              // The origin and its direct links
	RouteAll                // Every planet reachable over links, by fewest hops
)

// Hop transforms a value for every link it crosses.
type Hop int

const (
	HopPass Hop = iota
	HopIncrement
	HopDecay
)

func (h Hop) apply(v Value, hops int) Value {
	switch h {
	case HopPass:
		return v
	case HopIncrement:
		return v.(Count) + Count(hops)
	case HopDecay:
		return v.(Scalar) * Scalar(math.Pow(meta.PressureDecay, float64(hops)))
	default:
		panic(fmt.Sprintf("unknown hop transform %d", int(h)))
	}
}

// Reduce combines the values arriving at one planet over different routes.
type Reduce int

const (
	ReduceFirst Reduce = iota
	ReduceMin
	ReduceSum
	ReduceMerge // Element-wise sum of series
)

func (r Reduce) apply(values []Value) Value {
	switch r {
	case ReduceFirst:
		return values[0]
	case ReduceMin:
		best := values[0]
		for _, v := range values[1:] {
			if less(v, best) {
				best = v
			}
		}
		return best
	case ReduceSum:
		sum := values[0]
		for _, v := range values[1:] {
			sum = add(sum, v)
		}
		return sum
	case ReduceMerge:
		var merged Series
		for _, v := range values {
			s := v.(Series)
			for len(merged) < len(s) {
				merged = append(merged, 0)
			}
			for i, n := range s {
				merged[i] += n
			}
		}
		return merged
	default:
		panic(fmt.Sprintf("unknown reduction %d", int(r)))
	}
}

func less(a, b Value) bool {
	switch a := a.(type) {
	case Count:
		return a < b.(Count)
	case Scalar:
		return a < b.(Scalar)
	default:
		panic(fmt.Sprintf("cannot order %T", a))
	}
}

func add(a, b Value) Value {
	switch a := a.(type) {
	case Count:
		return a + b.(Count)
	case Scalar:
		return a + b.(Scalar)
	default:
		panic(fmt.Sprintf("cannot add %T", a))
	}
}

// behaviour is the policy bundle of one message kind.
type behaviour struct {
	pass   int
	route  Route
	hop    Hop
	reduce Reduce
	zero   Value
	seed   func(b *Board, p *game.Planet) (Value, bool)
}

func behaviourOf(k Kind) behaviour {
	switch k {
	case Fertility:
		return behaviour{pass: 1, route: RouteSelf, reduce: ReduceFirst, zero: Scalar(0), seed: seedFertility}
	case PressureLocal:
		return behaviour{pass: 1, route: RouteLinks, reduce: ReduceSum, zero: Scalar(0), seed: seedPressureLocal}
	case PressureGlobal:
		return behaviour{pass: 1, route: RouteAll, hop: HopDecay, reduce: ReduceSum, zero: Scalar(0), seed: seedPressureGlobal}
	case RequestPassive:
		return behaviour{pass: 1, route: RouteSelf, reduce: ReduceMerge, zero: Series(nil), seed: seedRequestPassive}
	case StatusGame:
		return behaviour{pass: 1, route: RouteSelf, reduce: ReduceFirst, zero: Mid, seed: seedStatusGame}
	case StatusScores:
		return behaviour{pass: 1, route: RouteSelf, reduce: ReduceFirst, zero: Scalar(0), seed: seedStatusScores}
	case HostileDistance:
		return behaviour{pass: 1, route: RouteAll, hop: HopIncrement, reduce: ReduceMin, zero: Count(NoHostile), seed: seedHostileDistance}
	case RequestActive:
		return behaviour{pass: 2, route: RouteSelf, reduce: ReduceMerge, zero: Series(nil), seed: seedRequestActive}
	case StatusWinning:
		return behaviour{pass: 2, route: RouteSelf, reduce: ReduceFirst, zero: Even, seed: seedStatusWinning}
	default:
		panic(fmt.Sprintf("unknown message kind %d", int(k)))
	}
}
