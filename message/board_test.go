package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planetwars/game"
)

func state(t *testing.T, turn int, s game.Snapshot) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(game.NewMapFromSnapshot(s), s, turn, 1)
	require.NoError(t, err)
	return gs
}

// line lays planets out one unit apart so every planet links its neighbours only.
func line(planets ...game.PlanetSnapshot) game.Snapshot {
	for i := range planets {
		planets[i].X = float64(i)
	}
	return game.Snapshot{Planets: planets}
}

func TestHostileDistance(t *testing.T) {
	t.Run("fewest hops to a hostile planet", func(t *testing.T) {
		gs := state(t, 2, line(
			game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 1},
			game.PlanetSnapshot{Name: "B", ShipCount: 1},
			game.PlanetSnapshot{Name: "C", Owner: game.Owner(2), ShipCount: 1},
			game.PlanetSnapshot{Name: "D", ShipCount: 1},
			game.PlanetSnapshot{Name: "E", Owner: game.Owner(3), ShipCount: 1},
		))
		b := Propagate(gs)

		got := map[string]int{}
		for _, p := range gs.Planets {
			got[p.Name] = b.HostileDistance(p)
		}
		require.Equal(t, map[string]int{"A": 2, "B": 1, "C": 0, "D": 1, "E": 0}, got)
	})

	t.Run("unreachable without hostile planets", func(t *testing.T) {
		gs := state(t, 2, line(
			game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 1},
			game.PlanetSnapshot{Name: "B", ShipCount: 1},
		))
		b := Propagate(gs)
		require.Equal(t, NoHostile, b.HostileDistance(gs.Planet("A")))
	})
}

func TestPressure(t *testing.T) {
	gs := state(t, 2, line(
		game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 10},
		game.PlanetSnapshot{Name: "B", ShipCount: 3},
		game.PlanetSnapshot{Name: "C", Owner: game.Owner(2), ShipCount: 8},
	))
	b := Propagate(gs)
	a, bb, c := gs.Planet("A"), gs.Planet("B"), gs.Planet("C")

	t.Run("local pressure sums the planet and its links", func(t *testing.T) {
		require.Equal(t, -10.0, b.Scalar(PressureLocal, a))
		require.Equal(t, -2.0, b.Scalar(PressureLocal, bb))
		require.Equal(t, 8.0, b.Scalar(PressureLocal, c))
	})

	t.Run("global pressure decays per hop", func(t *testing.T) {
		require.Equal(t, 8.0, b.Scalar(PressureGlobal, c))
		require.Equal(t, 4.0, b.Scalar(PressureGlobal, bb))
		require.Equal(t, 2.0, b.Scalar(PressureGlobal, a))
	})
}

func TestFertility(t *testing.T) {
	s := line(
		game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 1},
		game.PlanetSnapshot{Name: "B", ShipCount: 1},
	)

	first := state(t, 1, s)
	require.Equal(t, 1.5, Propagate(first).Scalar(Fertility, first.Planet("A")))

	later := state(t, 2, s)
	require.Equal(t, 0.0, Propagate(later).Scalar(Fertility, later.Planet("A")), "Fertility is only seeded on the first turn")
}

func TestRequests(t *testing.T) {
	s := line(
		game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 3},
		game.PlanetSnapshot{Name: "T", ShipCount: 10},
		game.PlanetSnapshot{Name: "H", Owner: game.Owner(2), ShipCount: 1},
	)
	s.Expeditions = []game.FleetSnapshot{
		{ID: 1, Origin: "H", Destination: "A", TurnsRemaining: 2, Owner: game.Owner(2), ShipCount: 8},
		{ID: 2, Origin: "T", Destination: "A", TurnsRemaining: 4, Owner: game.Owner(1), ShipCount: 3},
		{ID: 3, Origin: "H", Destination: "T", TurnsRemaining: 4, Owner: game.Owner(2), ShipCount: 12},
	}
	gs := state(t, 2, s)
	b := Propagate(gs)
	a, target, h := gs.Planet("A"), gs.Planet("T"), gs.Planet("H")

	t.Run("allied planets reserve what they need to survive", func(t *testing.T) {
		require.Equal(t, Series{6, 6, 6, 5, 1}, b.Series(RequestPassive, a))
	})

	t.Run("other planets reserve what a capture needs to hold", func(t *testing.T) {
		require.Equal(t, Series{8, 9, 10, 11}, b.Series(RequestPassive, target))
	})

	t.Run("planets without arrivals reserve nothing", func(t *testing.T) {
		require.Empty(t, b.Series(RequestPassive, h))
		require.Equal(t, 0, b.Series(RequestPassive, h).At(3))
	})

	t.Run("allied planets short of ships request them", func(t *testing.T) {
		require.Equal(t, Series{3, 3, 3, 2}, b.Series(RequestActive, a))
		require.Empty(t, b.Series(RequestActive, target), "Only allied planets request ships")
	})

	t.Run("fulfilled requests are lowered", func(t *testing.T) {
		b.Fulfil(a, 5, 10)
		require.Equal(t, Series{3, 3, 3, 2}, b.Series(RequestActive, a), "A fleet landing too late does not help")

		b.Fulfil(a, 2, 2)
		require.Equal(t, Series{1, 1, 1}, b.Series(RequestActive, a))

		b.Fulfil(a, 1, 5)
		require.Empty(t, b.Series(RequestActive, a))
	})
}

func TestStatus(t *testing.T) {
	t.Run("ahead on ships and growth", func(t *testing.T) {
		gs := state(t, 2, line(
			game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 90},
			game.PlanetSnapshot{Name: "B", Owner: game.Owner(1), ShipCount: 10},
			game.PlanetSnapshot{Name: "C", Owner: game.Owner(2), ShipCount: 10},
		))
		b := Propagate(gs)
		a := gs.Planet("A")
		require.Equal(t, WinningHard, b.Winning(a))
		require.Equal(t, Late, b.Game(a), "No neutral planets left")
		require.InDelta(t, gs.Standing(), b.Scalar(StatusScores, a), 1e-9)
	})

	t.Run("behind on ships and growth", func(t *testing.T) {
		gs := state(t, 2, line(
			game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 5},
			game.PlanetSnapshot{Name: "B", Owner: game.Owner(2), ShipCount: 50},
			game.PlanetSnapshot{Name: "C", Owner: game.Owner(2), ShipCount: 50},
			game.PlanetSnapshot{Name: "D", ShipCount: 1},
		))
		b := Propagate(gs)
		require.Equal(t, LosingHard, b.Winning(gs.Planet("A")))
		require.Equal(t, Mid, b.Game(gs.Planet("A")))
	})

	t.Run("mostly neutral galaxy is early", func(t *testing.T) {
		gs := state(t, 2, line(
			game.PlanetSnapshot{Name: "A", Owner: game.Owner(1), ShipCount: 5},
			game.PlanetSnapshot{Name: "B", ShipCount: 1},
			game.PlanetSnapshot{Name: "C", ShipCount: 1},
		))
		require.Equal(t, Early, Propagate(gs).Game(gs.Planet("A")))
	})
}

func TestBehaviours(t *testing.T) {
	for _, k := range Kinds() {
		bh := behaviourOf(k)
		require.NotNil(t, bh.seed, "Kind %s needs a seed", k)
		require.NotNil(t, bh.zero, "Kind %s needs a default", k)
		require.Contains(t, []int{1, 2}, bh.pass, "Kind %s needs a pass", k)
	}
	require.Panics(t, func() { behaviourOf(numKinds) })
	require.Equal(t, "hostile_distance", HostileDistance.String())
}
