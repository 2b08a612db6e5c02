package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func borderNames(m *Map, site *Site) []string {
	var names []string
	for _, b := range site.Borders {
		names = append(names, m.Sites[b.To].Name)
	}
	return names
}

func TestMapTurns(t *testing.T) {
	m := NewMap()
	a := m.AddSite("A", 0, 0, 1)
	b := m.AddSite("B", 0.2, 0, 1)
	c := m.AddSite("C", 3, 4, 1)
	d := m.AddSite("D", 3.1, 4, 1)

	require.Equal(t, 0, m.Turns(a.ID, a.ID), "A site is zero turns from itself")
	require.Equal(t, 1, m.Turns(a.ID, b.ID), "Travel takes at least one turn")
	require.Equal(t, 5, m.Turns(a.ID, c.ID), "Whole distances are exact")
	require.Equal(t, 6, m.Turns(a.ID, d.ID), "Fractional distances round up")
	require.Equal(t, m.Turns(a.ID, d.ID), m.Turns(d.ID, a.ID), "Travel time is symmetric")
}

func TestMapAddSite(t *testing.T) {
	m := NewMap()
	first := m.AddSite("A", 0, 0, 1)
	again := m.AddSite("A", 5, 5, 3)

	require.Same(t, first, again, "Adding a known name should return the existing site")
	require.Len(t, m.Sites, 1)

	site, ok := m.Site("A")
	require.True(t, ok)
	require.Equal(t, 0, site.ID)

	_, ok = m.Site("missing")
	require.False(t, ok)
}

func TestMapRoute(t *testing.T) {
	t.Run("stop-over no slower than the direct route removes the link", func(t *testing.T) {
		m := NewMap()
		a := m.AddSite("A", 0, 0, 1)
		b := m.AddSite("B", 1, 0, 1)
		c := m.AddSite("C", 2, 0, 1)
		require.False(t, m.Routed())

		m.Route()

		require.True(t, m.Routed())
		require.Equal(t, []string{"B"}, borderNames(m, a))
		require.Equal(t, []string{"A", "C"}, borderNames(m, b), "Equal travel times should be ordered by name")
		require.Equal(t, []string{"B"}, borderNames(m, c))
	})

	t.Run("detour slower than the direct route keeps the link", func(t *testing.T) {
		m := NewMap()
		a := m.AddSite("A", 0, 0, 1)
		m.AddSite("B", 2, 1, 1)
		m.AddSite("C", 4, 0, 1)

		m.Route()

		// A-B and B-C take 3 turns each, A-C takes 4
		require.Equal(t, []string{"B", "C"}, borderNames(m, a))
		require.Equal(t, 3, a.Borders[0].Turns)
		require.Equal(t, 4, a.Borders[1].Turns)
	})

	t.Run("adding a site invalidates the routing", func(t *testing.T) {
		m := NewMap()
		m.AddSite("A", 0, 0, 1)
		m.Route()
		m.AddSite("B", 1, 0, 1)
		require.False(t, m.Routed())
	})
}

func TestNewMapFromSnapshot(t *testing.T) {
	growth := 3
	s := Snapshot{Planets: []PlanetSnapshot{
		{Name: "A", X: 0, Y: 0, Owner: Owner(1), ShipCount: 10, Growth: &growth},
		{Name: "B", X: 2, Y: 0, ShipCount: 5},
	}}

	m := NewMapFromSnapshot(s)

	require.True(t, m.Routed())
	require.Len(t, m.Sites, 2)
	require.Equal(t, 3, m.Sites[0].Growth)
	require.Equal(t, DefaultGrowth, m.Sites[1].Growth, "Missing growth should default")
	require.Equal(t, []Border{{To: 1, Turns: 2}}, m.Sites[0].Borders)
}
