package game

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"
)

// Site is the static part of a planet: name, position and growth never change
// during a game.
type Site struct {
	ID      int      // Index of the site in Map.Sites
	Name    string   // Name used by the game protocol
	X, Y    float64  // Position in the galaxy
	Growth  int      // Ships gained per turn while owned by a player
	Borders []Border // Outgoing routed links, ordered by travel time then name
}

// Border is a directed link between two sites with its travel time in turns.
type Border struct {
	To    int
	Turns int
}

// Map represents the galaxy, containing all the sites and the links between
// them. It is built from the first snapshot and reused for the whole game.
type Map struct {
	Sites  []*Site
	index  map[string]int
	routed bool
}

// NewMap creates and returns a new Map instance.
func NewMap() *Map {
	return &Map{
		index: make(map[string]int),
	}
}

// NewMapFromSnapshot creates a routed map holding every planet of the snapshot.
func NewMapFromSnapshot(s Snapshot) *Map {
	m := NewMap()
	for _, p := range s.Planets {
		m.AddSite(p.Name, p.X, p.Y, p.growth())
	}
	m.Route()
	return m
}

// AddSite adds a new site to the map. Adding a known name returns the existing site.
func (m *Map) AddSite(name string, x, y float64, growth int) *Site {
	if id, ok := m.index[name]; ok {
		return m.Sites[id]
	}
	site := &Site{
		ID:     len(m.Sites),
		Name:   name,
		X:      x,
		Y:      y,
		Growth: growth,
	}
	m.index[name] = site.ID
	m.Sites = append(m.Sites, site)
	m.routed = false
	return site
}

// Site looks a site up by name.
func (m *Map) Site(name string) (*Site, bool) {
	id, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.Sites[id], true
}

// Distance is the euclidean distance between two sites.
func (m *Map) Distance(a, b int) float64 {
	sa, sb := m.Sites[a], m.Sites[b]
	return math.Hypot(sa.X-sb.X, sa.Y-sb.Y)
}

// Turns is the travel time between two distinct sites, at least one turn.
func (m *Map) Turns(a, b int) int {
	if a == b {
		return 0
	}
	return max(1, int(math.Ceil(m.Distance(a, b))))
}

// Routed reports whether the links have been derived for the current set of sites.
func (m *Map) Routed() bool {
	return m.routed
}

// Route derives the links between sites. A direct link from a to b exists
// unless a stop-over at some third site c reaches b no later:
// turns(a,c)+turns(c,b) <= turns(a,b).
func (m *Map) Route() {
	n := len(m.Sites)
	for a := 0; a < n; a++ {
		borders := []Border{}
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			direct := m.Turns(a, b)
			dominated := false
			for c := 0; c < n && !dominated; c++ {
				if c == a || c == b {
					continue
				}
				dominated = m.Turns(a, c)+m.Turns(c, b) <= direct
			}
			if !dominated {
				borders = addBorder(borders, Border{To: b, Turns: direct})
			}
		}
		slices.SortStableFunc(borders, func(x, y Border) int {
			if c := cmp.Compare(x.Turns, y.Turns); c != 0 {
				return c
			}
			return cmp.Compare(m.Sites[x.To].Name, m.Sites[y.To].Name)
		})
		m.Sites[a].Borders = borders
	}
	m.routed = true
}

// addBorder appends a border unless one to the same site is already present.
func addBorder(borders []Border, border Border) []Border {
	for _, b := range borders {
		if b.To == border.To {
			return borders
		}
	}
	return append(borders, border)
}
