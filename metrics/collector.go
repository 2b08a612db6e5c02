package metrics

import (
	"time"
)

// TurnMetric describes how one turn was decided.
type TurnMetric struct {
	Turn             int
	StartTime        time.Time
	Duration         time.Duration
	Orders           int
	Tactics          map[string]int // Moves proposed per tactic
	ProjectionHits   int
	ProjectionMisses int
}

// Collector gathers the metrics of the turn in progress. Turns are decided
// one at a time, so collectors are not safe for concurrent use.
type Collector interface {
	Start()
	AddTactic(tactic string)
	AddProjections(hits, misses int)
	Complete(turn, orders int) TurnMetric
}

type collector struct {
	startTime time.Time
	tactics   map[string]int
	hits      int
	misses    int
}

func NewCollector() Collector {
	return &collector{tactics: map[string]int{}}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.tactics = map[string]int{}
	c.hits, c.misses = 0, 0
}

func (c *collector) AddTactic(tactic string) {
	c.tactics[tactic]++
}

func (c *collector) AddProjections(hits, misses int) {
	c.hits += hits
	c.misses += misses
}

func (c *collector) Complete(turn, orders int) TurnMetric {
	return TurnMetric{
		Turn:             turn,
		StartTime:        c.startTime,
		Duration:         time.Since(c.startTime),
		Orders:           orders,
		Tactics:          c.tactics,
		ProjectionHits:   c.hits,
		ProjectionMisses: c.misses,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                       {}
func (c *dummyCollector) AddTactic(string)             {}
func (c *dummyCollector) AddProjections(int, int)      {}
func (c *dummyCollector) Complete(int, int) TurnMetric { return TurnMetric{} }
