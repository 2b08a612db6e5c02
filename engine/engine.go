package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"planetwars/agent"
	"planetwars/communication"
	"planetwars/game"
	"planetwars/metrics"
)

type Option func(e *Engine)

// WithMetrics sets the collector the agent reports to.
func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// WithWriter records every turn metric.
func WithWriter(writer *metrics.Writer) Option {
	return func(e *Engine) {
		e.writer = writer
	}
}

// WithPlayer sets the player number of the agent in snapshots.
func WithPlayer(player int) Option {
	return func(e *Engine) {
		e.player = player
	}
}

// Engine drives an agent through a game: receive a snapshot, decide, send
// the orders. The galaxy is built from the first snapshot and reused.
type Engine struct {
	comm    communication.Communicator
	agent   *agent.Agent
	metrics metrics.Collector
	writer  *metrics.Writer
	player  int

	galaxy *game.Map
	turn   int
}

func New(comm communication.Communicator, a *agent.Agent, options ...Option) *Engine {
	e := &Engine{
		comm:    comm,
		agent:   a,
		metrics: metrics.NewDummyCollector(),
		player:  1,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until the game ends or the context is done. A snapshot that
// decodes but does not fit a game state is answered with no orders; a
// snapshot that cannot be received or decoded stops the run with an error.
func (e *Engine) Run(ctx context.Context) error {
	for {
		snapshot, err := e.comm.Receive(ctx)
		if errors.Is(err, io.EOF) {
			log.Info().Int("turns", e.turn).Msg("game over")
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive snapshot: %w", err)
		}

		orders, err := e.Turn(ctx, snapshot)
		if err != nil {
			log.Error().Err(err).Int("turn", e.turn).Msg("skipping turn")
			orders = nil
		}
		if err := e.comm.Send(ctx, orders); err != nil {
			return fmt.Errorf("send orders: %w", err)
		}
	}
}

// Turn decides the orders for one snapshot.
func (e *Engine) Turn(_ context.Context, snapshot game.Snapshot) ([]game.Order, error) {
	if e.galaxy == nil || !sameGalaxy(e.galaxy, snapshot) {
		if e.galaxy != nil {
			log.Info().Msg("new galaxy, starting a new game")
		}
		e.galaxy = game.NewMapFromSnapshot(snapshot)
		e.turn = 0
	}
	e.turn++
	if snapshot.Turn > 0 {
		e.turn = snapshot.Turn
	}

	gs, err := game.NewGameState(e.galaxy, snapshot, e.turn, e.player)
	if err != nil {
		return nil, fmt.Errorf("build state of turn %d: %w", e.turn, err)
	}

	e.metrics.Start()
	orders := e.agent.Turn(gs)
	record := e.metrics.Complete(e.turn, len(orders))

	if e.writer != nil {
		if unknown := metrics.Unknown(record); len(unknown) > 0 {
			log.Warn().Strs("tactics", unknown).Msg("tactics without a metrics column")
		}
		if err := e.writer.WriteTurn(record); err != nil {
			log.Warn().Err(err).Msg("failed to write turn metrics")
		}
	}
	log.Info().
		Int("turn", e.turn).
		Int("orders", len(orders)).
		Dur("duration", record.Duration).
		Msg("turn decided")
	return orders, nil
}

// sameGalaxy reports whether the snapshot lists exactly the planets of the map.
func sameGalaxy(m *game.Map, s game.Snapshot) bool {
	if len(m.Sites) != len(s.Planets) {
		return false
	}
	for _, p := range s.Planets {
		if _, ok := m.Site(p.Name); !ok {
			return false
		}
	}
	return true
}
