package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"planetwars/game"
	"planetwars/gamemaster"
	"planetwars/metrics"
)

// Player decides the orders of one seat from the snapshot that seat sees.
// Engines play in process; communication/client plays a bot served over HTTP.
type Player interface {
	Turn(ctx context.Context, snapshot game.Snapshot) ([]game.Order, error)
}

// Match plays players against each other through a local referee. Player i
// takes seat i+1.
type Match struct {
	master  *gamemaster.LocalEngine
	players []Player
}

func NewMatch(master *gamemaster.LocalEngine, players ...Player) *Match {
	if len(players) < 2 {
		panic("need at least two players")
	}
	return &Match{master: master, players: players}
}

// Run plays the game from the referee's current position until it is over.
// Illegal orders forfeit the turn of their player.
func (m *Match) Run(ctx context.Context) (metrics.GameMetric, error) {
	start := time.Now()
	log.Info().Int("players", len(m.players)).Msg("match starting")

	for {
		if winner, over := m.master.Winner(); over {
			metric := metrics.GameMetric{
				Winner:    winner,
				Turns:     m.master.Turn() - 1,
				StartTime: start,
				EndTime:   time.Now(),
			}
			metric.Duration = metric.EndTime.Sub(start)
			log.Info().Int("winner", winner).Int("turns", metric.Turns).Msg("match over")
			return metric, nil
		}
		if err := ctx.Err(); err != nil {
			return metrics.GameMetric{}, err
		}

		// Turns are simultaneous: every seat decides on the same position
		// before any order is applied.
		snapshots := make([]game.Snapshot, len(m.players))
		for i := range m.players {
			snapshots[i] = m.master.Snapshot(i + 1)
		}
		decided := make([][]game.Order, len(m.players))
		for i, p := range m.players {
			orders, err := p.Turn(ctx, snapshots[i])
			if err != nil {
				return metrics.GameMetric{}, fmt.Errorf("player %d: %w", i+1, err)
			}
			decided[i] = orders
		}
		for i, orders := range decided {
			if err := m.master.Play(i+1, orders); err != nil {
				log.Warn().Err(err).Int("player", i+1).Int("turn", m.master.Turn()).Msg("orders rejected")
			}
		}
		m.master.Step()
	}
}
