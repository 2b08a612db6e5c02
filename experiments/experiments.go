package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"planetwars/agent"
	"planetwars/config"
	"planetwars/engine"
	"planetwars/game"
	"planetwars/gamemaster"
	"planetwars/metrics"
)

// NumGames is the default number of games per match up.
const NumGames = 10

var tieBreakConfigs = []metrics.AgentConfig{
	{ID: 1, TieBreak: "first"},
	{ID: 2, TieBreak: "neutral"},
}

// RunTieBreakExperiment plays agents projecting with different tie-break
// policies against each other from the given starting position. Seats
// alternate between games. Results are written under dir.
func RunTieBreakExperiment(ctx context.Context, start game.Snapshot, games int, dir string) ([]metrics.GameRecord, error) {
	matchUps := [][]metrics.AgentConfig{
		{tieBreakConfigs[0], tieBreakConfigs[1]},
		{tieBreakConfigs[1], tieBreakConfigs[0]},
	}
	return runExperiment(ctx, "tie_break", start, games, dir, tieBreakConfigs, matchUps)
}

// RunSelfPlay plays the configured agent against itself.
func RunSelfPlay(ctx context.Context, start game.Snapshot, games int, dir string, tieBreak string) ([]metrics.GameRecord, error) {
	config := metrics.AgentConfig{ID: 1, TieBreak: tieBreak}
	return runExperiment(ctx, "self_play", start, games, dir, []metrics.AgentConfig{config}, [][]metrics.AgentConfig{{config, config}})
}

func runExperiment(ctx context.Context, name string, start game.Snapshot, games int, dir string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) ([]metrics.GameRecord, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			gameMetric, err := runGame(ctx, start, config1, config2)
			if err != nil {
				return gameRecords, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	if dir == "" {
		return gameRecords, nil
	}

	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return gameRecords, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return gameRecords, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return gameRecords, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Str("dir", dir).Msg("stored game records")
	return gameRecords, nil
}

// runGame plays one game between two agents and returns its metric.
func runGame(ctx context.Context, start game.Snapshot, config1, config2 metrics.AgentConfig) (metrics.GameMetric, error) {
	master := gamemaster.NewLocalEngine(nil)
	if err := master.Init(start); err != nil {
		return metrics.GameMetric{}, err
	}
	players := []engine.Player{}
	for _, c := range []metrics.AgentConfig{config1, config2} {
		cfg := config.Default()
		cfg.TieBreak = c.TieBreak
		rules, err := cfg.Rules()
		if err != nil {
			return metrics.GameMetric{}, err
		}
		players = append(players, engine.New(nil, agent.New(agent.WithRules(rules))))
	}
	return engine.NewMatch(master, players...).Run(ctx)
}
