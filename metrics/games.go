package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID       int
	TieBreak string // Tie-break policy the agent projects with
}

// GameMetric describes a finished game.
type GameMetric struct {
	Winner    int // Seat of the winner, 0 for a draw
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"id", "tie_break"}); err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}
	for _, config := range configs {
		if err := writer.Write([]string{strconv.Itoa(config.ID), config.TieBreak}); err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := []string{"id", "agent1", "agent2", "winner", "turns", "start_time", "end_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Turns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
