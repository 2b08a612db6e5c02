package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/exp/slices"
)

// Tactics are the CSV columns counting moves per tactic, in order.
var Tactics = []string{"flee", "claim", "reposition", "reinforce", "conquer", "dump", "defer"}

type Writer struct {
	baseDir string
	path    string
	header  bool
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		path:    filepath.Join(baseDir, "turns.csv"),
	}, nil
}

// Path is the file turn records are appended to.
func (w *Writer) Path() string {
	return w.path
}

// WriteTurn appends one turn record, writing the header first if needed.
func (w *Writer) WriteTurn(record TurnMetric) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open turn records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if !w.header {
		header := append([]string{"turn", "start_time", "duration", "orders", "projection_hits", "projection_misses"}, Tactics...)
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write turn records header: %w", err)
		}
		w.header = true
	}

	row := []string{
		strconv.Itoa(record.Turn),
		record.StartTime.Format(time.RFC3339Nano),
		record.Duration.String(),
		strconv.Itoa(record.Orders),
		strconv.Itoa(record.ProjectionHits),
		strconv.Itoa(record.ProjectionMisses),
	}
	for _, tactic := range Tactics {
		row = append(row, strconv.Itoa(record.Tactics[tactic]))
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write turn record row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// Unknown lists tactics counted in a record that have no CSV column, sorted.
func Unknown(record TurnMetric) []string {
	var unknown []string
	for tactic := range record.Tactics {
		if !slices.Contains(Tactics, tactic) {
			unknown = append(unknown, tactic)
		}
	}
	slices.Sort(unknown)
	return unknown
}
