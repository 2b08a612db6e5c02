// Package stream speaks the planetwars bot protocol: one JSON snapshot per
// input line, one JSON moves object per output line.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"planetwars/communication"
	"planetwars/game"
)

const maxLineSize = 4 << 20

type Stream struct {
	scanner *bufio.Scanner
	mu      sync.Mutex
	out     *bufio.Writer
}

func New(r io.Reader, w io.Writer) *Stream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Stream{
		scanner: scanner,
		out:     bufio.NewWriter(w),
	}
}

// Receive reads the next non-blank line. Reading cannot be interrupted; the
// context is only checked before.
func (s *Stream) Receive(ctx context.Context) (game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return game.Snapshot{}, err
	}
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var snapshot game.Snapshot
		if err := json.Unmarshal(line, &snapshot); err != nil {
			return game.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
		}
		return snapshot, nil
	}
	if err := s.scanner.Err(); err != nil {
		return game.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return game.Snapshot{}, io.EOF
}

// Send writes the orders as one line and flushes it.
func (s *Stream) Send(ctx context.Context, orders []game.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(communication.NewMoves(orders))
	if err != nil {
		return fmt.Errorf("encode moves: %w", err)
	}
	if _, err := s.out.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write moves: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("flush moves: %w", err)
	}
	return nil
}
