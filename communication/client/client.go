// Package client plays a seat through a bot served over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"planetwars/communication"
	"planetwars/game"
)

type Client struct {
	serverURL string
	http      *http.Client
}

func New(serverURL string, timeout time.Duration) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      &http.Client{Timeout: timeout},
	}
}

// Turn posts a snapshot to the bot and returns its orders.
func (c *Client) Turn(ctx context.Context, snapshot game.Snapshot) ([]game.Order, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/turn", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post turn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("bot returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}
	var moves communication.Moves
	if err := json.NewDecoder(resp.Body).Decode(&moves); err != nil {
		return nil, fmt.Errorf("decode moves: %w", err)
	}
	return moves.Moves, nil
}
