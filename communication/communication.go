package communication

import (
	"context"

	"planetwars/game"
)

// Communicator abstracts the communication mechanism between the game server
// and the engine: snapshots in, orders out, one turn at a time.
type Communicator interface {
	// Receive blocks until the next snapshot. It returns io.EOF once the game
	// is over.
	Receive(ctx context.Context) (game.Snapshot, error)
	// Send answers the snapshot last received.
	Send(ctx context.Context, orders []game.Order) error
}

// Moves is the planetwars answer to one snapshot.
type Moves struct {
	Moves []game.Order `json:"moves"`
}

// NewMoves wraps orders, never producing a null list.
func NewMoves(orders []game.Order) Moves {
	if orders == nil {
		orders = []game.Order{}
	}
	return Moves{Moves: orders}
}
