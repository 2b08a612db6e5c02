// Package server exposes the engine over HTTP: every POST /turn carries one
// snapshot and is answered with the orders decided for it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"planetwars/communication"
	"planetwars/game"
)

const shutdownTimeout = 5 * time.Second

type request struct {
	snapshot game.Snapshot
	reply    chan []game.Order
}

// Server bridges HTTP requests to the engine loop. Requests are handed over
// one at a time; Receive and Send must be called from a single goroutine.
type Server struct {
	addr     string
	requests chan request
	current  *request
}

func New(addr string) *Server {
	return &Server{
		addr:     addr,
		requests: make(chan request),
	}
}

// Handler routes the turn and health endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/turn", s.handleTurn)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe serves until the context is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("serving turns")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var snapshot game.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	req := request{snapshot: snapshot, reply: make(chan []game.Order, 1)}
	select {
	case s.requests <- req:
	case <-r.Context().Done():
		http.Error(w, "engine busy", http.StatusServiceUnavailable)
		return
	}

	select {
	case orders := <-req.reply:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(communication.NewMoves(orders)); err != nil {
			log.Warn().Err(err).Msg("failed to encode moves")
		}
	case <-r.Context().Done():
		log.Warn().Err(r.Context().Err()).Msg("turn request abandoned")
	}
}

// Receive waits for the next turn request.
func (s *Server) Receive(ctx context.Context) (game.Snapshot, error) {
	select {
	case req := <-s.requests:
		s.current = &req
		return req.snapshot, nil
	case <-ctx.Done():
		return game.Snapshot{}, ctx.Err()
	}
}

// Send answers the request last received.
func (s *Server) Send(_ context.Context, orders []game.Order) error {
	if s.current == nil {
		return errors.New("no turn request to answer")
	}
	s.current.reply <- orders
	s.current = nil
	return nil
}
