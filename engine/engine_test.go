package engine

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planetwars/agent"
	"planetwars/communication/client"
	"planetwars/communication/server"
	"planetwars/game"
	"planetwars/gamemaster"
	"planetwars/metrics"
)

type mockCommunicator struct {
	snapshots []game.Snapshot
	sent      [][]game.Order
	sendErr   error
	recvErr   error
}

func (m *mockCommunicator) Receive(ctx context.Context) (game.Snapshot, error) {
	if len(m.snapshots) == 0 {
		if m.recvErr != nil {
			return game.Snapshot{}, m.recvErr
		}
		return game.Snapshot{}, io.EOF
	}
	s := m.snapshots[0]
	m.snapshots = m.snapshots[1:]
	return s, nil
}

func (m *mockCommunicator) Send(ctx context.Context, orders []game.Order) error {
	m.sent = append(m.sent, orders)
	return m.sendErr
}

func conquest() game.Snapshot {
	growth := 2
	return game.Snapshot{Planets: []game.PlanetSnapshot{
		{Name: "A", X: 0, Y: 0, Owner: game.Owner(1), ShipCount: 20, Growth: &growth},
		{Name: "B", X: 2, Y: 0, ShipCount: 5},
	}}
}

func TestEngineRun(t *testing.T) {
	t.Run("answers every snapshot until the end of the game", func(t *testing.T) {
		comm := &mockCommunicator{snapshots: []game.Snapshot{conquest(), conquest()}}
		e := New(comm, agent.New())

		require.NoError(t, e.Run(context.Background()))
		require.Len(t, comm.sent, 2)
		require.Equal(t, []game.Order{{Origin: "A", Destination: "B", ShipCount: 10}}, comm.sent[0])
		require.Equal(t, 2, e.turn, "Turns are counted when snapshots carry none")
	})

	t.Run("bad snapshots are answered with no orders", func(t *testing.T) {
		bad := conquest()
		bad.Planets[1].ShipCount = -4
		comm := &mockCommunicator{snapshots: []game.Snapshot{conquest(), bad}}

		require.NoError(t, New(comm, agent.New()).Run(context.Background()))
		require.Len(t, comm.sent, 2)
		require.Empty(t, comm.sent[1])
	})

	t.Run("undecodable snapshots stop the engine", func(t *testing.T) {
		comm := &mockCommunicator{snapshots: []game.Snapshot{conquest()}, recvErr: errors.New("invalid character 'x'")}
		err := New(comm, agent.New()).Run(context.Background())
		require.ErrorContains(t, err, "receive snapshot")
		require.Len(t, comm.sent, 1, "Only the decoded snapshot is answered")
	})

	t.Run("send failures stop the engine", func(t *testing.T) {
		comm := &mockCommunicator{snapshots: []game.Snapshot{conquest()}, sendErr: errors.New("broken pipe")}
		require.Error(t, New(comm, agent.New()).Run(context.Background()))
	})
}

func TestEngineTurnCounter(t *testing.T) {
	e := New(&mockCommunicator{}, agent.New())
	ctx := context.Background()

	_, err := e.Turn(ctx, conquest())
	require.NoError(t, err)
	require.Equal(t, 1, e.turn)

	withTurn := conquest()
	withTurn.Turn = 40
	_, err = e.Turn(ctx, withTurn)
	require.NoError(t, err)
	require.Equal(t, 40, e.turn, "Snapshot turns take precedence")

	other := conquest()
	other.Planets[1].Name = "C"
	_, err = e.Turn(ctx, other)
	require.NoError(t, err)
	require.Equal(t, 1, e.turn, "A new galaxy is a new game")
	_, ok := e.galaxy.Site("C")
	require.True(t, ok)
}

func TestEngineWritesMetrics(t *testing.T) {
	writer, err := metrics.NewWriter(t.TempDir())
	require.NoError(t, err)
	collector := metrics.NewCollector()
	comm := &mockCommunicator{snapshots: []game.Snapshot{conquest(), conquest(), conquest()}}

	e := New(comm, agent.New(agent.WithMetrics(collector)), WithMetrics(collector), WithWriter(writer))
	require.NoError(t, e.Run(context.Background()))

	require.FileExists(t, writer.Path())
}

func mirrored() game.Snapshot {
	return game.Snapshot{Planets: []game.PlanetSnapshot{
		{Name: "A", X: 0, Y: 0, Owner: game.Owner(1), ShipCount: 30},
		{Name: "M1", X: 3, Y: 1, ShipCount: 4},
		{Name: "M2", X: 3, Y: -1, ShipCount: 4},
		{Name: "N", X: 3, Y: 4, ShipCount: 10},
		{Name: "B", X: 6, Y: 0, Owner: game.Owner(2), ShipCount: 30},
	}}
}

func requireFinished(t *testing.T, master *gamemaster.LocalEngine, metric metrics.GameMetric) {
	t.Helper()
	_, over := master.Winner()
	require.True(t, over)
	require.LessOrEqual(t, metric.Turns, gamemaster.TurnLimit)
	require.Contains(t, []int{0, 1, 2}, metric.Winner)
}

func TestMatch(t *testing.T) {
	master := gamemaster.NewLocalEngine(nil)
	require.NoError(t, master.Init(mirrored()))

	match := NewMatch(master,
		New(&mockCommunicator{}, agent.New()),
		New(&mockCommunicator{}, agent.New()),
	)
	metric, err := match.Run(context.Background())
	require.NoError(t, err)
	requireFinished(t, master, metric)

	require.Panics(t, func() { NewMatch(master, New(&mockCommunicator{}, agent.New())) })
}

func TestMatchAgainstServedBot(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	srv := server.New(":0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	go func() { _ = New(srv, agent.New()).Run(ctx) }()

	master := gamemaster.NewLocalEngine(nil)
	require.NoError(t, master.Init(mirrored()))
	match := NewMatch(master,
		New(&mockCommunicator{}, agent.New()),
		client.New(ts.URL, 5*time.Second),
	)

	metric, err := match.Run(ctx)
	require.NoError(t, err)
	requireFinished(t, master, metric)
}

func TestMatchCancelled(t *testing.T) {
	master := gamemaster.NewLocalEngine(nil)
	require.NoError(t, master.Init(mirrored()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMatch(master, New(&mockCommunicator{}, agent.New()), New(&mockCommunicator{}, agent.New())).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// scriptedPlayer plays fixed orders on its first turn and remembers what it saw.
type scriptedPlayer struct {
	orders []game.Order
	seen   []game.Snapshot
	onTurn func()
}

func (p *scriptedPlayer) Turn(_ context.Context, snapshot game.Snapshot) ([]game.Order, error) {
	p.seen = append(p.seen, snapshot)
	if p.onTurn != nil {
		p.onTurn()
	}
	if len(p.seen) > 1 {
		return nil, nil
	}
	return p.orders, nil
}

func TestMatchTurnsAreSimultaneous(t *testing.T) {
	master := gamemaster.NewLocalEngine(nil)
	require.NoError(t, master.Init(mirrored()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &scriptedPlayer{orders: []game.Order{{Origin: "A", Destination: "M1", ShipCount: 10}}}
	second := &scriptedPlayer{orders: []game.Order{{Origin: "B", Destination: "M2", ShipCount: 5}}, onTurn: cancel}

	_, err := NewMatch(master, first, second).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, second.seen, 1)
	seen := second.seen[0]
	require.Empty(t, seen.Expeditions, "Orders of the same turn are not visible")
	require.Equal(t, "A", seen.Planets[0].Name)
	require.Equal(t, 30, seen.Planets[0].ShipCount)

	after := master.Snapshot(1)
	require.Len(t, after.Expeditions, 2, "Both seats' orders are applied")
	require.Equal(t, 2, master.Turn())
}
