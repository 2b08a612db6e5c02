package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"planetwars/agent"
	"planetwars/communication/client"
	"planetwars/communication/server"
	"planetwars/communication/stream"
	"planetwars/config"
	"planetwars/engine"
	"planetwars/experiments"
	"planetwars/game"
	"planetwars/gamemaster"
	"planetwars/logger"
	"planetwars/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	transport := flag.String("transport", "", "Transport to play over: stdio or http")
	addr := flag.String("addr", "", "Listen address of the http transport")
	debug := flag.Bool("debug", false, "Log at debug level")
	selfPlay := flag.String("selfplay", "", "Play local games from the starting snapshot in this JSON file")
	games := flag.Int("games", experiments.NumGames, "Games per match up in local play")
	experiment := flag.Bool("tiebreak-experiment", false, "With -selfplay, pit the tie-break policies against each other")
	opponent := flag.String("opponent", "", "With -selfplay, URL of a bot served over http to play against")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	closer, err := logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *selfPlay != "" {
		err = runLocal(ctx, cfg, *selfPlay, *games, *experiment, *opponent)
	} else {
		err = play(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("bot stopped")
		closer.Close()
		os.Exit(1)
	}
}

// play answers the snapshots of a game host over the configured transport.
func play(ctx context.Context, cfg *config.Config) error {
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	collector := metrics.NewDummyCollector()
	engineOptions := []engine.Option{engine.WithPlayer(cfg.Player)}
	if cfg.MetricsDir != "" {
		writer, err := metrics.NewWriter(cfg.MetricsDir)
		if err != nil {
			return err
		}
		collector = metrics.NewCollector()
		engineOptions = append(engineOptions, engine.WithWriter(writer))
		log.Info().Str("path", writer.Path()).Msg("writing turn metrics")
	}
	engineOptions = append(engineOptions, engine.WithMetrics(collector))
	bot := agent.New(agent.WithRules(rules), agent.WithMetrics(collector))

	switch cfg.Transport {
	case config.TransportHTTP:
		ctx, stop := context.WithCancel(ctx)
		defer stop()
		srv := server.New(cfg.Addr)
		errc := make(chan error, 1)
		go func() {
			errc <- srv.ListenAndServe(ctx)
			stop()
		}()

		err := engine.New(srv, bot, engineOptions...).Run(ctx)
		stop()
		if serveErr := <-errc; serveErr != nil {
			return serveErr
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		log.Info().Int("player", cfg.Player).Msg("playing over stdio")
		return engine.New(stream.New(os.Stdin, os.Stdout), bot, engineOptions...).Run(ctx)
	}
}

// runLocal plays games refereed in process from a starting snapshot.
func runLocal(ctx context.Context, cfg *config.Config, path string, games int, experiment bool, opponent string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read starting snapshot: %w", err)
	}
	var start game.Snapshot
	if err := json.Unmarshal(b, &start); err != nil {
		return fmt.Errorf("parse starting snapshot: %w", err)
	}

	switch {
	case opponent != "":
		rules, err := cfg.Rules()
		if err != nil {
			return err
		}
		for i := 0; i < games; i++ {
			master := gamemaster.NewLocalEngine(rules)
			if err := master.Init(start); err != nil {
				return err
			}
			metric, err := engine.NewMatch(master,
				engine.New(nil, agent.New(agent.WithRules(rules))),
				client.New(opponent, 10*time.Second),
			).Run(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("game", i+1).Int("winner", metric.Winner).Int("turns", metric.Turns).Msg("game against opponent over")
		}
		return nil
	case experiment:
		_, err = experiments.RunTieBreakExperiment(ctx, start, games, cfg.MetricsDir)
		return err
	default:
		_, err = experiments.RunSelfPlay(ctx, start, games, cfg.MetricsDir, cfg.TieBreak)
		return err
	}
}
