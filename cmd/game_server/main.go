package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/frc2036/territory/internal/config"
	"github.com/frc2036/territory/internal/game"
	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/events/subscribers"
	"github.com/frc2036/territory/internal/game/states"
	"github.com/frc2036/territory/internal/monitoring"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 to use config, then the clock)")
	maxTurns := flag.Int("turns", -1, "Turns to play (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()
	levelFromFlag := *logLevel != ""

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	demo := cfg.Server.GameServer.Demo

	if *logLevel == "" {
		*logLevel = cfg.Server.GameServer.LogLevel
	}
	if *maxTurns == -1 {
		*maxTurns = demo.MaxTurns
	}
	if *seed == 0 {
		*seed = demo.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	setupLogging(*logLevel, cfg.Server.GameServer.LogFormat)

	// Reloads reach the log level only; the running game keeps the rules
	// it was built with.
	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			if !levelFromFlag {
				zerolog.SetGlobalLevel(parseLevel(config.Get().Server.GameServer.LogLevel))
			}
			log.Info().Str("file", path).Msg("Config reloaded")
		})
	}

	log.Info().
		Int64("seed", *seed).
		Int("players", demo.Players).
		Int("board_size", demo.BoardSize).
		Int("max_turns", *maxTurns).
		Msg("Starting demo game")

	rng := rand.New(rand.NewSource(*seed))

	bus := events.NewEventBus(log.Logger)
	eventLogger := subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(cfg.Development.VerboseLogging)
	bus.Subscribe(eventLogger)

	monitor := monitoring.NewMatchMonitor(log.Logger, cfg.Server.GameServer.Monitor.StarvationAlert, cfg.Server.GameServer.Monitor.ReportEvery)
	bus.Subscribe(monitor)

	gameCfg := game.GameConfigFrom(cfg, log.Logger)
	gameCfg.Players = demo.Players
	gameCfg.Map.Size = demo.BoardSize
	gameCfg.EventBus = bus
	g := game.NewGame(gameCfg, rng)

	if err := g.AdminStart(core.Admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := core.Observer
	if !cfg.Development.ShowAllTiles {
		viewer = core.PlayerIdentity(0)
	}

	played := runDemo(ctx, g, rng, *maxTurns, viewer, os.Stdout)
	log.Info().Int("turns", played).Str("phase", g.Phase().String()).Msg("Demo finished")

	if players, err := g.Players(core.Observer); err == nil {
		for _, p := range players {
			log.Info().
				Int("player_id", p.Index).
				Str("name", p.Name).
				Int("cities", p.Cities).
				Int("workers", p.Workers).
				Int("armies", p.Armies).
				Bool("eliminated", p.Eliminated).
				Msg("Final standing")
		}
	}
	monitor.LogMetrics(zerolog.InfoLevel)
}

func parseLevel(level string) zerolog.Level {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return logLevel
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

// runDemo plays random actions until maxTurns turns have passed, the game
// leaves the running phase, or ctx is cancelled. Each turn's board is
// written to out as viewer sees it. It returns the number of turns played.
func runDemo(ctx context.Context, g *game.Game, rng *rand.Rand, maxTurns int, viewer core.Identity, out io.Writer) int {
	played := 0

turns:
	for ; played < maxTurns && g.Phase() == states.PhaseRunning; played++ {
		if ctx.Err() != nil {
			log.Info().Msg("Received shutdown signal")
			if err := g.AdminStop(core.Admin); err != nil {
				log.Error().Err(err).Msg("Failed to stop game")
			}
			break turns
		}

		for _, action := range game.GenerateRandomActions(g, rng) {
			if err := g.Submit(action); err != nil {
				if errors.Is(err, core.ErrNoActivePlayers) {
					log.Warn().Err(err).Msg("Game over")
					played++
					break turns
				}
				log.Debug().Err(err).Str("action", action.Describe()).Msg("Action rejected")
			}
		}

		board, err := g.Render(viewer)
		if err != nil {
			log.Error().Err(err).Msg("Failed to render board")
			continue
		}
		current, _ := g.CurrentTurn(core.Observer)
		fmt.Fprintf(out, "Turn %d (next: player %d)\n%s\n", current.Turn, current.Player, board)
	}

	return played
}
