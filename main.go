package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tictacmcts/config"
	"tictacmcts/engine"
	"tictacmcts/experiments"
	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
	"tictacmcts/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s play|arena|serve [flags]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load(os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, cfg)
	case "arena":
		err = runArena(ctx, cfg)
	case "serve":
		err = runServe(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

const remoteTimeout = 30 * time.Second

func runPlay(ctx context.Context, cfg *config.Config) error {
	agents := map[game.Piece]engine.Agent{}
	var starter game.Piece

	if cfg.Human == game.Empty {
		// engine vs engine
		for _, p := range []game.Piece{game.X, game.O} {
			agents[p] = engine.NewMCTSAgent("mcts-"+p.String(), p, cfg.Iterations, cfg.Ponder, cfg.SearchOptions()...)
		}
		starter = game.X
	} else {
		human, err := newHumanAgent(cfg.Human)
		if err != nil {
			return err
		}
		defer human.Close()

		bot := cfg.Human.Next()
		agents[cfg.Human] = human
		if cfg.Remote != "" {
			agents[bot] = engine.NewRemoteAgent("remote", cfg.Remote, remoteTimeout)
		} else {
			agents[bot] = engine.NewMCTSAgent("mcts", bot, cfg.Iterations, cfg.Ponder, cfg.SearchOptions()...)
		}
		starter = bot
		if cfg.HumanStarts {
			starter = cfg.Human
		}
		usage(os.Stdout)
	}

	e := engine.LocalEngine(agents[game.X], agents[game.O], starter)
	e.OnMove = func(m *game.Match, piece game.Piece, action int) {
		fmt.Printf("%s plays %s\n", piece, game.SquareName(action))
		renderBoard(os.Stdout, m.Board())
	}

	renderBoard(os.Stdout, e.Match.Board())
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if result.Winner == game.Empty {
		fmt.Println("draw")
	} else {
		fmt.Printf("%s (%s) wins\n", result.Game.Winner, result.Winner)
	}
	return nil
}

func runArena(ctx context.Context, cfg *config.Config) error {
	if cfg.Arena.Sweep {
		summaries, err := experiments.RunIterationSweep(ctx, cfg.Arena.Games, cfg.Seed, cfg.Arena.Output)
		for _, s := range summaries {
			fmt.Println(s)
		}
		return err
	}

	summary, err := experiments.RunArena(ctx, experiments.ArenaConfig{
		Name: "arena",
		Agent1: metrics.AgentConfig{
			ID:         1,
			Name:       "mcts",
			Iterations: cfg.Iterations,
			Ponder:     cfg.Ponder,
			Backprop:   cfg.Backprop.String(),
			Rollout:    cfg.Rollout.String(),
		},
		Agent2: metrics.AgentConfig{ID: 2, Name: "random", Random: true},
		Games:  cfg.Arena.Games,
		Seed:   cfg.Seed,
		Output: cfg.Arena.Output,
	})
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	evaluator := agent.NewEvaluator("mcts", cfg.Iterations, cfg.SearchOptions()...)
	return agent.ListenAndServe(ctx, cfg.Serve.Addr, agent.NewServer(evaluator))
}
