package experiments

import (
	"context"
	"fmt"

	"tictacmcts/engine"
	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
	"tictacmcts/searcher"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

type ArenaConfig struct {
	Name   string
	Agent1 metrics.AgentConfig
	Agent2 metrics.AgentConfig
	Games  int
	Seed   uint64 // 0 uses the non-reproducible source
	Output string // records are written under this directory when set
}

type Summary struct {
	Games      int
	Agent1Wins int
	Agent2Wins int
	Draws      int
	MeanLength float64
	StdLength  float64
	OutputDir  string
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d agent1=%d agent2=%d draws=%d length=%.2f±%.2f",
		s.Games, s.Agent1Wins, s.Agent2Wins, s.Draws, s.MeanLength, s.StdLength)
}

// RunArena plays cfg.Games games between the two agents, alternating who
// starts as X.
func RunArena(ctx context.Context, cfg ArenaConfig) (Summary, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	lengths := make([]float64, 0, cfg.Games)
	summary := Summary{}

	if cfg.Agent1.Name == cfg.Agent2.Name {
		return summary, fmt.Errorf("agents need distinct names, both are %q", cfg.Agent1.Name)
	}

	log.Info().Msgf("starting %s arena: %+v vs %+v", cfg.Name, cfg.Agent1, cfg.Agent2)

	for i := 0; i < cfg.Games; i++ {
		first, second := cfg.Agent1, cfg.Agent2
		if i%2 == 1 {
			first, second = second, first
		}

		x, err := createAgent(first, game.X, cfg.Seed, i)
		if err != nil {
			return summary, err
		}
		o, err := createAgent(second, game.O, cfg.Seed, i)
		if err != nil {
			return summary, err
		}

		result, err := engine.LocalEngine(x, o, game.X).Run(ctx)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}

		summary.Games++
		switch result.Game.Winner {
		case "":
			summary.Draws++
		case cfg.Agent1.Name:
			summary.Agent1Wins++
		default:
			summary.Agent2Wins++
		}
		lengths = append(lengths, float64(result.Game.TotalMoves))

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     first.ID,
			Agent2:     second.ID,
			GameMetric: result.Game,
		})
		for _, mm := range result.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}

		log.Info().Msgf("completed game %d of %d with winner: %q", i+1, cfg.Games, result.Game.Winner)
	}

	if len(lengths) > 0 {
		summary.MeanLength, summary.StdLength = stat.MeanStdDev(lengths, nil)
	}

	if cfg.Output != "" {
		dir, err := writeRecords(cfg, gameRecords, moveRecords)
		if err != nil {
			return summary, err
		}
		summary.OutputDir = dir
	}

	log.Info().Msgf("completed %s arena: %s", cfg.Name, summary)
	return summary, nil
}

func createAgent(config metrics.AgentConfig, piece game.Piece, seed uint64, gameIndex int) (engine.Agent, error) {
	if config.Random {
		var rnd searcher.Randomizer
		if seed != 0 {
			rnd = searcher.NewSeededRandomizer(seed + uint64(gameIndex)*2 + uint64(piece))
		}
		return engine.NewRandomAgent(config.Name, rnd), nil
	}

	policy, err := searcher.ParseBackpropPolicy(config.Backprop)
	if err != nil {
		return nil, err
	}
	rollout, err := searcher.ParseRolloutStart(config.Rollout)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{searcher.WithBackprop(policy), searcher.WithRolloutStart(rollout)}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed+uint64(gameIndex)*2+uint64(piece)))
	}
	return engine.NewMCTSAgent(config.Name, piece, config.Iterations, config.Ponder, options...), nil
}

func writeRecords(cfg ArenaConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{cfg.Agent1, cfg.Agent2}); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
