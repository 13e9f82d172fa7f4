package experiments

import (
	"context"
	"fmt"

	"tictacmcts/experiments/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var sweepIterations = []int{10, 50, 200, 500}

// RunIterationSweep pits searchers of growing budget against the random
// baseline, one arena per budget. Arenas run concurrently; summaries keep
// the budget order.
func RunIterationSweep(ctx context.Context, games int, seed uint64, output string) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Name: "random", Random: true}
	summaries := make([]Summary, len(sweepIterations))

	log.Info().Msg("starting iteration sweep...")

	g, ctx := errgroup.WithContext(ctx)
	for i, iterations := range sweepIterations {
		config := metrics.AgentConfig{
			ID:         i + 1,
			Name:       fmt.Sprintf("mcts-%d", iterations),
			Iterations: iterations,
			Ponder:     iterations / 10,
			Backprop:   "selected",
			Rollout:    "child",
		}
		g.Go(func() error {
			summary, err := RunArena(ctx, ArenaConfig{
				Name:   "sweep-" + config.Name,
				Agent1: config,
				Agent2: baseline,
				Games:  games,
				Seed:   seed,
				Output: output,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", config.Name, err)
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msg("completed iteration sweep")
	return summaries, nil
}
