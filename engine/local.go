package engine

import (
	"context"
	"fmt"
	"time"

	"tictacmcts/experiments/metrics"
	"tictacmcts/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Engine struct {
	Match  *game.Match
	Agents map[game.Piece]Agent
	// OnMove is called after every committed move, when set
	OnMove func(m *game.Match, piece game.Piece, action int)
}

type Result struct {
	Winner  game.Piece // Empty on a draw
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
	History []int
}

// LocalEngine seats x and o at a fresh board with starter to move.
func LocalEngine(x, o Agent, starter game.Piece) *Engine {
	if x == nil || o == nil {
		panic("need two agents")
	}
	return &Engine{
		Match: game.NewMatch(starter, starter),
		Agents: map[game.Piece]Agent{
			game.X: x,
			game.O: o,
		},
	}
}

// Run executes the game loop until the board is decided or full.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	result := Result{
		Game: metrics.GameMetric{
			StartingPlayer: e.Agents[e.Match.Turn()].Name(),
			StartTime:      start,
		},
	}

	log.Info().Msgf("%s (%s) is starting", e.Agents[e.Match.Turn()].Name(), e.Match.Turn())

	for step := 1; !e.Match.Over() && step <= MaxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		piece := e.Match.Turn()
		agent := e.Agents[piece]

		action, metric, err := agent.SelectMove(e.Match.Clone())
		if err != nil {
			return result, fmt.Errorf("%s failed to select a move: %w", agent.Name(), err)
		}
		if !lo.Contains(e.Match.LegalActions(), action) {
			return result, fmt.Errorf("%s chose square %d: %w", agent.Name(), action, game.ErrIllegalMove)
		}

		for _, p := range []game.Piece{game.X, game.O} {
			if err := e.Agents[p].Observe(e.Match.Clone(), action); err != nil {
				return result, fmt.Errorf("%s failed to observe square %d: %w", e.Agents[p].Name(), action, err)
			}
		}

		if _, err := e.Match.Play(action); err != nil {
			return result, err
		}
		result.History = append(result.History, action)
		result.Moves = append(result.Moves, metrics.MoveMetric{
			Step:         step,
			Player:       agent.Name(),
			Action:       action,
			SearchMetric: metric,
		})
		log.Debug().Msgf("move %d: %s plays %s", step, piece, game.SquareName(action))

		if e.OnMove != nil {
			e.OnMove(e.Match, piece, action)
		}
	}

	result.Winner = e.Match.Winner()
	if result.Winner != game.Empty {
		result.Game.Winner = e.Agents[result.Winner].Name()
	}
	result.Game.EndTime = time.Now()
	result.Game.Duration = result.Game.EndTime.Sub(start)
	result.Game.TotalMoves = e.Match.Moves()

	log.Info().Msgf("game over after %d moves, winner: %q", result.Game.TotalMoves, result.Game.Winner)
	return result, nil
}
