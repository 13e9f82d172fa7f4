package engine

import (
	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
)

const MaxMoves = game.Squares

// Agent picks moves for one side and follows every committed move.
type Agent interface {
	Name() string
	// SelectMove returns a move for the side to move in m, without mutating m
	SelectMove(m *game.Match) (int, metrics.SearchMetric, error)
	// Observe is called on every agent with the state before action is applied
	Observe(m *game.Match, action int) error
}
