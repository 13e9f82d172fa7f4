package agent

import (
	"context"
	"errors"
	"fmt"

	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
	"tictacmcts/searcher"
)

var ErrBadRequest = errors.New("bad request")

// Request describes a position by its Compact board and the side to move.
type Request struct {
	Board string `json:"board"`
	Turn  string `json:"turn"`
}

type Response struct {
	Square int                  `json:"square"`
	Name   string               `json:"name"`
	Metric metrics.SearchMetric `json:"metric"`
}

// Evaluator answers move requests with a fresh search per position.
type Evaluator struct {
	name       string
	iterations int
	options    []searcher.Option
}

func NewEvaluator(name string, iterations int, options ...searcher.Option) *Evaluator {
	if iterations < 1 {
		panic("iterations must be positive")
	}
	return &Evaluator{name: name, iterations: iterations, options: options}
}

// FindMove returns the best square for the side to move. Errors wrapping
// ErrBadRequest mean the request itself is unusable; searcher.ErrNoMoves
// means the position is already decided.
func (e *Evaluator) FindMove(ctx context.Context, req Request) (Response, error) {
	board, err := game.ParseBoard(req.Board)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	turn, err := game.ParsePiece(req.Turn)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	m, err := game.Resume(board, turn, turn)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if m.Over() {
		return Response{}, searcher.ErrNoMoves
	}

	collector := metrics.NewCollector()
	options := append([]searcher.Option{}, e.options...)
	mcts := searcher.NewMCTS(append(options, searcher.WithMetrics(collector))...)
	collector.Start(e.iterations)
	for i := 0; i < e.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		mcts.Train(m)
	}
	square, err := mcts.BestMove(m)
	if err != nil {
		return Response{}, err
	}
	return Response{Square: square, Name: e.name, Metric: collector.Complete(mcts.Size())}, nil
}
