package engine

import (
	"fmt"

	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
	"tictacmcts/searcher"
)

// MCTSAgent keeps one search tree per game and advances it on every move.
type MCTSAgent struct {
	name       string
	piece      game.Piece
	iterations int
	ponder     int
	mcts       *searcher.MCTS
	metrics    metrics.Collector
}

// NewMCTSAgent runs iterations trains before each of its own moves and
// ponder trains before following an opponent move.
func NewMCTSAgent(name string, piece game.Piece, iterations, ponder int, options ...searcher.Option) *MCTSAgent {
	collector := metrics.NewCollector()
	options = append(options, searcher.WithMetrics(collector))
	return &MCTSAgent{
		name:       name,
		piece:      piece,
		iterations: iterations,
		ponder:     ponder,
		mcts:       searcher.NewMCTS(options...),
		metrics:    collector,
	}
}

func (a *MCTSAgent) Name() string {
	return a.name
}

func (a *MCTSAgent) Searcher() *searcher.MCTS {
	return a.mcts
}

func (a *MCTSAgent) SelectMove(m *game.Match) (int, metrics.SearchMetric, error) {
	if m.Turn() != a.piece {
		return 0, metrics.SearchMetric{}, fmt.Errorf("%s plays %s, not %s", a.name, a.piece, m.Turn())
	}

	a.metrics.Start(a.iterations)
	g := m.ScoredFor(a.piece)
	for i := 0; i < a.iterations; i++ {
		a.mcts.Train(g)
	}
	action, err := a.mcts.BestMove(g)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return action, a.metrics.Complete(a.mcts.Size()), nil
}

// Observe keeps the tree in lock-step with the board. The agent's own moves
// were already advanced by BestMove.
func (a *MCTSAgent) Observe(m *game.Match, action int) error {
	if m.Turn() == a.piece {
		return nil
	}

	g := m.ScoredFor(a.piece)
	for i := 0; i < a.ponder || !a.mcts.Expanded(); i++ {
		a.mcts.Train(g)
	}
	return a.mcts.Advance(action)
}

// RandomAgent plays a uniformly random legal square.
type RandomAgent struct {
	name string
	rnd  searcher.Randomizer
}

func NewRandomAgent(name string, rnd searcher.Randomizer) *RandomAgent {
	if rnd == nil {
		rnd = searcher.NewRandomizer()
	}
	return &RandomAgent{name: name, rnd: rnd}
}

func (a *RandomAgent) Name() string {
	return a.name
}

func (a *RandomAgent) SelectMove(m *game.Match) (int, metrics.SearchMetric, error) {
	moves := m.LegalActions()
	if len(moves) == 0 {
		return 0, metrics.SearchMetric{}, game.ErrGameOver
	}
	return moves[a.rnd.Intn(len(moves))], metrics.SearchMetric{}, nil
}

func (a *RandomAgent) Observe(m *game.Match, action int) error {
	return nil
}
