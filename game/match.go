package game

import (
	"errors"
	"fmt"

	"tictacmcts/searcher"

	"github.com/samber/lo"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
)

// Match is a tic-tac-toe game scored for one side, the perspective.
type Match struct {
	board       Board
	turn        Piece
	perspective Piece
	winner      Piece
	moves       int
}

// NewMatch starts an empty board with starter to move, scored for perspective.
func NewMatch(starter, perspective Piece) *Match {
	if starter == Empty || perspective == Empty {
		panic("starter and perspective must be X or O")
	}
	return &Match{
		turn:        starter,
		perspective: perspective,
	}
}

// Resume continues a game from board with turn to move. It fails when the
// piece counts cannot arise from alternating play.
func Resume(board Board, turn, perspective Piece) (*Match, error) {
	if turn == Empty || perspective == Empty {
		return nil, fmt.Errorf("turn and perspective must be X or O")
	}

	counts := map[Piece]int{}
	for _, p := range board {
		counts[p]++
	}
	diff := counts[turn.Next()] - counts[turn]
	if diff < 0 || diff > 1 {
		return nil, fmt.Errorf("%s to move with %d X and %d O: %w", turn, counts[X], counts[O], ErrIllegalMove)
	}

	return &Match{
		board:       board,
		turn:        turn,
		perspective: perspective,
		winner:      board.CheckWin(),
		moves:       Squares - counts[Empty],
	}, nil
}

// Apply places the side-to-move's piece on square without validation.
func (m *Match) Apply(square int) searcher.Outcome {
	mover := m.turn
	m.board.Place(square, mover)
	m.turn = mover.Next()
	m.moves++

	if winner := m.board.CheckWin(); winner != Empty {
		m.winner = winner
		if winner == m.perspective {
			return searcher.Win
		}
		return searcher.Loss
	}
	return searcher.Pending
}

func (m *Match) LegalActions() []int {
	if m.Over() {
		return nil
	}
	return m.board.ValidMoves()
}

func (m *Match) Duplicate() searcher.Game {
	return m.Clone()
}

func (m *Match) Clone() *Match {
	clone := *m
	return &clone
}

// Play validates square before applying it.
func (m *Match) Play(square int) (searcher.Outcome, error) {
	if m.Over() {
		return searcher.Pending, ErrGameOver
	}
	if !lo.Contains(m.board.ValidMoves(), square) {
		return searcher.Pending, fmt.Errorf("square %d: %w", square, ErrIllegalMove)
	}
	return m.Apply(square), nil
}

// Over reports a completed line or a full board.
func (m *Match) Over() bool {
	return m.winner != Empty || m.board.Full()
}

// Winner is Empty while the game runs and on a draw.
func (m *Match) Winner() Piece {
	return m.winner
}

func (m *Match) Turn() Piece {
	return m.turn
}

func (m *Match) Perspective() Piece {
	return m.perspective
}

// ScoredFor returns a copy of m scored for another side.
func (m *Match) ScoredFor(perspective Piece) *Match {
	clone := m.Clone()
	clone.perspective = perspective
	return clone
}

func (m *Match) Board() Board {
	return m.board
}

func (m *Match) Moves() int {
	return m.moves
}

func (m *Match) String() string {
	return m.board.String()
}
