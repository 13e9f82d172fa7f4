package game

import (
	"fmt"
	"strconv"
	"strings"
)

type Piece uint8

const (
	Empty Piece = iota
	X
	O
)

func (p Piece) Next() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// ParsePiece accepts "x" or "o" in any case.
func ParsePiece(s string) (Piece, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "o", "0":
		return O, nil
	default:
		return Empty, fmt.Errorf("unknown piece %q", s)
	}
}

const Squares = 9

// Board squares are numbered 0..8 row-major from the top left.
type Board [Squares]Piece

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func (b *Board) Place(square int, piece Piece) {
	b[square] = piece
}

// CheckWin returns the owner of the first completed line, or Empty.
func (b *Board) CheckWin() Piece {
	for _, line := range lines {
		p := b[line[0]]
		if p != Empty && p == b[line[1]] && p == b[line[2]] {
			return p
		}
	}
	return Empty
}

// ValidMoves lists empty squares in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, Squares)
	for i, p := range b {
		if p == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

func (b *Board) Full() bool {
	for _, p := range b {
		if p == Empty {
			return false
		}
	}
	return true
}

func (b Board) String() string {
	var sb strings.Builder
	for i, p := range b {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}

// ParseSquare accepts an index 0..8 or a coordinate such as "b2"
// (column a..c, row 1..3 counted from the top).
func ParseSquare(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= Squares {
			return 0, fmt.Errorf("square %d out of range", n)
		}
		return n, nil
	}
	if len(s) != 2 || s[0] < 'a' || s[0] > 'c' || s[1] < '1' || s[1] > '3' {
		return 0, fmt.Errorf("cannot parse square %q", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	return row*3 + col, nil
}

// SquareName is the inverse of ParseSquare's coordinate form.
func SquareName(square int) string {
	return fmt.Sprintf("%c%d", 'a'+square%3, square/3+1)
}

// Compact is the board as one 9-character row-major string, e.g. "X.O.X....".
func (b Board) Compact() string {
	var sb strings.Builder
	for _, p := range b {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// ParseBoard reads the Compact form. '.', '-' and ' ' are empty squares.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != Squares {
		return b, fmt.Errorf("board needs %d squares, got %d", Squares, len(s))
	}
	for i := 0; i < Squares; i++ {
		switch s[i] {
		case '.', '-', ' ':
			continue
		}
		p, err := ParsePiece(s[i : i+1])
		if err != nil {
			return b, fmt.Errorf("square %d: %w", i, err)
		}
		b[i] = p
	}
	return b, nil
}
