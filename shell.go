package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tictacmcts/experiments/metrics"
	"tictacmcts/game"

	"github.com/chzyer/readline"
	"github.com/muesli/termenv"
)

var errQuit = errors.New("quit")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<square> - play a square, 0..8 or a1..c3 (a1 is the top left)\n")
	io.WriteString(w, "board - show the board\n")
	io.WriteString(w, "moves - list legal squares\n")
	io.WriteString(w, "help - show this message\n")
	io.WriteString(w, "quit - leave the game\n")
}

// renderBoard colours the pieces and labels the columns and rows.
func renderBoard(w io.Writer, b game.Board) {
	out := termenv.NewOutput(w)
	var sb strings.Builder
	sb.WriteString("  a b c\n")
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < 3; col++ {
			p := b[row*3+col]
			cell := out.String(p.String())
			switch p {
			case game.X:
				cell = cell.Foreground(out.Color("1")).Bold()
			case game.O:
				cell = cell.Foreground(out.Color("4")).Bold()
			default:
				cell = cell.Faint()
			}
			sb.WriteString(" " + cell.String())
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// humanAgent reads squares from the terminal.
type humanAgent struct {
	l     *readline.Instance
	piece game.Piece
}

func newHumanAgent(piece game.Piece) (*humanAgent, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("\033[31m%s>\033[0m ", piece),
		HistoryFile:     "/tmp/tictacmcts.readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &humanAgent{l: l, piece: piece}, nil
}

func (h *humanAgent) Close() error {
	return h.l.Close()
}

func (h *humanAgent) Name() string {
	return "human"
}

func (h *humanAgent) SelectMove(m *game.Match) (int, metrics.SearchMetric, error) {
	for {
		line, err := h.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return 0, metrics.SearchMetric{}, errQuit
			}
			continue
		} else if err == io.EOF {
			return 0, metrics.SearchMetric{}, errQuit
		} else if err != nil {
			return 0, metrics.SearchMetric{}, err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return 0, metrics.SearchMetric{}, errQuit
		case "help":
			usage(h.l.Stderr())
			continue
		case "board":
			renderBoard(h.l.Stdout(), m.Board())
			continue
		case "moves":
			names := make([]string, 0, game.Squares)
			for _, square := range m.LegalActions() {
				names = append(names, game.SquareName(square))
			}
			showMessage(strings.Join(names, " "), h.l.Stdout())
			continue
		}

		square, err := game.ParseSquare(line)
		if err != nil {
			showMessage("Error: "+err.Error(), h.l.Stderr())
			continue
		}
		if _, err := m.Clone().Play(square); err != nil {
			showMessage("Error: "+err.Error(), h.l.Stderr())
			continue
		}
		return square, metrics.SearchMetric{}, nil
	}
}

func (h *humanAgent) Observe(m *game.Match, action int) error {
	return nil
}
