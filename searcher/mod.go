package searcher

import "fmt"

// Outcome of applying an action, scored for the side the search decides for.
type Outcome int

const (
	Pending Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decisive reports whether the game ended with this outcome.
func (o Outcome) Decisive() bool {
	return o != Pending
}

// Game is any two-outcome sequential game playable by the search.
// Implementations mutate in place; the search only mutates duplicates.
type Game interface {
	Apply(action int) Outcome
	// LegalActions returns nil or an empty slice once the game is over
	LegalActions() []int
	Duplicate() Game
}
