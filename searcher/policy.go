package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant, (sqrt 2)^2

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N uint32) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(float64(N))}
}

// UCB1 = w/n + sqrt(c^2*ln(N)/n), unvisited children come first
func (u uct) evaluate(wins, plays uint32) float64 {
	if plays == 0 {
		return math.Inf(1)
	}
	n := float64(plays)
	return float64(wins)/n + math.Sqrt(u.numerator/n)
}

// winRatio treats an unvisited child as a certain win.
func winRatio(wins, plays uint32) float64 {
	if plays == 0 {
		return 1.0
	}
	return float64(wins) / float64(plays)
}
