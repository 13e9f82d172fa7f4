package searcher

import (
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Randomizer produces a uniformly random index in [0, n).
type Randomizer interface {
	Intn(n int) int
}

type frandRandomizer struct{}

// NewRandomizer returns the process-wide, non-reproducible source.
func NewRandomizer() Randomizer {
	return frandRandomizer{}
}

func (frandRandomizer) Intn(n int) int {
	return frand.Intn(n)
}

// NewSeededRandomizer returns a deterministic source; two searches fed the
// same seed and the same Train calls build identical trees.
func NewSeededRandomizer(seed uint64) Randomizer {
	return rand.New(rand.NewSource(seed))
}
