package searcher

import (
	"errors"
	"fmt"

	"tictacmcts/experiments/metrics"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var (
	ErrNoMoves       = errors.New("no legal moves from the root")
	ErrUnknownAction = errors.New("action is not a child of the root")
)

type BackpropPolicy int

const (
	// BackpropSelectedPath credits every node on the path walked during selection.
	BackpropSelectedPath BackpropPolicy = iota
	// BackpropBestPath credits the root's current best-child chain instead.
	BackpropBestPath
)

func (p BackpropPolicy) String() string {
	switch p {
	case BackpropSelectedPath:
		return "selected"
	case BackpropBestPath:
		return "best"
	default:
		return fmt.Sprintf("backprop(%d)", int(p))
	}
}

// ParseBackpropPolicy accepts the names returned by BackpropPolicy.String.
func ParseBackpropPolicy(name string) (BackpropPolicy, error) {
	switch name {
	case "", "selected":
		return BackpropSelectedPath, nil
	case "best":
		return BackpropBestPath, nil
	default:
		return 0, fmt.Errorf("unknown backprop policy %q", name)
	}
}

type RolloutStart int

const (
	// RolloutFromChild plays each new child's own action before simulating.
	RolloutFromChild RolloutStart = iota
	// RolloutFromFrontier simulates every new child from the frontier position itself.
	RolloutFromFrontier
)

func (r RolloutStart) String() string {
	switch r {
	case RolloutFromChild:
		return "child"
	case RolloutFromFrontier:
		return "frontier"
	default:
		return fmt.Sprintf("rollout(%d)", int(r))
	}
}

// ParseRolloutStart accepts the names returned by RolloutStart.String.
func ParseRolloutStart(name string) (RolloutStart, error) {
	switch name {
	case "", "child":
		return RolloutFromChild, nil
	case "frontier":
		return RolloutFromFrontier, nil
	default:
		return 0, fmt.Errorf("unknown rollout start %q", name)
	}
}

type Option func(m *MCTS)

func WithRandomizer(rnd Randomizer) Option {
	return func(m *MCTS) {
		if rnd != nil {
			m.rnd = rnd
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rnd = NewSeededRandomizer(seed)
	}
}

func WithBackprop(policy BackpropPolicy) Option {
	return func(m *MCTS) {
		m.backprop = policy
	}
}

func WithRolloutStart(start RolloutStart) Option {
	return func(m *MCTS) {
		m.rollout = start
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// MCTS owns one search tree for the lifetime of a game.
type MCTS struct {
	root     *Node
	steps    uint32 // simulations run through any root, never reset mid-game
	rnd      Randomizer
	backprop BackpropPolicy
	rollout  RolloutStart
	metrics  metrics.Collector
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		root:     newNode(0),
		rnd:      NewRandomizer(),
		backprop: BackpropSelectedPath,
		rollout:  RolloutFromChild,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Reset starts a new game: fresh root and step counter.
func (m *MCTS) Reset() {
	m.root = newNode(0)
	m.steps = 0
	m.metrics.SetTreeReused(false)
}

func (m *MCTS) Steps() uint32 {
	return m.steps
}

// Expanded reports whether the root has children to advance to.
func (m *MCTS) Expanded() bool {
	return m.root.expanded()
}

func (m *MCTS) Size() int {
	return m.root.size()
}

func (m *MCTS) Metrics() metrics.Collector {
	return m.metrics
}

// Train runs one select, expand, rollout, backpropagate iteration on a
// duplicate of g. g itself is never mutated.
func (m *MCTS) Train(g Game) {
	scratch := g.Duplicate()

	path, last := m.root.selectPath(scratch, m.steps)
	frontier := m.root.at(path)

	actions := scratch.LegalActions()
	var plays, wins uint32
	if len(actions) == 0 || last.Decisive() {
		// Terminal frontier: score the position itself
		plays = 1
		if last == Win {
			wins = 1
		}
	} else {
		frontier.expand(actions)
		for _, child := range frontier.children {
			if m.rolloutChild(child, scratch.Duplicate()) {
				wins++
			}
			plays++
			m.metrics.AddFullPlayout()
		}
	}

	switch m.backprop {
	case BackpropBestPath:
		m.root.backpropBest(plays, wins)
	default:
		m.root.backprop(path, plays, wins)
	}

	m.steps++
	m.metrics.AddEpisode()
}

// rolloutChild runs one playout for a freshly expanded child on g, a copy of
// the frontier position.
func (m *MCTS) rolloutChild(child *Node, g Game) bool {
	if m.rollout == RolloutFromFrontier {
		return child.simulate(g, m.rnd)
	}

	switch g.Apply(child.action) {
	case Win:
		child.record(1, 1)
		return true
	case Loss:
		child.record(1, 0)
		return false
	default:
		return child.simulate(g, m.rnd)
	}
}

// BestMove trains once, then promotes the root's best child and returns its action.
func (m *MCTS) BestMove(g Game) (int, error) {
	m.Train(g)

	if !m.root.expanded() {
		return 0, ErrNoMoves
	}
	best := m.root.bestChildIndex()
	action := m.root.children[best].action
	log.Debug().Msgf("best move %d after %d steps, tree size %d", action, m.steps, m.root.size())
	m.promote(best)
	return action, nil
}

// PlayBestMove is BestMove followed by applying the chosen action to g.
func (m *MCTS) PlayBestMove(g Game) (int, Outcome, error) {
	action, err := m.BestMove(g)
	if err != nil {
		return 0, Pending, err
	}
	return action, g.Apply(action), nil
}

// ApplyExt advances the tree to an externally chosen action and applies it to g.
func (m *MCTS) ApplyExt(g Game, action int) (Outcome, error) {
	if err := m.Advance(action); err != nil {
		return Pending, err
	}
	return g.Apply(action), nil
}

// Advance promotes the root child labelled action without touching any game.
func (m *MCTS) Advance(action int) error {
	_, index, ok := lo.FindIndexOf(m.root.children, func(child *Node) bool {
		return child.action == action
	})
	if !ok {
		return fmt.Errorf("advance to %d: %w", action, ErrUnknownAction)
	}
	m.promote(index)
	return nil
}

func (m *MCTS) promote(index int) {
	child := m.root.children[index]
	log.Debug().Msgf("advancing root to action %d (%d/%d)", child.action, child.wins, child.plays)
	m.root = child
	m.metrics.SetTreeReused(child.expanded())
}
