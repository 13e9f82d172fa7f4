package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGame offers the same actions at every depth and ends after depth
// moves. The final move wins if it is listed in winning, otherwise it loses.
type fakeGame struct {
	actions []int
	depth   int
	winning map[int]bool
	played  []int
}

func (g *fakeGame) Apply(action int) Outcome {
	g.played = append(g.played, action)
	if len(g.played) < g.depth {
		return Pending
	}
	if g.winning[action] {
		return Win
	}
	return Loss
}

func (g *fakeGame) LegalActions() []int {
	if len(g.played) >= g.depth {
		return nil
	}
	return g.actions
}

func (g *fakeGame) Duplicate() Game {
	clone := *g
	clone.played = append([]int(nil), g.played...)
	return &clone
}

// fixedRandomizer always picks the same index.
type fixedRandomizer int

func (r fixedRandomizer) Intn(n int) int {
	return int(r) % n
}

func parent(children ...*Node) *Node {
	return &Node{children: children}
}

func TestBestChildIndex(t *testing.T) {
	t.Run("highest win ratio wins", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 1, plays: 4},
			&Node{action: 1, wins: 3, plays: 4},
			&Node{action: 2, wins: 2, plays: 4},
		)

		require.Equal(t, 1, node.bestChildIndex())
	})

	t.Run("ties go to the leftmost child", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 0, plays: 2},
			&Node{action: 1, wins: 1, plays: 2},
			&Node{action: 2, wins: 2, plays: 4},
		)

		require.Equal(t, 1, node.bestChildIndex(), "Equal ratios should keep the first maximum")
	})

	t.Run("unvisited child counts as a certain win", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 3, plays: 4},
			&Node{action: 1},
		)

		require.Equal(t, 1, node.bestChildIndex())
	})

	t.Run("unvisited child beats a perfect visited child on the left", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 2, plays: 2},
			&Node{action: 1},
			&Node{action: 2},
		)

		require.Equal(t, 1, node.bestChildIndex(), "First unvisited child should take the tie")
	})

	t.Run("panics without children", func(t *testing.T) {
		require.Panics(t, func() {
			newNode(0).bestChildIndex()
		})
	})
}

func TestExploreIndex(t *testing.T) {
	t.Run("unvisited children come first, leftmost", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 5, plays: 5},
			&Node{action: 1},
			&Node{action: 2},
		)

		require.Equal(t, 1, node.exploreIndex(10))
	})

	t.Run("picks the max UCB1 child", func(t *testing.T) {
		node := parent(
			&Node{action: 0, wins: 1, plays: 10},
			&Node{action: 1, wins: 1, plays: 2},
		)

		require.Equal(t, 1, node.exploreIndex(12), "Fewer plays and a better ratio should dominate")
	})

	t.Run("panics with zero total steps", func(t *testing.T) {
		node := parent(&Node{action: 0})

		require.Panics(t, func() {
			node.exploreIndex(0)
		})
	})

	t.Run("panics without children", func(t *testing.T) {
		require.Panics(t, func() {
			newNode(0).exploreIndex(1)
		})
	})
}

func TestSelectPath(t *testing.T) {
	t.Run("unexpanded root is the frontier", func(t *testing.T) {
		g := &fakeGame{actions: []int{0, 1}, depth: 2}

		path, outcome := newNode(0).selectPath(g, 1)

		require.Empty(t, path)
		require.Equal(t, Pending, outcome)
		require.Empty(t, g.played, "No action should be applied")
	})

	t.Run("descends and replays chosen actions", func(t *testing.T) {
		leaf := &Node{action: 7, wins: 0, plays: 1}
		mid := &Node{action: 4, wins: 1, plays: 1, children: []*Node{leaf}}
		root := parent(&Node{action: 3, wins: 0, plays: 1}, mid)
		g := &fakeGame{actions: []int{3, 4, 7}, depth: 3}

		path, outcome := root.selectPath(g, 2)

		require.Equal(t, []int{1, 0}, path)
		require.Equal(t, Pending, outcome)
		require.Equal(t, []int{4, 7}, g.played)
		require.Same(t, leaf, root.at(path))
	})

	t.Run("reports the outcome of the last action", func(t *testing.T) {
		root := parent(&Node{action: 1, wins: 1, plays: 1})
		g := &fakeGame{actions: []int{1}, depth: 1, winning: map[int]bool{1: true}}

		_, outcome := root.selectPath(g, 1)

		require.Equal(t, Win, outcome)
	})
}

func TestExpand(t *testing.T) {
	t.Run("children follow action order", func(t *testing.T) {
		node := newNode(0)
		node.expand([]int{4, 2, 8})

		require.Len(t, node.children, 3)
		for i, action := range []int{4, 2, 8} {
			require.Equal(t, action, node.children[i].Action())
			require.Zero(t, node.children[i].Plays())
			require.Zero(t, node.children[i].Wins())
		}
	})

	t.Run("expanding twice duplicates children", func(t *testing.T) {
		node := newNode(0)
		node.expand([]int{1, 2})
		node.expand([]int{1, 2})

		require.Len(t, node.children, 4)
	})
}

func TestSimulate(t *testing.T) {
	t.Run("winning playout records a win", func(t *testing.T) {
		node := newNode(0)
		g := &fakeGame{actions: []int{0, 1}, depth: 2, winning: map[int]bool{0: true, 1: true}}

		won := node.simulate(g, fixedRandomizer(0))

		require.True(t, won)
		require.Equal(t, uint32(1), node.Plays())
		require.Equal(t, uint32(1), node.Wins())
		require.Len(t, g.played, 2, "Playout should run to the end")
	})

	t.Run("losing playout records a loss", func(t *testing.T) {
		node := newNode(0)
		g := &fakeGame{actions: []int{0, 1}, depth: 1, winning: map[int]bool{0: true}}

		won := node.simulate(g, fixedRandomizer(1))

		require.False(t, won)
		require.Equal(t, uint32(1), node.Plays())
		require.Zero(t, node.Wins())
	})

	t.Run("no actions counts as a loss", func(t *testing.T) {
		node := newNode(0)
		g := &fakeGame{depth: 0}

		require.False(t, node.simulate(g, fixedRandomizer(0)))
		require.Equal(t, uint32(1), node.Plays())
		require.Zero(t, node.Wins())
	})
}

func TestBackprop(t *testing.T) {
	build := func() *Node {
		root := &Node{plays: 2, wins: 1}
		root.children = []*Node{
			{action: 0, plays: 1, wins: 0},
			{action: 1, plays: 1, wins: 1},
		}
		root.children[0].children = []*Node{{action: 5}}
		return root
	}

	t.Run("credits the selected path", func(t *testing.T) {
		root := build()

		root.backprop([]int{0, 0}, 3, 2)

		require.Equal(t, uint32(5), root.plays)
		require.Equal(t, uint32(3), root.wins)
		require.Equal(t, uint32(4), root.children[0].plays)
		require.Equal(t, uint32(2), root.children[0].wins)
		require.Equal(t, uint32(3), root.children[0].children[0].plays)
		require.Equal(t, uint32(1), root.children[1].plays, "Off-path child should not change")
	})

	t.Run("best path credits the best-child chain", func(t *testing.T) {
		root := build()

		root.backpropBest(3, 2)

		require.Equal(t, uint32(5), root.plays)
		require.Equal(t, uint32(4), root.children[1].plays, "Best child should be credited")
		require.Equal(t, uint32(3), root.children[1].wins)
		require.Equal(t, uint32(1), root.children[0].plays, "Selected branch should not change")
		require.Zero(t, root.children[0].children[0].plays)
	})
}

func TestSize(t *testing.T) {
	root := newNode(0)
	require.Equal(t, 1, root.size())

	root.expand([]int{0, 1, 2})
	root.children[2].expand([]int{0, 1})
	require.Equal(t, 6, root.size())
}
