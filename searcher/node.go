package searcher

// Node is one decision point reached from the root by a sequence of actions.
// Children are exclusively owned; an empty slice means unexpanded.
type Node struct {
	action   int
	plays    uint32
	wins     uint32
	children []*Node
}

func newNode(action int) *Node {
	return &Node{action: action}
}

func (n *Node) Action() int {
	return n.action
}

func (n *Node) Plays() uint32 {
	return n.plays
}

func (n *Node) Wins() uint32 {
	return n.wins
}

func (n *Node) expanded() bool {
	return len(n.children) > 0
}

// bestChildIndex returns the leftmost child with the highest win ratio. On a
// tie with a perfect visited child, the first unvisited child wins.
func (n *Node) bestChildIndex() int {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	bestScore := -1.0
	for i, child := range n.children {
		score := winRatio(child.wins, child.plays)
		if score > bestScore || (score == bestScore && child.plays == 0 && n.children[bestIndex].plays > 0) {
			bestScore = score
			bestIndex = i
		}
	}
	return bestIndex
}

// exploreIndex returns the leftmost child maximizing UCB1 against the
// engine-wide step count.
func (n *Node) exploreIndex(totalSteps uint32) int {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(CSquared, totalSteps)
	bestIndex := 0
	bestScore := -1.0
	for i, child := range n.children {
		score := policy.evaluate(child.wins, child.plays)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	return bestIndex
}

// selectPath descends to the selection frontier, replaying every chosen
// action on g. It returns the child indices from the root down and the
// outcome of the last action applied (Pending when the root is the frontier).
func (n *Node) selectPath(g Game, totalSteps uint32) ([]int, Outcome) {
	path := []int{}
	outcome := Pending
	node := n
	for node.expanded() {
		i := node.exploreIndex(totalSteps)
		node = node.children[i]
		outcome = g.Apply(node.action)
		path = append(path, i)
	}
	return path, outcome
}

// at follows path from n.
func (n *Node) at(path []int) *Node {
	node := n
	for _, i := range path {
		node = node.children[i]
	}
	return node
}

// expand adds one fresh child per action. Calling it twice duplicates children.
func (n *Node) expand(actions []int) {
	for _, action := range actions {
		n.children = append(n.children, newNode(action))
	}
}

// simulate plays uniformly random legal actions on g until the game is
// decided, recording the result on n. Running out of actions is a loss.
func (n *Node) simulate(g Game, rnd Randomizer) bool {
	for {
		actions := g.LegalActions()
		if len(actions) == 0 {
			n.record(1, 0)
			return false
		}

		switch g.Apply(actions[rnd.Intn(len(actions))]) {
		case Win:
			n.record(1, 1)
			return true
		case Loss:
			n.record(1, 0)
			return false
		}
	}
}

func (n *Node) record(plays, wins uint32) {
	n.plays += plays
	n.wins += wins
}

// backprop adds the counts to every node on path, n included.
func (n *Node) backprop(path []int, plays, wins uint32) {
	node := n
	node.record(plays, wins)
	for _, i := range path {
		node = node.children[i]
		node.record(plays, wins)
	}
}

// backpropBest adds the counts along the current best-child chain instead of
// the path that was actually selected.
func (n *Node) backpropBest(plays, wins uint32) {
	node := n
	node.record(plays, wins)
	for node.expanded() {
		node = node.children[node.bestChildIndex()]
		node.record(plays, wins)
	}
}

// size counts n and every descendant.
func (n *Node) size() int {
	count := 1
	for _, child := range n.children {
		count += child.size()
	}
	return count
}
