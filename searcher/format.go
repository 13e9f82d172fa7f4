package searcher

import (
	"fmt"
	"strings"
)

// NodeStats is a read-only copy of a node and its subtree.
type NodeStats struct {
	Action   int
	Plays    uint32
	Wins     uint32
	Children []NodeStats
}

func (n *Node) stats() NodeStats {
	s := NodeStats{Action: n.action, Plays: n.plays, Wins: n.wins}
	if len(n.children) > 0 {
		s.Children = make([]NodeStats, len(n.children))
		for i, child := range n.children {
			s.Children[i] = child.stats()
		}
	}
	return s
}

// Root returns a snapshot of the whole tree.
func (m *MCTS) Root() NodeStats {
	return m.root.stats()
}

// Dump writes the tree up to depth levels below the root, one child per line
// as "action:wins/plays", indented by depth.
func (m *MCTS) Dump(depth int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@:%2d/%2d\n", m.root.wins, m.root.plays)
	dump(&sb, m.root, 1, depth)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, level, depth int) {
	if level > depth {
		return
	}
	for _, child := range n.children {
		fmt.Fprintf(sb, "%s%2d:%2d/%2d\n", strings.Repeat(" |  ", level), child.action, child.wins, child.plays)
		dump(sb, child, level+1, depth)
	}
}

func (m *MCTS) String() string {
	return fmt.Sprintf("MCTS={steps=%d, size=%d, backprop=%s, rollout=%s}", m.steps, m.Size(), m.backprop, m.rollout)
}
