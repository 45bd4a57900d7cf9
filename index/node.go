package index

// Node is one node of the character trie. The edge from its parent is labeled
// with Char; the root carries the sentinel value 0 and its char never appears
// in a term. Children and Postings keep insertion order, which is load-bearing:
// the flatten/rebuild round trip relies on sibling and posting order being
// exactly reproducible.
type Node[K comparable] struct {
	Char     rune
	Children []*Node[K]
	Postings []*Posting[K]
}

// NewNode creates a trie node for the given character code.
func NewNode[K comparable](char rune) *Node[K] {
	return &Node[K]{Char: char}
}

// ChildByChar returns the child labeled with the given character code, or nil.
func (n *Node[K]) ChildByChar(char rune) *Node[K] {
	for _, child := range n.Children {
		if child.Char == char {
			return child
		}
	}
	return nil
}

// AddChild appends a child node, preserving sibling insertion order.
func (n *Node[K]) AddChild(child *Node[K]) {
	n.Children = append(n.Children, child)
}

// AddPosting appends a posting, preserving posting insertion order.
func (n *Node[K]) AddPosting(p *Posting[K]) {
	n.Postings = append(n.Postings, p)
}
