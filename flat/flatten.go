package flat

import "github.com/CodeStoryApp/ndx-serializable/index"

// Flatten converts a live index into its flat table form. The source index is
// read-only during the call and shares no memory with the result: every slice
// in the returned table is freshly allocated.
//
// The table's term order is a pre-order depth-first walk of the trie with
// sibling order preserved, and each posting list keeps its original insertion
// order. Rebuild depends on exactly this order to reconstruct identical trie
// topology, so it is a contract of the representation, not an implementation
// detail.
//
// Flatten assumes the index invariants hold (in particular, that any removed
// documents have been vacuumed away); it performs no defensive checks and has
// no failure modes.
func Flatten[K comparable](idx *index.Index[K]) *Table[K] {
	keys := idx.DocumentKeys()
	t := &Table[K]{
		DocumentIDs:          make([]K, 0, len(keys)),
		DocumentFieldLengths: make([][]int, 0, len(keys)),
		Terms:                []string{},
		Postings:             [][]TermPosting[K]{},
		Fields:               append([]index.FieldDetails{}, idx.Fields()...),
	}

	for _, key := range keys {
		details := idx.Document(key)
		t.DocumentIDs = append(t.DocumentIDs, details.Key)
		t.DocumentFieldLengths = append(t.DocumentFieldLengths, append([]int{}, details.FieldLengths...))
	}

	// Pre-order walk appending in final order; the path buffer holds the char
	// codes from the root (excluded) down to the current node.
	var path []rune
	var walk func(n *index.Node[K])
	walk = func(n *index.Node[K]) {
		path = append(path, n.Char)
		if len(n.Postings) > 0 {
			row := make([]TermPosting[K], 0, len(n.Postings))
			for _, p := range n.Postings {
				row = append(row, TermPosting[K]{
					DocumentID:      p.Details.Key,
					TermFrequencies: append([]int{}, p.TermFrequencies...),
				})
			}
			t.Terms = append(t.Terms, string(path))
			t.Postings = append(t.Postings, row)
		}
		for _, child := range n.Children {
			walk(child)
		}
		path = path[:len(path)-1]
	}
	for _, child := range idx.Root().Children {
		walk(child)
	}
	return t
}
