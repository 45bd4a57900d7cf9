package flat

import (
	"fmt"

	"github.com/CodeStoryApp/ndx-serializable/index"
	"github.com/CodeStoryApp/ndx-serializable/internal/errors"
)

// Rebuild reconstructs a live index from its flat table form. The result owns
// all of its nodes and documents; nothing aliases the table after the call.
//
// Because the table's terms are in canonical pre-order (see Flatten),
// re-inserting them in array order while reusing shared-prefix nodes yields a
// trie with topology, sibling order and posting order identical to the index
// the table was flattened from.
//
// Rebuild rejects tables that repeat a document identifier or whose postings
// reference a document absent from the document list; silent last-wins
// handling would break round-trip equivalence. On failure the partially built
// index is discarded and no caller-visible state has been touched.
func Rebuild[K comparable](t *Table[K]) (*index.Index[K], error) {
	if len(t.DocumentIDs) != len(t.DocumentFieldLengths) {
		return nil, errors.NewMalformedTableError(fmt.Sprintf(
			"%d document ids but %d field-length rows", len(t.DocumentIDs), len(t.DocumentFieldLengths)))
	}
	if len(t.Terms) != len(t.Postings) {
		return nil, errors.NewMalformedTableError(fmt.Sprintf(
			"%d terms but %d posting lists", len(t.Terms), len(t.Postings)))
	}

	idx := index.NewFromFields[K](append([]index.FieldDetails{}, t.Fields...))

	for i, id := range t.DocumentIDs {
		details := &index.DocumentDetails[K]{
			Key:          id,
			FieldLengths: append([]int{}, t.DocumentFieldLengths[i]...),
		}
		if err := idx.RestoreDocument(details); err != nil {
			return nil, err
		}
	}

	for i, term := range t.Terms {
		node := insertTermPath(idx.Root(), term)
		for _, tp := range t.Postings[i] {
			details := idx.Document(tp.DocumentID)
			if details == nil {
				return nil, errors.NewDanglingPostingError(term, tp.DocumentID)
			}
			node.AddPosting(&index.Posting[K]{
				Details:         details,
				TermFrequencies: append([]int{}, tp.TermFrequencies...),
			})
		}
	}
	return idx, nil
}

// insertTermPath walks from the root consuming the term one character code at
// a time, descending into matching children and creating fresh nodes once no
// match exists. Below a freshly created node no further matches are possible,
// so the remainder of the term is appended in one pass.
func insertTermPath[K comparable](root *index.Node[K], term string) *index.Node[K] {
	node := root
	runes := []rune(term)
	for i := 0; i < len(runes); i++ {
		child := node.ChildByChar(runes[i])
		if child == nil {
			for ; i < len(runes); i++ {
				child = index.NewNode[K](runes[i])
				node.AddChild(child)
				node = child
			}
			return node
		}
		node = child
	}
	return node
}
