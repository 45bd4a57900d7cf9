// Package flat converts a live inverted index into a compact array-based
// representation and reconstructs an equivalent index from it. The flattened
// form owns its own arrays, contains no pointers into the source index, and is
// friendly to any wire encoding the caller chooses; this package itself never
// produces or consumes bytes.
package flat

import "github.com/CodeStoryApp/ndx-serializable/index"

// TermPosting is one (document, term frequencies) pair of a flattened posting
// list.
type TermPosting[K comparable] struct {
	DocumentID      K     `json:"id"`
	TermFrequencies []int `json:"tf"`
}

// Table is the flattened form of an index: four parallel, index-aligned
// sequences plus the field metadata copied verbatim.
//
// DocumentIDs and DocumentFieldLengths are aligned per document, in the
// index's document insertion order. Terms and Postings are aligned per term:
// Terms holds one string per trie node carrying at least one posting (the
// concatenated character codes from the root, root excluded), in canonical
// pre-order with sibling order preserved; Postings[i] holds the posting list
// of Terms[i] in its original insertion order. Branching-only nodes contribute
// no entry of their own.
type Table[K comparable] struct {
	DocumentIDs          []K                  `json:"docs"`
	DocumentFieldLengths [][]int              `json:"docLengths"`
	Terms                []string             `json:"terms"`
	Postings             [][]TermPosting[K]   `json:"postings"`
	Fields               []index.FieldDetails `json:"fields"`
}
