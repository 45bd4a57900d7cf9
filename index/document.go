package index

// FieldDetails holds the running statistics of one indexed field. It is
// treated as opaque pass-through metadata by the flatten/rebuild transforms.
type FieldDetails struct {
	Name string  `json:"name"`
	Sum  int     `json:"sum"` // total token count across all documents
	Avg  float64 `json:"avg"` // average field length
}

// DocumentDetails is the per-document entry of the index: its identifier plus
// one length (token count) per indexed field. Immutable once created.
type DocumentDetails[K comparable] struct {
	Key          K
	FieldLengths []int
}

// Posting links a trie node (a term) to a document, with one term-frequency
// counter per indexed field.
type Posting[K comparable] struct {
	Details         *DocumentDetails[K]
	TermFrequencies []int
}
