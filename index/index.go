// Package index implements an in-memory inverted index: a character trie over
// indexed terms, with per-node posting lists referencing documents and their
// per-field term frequencies. The index is generic over the document key type,
// which may be any comparable value (typically a string or an integer).
//
// The index is not synchronized. A single instance must not be read (e.g.
// flattened) while it is concurrently mutated; callers that share an instance
// across goroutines are responsible for locking.
package index

import (
	"github.com/CodeStoryApp/ndx-serializable/internal/errors"
	"github.com/CodeStoryApp/ndx-serializable/internal/tokenizer"
)

// Index is a character-trie inverted index over a set of documents.
type Index[K comparable] struct {
	root   *Node[K]
	docs   map[K]*DocumentDetails[K]
	order  []K // document keys in insertion order
	fields []FieldDetails
}

// New creates an empty index with one field per given name.
func New[K comparable](fieldNames ...string) *Index[K] {
	fields := make([]FieldDetails, len(fieldNames))
	for i, name := range fieldNames {
		fields[i] = FieldDetails{Name: name}
	}
	return NewFromFields[K](fields)
}

// NewFromFields creates an empty index that adopts the given field metadata
// verbatim. Used when an index is reconstructed from a flattened form.
func NewFromFields[K comparable](fields []FieldDetails) *Index[K] {
	return &Index[K]{
		root:   NewNode[K](0),
		docs:   make(map[K]*DocumentDetails[K]),
		fields: fields,
	}
}

// Root returns the sentinel root node of the trie.
func (idx *Index[K]) Root() *Node[K] {
	return idx.root
}

// Fields returns the field metadata slice. Callers must not mutate it.
func (idx *Index[K]) Fields() []FieldDetails {
	return idx.fields
}

// Document returns the details for the given key, or nil if absent.
func (idx *Index[K]) Document(key K) *DocumentDetails[K] {
	return idx.docs[key]
}

// HasDocument reports whether a document with the given key is present.
func (idx *Index[K]) HasDocument(key K) bool {
	_, ok := idx.docs[key]
	return ok
}

// DocumentCount returns the number of documents in the index.
func (idx *Index[K]) DocumentCount() int {
	return len(idx.docs)
}

// DocumentKeys returns the document keys in insertion order. Go maps iterate
// in randomized order, so the index tracks insertion order explicitly; this is
// the iteration order the flattened form preserves.
func (idx *Index[K]) DocumentKeys() []K {
	keys := make([]K, len(idx.order))
	copy(keys, idx.order)
	return keys
}

// AddDocument tokenizes one text value per field, records the document's
// field lengths, and inserts every distinct term into the trie with a posting
// carrying the per-field term frequencies. Terms are inserted in first-seen
// order across fields, so trie sibling order is deterministic for a given
// document sequence.
func (idx *Index[K]) AddDocument(key K, fieldTexts []string) error {
	if len(fieldTexts) != len(idx.fields) {
		return errors.NewFieldCountMismatchError(len(idx.fields), len(fieldTexts))
	}
	if _, ok := idx.docs[key]; ok {
		return errors.NewDuplicateDocumentError(key)
	}

	details := &DocumentDetails[K]{
		Key:          key,
		FieldLengths: make([]int, len(idx.fields)),
	}

	var termOrder []string
	termFreqs := make(map[string][]int)
	for i, text := range fieldTexts {
		tokens := tokenizer.Tokenize(text)
		details.FieldLengths[i] = len(tokens)
		idx.fields[i].Sum += len(tokens)
		for _, term := range tokens {
			freqs, ok := termFreqs[term]
			if !ok {
				freqs = make([]int, len(idx.fields))
				termFreqs[term] = freqs
				termOrder = append(termOrder, term)
			}
			freqs[i]++
		}
	}

	idx.docs[key] = details
	idx.order = append(idx.order, key)
	idx.refreshFieldAverages()

	for _, term := range termOrder {
		node := idx.ensureTermNode(term)
		node.AddPosting(&Posting[K]{
			Details:         details,
			TermFrequencies: termFreqs[term],
		})
	}
	return nil
}

// RestoreDocument inserts pre-computed document details without tokenizing
// anything, failing if the key is already present. This is the construction
// primitive used when an index is rebuilt from its flattened form; field
// statistics are assumed to arrive separately as part of the restored
// metadata, so they are not touched here.
func (idx *Index[K]) RestoreDocument(details *DocumentDetails[K]) error {
	if _, ok := idx.docs[details.Key]; ok {
		return errors.NewDuplicateDocumentError(details.Key)
	}
	idx.docs[details.Key] = details
	idx.order = append(idx.order, details.Key)
	return nil
}

// RemoveDocument deletes a document from the document map and adjusts field
// statistics. Postings referencing the document stay in the trie until
// Vacuum runs; an index with pending removals must be vacuumed before it is
// flattened.
func (idx *Index[K]) RemoveDocument(key K) error {
	details, ok := idx.docs[key]
	if !ok {
		return errors.NewDocumentNotFoundError(key)
	}
	delete(idx.docs, key)
	for i, k := range idx.order {
		if k == key {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	for i, length := range details.FieldLengths {
		idx.fields[i].Sum -= length
	}
	idx.refreshFieldAverages()
	return nil
}

// Vacuum walks the whole trie, drops postings whose document details are no
// longer the live entry for their key, and prunes branches left without
// postings or children. A posting survives only if its details pointer is
// still the one in the document map, so a remove-then-readd under the same
// key does not resurrect stale postings.
func (idx *Index[K]) Vacuum() {
	idx.vacuumNode(idx.root)
}

func (idx *Index[K]) vacuumNode(n *Node[K]) {
	if len(n.Postings) > 0 {
		kept := n.Postings[:0]
		for _, p := range n.Postings {
			if idx.docs[p.Details.Key] == p.Details {
				kept = append(kept, p)
			}
		}
		for i := len(kept); i < len(n.Postings); i++ {
			n.Postings[i] = nil
		}
		n.Postings = kept
		if len(n.Postings) == 0 {
			n.Postings = nil
		}
	}

	if len(n.Children) > 0 {
		kept := n.Children[:0]
		for _, child := range n.Children {
			idx.vacuumNode(child)
			if len(child.Postings) > 0 || len(child.Children) > 0 {
				kept = append(kept, child)
			}
		}
		for i := len(kept); i < len(n.Children); i++ {
			n.Children[i] = nil
		}
		n.Children = kept
		if len(n.Children) == 0 {
			n.Children = nil
		}
	}
}

// TermPostings returns the postings attached to the exact term, in their
// insertion order, or nil if the term is not in the trie. This is a plain
// lookup; query execution and scoring live outside this package.
func (idx *Index[K]) TermPostings(term string) []*Posting[K] {
	node := idx.findTermNode(term)
	if node == nil {
		return nil
	}
	return node.Postings
}

// TermCount returns the number of trie nodes carrying at least one posting,
// i.e. the number of distinct indexed terms.
func (idx *Index[K]) TermCount() int {
	return countTerms(idx.root)
}

func countTerms[K comparable](n *Node[K]) int {
	count := 0
	if len(n.Postings) > 0 {
		count++
	}
	for _, child := range n.Children {
		count += countTerms(child)
	}
	return count
}

// ensureTermNode walks the trie from the root consuming the term one rune at
// a time, descending into matching children and creating the remaining chain
// once no match is found. Below a freshly created node no further matches are
// possible, so the rest of the term is appended in one pass.
func (idx *Index[K]) ensureTermNode(term string) *Node[K] {
	node := idx.root
	runes := []rune(term)
	for i := 0; i < len(runes); i++ {
		child := node.ChildByChar(runes[i])
		if child == nil {
			for ; i < len(runes); i++ {
				child = NewNode[K](runes[i])
				node.AddChild(child)
				node = child
			}
			return node
		}
		node = child
	}
	return node
}

func (idx *Index[K]) findTermNode(term string) *Node[K] {
	node := idx.root
	for _, r := range term {
		node = node.ChildByChar(r)
		if node == nil {
			return nil
		}
	}
	return node
}

func (idx *Index[K]) refreshFieldAverages() {
	count := len(idx.docs)
	for i := range idx.fields {
		if count == 0 {
			idx.fields[i].Avg = 0
		} else {
			idx.fields[i].Avg = float64(idx.fields[i].Sum) / float64(count)
		}
	}
}
