package flat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStoryApp/ndx-serializable/index"
	apperrors "github.com/CodeStoryApp/ndx-serializable/internal/errors"
)

func TestRebuildEmptyTable(t *testing.T) {
	table := &Table[string]{
		Fields: []index.FieldDetails{{Name: "body"}},
	}

	idx, err := Rebuild(table)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.DocumentCount())
	assert.Empty(t, idx.Root().Children)
	require.Len(t, idx.Fields(), 1)
	assert.Equal(t, "body", idx.Fields()[0].Name)
}

func TestRebuildDocumentsAndPostings(t *testing.T) {
	table := &Table[string]{
		DocumentIDs:          []string{"A", "B"},
		DocumentFieldLengths: [][]int{{2}, {1}},
		Terms:                []string{"go", "gopher"},
		Postings: [][]TermPosting[string]{
			{{DocumentID: "A", TermFrequencies: []int{1}}, {DocumentID: "B", TermFrequencies: []int{1}}},
			{{DocumentID: "A", TermFrequencies: []int{1}}},
		},
		Fields: []index.FieldDetails{{Name: "body", Sum: 3, Avg: 1.5}},
	}

	idx, err := Rebuild(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, idx.DocumentKeys())
	assert.Equal(t, []int{2}, idx.Document("A").FieldLengths)
	assert.Equal(t, []int{1}, idx.Document("B").FieldLengths)

	goPostings := idx.TermPostings("go")
	require.Len(t, goPostings, 2)
	assert.Equal(t, "A", goPostings[0].Details.Key)
	assert.Equal(t, "B", goPostings[1].Details.Key)

	// Postings reference the rebuilt document entries, not copies.
	assert.Same(t, idx.Document("A"), goPostings[0].Details)

	gopherPostings := idx.TermPostings("gopher")
	require.Len(t, gopherPostings, 1)
	assert.Same(t, idx.Document("A"), gopherPostings[0].Details)

	// "go" and "gopher" share the g-o prefix chain.
	require.Len(t, idx.Root().Children, 1)
	assert.Equal(t, 1.5, idx.Fields()[0].Avg)
}

func TestRebuildDuplicateDocumentID(t *testing.T) {
	table := &Table[int]{
		DocumentIDs:          []int{1, 1},
		DocumentFieldLengths: [][]int{{1}, {1}},
		Terms:                []string{},
		Postings:             [][]TermPosting[int]{},
	}

	idx, err := Rebuild(table)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateDocument))
}

func TestRebuildDanglingPosting(t *testing.T) {
	table := &Table[string]{
		DocumentIDs:          []string{"A"},
		DocumentFieldLengths: [][]int{{1}},
		Terms:                []string{"ghostly"},
		Postings: [][]TermPosting[string]{
			{{DocumentID: "ghost", TermFrequencies: []int{1}}},
		},
	}

	idx, err := Rebuild(table)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, errors.Is(err, apperrors.ErrDanglingPosting))

	var dangling *apperrors.DanglingPostingError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "ghostly", dangling.Term)
	assert.Equal(t, "ghost", dangling.DocumentID)
}

func TestRebuildMalformedTable(t *testing.T) {
	tests := []struct {
		name  string
		table *Table[string]
	}{
		{
			name: "document arrays disagree",
			table: &Table[string]{
				DocumentIDs:          []string{"A", "B"},
				DocumentFieldLengths: [][]int{{1}},
			},
		},
		{
			name: "term arrays disagree",
			table: &Table[string]{
				Terms:    []string{"a", "b"},
				Postings: [][]TermPosting[string]{{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Rebuild(tt.table)
			require.Error(t, err)
			assert.Nil(t, idx)
			assert.True(t, errors.Is(err, apperrors.ErrMalformedTable))
		})
	}
}

func TestRebuildDoesNotAliasTable(t *testing.T) {
	table := &Table[string]{
		DocumentIDs:          []string{"A"},
		DocumentFieldLengths: [][]int{{1}},
		Terms:                []string{"one"},
		Postings: [][]TermPosting[string]{
			{{DocumentID: "A", TermFrequencies: []int{1}}},
		},
		Fields: []index.FieldDetails{{Name: "body", Sum: 1, Avg: 1}},
	}

	idx, err := Rebuild(table)
	require.NoError(t, err)

	table.DocumentFieldLengths[0][0] = 99
	table.Postings[0][0].TermFrequencies[0] = 99
	table.Fields[0].Sum = 99

	assert.Equal(t, []int{1}, idx.Document("A").FieldLengths)
	assert.Equal(t, []int{1}, idx.TermPostings("one")[0].TermFrequencies)
	assert.Equal(t, 1, idx.Fields()[0].Sum)
}
