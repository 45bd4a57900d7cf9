package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStoryApp/ndx-serializable/config"
	apperrors "github.com/CodeStoryApp/ndx-serializable/internal/errors"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(t.TempDir())
}

func movieSettings() config.IndexSettings {
	return config.IndexSettings{Name: "movies", Fields: []string{"title", "body"}}
}

func TestCreateIndex(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.CreateIndex(movieSettings()))

	assert.Equal(t, []string{"movies"}, eng.ListIndexes())

	settings, err := eng.GetSettings("movies")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "body"}, settings.Fields)
}

func TestCreateIndexAlreadyExists(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))

	err := eng.CreateIndex(movieSettings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIndexAlreadyExists))
}

func TestCreateIndexInvalidSettings(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.CreateIndex(config.IndexSettings{Name: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestAddDocumentsAndLookup(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))

	err := eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "a b c", "body": "hello world"}},
		{ID: "B", Fields: map[string]string{"title": "c d e", "body": "lorem ipsum"}},
	})
	require.NoError(t, err)

	postings, err := eng.LookupTerm("movies", "c")
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "A", postings[0].DocumentID)
	assert.Equal(t, []int{1, 0}, postings[0].TermFrequencies)
	assert.Equal(t, "B", postings[1].DocumentID)

	stats, err := eng.Stats("movies")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DocumentCount)
	assert.Equal(t, 9, stats.TermCount)
}

func TestAddDocumentsReplacesExisting(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))

	require.NoError(t, eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "old title", "body": "old body"}},
	}))
	require.NoError(t, eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "new title", "body": "new body"}},
	}))

	stats, err := eng.Stats("movies")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentCount)

	old, err := eng.LookupTerm("movies", "old")
	require.NoError(t, err)
	assert.Empty(t, old)

	fresh, err := eng.LookupTerm("movies", "new")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, []int{1, 1}, fresh[0].TermFrequencies)
}

func TestAddDocumentsUnknownIndex(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.AddDocuments("nope", []Document{{ID: "A"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIndexNotFound))
}

func TestRemoveDocument(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))
	require.NoError(t, eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "solo"}},
		{ID: "B", Fields: map[string]string{"title": "duo"}},
	}))

	require.NoError(t, eng.RemoveDocument("movies", "A"))

	stats, err := eng.Stats("movies")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocumentCount)

	postings, err := eng.LookupTerm("movies", "solo")
	require.NoError(t, err)
	assert.Empty(t, postings)

	err = eng.RemoveDocument("movies", "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
}

func TestDeleteIndex(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))

	require.NoError(t, eng.DeleteIndex("movies"))
	assert.Empty(t, eng.ListIndexes())

	err := eng.DeleteIndex("movies")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIndexNotFound))
}

func TestFlatTableAndRestore(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(movieSettings()))
	require.NoError(t, eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "hello", "body": "world"}},
	}))

	table, err := eng.FlatTable("movies")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, table.DocumentIDs)

	// Restore the table under a new name.
	require.NoError(t, eng.RestoreFlatTable("movies-copy", table))

	postings, err := eng.LookupTerm("movies-copy", "hello")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "A", postings[0].DocumentID)

	settings, err := eng.GetSettings("movies-copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "body"}, settings.Fields)
}

func TestPersistenceAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	eng := NewEngine(dir)
	require.NoError(t, eng.CreateIndex(movieSettings()))
	require.NoError(t, eng.AddDocuments("movies", []Document{
		{ID: "A", Fields: map[string]string{"title": "persistent", "body": "state"}},
		{ID: "B", Fields: map[string]string{"title": "more", "body": "state"}},
	}))

	// A fresh engine over the same directory rebuilds the index from its
	// flattened form.
	reloaded := NewEngine(dir)
	assert.Equal(t, []string{"movies"}, reloaded.ListIndexes())

	stats, err := reloaded.Stats("movies")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DocumentCount)

	postings, err := reloaded.LookupTerm("movies", "state")
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "A", postings[0].DocumentID)
	assert.Equal(t, "B", postings[1].DocumentID)

	// The reloaded index must flatten back to the same table.
	original, err := eng.FlatTable("movies")
	require.NoError(t, err)
	rebuilt, err := reloaded.FlatTable("movies")
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

func TestFlattenAll(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateIndex(config.IndexSettings{Name: "a", Fields: []string{"body"}}))
	require.NoError(t, eng.CreateIndex(config.IndexSettings{Name: "b", Fields: []string{"body"}}))
	require.NoError(t, eng.AddDocuments("a", []Document{{ID: "1", Fields: map[string]string{"body": "alpha"}}}))

	tables, err := eng.FlattenAll()
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, []string{"1"}, tables["a"].DocumentIDs)
	assert.Empty(t, tables["b"].DocumentIDs)
}
