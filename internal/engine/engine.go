// Package engine manages named index instances and their persistence. Indexes
// live in memory as tries; at rest they are flat tables (settings gob + table
// gob per index directory), so every save is a Flatten and every load is a
// Rebuild.
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/CodeStoryApp/ndx-serializable/config"
	"github.com/CodeStoryApp/ndx-serializable/flat"
	"github.com/CodeStoryApp/ndx-serializable/index"
	"github.com/CodeStoryApp/ndx-serializable/internal/errors"
	"github.com/CodeStoryApp/ndx-serializable/internal/persistence"
)

const (
	dataDirPerm  = 0755
	settingsFile = "settings.gob"
	tableFile    = "flat_table.gob"
)

// Document is the engine's input shape for indexing: an identifier plus one
// text value per field name.
type Document struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// IndexStats summarizes one index.
type IndexStats struct {
	Name          string               `json:"name"`
	DocumentCount int                  `json:"document_count"`
	TermCount     int                  `json:"term_count"`
	Fields        []index.FieldDetails `json:"fields"`
}

// Instance pairs an index with its settings.
type Instance struct {
	Settings *config.IndexSettings
	Index    *index.Index[string]
}

// Engine manages multiple named indexes. The index type itself is
// unsynchronized, so the engine guards all instances with a single RWMutex.
type Engine struct {
	mu      sync.RWMutex
	indexes map[string]*Instance
	dataDir string
}

// NewEngine creates an engine rooted at dataDir and loads any indexes
// persisted there.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		indexes: make(map[string]*Instance),
		dataDir: dataDir,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence.", dataDir, err)
	}
	eng.loadIndexesFromDisk()
	return eng
}

func (e *Engine) loadIndexesFromDisk() {
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No indexes loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		indexPath := filepath.Join(e.dataDir, indexName)

		var settings config.IndexSettings
		if err := persistence.LoadGob(filepath.Join(indexPath, settingsFile), &settings); err != nil {
			log.Printf("Warning: Failed to load settings for index %s: %v. Skipping this index.", indexName, err)
			continue
		}
		if settings.Name != indexName {
			log.Printf("Warning: Index name in settings ('%s') does not match directory name ('%s'). Skipping this index.", settings.Name, indexName)
			continue
		}

		var idx *index.Index[string]
		var table flat.Table[string]
		tablePath := filepath.Join(indexPath, tableFile)
		if err := persistence.LoadGob(tablePath, &table); err != nil {
			if err != os.ErrNotExist {
				log.Printf("Warning: Failed to load flat table for index %s: %v. Skipping this index.", indexName, err)
				continue
			}
			log.Printf("Info: Flat table file not found for index %s. Initializing empty index.", indexName)
			idx = index.New[string](settings.Fields...)
		} else {
			idx, err = flat.Rebuild(&table)
			if err != nil {
				log.Printf("Warning: Failed to rebuild index %s from its flat table: %v. Skipping this index.", indexName, err)
				continue
			}
		}

		e.indexes[indexName] = &Instance{Settings: &settings, Index: idx}
		log.Printf("Loaded index: %s (%d documents)", indexName, idx.DocumentCount())
	}
}

// persistLocked writes an instance's settings and flattened table to disk.
// Callers must hold at least a read lock on e.mu.
func (e *Engine) persistLocked(inst *Instance) error {
	indexPath := filepath.Join(e.dataDir, inst.Settings.Name)
	if err := persistence.SaveGob(filepath.Join(indexPath, settingsFile), inst.Settings); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, tableFile), flat.Flatten(inst.Index)); err != nil {
		return fmt.Errorf("failed to persist flat table: %w", err)
	}
	return nil
}

// CreateIndex creates a new, empty index from the given settings.
func (e *Engine) CreateIndex(settings config.IndexSettings) error {
	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", problems[0])
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[settings.Name]; exists {
		return errors.NewIndexAlreadyExistsError(settings.Name)
	}

	inst := &Instance{
		Settings: &settings,
		Index:    index.New[string](settings.Fields...),
	}
	e.indexes[settings.Name] = inst

	if err := e.persistLocked(inst); err != nil {
		log.Printf("Warning: Failed to persist new index %s: %v", settings.Name, err)
	}
	return nil
}

// DeleteIndex removes an index and its on-disk data.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		return errors.NewIndexNotFoundError(name)
	}
	delete(e.indexes, name)

	if err := os.RemoveAll(filepath.Join(e.dataDir, name)); err != nil {
		return fmt.Errorf("failed to remove index data: %w", err)
	}
	return nil
}

// ListIndexes returns the names of all indexes.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	return names
}

// GetSettings returns the settings of the named index.
func (e *Engine) GetSettings(name string) (config.IndexSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	inst, exists := e.indexes[name]
	if !exists {
		return config.IndexSettings{}, errors.NewIndexNotFoundError(name)
	}
	return *inst.Settings, nil
}

// AddDocuments indexes the given documents. A document whose ID is already
// present replaces the previous version: the old document is removed, stale
// postings are vacuumed away and the new content is indexed.
func (e *Engine) AddDocuments(indexName string, docs []Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, exists := e.indexes[indexName]
	if !exists {
		return errors.NewIndexNotFoundError(indexName)
	}

	for _, doc := range docs {
		if doc.ID == "" {
			return errors.NewValidationError("id", "document ID cannot be empty")
		}
		fieldTexts := make([]string, len(inst.Settings.Fields))
		for i, fieldName := range inst.Settings.Fields {
			fieldTexts[i] = doc.Fields[fieldName]
		}
		if inst.Index.HasDocument(doc.ID) {
			if err := inst.Index.RemoveDocument(doc.ID); err != nil {
				return err
			}
			inst.Index.Vacuum()
		}
		if err := inst.Index.AddDocument(doc.ID, fieldTexts); err != nil {
			return err
		}
	}

	return e.persistLocked(inst)
}

// RemoveDocument removes one document and vacuums its postings out of the
// trie so the index stays flattenable.
func (e *Engine) RemoveDocument(indexName, docID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, exists := e.indexes[indexName]
	if !exists {
		return errors.NewIndexNotFoundError(indexName)
	}
	if err := inst.Index.RemoveDocument(docID); err != nil {
		return errors.NewDocumentNotFoundError(docID, indexName)
	}
	inst.Index.Vacuum()

	return e.persistLocked(inst)
}

// TermPosting is one posting of a term lookup result.
type TermPosting struct {
	DocumentID      string `json:"id"`
	TermFrequencies []int  `json:"tf"`
}

// LookupTerm returns the postings of the exact term in their insertion order.
func (e *Engine) LookupTerm(indexName, term string) ([]TermPosting, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	inst, exists := e.indexes[indexName]
	if !exists {
		return nil, errors.NewIndexNotFoundError(indexName)
	}

	postings := inst.Index.TermPostings(term)
	result := make([]TermPosting, 0, len(postings))
	for _, p := range postings {
		result = append(result, TermPosting{
			DocumentID:      p.Details.Key,
			TermFrequencies: append([]int{}, p.TermFrequencies...),
		})
	}
	return result, nil
}

// Stats returns summary statistics of the named index.
func (e *Engine) Stats(indexName string) (IndexStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	inst, exists := e.indexes[indexName]
	if !exists {
		return IndexStats{}, errors.NewIndexNotFoundError(indexName)
	}
	return IndexStats{
		Name:          indexName,
		DocumentCount: inst.Index.DocumentCount(),
		TermCount:     inst.Index.TermCount(),
		Fields:        append([]index.FieldDetails{}, inst.Index.Fields()...),
	}, nil
}

// FlatTable flattens the named index and returns the table.
func (e *Engine) FlatTable(indexName string) (*flat.Table[string], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	inst, exists := e.indexes[indexName]
	if !exists {
		return nil, errors.NewIndexNotFoundError(indexName)
	}
	return flat.Flatten(inst.Index), nil
}

// RestoreFlatTable rebuilds an index from the given table and installs it
// under the given name, creating the index if it does not exist yet. Field
// names are taken from the table's metadata. The previous in-memory index, if
// any, is replaced only after the rebuild succeeds.
func (e *Engine) RestoreFlatTable(indexName string, table *flat.Table[string]) error {
	idx, err := flat.Rebuild(table)
	if err != nil {
		return err
	}

	fieldNames := make([]string, len(table.Fields))
	for i, f := range table.Fields {
		fieldNames[i] = f.Name
	}
	settings := &config.IndexSettings{Name: indexName, Fields: fieldNames}

	e.mu.Lock()
	defer e.mu.Unlock()

	inst := &Instance{Settings: settings, Index: idx}
	e.indexes[indexName] = inst
	return e.persistLocked(inst)
}

// FlattenAll flattens every index concurrently and returns the tables by
// index name. Each flatten only reads its own instance, and the shared read
// lock keeps writers out for the duration.
func (e *Engine) FlattenAll() (map[string]*flat.Table[string], error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var g errgroup.Group
	var resultMu sync.Mutex
	tables := make(map[string]*flat.Table[string], len(e.indexes))

	for name, inst := range e.indexes {
		name, inst := name, inst
		g.Go(func() error {
			table := flat.Flatten(inst.Index)
			resultMu.Lock()
			tables[name] = table
			resultMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
