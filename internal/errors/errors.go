package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDuplicateDocument is returned when a flat table lists the same document identifier twice
	ErrDuplicateDocument = errors.New("duplicate document identifier")

	// ErrDanglingPosting is returned when a posting references a document identifier that is not in the document table
	ErrDanglingPosting = errors.New("dangling posting reference")

	// ErrMalformedTable is returned when the parallel arrays of a flat table disagree in length
	ErrMalformedTable = errors.New("malformed flat table")

	// ErrFieldCountMismatch is returned when a document provides a different number of field values than the index has fields
	ErrFieldCountMismatch = errors.New("field count mismatch")

	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrSnapshotNotFound is returned when a snapshot is not found
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// DuplicateDocumentError reports a document identifier that is already present,
// either in the live document map or earlier in a flat table's document list.
type DuplicateDocumentError struct {
	DocumentID any
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("document identifier '%v' is already present", e.DocumentID)
}

func (e *DuplicateDocumentError) Is(target error) bool {
	return target == ErrDuplicateDocument
}

// NewDuplicateDocumentError creates a new DuplicateDocumentError
func NewDuplicateDocumentError(documentID any) *DuplicateDocumentError {
	return &DuplicateDocumentError{DocumentID: documentID}
}

// DanglingPostingError reports a posting that names a document identifier absent
// from the flat table's document list.
type DanglingPostingError struct {
	Term       string
	DocumentID any
}

func (e *DanglingPostingError) Error() string {
	return fmt.Sprintf("posting for term '%s' references unknown document '%v'", e.Term, e.DocumentID)
}

func (e *DanglingPostingError) Is(target error) bool {
	return target == ErrDanglingPosting
}

// NewDanglingPostingError creates a new DanglingPostingError
func NewDanglingPostingError(term string, documentID any) *DanglingPostingError {
	return &DanglingPostingError{Term: term, DocumentID: documentID}
}

// MalformedTableError reports a structural inconsistency between the parallel
// arrays of a flat table.
type MalformedTableError struct {
	Detail string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed flat table: %s", e.Detail)
}

func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}

// NewMalformedTableError creates a new MalformedTableError
func NewMalformedTableError(detail string) *MalformedTableError {
	return &MalformedTableError{Detail: detail}
}

// FieldCountMismatchError reports a document submitted with the wrong number of
// field values for its index.
type FieldCountMismatchError struct {
	Want int
	Got  int
}

func (e *FieldCountMismatchError) Error() string {
	return fmt.Sprintf("document has %d field values, index has %d fields", e.Got, e.Want)
}

func (e *FieldCountMismatchError) Is(target error) bool {
	return target == ErrFieldCountMismatch
}

// NewFieldCountMismatchError creates a new FieldCountMismatchError
func NewFieldCountMismatchError(want, got int) *FieldCountMismatchError {
	return &FieldCountMismatchError{Want: want, Got: got}
}

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID any
	IndexName  string
}

func (e *DocumentNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("document with ID '%v' not found in index '%s'", e.DocumentID, e.IndexName)
	}
	return fmt.Sprintf("document with ID '%v' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID any, indexName ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// SnapshotNotFoundError represents a snapshot not found error with context
type SnapshotNotFoundError struct {
	SnapshotID string
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("snapshot with ID '%s' not found", e.SnapshotID)
}

func (e *SnapshotNotFoundError) Is(target error) bool {
	return target == ErrSnapshotNotFound
}

// NewSnapshotNotFoundError creates a new SnapshotNotFoundError
func NewSnapshotNotFoundError(snapshotID string) *SnapshotNotFoundError {
	return &SnapshotNotFoundError{SnapshotID: snapshotID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
