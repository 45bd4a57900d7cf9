package errors

import (
	"errors"
	"testing"
)

func TestDuplicateDocumentError(t *testing.T) {
	err := NewDuplicateDocumentError("doc-1")

	// Test error message
	expectedMsg := "document identifier 'doc-1' is already present"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrDuplicateDocument) {
		t.Error("Expected error to match ErrDuplicateDocument sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrDanglingPosting) {
		t.Error("Error should not match ErrDanglingPosting")
	}
}

func TestDuplicateDocumentErrorIntegerID(t *testing.T) {
	err := NewDuplicateDocumentError(42)

	expectedMsg := "document identifier '42' is already present"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDuplicateDocument) {
		t.Error("Expected error to match ErrDuplicateDocument sentinel")
	}
}

func TestDanglingPostingError(t *testing.T) {
	err := NewDanglingPostingError("hello", "ghost")

	expectedMsg := "posting for term 'hello' references unknown document 'ghost'"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDanglingPosting) {
		t.Error("Expected error to match ErrDanglingPosting sentinel")
	}
	if errors.Is(err, ErrDuplicateDocument) {
		t.Error("Error should not match ErrDuplicateDocument")
	}
}

func TestMalformedTableError(t *testing.T) {
	err := NewMalformedTableError("2 terms but 1 posting list")

	expectedMsg := "malformed flat table: 2 terms but 1 posting list"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrMalformedTable) {
		t.Error("Expected error to match ErrMalformedTable sentinel")
	}
}

func TestFieldCountMismatchError(t *testing.T) {
	err := NewFieldCountMismatchError(2, 3)

	expectedMsg := "document has 3 field values, index has 2 fields"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrFieldCountMismatch) {
		t.Error("Expected error to match ErrFieldCountMismatch sentinel")
	}
}

func TestIndexNotFoundError(t *testing.T) {
	err := NewIndexNotFoundError("test-index")

	expectedMsg := "index named 'test-index' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrIndexNotFound) {
		t.Error("Expected error to match ErrIndexNotFound sentinel")
	}
	if errors.Is(err, ErrIndexAlreadyExists) {
		t.Error("Error should not match ErrIndexAlreadyExists")
	}
}

func TestIndexAlreadyExistsError(t *testing.T) {
	err := NewIndexAlreadyExistsError("existing-index")

	expectedMsg := "index named 'existing-index' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrIndexAlreadyExists) {
		t.Error("Expected error to match ErrIndexAlreadyExists sentinel")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	// Test without index name
	err := NewDocumentNotFoundError("doc123")

	expectedMsg := "document with ID 'doc123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test with index name
	err2 := NewDocumentNotFoundError("doc123", "test-index")

	expectedMsg2 := "document with ID 'doc123' not found in index 'test-index'"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrDocumentNotFound) {
		t.Error("Expected error to match ErrDocumentNotFound sentinel")
	}
	if !errors.Is(err2, ErrDocumentNotFound) {
		t.Error("Expected error with index to match ErrDocumentNotFound sentinel")
	}
}

func TestSnapshotNotFoundError(t *testing.T) {
	err := NewSnapshotNotFoundError("snap-1")

	expectedMsg := "snapshot with ID 'snap-1' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Error("Expected error to match ErrSnapshotNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	err := NewValidationError("name", "cannot be empty")

	expectedMsg := "validation error for field 'name': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", "bad request")

	expectedMsg2 := "validation error: bad request"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}
