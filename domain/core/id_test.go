package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"0190b6a0-7c1e-7a3b-9f10-2d4c5e6f7a8b", RunID("0190b6a0-7c1e-7a3b-9f10-2d4c5e6f7a8b"), false},
		{" 0190B6A0-7C1E-7A3B-9F10-2D4C5E6F7A8B ", RunID("0190b6a0-7c1e-7a3b-9f10-2d4c5e6f7a8b"), false},
		{"run-123", "", true},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if !got.Equals(NewHash([]byte("abc"))) {
		t.Errorf("file hash %s does not match content hash", got)
	}
	if len(got.Short()) != 12 {
		t.Errorf("Expected 12 char short hash, got %q", got.Short())
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSourceErrors(t *testing.T) {
	cause := errors.New("boom")
	err := NewSourceError(cause)
	if !IsSourceUnavailable(err) {
		t.Errorf("Expected source error to match ErrSourceUnavailable: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected source error to keep its cause: %v", err)
	}
	if !IsSourceUnavailable(ErrSheetNotFound) || !IsSourceUnavailable(ErrNoHeader) {
		t.Error("Expected sheet and header errors to be source errors")
	}
	if IsSourceUnavailable(ErrExportFailed) {
		t.Error("Export failure must not be a source error")
	}
}
