// ABOUTME: Tests for word2vec text format loading
// ABOUTME: Covers files with and without a header line
package embeddings

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadPretrained(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "with header", input: "2 3\n山 1 0 0\n水 0 1 0\n"},
		{name: "without header", input: "山 1 0 0\n水 0 1 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadPretrained(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadPretrained() error = %v", err)
			}
			if m.Dimension() != 3 {
				t.Errorf("Dimension() = %d, want 3", m.Dimension())
			}
			v, ok := m.Vector("水")
			if !ok || !reflect.DeepEqual(v, []float64{0, 1, 0}) {
				t.Errorf("Vector(水) = %v, %v", v, ok)
			}
			if m.Len() != 2 {
				t.Errorf("Len() = %d, want 2", m.Len())
			}
		})
	}
}

func TestReadPretrained_HeaderMismatch(t *testing.T) {
	_, err := ReadPretrained(strings.NewReader("2 5\n山 1 0 0\n水 0 1 0\n"))
	if err == nil {
		t.Fatal("expected error for header dimension mismatch")
	}
}

func TestLoadPretrained_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte("a 0.5 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadPretrained(path)
	if err != nil {
		t.Fatalf("LoadPretrained() error = %v", err)
	}
	if m.Dimension() != 2 {
		t.Errorf("Dimension() = %d, want 2", m.Dimension())
	}

	if _, err := LoadPretrained(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
