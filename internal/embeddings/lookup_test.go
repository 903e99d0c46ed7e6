// ABOUTME: Tests for MapLookup construction from maps and wego embeddings
// ABOUTME: Verifies dimension checks and copy semantics
package embeddings

import (
	"reflect"
	"testing"

	"github.com/ynqa/wego/pkg/embedding"
)

func TestNewMapLookup(t *testing.T) {
	src := map[string][]float64{"月": {1, 2}, "风": {3, 4}}
	m, err := NewMapLookup(2, src)
	if err != nil {
		t.Fatalf("NewMapLookup() error = %v", err)
	}

	src["月"][0] = 99
	v, ok := m.Vector("月")
	if !ok || v[0] != 1 {
		t.Errorf("Vector(月) = %v, %v; want copy [1 2]", v, ok)
	}
	if _, ok := m.Vector("雪"); ok {
		t.Error("Vector(雪) should be missing")
	}
	if m.Dimension() != 2 || m.Len() != 2 {
		t.Errorf("Dimension=%d Len=%d, want 2 2", m.Dimension(), m.Len())
	}
	if got := m.Words(); !reflect.DeepEqual(got, []string{"月", "风"}) {
		t.Errorf("Words() = %v", got)
	}
}

func TestNewMapLookup_Errors(t *testing.T) {
	if _, err := NewMapLookup(0, nil); err == nil {
		t.Error("expected error for zero dimension")
	}
	if _, err := NewMapLookup(2, map[string][]float64{"a": {1, 2, 3}}); err == nil {
		t.Error("expected error for mismatched vector")
	}
}

func TestFromEmbeddings(t *testing.T) {
	embs := embedding.Embeddings{
		{Word: "mountain", Dim: 2, Vector: []float64{1, 0}},
		{Word: "river", Dim: 2, Vector: []float64{0, 1}},
	}

	m, err := FromEmbeddings(embs)
	if err != nil {
		t.Fatalf("FromEmbeddings() error = %v", err)
	}
	if m.Dimension() != 2 || m.Len() != 2 {
		t.Errorf("Dimension=%d Len=%d, want 2 2", m.Dimension(), m.Len())
	}

	if _, err := FromEmbeddings(nil); err == nil {
		t.Error("expected error for empty embeddings")
	}
}
