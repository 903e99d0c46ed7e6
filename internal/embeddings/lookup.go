// ABOUTME: In-memory token to vector vocabulary implementing core.Lookup
// ABOUTME: Built from explicit maps, wego embeddings or remote embedding results
package embeddings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ynqa/wego/pkg/embedding"
)

// MapLookup is a fixed vocabulary with a single vector dimension
type MapLookup struct {
	dim     int
	vectors map[string][]float64
}

// NewMapLookup copies vectors into a lookup, rejecting any vector whose
// length differs from dim
func NewMapLookup(dim int, vectors map[string][]float64) (*MapLookup, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}

	m := &MapLookup{dim: dim, vectors: make(map[string][]float64, len(vectors))}
	for word, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector for %q has dimension %d, expected %d", word, len(v), dim)
		}
		cp := make([]float64, dim)
		copy(cp, v)
		m.vectors[word] = cp
	}
	return m, nil
}

// FromEmbeddings builds a lookup from wego embeddings. The dimension is
// taken from the first entry; the list must not be empty.
func FromEmbeddings(embs embedding.Embeddings) (*MapLookup, error) {
	if len(embs) == 0 {
		return nil, fmt.Errorf("no embeddings to load")
	}

	vectors := make(map[string][]float64, len(embs))
	for _, e := range embs {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			continue
		}
		vectors[word] = e.Vector
	}
	return NewMapLookup(len(embs[0].Vector), vectors)
}

// Vector returns the embedding for token
func (m *MapLookup) Vector(token string) ([]float64, bool) {
	v, ok := m.vectors[token]
	return v, ok
}

// Dimension returns the vector length
func (m *MapLookup) Dimension() int {
	return m.dim
}

// Len returns the vocabulary size
func (m *MapLookup) Len() int {
	return len(m.vectors)
}

// Words returns the vocabulary in sorted order
func (m *MapLookup) Words() []string {
	words := make([]string, 0, len(m.vectors))
	for w := range m.vectors {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
