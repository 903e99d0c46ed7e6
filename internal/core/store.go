// ABOUTME: AuthorVectorStore, the ordered immutable author to vector mapping
// ABOUTME: Preserves insertion order, which fixes query tie-breaking
package core

import (
	"fmt"

	"github.com/harper/poetsim/internal/models"
)

// Store maps authors to vectors. It is read-only after NewStore returns,
// so it can be shared by concurrent readers without locking.
type Store struct {
	vectors []models.AuthorVector
	index   map[string]int
	dim     int
}

// NewStore copies vectors into a store, keeping their order. All vectors
// must share one dimension and authors must be unique.
func NewStore(vectors []models.AuthorVector) (*Store, error) {
	s := &Store{
		vectors: make([]models.AuthorVector, 0, len(vectors)),
		index:   make(map[string]int, len(vectors)),
	}

	for i, av := range vectors {
		if _, exists := s.index[av.Author]; exists {
			return nil, authorError(av.Author, ErrDuplicateAuthor)
		}
		if i == 0 {
			s.dim = len(av.Vector)
		} else if len(av.Vector) != s.dim {
			return nil, authorError(av.Author,
				fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dim, len(av.Vector)))
		}

		s.index[av.Author] = len(s.vectors)
		s.vectors = append(s.vectors, copyVector(av))
	}

	return s, nil
}

// Len returns the number of authors
func (s *Store) Len() int {
	return len(s.vectors)
}

// Dimension returns the shared vector dimension (0 for an empty store)
func (s *Store) Dimension() int {
	return s.dim
}

// Authors returns author names in insertion order
func (s *Store) Authors() []string {
	authors := make([]string, len(s.vectors))
	for i, av := range s.vectors {
		authors[i] = av.Author
	}
	return authors
}

// Contains reports whether author is in the store
func (s *Store) Contains(author string) bool {
	_, ok := s.index[author]
	return ok
}

// Get returns a copy of the author's vector
func (s *Store) Get(author string) (models.AuthorVector, bool) {
	i, ok := s.index[author]
	if !ok {
		return models.AuthorVector{}, false
	}
	return copyVector(s.vectors[i]), true
}

// Vectors returns copies of all author vectors in insertion order
func (s *Store) Vectors() []models.AuthorVector {
	out := make([]models.AuthorVector, len(s.vectors))
	for i, av := range s.vectors {
		out[i] = copyVector(av)
	}
	return out
}

func copyVector(av models.AuthorVector) models.AuthorVector {
	v := make([]float64, len(av.Vector))
	copy(v, av.Vector)
	av.Vector = v
	return av
}
