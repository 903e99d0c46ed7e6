// ABOUTME: Author vector models shared by the builder, index and result cache
// ABOUTME: Defines AuthorVector and Neighbor query results
package models

import (
	"errors"
	"fmt"
)

// AuthorVector is the mean embedding of one author's in-vocabulary tokens
type AuthorVector struct {
	Author     string    `json:"author" yaml:"author"`
	Vector     []float64 `json:"vector" yaml:"vector,flow"`
	TokenCount int       `json:"token_count" yaml:"token_count"`
	OOVCount   int       `json:"oov_count" yaml:"oov_count"`
}

// ValidateDimension checks that the vector has the expected dimension
func (a *AuthorVector) ValidateDimension(expectedDim int) error {
	if len(a.Vector) == 0 {
		return errors.New("author vector cannot be empty")
	}
	if len(a.Vector) != expectedDim {
		return fmt.Errorf("vector dimension mismatch for %q: expected %d, got %d", a.Author, expectedDim, len(a.Vector))
	}
	return nil
}

// Neighbor is one candidate author ranked against a query author
type Neighbor struct {
	Author string  `json:"author" yaml:"author"`
	Angle  float64 `json:"angle" yaml:"angle"`
	Cosine float64 `json:"cosine" yaml:"cosine"`
}
