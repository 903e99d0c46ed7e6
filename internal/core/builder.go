// ABOUTME: AuthorVectorBuilder averages token embeddings into one vector per author
// ABOUTME: Skips out-of-vocabulary tokens, fails on authors with none in vocabulary
package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/poetsim/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Lookup supplies the embedding vector of a token, if the token is known
type Lookup interface {
	Vector(token string) ([]float64, bool)
	Dimension() int
}

// TokenSource is an ordered author to token sequence mapping
type TokenSource interface {
	Authors() []string
	Tokens(author string) []string
}

// Builder computes author vectors from an embedding lookup
type Builder struct {
	lookup Lookup

	// SkipDegenerate drops authors without in-vocabulary tokens
	// instead of failing the whole build.
	SkipDegenerate bool
}

// NewBuilder creates a Builder over the given lookup
func NewBuilder(lookup Lookup) *Builder {
	return &Builder{lookup: lookup}
}

// BuildAuthorVectors averages the in-vocabulary embeddings of every author
// in src. The first author with no in-vocabulary tokens aborts the build
// with ErrDegenerateAuthorVector.
func BuildAuthorVectors(src TokenSource, lookup Lookup) (*Store, error) {
	store, _, err := NewBuilder(lookup).Build(src)
	return store, err
}

// Build returns the store and, when SkipDegenerate is set, the authors
// that were dropped.
func (b *Builder) Build(src TokenSource) (*Store, []string, error) {
	var (
		vectors []models.AuthorVector
		skipped []string
	)

	for _, author := range src.Authors() {
		av, err := b.AuthorVector(author, src.Tokens(author))
		if err != nil {
			if b.SkipDegenerate && errors.Is(err, ErrDegenerateAuthorVector) {
				skipped = append(skipped, author)
				continue
			}
			return nil, nil, err
		}
		vectors = append(vectors, av)
	}

	store, err := NewStore(vectors)
	if err != nil {
		return nil, nil, err
	}
	return store, skipped, nil
}

// AuthorVector computes the mean embedding of one token sequence.
// Tokens are trimmed; blank tokens are ignored and unknown tokens are
// counted as out-of-vocabulary. Distinct tokens are accumulated in sorted
// order weighted by their counts, so any permutation of the same tokens
// gives a bit-identical result.
func (b *Builder) AuthorVector(author string, tokens []string) (models.AuthorVector, error) {
	counts := make(map[string]int)
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		counts[tok]++
	}

	distinct := make([]string, 0, len(counts))
	for tok := range counts {
		distinct = append(distinct, tok)
	}
	sort.Strings(distinct)

	dim := b.lookup.Dimension()
	sum := make([]float64, dim)
	inVocab, oov := 0, 0

	for _, tok := range distinct {
		vec, ok := b.lookup.Vector(tok)
		if !ok {
			oov += counts[tok]
			continue
		}
		if len(vec) != dim {
			return models.AuthorVector{}, authorError(author,
				fmt.Errorf("%w: token %q has %d, lookup has %d", ErrDimensionMismatch, tok, len(vec), dim))
		}
		floats.AddScaled(sum, float64(counts[tok]), vec)
		inVocab += counts[tok]
	}

	if inVocab == 0 {
		return models.AuthorVector{}, authorError(author, ErrDegenerateAuthorVector)
	}

	for i := range sum {
		sum[i] /= float64(inVocab)
	}

	return models.AuthorVector{
		Author:     author,
		Vector:     sum,
		TokenCount: inVocab,
		OOVCount:   oov,
	}, nil
}
